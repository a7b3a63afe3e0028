package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"signupservice/internal/domain"
	"signupservice/internal/domain/activity"
)

func newSeededRepo(t *testing.T) *ActivityRepository {
	t.Helper()
	repo := NewActivityRepository()
	require.NoError(t, repo.Reset(context.Background(), activity.DefaultSeed()))
	return repo
}

func errCode(err error) domain.ErrorCode {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

func TestActivityRepository_ListKeepsSeedOrder(t *testing.T) {
	repo := newSeededRepo(t)

	list, err := repo.List(context.Background())
	require.NoError(t, err)

	seed := activity.DefaultSeed()
	require.Len(t, list, len(seed))
	for i := range seed {
		require.Equal(t, seed[i].Name, list[i].Name)
		require.Equal(t, seed[i].Participants, list[i].Participants)
	}

	again, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, list, again)
}

func TestActivityRepository_ListIsDetached(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	list[0].Participants[0] = "intruder@example.com"
	list[0].Participants = append(list[0].Participants, "extra@example.com")

	fresh, err := repo.List(ctx)
	require.NoError(t, err)
	require.Equal(t, activity.DefaultSeed()[0].Participants, fresh[0].Participants)
}

func TestActivityRepository_AddAndRemove(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	got, err := repo.AddParticipant(ctx, "Chess Club", "tester@example.com")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu", "daniel@mergington.edu", "tester@example.com"}, got.Participants)

	_, err = repo.AddParticipant(ctx, "Chess Club", "tester@example.com")
	require.Equal(t, domain.ErrorCodeAlreadySignedUp, errCode(err))

	got, err = repo.RemoveParticipant(ctx, "Chess Club", "daniel@mergington.edu")
	require.NoError(t, err)
	require.Equal(t, []string{"michael@mergington.edu", "tester@example.com"}, got.Participants)

	_, err = repo.RemoveParticipant(ctx, "Chess Club", "daniel@mergington.edu")
	require.Equal(t, domain.ErrorCodeNotSignedUp, errCode(err))

	_, err = repo.AddParticipant(ctx, "NoSuchActivity", "a@b.com")
	require.Equal(t, domain.ErrorCodeNotFound, errCode(err))
	_, err = repo.RemoveParticipant(ctx, "NoSuchActivity", "a@b.com")
	require.Equal(t, domain.ErrorCodeNotFound, errCode(err))
}

func TestActivityRepository_OnlyNamedRecordChanges(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	before, err := repo.List(ctx)
	require.NoError(t, err)

	_, err = repo.AddParticipant(ctx, "Gym Class", "new@example.com")
	require.NoError(t, err)

	after, err := repo.List(ctx)
	require.NoError(t, err)
	for i := range before {
		if before[i].Name == "Gym Class" {
			require.Len(t, after[i].Participants, len(before[i].Participants)+1)
			continue
		}
		require.Equal(t, before[i], after[i])
	}
}

func TestActivityRepository_ConcurrentDuplicateSignup(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	const workers = 32
	var ok, conflicts atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AddParticipant(ctx, "Chess Club", "race@example.com")
			switch errCode(err) {
			case "":
				ok.Add(1)
			case domain.ErrorCodeAlreadySignedUp:
				conflicts.Add(1)
			}
		}()
	}
	wg.Wait()

	require.EqualValues(t, 1, ok.Load())
	require.EqualValues(t, workers-1, conflicts.Load())

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list[0].Participants, 3)
}

func TestActivityRepository_ConcurrentDistinctActivities(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()
	seed := activity.DefaultSeed()

	var wg sync.WaitGroup
	for _, a := range seed {
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func(name string, n int) {
				defer wg.Done()
				if _, err := repo.AddParticipant(ctx, name, fmt.Sprintf("s%d@example.com", n)); err != nil {
					t.Errorf("AddParticipant(%q): %v", name, err)
				}
			}(a.Name, i)
		}
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	for i := range seed {
		require.Len(t, list[i].Participants, len(seed[i].Participants)+10)
	}
}

func TestTxManager_RespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := NewTxManager().WithinTx(ctx, func(context.Context) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestActivityRepository_SeedKeepsExistingParticipants(t *testing.T) {
	repo := newSeededRepo(t)
	ctx := context.Background()

	_, err := repo.AddParticipant(ctx, "Chess Club", "live@example.com")
	require.NoError(t, err)

	extra := activity.Activity{Name: "Robotics Club", MaxParticipants: 8, Participants: []string{}}
	require.NoError(t, repo.Seed(ctx, append(activity.DefaultSeed(), extra)))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, len(activity.DefaultSeed())+1)
	require.Equal(t, "Robotics Club", list[len(list)-1].Name)
	for _, a := range list {
		if a.Name == "Chess Club" {
			require.Contains(t, a.Participants, "live@example.com")
		}
	}
}
