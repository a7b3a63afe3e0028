package memory

import (
	"context"
	"sync"

	"signupservice/internal/domain/activity"
)

type entry struct {
	mu  sync.Mutex
	rec activity.Activity
}

// ActivityRepository keeps the directory in process memory. The set of
// activities only changes on Seed and Reset; participant lists are guarded by a
// lock per activity so different activities never contend.
type ActivityRepository struct {
	mu     sync.RWMutex
	order  []string
	byName map[string]*entry
}

func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{byName: map[string]*entry{}}
}

func (r *ActivityRepository) List(ctx context.Context) ([]activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]activity.Activity, 0, len(r.order))
	for _, name := range r.order {
		e := r.byName[name]
		e.mu.Lock()
		out = append(out, e.rec.Clone())
		e.mu.Unlock()
	}
	return out, nil
}

func (r *ActivityRepository) AddParticipant(ctx context.Context, name, email string) (activity.Activity, error) {
	return r.update(name, func(a *activity.Activity) error {
		if a.HasParticipant(email) {
			return activity.ErrAlreadySignedUp()
		}
		a.Participants = append(a.Participants, email)
		return nil
	})
}

func (r *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) (activity.Activity, error) {
	return r.update(name, func(a *activity.Activity) error {
		for i, p := range a.Participants {
			if p == email {
				a.Participants = append(a.Participants[:i:i], a.Participants[i+1:]...)
				return nil
			}
		}
		return activity.ErrNotSignedUp()
	})
}

func (r *ActivityRepository) Reset(ctx context.Context, seed []activity.Activity) error {
	order := make([]string, 0, len(seed))
	byName := make(map[string]*entry, len(seed))
	for _, a := range seed {
		order = append(order, a.Name)
		byName[a.Name] = &entry{rec: a.Clone()}
	}

	r.mu.Lock()
	r.order = order
	r.byName = byName
	r.mu.Unlock()
	return nil
}

func (r *ActivityRepository) Seed(ctx context.Context, seed []activity.Activity) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, a := range seed {
		if _, ok := r.byName[a.Name]; ok {
			continue
		}
		r.order = append(r.order, a.Name)
		r.byName[a.Name] = &entry{rec: a.Clone()}
	}
	return nil
}

// update runs fn with the record locked and returns a copy of the result.
func (r *ActivityRepository) update(name string, fn func(a *activity.Activity) error) (activity.Activity, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.byName[name]
	if !ok {
		return activity.Activity{}, activity.ErrActivityNotFound()
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	if err := fn(&e.rec); err != nil {
		return activity.Activity{}, err
	}
	return e.rec.Clone(), nil
}
