package activity_test

import (
	"os"
	"path/filepath"
	"testing"

	"signupservice/internal/domain/activity"
)

func TestDefaultSeed_IsValidAndHasChessClub(t *testing.T) {
	seed := activity.DefaultSeed()
	if err := activity.ValidateSeed(seed); err != nil {
		t.Fatalf("default seed invalid: %v", err)
	}
	for _, a := range seed {
		if a.Name == "Chess Club" {
			if len(a.Participants) == 0 {
				t.Fatalf("Chess Club must start with members")
			}
			return
		}
	}
	t.Fatalf("Chess Club missing from default seed")
}

func TestDefaultSeed_FreshCopy(t *testing.T) {
	a := activity.DefaultSeed()
	a[0].Participants[0] = "changed@example.com"
	if activity.DefaultSeed()[0].Participants[0] == "changed@example.com" {
		t.Fatalf("DefaultSeed shares state between calls")
	}
}

func TestLoadSeed(t *testing.T) {
	doc := `
activities:
  - name: Robotics
    description: Build robots
    schedule: Saturdays
    max_participants: 8
    participants:
      - ada@example.com
  - name: Choir
    description: Sing
    schedule: Mondays
    max_participants: 40
`
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write seed: %v", err)
	}

	seed, err := activity.LoadSeed(path)
	if err != nil {
		t.Fatalf("LoadSeed: %v", err)
	}
	if len(seed) != 2 || seed[0].Name != "Robotics" || seed[1].Name != "Choir" {
		t.Fatalf("unexpected seed: %+v", seed)
	}
	if len(seed[0].Participants) != 1 || seed[0].Participants[0] != "ada@example.com" {
		t.Fatalf("unexpected participants: %v", seed[0].Participants)
	}
	if seed[1].Participants == nil {
		t.Fatalf("participants should be an empty list, not nil")
	}
}

func TestParseSeed_Invalid(t *testing.T) {
	cases := map[string]string{
		"empty":           `activities: []`,
		"missing name":    "activities:\n  - max_participants: 3\n",
		"duplicate name":  "activities:\n  - {name: A, max_participants: 1}\n  - {name: A, max_participants: 1}\n",
		"zero capacity":   "activities:\n  - {name: A, max_participants: 0}\n",
		"duplicate email": "activities:\n  - {name: A, max_participants: 2, participants: [x@y.z, x@y.z]}\n",
		"malformed":       "activities: [",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := activity.ParseSeed([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
