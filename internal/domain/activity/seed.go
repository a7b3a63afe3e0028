package activity

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultSeed returns the catalogue the directory starts with when no seed
// file is configured. Every call returns a fresh copy.
func DefaultSeed() []Activity {
	return []Activity{
		{
			Name:            "Chess Club",
			Description:     "Learn strategies and compete in chess tournaments",
			Schedule:        "Fridays, 3:30 PM - 5:00 PM",
			MaxParticipants: 12,
			Participants:    []string{"michael@mergington.edu", "daniel@mergington.edu"},
		},
		{
			Name:            "Programming Class",
			Description:     "Learn programming fundamentals and build software projects",
			Schedule:        "Tuesdays and Thursdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 20,
			Participants:    []string{"emma@mergington.edu", "sophia@mergington.edu"},
		},
		{
			Name:            "Gym Class",
			Description:     "Physical education and sports activities",
			Schedule:        "Mondays, Wednesdays, Fridays, 2:00 PM - 3:00 PM",
			MaxParticipants: 30,
			Participants:    []string{"john@mergington.edu", "olivia@mergington.edu"},
		},
		{
			Name:            "Basketball Team",
			Description:     "Practice and compete in inter-school basketball games",
			Schedule:        "Mondays and Wednesdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 15,
			Participants:    []string{"liam@mergington.edu"},
		},
		{
			Name:            "Soccer Club",
			Description:     "Train and play soccer matches against local teams",
			Schedule:        "Tuesdays and Thursdays, 4:00 PM - 5:30 PM",
			MaxParticipants: 22,
			Participants:    []string{"noah@mergington.edu", "ava@mergington.edu"},
		},
		{
			Name:            "Art Club",
			Description:     "Explore painting, drawing and sculpture",
			Schedule:        "Wednesdays, 3:30 PM - 5:00 PM",
			MaxParticipants: 18,
			Participants:    []string{"mia@mergington.edu"},
		},
		{
			Name:            "Drama Club",
			Description:     "Act, direct and produce school plays and performances",
			Schedule:        "Thursdays, 4:00 PM - 6:00 PM",
			MaxParticipants: 20,
			Participants:    []string{"isabella@mergington.edu", "lucas@mergington.edu"},
		},
		{
			Name:            "Math Club",
			Description:     "Solve challenging problems and prepare for math competitions",
			Schedule:        "Tuesdays, 3:30 PM - 4:30 PM",
			MaxParticipants: 10,
			Participants:    []string{"james@mergington.edu"},
		},
		{
			Name:            "Debate Team",
			Description:     "Develop public speaking and argumentation skills",
			Schedule:        "Fridays, 4:00 PM - 5:30 PM",
			MaxParticipants: 12,
			Participants:    []string{"charlotte@mergington.edu", "henry@mergington.edu"},
		},
	}
}

type seedFile struct {
	Activities []seedActivity `yaml:"activities"`
}

type seedActivity struct {
	Name            string   `yaml:"name"`
	Description     string   `yaml:"description"`
	Schedule        string   `yaml:"schedule"`
	MaxParticipants int      `yaml:"max_participants"`
	Participants    []string `yaml:"participants"`
}

// LoadSeed reads a YAML seed document and validates it.
func LoadSeed(path string) ([]Activity, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]Activity, error) {
	var doc seedFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}

	seed := make([]Activity, 0, len(doc.Activities))
	for _, a := range doc.Activities {
		seed = append(seed, Activity{
			Name:            a.Name,
			Description:     a.Description,
			Schedule:        a.Schedule,
			MaxParticipants: a.MaxParticipants,
			Participants:    append([]string{}, a.Participants...),
		})
	}

	if err := ValidateSeed(seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func ValidateSeed(seed []Activity) error {
	if len(seed) == 0 {
		return errors.New("seed has no activities")
	}

	names := make(map[string]struct{}, len(seed))
	for i, a := range seed {
		if a.Name == "" {
			return fmt.Errorf("activity #%d: name is required", i)
		}
		if _, dup := names[a.Name]; dup {
			return fmt.Errorf("activity %q: duplicate name", a.Name)
		}
		names[a.Name] = struct{}{}

		if a.MaxParticipants <= 0 {
			return fmt.Errorf("activity %q: max_participants must be positive", a.Name)
		}

		emails := make(map[string]struct{}, len(a.Participants))
		for _, e := range a.Participants {
			if e == "" {
				return fmt.Errorf("activity %q: empty participant email", a.Name)
			}
			if _, dup := emails[e]; dup {
				return fmt.Errorf("activity %q: duplicate participant %q", a.Name, e)
			}
			emails[e] = struct{}{}
		}
	}
	return nil
}
