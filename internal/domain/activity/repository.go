package activity

import "context"

type Repository interface {
	// List returns every activity in seed order.
	List(ctx context.Context) ([]Activity, error)
	// AddParticipant appends email to the named activity and returns the
	// updated record. The membership check and the append are atomic.
	AddParticipant(ctx context.Context, name, email string) (Activity, error)
	// RemoveParticipant removes one occurrence of email and returns the
	// updated record.
	RemoveParticipant(ctx context.Context, name, email string) (Activity, error)
	// Seed adds the seed activities the directory lacks. Activities already
	// present keep their participants.
	Seed(ctx context.Context, seed []Activity) error
}
