package pg

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"signupservice/internal/domain/activity"
)

type ActivityRepository struct {
	store
}

func NewActivityRepository(db *sql.DB) *ActivityRepository {
	return &ActivityRepository{store: store{db: db}}
}

// selectActivities reads records with their participants in one statement,
// so a listing never mixes two committed states.
const selectActivities = `
	SELECT a.activity_name, a.description, a.schedule, a.max_participants,
	       COALESCE(json_agg(p.email ORDER BY p.id) FILTER (WHERE p.email IS NOT NULL), '[]'::json)
	  FROM activities a
	  LEFT JOIN activity_participants p ON p.activity_name = a.activity_name`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanActivity(row rowScanner) (activity.Activity, error) {
	var (
		a      activity.Activity
		emails []byte
	)
	if err := row.Scan(&a.Name, &a.Description, &a.Schedule, &a.MaxParticipants, &emails); err != nil {
		return activity.Activity{}, err
	}
	a.Participants = []string{}
	if err := json.Unmarshal(emails, &a.Participants); err != nil {
		return activity.Activity{}, fmt.Errorf("decode participants of %q: %w", a.Name, err)
	}
	return a, nil
}

func (r *ActivityRepository) List(ctx context.Context) ([]activity.Activity, error) {
	rows, err := r.query(ctx, selectActivities+`
	 GROUP BY a.activity_name
	 ORDER BY a.position`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var res []activity.Activity
	for rows.Next() {
		a, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, a)
	}
	return res, rows.Err()
}

func (r *ActivityRepository) AddParticipant(ctx context.Context, name, email string) (activity.Activity, error) {
	if err := r.lock(ctx, name); err != nil {
		return activity.Activity{}, err
	}

	res, err := r.exec(ctx,
		`INSERT INTO activity_participants (activity_name, email)
		 VALUES ($1, $2)
		 ON CONFLICT (activity_name, email) DO NOTHING`,
		name, email,
	)
	if err != nil {
		return activity.Activity{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return activity.Activity{}, err
	}
	if n == 0 {
		return activity.Activity{}, activity.ErrAlreadySignedUp()
	}

	return r.get(ctx, name)
}

func (r *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) (activity.Activity, error) {
	if err := r.lock(ctx, name); err != nil {
		return activity.Activity{}, err
	}

	res, err := r.exec(ctx,
		`DELETE FROM activity_participants
		  WHERE activity_name = $1 AND email = $2`,
		name, email,
	)
	if err != nil {
		return activity.Activity{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return activity.Activity{}, err
	}
	if n == 0 {
		return activity.Activity{}, activity.ErrNotSignedUp()
	}

	return r.get(ctx, name)
}

// Seed inserts the seed activities missing from the table together with
// their initial participants. Activities already present keep their
// participants, so a restarting replica never wipes live sign-ups. Call it
// inside WithinTx; concurrent seeders serialize on an advisory lock.
func (r *ActivityRepository) Seed(ctx context.Context, seed []activity.Activity) error {
	if _, err := r.exec(ctx, `SELECT pg_advisory_xact_lock($1)`, seedLockKey); err != nil {
		return fmt.Errorf("seed lock: %w", err)
	}

	var next int
	if err := r.queryRow(ctx, `SELECT COALESCE(MAX(position) + 1, 0) FROM activities`).Scan(&next); err != nil {
		return fmt.Errorf("seed position: %w", err)
	}

	for _, a := range seed {
		res, err := r.exec(ctx,
			`INSERT INTO activities (activity_name, description, schedule, max_participants, position)
			 VALUES ($1, $2, $3, $4, $5)
			 ON CONFLICT (activity_name) DO NOTHING`,
			a.Name, a.Description, a.Schedule, a.MaxParticipants, next,
		)
		if err != nil {
			return fmt.Errorf("insert activity %q: %w", a.Name, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		next++

		if err := r.insertParticipants(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

// Reset wipes the directory and loads seed. Call it inside WithinTx so
// readers never see a half-loaded directory.
func (r *ActivityRepository) Reset(ctx context.Context, seed []activity.Activity) error {
	if _, err := r.exec(ctx, `TRUNCATE TABLE activity_participants, activities RESTART IDENTITY`); err != nil {
		return fmt.Errorf("truncate activities: %w", err)
	}

	for pos, a := range seed {
		if _, err := r.exec(ctx,
			`INSERT INTO activities (activity_name, description, schedule, max_participants, position)
			 VALUES ($1, $2, $3, $4, $5)`,
			a.Name, a.Description, a.Schedule, a.MaxParticipants, pos,
		); err != nil {
			return fmt.Errorf("insert activity %q: %w", a.Name, err)
		}
		if err := r.insertParticipants(ctx, a); err != nil {
			return err
		}
	}
	return nil
}

func (r *ActivityRepository) insertParticipants(ctx context.Context, a activity.Activity) error {
	for _, email := range a.Participants {
		if _, err := r.exec(ctx,
			`INSERT INTO activity_participants (activity_name, email) VALUES ($1, $2)`,
			a.Name, email,
		); err != nil {
			return fmt.Errorf("insert participant %q: %w", email, err)
		}
	}
	return nil
}

// lock takes a row lock on the activity for the rest of the transaction.
func (r *ActivityRepository) lock(ctx context.Context, name string) error {
	var locked string
	err := r.queryRow(ctx,
		`SELECT activity_name FROM activities WHERE activity_name = $1 FOR UPDATE`,
		name,
	).Scan(&locked)

	if errors.Is(err, sql.ErrNoRows) {
		return activity.ErrActivityNotFound()
	}
	return err
}

func (r *ActivityRepository) get(ctx context.Context, name string) (activity.Activity, error) {
	a, err := scanActivity(r.queryRow(ctx, selectActivities+`
	 WHERE a.activity_name = $1
	 GROUP BY a.activity_name`,
		name,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return activity.Activity{}, activity.ErrActivityNotFound()
	}
	return a, err
}
