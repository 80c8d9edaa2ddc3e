package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Sentinel errors for registration outcomes, mapped by the service layer.
var (
	ErrCapacityExceeded  = errors.New("event capacity exceeded")
	ErrAlreadyRegistered = errors.New("volunteer already registered")
	ErrNotRegistered     = errors.New("volunteer not registered")
)

// RegistrationRepository manages the membership relation between users and events.
// Both sides of the relation read from the same table, so the user and event views
// of a registration can never diverge.
type RegistrationRepository interface {
	// Add registers the user for the event, enforcing capacity and uniqueness
	// atomically. The event row is locked for the duration of the check so two
	// concurrent attempts cannot both claim the last open slot.
	Add(ctx context.Context, eventID, userID string) error
	// Remove unregisters the user from the event.
	Remove(ctx context.Context, eventID, userID string) error
	Exists(ctx context.Context, eventID, userID string) (bool, error)
	CountByEvent(ctx context.Context, eventID string) (int, error)
}

type registrationRepository struct {
	pool *pgxpool.Pool
}

// NewRegistrationRepository returns a Postgres-backed implementation.
func NewRegistrationRepository(pool *pgxpool.Pool) RegistrationRepository {
	return &registrationRepository{pool: pool}
}

func (r *registrationRepository) Add(ctx context.Context, eventID, userID string) error {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	var maxVolunteers *int32
	if err := tx.QueryRow(ctx,
		`SELECT max_volunteers FROM events WHERE id=$1 FOR UPDATE`, eventID,
	).Scan(&maxVolunteers); err != nil {
		return err
	}

	var count int32
	if err := tx.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id=$1`, eventID,
	).Scan(&count); err != nil {
		return err
	}
	if maxVolunteers != nil && count >= *maxVolunteers {
		return ErrCapacityExceeded
	}

	cmd, err := tx.Exec(ctx,
		`INSERT INTO event_registrations (event_id, user_id)
         VALUES ($1, $2) ON CONFLICT DO NOTHING`, eventID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrAlreadyRegistered
	}

	return tx.Commit(ctx)
}

func (r *registrationRepository) Remove(ctx context.Context, eventID, userID string) error {
	cmd, err := r.pool.Exec(ctx,
		`DELETE FROM event_registrations WHERE event_id=$1 AND user_id=$2`, eventID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotRegistered
	}
	return nil
}

func (r *registrationRepository) Exists(ctx context.Context, eventID, userID string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM event_registrations WHERE event_id=$1 AND user_id=$2)`,
		eventID, userID,
	).Scan(&exists)
	return exists, err
}

func (r *registrationRepository) CountByEvent(ctx context.Context, eventID string) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM event_registrations WHERE event_id=$1`, eventID,
	).Scan(&count)
	return count, err
}
