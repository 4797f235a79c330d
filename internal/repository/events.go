package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
)

// EventRepo stores the lifecycle history of loads.
type EventRepo struct{ db *pgxpool.Pool }

// NewEventRepo creates a new EventRepo.
func NewEventRepo(db *pgxpool.Pool) *EventRepo { return &EventRepo{db: db} }

// Append stores an event; replays of the same event ID are ignored.
// It reports whether a new row was written.
func (r *EventRepo) Append(ctx context.Context, e domain.LifecycleEvent) (bool, error) {
	var assignmentID *string
	if e.AssignmentID != "" {
		assignmentID = &e.AssignmentID
	}
	ct, err := r.db.Exec(ctx, `
        INSERT INTO lifecycle_events (id, load_id, assignment_id, trigger, old_status, new_status, actor_id, occurred_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        ON CONFLICT (id) DO NOTHING
    `, e.ID, e.LoadID, assignmentID, e.Trigger, string(e.OldStatus), string(e.NewStatus), e.ActorID, e.OccurredAt)
	if IsDataViolation(err) {
		return false, fmt.Errorf("append lifecycle event %q: %w: %w", e.ID, apperr.ErrValidation, err)
	}
	if err != nil {
		return false, fmt.Errorf("append lifecycle event %q: %w", e.ID, err)
	}
	return ct.RowsAffected() > 0, nil
}

// ListByLoad returns the events of a load, oldest first.
func (r *EventRepo) ListByLoad(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, load_id, COALESCE(assignment_id, ''), trigger, old_status, new_status, actor_id, occurred_at
        FROM lifecycle_events
        WHERE load_id = $1
        ORDER BY occurred_at, id
    `, loadID)
	if err != nil {
		return nil, fmt.Errorf("list lifecycle events of load %q: %w", loadID, err)
	}
	defer rows.Close()

	out := make([]domain.LifecycleEvent, 0)
	for rows.Next() {
		var (
			e                    domain.LifecycleEvent
			oldStatus, newStatus string
		)
		if err := rows.Scan(&e.ID, &e.LoadID, &e.AssignmentID, &e.Trigger, &oldStatus, &newStatus, &e.ActorID, &e.OccurredAt); err != nil {
			return nil, fmt.Errorf("scan lifecycle event: %w", err)
		}
		e.OldStatus = domain.LoadStatus(oldStatus)
		e.NewStatus = domain.LoadStatus(newStatus)
		e.OccurredAt = e.OccurredAt.UTC()
		out = append(out, e)
	}
	return out, rows.Err()
}
