package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cargaviva/internal/domain"
)

const assignmentColumns = `id, load_id, transporter_id, rate, status, accepted_at, updated_at`

// AssignmentRepo represents assignment repository.
type AssignmentRepo struct{ db *pgxpool.Pool }

// NewAssignmentRepo creates a new AssignmentRepo.
func NewAssignmentRepo(db *pgxpool.Pool) *AssignmentRepo { return &AssignmentRepo{db: db} }

// Get returns assignment by its ID, or nil if absent.
func (r *AssignmentRepo) Get(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.db.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment %q: %w", id, err)
	}
	return a, nil
}

// ListByTransporter returns the transporter's assignments, latest acceptance first, nulls last.
func (r *AssignmentRepo) ListByTransporter(ctx context.Context, transporterID string) ([]domain.Assignment, error) {
	rows, err := r.db.Query(ctx, `
        SELECT `+assignmentColumns+`
        FROM assignments
        WHERE transporter_id = $1
        ORDER BY accepted_at DESC NULLS LAST, id
    `, transporterID)
	if err != nil {
		return nil, fmt.Errorf("list assignments of transporter %q: %w", transporterID, err)
	}
	defer rows.Close()

	out := make([]domain.Assignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func scanAssignment(row pgx.Row) (*domain.Assignment, error) {
	var (
		a      domain.Assignment
		status string
	)
	if err := row.Scan(&a.ID, &a.LoadID, &a.TransporterID, &a.Rate, &status, &a.AcceptedAt, &a.UpdatedAt); err != nil {
		return nil, err
	}
	a.Status = domain.AssignmentStatus(status)
	if a.AcceptedAt != nil {
		t := a.AcceptedAt.UTC()
		a.AcceptedAt = &t
	}
	a.UpdatedAt = a.UpdatedAt.UTC()
	return &a, nil
}
