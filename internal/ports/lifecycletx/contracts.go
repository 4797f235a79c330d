package lifecycletx

import (
	"context"
	"time"

	"cargaviva/internal/domain"
)

// Repository is the transactional view of the load and assignment stores.
// Getters return (nil, nil) when the row does not exist.
type Repository interface {
	// GetLoadForUpdate reads a load and locks it until the transaction ends.
	GetLoadForUpdate(ctx context.Context, id string) (*domain.Load, error)
	// GetAssignment reads an assignment without locking it. Callers use it to
	// find the load to lock first, so locks are always taken load before assignment.
	GetAssignment(ctx context.Context, id string) (*domain.Assignment, error)
	GetAssignmentForUpdate(ctx context.Context, id string) (*domain.Assignment, error)
	GetActiveAssignment(ctx context.Context, loadID string) (*domain.Assignment, error)

	// InsertAssignment fails with apperr.ErrConflict when the load already has an active assignment.
	InsertAssignment(ctx context.Context, a *domain.Assignment) error

	// TransitionLoadStatus sets status=to where status=from. It fails with
	// apperr.ErrNotFound for an unknown id and apperr.ErrConflict when from no longer holds.
	TransitionLoadStatus(ctx context.Context, id string, from, to domain.LoadStatus, at time.Time) error
	// UpdateAssignmentStatus behaves like TransitionLoadStatus for assignments.
	UpdateAssignmentStatus(ctx context.Context, id string, from, to domain.AssignmentStatus, at time.Time) error
}

// Runner is a transaction runner
type Runner interface {
	WithTx(ctx context.Context, fn func(tx Repository) error) error
}
