package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/ports/lifecycletx"
)

// LifecycleRepo runs coordinator transactions over loads and assignments.
type LifecycleRepo struct {
	db *pgxpool.Pool
}

// NewLifecycleRepo creates a new LifecycleRepo.
func NewLifecycleRepo(db *pgxpool.Pool) *LifecycleRepo {
	return &LifecycleRepo{db: db}
}

// WithTx opens a transaction and executes fn within it.
func (r *LifecycleRepo) WithTx(ctx context.Context, fn func(tx lifecycletx.Repository) error) (err error) {
	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{IsoLevel: pgx.ReadCommitted})
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
	}()

	if err := fn(&TxRepo{tx: tx}); err != nil {
		return rollback(ctx, tx, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type rollbacker interface {
	Rollback(ctx context.Context) error
}

// rollback aborts tx after fn failed with cause. A failed rollback is joined
// to cause so callers still see the business error.
func rollback(ctx context.Context, tx rollbacker, cause error) error {
	if rbErr := tx.Rollback(ctx); rbErr != nil {
		return errors.Join(cause, fmt.Errorf("rollback tx: %w", rbErr))
	}
	return cause
}

// TxRepo represents transaction repository.
type TxRepo struct {
	tx pgx.Tx
}

var _ lifecycletx.Repository = (*TxRepo)(nil)

// GetLoadForUpdate - read a load and lock its row.
func (r *TxRepo) GetLoadForUpdate(ctx context.Context, id string) (*domain.Load, error) {
	l, err := scanLoad(r.tx.QueryRow(ctx, `SELECT `+loadColumns+` FROM loads WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock load %q: %w", id, err)
	}
	return l, nil
}

// GetAssignment - read an assignment without locking.
func (r *TxRepo) GetAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get assignment %q: %w", id, err)
	}
	return a, nil
}

// GetAssignmentForUpdate - read an assignment and lock its row.
func (r *TxRepo) GetAssignmentForUpdate(ctx context.Context, id string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("lock assignment %q: %w", id, err)
	}
	return a, nil
}

// GetActiveAssignment - the non-cancelled assignment of a load, if any.
func (r *TxRepo) GetActiveAssignment(ctx context.Context, loadID string) (*domain.Assignment, error) {
	a, err := scanAssignment(r.tx.QueryRow(ctx, `
        SELECT `+assignmentColumns+`
        FROM assignments
        WHERE load_id = $1 AND status <> 'cancelled'
        FOR UPDATE
    `, loadID))
	if err != nil {
		if IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get active assignment of load %q: %w", loadID, err)
	}
	return a, nil
}

// InsertAssignment - insert a new assignment.
func (r *TxRepo) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	_, err := r.tx.Exec(ctx, `
        INSERT INTO assignments (id, load_id, transporter_id, rate, status, accepted_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
    `, a.ID, a.LoadID, a.TransporterID, a.Rate, string(a.Status), a.AcceptedAt, a.UpdatedAt)
	if err != nil {
		if IsDuplicate(err) {
			return apperr.ErrConflict
		}
		if IsForeignKeyViolation(err) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("insert assignment: %w", err)
	}
	return nil
}

// TransitionLoadStatus - compare-and-set of the load status.
func (r *TxRepo) TransitionLoadStatus(ctx context.Context, id string, from, to domain.LoadStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE loads SET status = $3, updated_at = $4
        WHERE id = $1 AND status = $2
    `, id, string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("transition load %q: %w", id, err)
	}
	if ct.RowsAffected() == 1 {
		return nil
	}
	return r.missOrConflict(ctx, `SELECT EXISTS (SELECT 1 FROM loads WHERE id = $1)`, id)
}

// UpdateAssignmentStatus - compare-and-set of the assignment status.
func (r *TxRepo) UpdateAssignmentStatus(ctx context.Context, id string, from, to domain.AssignmentStatus, at time.Time) error {
	ct, err := r.tx.Exec(ctx, `
        UPDATE assignments SET status = $3, updated_at = $4
        WHERE id = $1 AND status = $2
    `, id, string(from), string(to), at)
	if err != nil {
		return fmt.Errorf("update assignment status %q: %w", id, err)
	}
	if ct.RowsAffected() == 1 {
		return nil
	}
	return r.missOrConflict(ctx, `SELECT EXISTS (SELECT 1 FROM assignments WHERE id = $1)`, id)
}

func (r *TxRepo) missOrConflict(ctx context.Context, existsQuery, id string) error {
	var exists bool
	if err := r.tx.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("check %q: %w", id, err)
	}
	if !exists {
		return apperr.ErrNotFound
	}
	return apperr.ErrConflict
}
