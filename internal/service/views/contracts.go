package views

import (
	"context"
	"time"

	"cargaviva/internal/domain"
)

//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=views_test

// LoadReader is the read side of the load registry.
type LoadReader interface {
	Get(ctx context.Context, id string) (*domain.Load, error)
	GetMany(ctx context.Context, ids []string) (map[string]domain.Load, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Load, error)
	ListByStatus(ctx context.Context, status domain.LoadStatus, before *time.Time) ([]domain.Load, error)
}

// AssignmentReader is the read side of the assignment ledger.
type AssignmentReader interface {
	ListByTransporter(ctx context.Context, transporterID string) ([]domain.Assignment, error)
}

// HistoryReader lists recorded lifecycle events.
type HistoryReader interface {
	ListByLoad(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error)
}
