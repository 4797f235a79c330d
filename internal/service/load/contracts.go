package load

import (
	"context"
	"time"

	"cargaviva/internal/domain"
)

// loadRepository defines storage operations required by the registry.
type loadRepository interface {
	Create(ctx context.Context, l *domain.Load) error
	Get(ctx context.Context, id string) (*domain.Load, error)
	GetMany(ctx context.Context, ids []string) (map[string]domain.Load, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Load, error)
	ListByStatus(ctx context.Context, status domain.LoadStatus, before *time.Time) ([]domain.Load, error)
	UpdateFields(ctx context.Context, id, ownerID string, f domain.LoadFields, at time.Time) (*domain.Load, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}
