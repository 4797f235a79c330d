package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"cargaviva/internal/config"
	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
	"cargaviva/internal/ports/lifecycletx"
	"cargaviva/internal/repository"
	"cargaviva/internal/repository/memstore"
)

type loadStore interface {
	Create(ctx context.Context, l *domain.Load) error
	Get(ctx context.Context, id string) (*domain.Load, error)
	GetMany(ctx context.Context, ids []string) (map[string]domain.Load, error)
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Load, error)
	ListByStatus(ctx context.Context, status domain.LoadStatus, before *time.Time) ([]domain.Load, error)
	UpdateFields(ctx context.Context, id, ownerID string, f domain.LoadFields, at time.Time) (*domain.Load, error)
	Delete(ctx context.Context, id, ownerID string) (bool, error)
}

type assignmentStore interface {
	Get(ctx context.Context, id string) (*domain.Assignment, error)
	ListByTransporter(ctx context.Context, transporterID string) ([]domain.Assignment, error)
}

type eventStore interface {
	Append(ctx context.Context, e domain.LifecycleEvent) (bool, error)
	ListByLoad(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error)
}

// Storage is the selected persistence backend.
type Storage struct {
	Driver      string
	Loads       loadStore
	Assignments assignmentStore
	Events      eventStore
	Lifecycle   lifecycletx.Runner

	pool *pgxpool.Pool
}

// Close releases the database pool, if any.
func (s *Storage) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

func newMemoryStorage() *Storage {
	st := memstore.New()
	return &Storage{
		Driver:      config.StorageDriverMemory,
		Loads:       st.Loads(),
		Assignments: st.Assignments(),
		Events:      st.Events(),
		Lifecycle:   st.Lifecycle(),
	}
}

func newPostgresStorage(pool *pgxpool.Pool) *Storage {
	return &Storage{
		Driver:      config.StorageDriverPostgres,
		Loads:       repository.NewLoadRepo(pool),
		Assignments: repository.NewAssignmentRepo(pool),
		Events:      repository.NewEventRepo(pool),
		Lifecycle:   repository.NewLifecycleRepo(pool),
		pool:        pool,
	}
}

var migrate = repository.Migrate

func provideStorage(connect dbConnectFunc) func(context.Context, *config.Config, logx.Logger) (*Storage, error) {
	return func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*Storage, error) {
		switch cfg.Storage {
		case config.StorageDriverMemory:
			logger.Warn("using in-memory storage, data is lost on restart")
			return newMemoryStorage(), nil
		case config.StorageDriverPostgres:
			pool, err := connect(ctx, logger, cfg.DB.DSN(), 10, time.Second)
			if err != nil {
				return nil, err
			}
			if err := migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, fmt.Errorf("migrate: %w", err)
			}
			return newPostgresStorage(pool), nil
		default:
			return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage)
		}
	}
}
