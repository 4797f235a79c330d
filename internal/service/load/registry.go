package load

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
)

// Registry owns loads and the edits generators make to them.
// Status changes go through the lifecycle coordinator only.
type Registry struct {
	repo             loadRepository
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

// NewRegistry creates and configures a load Registry.
func NewRegistry(r loadRepository, timeout time.Duration, logger logx.Logger) *Registry {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Registry{
		repo:             r,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

func (s *Registry) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// Create publishes a new load owned by the acting generator.
func (s *Registry) Create(ctx context.Context, actor domain.Actor, f domain.LoadFields) (*domain.Load, error) {
	if actor.Role != domain.RoleGenerator || strings.TrimSpace(actor.ID) == "" {
		return nil, apperr.ErrForbidden
	}
	domain.NormalizeFields(&f)
	now := s.now()
	if err := domain.ValidateLoadFields(f, now); err != nil {
		return nil, err
	}

	l := &domain.Load{
		ID:            s.newID(),
		OwnerID:       actor.ID,
		Origin:        f.Origin,
		Destination:   f.Destination,
		CargoType:     f.CargoType,
		WeightKG:      f.WeightKG,
		Dimensions:    f.Dimensions,
		RequiredBy:    f.RequiredBy.UTC(),
		SuggestedRate: f.SuggestedRate,
		Requirements:  f.Requirements,
		PhotoURLs:     f.PhotoURLs,
		Status:        domain.LoadPublished,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	if err := s.repo.Create(ctx, l); err != nil {
		return nil, err
	}

	s.logger.Info("load published",
		logx.String("event", "load_published"),
		logx.String("load_id", l.ID),
		logx.String("owner_id", l.OwnerID),
		logx.String("cargo_type", string(l.CargoType)),
		logx.Float64("weight_kg", l.WeightKG),
		logx.Time("required_by", l.RequiredBy),
	)
	return l, nil
}

// Get retrieves a load by its ID.
func (s *Registry) Get(ctx context.Context, id string) (*domain.Load, error) {
	id, err := validateID(id)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	l, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrNotFound
	}
	return l, nil
}

// GetMany returns the loads with the given IDs keyed by ID. Blank and
// repeated IDs are dropped; unknown IDs are missing from the result.
func (s *Registry) GetMany(ctx context.Context, ids []string) (map[string]domain.Load, error) {
	clean := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, raw := range ids {
		id := strings.TrimSpace(raw)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		clean = append(clean, id)
	}
	if len(clean) == 0 {
		return map[string]domain.Load{}, nil
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.GetMany(ctx, clean)
}

// ListByOwner returns the owner's loads, newest first.
func (s *Registry) ListByOwner(ctx context.Context, ownerID string) ([]domain.Load, error) {
	ownerID, err := validateID(ownerID)
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByOwner(ctx, ownerID)
}

// ListByStatus returns loads in the given status, newest first. With a
// non-nil beforeDeadline only loads required before it are returned.
func (s *Registry) ListByStatus(ctx context.Context, status domain.LoadStatus, beforeDeadline *time.Time) ([]domain.Load, error) {
	if !status.Valid() {
		return nil, apperr.Validation("status", "is not supported")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.repo.ListByStatus(ctx, status, beforeDeadline)
}

// UpdateFields edits a load. Only the owner may edit, and only while the load is published.
func (s *Registry) UpdateFields(ctx context.Context, id string, actor domain.Actor, u domain.LoadUpdate) (*domain.Load, error) {
	if u.Empty() {
		return nil, apperr.Validation("update", "has no fields")
	}
	if err := u.Check(); err != nil {
		return nil, err
	}
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if current.OwnerID != actor.ID || current.Status != domain.LoadPublished {
		return nil, apperr.ErrForbidden
	}

	f := u.Apply(*current).Fields()
	domain.NormalizeFields(&f)
	now := s.now()
	if err := domain.ValidateLoadFields(f, now); err != nil {
		return nil, err
	}
	f.RequiredBy = f.RequiredBy.UTC()

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	updated, err := s.repo.UpdateFields(ctx, current.ID, actor.ID, f, now)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		// accepted or cancelled between the read and the write
		return nil, apperr.ErrConflict
	}

	s.logger.Info("load updated",
		logx.String("event", "load_updated"),
		logx.String("load_id", updated.ID),
		logx.String("owner_id", actor.ID),
	)
	return updated, nil
}

// Delete removes a published load that was never assigned. Loads with
// assignment history must be cancelled instead.
func (s *Registry) Delete(ctx context.Context, id string, actor domain.Actor) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if current.OwnerID != actor.ID || current.Status != domain.LoadPublished {
		return apperr.ErrForbidden
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	ok, err := s.repo.Delete(ctx, current.ID, actor.ID)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.ErrConflict
	}

	s.logger.Info("load deleted",
		logx.String("event", "load_deleted"),
		logx.String("load_id", current.ID),
		logx.String("owner_id", actor.ID),
	)
	return nil
}

func validateID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", apperr.Validation("id", "is required")
	}
	return id, nil
}
