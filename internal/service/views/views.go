// Package views builds read models over loads, assignments and their history.
// Nothing here mutates state.
package views

import (
	"context"
	"strings"
	"time"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
)

// Filter selects which published loads a transporter sees.
type Filter string

// List of supported filters
const (
	FilterAll    Filter = "all"
	FilterUrgent Filter = "urgent"
	// FilterNearby is accepted for clients that send it; no location data
	// exists yet, so it returns the same loads as FilterAll.
	FilterNearby Filter = "nearby"
)

// ParseFilter parses a filter name; empty means FilterAll.
func ParseFilter(raw string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(raw))); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterUrgent, FilterNearby:
		return f, nil
	default:
		return "", apperr.Validation("filter", "must be one of all, urgent, nearby")
	}
}

// Service serves the query views.
type Service struct {
	loads            LoadReader
	assignments      AssignmentReader
	history          HistoryReader
	urgentWindow     time.Duration
	operationTimeout time.Duration
	now              func() time.Time
}

// NewService creates and configures a views Service.
func NewService(loads LoadReader, assignments AssignmentReader, history HistoryReader, urgentWindow, timeout time.Duration) *Service {
	if urgentWindow <= 0 {
		urgentWindow = 24 * time.Hour
	}
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Service{
		loads:            loads,
		assignments:      assignments,
		history:          history,
		urgentWindow:     urgentWindow,
		operationTimeout: timeout,
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, s.operationTimeout)
}

// AvailableForTransporter lists published loads, newest first.
func (s *Service) AvailableForTransporter(ctx context.Context, filter Filter) ([]domain.Load, error) {
	var before *time.Time
	switch filter {
	case FilterAll, FilterNearby:
	case FilterUrgent:
		deadline := s.now().Add(s.urgentWindow)
		before = &deadline
	default:
		return nil, apperr.Validation("filter", "is not supported")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.loads.ListByStatus(ctx, domain.LoadPublished, before)
}

// MyLoads lists the loads owned by a generator.
func (s *Service) MyLoads(ctx context.Context, actor domain.Actor) ([]domain.Load, error) {
	if actor.Role != domain.RoleGenerator {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.loads.ListByOwner(ctx, actor.ID)
}

// MyAssignments lists the assignments of a transporter.
func (s *Service) MyAssignments(ctx context.Context, actor domain.Actor) ([]domain.Assignment, error) {
	if actor.Role != domain.RoleTransporter {
		return nil, apperr.ErrForbidden
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()
	return s.assignments.ListByTransporter(ctx, actor.ID)
}

// DashboardSummary counts the actor's loads by status. Transporters also get
// their assignments by status, and loads are the ones they were assigned.
func (s *Service) DashboardSummary(ctx context.Context, actor domain.Actor) (domain.DashboardSummary, error) {
	out := domain.DashboardSummary{
		UserID:        actor.ID,
		Role:          actor.Role,
		LoadsByStatus: make(map[domain.LoadStatus]int),
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	switch actor.Role {
	case domain.RoleGenerator:
		loads, err := s.loads.ListByOwner(ctx, actor.ID)
		if err != nil {
			return domain.DashboardSummary{}, err
		}
		for _, l := range loads {
			out.LoadsByStatus[l.Status]++
		}
		out.TotalLoads = len(loads)

	case domain.RoleTransporter:
		list, err := s.assignments.ListByTransporter(ctx, actor.ID)
		if err != nil {
			return domain.DashboardSummary{}, err
		}
		out.AssignmentsByStatus = make(map[domain.AssignmentStatus]int)
		ids := make([]string, 0, len(list))
		seen := make(map[string]struct{}, len(list))
		for _, a := range list {
			out.AssignmentsByStatus[a.Status]++
			if _, ok := seen[a.LoadID]; !ok {
				seen[a.LoadID] = struct{}{}
				ids = append(ids, a.LoadID)
			}
		}
		loads, err := s.loads.GetMany(ctx, ids)
		if err != nil {
			return domain.DashboardSummary{}, err
		}
		for _, l := range loads {
			out.LoadsByStatus[l.Status]++
		}
		out.TotalLoads = len(loads)

	default:
		return domain.DashboardSummary{}, apperr.ErrForbidden
	}
	return out, nil
}

// History lists the lifecycle events of a load, oldest first.
func (s *Service) History(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error) {
	loadID = strings.TrimSpace(loadID)
	if loadID == "" {
		return nil, apperr.Validation("load_id", "is required")
	}
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	l, err := s.loads.Get(ctx, loadID)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrNotFound
	}
	return s.history.ListByLoad(ctx, loadID)
}
