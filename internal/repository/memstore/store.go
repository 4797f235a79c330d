// Package memstore keeps loads, assignments and lifecycle events in memory.
// Transactions are serialized by a single lock and rolled back on error, so
// it offers the same guarantees as the postgres repositories within one process.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/ports/lifecycletx"
)

// Store is an in-memory backing store.
type Store struct {
	mu          sync.RWMutex
	loads       map[string]domain.Load
	assignments map[string]domain.Assignment
	referenced  map[string]bool
	events      []domain.LifecycleEvent
	eventIDs    map[string]struct{}
}

// New returns an empty Store.
func New() *Store {
	return &Store{
		loads:       make(map[string]domain.Load),
		assignments: make(map[string]domain.Assignment),
		referenced:  make(map[string]bool),
		eventIDs:    make(map[string]struct{}),
	}
}

// Loads returns the load repository view.
func (s *Store) Loads() *Loads { return &Loads{s: s} }

// Assignments returns the assignment repository view.
func (s *Store) Assignments() *Assignments { return &Assignments{s: s} }

// Events returns the lifecycle event repository view.
func (s *Store) Events() *Events { return &Events{s: s} }

// Lifecycle returns the transaction runner view.
func (s *Store) Lifecycle() *Lifecycle { return &Lifecycle{s: s} }

type snapshot struct {
	loads       map[string]domain.Load
	assignments map[string]domain.Assignment
	referenced  map[string]bool
}

func (s *Store) snapshot() snapshot {
	sn := snapshot{
		loads:       make(map[string]domain.Load, len(s.loads)),
		assignments: make(map[string]domain.Assignment, len(s.assignments)),
		referenced:  make(map[string]bool, len(s.referenced)),
	}
	for k, v := range s.loads {
		sn.loads[k] = v
	}
	for k, v := range s.assignments {
		sn.assignments[k] = v
	}
	for k, v := range s.referenced {
		sn.referenced[k] = v
	}
	return sn
}

func (s *Store) restore(sn snapshot) {
	s.loads = sn.loads
	s.assignments = sn.assignments
	s.referenced = sn.referenced
}

// Loads implements the load registry storage.
type Loads struct{ s *Store }

// Create inserts a new load.
func (l *Loads) Create(ctx context.Context, load *domain.Load) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	if _, ok := l.s.loads[load.ID]; ok {
		return apperr.ErrConflict
	}
	l.s.loads[load.ID] = cloneLoad(*load)
	return nil
}

// Get returns load by its ID, or nil if absent.
func (l *Loads) Get(ctx context.Context, id string) (*domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	v, ok := l.s.loads[id]
	if !ok {
		return nil, nil
	}
	out := cloneLoad(v)
	return &out, nil
}

// GetMany returns the loads with the given IDs keyed by ID.
func (l *Loads) GetMany(ctx context.Context, ids []string) (map[string]domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.s.mu.RLock()
	defer l.s.mu.RUnlock()
	out := make(map[string]domain.Load, len(ids))
	for _, id := range ids {
		if v, ok := l.s.loads[id]; ok {
			out[id] = cloneLoad(v)
		}
	}
	return out, nil
}

// ListByOwner returns the owner's loads, newest first.
func (l *Loads) ListByOwner(ctx context.Context, ownerID string) ([]domain.Load, error) {
	return l.list(ctx, func(v domain.Load) bool { return v.OwnerID == ownerID })
}

// ListByStatus returns loads in status, newest first, optionally due before a deadline.
func (l *Loads) ListByStatus(ctx context.Context, status domain.LoadStatus, before *time.Time) ([]domain.Load, error) {
	return l.list(ctx, func(v domain.Load) bool {
		return v.Status == status && (before == nil || v.RequiredBy.Before(*before))
	})
}

func (l *Loads) list(ctx context.Context, keep func(domain.Load) bool) ([]domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.s.mu.RLock()
	out := make([]domain.Load, 0)
	for _, v := range l.s.loads {
		if keep(v) {
			out = append(out, cloneLoad(v))
		}
	}
	l.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// UpdateFields overwrites the editable attributes of a published load owned by ownerID.
func (l *Loads) UpdateFields(ctx context.Context, id, ownerID string, f domain.LoadFields, at time.Time) (*domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	v, ok := l.s.loads[id]
	if !ok || v.OwnerID != ownerID || v.Status != domain.LoadPublished {
		return nil, nil
	}
	v.Origin, v.Destination, v.CargoType, v.WeightKG = f.Origin, f.Destination, f.CargoType, f.WeightKG
	v.Dimensions, v.RequiredBy, v.SuggestedRate = f.Dimensions, f.RequiredBy, f.SuggestedRate
	v.Requirements, v.PhotoURLs, v.UpdatedAt = f.Requirements, f.PhotoURLs, at
	v = cloneLoad(v)
	l.s.loads[id] = v
	out := cloneLoad(v)
	return &out, nil
}

// Delete removes a published, never-assigned load owned by ownerID.
func (l *Loads) Delete(ctx context.Context, id, ownerID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	v, ok := l.s.loads[id]
	if !ok || v.OwnerID != ownerID || v.Status != domain.LoadPublished {
		return false, nil
	}
	if l.s.referenced[id] {
		return false, apperr.ErrConflict
	}
	delete(l.s.loads, id)
	return true, nil
}

// Assignments implements the assignment ledger storage.
type Assignments struct{ s *Store }

// Get returns assignment by its ID, or nil if absent.
func (a *Assignments) Get(ctx context.Context, id string) (*domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	v, ok := a.s.assignments[id]
	if !ok {
		return nil, nil
	}
	out := cloneAssignment(v)
	return &out, nil
}

// ListByTransporter returns the transporter's assignments, latest acceptance first, nulls last.
func (a *Assignments) ListByTransporter(ctx context.Context, transporterID string) ([]domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	a.s.mu.RLock()
	out := make([]domain.Assignment, 0)
	for _, v := range a.s.assignments {
		if v.TransporterID == transporterID {
			out = append(out, cloneAssignment(v))
		}
	}
	a.s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		ai, aj := out[i].AcceptedAt, out[j].AcceptedAt
		switch {
		case ai == nil && aj == nil:
			return out[i].ID < out[j].ID
		case ai == nil:
			return false
		case aj == nil:
			return true
		case !ai.Equal(*aj):
			return ai.After(*aj)
		default:
			return out[i].ID < out[j].ID
		}
	})
	return out, nil
}

// Events implements the lifecycle history storage.
type Events struct{ s *Store }

// Append stores an event unless its ID was already stored.
func (e *Events) Append(ctx context.Context, ev domain.LifecycleEvent) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if _, ok := e.s.eventIDs[ev.ID]; ok {
		return false, nil
	}
	e.s.eventIDs[ev.ID] = struct{}{}
	e.s.events = append(e.s.events, ev)
	return true, nil
}

// ListByLoad returns the events of a load, oldest first.
func (e *Events) ListByLoad(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	e.s.mu.RLock()
	out := make([]domain.LifecycleEvent, 0)
	for _, ev := range e.s.events {
		if ev.LoadID == loadID {
			out = append(out, ev)
		}
	}
	e.s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.Before(out[j].OccurredAt) })
	return out, nil
}

// Lifecycle runs serialized coordinator transactions.
type Lifecycle struct{ s *Store }

// WithTx executes fn while holding the store lock; any error or panic rolls back.
func (l *Lifecycle) WithTx(ctx context.Context, fn func(tx lifecycletx.Repository) error) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	l.s.mu.Lock()
	defer l.s.mu.Unlock()

	sn := l.s.snapshot()
	defer func() {
		if p := recover(); p != nil {
			l.s.restore(sn)
			panic(p)
		}
	}()

	if err := fn(&txView{s: l.s}); err != nil {
		l.s.restore(sn)
		return err
	}
	if err := ctx.Err(); err != nil {
		l.s.restore(sn)
		return err
	}
	return nil
}

// txView is used only while the store lock is held.
type txView struct{ s *Store }

var _ lifecycletx.Repository = (*txView)(nil)

func (t *txView) GetLoadForUpdate(ctx context.Context, id string) (*domain.Load, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := t.s.loads[id]
	if !ok {
		return nil, nil
	}
	out := cloneLoad(v)
	return &out, nil
}

func (t *txView) GetAssignment(ctx context.Context, id string) (*domain.Assignment, error) {
	return t.GetAssignmentForUpdate(ctx, id)
}

func (t *txView) GetAssignmentForUpdate(ctx context.Context, id string) (*domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	v, ok := t.s.assignments[id]
	if !ok {
		return nil, nil
	}
	out := cloneAssignment(v)
	return &out, nil
}

func (t *txView) GetActiveAssignment(ctx context.Context, loadID string) (*domain.Assignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	for _, v := range t.s.assignments {
		if v.LoadID == loadID && v.Active() {
			out := cloneAssignment(v)
			return &out, nil
		}
	}
	return nil, nil
}

func (t *txView) InsertAssignment(ctx context.Context, a *domain.Assignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := t.s.loads[a.LoadID]; !ok {
		return apperr.ErrNotFound
	}
	if _, ok := t.s.assignments[a.ID]; ok {
		return apperr.ErrConflict
	}
	for _, v := range t.s.assignments {
		if v.LoadID == a.LoadID && v.Active() && a.Active() {
			return apperr.ErrConflict
		}
	}
	t.s.assignments[a.ID] = cloneAssignment(*a)
	t.s.referenced[a.LoadID] = true
	return nil
}

func (t *txView) TransitionLoadStatus(ctx context.Context, id string, from, to domain.LoadStatus, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, ok := t.s.loads[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if v.Status != from {
		return apperr.ErrConflict
	}
	v.Status, v.UpdatedAt = to, at
	t.s.loads[id] = v
	return nil
}

func (t *txView) UpdateAssignmentStatus(ctx context.Context, id string, from, to domain.AssignmentStatus, at time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	v, ok := t.s.assignments[id]
	if !ok {
		return apperr.ErrNotFound
	}
	if v.Status != from {
		return apperr.ErrConflict
	}
	v.Status, v.UpdatedAt = to, at
	t.s.assignments[id] = v
	return nil
}

func cloneLoad(l domain.Load) domain.Load {
	if l.Dimensions != nil {
		d := *l.Dimensions
		l.Dimensions = &d
	}
	if l.SuggestedRate != nil {
		r := *l.SuggestedRate
		l.SuggestedRate = &r
	}
	if l.PhotoURLs != nil {
		l.PhotoURLs = append([]string(nil), l.PhotoURLs...)
	}
	return l
}

func cloneAssignment(a domain.Assignment) domain.Assignment {
	if a.Rate != nil {
		r := *a.Rate
		a.Rate = &r
	}
	if a.AcceptedAt != nil {
		t := *a.AcceptedAt
		a.AcceptedAt = &t
	}
	return a
}
