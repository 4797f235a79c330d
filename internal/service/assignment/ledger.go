// Package assignment exposes read access to transporter assignments.
// Assignments are created and moved only by the lifecycle coordinator.
package assignment

import (
	"context"
	"strings"
	"time"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
)

type assignmentRepository interface {
	Get(ctx context.Context, id string) (*domain.Assignment, error)
	ListByTransporter(ctx context.Context, transporterID string) ([]domain.Assignment, error)
}

// Ledger serves assignment lookups.
type Ledger struct {
	repo             assignmentRepository
	operationTimeout time.Duration
}

// NewLedger creates and configures a Ledger.
func NewLedger(r assignmentRepository, timeout time.Duration) *Ledger {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	return &Ledger{repo: r, operationTimeout: timeout}
}

// Get returns an assignment by its ID.
func (s *Ledger) Get(ctx context.Context, id string) (*domain.Assignment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperr.Validation("id", "is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()

	a, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, apperr.ErrNotFound
	}
	return a, nil
}

// ListByTransporter returns the transporter's assignments, most recently accepted first.
func (s *Ledger) ListByTransporter(ctx context.Context, transporterID string) ([]domain.Assignment, error) {
	transporterID = strings.TrimSpace(transporterID)
	if transporterID == "" {
		return nil, apperr.Validation("transporter_id", "is required")
	}
	ctx, cancel := context.WithTimeout(ctx, s.operationTimeout)
	defer cancel()
	return s.repo.ListByTransporter(ctx, transporterID)
}
