package handlers

import (
	"context"

	"cargaviva/internal/domain"
	"cargaviva/internal/service/assignment"
	"cargaviva/internal/service/lifecycle"
	"cargaviva/internal/service/load"
	"cargaviva/internal/service/views"
)

type loadUsecase interface {
	Create(ctx context.Context, actor domain.Actor, f domain.LoadFields) (*domain.Load, error)
	Get(ctx context.Context, id string) (*domain.Load, error)
	UpdateFields(ctx context.Context, id string, actor domain.Actor, u domain.LoadUpdate) (*domain.Load, error)
	Delete(ctx context.Context, id string, actor domain.Actor) error
}

// NewLoadUsecase wires a load Registry into a loadUsecase.
func NewLoadUsecase(r *load.Registry) loadUsecase {
	return r
}

type assignmentUsecase interface {
	Get(ctx context.Context, id string) (*domain.Assignment, error)
}

// NewAssignmentUsecase wires an assignment Ledger into an assignmentUsecase.
func NewAssignmentUsecase(l *assignment.Ledger) assignmentUsecase {
	return l
}

type lifecycleUsecase interface {
	AcceptLoad(ctx context.Context, loadID string, actor domain.Actor, rate *float64) (domain.TransitionResult, error)
	StartTransit(ctx context.Context, assignmentID string, actor domain.Actor) (domain.TransitionResult, error)
	Deliver(ctx context.Context, assignmentID string, actor domain.Actor) (domain.TransitionResult, error)
	CancelLoad(ctx context.Context, loadID string, actor domain.Actor) (domain.TransitionResult, error)
	CancelAssignment(ctx context.Context, assignmentID string, actor domain.Actor) (domain.TransitionResult, error)
}

// NewLifecycleUsecase wires a lifecycle Coordinator into a lifecycleUsecase.
func NewLifecycleUsecase(c *lifecycle.Coordinator) lifecycleUsecase {
	return c
}

type viewUsecase interface {
	AvailableForTransporter(ctx context.Context, filter views.Filter) ([]domain.Load, error)
	MyLoads(ctx context.Context, actor domain.Actor) ([]domain.Load, error)
	MyAssignments(ctx context.Context, actor domain.Actor) ([]domain.Assignment, error)
	DashboardSummary(ctx context.Context, actor domain.Actor) (domain.DashboardSummary, error)
	History(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error)
}

// NewViewUsecase wires the views Service into a viewUsecase.
func NewViewUsecase(s *views.Service) viewUsecase {
	return s
}
