package lifecycle

import (
	"context"

	"cargaviva/internal/domain"
)

//go:generate mockgen -source=contracts.go -destination=mocks_test.go -package=lifecycle_test

// EventPublisher delivers lifecycle events after their transaction committed.
type EventPublisher interface {
	Publish(ctx context.Context, e domain.LifecycleEvent) error
}

// NopPublisher drops every event.
type NopPublisher struct{}

// Publish implements EventPublisher.
func (NopPublisher) Publish(context.Context, domain.LifecycleEvent) error { return nil }
