// Package history stores the lifecycle events of loads.
package history

import (
	"context"
	"errors"
	"time"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
	"cargaviva/internal/transport/kafka"
)

type eventStore interface {
	Append(ctx context.Context, e domain.LifecycleEvent) (bool, error)
	ListByLoad(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error)
}

// Recorder appends lifecycle events to the history store. Appends are
// idempotent on the event ID, so redelivered events are stored once.
type Recorder struct {
	store            eventStore
	operationTimeout time.Duration
	logger           logx.Logger
}

// NewRecorder creates and configures a Recorder.
func NewRecorder(store eventStore, timeout time.Duration, logger logx.Logger) *Recorder {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Recorder{store: store, operationTimeout: timeout, logger: logger}
}

// Record stores e unless an event with the same ID was already stored.
// Events that can never be stored come back as kafka.PermanentError so the
// consumer skips them instead of retrying.
func (r *Recorder) Record(ctx context.Context, e domain.LifecycleEvent) error {
	if err := e.Validate(); err != nil {
		return kafka.Permanent(err)
	}

	ctx, cancel := context.WithTimeout(ctx, r.operationTimeout)
	defer cancel()

	inserted, err := r.store.Append(ctx, e)
	if errors.Is(err, apperr.ErrValidation) {
		return kafka.Permanent(err)
	}
	if err != nil {
		return err
	}
	if !inserted {
		r.logger.Debug("duplicate lifecycle event skipped",
			logx.String("event_id", e.ID),
			logx.String("load_id", e.LoadID),
		)
	}
	return nil
}

// Publish records e synchronously. It lets the recorder stand in for the
// broker publisher when Kafka is disabled.
func (r *Recorder) Publish(ctx context.Context, e domain.LifecycleEvent) error {
	return r.Record(ctx, e)
}

// ListByLoad returns the history of a load, oldest first.
func (r *Recorder) ListByLoad(ctx context.Context, loadID string) ([]domain.LifecycleEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, r.operationTimeout)
	defer cancel()
	return r.store.ListByLoad(ctx, loadID)
}
