// Package lifecycle moves loads and their assignments through the delivery
// lifecycle. Every trigger runs in one transaction that locks the load row,
// so concurrent triggers on the same load are serialized and at most one wins.
package lifecycle

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"cargaviva/internal/apperr"
	"cargaviva/internal/domain"
	"cargaviva/internal/logx"
	"cargaviva/internal/metrics"
	"cargaviva/internal/ports/lifecycletx"
)

// Coordinator is the only writer of load and assignment statuses.
type Coordinator struct {
	tx               lifecycletx.Runner
	publisher        EventPublisher
	metrics          *metrics.Lifecycle
	operationTimeout time.Duration
	logger           logx.Logger
	now              func() time.Time
	newID            func() string
}

// NewCoordinator creates and configures a Coordinator. A nil publisher drops events.
func NewCoordinator(
	tx lifecycletx.Runner,
	publisher EventPublisher,
	m *metrics.Lifecycle,
	timeout time.Duration,
	logger logx.Logger,
) *Coordinator {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	if publisher == nil {
		publisher = NopPublisher{}
	}
	if logger == nil {
		logger = logx.Nop()
	}
	return &Coordinator{
		tx:               tx,
		publisher:        publisher,
		metrics:          m,
		operationTimeout: timeout,
		logger:           logger,
		now:              func() time.Time { return time.Now().UTC() },
		newID:            uuid.NewString,
	}
}

// AcceptLoad creates an accepted assignment for a published load and marks the load assigned.
// An already assigned load yields apperr.ErrConflict; a load past assignment
// or cancelled yields a TransitionError.
func (c *Coordinator) AcceptLoad(ctx context.Context, loadID string, actor domain.Actor, rate *float64) (domain.TransitionResult, error) {
	var res domain.TransitionResult
	err := c.run(ctx, domain.TriggerAccept, func(ctx context.Context, tx lifecycletx.Repository) error {
		loadID, err := requireID("load_id", loadID)
		if err != nil {
			return err
		}
		if actor.Role != domain.RoleTransporter || actor.ID == "" {
			return apperr.ErrForbidden
		}
		if err := domain.ValidateRate(rate); err != nil {
			return err
		}

		l, err := lockLoad(ctx, tx, loadID)
		if err != nil {
			return err
		}
		switch l.Status {
		case domain.LoadPublished:
		case domain.LoadAssigned:
			return apperr.ErrConflict
		default:
			return apperr.Transition("load", string(l.Status), "accept")
		}
		active, err := tx.GetActiveAssignment(ctx, l.ID)
		if err != nil {
			return err
		}
		if active != nil {
			return apperr.ErrConflict
		}

		now := c.now()
		a := domain.Assignment{
			ID:            c.newID(),
			LoadID:        l.ID,
			TransporterID: actor.ID,
			Rate:          rate,
			Status:        domain.AssignmentAccepted,
			AcceptedAt:    &now,
			UpdatedAt:     now,
		}
		if err := tx.InsertAssignment(ctx, &a); err != nil {
			return err
		}
		if err := c.moveLoad(ctx, tx, l, domain.LoadAssigned, now); err != nil {
			return err
		}
		res = c.result(*l, &a, domain.TriggerAccept, domain.LoadPublished, actor.ID, now)
		return nil
	})
	if err != nil {
		return domain.TransitionResult{}, err
	}
	c.emit(ctx, res)
	return res, nil
}

// StartTransit moves an accepted assignment to in_progress and its load to in_transit.
func (c *Coordinator) StartTransit(ctx context.Context, assignmentID string, actor domain.Actor) (domain.TransitionResult, error) {
	return c.advance(ctx, domain.TriggerStartTransit, assignmentID, actor, advanceStep{
		verb:           "start",
		fromAssignment: domain.AssignmentAccepted,
		toAssignment:   domain.AssignmentInProgress,
		fromLoad:       domain.LoadAssigned,
		toLoad:         domain.LoadInTransit,
	})
}

// Deliver completes an in_progress assignment and marks its load delivered.
func (c *Coordinator) Deliver(ctx context.Context, assignmentID string, actor domain.Actor) (domain.TransitionResult, error) {
	return c.advance(ctx, domain.TriggerDeliver, assignmentID, actor, advanceStep{
		verb:           "deliver",
		fromAssignment: domain.AssignmentInProgress,
		toAssignment:   domain.AssignmentCompleted,
		fromLoad:       domain.LoadInTransit,
		toLoad:         domain.LoadDelivered,
	})
}

// CancelLoad cancels a published or assigned load on behalf of its owner,
// together with its active assignment if there is one.
func (c *Coordinator) CancelLoad(ctx context.Context, loadID string, actor domain.Actor) (domain.TransitionResult, error) {
	var res domain.TransitionResult
	err := c.run(ctx, domain.TriggerCancelLoad, func(ctx context.Context, tx lifecycletx.Repository) error {
		loadID, err := requireID("load_id", loadID)
		if err != nil {
			return err
		}
		l, err := lockLoad(ctx, tx, loadID)
		if err != nil {
			return err
		}
		if l.OwnerID != actor.ID {
			return apperr.ErrForbidden
		}
		if !l.Status.Cancellable() {
			return apperr.Transition("load", string(l.Status), "cancel")
		}

		now := c.now()
		active, err := tx.GetActiveAssignment(ctx, l.ID)
		if err != nil {
			return err
		}
		if active != nil {
			if err := tx.UpdateAssignmentStatus(ctx, active.ID, active.Status, domain.AssignmentCancelled, now); err != nil {
				return err
			}
			active.Status, active.UpdatedAt = domain.AssignmentCancelled, now
		}

		from := l.Status
		if err := c.moveLoad(ctx, tx, l, domain.LoadCancelled, now); err != nil {
			return err
		}
		res = c.result(*l, active, domain.TriggerCancelLoad, from, actor.ID, now)
		return nil
	})
	if err != nil {
		return domain.TransitionResult{}, err
	}
	c.emit(ctx, res)
	return res, nil
}

// CancelAssignment lets the transporter withdraw from an accepted or
// in_progress assignment. The load goes back to published so it can be accepted again.
func (c *Coordinator) CancelAssignment(ctx context.Context, assignmentID string, actor domain.Actor) (domain.TransitionResult, error) {
	var res domain.TransitionResult
	err := c.run(ctx, domain.TriggerCancelAssignment, func(ctx context.Context, tx lifecycletx.Repository) error {
		l, a, err := c.lockAssignment(ctx, tx, assignmentID, actor)
		if err != nil {
			return err
		}
		if a.Status != domain.AssignmentAccepted && a.Status != domain.AssignmentInProgress {
			return apperr.Transition("assignment", string(a.Status), "cancel")
		}
		if l.Status != domain.LoadAssigned && l.Status != domain.LoadInTransit {
			return apperr.Transition("load", string(l.Status), "release")
		}

		now := c.now()
		if err := tx.UpdateAssignmentStatus(ctx, a.ID, a.Status, domain.AssignmentCancelled, now); err != nil {
			return err
		}
		a.Status, a.UpdatedAt = domain.AssignmentCancelled, now

		from := l.Status
		if err := c.moveLoad(ctx, tx, l, domain.LoadPublished, now); err != nil {
			return err
		}
		res = c.result(*l, a, domain.TriggerCancelAssignment, from, actor.ID, now)
		return nil
	})
	if err != nil {
		return domain.TransitionResult{}, err
	}
	c.emit(ctx, res)
	return res, nil
}

type advanceStep struct {
	verb                         string
	fromAssignment, toAssignment domain.AssignmentStatus
	fromLoad, toLoad             domain.LoadStatus
}

// advance performs a forward step driven by the assigned transporter.
func (c *Coordinator) advance(ctx context.Context, trigger, assignmentID string, actor domain.Actor, step advanceStep) (domain.TransitionResult, error) {
	var res domain.TransitionResult
	err := c.run(ctx, trigger, func(ctx context.Context, tx lifecycletx.Repository) error {
		l, a, err := c.lockAssignment(ctx, tx, assignmentID, actor)
		if err != nil {
			return err
		}
		if a.Status != step.fromAssignment {
			return apperr.Transition("assignment", string(a.Status), step.verb)
		}
		if l.Status != step.fromLoad {
			return apperr.Transition("load", string(l.Status), step.verb)
		}

		now := c.now()
		if err := tx.UpdateAssignmentStatus(ctx, a.ID, a.Status, step.toAssignment, now); err != nil {
			return err
		}
		a.Status, a.UpdatedAt = step.toAssignment, now
		if err := c.moveLoad(ctx, tx, l, step.toLoad, now); err != nil {
			return err
		}
		res = c.result(*l, a, trigger, step.fromLoad, actor.ID, now)
		return nil
	})
	if err != nil {
		return domain.TransitionResult{}, err
	}
	c.emit(ctx, res)
	return res, nil
}

// run executes fn in a transaction bounded by the operation timeout and
// records the outcome of the trigger.
func (c *Coordinator) run(ctx context.Context, trigger string, fn func(ctx context.Context, tx lifecycletx.Repository) error) error {
	ctx, cancel := context.WithTimeout(ctx, c.operationTimeout)
	defer cancel()

	err := c.tx.WithTx(ctx, func(tx lifecycletx.Repository) error {
		return fn(ctx, tx)
	})
	result := outcome(err)
	c.metrics.ObserveTransition(trigger, result)
	if err != nil {
		level := c.logger.Info
		if result == metrics.ResultError {
			level = c.logger.Error
		}
		level("lifecycle trigger rejected",
			logx.String("event", "transition_rejected"),
			logx.String("trigger", trigger),
			logx.String("result", result),
			logx.Err(err),
		)
	}
	return err
}

// lockAssignment locks the assignment's load and then the assignment itself,
// checking that actor is the assigned transporter.
func (c *Coordinator) lockAssignment(ctx context.Context, tx lifecycletx.Repository, assignmentID string, actor domain.Actor) (*domain.Load, *domain.Assignment, error) {
	assignmentID, err := requireID("assignment_id", assignmentID)
	if err != nil {
		return nil, nil, err
	}
	peek, err := tx.GetAssignment(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if peek == nil {
		return nil, nil, apperr.ErrNotFound
	}
	if peek.TransporterID != actor.ID {
		return nil, nil, apperr.ErrForbidden
	}

	l, err := lockLoad(ctx, tx, peek.LoadID)
	if err != nil {
		return nil, nil, err
	}
	a, err := tx.GetAssignmentForUpdate(ctx, assignmentID)
	if err != nil {
		return nil, nil, err
	}
	if a == nil {
		return nil, nil, apperr.ErrNotFound
	}
	return l, a, nil
}

func (c *Coordinator) moveLoad(ctx context.Context, tx lifecycletx.Repository, l *domain.Load, to domain.LoadStatus, at time.Time) error {
	if !l.Status.CanTransitionTo(to) {
		return apperr.Transition("load", string(l.Status), "move to "+string(to))
	}
	if err := tx.TransitionLoadStatus(ctx, l.ID, l.Status, to, at); err != nil {
		return err
	}
	l.Status, l.UpdatedAt = to, at
	return nil
}

func (c *Coordinator) result(l domain.Load, a *domain.Assignment, trigger string, from domain.LoadStatus, actorID string, at time.Time) domain.TransitionResult {
	ev := domain.LifecycleEvent{
		ID:         c.newID(),
		LoadID:     l.ID,
		Trigger:    trigger,
		OldStatus:  from,
		NewStatus:  l.Status,
		ActorID:    actorID,
		OccurredAt: at,
	}
	var out *domain.Assignment
	if a != nil {
		cp := *a
		out = &cp
		ev.AssignmentID = a.ID
	}
	return domain.TransitionResult{Load: l, Assignment: out, Event: ev}
}

// emit logs and publishes the event of a committed transition. Publish
// failures never undo the transition.
func (c *Coordinator) emit(ctx context.Context, res domain.TransitionResult) {
	ev := res.Event
	fields := []logx.Field{
		logx.String("event", ev.Trigger),
		logx.String("event_id", ev.ID),
		logx.String("load_id", ev.LoadID),
		logx.String("old_status", string(ev.OldStatus)),
		logx.String("new_status", string(ev.NewStatus)),
		logx.String("actor_id", ev.ActorID),
	}
	if ev.AssignmentID != "" {
		fields = append(fields, logx.String("assignment_id", ev.AssignmentID))
	}
	c.logger.Info("load status changed", fields...)

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.operationTimeout)
	defer cancel()
	if err := c.publisher.Publish(ctx, ev); err != nil {
		c.metrics.ObservePublish(metrics.ResultError)
		c.logger.Warn("publish lifecycle event failed",
			logx.String("event_id", ev.ID),
			logx.String("load_id", ev.LoadID),
			logx.Err(err),
		)
		return
	}
	c.metrics.ObservePublish(metrics.ResultOK)
}

func lockLoad(ctx context.Context, tx lifecycletx.Repository, id string) (*domain.Load, error) {
	l, err := tx.GetLoadForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if l == nil {
		return nil, apperr.ErrNotFound
	}
	return l, nil
}

func requireID(field, raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", apperr.Validation(field, "is required")
	}
	return id, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, apperr.ErrConflict):
		return metrics.ResultConflict
	case errors.Is(err, apperr.ErrInvalidTransition):
		return metrics.ResultInvalidTransition
	case errors.Is(err, apperr.ErrForbidden):
		return metrics.ResultForbidden
	case errors.Is(err, apperr.ErrNotFound):
		return metrics.ResultNotFound
	case errors.Is(err, apperr.ErrValidation):
		return metrics.ResultValidation
	default:
		return metrics.ResultError
	}
}
