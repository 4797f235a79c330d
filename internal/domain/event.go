package domain

import (
	"time"

	"cargaviva/internal/apperr"
)

// Lifecycle triggers
const (
	TriggerAccept           = "accept_load"
	TriggerStartTransit     = "start_transit"
	TriggerDeliver          = "deliver"
	TriggerCancelLoad       = "cancel_load"
	TriggerCancelAssignment = "cancel_assignment"
)

// LifecycleEvent is emitted after a successful load status transition.
type LifecycleEvent struct {
	ID           string
	LoadID       string
	AssignmentID string
	Trigger      string
	OldStatus    LoadStatus
	NewStatus    LoadStatus
	ActorID      string
	OccurredAt   time.Time
}

// TransitionResult is returned by every lifecycle trigger.
type TransitionResult struct {
	Load       Load
	Assignment *Assignment
	Event      LifecycleEvent
}

// Validate reports whether e carries everything needed to store it.
func (e LifecycleEvent) Validate() error {
	switch {
	case e.ID == "":
		return apperr.Validation("event_id", "must not be empty")
	case e.LoadID == "":
		return apperr.Validation("load_id", "must not be empty")
	case e.Trigger == "":
		return apperr.Validation("trigger", "must not be empty")
	case !e.OldStatus.Valid() || !e.NewStatus.Valid():
		return apperr.Validation("status", "must be a known load status")
	case e.OccurredAt.IsZero():
		return apperr.Validation("occurred_at", "must be set")
	}
	return nil
}
