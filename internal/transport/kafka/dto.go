package kafka

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"cargaviva/internal/domain"
)

// ErrMalformedEvent marks a message that can never be processed.
var ErrMalformedEvent = errors.New("malformed lifecycle event")

// EventDTO is the wire form of domain.LifecycleEvent
type EventDTO struct {
	ID           string    `json:"event_id"`
	LoadID       string    `json:"load_id"`
	AssignmentID string    `json:"assignment_id,omitempty"`
	Trigger      string    `json:"trigger"`
	OldStatus    string    `json:"old_status"`
	NewStatus    string    `json:"new_status"`
	ActorID      string    `json:"actor_id"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// FromDomain converts domain.LifecycleEvent to EventDTO
func FromDomain(e domain.LifecycleEvent) EventDTO {
	return EventDTO{
		ID:           e.ID,
		LoadID:       e.LoadID,
		AssignmentID: e.AssignmentID,
		Trigger:      e.Trigger,
		OldStatus:    string(e.OldStatus),
		NewStatus:    string(e.NewStatus),
		ActorID:      e.ActorID,
		OccurredAt:   e.OccurredAt.UTC(),
	}
}

// ToDomain converts EventDTO to domain.LifecycleEvent. It fails with
// ErrMalformedEvent when required fields are missing or statuses are unknown.
func ToDomain(dto EventDTO) (domain.LifecycleEvent, error) {
	e := domain.LifecycleEvent{
		ID:           strings.TrimSpace(dto.ID),
		LoadID:       strings.TrimSpace(dto.LoadID),
		AssignmentID: strings.TrimSpace(dto.AssignmentID),
		Trigger:      strings.TrimSpace(dto.Trigger),
		OldStatus:    domain.LoadStatus(strings.TrimSpace(dto.OldStatus)),
		NewStatus:    domain.LoadStatus(strings.TrimSpace(dto.NewStatus)),
		ActorID:      strings.TrimSpace(dto.ActorID),
		OccurredAt:   dto.OccurredAt.UTC(),
	}
	switch {
	case e.ID == "":
		return domain.LifecycleEvent{}, fmt.Errorf("%w: empty event_id", ErrMalformedEvent)
	case e.LoadID == "":
		return domain.LifecycleEvent{}, fmt.Errorf("%w: empty load_id", ErrMalformedEvent)
	case e.Trigger == "":
		return domain.LifecycleEvent{}, fmt.Errorf("%w: empty trigger", ErrMalformedEvent)
	case !e.OldStatus.Valid() || !e.NewStatus.Valid():
		return domain.LifecycleEvent{}, fmt.Errorf("%w: unknown status %q -> %q", ErrMalformedEvent, e.OldStatus, e.NewStatus)
	case e.OccurredAt.IsZero():
		return domain.LifecycleEvent{}, fmt.Errorf("%w: empty occurred_at", ErrMalformedEvent)
	}
	return e, nil
}
