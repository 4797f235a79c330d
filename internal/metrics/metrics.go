package metrics

import "github.com/prometheus/client_golang/prometheus"

// Outcome labels shared by lifecycle counters.
const (
	ResultOK                = "ok"
	ResultConflict          = "conflict"
	ResultInvalidTransition = "invalid_transition"
	ResultForbidden         = "forbidden"
	ResultNotFound          = "not_found"
	ResultValidation        = "validation"
	ResultError             = "error"
)

// NewRateLimitExceededTotal returns a Prometheus counter for the number of rejected HTTP requests due to rate limiting
func NewRateLimitExceededTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "rate_limit_exceeded_total",
		Help: "Total number of rejected HTTP requests due to rate limiting",
	})
}

// NewPublishRetriesTotal returns a Prometheus counter for lifecycle publish retries
func NewPublishRetriesTotal() prometheus.Counter {
	return prometheus.NewCounter(prometheus.CounterOpts{
		Name: "lifecycle_publish_retries_total",
		Help: "Total number of retried lifecycle event publishes",
	})
}

// Lifecycle groups the counters reported by the lifecycle coordinator.
type Lifecycle struct {
	// Transitions is labelled by trigger and result.
	Transitions *prometheus.CounterVec
	// EventsPublished is labelled by result.
	EventsPublished *prometheus.CounterVec
}

// NewLifecycle creates unregistered lifecycle counters.
func NewLifecycle() *Lifecycle {
	return &Lifecycle{
		Transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_transitions_total",
			Help: "Total number of lifecycle trigger invocations by outcome",
		}, []string{"trigger", "result"}),
		EventsPublished: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "lifecycle_events_published_total",
			Help: "Total number of lifecycle events handed to the publisher",
		}, []string{"result"}),
	}
}

// Collectors returns the counters for registration.
func (m *Lifecycle) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.Transitions, m.EventsPublished}
}

// ObserveTransition counts one trigger invocation. Safe on a nil receiver.
func (m *Lifecycle) ObserveTransition(trigger, result string) {
	if m == nil {
		return
	}
	m.Transitions.WithLabelValues(trigger, result).Inc()
}

// ObservePublish counts one publish attempt. Safe on a nil receiver.
func (m *Lifecycle) ObservePublish(result string) {
	if m == nil {
		return
	}
	m.EventsPublished.WithLabelValues(result).Inc()
}
