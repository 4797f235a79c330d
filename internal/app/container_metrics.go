package app

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/dig"

	mw "cargaviva/internal/http/middleware"
	"cargaviva/internal/metrics"
)

type metricsOut struct {
	dig.Out

	Registry               *prometheus.Registry
	Gatherer               prometheus.Gatherer
	Lifecycle              *metrics.Lifecycle
	RateLimitExceededTotal prometheus.Counter `name:"rate_limit_exceeded_total"`
	PublishRetriesTotal    prometheus.Counter `name:"lifecycle_publish_retries_total"`
}

func provideMetrics() (metricsOut, error) {
	reg := prometheus.NewRegistry()
	lifecycle := metrics.NewLifecycle()
	rateLimited := metrics.NewRateLimitExceededTotal()
	publishRetries := metrics.NewPublishRetriesTotal()

	groups := []struct {
		name string
		cs   []prometheus.Collector
	}{
		{"runtime", []prometheus.Collector{
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		}},
		{"http", mw.HTTPCollectors()},
		{"rate_limit_exceeded_total", []prometheus.Collector{rateLimited}},
		{"lifecycle", lifecycle.Collectors()},
		{"lifecycle_publish_retries_total", []prometheus.Collector{publishRetries}},
	}
	for _, g := range groups {
		for _, c := range g.cs {
			if err := reg.Register(c); err != nil {
				return metricsOut{}, fmt.Errorf("register %s: %w", g.name, err)
			}
		}
	}

	return metricsOut{
		Registry:               reg,
		Gatherer:               reg,
		Lifecycle:              lifecycle,
		RateLimitExceededTotal: rateLimited,
		PublishRetriesTotal:    publishRetries,
	}, nil
}
