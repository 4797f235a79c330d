package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cargaviva/internal/http/handlers"
	mw "cargaviva/internal/http/middleware"
	"cargaviva/internal/http/middleware/ratelimit"
	"cargaviva/internal/logx"
)

const requestTimeout = 5 * time.Second

// Deps groups everything the router mounts.
type Deps struct {
	Logger      logx.Logger
	Base        *handlers.Handlers
	Loads       *handlers.LoadHandler
	Assignments *handlers.AssignmentHandler
	Lifecycle   *handlers.LifecycleHandler
	Views       *handlers.ViewHandler
	RateLimit   *ratelimit.Middleware
	Gatherer    prometheus.Gatherer
}

// New constructs a chi-based http.Handler with base middleware and routes.
func New(d Deps) http.Handler {
	if d.Logger == nil {
		d.Logger = logx.Nop()
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(mw.Observability(d.Logger))

	r.Get("/ping", d.Base.Ping)
	r.Method(http.MethodHead, "/healthcheck", http.HandlerFunc(d.Base.HealthcheckHead))
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	r.NotFound(d.Base.NotFound)
	r.MethodNotAllowed(d.Base.MethodNotAllowed)

	r.Group(func(r chi.Router) {
		r.Use(mw.Actor(d.Logger))
		if d.RateLimit != nil {
			r.Use(d.RateLimit.Handler())
		}

		r.Route("/loads", func(r chi.Router) {
			r.Post("/", d.Loads.Create)
			r.Get("/mine", d.Views.MyLoads)
			r.Get("/available", d.Views.Available)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", d.Loads.Get)
				r.Patch("/", d.Loads.Update)
				r.Delete("/", d.Loads.Delete)
				r.Post("/accept", d.Lifecycle.Accept)
				r.Post("/cancel", d.Lifecycle.CancelLoad)
				r.Get("/history", d.Views.History)
			})
		})

		r.Route("/assignments", func(r chi.Router) {
			r.Get("/mine", d.Views.MyAssignments)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", d.Assignments.Get)
				r.Post("/start", d.Lifecycle.StartTransit)
				r.Post("/deliver", d.Lifecycle.Deliver)
				r.Post("/cancel", d.Lifecycle.CancelAssignment)
			})
		})

		r.Get("/dashboard", d.Views.Dashboard)
	})

	return r
}
