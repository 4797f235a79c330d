package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"cargaviva/internal/config"
	"cargaviva/internal/http/handlers"
	"cargaviva/internal/http/middleware/ratelimit"
	"cargaviva/internal/http/pprofserver"
	"cargaviva/internal/http/router"
	"cargaviva/internal/logx"
	"cargaviva/internal/metrics"
	"cargaviva/internal/service/assignment"
	"cargaviva/internal/service/history"
	"cargaviva/internal/service/lifecycle"
	"cargaviva/internal/service/load"
	"cargaviva/internal/service/views"
	"cargaviva/internal/transport/kafka"
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect  dbConnectFunc
	loadConfig func() (*config.Config, error)
	logFatalf  func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect:  connectDbWithRetry,
		loadConfig: config.Load,
		logFatalf:  log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithConfig replaces config loading with a fixed configuration
func (b *ContainerBuilder) WithConfig(cfg *config.Config) *ContainerBuilder {
	if cfg != nil {
		b.loadConfig = func() (*config.Config, error) { return cfg, nil }
	}
	return b
}

// WithLogFatalf sets the log.Fatalf function
func (b *ContainerBuilder) WithLogFatalf(fn func(string, ...interface{})) *ContainerBuilder {
	if fn != nil {
		b.logFatalf = fn
	}
	return b
}

// MustBuild builds the API container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the history worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStorage(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerDomainServices(container); err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}
	if err := registerHTTP(container); err != nil {
		return nil, fmt.Errorf("http: %w", err)
	}
	return container, nil
}

func (b *ContainerBuilder) buildWorker(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx, b.loadConfig); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerStorage(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if err := registerWorker(container); err != nil {
		return nil, fmt.Errorf("worker: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the API container from the environment
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container from the environment
func MustBuildWorkerContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuildWorker(ctx)
}

func provideAll(container *dig.Container, providers ...any) error {
	for _, provider := range providers {
		if err := container.Provide(provider); err != nil {
			return fmt.Errorf("provide %T: %w", provider, err)
		}
	}
	return nil
}

func registerCore(container *dig.Container, ctx context.Context, loadConfig func() (*config.Config, error)) error {
	return provideAll(container,
		func() context.Context { return ctx },
		loadConfig,
		NewLogger,
		provideMetrics,
	)
}

func registerStorage(container *dig.Container, connect dbConnectFunc) error {
	return provideAll(container, provideStorage(connect))
}

type publisherCloser func() error

type publisherOut struct {
	dig.Out

	Publisher lifecycle.EventPublisher
	Closer    publisherCloser
}

type publisherIn struct {
	dig.In

	Cfg      *config.Config
	Logger   logx.Logger
	Recorder *history.Recorder
	Retries  prometheus.Counter `name:"lifecycle_publish_retries_total"`
}

// providePublisher sends events to kafka when brokers are configured and
// records them straight into history otherwise.
func providePublisher(in publisherIn) (publisherOut, error) {
	if !in.Cfg.Kafka.Enabled() {
		in.Logger.Info("kafka disabled, lifecycle events recorded in process")
		return publisherOut{Publisher: in.Recorder, Closer: func() error { return nil }}, nil
	}
	p, err := kafka.NewPublisher(in.Logger, in.Cfg.Kafka.Brokers, in.Cfg.Kafka.LifecycleTopic)
	if err != nil {
		return publisherOut{}, fmt.Errorf("kafka publisher: %w", err)
	}
	return publisherOut{
		Publisher: kafka.NewRetryingPublisher(p, in.Logger, in.Retries, kafka.DefaultRetryConfig),
		Closer:    p.Close,
	}, nil
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		func(st *Storage, cfg *config.Config, logger logx.Logger) *history.Recorder {
			return history.NewRecorder(st.Events, cfg.Lifecycle.OperationTimeout, logger)
		},
		providePublisher,
		func(
			st *Storage,
			pub lifecycle.EventPublisher,
			m *metrics.Lifecycle,
			cfg *config.Config,
			logger logx.Logger,
		) *lifecycle.Coordinator {
			return lifecycle.NewCoordinator(st.Lifecycle, pub, m, cfg.Lifecycle.OperationTimeout, logger)
		},
		func(st *Storage, cfg *config.Config, logger logx.Logger) *load.Registry {
			return load.NewRegistry(st.Loads, cfg.Lifecycle.OperationTimeout, logger)
		},
		func(st *Storage, cfg *config.Config) *assignment.Ledger {
			return assignment.NewLedger(st.Assignments, cfg.Lifecycle.OperationTimeout)
		},
		func(loads *load.Registry, ledger *assignment.Ledger, rec *history.Recorder, cfg *config.Config) *views.Service {
			return views.NewService(loads, ledger, rec, cfg.Lifecycle.UrgentWindow, cfg.Lifecycle.OperationTimeout)
		},
	)
}

type routerIn struct {
	dig.In

	Logger      logx.Logger
	Base        *handlers.Handlers
	Loads       *handlers.LoadHandler
	Assignments *handlers.AssignmentHandler
	Lifecycle   *handlers.LifecycleHandler
	Views       *handlers.ViewHandler
	RateLimit   *ratelimit.Middleware
	Gatherer    prometheus.Gatherer
}

func newRouter(in routerIn) http.Handler {
	return router.New(router.Deps{
		Logger:      in.Logger,
		Base:        in.Base,
		Loads:       in.Loads,
		Assignments: in.Assignments,
		Lifecycle:   in.Lifecycle,
		Views:       in.Views,
		RateLimit:   in.RateLimit,
		Gatherer:    in.Gatherer,
	})
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func providePprofServer(cfg *config.Config) pprofOut {
	if !cfg.Pprof.Enabled {
		return pprofOut{}
	}
	return pprofOut{Server: &http.Server{
		Addr:              cfg.Pprof.Addr,
		Handler:           pprofserver.Handler(pprofserver.Credentials{User: cfg.Pprof.User, Pass: cfg.Pprof.Pass}),
		ReadHeaderTimeout: 5 * time.Second,
	}}
}

func registerHTTP(container *dig.Container) error {
	serverProvider := func(cfg *config.Config, mux http.Handler) *http.Server {
		return &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Port),
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
		}
	}
	return provideAll(container,
		handlers.New,
		handlers.NewLoadUsecase,
		handlers.NewLoadHandler,
		handlers.NewAssignmentUsecase,
		handlers.NewAssignmentHandler,
		handlers.NewLifecycleUsecase,
		handlers.NewLifecycleHandler,
		handlers.NewViewUsecase,
		handlers.NewViewHandler,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		newRouter,
		serverProvider,
		providePprofServer,
	)
}

func registerWorker(container *dig.Container) error {
	return provideAll(container,
		func(st *Storage, cfg *config.Config, logger logx.Logger) (*history.Recorder, error) {
			if st.Driver != config.StorageDriverPostgres {
				return nil, fmt.Errorf("worker needs postgres storage, got %q", st.Driver)
			}
			return history.NewRecorder(st.Events, cfg.Lifecycle.OperationTimeout, logger), nil
		},
		func(cfg *config.Config, logger logx.Logger, rec *history.Recorder) (*kafka.Consumer, error) {
			k := cfg.Kafka
			return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.LifecycleTopic, rec.Record)
		},
	)
}
