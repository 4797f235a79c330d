package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/dig"

	"cargaviva/internal/logx"
	"cargaviva/internal/transport/kafka"
)

// WorkerRunner runs the lifecycle history worker
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun consumes lifecycle events until the container context is cancelled
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

func runWorker(container *dig.Container) error {
	return container.Invoke(workerRun)
}

func workerRun(
	ctx context.Context,
	st *Storage,
	logger logx.Logger,
	consumer *kafka.Consumer,
) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS, KAFKA_LIFECYCLE_TOPIC and KAFKA_GROUP_ID")
	}
	defer closeWorker(st, logger, consumer)

	logger.Info("cargaviva history worker started")
	return consumer.Run(ctx)
}

func closeWorker(st *Storage, logger logx.Logger, consumer *kafka.Consumer) {
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	st.Close()
}
