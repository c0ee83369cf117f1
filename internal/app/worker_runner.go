package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/dig"

	"courier-admin/internal/config"
	"courier-admin/internal/logx"
	"courier-admin/internal/repository"
	"courier-admin/internal/service/ingest"
	"courier-admin/internal/transport/kafka"
)

type ingestIn struct {
	dig.In

	Cfg    *config.Config
	Logger logx.Logger
	Repo   *repository.ShipmentRepo
	Events *prometheus.CounterVec `name:"shipment_ingest_events_total"`
}

func newIngestProcessor(in ingestIn) *ingest.Processor {
	return ingest.NewProcessor(in.Repo, in.Events, in.Cfg.OperationTimeout, in.Logger)
}

func newShipmentsConsumer(cfg *config.Config, logger logx.Logger, p *ingest.Processor) (*kafka.Consumer, error) {
	k := cfg.Kafka
	return kafka.NewConsumer(logger, k.Brokers, k.GroupID, k.ShipmentsTopic, makeShipmentsKafka(p))
}

func registerIngest(container *dig.Container) error {
	return provideAll(container,
		newIngestProcessor,
		newShipmentsConsumer,
		// pprof and the ingest counters, when PPROF_ADDR is set
		newPprofServer,
	)
}

// WorkerRunner runs the shipment ingest consumer
type WorkerRunner struct {
	runFn func(*dig.Container) error
}

// NewWorkerRunner returns a new WorkerRunner
func NewWorkerRunner() *WorkerRunner {
	return &WorkerRunner{runFn: runWorker}
}

// MustRun starts the consumer using the provided DI container
func (r *WorkerRunner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil || errors.Is(err, context.Canceled) {
		return
	}
	panic(err)
}

type workerIn struct {
	dig.In

	Ctx      context.Context
	Pool     *pgxpool.Pool
	Logger   logx.Logger
	Consumer *kafka.Consumer
	Debug    *http.Server `name:"pprof_server" optional:"true"`
}

func runWorker(container *dig.Container) error {
	return container.Invoke(func(in workerIn) error {
		return workerRun(in.Ctx, in.Pool, in.Logger, in.Consumer, in.Debug)
	})
}

func workerRun(ctx context.Context, pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer, debug *http.Server) error {
	if consumer == nil {
		return fmt.Errorf("kafka consumer is nil: set KAFKA_BROKERS, KAFKA_GROUP_ID and KAFKA_SHIPMENTS_TOPIC")
	}
	defer closeWorker(pool, logger, consumer, debug)

	if debug != nil {
		startServer(debug, logger, "worker-debug", nil)
	}

	logger.Info("shipment ingest worker started")
	return consumer.Run(ctx)
}

func closeWorker(pool *pgxpool.Pool, logger logx.Logger, consumer *kafka.Consumer, debug *http.Server) {
	if debug != nil {
		gracefulShutdown(debug, logger, time.Second)
	}
	if consumer != nil {
		if err := consumer.Close(); err != nil {
			logger.Error("kafka close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
