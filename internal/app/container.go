package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"courier-admin/internal/auth"
	"courier-admin/internal/cache/rediscache"
	"courier-admin/internal/config"
	"courier-admin/internal/http/handlers"
	"courier-admin/internal/http/middleware"
	"courier-admin/internal/http/middleware/ratelimit"
	"courier-admin/internal/http/pprofserver"
	"courier-admin/internal/http/router"
	"courier-admin/internal/logx"
	"courier-admin/internal/metrics"
	"courier-admin/internal/repository"
	"courier-admin/internal/service/directory"
	"courier-admin/internal/service/shipment"
)

const (
	dbConnectRetries = 10
	dbConnectDelay   = time.Second
	cacheKeyPrefix   = "courier-admin:"
)

type (
	dbConnectFunc func(context.Context, logx.Logger, string, int, time.Duration) (*pgxpool.Pool, error)
	redisDialFunc func(ctx context.Context, addr, password string, db int) (*redis.Client, error)
)

// ContainerBuilder is a dig container builder.
type ContainerBuilder struct {
	dbConnect dbConnectFunc
	redisDial redisDialFunc
	logFatalf func(string, ...interface{})
}

// NewContainerBuilder returns a new dig container builder
func NewContainerBuilder() *ContainerBuilder {
	return &ContainerBuilder{
		dbConnect: connectDbWithRetry,
		redisDial: rediscache.Dial,
		logFatalf: log.Fatalf,
	}
}

// WithDBConnect sets the database connection function
func (b *ContainerBuilder) WithDBConnect(fn dbConnectFunc) *ContainerBuilder {
	if fn != nil {
		b.dbConnect = fn
	}
	return b
}

// WithRedisDial sets the redis dial function
func (b *ContainerBuilder) WithRedisDial(fn redisDialFunc) *ContainerBuilder {
	if fn != nil {
		b.redisDial = fn
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

// MustBuild builds the admin API container
func (b *ContainerBuilder) MustBuild(ctx context.Context) *dig.Container {
	container, err := b.build(ctx)
	if err != nil {
		b.logFatalf("failed to build container: %v", err)
	}
	return container
}

// MustBuildWorker builds the ingest worker container
func (b *ContainerBuilder) MustBuildWorker(ctx context.Context) *dig.Container {
	container, err := b.buildWorker(ctx)
	if err != nil {
		b.logFatalf("failed to build worker container: %v", err)
	}
	return container
}

func (b *ContainerBuilder) build(ctx context.Context) (*dig.Container, error) {
	container := dig.New()

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerCache(container, b.redisDial); err != nil {
		return nil, fmt.Errorf("cache: %w", err)
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

	if err := registerCore(container, ctx); err != nil {
		return nil, fmt.Errorf("core: %w", err)
	}
	if err := registerDb(container, b.dbConnect); err != nil {
		return nil, fmt.Errorf("DB: %w", err)
	}
	if err := registerIngest(container); err != nil {
		return nil, fmt.Errorf("ingest: %w", err)
	}
	return container, nil
}

// MustBuildContainer builds the admin API container with default collaborators
func MustBuildContainer(ctx context.Context) *dig.Container {
	return NewContainerBuilder().MustBuild(ctx)
}

// MustBuildWorkerContainer builds the worker container with default collaborators
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

func registerCore(container *dig.Container, ctx context.Context) error {
	return provideAll(container,
		func() context.Context { return ctx },
		config.Load,
		NewLogger,
		newRegistry,
		func(r *prometheus.Registry) prometheus.Registerer { return r },
		func(r *prometheus.Registry) prometheus.Gatherer { return r },
		newMetrics,
	)
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

type metricsOut struct {
	dig.Out

	RateLimitExceeded prometheus.Counter     `name:"rate_limit_exceeded_total"`
	StatusUpdates     *prometheus.CounterVec `name:"shipment_status_updates_total"`
	CacheLookups      *prometheus.CounterVec `name:"directory_cache_lookups_total"`
	IngestEvents      *prometheus.CounterVec `name:"shipment_ingest_events_total"`
}

func newMetrics(reg prometheus.Registerer) (metricsOut, error) {
	out := metricsOut{
		RateLimitExceeded: metrics.NewRateLimitExceededTotal(),
		StatusUpdates:     metrics.NewShipmentStatusUpdatesTotal(),
		CacheLookups:      metrics.NewCacheLookupsTotal(),
		IngestEvents:      metrics.NewIngestEventsTotal(),
	}
	for _, c := range []prometheus.Collector{out.RateLimitExceeded, out.StatusUpdates, out.CacheLookups, out.IngestEvents} {
		if err := reg.Register(c); err != nil {
			return metricsOut{}, fmt.Errorf("register metrics: %w", err)
		}
	}
	return out, nil
}

func registerDb(container *dig.Container, dbConnect dbConnectFunc) error {
	providerDB := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*pgxpool.Pool, error) {
		return dbConnect(ctx, logger, cfg.DB.DSN(), dbConnectRetries, dbConnectDelay)
	}
	return provideAll(container,
		providerDB,
		repository.NewShipmentRepo,
		repository.NewBranchRepo,
		repository.NewUserRepo,
	)
}

// registerCache provides a nil client when REDIS_ADDR is empty.
func registerCache(container *dig.Container, dial redisDialFunc) error {
	providerRedis := func(ctx context.Context, cfg *config.Config, logger logx.Logger) (*redis.Client, error) {
		if cfg.Redis.Addr == "" {
			logger.Info("directory cache disabled")
			return nil, nil
		}
		c, err := dial(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		logger.Info("directory cache enabled", logx.String("addr", cfg.Redis.Addr), logx.Duration("ttl", cfg.Redis.TTL))
		return c, nil
	}
	return provideAll(container, providerRedis)
}

type shipmentServiceIn struct {
	dig.In

	Cfg      *config.Config
	Logger   logx.Logger
	Repo     *repository.ShipmentRepo
	Branches *repository.BranchRepo
	Users    *repository.UserRepo
	Updates  *prometheus.CounterVec `name:"shipment_status_updates_total"`
}

func newShipmentService(in shipmentServiceIn) *shipment.Service {
	return shipment.NewService(in.Repo, in.Branches, in.Users, in.Updates, in.Cfg.OperationTimeout, in.Logger)
}

type directoryServiceIn struct {
	dig.In

	Cfg      *config.Config
	Logger   logx.Logger
	Branches *repository.BranchRepo
	Users    *repository.UserRepo
	Redis    *redis.Client          `optional:"true"`
	Lookups  *prometheus.CounterVec `name:"directory_cache_lookups_total"`
}

func newDirectoryService(in directoryServiceIn) *directory.Service {
	var opts []directory.Option
	if in.Redis != nil {
		opts = append(opts, directory.WithCache(rediscache.New(in.Redis, cacheKeyPrefix, in.Cfg.Redis.TTL), in.Lookups))
	}
	return directory.NewService(in.Branches, in.Users, in.Cfg.OperationTimeout, in.Logger, opts...)
}

func registerDomainServices(container *dig.Container) error {
	return provideAll(container,
		newShipmentService,
		newDirectoryService,
		func(s *shipment.Service) handlers.ShipmentUsecase { return s },
		func(s *directory.Service) handlers.DirectoryUsecase { return s },
	)
}

func newVerifier(cfg *config.Config) (middleware.TokenVerifier, error) {
	return auth.NewVerifier(cfg.Auth.SessionSecret)
}

type routerIn struct {
	dig.In

	Cfg       *config.Config
	Logger    logx.Logger
	Verifier  middleware.TokenVerifier
	Metrics   *middleware.HTTPMetrics
	Gatherer  prometheus.Gatherer
	RateLimit *ratelimit.Middleware
	Base      *handlers.Handlers
	Shipments *handlers.ShipmentHandler
	Directory *handlers.DirectoryHandler
}

func newRouter(in routerIn) http.Handler {
	// must exceed the service operation timeout
	timeout := in.Cfg.OperationTimeout + 2*time.Second
	return router.New(router.Deps{
		Logger:    in.Logger,
		Verifier:  in.Verifier,
		Metrics:   in.Metrics,
		Gatherer:  in.Gatherer,
		RateLimit: in.RateLimit,
		Timeout:   timeout,
		Base:      in.Base,
		Shipments: in.Shipments,
		Directory: in.Directory,
	})
}

type pprofOut struct {
	dig.Out

	Server *http.Server `name:"pprof_server"`
}

func newPprofServer(cfg *config.Config, gatherer prometheus.Gatherer) pprofOut {
	return pprofOut{Server: pprofserver.New(pprofserver.Config{
		Addr:    cfg.Pprof.Addr,
		User:    cfg.Pprof.User,
		Pass:    cfg.Pprof.Pass,
		Metrics: promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}),
	})}
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
		newVerifier,
		middleware.NewHTTPMetrics,
		newRateLimitClock,
		newRateLimiter,
		newRateLimitMiddleware,
		handlers.New,
		handlers.NewShipmentHandler,
		handlers.NewDirectoryHandler,
		newRouter,
		serverProvider,
		newPprofServer,
	)
}
