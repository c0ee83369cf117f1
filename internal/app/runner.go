package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/dig"

	"courier-admin/internal/logx"
)

const shutdownTimeout = 15 * time.Second

// Runner runs the admin HTTP API
type Runner struct {
	runFn func(*dig.Container) error
}

// NewRunner returns a Runner bound to the default run loop
func NewRunner() *Runner {
	return &Runner{runFn: run}
}

// MustRun starts the HTTP server using the provided DI container
func (r *Runner) MustRun(container *dig.Container) {
	err := r.runFn(container)
	if err == nil {
		return
	}
	logger := containerLogger(container)
	switch {
	case errors.Is(err, context.Canceled):
		logger.Info("shutdown requested, exiting")
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("startup aborted: startup timeout exceeded")
	default:
		logger.Error("run error", logx.Err(err))
		_ = logger.Sync()
		panic(err)
	}
}

func containerLogger(container *dig.Container) logx.Logger {
	var logger logx.Logger
	if err := container.Invoke(func(l logx.Logger) { logger = l }); err != nil || logger == nil {
		return logx.Nop()
	}
	return logger
}

type runIn struct {
	dig.In

	Ctx    context.Context
	Logger logx.Logger
	Pool   *pgxpool.Pool
	Server *http.Server
	Pprof  *http.Server  `name:"pprof_server" optional:"true"`
	Redis  *redis.Client `optional:"true"`
}

func run(container *dig.Container) error {
	return container.Invoke(appRun)
}

func appRun(in runIn) error {
	errCh := make(chan error, 2)
	startServer(in.Server, in.Logger, "courier-admin", errCh)
	if in.Pprof != nil {
		startServer(in.Pprof, in.Logger, "pprof", errCh)
	}

	var runErr error
	select {
	case <-in.Ctx.Done():
		in.Logger.Info("shutting down courier-admin")
	case runErr = <-errCh:
		in.Logger.Error("server stopped unexpectedly", logx.Err(runErr))
	}

	gracefulShutdown(in.Server, in.Logger, shutdownTimeout)
	if in.Pprof != nil {
		gracefulShutdown(in.Pprof, in.Logger, time.Second)
	}
	closeResources(in.Pool, in.Redis, in.Logger)
	return runErr
}

// startServer reports listen failures on errCh, or only logs them when errCh is nil.
func startServer(server *http.Server, logger logx.Logger, name string, errCh chan<- error) {
	go func() {
		logger.Info("listening", logx.String("server", name), logx.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		err = fmt.Errorf("%s listen: %w", name, err)
		if errCh == nil {
			logger.Error("server stopped", logx.Err(err))
			return
		}
		errCh <- err
	}()
}

func gracefulShutdown(srv *http.Server, logger logx.Logger, timeout time.Duration) {
	shCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shCtx); err != nil {
		logger.Warn("graceful shutdown error", logx.String("addr", srv.Addr), logx.Err(err))
		if err := srv.Close(); err != nil {
			logger.Warn("server close error", logx.Err(err))
		}
	}
}

func closeResources(pool *pgxpool.Pool, rdb *redis.Client, logger logx.Logger) {
	if rdb != nil {
		if err := rdb.Close(); err != nil {
			logger.Warn("redis close error", logx.Err(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	_ = logger.Sync()
}
