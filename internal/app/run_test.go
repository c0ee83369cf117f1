package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/dig"

	"courier-admin/internal/logx"
	testlog "courier-admin/internal/testutil"
)

func TestGracefulShutdown_DoesNotPanic(t *testing.T) {
	t.Parallel()

	srv := &http.Server{
		Addr:    "127.0.0.1:0",
		Handler: http.NewServeMux(),
	}
	require.NotPanics(t, func() {
		gracefulShutdown(srv, logx.Nop(), 100*time.Millisecond)
	})
}

func containerWithRecorder(t *testing.T) (*dig.Container, *testlog.Recorder) {
	t.Helper()

	rec := testlog.New()
	container := dig.New()
	require.NoError(t, container.Provide(func() logx.Logger {
		return rec.Logger()
	}))
	return container, rec
}

func TestRunner_MustRun_ShutdownRequested(t *testing.T) {
	t.Parallel()

	container, rec := containerWithRecorder(t)
	r := &Runner{runFn: func(*dig.Container) error { return context.Canceled }}

	r.MustRun(container)
	require.True(t, rec.Has("shutdown requested, exiting"))
}

func TestRunner_MustRun_StartupTimeout(t *testing.T) {
	t.Parallel()

	container, rec := containerWithRecorder(t)
	r := &Runner{runFn: func(*dig.Container) error { return context.DeadlineExceeded }}

	r.MustRun(container)
	require.True(t, rec.Has("startup aborted: startup timeout exceeded"))
}

func TestRunner_MustRun_PanicsOnOtherError(t *testing.T) {
	t.Parallel()

	container, rec := containerWithRecorder(t)
	r := &Runner{runFn: func(*dig.Container) error { return errors.New("boom") }}

	require.Panics(t, func() { r.MustRun(container) })
	require.True(t, rec.Has("run error"))
}

func TestNewRunner_DefaultFields(t *testing.T) {
	t.Parallel()

	r := NewRunner()
	require.NotNil(t, r)
	require.NotNil(t, r.runFn)
	require.Equal(t, fmt.Sprintf("%p", run), fmt.Sprintf("%p", r.runFn))
}

func TestAppRun_StopsOnContextCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	rec := testlog.New()

	done := make(chan error, 1)
	go func() {
		done <- appRun(runIn{
			Ctx:    ctx,
			Logger: rec.Logger(),
			Server: &http.Server{Addr: "127.0.0.1:0", Handler: http.NewServeMux()},
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("appRun did not return after cancel")
	}
	require.True(t, rec.Has("shutting down courier-admin"))
}

func TestAppRun_ReturnsListenError(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	err := appRun(runIn{
		Ctx:    context.Background(),
		Logger: rec.Logger(),
		Server: &http.Server{Addr: "256.0.0.1:bad", Handler: http.NewServeMux()},
	})
	require.Error(t, err)
	require.Contains(t, err.Error(), "courier-admin listen")
	require.True(t, rec.Has("server stopped unexpectedly"))
}
