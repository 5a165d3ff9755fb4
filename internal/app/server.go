package app

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

const defaultShutdownTimeout = 10 * time.Second

// Start serves HTTP on the configured address. The returned channel is
// closed once a termination signal arrives and the app stopped accepting
// readiness probes.
func (a *App) Start() <-chan struct{} {
	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		err := a.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server stopped unexpectedly", "error", err)
			os.Exit(1)
		}
	}()
	a.ready.Store(true)

	return a.awaitSignal()
}

// Serve runs the HTTP server on l. Used by tests that need a random port.
func (a *App) Serve(l net.Listener) <-chan error {
	errChan := make(chan error, 1)
	a.ready.Store(true)

	go func() {
		defer close(errChan)
		errChan <- a.httpServer.Serve(l)
	}()

	return errChan
}

func (a *App) awaitSignal() <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
		defer signal.Stop(sig)

		received := <-sig
		slog.Info("termination signal received", "signal", received.String())
		a.drain()
	}()

	return done
}

// drain flips readiness off and cancels background jobs such as the session
// cleanup ticker and the MQ consumers.
func (a *App) drain() {
	a.ready.Store(false)
	if a.cancel != nil {
		a.cancel()
	}
}

// ShutdownTimeout bounds Stop. Configured by app.shutdown_timeout_seconds.
func (a *App) ShutdownTimeout() time.Duration {
	if a.config == nil {
		return defaultShutdownTimeout
	}
	if d := a.config.GetSecond("app.shutdown_timeout_seconds"); d > 0 {
		return d
	}
	return defaultShutdownTimeout
}

// Stop shuts the HTTP server down, waits for background goroutines and then
// releases every resource registered in initClosers.
func (a *App) Stop(ctx context.Context) {
	a.drain()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}

	if err := a.goroutine.Wait(); err != nil {
		slog.ErrorContext(ctx, "background goroutine returned error", "error", err)
	}

	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
	slog.InfoContext(ctx, "application stopped")
}
