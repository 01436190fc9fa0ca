package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

// Run serves HTTP until SIGINT/SIGTERM arrives or the listener fails, then
// shuts the server and every resource down within grace.
func (a *App) Run(grace time.Duration) error {
	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("http server listening", "address", a.httpServer.Addr)
		serveErr <- a.httpServer.ListenAndServe()
	}()

	var err error
	select {
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	case err = <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			err = fmt.Errorf("http server: %w", err)
		} else {
			err = nil
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	a.Stop(shutdownCtx)

	return err
}

// Stop drains in-flight requests, then closes resources. Instrumentation goes
// last so the other closers can still log.
func (a *App) Stop(ctx context.Context) {
	if err := a.httpServer.Shutdown(ctx); err != nil {
		slog.ErrorContext(ctx, "failed to close resources", "name", "HTTP Server", "error", err)
	}
	if a.cancel != nil {
		a.cancel()
	}

	slog.InfoContext(ctx, "application gracefully shutdown")
	for _, closer := range a.closers {
		if err := closer.fn(ctx); err != nil {
			slog.ErrorContext(ctx, "failed to close resources", "name", closer.name, "error", err)
		}
	}
}
