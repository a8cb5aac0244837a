// Package httpserver runs an http.Handler until its context is cancelled.
package httpserver

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"time"
)

const (
	DefaultReadTimeout       = 7 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultWriteTimeout      = 15 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultShutdownTimeout   = 10 * time.Second
)

// Option customizes the server.
type Option func(*settings)

type settings struct {
	logger          *slog.Logger
	shutdownTimeout time.Duration
	onShutdown      []func()
	listener        net.Listener
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(s *settings) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// OnShutdown registers fn to run when graceful shutdown starts.
func OnShutdown(fn func()) Option {
	return func(s *settings) {
		if fn != nil {
			s.onShutdown = append(s.onShutdown, fn)
		}
	}
}

// WithListener serves on an existing listener instead of dialing addr.
func WithListener(l net.Listener) Option {
	return func(s *settings) {
		s.listener = l
	}
}

// Serve listens on addr and blocks until ctx is done or the server fails.
// Cancelling ctx drains in-flight requests within the shutdown timeout.
func Serve(ctx context.Context, addr string, handler http.Handler, opts ...Option) error {
	cfg := settings{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		shutdownTimeout: DefaultShutdownTimeout,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadTimeout:       DefaultReadTimeout,
		ReadHeaderTimeout: DefaultReadHeaderTimeout,
		WriteTimeout:      DefaultWriteTimeout,
		IdleTimeout:       DefaultIdleTimeout,
	}
	for _, fn := range cfg.onShutdown {
		server.RegisterOnShutdown(fn)
	}

	listener := cfg.listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.logger.LogAttrs(ctx, slog.LevelInfo, "http server listening", slog.String("addr", listener.Addr().String()))
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	cfg.logger.LogAttrs(context.Background(), slog.LevelInfo, "http server shutting down", slog.String("addr", listener.Addr().String()))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	cfg.logger.LogAttrs(context.Background(), slog.LevelInfo, "http server stopped")
	return nil
}
