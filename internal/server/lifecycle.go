// Package server exposes the Alliance Wars engine over HTTP and manages the
// process lifecycle around it: ordered service startup, signal handling, and
// reverse-order graceful shutdown.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// Service is a long-running component under lifecycle control.
type Service interface {
	// Start runs the service and blocks until it stops or fails.
	Start() error
	// Stop asks the service to shut down gracefully.
	Stop()
}

// FuncService adapts a start/stop function pair into a Service.
type FuncService struct {
	StartFn func() error
	StopFn  func()
}

// Start calls the start function.
func (f *FuncService) Start() error { return f.StartFn() }

// Stop calls the stop function.
func (f *FuncService) Stop() { f.StopFn() }

// Lifecycle starts registered services together and stops them in reverse
// registration order on SIGINT/SIGTERM, context cancellation, or the first
// service failure.
type Lifecycle struct {
	logger  *zap.Logger
	entries []entry
}

type entry struct {
	name string
	svc  Service
}

// NewLifecycle creates an empty Lifecycle.
//
// Precondition: logger must be non-nil.
func NewLifecycle(logger *zap.Logger) *Lifecycle {
	return &Lifecycle{logger: logger}
}

// Add registers a named service. Registration order is start order; stop
// order is the reverse, so dependencies register before their dependents.
//
// Precondition: must not be called after Run.
func (l *Lifecycle) Add(name string, svc Service) {
	l.entries = append(l.entries, entry{name: name, svc: svc})
}

// Run starts every registered service and blocks until a termination signal
// arrives, the context is cancelled, or a service fails. It then stops all
// services in reverse order.
//
// Postcondition: every registered service's Stop has run when Run returns.
func (l *Lifecycle) Run(ctx context.Context) error {
	start := time.Now()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	failures := make(chan error, len(l.entries))
	for _, e := range l.entries {
		e := e
		go func() {
			l.logger.Info("starting service", zap.String("service", e.name))
			if err := e.svc.Start(); err != nil {
				failures <- fmt.Errorf("service %s: %w", e.name, err)
				cancel()
			}
		}()
	}
	l.logger.Info("services launched", zap.Int("count", len(l.entries)))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	select {
	case sig := <-sigCh:
		l.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
	case err := <-failures:
		l.logger.Error("service failed, shutting down", zap.Error(err))
	case <-ctx.Done():
		l.logger.Info("context cancelled, shutting down")
	}

	l.stopAll()

	l.logger.Info("shutdown complete", zap.Duration("uptime", time.Since(start)))
	return nil
}

// stopAll stops services newest-first.
func (l *Lifecycle) stopAll() {
	for i := len(l.entries) - 1; i >= 0; i-- {
		e := l.entries[i]
		stopStart := time.Now()
		e.svc.Stop()
		l.logger.Info("service stopped",
			zap.String("service", e.name),
			zap.Duration("elapsed", time.Since(stopStart)),
		)
	}
}
