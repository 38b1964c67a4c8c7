package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Exporter is what the scheduler triggers on every tick.
type Exporter interface {
	ExportNow(ctx context.Context) error
}

// Scheduler re-exports the ledger on a fixed interval, so the exported copy
// heals even when events were lost while the worker was down.
type Scheduler struct {
	exporter Exporter
	interval time.Duration

	// Lifecycle management
	mu      sync.Mutex
	running bool
	stopCh  chan struct{}
	doneCh  chan struct{}
}

func NewScheduler(exporter Exporter, interval time.Duration) *Scheduler {
	return &Scheduler{
		exporter: exporter,
		interval: interval,
	}
}

// Start begins the export loop. Returns an error if already running.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		return fmt.Errorf("export interval must be positive, got %v", s.interval)
	}

	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return fmt.Errorf("export scheduler is already running")
	}
	s.running = true
	s.stopCh = make(chan struct{})
	s.doneCh = make(chan struct{})
	s.mu.Unlock()

	go s.runLoop(ctx)

	slog.InfoContext(ctx, "Export scheduler started", "interval", s.interval)
	return nil
}

// Stop signals the loop and waits for the export in flight to finish.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	s.running = false
	close(s.stopCh)
	done := s.doneCh
	s.mu.Unlock()

	select {
	case <-done:
		slog.InfoContext(ctx, "Export scheduler stopped gracefully")
		return nil
	case <-ctx.Done():
		slog.WarnContext(ctx, "Export scheduler stop timed out")
		return ctx.Err()
	}
}

// IsRunning returns whether the scheduler is currently running
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Scheduler) runLoop(ctx context.Context) {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Export immediately on startup
	s.export(ctx)

	for {
		select {
		case <-s.stopCh:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.export(ctx)
		}
	}
}

func (s *Scheduler) export(ctx context.Context) {
	if err := s.exporter.ExportNow(ctx); err != nil {
		slog.ErrorContext(ctx, "Scheduled export failed", "error", err)
	}
}
