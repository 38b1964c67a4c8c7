package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"bankfolio/internal/amqp"
	"bankfolio/internal/core"
	"bankfolio/internal/sheets/memory"

	"github.com/shopspring/decimal"
)

type stubSource struct {
	snap core.Snapshot
	err  error
}

func (s stubSource) Snapshot(context.Context) (core.Snapshot, error) {
	return s.snap, s.err
}

type failingWriter struct{}

func (failingWriter) WriteSnapshot(context.Context, core.Snapshot) error {
	return errors.New("quota exceeded")
}

func sampleSnapshot() core.Snapshot {
	return core.Snapshot{
		Accounts: []core.Account{{ID: 1, Type: "Savings", Currency: "USD", ExchangeRate: decimal.NewFromInt(1), Balance: decimal.NewFromInt(100)}},
		Assets:   []core.Asset{{ID: 2, Name: "Gold", Quantity: decimal.NewFromInt(1), PricePerUnit: decimal.NewFromInt(50)}},
		TakenAt:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestExportWorker_HandleLedgerEvent(t *testing.T) {
	store := memory.New()
	w := NewExportWorker(stubSource{snap: sampleSnapshot()}, store)

	msg := amqp.NewLedgerEventMessage("account", "created", 1)
	if err := w.HandleLedgerEvent(context.Background(), msg); err != nil {
		t.Fatalf("HandleLedgerEvent() error = %v", err)
	}

	last, ok := store.Last()
	if !ok || len(last.Accounts) != 1 || len(last.Assets) != 1 {
		t.Fatalf("snapshot not exported: %+v", last)
	}
	if store.Writes() != 1 {
		t.Fatalf("expected 1 write, got %d", store.Writes())
	}
}

func TestExportWorker_SourceError(t *testing.T) {
	store := memory.New()
	w := NewExportWorker(stubSource{err: errors.New("db locked")}, store)

	if err := w.ExportNow(context.Background()); err == nil {
		t.Fatal("expected error when snapshot fails")
	}
	if store.Writes() != 0 {
		t.Fatal("nothing should be written when the snapshot fails")
	}
}

func TestExportWorker_WriterError(t *testing.T) {
	w := NewExportWorker(stubSource{snap: sampleSnapshot()}, failingWriter{})

	err := w.HandleLedgerEvent(context.Background(), amqp.NewLedgerEventMessage("asset", "deleted", 2))
	if err == nil {
		t.Fatal("expected error from writer")
	}
}

type countingExporter struct {
	calls atomic.Int32
	err   error
}

func (c *countingExporter) ExportNow(context.Context) error {
	c.calls.Add(1)
	return c.err
}

func TestScheduler_ExportsOnStartAndTick(t *testing.T) {
	exp := &countingExporter{}
	s := NewScheduler(exp, 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Fatal("scheduler should be running")
	}

	deadline := time.Now().Add(2 * time.Second)
	for exp.calls.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("expected at least 2 exports, got %d", exp.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}

	stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
	defer stopCancel()
	if err := s.Stop(stopCtx); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if s.IsRunning() {
		t.Fatal("scheduler should not be running after Stop")
	}
}

func TestScheduler_KeepsRunningAfterFailure(t *testing.T) {
	exp := &countingExporter{err: errors.New("offline")}
	s := NewScheduler(exp, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for exp.calls.Load() < 3 {
		if time.Now().After(deadline) {
			t.Fatalf("scheduler stopped retrying, calls=%d", exp.calls.Load())
		}
		time.Sleep(5 * time.Millisecond)
	}
	_ = s.Stop(context.Background())
}

func TestScheduler_StartTwice(t *testing.T) {
	s := NewScheduler(&countingExporter{}, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	defer s.Stop(context.Background())

	if err := s.Start(ctx); err == nil {
		t.Error("expected error when starting already running scheduler")
	}
}

func TestScheduler_StopNotRunning(t *testing.T) {
	s := NewScheduler(&countingExporter{}, time.Minute)
	if err := s.Stop(context.Background()); err != nil {
		t.Errorf("Stop() on idle scheduler error = %v", err)
	}
}

func TestScheduler_RejectsNonPositiveInterval(t *testing.T) {
	s := NewScheduler(&countingExporter{}, 0)
	if err := s.Start(context.Background()); err == nil {
		t.Fatal("expected error for zero interval")
	}
	if s.IsRunning() {
		t.Fatal("scheduler must not run with zero interval")
	}
}
