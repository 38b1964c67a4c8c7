package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"bankfolio/internal/amqp"
	"bankfolio/internal/core"
	"bankfolio/internal/sheets"
)

// SnapshotSource reads a consistent copy of the ledger.
type SnapshotSource interface {
	Snapshot(ctx context.Context) (core.Snapshot, error)
}

// ExportWorker keeps the exported copy of the ledger in step with the
// database. Exports are serialized; every export rewrites the whole copy.
type ExportWorker struct {
	source   SnapshotSource
	exporter sheets.SnapshotWriter

	mu sync.Mutex
}

func NewExportWorker(source SnapshotSource, exporter sheets.SnapshotWriter) *ExportWorker {
	return &ExportWorker{
		source:   source,
		exporter: exporter,
	}
}

// HandleLedgerEvent processes a single ledger event from AMQP
func (w *ExportWorker) HandleLedgerEvent(ctx context.Context, msg *amqp.LedgerEventMessage) error {
	slog.InfoContext(ctx, "Processing ledger event",
		"entity", msg.Entity,
		"action", msg.Action,
		"id", msg.ID)

	if err := w.ExportNow(ctx); err != nil {
		return fmt.Errorf("export after %s %s: %w", msg.Entity, msg.Action, err)
	}
	return nil
}

// ExportNow reads a snapshot and writes it through the exporter.
func (w *ExportWorker) ExportNow(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap, err := w.source.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	if err := w.exporter.WriteSnapshot(ctx, snap); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Exported ledger snapshot",
		"accounts", len(snap.Accounts),
		"outcomes", len(snap.Outcomes),
		"assets", len(snap.Assets))

	return nil
}
