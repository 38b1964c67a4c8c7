package sheets

import (
	"context"

	"bankfolio/internal/core"
)

// Ports for outbound adapters.
type (
	// SnapshotWriter replaces the exported copy of the ledger with snap.
	SnapshotWriter interface {
		WriteSnapshot(ctx context.Context, snap core.Snapshot) error
	}
)
