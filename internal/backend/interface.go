package backend

import (
	"context"

	"bankfolio/internal/sheets"
)

// Factory creates snapshot exporters based on configuration
type Factory interface {
	// CreateExporter creates the exporter selected by config.Type
	CreateExporter(ctx context.Context, config Config) (sheets.SnapshotWriter, error)
}

// Config holds configuration for exporter creation
type Config struct {
	Type ExporterType

	// Google Sheets specific
	GoogleSpreadsheetID      string
	GoogleServiceAccountJSON string
	GoogleServiceAccountFile string
	SheetPrefix              string
}

// ExporterType represents the type of export backend
type ExporterType string

const (
	MemoryExporter ExporterType = "memory"
	SheetsExporter ExporterType = "sheets"
)

// String implements fmt.Stringer
func (et ExporterType) String() string {
	return string(et)
}

// IsValid returns true if the exporter type is valid
func (et ExporterType) IsValid() bool {
	switch et {
	case MemoryExporter, SheetsExporter:
		return true
	default:
		return false
	}
}
