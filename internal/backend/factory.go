package backend

import (
	"context"
	"fmt"
	"log/slog"

	"bankfolio/internal/sheets"
	gsheet "bankfolio/internal/sheets/google"
	"bankfolio/internal/sheets/memory"
)

type sheetsOpener func(ctx context.Context, spreadsheetID, prefix string, creds gsheet.Credentials) (*gsheet.Client, error)

// DefaultFactory implements the Factory interface
type DefaultFactory struct {
	logger     *slog.Logger
	openSheets sheetsOpener
}

// NewFactory creates a new exporter factory
func NewFactory(logger *slog.Logger) Factory {
	if logger == nil {
		logger = slog.Default()
	}
	return &DefaultFactory{
		logger:     logger,
		openSheets: gsheet.Open,
	}
}

// CreateExporter implements Factory.CreateExporter
func (f *DefaultFactory) CreateExporter(ctx context.Context, config Config) (sheets.SnapshotWriter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Type {
	case SheetsExporter:
		return f.createSheetsExporter(ctx, config)
	case MemoryExporter:
		f.logger.Info("Initialized memory exporter")
		return memory.New(), nil
	default:
		return nil, fmt.Errorf("unsupported export backend: %s", config.Type)
	}
}

func (f *DefaultFactory) createSheetsExporter(ctx context.Context, config Config) (sheets.SnapshotWriter, error) {
	cli, err := f.openSheets(ctx, config.GoogleSpreadsheetID, config.SheetPrefix, gsheet.Credentials{
		JSON: config.GoogleServiceAccountJSON,
		File: config.GoogleServiceAccountFile,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Google Sheets exporter: %w", err)
	}

	f.logger.Info("Initialized Google Sheets exporter",
		"spreadsheet_id", config.GoogleSpreadsheetID,
		"prefix", config.SheetPrefix)
	return cli, nil
}
