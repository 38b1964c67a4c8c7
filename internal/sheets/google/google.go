package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"bankfolio/internal/core"
	ports "bankfolio/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

// Tab names, prefixed with EXPORT_SHEET_PREFIX when set.
const (
	AccountsTab     = "Accounts"
	OutcomesTab     = "Outcomes"
	AssetsTab       = "Assets"
	DistributionTab = "Distribution"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	prefix        string
}

// Ensure interface conformance
var _ ports.SnapshotWriter = (*Client)(nil)

// New wraps an existing Sheets service.
func New(svc *gsheet.Service, spreadsheetID, prefix string) *Client {
	return &Client{svc: svc, spreadsheetID: spreadsheetID, prefix: prefix}
}

// Credentials selects the service account used to reach the spreadsheet.
// Inline JSON wins over the file.
type Credentials struct {
	JSON string
	File string
}

// NewFromEnv creates a Sheets client using environment variables.
// Required: GOOGLE_SPREADSHEET_ID and service account credentials.
// Optional: EXPORT_SHEET_PREFIX (e.g. "2025 " gives "2025 Accounts").
func NewFromEnv(ctx context.Context) (*Client, error) {
	creds := Credentials{
		JSON: os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		File: os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"),
	}
	if strings.TrimSpace(creds.JSON) == "" && strings.TrimSpace(creds.File) == "" {
		creds.File = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}
	return Open(ctx, os.Getenv("GOOGLE_SPREADSHEET_ID"), os.Getenv("EXPORT_SHEET_PREFIX"), creds)
}

// Open creates a Sheets client for spreadsheetID with explicit credentials.
func Open(ctx context.Context, spreadsheetID, prefix string, creds Credentials) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}

	svc, err := newSheetsService(ctx, creds)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return New(svc, spreadsheetID, prefix), nil
}

// newSheetsService initializes a Sheets Service using Service Account credentials.
func newSheetsService(ctx context.Context, creds Credentials) (*gsheet.Service, error) {
	serviceAccountJSON := strings.TrimSpace(creds.JSON)
	serviceAccountFile := strings.TrimSpace(creds.File)

	var credentialsJSON []byte
	var err error

	switch {
	case serviceAccountJSON != "":
		slog.DebugContext(ctx, "Using inline JSON credentials")
		credentialsJSON = []byte(serviceAccountJSON)
	case serviceAccountFile != "":
		slog.DebugContext(ctx, "Reading credentials from file", "path", serviceAccountFile)
		credentialsJSON, err = os.ReadFile(serviceAccountFile)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}

	service, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets service created successfully")
	return service, nil
}

func (c *Client) tab(name string) string {
	return c.prefix + name
}

// WriteSnapshot clears the export tabs and rewrites them with one batch
// update, so the spreadsheet mirrors the ledger.
func (c *Client) WriteSnapshot(ctx context.Context, snap core.Snapshot) error {
	if c.svc == nil {
		return errors.New("sheets service not initialized")
	}

	tables := []struct {
		tab  string
		rows [][]interface{}
	}{
		{c.tab(AccountsTab), accountRows(snap.Accounts)},
		{c.tab(OutcomesTab), outcomeRows(snap.Outcomes)},
		{c.tab(AssetsTab), assetRows(snap.Assets)},
		{c.tab(DistributionTab), distributionRows(snap)},
	}

	clearReq := &gsheet.BatchClearValuesRequest{}
	update := &gsheet.BatchUpdateValuesRequest{ValueInputOption: "RAW"}
	for _, t := range tables {
		clearReq.Ranges = append(clearReq.Ranges, fmt.Sprintf("%s!A:Z", t.tab))
		update.Data = append(update.Data, &gsheet.ValueRange{
			Range:  fmt.Sprintf("%s!A1", t.tab),
			Values: t.rows,
		})
	}

	if _, err := c.svc.Spreadsheets.Values.BatchClear(c.spreadsheetID, clearReq).Context(ctx).Do(); err != nil {
		return fmt.Errorf("clear export tabs: %w", err)
	}
	resp, err := c.svc.Spreadsheets.Values.BatchUpdate(c.spreadsheetID, update).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write export tabs: %w", err)
	}

	slog.InfoContext(ctx, "Exported ledger snapshot to Google Sheets",
		"spreadsheet_id", c.spreadsheetID,
		"updated_cells", resp.TotalUpdatedCells,
		"accounts", len(snap.Accounts),
		"outcomes", len(snap.Outcomes),
		"assets", len(snap.Assets))
	return nil
}
