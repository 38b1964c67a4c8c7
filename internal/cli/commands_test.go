package cli

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"
	"github.com/alecthomas/kong"
	"github.com/shopspring/decimal"

	"bankfolio/internal/backend"
	"bankfolio/internal/config"
	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
	"bankfolio/internal/services"
	"bankfolio/internal/sheets"
	"bankfolio/internal/sheets/memory"
	"bankfolio/internal/storage"
)

type testEnv struct {
	*Env
	out      *bytes.Buffer
	errOut   *bytes.Buffer
	asked    []string
	answer   bool
	settings *config.Settings
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dir := t.TempDir()

	repo, err := storage.NewSQLiteRepository(filepath.Join(dir, "ledger.db"))
	assert.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })

	te := &testEnv{
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
		settings: config.LoadSettings(filepath.Join(dir, "config.json")),
	}
	te.Env = &Env{
		Ledger:   services.NewLedgerService(repo, nil),
		Settings: te.settings,
		Config: &config.Config{
			Port:           "8081",
			SQLiteDBPath:   filepath.Join(dir, "ledger.db"),
			SettingsPath:   filepath.Join(dir, "config.json"),
			LogLevel:       "info",
			ExportBackend:  "memory",
			ExportInterval: 15 * time.Minute,
		},
		Out: te.out,
		Err: te.errOut,
	}
	te.Confirm = func(question string) (bool, error) {
		te.asked = append(te.asked, question)
		return te.answer, nil
	}
	return te
}

func (te *testEnv) run(t *testing.T, args ...string) error {
	t.Helper()
	te.out.Reset()
	return Run(args, te.Env, kong.Writers(te.out, te.errOut), kong.Exit(func(int) { t.Fatalf("unexpected exit for %v", args) }))
}

func (te *testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	err := te.run(t, args...)
	assert.NoError(t, err, "args: %v", args)
	return te.out.String()
}

func (te *testEnv) balance(t *testing.T, id int64) decimal.Decimal {
	t.Helper()
	a, err := te.Ledger.GetAccount(context.Background(), id)
	assert.NoError(t, err)
	return a.Balance
}

func TestAccountCommands(t *testing.T) {
	te := newTestEnv(t)

	t.Run("Add", func(t *testing.T) {
		out := te.mustRun(t, "account", "add", "Savings", "USD", "--rate", "32,5", "--income", "40", "--balance", "1000")
		assert.Contains(t, out, i18n.T(i18n.English, i18n.AccountAdded))
		assert.Contains(t, out, "#1 Savings")
	})

	t.Run("AddRejectsBadRate", func(t *testing.T) {
		err := te.run(t, "account", "add", "Cash", "TRY", "--rate", "0")
		var ve *core.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Equal(t, "exchange_rate", ve.Field)
	})

	t.Run("ListIsDefault", func(t *testing.T) {
		out := te.mustRun(t, "account")
		assert.Contains(t, out, "MONTHLY INCOME")
		assert.Contains(t, out, "Savings")
		assert.Contains(t, out, "32.5")
	})

	t.Run("UpdateKeepsOmittedFields", func(t *testing.T) {
		te.mustRun(t, "account", "update", "1", "--type", "Checking", "--no-income")
		a, err := te.Ledger.GetAccount(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Checking", a.Type)
		assert.Equal(t, "USD", a.Currency)
		assert.False(t, a.IncomePercentage.Valid)
		assert.True(t, a.Balance.Equal(decimal.NewFromInt(1000)))
	})

	t.Run("AdjustNegative", func(t *testing.T) {
		out := te.mustRun(t, "account", "adjust", "1", "--", "-250.5")
		assert.Contains(t, out, i18n.T(i18n.English, i18n.BalanceAdjusted))
		assert.True(t, te.balance(t, 1).Equal(decimal.RequireFromString("749.5")))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		err := te.run(t, "account", "update", "99", "--type", "X")
		assert.True(t, errors.Is(err, core.ErrNotFound))
	})

	t.Run("DeleteDeclined", func(t *testing.T) {
		te.answer = false
		out := te.mustRun(t, "account", "delete", "1")
		assert.Equal(t, 1, len(te.asked))
		assert.Contains(t, out, i18n.T(i18n.English, i18n.DeleteCancelled))
		_, err := te.Ledger.GetAccount(context.Background(), 1)
		assert.NoError(t, err)
	})

	t.Run("DeleteWithYes", func(t *testing.T) {
		out := te.mustRun(t, "account", "delete", "1", "--yes")
		assert.Equal(t, 1, len(te.asked))
		assert.Contains(t, out, i18n.T(i18n.English, i18n.AccountDeleted))
		_, err := te.Ledger.GetAccount(context.Background(), 1)
		assert.True(t, errors.Is(err, core.ErrNotFound))
	})
}

func TestOutcomeCommands(t *testing.T) {
	te := newTestEnv(t)
	te.mustRun(t, "account", "add", "Card", "TRY", "--rate", "1")
	te.mustRun(t, "account", "add", "A", "TRY", "--rate", "1", "--balance", "100")
	te.mustRun(t, "account", "add", "B", "TRY", "--rate", "1", "--balance", "100")

	out := te.mustRun(t, "outcome", "add", "1", "70", "Groceries", "--split", "2=40", "--split", "3=30,0")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.OutcomeAdded))
	assert.True(t, te.balance(t, 2).Equal(decimal.NewFromInt(100)))
	assert.True(t, te.balance(t, 3).Equal(decimal.NewFromInt(100)))

	out = te.mustRun(t, "outcome", "list")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "2=40, 3=30")

	t.Run("SplitMustMatchAmount", func(t *testing.T) {
		err := te.run(t, "outcome", "add", "1", "70", "Taxi", "--split", "2=10")
		assert.True(t, errors.Is(err, core.ErrValidation))
	})

	t.Run("DeleteReferencedAccount", func(t *testing.T) {
		err := te.run(t, "account", "delete", "2", "--yes")
		var inUse *core.AccountInUseError
		assert.True(t, errors.As(err, &inUse))
		assert.Equal(t, []int64{1}, inUse.OutcomeIDs)

		te.errOut.Reset()
		te.ReportError(err)
		assert.Contains(t, te.errOut.String(), i18n.T(i18n.English, i18n.AccountInUse))
	})

	t.Run("UpdateRemovesSplit", func(t *testing.T) {
		out := te.mustRun(t, "outcome", "update", "1", "--no-split", "--description", "Market")
		assert.Contains(t, out, i18n.T(i18n.English, i18n.OutcomeUpdated))
		assert.True(t, te.balance(t, 2).Equal(decimal.NewFromInt(100)))
		assert.True(t, te.balance(t, 3).Equal(decimal.NewFromInt(100)))

		o, err := te.Ledger.GetOutcome(context.Background(), 1)
		assert.NoError(t, err)
		assert.Equal(t, "Market", o.Description)
		assert.Equal(t, 0, len(o.Distributions))
	})

	t.Run("DeleteCreditsBack", func(t *testing.T) {
		te.mustRun(t, "outcome", "update", "1", "--split", "2=70")
		assert.True(t, te.balance(t, 2).Equal(decimal.NewFromInt(100)))

		out := te.mustRun(t, "outcome", "delete", "1", "-y")
		assert.Contains(t, out, i18n.T(i18n.English, i18n.OutcomeDeleted))
		assert.True(t, te.balance(t, 2).Equal(decimal.NewFromInt(170)))
		assert.True(t, te.balance(t, 3).Equal(decimal.NewFromInt(100)))
	})
}

func TestAssetCommands(t *testing.T) {
	te := newTestEnv(t)

	out := te.mustRun(t, "asset", "list")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.NoData))

	out = te.mustRun(t, "asset", "add", "Gold", "2", "150,5")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.AssetAdded))
	assert.Contains(t, out, "301.00")

	te.mustRun(t, "asset", "update", "1", "--quantity", "3")
	a, err := te.Ledger.GetAsset(context.Background(), 1)
	assert.NoError(t, err)
	assert.True(t, a.Quantity.Equal(decimal.NewFromInt(3)))
	assert.Equal(t, "Gold", a.Name)

	err = te.run(t, "asset", "add", "Silver", "lots", "1")
	var ve *core.ValidationError
	assert.True(t, errors.As(err, &ve))
	assert.Equal(t, "quantity", ve.Field)

	out = te.mustRun(t, "asset", "delete", "1", "--yes")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.AssetDeleted))
}

func TestSummaryAndDistribution(t *testing.T) {
	te := newTestEnv(t)
	te.mustRun(t, "account", "add", "Cash", "TRY", "--rate", "1", "--balance", "500")
	te.mustRun(t, "account", "add", "Card", "TRY", "--rate", "1")
	te.mustRun(t, "outcome", "add", "2", "25", "Taxi")
	te.mustRun(t, "asset", "add", "Gold", "3", "100")

	out := te.mustRun(t, "summary")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.TotalMoney))
	assert.Contains(t, out, "500.00")
	assert.Contains(t, out, "25.00")
	assert.Contains(t, out, "300.00")
	assert.Contains(t, out, core.DateOf(time.Now()).String())

	out = te.mustRun(t, "distribution")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.MoneyDistributionList))
	assert.Contains(t, out, "Cash")
	assert.Contains(t, out, "Gold")
}

func TestLangCommands(t *testing.T) {
	te := newTestEnv(t)

	out := te.mustRun(t, "lang")
	assert.Contains(t, out, "en (en, tr)")

	out = te.mustRun(t, "lang", "switch")
	assert.Contains(t, out, i18n.T(i18n.Turkish, i18n.LanguageChanged))
	assert.Equal(t, i18n.Turkish, config.LoadSettings(te.settings.Path()).Language())

	te.Lang = ""
	out = te.mustRun(t, "account", "add", "Kasa", "TRY", "--rate", "1")
	assert.Contains(t, out, i18n.T(i18n.Turkish, i18n.AccountAdded))

	// --lang overrides the settings file for one run.
	out = te.mustRun(t, "--lang", "en", "asset", "add", "Gold", "1", "1")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.AssetAdded))

	err := te.run(t, "lang", "set", "de")
	assert.True(t, errors.Is(err, core.ErrValidation))

	te.Lang = ""
	out = te.mustRun(t, "lang", "set", "EN")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.LanguageChanged))
	assert.Equal(t, i18n.English, te.settings.Language())
}

type memoryFactory struct {
	store *memory.Store
}

func (f memoryFactory) CreateExporter(context.Context, backend.Config) (sheets.SnapshotWriter, error) {
	return f.store, nil
}

func TestExportCommand(t *testing.T) {
	te := newTestEnv(t)
	store := memory.New()
	te.Exporters = memoryFactory{store: store}

	te.mustRun(t, "account", "add", "Cash", "TRY", "--rate", "1", "--balance", "10")
	out := te.mustRun(t, "export")
	assert.Contains(t, out, i18n.T(i18n.English, i18n.ExportCompleted))
	assert.Equal(t, 1, store.Writes())

	snap, ok := store.Last()
	assert.True(t, ok)
	assert.Equal(t, 1, len(snap.Accounts))
}

func TestExportCommand_InvalidBackend(t *testing.T) {
	te := newTestEnv(t)
	te.Config.ExportBackend = "ftp"

	err := te.run(t, "export")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid export backend")
}

func TestTableAlignsWideRunes(t *testing.T) {
	var buf bytes.Buffer
	tbl := newTable("NAME", "VALUE").alignRight(1)
	tbl.add("Döviz", "1")
	tbl.add("金", "100")
	tbl.render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, 3, len(lines))
	// Every row ends at the same display column.
	assert.True(t, strings.HasSuffix(lines[1], "    1"))
	assert.True(t, strings.HasSuffix(lines[2], "  100"))
	assert.Contains(t, lines[2], "金   ")
}
