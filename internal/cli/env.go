package cli

import (
	"context"
	"errors"
	"io"
	"os"

	"bankfolio/internal/backend"
	"bankfolio/internal/config"
	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"

	"github.com/shopspring/decimal"
)

// Ledger is what the commands need from the ledger service.
type Ledger interface {
	CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	ListAccounts(ctx context.Context) ([]core.Account, error)
	UpdateAccount(ctx context.Context, id int64, in core.AccountInput) error
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (core.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateOutcome(ctx context.Context, in core.OutcomeInput) (core.Outcome, error)
	GetOutcome(ctx context.Context, id int64) (core.Outcome, error)
	ListOutcomes(ctx context.Context) ([]core.Outcome, error)
	UpdateOutcome(ctx context.Context, id int64, in core.OutcomeInput) error
	DeleteOutcome(ctx context.Context, id int64) error

	CreateAsset(ctx context.Context, in core.AssetInput) (core.Asset, error)
	GetAsset(ctx context.Context, id int64) (core.Asset, error)
	ListAssets(ctx context.Context) ([]core.Asset, error)
	UpdateAsset(ctx context.Context, id int64, in core.AssetInput) error
	DeleteAsset(ctx context.Context, id int64) error

	Summary(ctx context.Context) (core.Summary, error)
	MoneyOverTime(ctx context.Context) ([]core.BalancePoint, error)
	Distribution(ctx context.Context) ([]core.Holding, error)
	Snapshot(ctx context.Context) (core.Snapshot, error)

	Ping(ctx context.Context) error
}

// Env carries the dependencies every command runs against.
type Env struct {
	Ledger   Ledger
	Settings *config.Settings
	Config   *config.Config
	Logger   *applog.Logger

	// Exporters builds the snapshot exporter for `export`.
	Exporters backend.Factory

	Out io.Writer
	Err io.Writer

	// Confirm asks a yes/no question, promptYesNo when nil.
	Confirm func(question string) (bool, error)

	// Lang overrides the settings language when supported.
	Lang string
}

func (e *Env) ctx() context.Context {
	return context.Background()
}

func (e *Env) stdout() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) stderr() io.Writer {
	if e.Err == nil {
		return os.Stderr
	}
	return e.Err
}

func (e *Env) language() string {
	if i18n.IsSupported(e.Lang) {
		return i18n.Normalize(e.Lang)
	}
	if e.Settings == nil {
		return i18n.English
	}
	return i18n.Normalize(e.Settings.Language())
}

func (e *Env) t(key i18n.Key) string {
	return i18n.T(e.language(), key)
}

func (e *Env) success(key i18n.Key) {
	printSuccess(e.stdout(), e.t(key))
}

// confirm returns true without asking when yes is set.
func (e *Env) confirm(yes bool, subject string) (bool, error) {
	if yes {
		return true, nil
	}
	ask := e.Confirm
	if ask == nil {
		ask = promptYesNo
	}
	ok, err := ask(e.t(i18n.ConfirmDelete) + " " + subject)
	if err != nil {
		return false, err
	}
	if !ok {
		printInfof(e.stdout(), "%s", e.t(i18n.DeleteCancelled))
	}
	return ok, nil
}

// ReportError prints err as a localized notification on the error stream.
func (e *Env) ReportError(err error) {
	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		inUseErr      *core.AccountInUseError
	)

	switch {
	case errors.As(err, &inUseErr):
		printError(e.stderr(), e.t(i18n.AccountInUse)+": "+inUseErr.Error())
	case errors.As(err, &validationErr):
		printError(e.stderr(), e.t(i18n.InvalidInput)+": "+validationErr.Error())
	case errors.As(err, &notFoundErr):
		printError(e.stderr(), e.t(i18n.NotFound)+": "+notFoundErr.Error())
	default:
		printError(e.stderr(), e.t(i18n.Error)+": "+err.Error())
	}
}
