package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"bankfolio/internal/core"
	applog "bankfolio/internal/log"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

type SQLiteRepository struct {
	db      *sql.DB
	queries *Queries
	path    string
	codec   DistributionCodec
	now     func() time.Time
}

// Option customizes a repository at construction time.
type Option func(*SQLiteRepository)

// WithClock sets the clock used to stamp account creation dates.
func WithClock(now func() time.Time) Option {
	return func(r *SQLiteRepository) {
		if now != nil {
			r.now = now
		}
	}
}

// WithCodec replaces the JSON encoding of outcome distributions.
func WithCodec(c DistributionCodec) Option {
	return func(r *SQLiteRepository) {
		if c != nil {
			r.codec = c
		}
	}
}

func NewSQLiteRepository(dbPath string, opts ...Option) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	repo := &SQLiteRepository{
		db:      db,
		queries: New(db),
		path:    dbPath,
		codec:   JSONCodec{},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(repo)
	}

	if err := repo.Initialize(); err != nil {
		db.Close()
		return nil, err
	}

	return repo, nil
}

// Initialize brings the schema up to date. Calling it again is a no-op.
func (r *SQLiteRepository) Initialize() error {
	if err := RunMigrations(r.path); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping checks that the database is reachable.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return persistErr("ping", err)
	}
	return nil
}

// Stats reports connection pool counters.
func (r *SQLiteRepository) Stats() sql.DBStats {
	return r.db.Stats()
}

// withTx runs fn in a transaction. The transaction is rolled back unless fn
// and the commit both succeed.
func (r *SQLiteRepository) withTx(ctx context.Context, op string, fn func(q *Queries) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return persistErr(op, err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(r.queries.WithTx(tx)); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return persistErr(op, err)
	}
	return nil
}

func persistErr(op string, err error) error {
	return &core.PersistenceError{Op: op, Err: err}
}

// Accounts

func (r *SQLiteRepository) CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error) {
	if err := in.Validate(); err != nil {
		return core.Account{}, err
	}

	row, err := r.queries.CreateAccount(ctx, CreateAccountParams{
		AccountType:      strings.TrimSpace(in.Type),
		Currency:         strings.TrimSpace(in.Currency),
		ExchangeRate:     in.ExchangeRate.InexactFloat64(),
		IncomePercentage: nullFloat(in.IncomePercentage),
		Balance:          in.Balance.InexactFloat64(),
		Date:             core.DateOf(r.now()).String(),
	})
	if err != nil {
		return core.Account{}, persistErr("insert account", err)
	}

	fields := applog.NewFields().WithAmount(decimal.NewFromFloat(row.Balance).String(), row.Currency)
	slog.InfoContext(ctx, "Account saved to SQLite",
		append([]any{"id", row.ID, "type", row.AccountType, "date", row.Date}, fields.ToSlice()...)...)

	return toAccount(row), nil
}

func (r *SQLiteRepository) GetAccount(ctx context.Context, id int64) (core.Account, error) {
	row, err := r.queries.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Account{}, &core.NotFoundError{Entity: "account", ID: id}
		}
		return core.Account{}, persistErr("get account", err)
	}
	return toAccount(row), nil
}

func (r *SQLiteRepository) ListAccounts(ctx context.Context) ([]core.Account, error) {
	rows, err := r.queries.ListAccounts(ctx)
	if err != nil {
		return nil, persistErr("list accounts", err)
	}
	out := make([]core.Account, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAccount(row))
	}
	return out, nil
}

// UpdateAccount replaces every mutable field, balance included. The
// creation date is never touched.
func (r *SQLiteRepository) UpdateAccount(ctx context.Context, id int64, in core.AccountInput) error {
	if err := in.Validate(); err != nil {
		return err
	}

	n, err := r.queries.UpdateAccount(ctx, UpdateAccountParams{
		AccountType:      strings.TrimSpace(in.Type),
		Currency:         strings.TrimSpace(in.Currency),
		ExchangeRate:     in.ExchangeRate.InexactFloat64(),
		IncomePercentage: nullFloat(in.IncomePercentage),
		Balance:          in.Balance.InexactFloat64(),
		ID:               id,
	})
	if err != nil {
		return persistErr("update account", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "account", ID: id}
	}

	slog.InfoContext(ctx, "Account updated", "id", id)
	return nil
}

// AdjustBalance adds delta (which may be negative) to the account balance
// and returns the updated account.
func (r *SQLiteRepository) AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (core.Account, error) {
	var updated core.Account
	err := r.withTx(ctx, "adjust balance", func(q *Queries) error {
		if err := r.applyDelta(ctx, q, id, delta); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &core.NotFoundError{Entity: "account", ID: id}
			}
			return err
		}
		row, err := q.GetAccount(ctx, id)
		if err != nil {
			return persistErr("get account", err)
		}
		updated = toAccount(row)
		return nil
	})
	if err != nil {
		return core.Account{}, err
	}

	slog.InfoContext(ctx, "Account balance adjusted",
		"id", id,
		"delta", delta.String(),
		"balance", updated.Balance.String())
	return updated, nil
}

// DeleteAccount removes an account that no outcome references. Referenced
// accounts are left in place and an *core.AccountInUseError is returned.
func (r *SQLiteRepository) DeleteAccount(ctx context.Context, id int64) error {
	err := r.withTx(ctx, "delete account", func(q *Queries) error {
		if _, err := q.GetAccount(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &core.NotFoundError{Entity: "account", ID: id}
			}
			return persistErr("get account", err)
		}

		outcomes, err := q.ListOutcomes(ctx)
		if err != nil {
			return persistErr("list outcomes", err)
		}
		var refs []int64
		for _, o := range outcomes {
			if o.AccountID == id {
				refs = append(refs, o.ID)
				continue
			}
			dist, err := r.codec.Decode(o.AccountDistributions.String)
			if err != nil {
				return persistErr("decode outcome", err)
			}
			if _, ok := dist[id]; ok {
				refs = append(refs, o.ID)
			}
		}
		if len(refs) > 0 {
			return &core.AccountInUseError{AccountID: id, OutcomeIDs: refs}
		}

		if _, err := q.DeleteAccount(ctx, id); err != nil {
			return persistErr("delete account", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Account deleted", "id", id)
	return nil
}

// applyDelta sets balance = balance + delta for one account. It returns
// sql.ErrNoRows when the account does not exist.
func (r *SQLiteRepository) applyDelta(ctx context.Context, q *Queries, id int64, delta decimal.Decimal) error {
	row, err := q.GetAccount(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return err
		}
		return persistErr("get account", err)
	}
	balance := decimal.NewFromFloat(row.Balance).Add(delta)
	if _, err := q.SetAccountBalance(ctx, id, balance.InexactFloat64()); err != nil {
		return persistErr("update balance", err)
	}
	return nil
}

// Outcomes

// CreateOutcome stores the outcome. Balances are left alone; money only
// moves back to the paying accounts when the outcome is deleted.
func (r *SQLiteRepository) CreateOutcome(ctx context.Context, in core.OutcomeInput) (core.Outcome, error) {
	if err := in.Validate(); err != nil {
		return core.Outcome{}, err
	}
	encoded, err := r.codec.Encode(in.Distributions)
	if err != nil {
		return core.Outcome{}, &core.ValidationError{Field: "distributions", Reason: err.Error()}
	}

	var created core.Outcome
	err = r.withTx(ctx, "create outcome", func(q *Queries) error {
		if err := r.requireAccounts(ctx, q, in); err != nil {
			return err
		}
		row, err := q.CreateOutcome(ctx, CreateOutcomeParams{
			AccountID:            in.AccountID,
			Amount:               in.Amount.InexactFloat64(),
			Description:          sql.NullString{String: strings.TrimSpace(in.Description), Valid: true},
			AccountDistributions: sql.NullString{String: encoded, Valid: true},
		})
		if err != nil {
			return persistErr("insert outcome", err)
		}
		created, err = r.toOutcome(row)
		return err
	})
	if err != nil {
		return core.Outcome{}, err
	}

	fields := applog.NewFields().WithAmount(created.Amount.String(), "")
	slog.InfoContext(ctx, "Outcome saved to SQLite",
		append([]any{"id", created.ID, "account_id", created.AccountID, "distributions", len(created.Distributions)}, fields.ToSlice()...)...)
	return created, nil
}

func (r *SQLiteRepository) GetOutcome(ctx context.Context, id int64) (core.Outcome, error) {
	row, err := r.queries.GetOutcome(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Outcome{}, &core.NotFoundError{Entity: "outcome", ID: id}
		}
		return core.Outcome{}, persistErr("get outcome", err)
	}
	return r.toOutcome(row)
}

func (r *SQLiteRepository) ListOutcomes(ctx context.Context) ([]core.Outcome, error) {
	rows, err := r.queries.ListOutcomes(ctx)
	if err != nil {
		return nil, persistErr("list outcomes", err)
	}
	return r.toOutcomes(rows)
}

// UpdateOutcome replaces every field of the outcome, distributions
// included. The previous distributions are not reconciled against balances.
func (r *SQLiteRepository) UpdateOutcome(ctx context.Context, id int64, in core.OutcomeInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	encoded, err := r.codec.Encode(in.Distributions)
	if err != nil {
		return &core.ValidationError{Field: "distributions", Reason: err.Error()}
	}

	err = r.withTx(ctx, "update outcome", func(q *Queries) error {
		if _, err := q.GetOutcome(ctx, id); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &core.NotFoundError{Entity: "outcome", ID: id}
			}
			return persistErr("get outcome", err)
		}
		if err := r.requireAccounts(ctx, q, in); err != nil {
			return err
		}
		if _, err := q.UpdateOutcome(ctx, UpdateOutcomeParams{
			AccountID:            in.AccountID,
			Amount:               in.Amount.InexactFloat64(),
			Description:          sql.NullString{String: strings.TrimSpace(in.Description), Valid: true},
			AccountDistributions: sql.NullString{String: encoded, Valid: true},
			ID:                   id,
		}); err != nil {
			return persistErr("update outcome", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Outcome updated", "id", id, "amount", in.Amount.String())
	return nil
}

// DeleteOutcome credits every distributed amount back to its account and
// removes the outcome.
func (r *SQLiteRepository) DeleteOutcome(ctx context.Context, id int64) error {
	err := r.withTx(ctx, "delete outcome", func(q *Queries) error {
		row, err := q.GetOutcome(ctx, id)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return &core.NotFoundError{Entity: "outcome", ID: id}
			}
			return persistErr("get outcome", err)
		}
		dist, err := r.codec.Decode(row.AccountDistributions.String)
		if err != nil {
			return persistErr("decode outcome", err)
		}
		if err := r.creditBack(ctx, q, id, dist); err != nil {
			return err
		}
		if _, err := q.DeleteOutcome(ctx, id); err != nil {
			return persistErr("delete outcome", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	slog.InfoContext(ctx, "Outcome deleted", "id", id)
	return nil
}

func (r *SQLiteRepository) requireAccount(ctx context.Context, q *Queries, field string, id int64) error {
	if _, err := q.GetAccount(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &core.ValidationError{Field: field, Reason: fmt.Sprintf("unknown account %d", id)}
		}
		return persistErr("get account", err)
	}
	return nil
}

// requireAccounts checks that the paying account and every distribution key
// name existing accounts.
func (r *SQLiteRepository) requireAccounts(ctx context.Context, q *Queries, in core.OutcomeInput) error {
	if err := r.requireAccount(ctx, q, "account_id", in.AccountID); err != nil {
		return err
	}
	for _, accountID := range in.Distributions.AccountIDs() {
		if err := r.requireAccount(ctx, q, "distributions", accountID); err != nil {
			return err
		}
	}
	return nil
}

// creditBack adds each distributed amount back to its account. Accounts
// that no longer exist are skipped.
func (r *SQLiteRepository) creditBack(ctx context.Context, q *Queries, outcomeID int64, dist core.Distributions) error {
	for _, accountID := range dist.AccountIDs() {
		if err := r.applyDelta(ctx, q, accountID, dist[accountID]); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				slog.WarnContext(ctx, "Skipping credit-back to missing account",
					"outcome_id", outcomeID,
					"account_id", accountID,
					"amount", dist[accountID].String())
				continue
			}
			return err
		}
	}
	return nil
}

// Assets

func (r *SQLiteRepository) CreateAsset(ctx context.Context, in core.AssetInput) (core.Asset, error) {
	if err := in.Validate(); err != nil {
		return core.Asset{}, err
	}
	row, err := r.queries.CreateAsset(ctx, CreateAssetParams{
		Name:         strings.TrimSpace(in.Name),
		Quantity:     in.Quantity.InexactFloat64(),
		PricePerUnit: in.PricePerUnit.InexactFloat64(),
	})
	if err != nil {
		return core.Asset{}, persistErr("insert asset", err)
	}

	slog.InfoContext(ctx, "Asset saved to SQLite", "id", row.ID, "name", row.Name)
	return toAsset(row), nil
}

func (r *SQLiteRepository) GetAsset(ctx context.Context, id int64) (core.Asset, error) {
	row, err := r.queries.GetAsset(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Asset{}, &core.NotFoundError{Entity: "asset", ID: id}
		}
		return core.Asset{}, persistErr("get asset", err)
	}
	return toAsset(row), nil
}

func (r *SQLiteRepository) ListAssets(ctx context.Context) ([]core.Asset, error) {
	rows, err := r.queries.ListAssets(ctx)
	if err != nil {
		return nil, persistErr("list assets", err)
	}
	out := make([]core.Asset, 0, len(rows))
	for _, row := range rows {
		out = append(out, toAsset(row))
	}
	return out, nil
}

func (r *SQLiteRepository) UpdateAsset(ctx context.Context, id int64, in core.AssetInput) error {
	if err := in.Validate(); err != nil {
		return err
	}
	n, err := r.queries.UpdateAsset(ctx, UpdateAssetParams{
		Name:         strings.TrimSpace(in.Name),
		Quantity:     in.Quantity.InexactFloat64(),
		PricePerUnit: in.PricePerUnit.InexactFloat64(),
		ID:           id,
	})
	if err != nil {
		return persistErr("update asset", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "asset", ID: id}
	}

	slog.InfoContext(ctx, "Asset updated", "id", id)
	return nil
}

func (r *SQLiteRepository) DeleteAsset(ctx context.Context, id int64) error {
	n, err := r.queries.DeleteAsset(ctx, id)
	if err != nil {
		return persistErr("delete asset", err)
	}
	if n == 0 {
		return &core.NotFoundError{Entity: "asset", ID: id}
	}

	slog.InfoContext(ctx, "Asset deleted", "id", id)
	return nil
}

// Aggregations

// TotalMoney sums the balance of every account.
func (r *SQLiteRepository) TotalMoney(ctx context.Context) (decimal.Decimal, error) {
	rows, err := r.queries.ListDatedBalances(ctx)
	if err != nil {
		return decimal.Zero, persistErr("total money", err)
	}
	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(decimal.NewFromFloat(row.Balance))
	}
	return total, nil
}

// TotalOutcome sums the amount of every outcome.
func (r *SQLiteRepository) TotalOutcome(ctx context.Context) (decimal.Decimal, error) {
	amounts, err := r.queries.ListOutcomeAmounts(ctx)
	if err != nil {
		return decimal.Zero, persistErr("total outcome", err)
	}
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total, nil
}

// TotalAssets sums quantity × price over every asset.
func (r *SQLiteRepository) TotalAssets(ctx context.Context) (decimal.Decimal, error) {
	assets, err := r.ListAssets(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, a := range assets {
		total = total.Add(a.Value())
	}
	return total, nil
}

// MoneyOverTime groups account balances by creation date, oldest first.
func (r *SQLiteRepository) MoneyOverTime(ctx context.Context) ([]core.BalancePoint, error) {
	rows, err := r.queries.ListDatedBalances(ctx)
	if err != nil {
		return nil, persistErr("money over time", err)
	}

	points := []core.BalancePoint{}
	var current string
	for _, row := range rows {
		balance := decimal.NewFromFloat(row.Balance)
		if len(points) > 0 && row.Date == current {
			last := &points[len(points)-1]
			last.Total = last.Total.Add(balance)
			continue
		}
		current = row.Date
		points = append(points, core.BalancePoint{Date: parseStoredDate(row.Date), Total: balance})
	}
	return points, nil
}

// Snapshot reads all three tables in one transaction.
func (r *SQLiteRepository) Snapshot(ctx context.Context) (core.Snapshot, error) {
	snap := core.Snapshot{TakenAt: r.now()}
	err := r.withTx(ctx, "snapshot", func(q *Queries) error {
		accounts, err := q.ListAccounts(ctx)
		if err != nil {
			return persistErr("list accounts", err)
		}
		outcomes, err := q.ListOutcomes(ctx)
		if err != nil {
			return persistErr("list outcomes", err)
		}
		assets, err := q.ListAssets(ctx)
		if err != nil {
			return persistErr("list assets", err)
		}

		snap.Accounts = make([]core.Account, 0, len(accounts))
		for _, a := range accounts {
			snap.Accounts = append(snap.Accounts, toAccount(a))
		}
		snap.Outcomes, err = r.toOutcomes(outcomes)
		if err != nil {
			return err
		}
		snap.Assets = make([]core.Asset, 0, len(assets))
		for _, a := range assets {
			snap.Assets = append(snap.Assets, toAsset(a))
		}
		return nil
	})
	if err != nil {
		return core.Snapshot{}, err
	}
	return snap, nil
}

// Row conversion

func toAccount(row Account) core.Account {
	a := core.Account{
		ID:           row.ID,
		Type:         row.AccountType,
		Currency:     row.Currency,
		ExchangeRate: decimal.NewFromFloat(row.ExchangeRate),
		Balance:      decimal.NewFromFloat(row.Balance),
		CreatedOn:    parseStoredDate(row.Date),
	}
	if row.IncomePercentage.Valid {
		a.IncomePercentage = decimal.NewNullDecimal(decimal.NewFromFloat(row.IncomePercentage.Float64))
	}
	return a
}

func (r *SQLiteRepository) toOutcome(row CreditCardOutcome) (core.Outcome, error) {
	dist, err := r.codec.Decode(row.AccountDistributions.String)
	if err != nil {
		return core.Outcome{}, persistErr("decode outcome", err)
	}
	return core.Outcome{
		ID:            row.ID,
		AccountID:     row.AccountID,
		Amount:        decimal.NewFromFloat(row.Amount),
		Description:   row.Description.String,
		Distributions: dist,
	}, nil
}

func (r *SQLiteRepository) toOutcomes(rows []CreditCardOutcome) ([]core.Outcome, error) {
	out := make([]core.Outcome, 0, len(rows))
	for _, row := range rows {
		o, err := r.toOutcome(row)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, nil
}

func toAsset(row Asset) core.Asset {
	return core.Asset{
		ID:           row.ID,
		Name:         row.Name,
		Quantity:     decimal.NewFromFloat(row.Quantity),
		PricePerUnit: decimal.NewFromFloat(row.PricePerUnit),
	}
}

func nullFloat(d decimal.NullDecimal) sql.NullFloat64 {
	if !d.Valid {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: d.Decimal.InexactFloat64(), Valid: true}
}

// parseStoredDate reads the date column. Rows written by other tools may
// carry a time part after the date.
func parseStoredDate(s string) core.Date {
	if len(s) > len(core.DateLayout) {
		s = s[:len(core.DateLayout)]
	}
	d, err := core.ParseDate(s)
	if err != nil {
		slog.Warn("Unreadable account date", "value", s)
		return core.Date{}
	}
	return d
}
