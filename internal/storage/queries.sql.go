package storage

import (
	"context"
	"database/sql"
)

const accountColumns = `id, account_type, currency, exchange_rate, income_percentage, date, balance`

func scanAccount(row interface{ Scan(...interface{}) error }) (Account, error) {
	var i Account
	err := row.Scan(
		&i.ID,
		&i.AccountType,
		&i.Currency,
		&i.ExchangeRate,
		&i.IncomePercentage,
		&i.Date,
		&i.Balance,
	)
	return i, err
}

const createAccount = `-- name: CreateAccount :one
INSERT INTO accounts (account_type, currency, exchange_rate, income_percentage, balance, date)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING ` + accountColumns

type CreateAccountParams struct {
	AccountType      string
	Currency         string
	ExchangeRate     float64
	IncomePercentage sql.NullFloat64
	Balance          float64
	Date             string
}

func (q *Queries) CreateAccount(ctx context.Context, arg CreateAccountParams) (Account, error) {
	row := q.db.QueryRowContext(ctx, createAccount,
		arg.AccountType,
		arg.Currency,
		arg.ExchangeRate,
		arg.IncomePercentage,
		arg.Balance,
		arg.Date,
	)
	return scanAccount(row)
}

const getAccount = `-- name: GetAccount :one
SELECT ` + accountColumns + ` FROM accounts WHERE id = ?`

func (q *Queries) GetAccount(ctx context.Context, id int64) (Account, error) {
	return scanAccount(q.db.QueryRowContext(ctx, getAccount, id))
}

const listAccounts = `-- name: ListAccounts :many
SELECT ` + accountColumns + ` FROM accounts ORDER BY id`

func (q *Queries) ListAccounts(ctx context.Context) ([]Account, error) {
	rows, err := q.db.QueryContext(ctx, listAccounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Account
	for rows.Next() {
		i, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateAccount = `-- name: UpdateAccount :execrows
UPDATE accounts
SET account_type = ?, currency = ?, exchange_rate = ?, income_percentage = ?, balance = ?
WHERE id = ?`

type UpdateAccountParams struct {
	AccountType      string
	Currency         string
	ExchangeRate     float64
	IncomePercentage sql.NullFloat64
	Balance          float64
	ID               int64
}

func (q *Queries) UpdateAccount(ctx context.Context, arg UpdateAccountParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAccount,
		arg.AccountType,
		arg.Currency,
		arg.ExchangeRate,
		arg.IncomePercentage,
		arg.Balance,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const setAccountBalance = `-- name: SetAccountBalance :execrows
UPDATE accounts SET balance = ? WHERE id = ?`

func (q *Queries) SetAccountBalance(ctx context.Context, id int64, balance float64) (int64, error) {
	result, err := q.db.ExecContext(ctx, setAccountBalance, balance, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAccount = `-- name: DeleteAccount :execrows
DELETE FROM accounts WHERE id = ?`

func (q *Queries) DeleteAccount(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAccount, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const listDatedBalances = `-- name: ListDatedBalances :many
SELECT date, balance FROM accounts ORDER BY date, id`

func (q *Queries) ListDatedBalances(ctx context.Context) ([]DatedBalance, error) {
	rows, err := q.db.QueryContext(ctx, listDatedBalances)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []DatedBalance
	for rows.Next() {
		var i DatedBalance
		if err := rows.Scan(&i.Date, &i.Balance); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const outcomeColumns = `id, account_id, amount, description, account_distributions`

func scanOutcome(row interface{ Scan(...interface{}) error }) (CreditCardOutcome, error) {
	var i CreditCardOutcome
	err := row.Scan(
		&i.ID,
		&i.AccountID,
		&i.Amount,
		&i.Description,
		&i.AccountDistributions,
	)
	return i, err
}

const createOutcome = `-- name: CreateOutcome :one
INSERT INTO credit_card_outcomes (account_id, amount, description, account_distributions)
VALUES (?, ?, ?, ?)
RETURNING ` + outcomeColumns

type CreateOutcomeParams struct {
	AccountID            int64
	Amount               float64
	Description          sql.NullString
	AccountDistributions sql.NullString
}

func (q *Queries) CreateOutcome(ctx context.Context, arg CreateOutcomeParams) (CreditCardOutcome, error) {
	row := q.db.QueryRowContext(ctx, createOutcome,
		arg.AccountID,
		arg.Amount,
		arg.Description,
		arg.AccountDistributions,
	)
	return scanOutcome(row)
}

const getOutcome = `-- name: GetOutcome :one
SELECT ` + outcomeColumns + ` FROM credit_card_outcomes WHERE id = ?`

func (q *Queries) GetOutcome(ctx context.Context, id int64) (CreditCardOutcome, error) {
	return scanOutcome(q.db.QueryRowContext(ctx, getOutcome, id))
}

const listOutcomes = `-- name: ListOutcomes :many
SELECT ` + outcomeColumns + ` FROM credit_card_outcomes ORDER BY id`

func (q *Queries) ListOutcomes(ctx context.Context) ([]CreditCardOutcome, error) {
	rows, err := q.db.QueryContext(ctx, listOutcomes)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CreditCardOutcome
	for rows.Next() {
		i, err := scanOutcome(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateOutcome = `-- name: UpdateOutcome :execrows
UPDATE credit_card_outcomes
SET account_id = ?, amount = ?, description = ?, account_distributions = ?
WHERE id = ?`

type UpdateOutcomeParams struct {
	AccountID            int64
	Amount               float64
	Description          sql.NullString
	AccountDistributions sql.NullString
	ID                   int64
}

func (q *Queries) UpdateOutcome(ctx context.Context, arg UpdateOutcomeParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateOutcome,
		arg.AccountID,
		arg.Amount,
		arg.Description,
		arg.AccountDistributions,
		arg.ID,
	)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteOutcome = `-- name: DeleteOutcome :execrows
DELETE FROM credit_card_outcomes WHERE id = ?`

func (q *Queries) DeleteOutcome(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteOutcome, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const sumOutcomeAmounts = `-- name: ListOutcomeAmounts :many
SELECT amount FROM credit_card_outcomes ORDER BY id`

func (q *Queries) ListOutcomeAmounts(ctx context.Context) ([]float64, error) {
	rows, err := q.db.QueryContext(ctx, sumOutcomeAmounts)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []float64
	for rows.Next() {
		var amount float64
		if err := rows.Scan(&amount); err != nil {
			return nil, err
		}
		items = append(items, amount)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const assetColumns = `id, name, quantity, price_per_unit`

func scanAsset(row interface{ Scan(...interface{}) error }) (Asset, error) {
	var i Asset
	err := row.Scan(
		&i.ID,
		&i.Name,
		&i.Quantity,
		&i.PricePerUnit,
	)
	return i, err
}

const createAsset = `-- name: CreateAsset :one
INSERT INTO assets (name, quantity, price_per_unit)
VALUES (?, ?, ?)
RETURNING ` + assetColumns

type CreateAssetParams struct {
	Name         string
	Quantity     float64
	PricePerUnit float64
}

func (q *Queries) CreateAsset(ctx context.Context, arg CreateAssetParams) (Asset, error) {
	row := q.db.QueryRowContext(ctx, createAsset, arg.Name, arg.Quantity, arg.PricePerUnit)
	return scanAsset(row)
}

const getAsset = `-- name: GetAsset :one
SELECT ` + assetColumns + ` FROM assets WHERE id = ?`

func (q *Queries) GetAsset(ctx context.Context, id int64) (Asset, error) {
	return scanAsset(q.db.QueryRowContext(ctx, getAsset, id))
}

const listAssets = `-- name: ListAssets :many
SELECT ` + assetColumns + ` FROM assets ORDER BY id`

func (q *Queries) ListAssets(ctx context.Context) ([]Asset, error) {
	rows, err := q.db.QueryContext(ctx, listAssets)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Asset
	for rows.Next() {
		i, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const updateAsset = `-- name: UpdateAsset :execrows
UPDATE assets SET name = ?, quantity = ?, price_per_unit = ? WHERE id = ?`

type UpdateAssetParams struct {
	Name         string
	Quantity     float64
	PricePerUnit float64
	ID           int64
}

func (q *Queries) UpdateAsset(ctx context.Context, arg UpdateAssetParams) (int64, error) {
	result, err := q.db.ExecContext(ctx, updateAsset, arg.Name, arg.Quantity, arg.PricePerUnit, arg.ID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

const deleteAsset = `-- name: DeleteAsset :execrows
DELETE FROM assets WHERE id = ?`

func (q *Queries) DeleteAsset(ctx context.Context, id int64) (int64, error) {
	result, err := q.db.ExecContext(ctx, deleteAsset, id)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
