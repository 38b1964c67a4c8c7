package storage

import (
	"database/sql"
)

type Account struct {
	ID               int64
	AccountType      string
	Currency         string
	ExchangeRate     float64
	IncomePercentage sql.NullFloat64
	Date             string
	Balance          float64
}

type CreditCardOutcome struct {
	ID                   int64
	AccountID            int64
	Amount               float64
	Description          sql.NullString
	AccountDistributions sql.NullString
}

type Asset struct {
	ID           int64
	Name         string
	Quantity     float64
	PricePerUnit float64
}

type DatedBalance struct {
	Date    string
	Balance float64
}
