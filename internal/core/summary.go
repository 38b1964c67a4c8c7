package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// BalancePoint is the summed balance of all accounts created on Date.
type BalancePoint struct {
	Date  Date
	Total decimal.Decimal
}

// Summary feeds the charts: two totals and the money-over-time series.
type Summary struct {
	TotalMoney    decimal.Decimal
	TotalOutcome  decimal.Decimal
	TotalAssets   decimal.Decimal
	MoneyOverTime []BalancePoint
}

// Holding is one line of the money distribution list.
type Holding struct {
	Kind     string // "account" or "asset"
	ID       int64
	Label    string
	Currency string
	Value    decimal.Decimal
}

// Snapshot is a consistent copy of the whole ledger.
type Snapshot struct {
	Accounts []Account
	Outcomes []Outcome
	Assets   []Asset
	TakenAt  time.Time
}

// Holdings flattens accounts and assets into the money distribution list.
func (s Snapshot) Holdings() []Holding {
	out := make([]Holding, 0, len(s.Accounts)+len(s.Assets))
	for _, a := range s.Accounts {
		out = append(out, Holding{Kind: "account", ID: a.ID, Label: a.Type, Currency: a.Currency, Value: a.Balance})
	}
	for _, a := range s.Assets {
		out = append(out, Holding{Kind: "asset", ID: a.ID, Label: a.Name, Value: a.Value()})
	}
	return out
}
