package http

import (
	"bankfolio/internal/core"

	"github.com/shopspring/decimal"
)

type accountJSON struct {
	ID               int64               `json:"id"`
	AccountType      string              `json:"account_type"`
	Currency         string              `json:"currency"`
	ExchangeRate     decimal.Decimal     `json:"exchange_rate"`
	IncomePercentage decimal.NullDecimal `json:"income_percentage"`
	Balance          decimal.Decimal     `json:"balance"`
	MonthlyIncome    decimal.Decimal     `json:"monthly_income"`
	Date             core.Date           `json:"date"`
}

type outcomeJSON struct {
	ID            int64                     `json:"id"`
	AccountID     int64                     `json:"account_id"`
	Amount        decimal.Decimal           `json:"amount"`
	Description   string                    `json:"description"`
	Distributions map[int64]decimal.Decimal `json:"distributions"`
}

type assetJSON struct {
	ID           int64           `json:"id"`
	Name         string          `json:"name"`
	Quantity     decimal.Decimal `json:"quantity"`
	PricePerUnit decimal.Decimal `json:"price_per_unit"`
	Value        decimal.Decimal `json:"value"`
}

type balancePointJSON struct {
	Date  core.Date       `json:"date"`
	Total decimal.Decimal `json:"total"`
}

type summaryJSON struct {
	TotalMoney    decimal.Decimal    `json:"total_money"`
	TotalOutcome  decimal.Decimal    `json:"total_outcome"`
	TotalAssets   decimal.Decimal    `json:"total_assets"`
	MoneyOverTime []balancePointJSON `json:"money_over_time"`
}

type holdingJSON struct {
	Kind     string          `json:"kind"`
	ID       int64           `json:"id"`
	Label    string          `json:"label"`
	Currency string          `json:"currency,omitempty"`
	Value    decimal.Decimal `json:"value"`
}

type languageJSON struct {
	Language  string   `json:"language"`
	Supported []string `json:"supported"`
}

func toAccountJSON(a core.Account) accountJSON {
	return accountJSON{
		ID:               a.ID,
		AccountType:      a.Type,
		Currency:         a.Currency,
		ExchangeRate:     a.ExchangeRate,
		IncomePercentage: a.IncomePercentage,
		Balance:          a.Balance,
		MonthlyIncome:    a.MonthlyIncome(a.Balance),
		Date:             a.CreatedOn,
	}
}

func toOutcomeJSON(o core.Outcome) outcomeJSON {
	dist := make(map[int64]decimal.Decimal, len(o.Distributions))
	for id, amount := range o.Distributions {
		dist[id] = amount
	}
	return outcomeJSON{
		ID:            o.ID,
		AccountID:     o.AccountID,
		Amount:        o.Amount,
		Description:   o.Description,
		Distributions: dist,
	}
}

func toAssetJSON(a core.Asset) assetJSON {
	return assetJSON{
		ID:           a.ID,
		Name:         a.Name,
		Quantity:     a.Quantity,
		PricePerUnit: a.PricePerUnit,
		Value:        a.Value(),
	}
}

func toBalancePointsJSON(points []core.BalancePoint) []balancePointJSON {
	out := make([]balancePointJSON, 0, len(points))
	for _, p := range points {
		out = append(out, balancePointJSON{Date: p.Date, Total: p.Total})
	}
	return out
}

func mapSlice[T, U any](in []T, f func(T) U) []U {
	out := make([]U, 0, len(in))
	for _, v := range in {
		out = append(out, f(v))
	}
	return out
}

func holdingsJSON(holdings []core.Holding) []holdingJSON {
	return mapSlice(holdings, func(h core.Holding) holdingJSON {
		return holdingJSON{Kind: h.Kind, ID: h.ID, Label: h.Label, Currency: h.Currency, Value: h.Value}
	})
}
