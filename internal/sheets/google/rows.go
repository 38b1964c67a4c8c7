package google

import (
	"fmt"
	"strings"

	"bankfolio/internal/core"
)

func accountRows(accounts []core.Account) [][]interface{} {
	rows := [][]interface{}{{"ID", "Type", "Currency", "Exchange Rate", "Income %", "Balance", "Monthly Income", "Date"}}
	for _, a := range accounts {
		income := ""
		if a.IncomePercentage.Valid {
			income = a.IncomePercentage.Decimal.String()
		}
		rows = append(rows, []interface{}{
			a.ID,
			a.Type,
			a.Currency,
			a.ExchangeRate.InexactFloat64(),
			income,
			a.Balance.InexactFloat64(),
			a.MonthlyIncome(a.Balance).Round(2).InexactFloat64(),
			a.CreatedOn.String(),
		})
	}
	return rows
}

func outcomeRows(outcomes []core.Outcome) [][]interface{} {
	rows := [][]interface{}{{"ID", "Account ID", "Amount", "Description", "Distributions"}}
	for _, o := range outcomes {
		rows = append(rows, []interface{}{
			o.ID,
			o.AccountID,
			o.Amount.InexactFloat64(),
			o.Description,
			formatDistributions(o.Distributions),
		})
	}
	return rows
}

func assetRows(assets []core.Asset) [][]interface{} {
	rows := [][]interface{}{{"ID", "Name", "Quantity", "Price Per Unit", "Value"}}
	for _, a := range assets {
		rows = append(rows, []interface{}{
			a.ID,
			a.Name,
			a.Quantity.InexactFloat64(),
			a.PricePerUnit.InexactFloat64(),
			a.Value().InexactFloat64(),
		})
	}
	return rows
}

func distributionRows(snap core.Snapshot) [][]interface{} {
	rows := [][]interface{}{{"Kind", "ID", "Label", "Currency", "Value"}}
	for _, h := range snap.Holdings() {
		rows = append(rows, []interface{}{h.Kind, h.ID, h.Label, h.Currency, h.Value.InexactFloat64()})
	}
	rows = append(rows, []interface{}{"taken_at", "", snap.TakenAt.UTC().Format("2006-01-02 15:04:05"), "", ""})
	return rows
}

// formatDistributions renders {1: 10, 2: 20} as "1=10; 2=20".
func formatDistributions(d core.Distributions) string {
	parts := make([]string, 0, len(d))
	for _, id := range d.AccountIDs() {
		parts = append(parts, fmt.Sprintf("%d=%s", id, d[id].String()))
	}
	return strings.Join(parts, "; ")
}
