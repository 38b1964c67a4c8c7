package core

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the on-disk and wire form of a calendar date.
const DateLayout = "2006-01-02"

type (
	Date struct {
		time.Time
	}

	// Account is a store of value in a single currency.
	Account struct {
		ID               int64
		Type             string
		Currency         string
		ExchangeRate     decimal.Decimal // local currency per unit of Currency
		IncomePercentage decimal.NullDecimal
		Balance          decimal.Decimal
		CreatedOn        Date
	}

	// AccountInput holds the mutable fields of an account.
	AccountInput struct {
		Type             string
		Currency         string
		ExchangeRate     decimal.Decimal
		IncomePercentage decimal.NullDecimal
		Balance          decimal.Decimal
	}

	// Distributions maps an account ID to the part of an outcome paid from it.
	Distributions map[int64]decimal.Decimal

	// Outcome is a credit card expenditure, optionally split across paying accounts.
	Outcome struct {
		ID            int64
		AccountID     int64
		Amount        decimal.Decimal
		Description   string
		Distributions Distributions
	}

	OutcomeInput struct {
		AccountID     int64
		Amount        decimal.Decimal
		Description   string
		Distributions Distributions
	}

	// Asset is a holding valued as quantity times unit price.
	Asset struct {
		ID           int64
		Name         string
		Quantity     decimal.Decimal
		PricePerUnit decimal.Decimal
	}

	AssetInput struct {
		Name         string
		Quantity     decimal.Decimal
		PricePerUnit decimal.Decimal
	}
)

var hundred = decimal.NewFromInt(100)

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates t to its calendar date in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return NewDate(y, int(m), d)
}

// ParseDate parses a date in YYYY-MM-DD form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalJSON shadows the method promoted from time.Time so dates encode as
// "YYYY-MM-DD".
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.String())
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	return d.UnmarshalText([]byte(s))
}

// MonthlyIncome returns balance × income percentage / 100, or zero when the
// account has no income percentage.
func (a Account) MonthlyIncome(balance decimal.Decimal) decimal.Decimal {
	if !a.IncomePercentage.Valid {
		return decimal.Zero
	}
	return balance.Mul(a.IncomePercentage.Decimal).Div(hundred)
}

// Input returns the mutable fields of the account.
func (a Account) Input() AccountInput {
	return AccountInput{
		Type:             a.Type,
		Currency:         a.Currency,
		ExchangeRate:     a.ExchangeRate,
		IncomePercentage: a.IncomePercentage,
		Balance:          a.Balance,
	}
}

func (in AccountInput) Validate() error {
	if strings.TrimSpace(in.Type) == "" {
		return ErrEmptyAccountType
	}
	if strings.TrimSpace(in.Currency) == "" {
		return ErrEmptyCurrency
	}
	if !in.ExchangeRate.IsPositive() {
		return ErrInvalidExchangeRate
	}
	if in.IncomePercentage.Valid && in.IncomePercentage.Decimal.IsNegative() {
		return ErrInvalidIncomePercentage
	}
	return nil
}

// Sum returns the total of all distributed amounts.
func (d Distributions) Sum() decimal.Decimal {
	total := decimal.Zero
	for _, amount := range d {
		total = total.Add(amount)
	}
	return total
}

// AccountIDs returns the distribution keys in ascending order.
func (d Distributions) AccountIDs() []int64 {
	return slices.Sorted(maps.Keys(d))
}

func (d Distributions) Validate() error {
	for id, amount := range d {
		if id <= 0 {
			return &ValidationError{Field: "distributions", Reason: "account id must be positive"}
		}
		if !amount.IsPositive() {
			return &ValidationError{Field: "distributions", Reason: "amounts must be positive"}
		}
	}
	return nil
}

func (in OutcomeInput) Validate() error {
	if in.AccountID <= 0 {
		return ErrInvalidAccountID
	}
	if !in.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if strings.TrimSpace(in.Description) == "" {
		return ErrEmptyDescription
	}
	if len(in.Description) > 200 {
		return &ValidationError{Field: "description", Reason: "too long (max 200 characters)"}
	}
	if err := in.Distributions.Validate(); err != nil {
		return err
	}
	if len(in.Distributions) > 0 && !in.Distributions.Sum().Equal(in.Amount) {
		return ErrDistributionMismatch
	}
	return nil
}

// Value returns quantity × price per unit.
func (a Asset) Value() decimal.Decimal {
	return a.Quantity.Mul(a.PricePerUnit)
}

func (in AssetInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return ErrEmptyAssetName
	}
	if in.Quantity.IsNegative() {
		return &ValidationError{Field: "quantity", Reason: "must not be negative"}
	}
	if in.PricePerUnit.IsNegative() {
		return &ValidationError{Field: "price_per_unit", Reason: "must not be negative"}
	}
	return nil
}
