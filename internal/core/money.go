// Package core provides money parsing and handling utilities.
//
// This file contains functions for parsing amounts typed by the user and
// formatting them for display in a given currency.
package core

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// ParseAmount converts a decimal string to an exact amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators and an
// optional leading sign. Returns a ValidationError for anything else.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,34") -> 12.34, nil
//	ParseAmount("-5")    -> -5, nil
//	ParseAmount("1.2.3") -> error
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: "missing value"}
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	parts := strings.Split(digits, ".")
	if len(parts) > 2 || (parts[0] == "" && (len(parts) == 1 || parts[1] == "")) {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
			}
		}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: "amount", Reason: fmt.Sprintf("%q is not a number", s)}
	}
	return d, nil
}

// ParsePositive parses an amount that must be strictly positive, reporting
// failures against field.
func ParsePositive(field, s string) (decimal.Decimal, error) {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero, &ValidationError{Field: field, Reason: err.(*ValidationError).Reason}
	}
	if !d.IsPositive() {
		return decimal.Zero, &ValidationError{Field: field, Reason: "must be positive"}
	}
	return d, nil
}

// ParseOptional parses an optional amount: a blank string yields an absent value.
func ParseOptional(field, s string) (decimal.NullDecimal, error) {
	if strings.TrimSpace(s) == "" {
		return decimal.NullDecimal{}, nil
	}
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.NullDecimal{}, &ValidationError{Field: field, Reason: err.(*ValidationError).Reason}
	}
	return decimal.NewNullDecimal(d), nil
}

// ParseDistribution parses "accountID=amount" entries into a distribution
// mapping. Repeated account IDs are summed.
func ParseDistribution(entries []string) (Distributions, error) {
	out := Distributions{}
	for _, entry := range entries {
		id, amount, ok := strings.Cut(entry, "=")
		if !ok {
			return nil, &ValidationError{Field: "distributions", Reason: fmt.Sprintf("%q must look like ACCOUNT_ID=AMOUNT", entry)}
		}
		accountID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil || accountID <= 0 {
			return nil, &ValidationError{Field: "distributions", Reason: fmt.Sprintf("%q is not an account id", id)}
		}
		d, err := ParsePositive("distributions", amount)
		if err != nil {
			return nil, err
		}
		out[accountID] = out[accountID].Add(d)
	}
	return out, nil
}

// FormatMoney renders an amount in the given currency, e.g. "$1,234.50".
// Currencies unknown to go-money fall back to "1234.50 XYZ".
func FormatMoney(amount decimal.Decimal, currency string) string {
	code := strings.ToUpper(strings.TrimSpace(currency))
	cur := money.New(0, code).Currency()
	if cur == nil || cur.Template == "" {
		return strings.TrimSpace(amount.StringFixed(2) + " " + code)
	}
	minor := amount.Shift(int32(cur.Fraction)).Round(0).IntPart()
	return cur.Formatter().Format(minor)
}
