// Package http provides the JSON API over the ledger.
//
// This file implements utilities for parsing and validating request bodies.
// Both JSON and form-encoded bodies are accepted; every value is read as
// text and parsed by the core parsers so the API and the CLI accept the same
// input.

package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"bankfolio/internal/core"

	"github.com/shopspring/decimal"
)

const maxBodyBytes = 1 << 20

// RequestBodyParser reads the body once and serves values by key.
type RequestBodyParser struct {
	body        []byte
	contentType string
	jsonData    map[string]interface{}
	formData    url.Values
	parsed      bool
	err         error
}

// NewRequestBodyParser creates a parser for the given request.
func NewRequestBodyParser(r *http.Request) *RequestBodyParser {
	p := &RequestBodyParser{
		contentType: r.Header.Get("Content-Type"),
	}
	p.body, p.err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	return p
}

// Parse attempts to parse the body as JSON or form data.
func (p *RequestBodyParser) Parse() error {
	if p.parsed {
		return p.err
	}
	p.parsed = true

	if p.err != nil {
		return p.err
	}

	trimmed := bytes.TrimSpace(p.body)
	if len(trimmed) == 0 {
		p.formData = url.Values{}
		return nil
	}

	if trimmed[0] == '{' {
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.UseNumber()
		p.jsonData = make(map[string]interface{})
		if err := dec.Decode(&p.jsonData); err != nil {
			p.err = fmt.Errorf("decode JSON body: %w", err)
			return p.err
		}
		return nil
	}

	p.formData, p.err = url.ParseQuery(string(trimmed))
	return p.err
}

// Get returns a string value from the parsed data (JSON or form).
func (p *RequestBodyParser) Get(key string) string {
	if p.jsonData != nil {
		if val, ok := p.jsonData[key]; ok {
			return sanitizeInput(stringValue(val))
		}
		return ""
	}
	if p.formData != nil {
		return sanitizeInput(p.formData.Get(key))
	}
	return ""
}

// GetAll returns the "k=v" entries under key. A JSON object yields one entry
// per member in key order, a JSON array or a repeated form field one entry
// per element.
func (p *RequestBodyParser) GetAll(key string) []string {
	if p.jsonData != nil {
		switch val := p.jsonData[key].(type) {
		case map[string]interface{}:
			keys := make([]string, 0, len(val))
			for k := range val {
				keys = append(keys, k)
			}
			slices.Sort(keys)
			out := make([]string, 0, len(keys))
			for _, k := range keys {
				out = append(out, sanitizeInput(k)+"="+sanitizeInput(stringValue(val[k])))
			}
			return out
		case []interface{}:
			out := make([]string, 0, len(val))
			for _, v := range val {
				out = append(out, sanitizeInput(stringValue(v)))
			}
			return out
		case nil:
			return nil
		default:
			return []string{sanitizeInput(stringValue(val))}
		}
	}
	if p.formData != nil {
		var out []string
		for _, v := range p.formData[key] {
			out = append(out, sanitizeInput(v))
		}
		return out
	}
	return nil
}

// IsJSON returns true if the parsed content was JSON.
func (p *RequestBodyParser) IsJSON() bool {
	return p.jsonData != nil
}

// stringValue converts a decoded JSON value to text.
func stringValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

// sanitizeInput removes control characters and trims whitespace.
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// pathID reads the {id} path segment.
func pathID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, &core.ValidationError{Field: "id", Reason: fmt.Sprintf("%q is not a valid id", raw)}
	}
	return id, nil
}

func parseAccountInput(p *RequestBodyParser) (core.AccountInput, error) {
	rate, err := core.ParsePositive("exchange_rate", p.Get("exchange_rate"))
	if err != nil {
		return core.AccountInput{}, err
	}
	income, err := core.ParseOptional("income_percentage", p.Get("income_percentage"))
	if err != nil {
		return core.AccountInput{}, err
	}
	balance, err := core.ParseOptional("balance", p.Get("balance"))
	if err != nil {
		return core.AccountInput{}, err
	}
	return core.AccountInput{
		Type:             p.Get("account_type"),
		Currency:         p.Get("currency"),
		ExchangeRate:     rate,
		IncomePercentage: income,
		Balance:          balance.Decimal,
	}, nil
}

func parseOutcomeInput(p *RequestBodyParser) (core.OutcomeInput, error) {
	accountID, err := strconv.ParseInt(p.Get("account_id"), 10, 64)
	if err != nil {
		return core.OutcomeInput{}, &core.ValidationError{Field: "account_id", Reason: fmt.Sprintf("%q is not a valid id", p.Get("account_id"))}
	}
	amount, err := core.ParsePositive("amount", p.Get("amount"))
	if err != nil {
		return core.OutcomeInput{}, err
	}
	var dist core.Distributions
	if entries := p.GetAll("distributions"); len(entries) > 0 {
		dist, err = core.ParseDistribution(entries)
		if err != nil {
			return core.OutcomeInput{}, err
		}
	}
	return core.OutcomeInput{
		AccountID:     accountID,
		Amount:        amount,
		Description:   p.Get("description"),
		Distributions: dist,
	}, nil
}

func parseAssetInput(p *RequestBodyParser) (core.AssetInput, error) {
	quantity, err := parseField("quantity", p.Get("quantity"))
	if err != nil {
		return core.AssetInput{}, err
	}
	price, err := parseField("price_per_unit", p.Get("price_per_unit"))
	if err != nil {
		return core.AssetInput{}, err
	}
	return core.AssetInput{
		Name:         p.Get("name"),
		Quantity:     quantity,
		PricePerUnit: price,
	}, nil
}

// parseField parses a required amount, reporting failures against field.
func parseField(field, s string) (decimal.Decimal, error) {
	d, err := core.ParseAmount(s)
	if err != nil {
		var reason string
		if ve, ok := err.(*core.ValidationError); ok {
			reason = ve.Reason
		}
		return decimal.Zero, &core.ValidationError{Field: field, Reason: reason}
	}
	return d, nil
}
