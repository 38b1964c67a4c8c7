package storage

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"bankfolio/internal/core"

	"github.com/shopspring/decimal"
)

// DistributionCodec converts an outcome's distributions to and from the
// text stored in credit_card_outcomes.account_distributions.
type DistributionCodec interface {
	Encode(core.Distributions) (string, error)
	Decode(string) (core.Distributions, error)
}

// JSONCodec stores distributions as a JSON object keyed by account id,
// e.g. {"1": 10, "2": 20.5}.
type JSONCodec struct{}

func (JSONCodec) Encode(d core.Distributions) (string, error) {
	m := make(map[string]json.Number, len(d))
	for id, amount := range d {
		m[strconv.FormatInt(id, 10)] = json.Number(amount.String())
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("encode distributions: %w", err)
	}
	return string(b), nil
}

func (JSONCodec) Decode(s string) (core.Distributions, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "null" {
		return core.Distributions{}, nil
	}

	var raw map[string]decimal.Decimal
	if err := json.Unmarshal([]byte(s), &raw); err != nil {
		return nil, fmt.Errorf("decode distributions: %w", err)
	}

	out := make(core.Distributions, len(raw))
	for key, amount := range raw {
		id, err := strconv.ParseInt(strings.TrimSpace(key), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("decode distributions: invalid account id %q", key)
		}
		out[id] = out[id].Add(amount)
	}
	return out, nil
}
