package core

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestDateStringAndParse(t *testing.T) {
	d := NewDate(2025, 3, 7)
	if d.String() != "2025-03-07" {
		t.Fatalf("unexpected string %q", d.String())
	}
	parsed, err := ParseDate("2025-03-07")
	if err != nil || !parsed.Equal(d.Time) {
		t.Fatalf("parse mismatch: %v %v", parsed, err)
	}
	if _, err := ParseDate("07/03/2025"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if (Date{}).String() != "" {
		t.Fatalf("zero date should render empty")
	}
	local := time.Date(2025, 12, 31, 23, 30, 0, 0, time.FixedZone("X", 3600))
	if DateOf(local).String() != "2025-12-31" {
		t.Fatalf("DateOf should keep the local calendar day, got %s", DateOf(local))
	}
}

func TestMonthlyIncome(t *testing.T) {
	cases := []struct {
		pct     decimal.NullDecimal
		balance string
		want    string
	}{
		{decimal.NewNullDecimal(dec("5")), "1000", "50"},
		{decimal.NewNullDecimal(dec("2.5")), "200", "5"},
		{decimal.NewNullDecimal(dec("0")), "1000", "0"},
		{decimal.NullDecimal{}, "1000", "0"},
		{decimal.NewNullDecimal(dec("10")), "-50", "-5"},
	}
	for i, tc := range cases {
		a := Account{IncomePercentage: tc.pct}
		got := a.MonthlyIncome(dec(tc.balance))
		if !got.Equal(dec(tc.want)) {
			t.Fatalf("case %d expected %s, got %s", i, tc.want, got)
		}
	}
}

func TestAccountInputValidate(t *testing.T) {
	good := AccountInput{Type: "Savings", Currency: "USD", ExchangeRate: dec("32.5"), Balance: dec("10")}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		in   AccountInput
		want error
	}{
		{AccountInput{Type: "", Currency: "USD", ExchangeRate: dec("1")}, ErrEmptyAccountType},
		{AccountInput{Type: "x", Currency: " ", ExchangeRate: dec("1")}, ErrEmptyCurrency},
		{AccountInput{Type: "x", Currency: "USD", ExchangeRate: dec("0")}, ErrInvalidExchangeRate},
		{AccountInput{Type: "x", Currency: "USD", ExchangeRate: dec("-1")}, ErrInvalidExchangeRate},
		{AccountInput{Type: "x", Currency: "USD", ExchangeRate: dec("1"), IncomePercentage: decimal.NewNullDecimal(dec("-1"))}, ErrInvalidIncomePercentage},
	}
	for i, tc := range bads {
		err := tc.in.Validate()
		if !errors.Is(err, tc.want) {
			t.Fatalf("case %d expected %v, got %v", i, tc.want, err)
		}
		if !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d should be a validation error", i)
		}
	}
}

func TestOutcomeInputValidate(t *testing.T) {
	good := OutcomeInput{
		AccountID:     1,
		Amount:        dec("30"),
		Description:   "groceries",
		Distributions: Distributions{1: dec("10"), 2: dec("20")},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	noSplit := OutcomeInput{AccountID: 1, Amount: dec("30"), Description: "rent"}
	if err := noSplit.Validate(); err != nil {
		t.Fatalf("outcome without distributions should be valid, got %v", err)
	}

	bads := []OutcomeInput{
		{AccountID: 0, Amount: dec("1"), Description: "a"},
		{AccountID: 1, Amount: dec("0"), Description: "a"},
		{AccountID: 1, Amount: dec("1"), Description: "  "},
		{AccountID: 1, Amount: dec("30"), Description: "a", Distributions: Distributions{1: dec("10")}},
		{AccountID: 1, Amount: dec("10"), Description: "a", Distributions: Distributions{1: dec("-10"), 2: dec("20")}},
		{AccountID: 1, Amount: dec("10"), Description: "a", Distributions: Distributions{0: dec("10")}},
	}
	for i, in := range bads {
		if err := in.Validate(); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d expected validation error, got %v", i, err)
		}
	}
}

func TestDistributions(t *testing.T) {
	d := Distributions{7: dec("1.5"), 2: dec("3"), 5: dec("0.25")}
	if !d.Sum().Equal(dec("4.75")) {
		t.Fatalf("unexpected sum %s", d.Sum())
	}
	ids := d.AccountIDs()
	if len(ids) != 3 || ids[0] != 2 || ids[1] != 5 || ids[2] != 7 {
		t.Fatalf("ids not sorted: %v", ids)
	}
	if !(Distributions{}).Sum().IsZero() {
		t.Fatalf("empty distributions should sum to zero")
	}
}

func TestAssetValue(t *testing.T) {
	a := Asset{Name: "Gold", Quantity: dec("2"), PricePerUnit: dec("60")}
	if !a.Value().Equal(dec("120")) {
		t.Fatalf("expected 120, got %s", a.Value())
	}
	a.Quantity = dec("3")
	if !a.Value().Equal(dec("180")) {
		t.Fatalf("expected 180, got %s", a.Value())
	}
	if err := (AssetInput{Name: "", Quantity: dec("1"), PricePerUnit: dec("1")}).Validate(); !errors.Is(err, ErrEmptyAssetName) {
		t.Fatalf("expected empty name error, got %v", err)
	}
	if err := (AssetInput{Name: "x", Quantity: dec("-1"), PricePerUnit: dec("1")}).Validate(); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestErrorsClassify(t *testing.T) {
	var err error = &NotFoundError{Entity: "account", ID: 3}
	if !errors.Is(err, ErrNotFound) || err.Error() != "account 3 not found" {
		t.Fatalf("unexpected not found error: %v", err)
	}
	err = &AccountInUseError{AccountID: 1, OutcomeIDs: []int64{4, 9}}
	if !errors.Is(err, ErrAccountInUse) || err.Error() != "account 1 is referenced by outcomes [4, 9]" {
		t.Fatalf("unexpected in-use error: %v", err)
	}
	cause := errors.New("disk I/O error")
	err = &PersistenceError{Op: "insert account", Err: cause}
	if !errors.Is(err, ErrPersistence) || !errors.Is(err, cause) {
		t.Fatalf("persistence error should match both sentinel and cause")
	}
}

func TestSnapshotHoldings(t *testing.T) {
	s := Snapshot{
		Accounts: []Account{{ID: 1, Type: "Checking", Currency: "TRY", Balance: dec("100")}},
		Assets:   []Asset{{ID: 2, Name: "Gold", Quantity: dec("2"), PricePerUnit: dec("60")}},
	}
	h := s.Holdings()
	if len(h) != 2 {
		t.Fatalf("expected 2 holdings, got %d", len(h))
	}
	if h[0].Kind != "account" || !h[0].Value.Equal(dec("100")) {
		t.Fatalf("unexpected account holding %+v", h[0])
	}
	if h[1].Kind != "asset" || !h[1].Value.Equal(dec("120")) {
		t.Fatalf("unexpected asset holding %+v", h[1])
	}
}

func TestDateJSON(t *testing.T) {
	b, err := json.Marshal(struct {
		D Date `json:"d"`
	}{NewDate(2025, 3, 7)})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"d":"2025-03-07"}` {
		t.Fatalf("unexpected encoding %s", b)
	}

	var out struct {
		D Date `json:"d"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.D.Equal(NewDate(2025, 3, 7).Time) {
		t.Fatalf("round trip gave %s", out.D)
	}
	if err := json.Unmarshal([]byte(`{"d":"07/03/2025"}`), &out); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
