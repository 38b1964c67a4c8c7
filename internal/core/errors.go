package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrAccountInUse = errors.New("account referenced by outcomes")
	ErrPersistence  = errors.New("persistence failure")
)

var (
	ErrEmptyAccountType        = &ValidationError{Field: "account_type", Reason: "must not be empty"}
	ErrEmptyCurrency           = &ValidationError{Field: "currency", Reason: "must not be empty"}
	ErrInvalidExchangeRate     = &ValidationError{Field: "exchange_rate", Reason: "must be positive"}
	ErrInvalidIncomePercentage = &ValidationError{Field: "income_percentage", Reason: "must not be negative"}
	ErrInvalidAccountID        = &ValidationError{Field: "account_id", Reason: "must be positive"}
	ErrInvalidAmount           = &ValidationError{Field: "amount", Reason: "must be positive"}
	ErrEmptyDescription        = &ValidationError{Field: "description", Reason: "must not be empty"}
	ErrDistributionMismatch    = &ValidationError{Field: "distributions", Reason: "must add up to the outcome amount"}
	ErrEmptyAssetName          = &ValidationError{Field: "name", Reason: "must not be empty"}
)

// ValidationError reports user input that cannot be stored.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NotFoundError reports an update or delete against a missing row.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// AccountInUseError is returned when deleting an account that outcomes still reference.
type AccountInUseError struct {
	AccountID  int64
	OutcomeIDs []int64
}

func (e *AccountInUseError) Error() string {
	ids := make([]string, len(e.OutcomeIDs))
	for i, id := range e.OutcomeIDs {
		ids[i] = strconv.FormatInt(id, 10)
	}
	return fmt.Sprintf("account %d is referenced by outcomes [%s]", e.AccountID, strings.Join(ids, ", "))
}

func (e *AccountInUseError) Unwrap() error { return ErrAccountInUse }

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

func (e *PersistenceError) Is(target error) bool { return target == ErrPersistence }
