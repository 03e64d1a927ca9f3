package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned (wrapped) by repositories when a record does not exist
var ErrNotFound = errors.New("not found")

// InvalidPositionError reports a malformed numeric field on an investment position
type InvalidPositionError struct {
	Symbol string
	Field  string
	Reason string
}

func (e *InvalidPositionError) Error() string {
	if e.Symbol == "" {
		return fmt.Sprintf("invalid position: %s %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid position %s: %s %s", e.Symbol, e.Field, e.Reason)
}

// InvalidGoalParametersError reports goal or simulation parameters that cannot be projected
type InvalidGoalParametersError struct {
	Field  string
	Reason string
}

func (e *InvalidGoalParametersError) Error() string {
	return fmt.Sprintf("invalid goal parameters: %s %s", e.Field, e.Reason)
}

// InvalidTransactionError reports a transaction that cannot be recorded
type InvalidTransactionError struct {
	Field  string
	Reason string
}

func (e *InvalidTransactionError) Error() string {
	return fmt.Sprintf("invalid transaction: %s %s", e.Field, e.Reason)
}
