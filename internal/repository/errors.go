package repository

import (
	"errors"
	"fmt"
)

// StoreError wraps any persistence fault: I/O, encoding or a rejected remote insert.
// Detail carries remote response text that may be shown to the caller.
type StoreError struct {
	Op     string
	Err    error
	Detail string
}

func (e *StoreError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("store %s: %v: %s", e.Op, e.Err, e.Detail)
	}
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// IsStoreError reports whether err is a *StoreError and returns it
func IsStoreError(err error) (*StoreError, bool) {
	var se *StoreError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

func storeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}
