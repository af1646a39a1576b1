package models

import (
	"errors"
	"fmt"
)

var (
	ErrListingNotFound = errors.New("listing not found")
	ErrInvalidAction   = errors.New("invalid action")
	ErrUnauthorized    = errors.New("unauthorized")
)

// MissingFieldError names the first required creation field that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// PaymentError carries the verifier's rejection reason.
type PaymentError struct {
	Reason string
}

func (e *PaymentError) Error() string {
	return e.Reason
}
