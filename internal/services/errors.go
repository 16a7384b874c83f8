package services

import "errors"

var (
	ErrDuplicateUser       = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrInvalidLoanPayload  = errors.New("loan details missing or malformed")
	ErrInvalidNumericField = errors.New("loan amount and interest rate must be valid numbers")
	ErrNotFound            = errors.New("not found")
)

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }
