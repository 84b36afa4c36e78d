package domain

import "errors"

var (
	ErrNotFound       = errors.New("not found")
	ErrValidation     = errors.New("validation failed")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrOverCommitment = errors.New("amount exceeds remaining funding")
	ErrUnauthorized   = errors.New("unauthorized")
)
