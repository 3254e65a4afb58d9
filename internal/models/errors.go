package models

import "errors"

var (
	ErrEmptyName        = errors.New("name cannot be empty")
	ErrEmptyMember      = errors.New("member name cannot be empty")
	ErrEmptyDescription = errors.New("description cannot be empty")
	ErrEmptyPayer       = errors.New("payer cannot be empty")
	ErrInvalidAmount    = errors.New("amount must not be negative")
	ErrAmountTooLarge   = errors.New("amount exceeds the maximum of 1000000000000.00")
	ErrNonPositive      = errors.New("amount must be greater than zero")
	ErrInvalidDate      = errors.New("date must be formatted as YYYY-MM-DD")
	ErrSameParty        = errors.New("payer and receiver must differ")
)
