package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MaxAmount is the largest amount accepted for a single expense or settlement.
var MaxAmount = decimal.New(1, 12)

// DateLayout is the calendar date format used for Expense.Date.
const DateLayout = "2006-01-02"

// Expense represents a single payment made by one person for the group.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to. It never changes after creation.
	GroupID string

	// Description is free text (e.g., "Hotel", "Groceries").
	Description string

	// Amount is the money paid. Must not be negative.
	Amount decimal.Decimal

	// PaidBy is the name of the person who paid. Usually a group member,
	// but unknown payers are tolerated.
	PaidBy string

	// Date is the calendar day of the expense (YYYY-MM-DD). Informational only.
	Date string

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// Validate checks the expense fields supplied by the caller.
func (e *Expense) Validate() error {
	if strings.TrimSpace(e.Description) == "" {
		return ErrEmptyDescription
	}
	if strings.TrimSpace(e.PaidBy) == "" {
		return ErrEmptyPayer
	}
	if e.Amount.IsNegative() {
		return ErrInvalidAmount
	}
	if e.Amount.Round(2).GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	if e.Date != "" {
		if _, err := time.Parse(DateLayout, e.Date); err != nil {
			return ErrInvalidDate
		}
	}
	return nil
}

// Today returns the current date formatted with DateLayout.
func Today() string {
	return time.Now().Format(DateLayout)
}
