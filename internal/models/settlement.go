package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment between group members to clear debts.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// GroupID is the group this settlement belongs to.
	GroupID string

	// From is the member who paid (debtor settling up).
	From string

	// To is the member who received payment (creditor being paid).
	To string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Note is an optional description for the settlement.
	Note string

	// CreatedBy is the user ID who recorded this settlement.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the settlement was recorded.
	CreatedAt int64
}

// Validate checks that the settlement describes a real transfer.
func (s *Settlement) Validate() error {
	if strings.TrimSpace(s.From) == "" || strings.TrimSpace(s.To) == "" {
		return ErrEmptyPayer
	}
	if s.From == s.To {
		return ErrSameParty
	}
	// Stored in cents, so anything that rounds to zero is no transfer.
	if !s.Amount.Round(2).IsPositive() {
		return ErrNonPositive
	}
	if s.Amount.Round(2).GreaterThan(MaxAmount) {
		return ErrAmountTooLarge
	}
	return nil
}
