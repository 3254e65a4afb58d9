package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestExpenseValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   error
	}{
		{"0", nil},
		{"10.005", nil},
		{"1000000000000", nil},
		{"1000000000000.004", nil},
		{"1000000000000.01", ErrAmountTooLarge},
		{"184467440737095516.16", ErrAmountTooLarge},
		{"-0.01", ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			e := Expense{Description: "Hotel", PaidBy: "A", Amount: decimal.RequireFromString(tt.amount)}
			assert.ErrorIs(t, e.Validate(), tt.want)
		})
	}
}

func TestSettlementValidateAmount(t *testing.T) {
	tests := []struct {
		amount string
		want   error
	}{
		{"0.01", nil},
		{"0.005", nil},
		{"0.004", ErrNonPositive},
		{"0", ErrNonPositive},
		{"-3", ErrNonPositive},
		{"1000000000000.01", ErrAmountTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			s := Settlement{From: "A", To: "B", Amount: decimal.RequireFromString(tt.amount)}
			assert.ErrorIs(t, s.Validate(), tt.want)
		})
	}
}
