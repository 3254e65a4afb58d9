package calculator

import "github.com/shopspring/decimal"

// Epsilon is the residue below which a debt or claim is treated as settled.
var Epsilon = decimal.New(1, -2)

// Round2 rounds d to exactly two fractional digits (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Share returns each member's equal portion of total, rounded to cents.
// A group without members has a share of zero.
func Share(total decimal.Decimal, members int) decimal.Decimal {
	if members <= 0 {
		return decimal.Zero
	}
	return Round2(total.Div(decimal.NewFromInt(int64(members))))
}
