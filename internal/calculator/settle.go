package calculator

import "github.com/shopspring/decimal"

// Instruction says From should pay To the given Amount.
type Instruction struct {
	From   string // Person who owes
	To     string // Person who is owed
	Amount decimal.Decimal
}

type party struct {
	member string
	amount decimal.Decimal
}

// ComputeSettlementInstructions turns net balances into payment instructions
// using greedy matching.
//
// Debtors are taken in balance order; each walks the creditors in balance
// order, paying min(debt, claim) until its debt is within Epsilon of zero.
// Creditor claims carry over between debtors. The result is deterministic for
// a given Balances but not minimal: N debtors and M creditors can produce up
// to N×M instructions.
//
// The balances are expected to sum to roughly zero. That is not checked; an
// unbalanced input yields a partial settlement.
func ComputeSettlementInstructions(b Balances) []Instruction {
	var creditors, debtors []party
	for _, e := range b.entries {
		switch {
		case e.Net.IsPositive():
			creditors = append(creditors, party{member: e.Member, amount: e.Net})
		case e.Net.IsNegative():
			debtors = append(debtors, party{member: e.Member, amount: e.Net.Abs()})
		}
	}

	instructions := []Instruction{}
	for _, d := range debtors {
		remaining := d.amount
		for i := range creditors {
			c := &creditors[i]
			if remaining.LessThanOrEqual(Epsilon) {
				break
			}
			if c.amount.LessThanOrEqual(Epsilon) {
				continue
			}

			pay := Round2(decimal.Min(remaining, c.amount))
			instructions = append(instructions, Instruction{
				From:   d.member,
				To:     c.member,
				Amount: pay,
			})

			remaining = Round2(remaining.Sub(pay))
			c.amount = Round2(c.amount.Sub(pay))
		}
	}

	return instructions
}
