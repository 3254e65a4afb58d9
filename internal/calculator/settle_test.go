package calculator

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/mmynk/settleup/internal/models"
)

func nb(member, net string) MemberBalance {
	return MemberBalance{Member: member, Net: dec(net)}
}

func instr(from, to, amount string) string {
	return fmt.Sprintf("%s->%s %s", from, to, dec(amount).StringFixed(2))
}

func flatten(instructions []Instruction) []string {
	out := make([]string, 0, len(instructions))
	for _, in := range instructions {
		out = append(out, fmt.Sprintf("%s->%s %s", in.From, in.To, in.Amount.StringFixed(2)))
	}
	return out
}

func TestComputeSettlementInstructions(t *testing.T) {
	tests := []struct {
		name     string
		balances Balances
		want     []string
	}{
		{
			name:     "one creditor two debtors",
			balances: NewBalances(nb("A", "200"), nb("B", "-100"), nb("C", "-100")),
			want:     []string{instr("B", "A", "100"), instr("C", "A", "100")},
		},
		{
			name:     "all settled",
			balances: NewBalances(nb("A", "0"), nb("B", "0")),
			want:     []string{},
		},
		{
			name:     "empty balances",
			balances: NewBalances(),
			want:     []string{},
		},
		{
			name:     "debts routed to ad-hoc payer",
			balances: NewBalances(nb("A", "-25"), nb("B", "-25"), nb("D", "50")),
			want:     []string{instr("A", "D", "25"), instr("B", "D", "25")},
		},
		{
			name:     "debtor split across creditors",
			balances: NewBalances(nb("A", "30"), nb("B", "20"), nb("C", "-50")),
			want:     []string{instr("C", "A", "30"), instr("C", "B", "20")},
		},
		{
			name:     "creditor claim carries over between debtors",
			balances: NewBalances(nb("A", "-10"), nb("B", "25"), nb("C", "-40"), nb("D", "25")),
			want: []string{
				instr("A", "B", "10"),
				instr("C", "B", "15"),
				instr("C", "D", "25"),
			},
		},
		{
			name:     "cent residue is ignored",
			balances: NewBalances(nb("A", "66.67"), nb("B", "-33.33"), nb("C", "-33.33")),
			want:     []string{instr("B", "A", "33.33"), instr("C", "A", "33.33")},
		},
		{
			name:     "claims within epsilon are skipped",
			balances: NewBalances(nb("A", "0.01"), nb("B", "10"), nb("C", "-10.01")),
			want:     []string{instr("C", "B", "10")},
		},
		{
			name:     "unbalanced input yields partial settlement",
			balances: NewBalances(nb("A", "10"), nb("B", "-30")),
			want:     []string{instr("B", "A", "10")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSettlementInstructions(tt.balances)
			assert.NotNil(t, got)
			assert.Equal(t, tt.want, flatten(got))
		})
	}
}

func TestComputeSettlementInstructions_Exhausts(t *testing.T) {
	members := []string{"Ana", "Bia", "Caio", "Duda", "Enzo"}
	group := &models.Group{ID: "g", Members: members}
	expenses := []models.Expense{
		expense("g", "Ana", "123.45"),
		expense("g", "Bia", "10.00"),
		expense("g", "Ana", "0.99"),
		expense("g", "Duda", "301.10"),
		expense("g", "Zeca", "42.00"),
	}
	ApplyGroupTotal(group, expenses)
	balances := ComputeBalances(group, expenses)

	instructions := ComputeSettlementInstructions(balances)

	remaining := make(map[string]decimal.Decimal)
	for member, net := range balances.All() {
		remaining[member] = net
	}
	positive := decimal.Zero
	for _, net := range remaining {
		if net.IsPositive() {
			positive = positive.Add(net)
		}
	}

	paid := decimal.Zero
	for _, in := range instructions {
		assert.True(t, in.Amount.IsPositive())
		remaining[in.From] = remaining[in.From].Add(in.Amount)
		remaining[in.To] = remaining[in.To].Sub(in.Amount)
		paid = paid.Add(in.Amount)
	}

	for member, left := range remaining {
		assert.True(t, left.Abs().LessThanOrEqual(dec("0.02")), "%s left with %s", member, left)
	}
	assert.True(t, paid.Sub(positive).Abs().LessThanOrEqual(dec("0.02")), "paid %s, owed %s", paid, positive)
}

func TestComputeSettlementInstructions_Deterministic(t *testing.T) {
	b := NewBalances(nb("A", "-10"), nb("B", "25"), nb("C", "-40"), nb("D", "25"))
	assert.Equal(t, flatten(ComputeSettlementInstructions(b)), flatten(ComputeSettlementInstructions(b)))
}

func TestComputeSettlementInstructions_EndToEnd(t *testing.T) {
	group := &models.Group{ID: "g1", Members: []string{"A", "B", "C"}}
	expenses := []models.Expense{expense("g1", "A", "300")}
	ApplyGroupTotal(group, expenses)

	got := ComputeSettlementInstructions(ComputeBalances(group, expenses))
	assert.Equal(t, []string{instr("B", "A", "100"), instr("C", "A", "100")}, flatten(got))
}
