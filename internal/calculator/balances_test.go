package calculator

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(groupID, payer, amount string) models.Expense {
	return models.Expense{GroupID: groupID, PaidBy: payer, Amount: dec(amount)}
}

// nets flattens balances into "member=amount" pairs for readable assertions.
func nets(b Balances) map[string]string {
	out := make(map[string]string, b.Len())
	for member, net := range b.All() {
		out[member] = net.StringFixed(2)
	}
	return out
}

func order(b Balances) []string {
	var out []string
	for member := range b.All() {
		out = append(out, member)
	}
	return out
}

func TestComputeBalances(t *testing.T) {
	tests := []struct {
		name      string
		group     models.Group
		expenses  []models.Expense
		want      map[string]string
		wantOrder []string
		wantShare string
	}{
		{
			name:      "single payer covers everything",
			group:     models.Group{ID: "g1", Members: []string{"A", "B", "C"}, Total: dec("300")},
			expenses:  []models.Expense{expense("g1", "A", "300")},
			want:      map[string]string{"A": "200.00", "B": "-100.00", "C": "-100.00"},
			wantOrder: []string{"A", "B", "C"},
			wantShare: "100.00",
		},
		{
			name:      "empty group total",
			group:     models.Group{ID: "g1", Members: []string{"A", "B"}, Total: decimal.Zero},
			want:      map[string]string{"A": "0.00", "B": "0.00"},
			wantOrder: []string{"A", "B"},
			wantShare: "0.00",
		},
		{
			name:      "unknown payer becomes ad-hoc entry",
			group:     models.Group{ID: "g1", Members: []string{"A", "B"}, Total: dec("50")},
			expenses:  []models.Expense{expense("g1", "D", "50")},
			want:      map[string]string{"A": "-25.00", "B": "-25.00", "D": "50.00"},
			wantOrder: []string{"A", "B", "D"},
			wantShare: "25.00",
		},
		{
			name:      "no members means zero share",
			group:     models.Group{ID: "g1", Total: dec("40")},
			expenses:  []models.Expense{expense("g1", "X", "40")},
			want:      map[string]string{"X": "40.00"},
			wantOrder: []string{"X"},
			wantShare: "0.00",
		},
		{
			name:  "expenses of other groups are ignored",
			group: models.Group{ID: "g1", Members: []string{"A", "B"}, Total: dec("20")},
			expenses: []models.Expense{
				expense("g1", "A", "20"),
				expense("g2", "B", "1000"),
			},
			want:      map[string]string{"A": "10.00", "B": "-10.00"},
			wantOrder: []string{"A", "B"},
			wantShare: "10.00",
		},
		{
			name:  "uneven share rounds to cents",
			group: models.Group{ID: "g1", Members: []string{"A", "B", "C"}, Total: dec("100")},
			expenses: []models.Expense{
				expense("g1", "A", "100"),
			},
			want:      map[string]string{"A": "66.67", "B": "-33.33", "C": "-33.33"},
			wantOrder: []string{"A", "B", "C"},
			wantShare: "33.33",
		},
		{
			name:  "ad-hoc payers keep first-seen order",
			group: models.Group{ID: "g1", Members: []string{"B", "A"}, Total: dec("30")},
			expenses: []models.Expense{
				expense("g1", "Z", "10"),
				expense("g1", "A", "10"),
				expense("g1", "Y", "5"),
				expense("g1", "Z", "5"),
			},
			want:      map[string]string{"B": "-15.00", "A": "-5.00", "Z": "15.00", "Y": "5.00"},
			wantOrder: []string{"B", "A", "Z", "Y"},
			wantShare: "15.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeBalances(&tt.group, tt.expenses)
			assert.Equal(t, tt.want, nets(got))
			assert.Equal(t, tt.wantOrder, order(got))
			assert.Equal(t, tt.wantShare, got.Share.StringFixed(2))
		})
	}
}

func TestComputeBalances_AdHocFlag(t *testing.T) {
	group := &models.Group{ID: "g1", Members: []string{"A", "B"}, Total: dec("50")}
	b := ComputeBalances(group, []models.Expense{expense("g1", "D", "50")})

	d, ok := b.Get("D")
	require.True(t, ok)
	assert.True(t, d.AdHoc)
	assert.True(t, d.Owed.IsZero())
	assert.Equal(t, "50.00", d.Paid.StringFixed(2))

	a, ok := b.Get("A")
	require.True(t, ok)
	assert.False(t, a.AdHoc)
	assert.Equal(t, "25.00", a.Owed.StringFixed(2))

	_, ok = b.Get("nobody")
	assert.False(t, ok)
	assert.True(t, b.Net("nobody").IsZero())
}

func TestComputeBalances_EvenShareWithoutExpenses(t *testing.T) {
	for _, members := range [][]string{
		{"A"},
		{"A", "B"},
		{"A", "B", "C", "D"},
		{"A", "B", "C", "D", "E"},
	} {
		group := &models.Group{ID: "g", Members: members, Total: dec("120")}
		want := dec("120").Div(decimal.NewFromInt(int64(len(members)))).Neg().StringFixed(2)

		b := ComputeBalances(group, nil)
		for _, m := range members {
			assert.Equal(t, want, b.Net(m).StringFixed(2), "member %s of %d", m, len(members))
		}
	}
}

func TestComputeBalances_SumNearZero(t *testing.T) {
	members := []string{"A", "B", "C", "D", "E", "F", "G"}
	var expenses []models.Expense
	amounts := []string{"0.01", "13.37", "99.99", "0.10", "45.45", "7.77", "1000.03", "3.33", "0.07"}
	for i, a := range amounts {
		expenses = append(expenses, expense("g", members[i%len(members)], a))
	}
	group := &models.Group{ID: "g", Members: members}
	ApplyGroupTotal(group, expenses)

	b := ComputeBalances(group, expenses)
	assert.True(t, b.Sum().Abs().LessThanOrEqual(dec("0.02")), "sum = %s", b.Sum())
}

func TestComputeBalances_Idempotent(t *testing.T) {
	group := &models.Group{ID: "g", Members: []string{"A", "B", "C"}, Total: dec("77.70")}
	expenses := []models.Expense{
		expense("g", "A", "50.20"),
		expense("g", "C", "27.50"),
	}

	first := ComputeBalances(group, expenses)
	second := ComputeBalances(group, expenses)
	assert.Equal(t, first.Entries(), second.Entries())
	assert.Equal(t, "77.70", group.Total.StringFixed(2))
}

func TestComputeBalances_DuplicateMember(t *testing.T) {
	group := &models.Group{ID: "g", Members: []string{"A", "A", "B"}, Total: dec("30")}
	b := ComputeBalances(group, []models.Expense{expense("g", "B", "30")})

	assert.Equal(t, 2, b.Len())
	assert.Equal(t, "-10.00", b.Net("A").StringFixed(2))
	assert.Equal(t, "20.00", b.Net("B").StringFixed(2))
}

func TestApplySettlements(t *testing.T) {
	group := &models.Group{ID: "g", Members: []string{"A", "B", "C"}, Total: dec("300")}
	b := ComputeBalances(group, []models.Expense{expense("g", "A", "300")})

	settled := b.ApplySettlements([]models.Settlement{
		{From: "B", To: "A", Amount: dec("100")},
		{From: "C", To: "A", Amount: dec("40")},
		{From: "E", To: "C", Amount: dec("5")},
	})

	assert.Equal(t, map[string]string{
		"A": "60.00",
		"B": "0.00",
		"C": "-65.00",
		"E": "5.00",
	}, nets(settled))

	// original untouched
	assert.Equal(t, "200.00", b.Net("A").StringFixed(2))
	assert.Equal(t, 3, b.Len())

	e, ok := settled.Get("E")
	require.True(t, ok)
	assert.True(t, e.AdHoc)
}

func TestNewBalances(t *testing.T) {
	b := NewBalances(
		MemberBalance{Member: "X", Net: dec("5")},
		MemberBalance{Member: "Y", Net: dec("-5")},
		MemberBalance{Member: "X", Net: dec("7")},
	)
	assert.Equal(t, []string{"X", "Y"}, order(b))
	assert.Equal(t, "7.00", b.Net("X").StringFixed(2))
}
