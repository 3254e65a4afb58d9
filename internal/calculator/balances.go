package calculator

import (
	"iter"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// MemberBalance represents the balance information for one person in a group.
type MemberBalance struct {
	Member string
	Paid   decimal.Decimal // Total amount paid across the group's expenses
	Owed   decimal.Decimal // Equal share of the group total; zero for ad-hoc entries
	Net    decimal.Decimal // Positive = owed money, Negative = owes money

	// AdHoc marks a person who is not listed in the group's members, such as a
	// historical payer removed from the group. Ad-hoc entries carry no share.
	AdHoc bool
}

// Balances is an ordered set of member balances. Iteration follows group
// member order, then ad-hoc entries in order of first appearance.
type Balances struct {
	// Share is the per-member portion of the group total.
	Share decimal.Decimal

	entries []MemberBalance
	index   map[string]int
}

// NewBalances builds Balances from net amounts in the given order.
// Later duplicates of a member overwrite the earlier amount in place.
func NewBalances(entries ...MemberBalance) Balances {
	b := Balances{index: make(map[string]int, len(entries))}
	for _, e := range entries {
		mb := b.entry(e.Member, e.AdHoc)
		*mb = e
	}
	return b
}

// entry returns the balance for member, appending a zero entry if needed.
// The returned pointer is valid until the next append.
func (b *Balances) entry(member string, adHoc bool) *MemberBalance {
	if b.index == nil {
		b.index = make(map[string]int)
	}
	if i, ok := b.index[member]; ok {
		return &b.entries[i]
	}
	b.index[member] = len(b.entries)
	b.entries = append(b.entries, MemberBalance{
		Member: member,
		Paid:   decimal.Zero,
		Owed:   decimal.Zero,
		Net:    decimal.Zero,
		AdHoc:  adHoc,
	})
	return &b.entries[len(b.entries)-1]
}

// Len returns the number of entries.
func (b Balances) Len() int {
	return len(b.entries)
}

// Get returns the balance of member.
func (b Balances) Get(member string) (MemberBalance, bool) {
	i, ok := b.index[member]
	if !ok {
		return MemberBalance{}, false
	}
	return b.entries[i], true
}

// Net returns member's net balance, or zero if the member is absent.
func (b Balances) Net(member string) decimal.Decimal {
	mb, ok := b.Get(member)
	if !ok {
		return decimal.Zero
	}
	return mb.Net
}

// Entries returns a copy of all balances in order.
func (b Balances) Entries() []MemberBalance {
	out := make([]MemberBalance, len(b.entries))
	copy(out, b.entries)
	return out
}

// All iterates over member names and net balances in order.
func (b Balances) All() iter.Seq2[string, decimal.Decimal] {
	return func(yield func(string, decimal.Decimal) bool) {
		for _, e := range b.entries {
			if !yield(e.Member, e.Net) {
				return
			}
		}
	}
}

// Sum returns the sum of all net balances. It is within a few cents of zero
// when the group total matches its expenses.
func (b Balances) Sum() decimal.Decimal {
	sum := decimal.Zero
	for _, e := range b.entries {
		sum = sum.Add(e.Net)
	}
	return sum
}

func (b Balances) clone() Balances {
	out := Balances{
		Share:   b.Share,
		entries: b.Entries(),
		index:   make(map[string]int, len(b.index)),
	}
	for k, v := range b.index {
		out.index[k] = v
	}
	return out
}

// ComputeBalances computes each person's net balance in a group.
//
// Algorithm:
//   - Every member starts at zero paid
//   - Each expense of the group adds its amount to the payer's paid total;
//     payers outside group.Members get an ad-hoc entry
//   - share = group.Total / len(group.Members), rounded to cents
//   - member net = paid - share; ad-hoc net = paid
//
// Expenses belonging to other groups are ignored. The function reads
// group.Total as stored and does not re-sum it, so callers must keep the
// total current (see RecalculateGroupTotal).
func ComputeBalances(group *models.Group, expenses []models.Expense) Balances {
	b := Balances{index: make(map[string]int, len(group.Members))}
	for _, m := range group.Members {
		b.entry(m, false)
	}

	for _, e := range expenses {
		if e.GroupID != group.ID {
			continue
		}
		mb := b.entry(e.PaidBy, true)
		mb.Paid = mb.Paid.Add(e.Amount)
	}

	b.Share = Share(group.Total, len(group.Members))
	for i := range b.entries {
		mb := &b.entries[i]
		if !mb.AdHoc {
			mb.Owed = b.Share
		}
		mb.Net = Round2(mb.Paid.Sub(mb.Owed))
	}

	return b
}

// ApplySettlements returns a copy of b with recorded payments applied.
// The payer's balance improves by the amount and the receiver's decreases.
// Parties missing from b are added as ad-hoc entries.
func (b Balances) ApplySettlements(settlements []models.Settlement) Balances {
	out := b.clone()
	for _, s := range settlements {
		from := out.entry(s.From, true)
		from.Net = Round2(from.Net.Add(s.Amount))

		to := out.entry(s.To, true)
		to.Net = Round2(to.Net.Sub(s.Amount))
	}
	return out
}
