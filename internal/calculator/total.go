package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// RecalculateGroupTotal sums the amounts of the expenses that belong to
// groupID, rounded to cents. Expenses of other groups are ignored.
//
// It must run after every expense creation or deletion; a stale Group.Total
// corrupts ComputeBalances.
func RecalculateGroupTotal(groupID string, expenses []models.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range expenses {
		if e.GroupID == groupID {
			total = total.Add(e.Amount)
		}
	}
	return Round2(total)
}

// ApplyGroupTotal recalculates group.Total from expenses and returns it.
func ApplyGroupTotal(group *models.Group, expenses []models.Expense) decimal.Decimal {
	group.Total = RecalculateGroupTotal(group.ID, expenses)
	return group.Total
}
