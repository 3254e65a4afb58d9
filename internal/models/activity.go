package models

import "github.com/shopspring/decimal"

// ActivityKind identifies what happened in an activity entry.
type ActivityKind string

const (
	ActivityGroupCreated       ActivityKind = "group_created"
	ActivityGroupUpdated       ActivityKind = "group_updated"
	ActivityGroupDeleted       ActivityKind = "group_deleted"
	ActivityExpenseAdded       ActivityKind = "expense_added"
	ActivityExpenseDeleted     ActivityKind = "expense_deleted"
	ActivitySettlementRecorded ActivityKind = "settlement_recorded"
	ActivitySettlementDeleted  ActivityKind = "settlement_deleted"
)

// Activity is one entry in a group's activity feed.
type Activity struct {
	ID      string
	GroupID string
	Kind    ActivityKind

	// Actor is the authenticated user ID that caused the activity, if any.
	Actor string

	// Message is a human-readable summary (e.g., "Maria added Groceries").
	Message string

	// Amount is the money involved, zero when not applicable.
	Amount decimal.Decimal

	CreatedAt int64
}
