// Package models defines the core domain models for SettleUp.
//
// # Models
//
//   - Group: a named set of members sharing expenses, with a derived Total
//   - Expense: one payment made by a member on behalf of the group
//   - Settlement: a recorded payment between two members to clear debt
//   - Activity: an entry in the group's activity feed
//   - User: a registered account that can authenticate against the API
//
// Members are identified by name strings. A payer or settlement party that is
// not listed in Group.Members is still accepted; the calculator reports it as
// an ad-hoc balance entry.
//
// # Money
//
// Amounts use decimal.Decimal (github.com/shopspring/decimal) and are kept at
// two fractional digits. Storage persists them as integer cents.
//
// # Relationships
//
// Models reference each other by ID strings rather than pointers. Group.Total
// is derived: it must equal the sum of the group's expense amounts and is
// recomputed by the storage layer whenever an expense is created or deleted.
package models
