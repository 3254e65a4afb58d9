// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// Store defines the interface for group, expense and settlement storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	GroupStore
	ExpenseStore
	SettlementStore
	ActivityStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}

// GroupStore persists groups and their member lists.
type GroupStore interface {
	// CreateGroup persists a new group. ID and CreatedAt are populated by the
	// store and Total starts at zero.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group with its members in insertion order.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroups returns all groups, newest first.
	ListGroups(ctx context.Context) ([]*models.Group, error)

	// UpdateGroup replaces the group's name and member list. Total is untouched.
	UpdateGroup(ctx context.Context, group *models.Group) error

	// DeleteGroup removes a group together with its expenses, settlements and
	// activities.
	DeleteGroup(ctx context.Context, groupID string) error
}

// ExpenseStore persists expenses. Both mutations recompute the owning
// group's total in the same transaction.
type ExpenseStore interface {
	// CreateExpense persists a new expense and returns the group's new total.
	CreateExpense(ctx context.Context, expense *models.Expense) (*models.Group, error)

	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup returns a group's expenses ordered by date, then
	// creation.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]models.Expense, error)

	// DeleteExpense removes an expense and returns the updated group.
	DeleteExpense(ctx context.Context, expenseID string) (*models.Group, error)
}

// SettlementStore persists recorded payments between members.
type SettlementStore interface {
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error
	GetSettlement(ctx context.Context, settlementID string) (*models.Settlement, error)
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]models.Settlement, error)
	DeleteSettlement(ctx context.Context, settlementID string) error
}

// ActivityStore persists the activity feed.
type ActivityStore interface {
	CreateActivity(ctx context.Context, activity *models.Activity) error

	// ListActivities returns activities newest first. An empty groupID lists
	// every group. A limit of zero or less means no limit.
	ListActivities(ctx context.Context, groupID string, limit int) ([]models.Activity, error)
}

// UserStore persists user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail returns ErrNotFound when no user has the email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)
}
