package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Group represents a set of people who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Beach Trip 2024").
	Name string

	// Members is the list of participant names, in the order they were added.
	// Balance and settlement output follows this order.
	Members []string

	// Total is the sum of all expense amounts recorded for the group.
	// It is derived and only changes through expense creation or deletion.
	Total decimal.Decimal

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Validate checks the group's user-supplied fields.
func (g *Group) Validate() error {
	if strings.TrimSpace(g.Name) == "" {
		return ErrEmptyName
	}
	for _, m := range g.Members {
		if strings.TrimSpace(m) == "" {
			return ErrEmptyMember
		}
	}
	return nil
}

// HasMember reports whether name is listed in the group's members.
func (g *Group) HasMember(name string) bool {
	for _, m := range g.Members {
		if m == name {
			return true
		}
	}
	return false
}
