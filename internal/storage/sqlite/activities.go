package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/settleup/internal/models"
)

// CreateActivity appends an entry to the activity feed.
func (s *SQLiteStore) CreateActivity(ctx context.Context, activity *models.Activity) error {
	if activity.ID == "" {
		activity.ID = uuid.New().String()
	}
	if activity.CreatedAt == 0 {
		activity.CreatedAt = time.Now().Unix()
	}

	amountCents, err := toCents(activity.Amount)
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO activities (id, group_id, kind, actor, message, amount_cents, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.GroupID, string(activity.Kind), activity.Actor,
		activity.Message, amountCents, activity.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

// ListActivities returns the newest activities first, optionally filtered by group.
func (s *SQLiteStore) ListActivities(ctx context.Context, groupID string, limit int) ([]models.Activity, error) {
	query := "SELECT id, group_id, kind, actor, message, amount_cents, created_at FROM activities"
	var args []any
	if groupID != "" {
		query += " WHERE group_id = ?"
		args = append(args, groupID)
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	activities := []models.Activity{}
	for rows.Next() {
		var a models.Activity
		var kind string
		var amountCents int64
		if err := rows.Scan(&a.ID, &a.GroupID, &kind, &a.Actor, &a.Message, &amountCents, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		a.Kind = models.ActivityKind(kind)
		a.Amount = fromCents(amountCents)
		activities = append(activities, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate activities: %w", err)
	}
	return activities, nil
}
