package activity

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Recorder stores activities and then publishes them. Publishing is best
// effort: the stored row is the source of truth.
type Recorder struct {
	store     storage.ActivityStore
	publisher Publisher
	logger    *slog.Logger
}

// NewRecorder creates a recorder. A nil publisher means Nop.
func NewRecorder(store storage.ActivityStore, publisher Publisher, logger *slog.Logger) *Recorder {
	if publisher == nil {
		publisher = Nop{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{store: store, publisher: publisher, logger: logger}
}

// Record persists a and publishes it.
func (r *Recorder) Record(ctx context.Context, a models.Activity) error {
	if err := r.store.CreateActivity(ctx, &a); err != nil {
		return fmt.Errorf("failed to record activity: %w", err)
	}
	if err := r.publisher.Publish(ctx, a); err != nil {
		r.logger.Warn("Failed to publish activity", "activity_id", a.ID, "kind", a.Kind, "error", err)
	}
	return nil
}
