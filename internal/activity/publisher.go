package activity

import (
	"context"

	"github.com/mmynk/settleup/internal/models"
)

// Publisher delivers recorded activities to downstream consumers.
type Publisher interface {
	Publish(ctx context.Context, a models.Activity) error
	Close() error
}

// Nop discards every activity. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, models.Activity) error { return nil }

func (Nop) Close() error { return nil }
