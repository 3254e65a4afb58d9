// Command activity-worker consumes the activity queue and logs each entry.
// It is the reference consumer for anything that wants to react to group
// changes (notifications, exports).
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mmynk/settleup/internal/activity"
	"github.com/mmynk/settleup/internal/config"
	"github.com/mmynk/settleup/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Activity worker failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.SetupWithLevel(cfg.Level())

	if !cfg.PublishingEnabled() {
		return errors.New("AMQP_URL is required")
	}
	if err := cfg.ValidateAMQP(); err != nil {
		return err
	}

	client, err := activity.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("failed to initialize AMQP client: %w", err)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("Starting activity worker", "queue", cfg.AMQPQueue)
	err = client.Consume(ctx, logActivity)
	if errors.Is(err, context.Canceled) {
		slog.Info("Activity worker stopped")
		return nil
	}
	return err
}

func logActivity(ctx context.Context, msg *activity.Message) error {
	slog.InfoContext(ctx, "Activity",
		"activity_id", msg.ID,
		"group_id", msg.GroupID,
		"kind", msg.Kind,
		"actor", msg.Actor,
		"amount", msg.Amount.StringFixed(2),
		"message", msg.Text,
		"created_at", msg.CreatedAt,
	)
	return nil
}
