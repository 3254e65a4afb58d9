// Package activity records the activity feed and fans it out to subscribers
// over AMQP.
package activity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Message is the wire form of an activity on the queue.
type Message struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	Kind      string          `json:"kind"`
	Actor     string          `json:"actor,omitempty"`
	Text      string          `json:"message"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewMessage wraps an activity for publishing.
func NewMessage(a models.Activity) *Message {
	return &Message{
		ID:        a.ID,
		GroupID:   a.GroupID,
		Kind:      string(a.Kind),
		Actor:     a.Actor,
		Text:      a.Message,
		Amount:    a.Amount,
		CreatedAt: time.Unix(a.CreatedAt, 0).UTC(),
	}
}

// Activity converts the message back to the domain type.
func (m *Message) Activity() models.Activity {
	return models.Activity{
		ID:        m.ID,
		GroupID:   m.GroupID,
		Kind:      models.ActivityKind(m.Kind),
		Actor:     m.Actor,
		Message:   m.Text,
		Amount:    m.Amount,
		CreatedAt: m.CreatedAt.Unix(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *Message) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// MessageFromJSON parses a message published by ToJSON.
func MessageFromJSON(data []byte) (*Message, error) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
