package messaging

import (
	"context"
)

// Event types pushed to dashboard clients.
const (
	EventStatusUpdate   = "status_update"
	EventNewTask        = "new_task"
	EventAlert          = "alert"
	EventEmergencyAlert = "emergency_alert"
	EventMessage        = "message"
)

// Event is the envelope pushed to connected dashboard clients.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// Broker defines the interface for message brokers
type Broker interface {
	Publish(ctx context.Context, channel string, message interface{}) error
	Subscribe(ctx context.Context, channel string) (<-chan []byte, error)
	Close() error
}

// Publisher is the producer-facing side of the fan-out: handlers and
// monitors publish events through it, fire-and-forget.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type brokerPublisher struct {
	broker  Broker
	channel string
}

// NewPublisher wraps a broker with a fixed event channel.
func NewPublisher(broker Broker, channel string) Publisher {
	return &brokerPublisher{broker: broker, channel: channel}
}

func (p *brokerPublisher) Publish(ctx context.Context, event Event) error {
	return p.broker.Publish(ctx, p.channel, event)
}
