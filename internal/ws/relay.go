package ws

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/medipresence/presence-api/pkg/messaging"
)

// Relay bridges the broker's event channel into the hub so every API
// instance fans the same events out to its own clients.
type Relay struct {
	broker  messaging.Broker
	channel string
	hub     *Hub
}

func NewRelay(broker messaging.Broker, channel string, hub *Hub) *Relay {
	return &Relay{broker: broker, channel: channel, hub: hub}
}

// Run subscribes to the event channel and forwards events until ctx is
// canceled. Malformed payloads are logged and skipped.
func (r *Relay) Run(ctx context.Context) error {
	msgs, err := r.broker.Subscribe(ctx, r.channel)
	if err != nil {
		return err
	}

	log.Info().Str("channel", r.channel).Msg("event relay started")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-msgs:
			if !ok {
				return nil
			}
			var event messaging.Event
			if err := json.Unmarshal(payload, &event); err != nil {
				log.Warn().Err(err).Msg("discarding malformed event payload")
				continue
			}
			r.hub.Broadcast(event)
		}
	}
}
