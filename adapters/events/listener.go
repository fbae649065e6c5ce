package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/layer-3/walletgate/core"
)

// Handlers receive decoded gate events. Nil handlers are skipped.
type Handlers struct {
	OnConnected    func(core.ConnectionResult)
	OnDisconnected func(core.WalletType)
}

// Listen subscribes to both gate topics and dispatches until ctx is done
func Listen(ctx context.Context, subscriber message.Subscriber, h Handlers) error {
	connected, err := subscriber.Subscribe(ctx, TopicConnected)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicConnected, err)
	}
	disconnected, err := subscriber.Subscribe(ctx, TopicDisconnected)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", TopicDisconnected, err)
	}

	go consume(connected, func(payload []byte) {
		var event ConnectedEvent
		if json.Unmarshal(payload, &event) == nil && h.OnConnected != nil {
			h.OnConnected(core.ConnectionResult{Type: event.Type, PublicKey: event.PublicKey, Address: event.Address})
		}
	})
	go consume(disconnected, func(payload []byte) {
		var event DisconnectedEvent
		if json.Unmarshal(payload, &event) == nil && h.OnDisconnected != nil {
			h.OnDisconnected(event.Type)
		}
	})

	return nil
}

func consume(messages <-chan *message.Message, handle func([]byte)) {
	for msg := range messages {
		handle(msg.Payload)
		msg.Ack()
	}
}
