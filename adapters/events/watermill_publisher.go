package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/layer-3/walletgate/core"
)

const (
	TopicConnected    = "walletgate.connected"
	TopicDisconnected = "walletgate.disconnected"
)

// ConnectedEvent is published when the gate reveals the content
type ConnectedEvent struct {
	Type      core.WalletType `json:"type"`
	PublicKey string          `json:"publicKey"`
	Address   string          `json:"address"`
}

// DisconnectedEvent is published on a forced re-authentication
type DisconnectedEvent struct {
	Type core.WalletType `json:"type,omitempty"`
}

// WatermillPublisher implements ports.EventPublisher using Watermill
type WatermillPublisher struct {
	publisher message.Publisher
}

// NewWatermillPublisher creates a new Watermill publisher
func NewWatermillPublisher(publisher message.Publisher) *WatermillPublisher {
	return &WatermillPublisher{publisher: publisher}
}

func (p *WatermillPublisher) PublishConnected(ctx context.Context, result core.ConnectionResult) error {
	return p.publish(ctx, TopicConnected, ConnectedEvent{
		Type:      result.Type,
		PublicKey: result.PublicKey,
		Address:   result.Address,
	})
}

func (p *WatermillPublisher) PublishDisconnected(ctx context.Context, wallet core.WalletType) error {
	return p.publish(ctx, TopicDisconnected, DisconnectedEvent{Type: wallet})
}

func (p *WatermillPublisher) publish(ctx context.Context, topic string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	msg := message.NewMessage(watermill.NewUUID(), payload)
	msg.SetContext(ctx)

	if err := p.publisher.Publish(topic, msg); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	return nil
}
