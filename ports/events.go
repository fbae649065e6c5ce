package ports

import (
	"context"

	"github.com/layer-3/walletgate/core"
)

// EventPublisher notifies listeners about authentication changes
type EventPublisher interface {
	PublishConnected(ctx context.Context, result core.ConnectionResult) error
	PublishDisconnected(ctx context.Context, wallet core.WalletType) error
}
