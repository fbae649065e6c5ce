package ports

import (
	"context"

	"github.com/layer-3/walletgate/core"
)

// Provider is the capability set the gate needs from one wallet family
type Provider interface {
	Kind() core.WalletType

	// Available reports whether the host has injected a handle that identifies as this wallet
	Available() bool

	// ConnectSilently never prompts the user; any failure means "no session"
	ConnectSilently(ctx context.Context) (core.ConnectionResult, error)

	// ConnectInteractively may block until the user answers the wallet prompt
	ConnectInteractively(ctx context.Context) (core.ConnectionResult, error)
}

// ProviderSet resolves the adapter for a wallet type
type ProviderSet interface {
	Provider(kind core.WalletType) (Provider, bool)
	Kinds() []core.WalletType
}
