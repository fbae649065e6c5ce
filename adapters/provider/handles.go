// Package provider adapts host-injected wallet handles to the gate's Provider port.
//
// Handles mirror the objects wallet extensions inject into a page: Phantom's
// window.phantom.solana, Solflare's window.solflare and an EIP-1193
// window.ethereum. Hosts inject them into a Registry whenever they appear.
package provider

import "context"

// ConnectOptions are passed to Phantom's connect call
type ConnectOptions struct {
	OnlyIfTrusted bool
}

// PhantomConnectResponse is what Phantom's connect resolves with
type PhantomConnectResponse struct {
	PublicKey string
}

// PhantomHandle mirrors the Phantom Solana provider
type PhantomHandle interface {
	IsPhantom() bool
	Connect(ctx context.Context, opts ConnectOptions) (PhantomConnectResponse, error)
	PublicKey() string
}

// RequestArguments is an EIP-1193 request
type RequestArguments struct {
	Method string
	Params []any
}

// EthereumHandle mirrors an EIP-1193 provider such as MetaMask
type EthereumHandle interface {
	IsMetaMask() bool
	Request(ctx context.Context, args RequestArguments) (any, error)
	SelectedAddress() string
}

// SolflareWallet is the nested wallet object some Solflare versions expose
type SolflareWallet interface {
	PublicKey() string
}

// SolflareHandle mirrors the Solflare provider.
// Connect may resolve without a key; the key is then read from the handle.
type SolflareHandle interface {
	IsSolflare() bool
	IsConnected() bool
	PublicKey() string
	Connect(ctx context.Context) (string, error)
	Wallet() SolflareWallet
}
