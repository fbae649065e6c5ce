package provider

import (
	"sync"

	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/ports"
)

// Registry holds the handles injected by the host.
// Handles may be set at any time after the gate starts, or never.
type Registry struct {
	mu       sync.RWMutex
	phantom  PhantomHandle
	solflare SolflareHandle
	ethereum EthereumHandle

	adapters map[core.WalletType]ports.Provider
}

// NewRegistry creates an empty registry with one adapter per wallet type
func NewRegistry() *Registry {
	r := &Registry{}
	r.adapters = map[core.WalletType]ports.Provider{
		core.WalletPhantom:  &Phantom{handles: r},
		core.WalletSolflare: &Solflare{handles: r},
		core.WalletMetaMask: &MetaMask{handles: r},
	}
	return r
}

// SetPhantom injects or replaces the Phantom handle
func (r *Registry) SetPhantom(h PhantomHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.phantom = h
}

// SetSolflare injects or replaces the Solflare handle
func (r *Registry) SetSolflare(h SolflareHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.solflare = h
}

// SetEthereum injects or replaces the EIP-1193 handle
func (r *Registry) SetEthereum(h EthereumHandle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ethereum = h
}

// Remove drops the handle of a wallet type, as when an extension is disabled
func (r *Registry) Remove(kind core.WalletType) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch kind {
	case core.WalletPhantom:
		r.phantom = nil
	case core.WalletSolflare:
		r.solflare = nil
	case core.WalletMetaMask:
		r.ethereum = nil
	}
}

// Provider returns the adapter for kind
func (r *Registry) Provider(kind core.WalletType) (ports.Provider, bool) {
	p, ok := r.adapters[kind]
	return p, ok
}

// Kinds lists every wallet type the registry has an adapter for
func (r *Registry) Kinds() []core.WalletType {
	return core.WalletTypes
}

func (r *Registry) phantomHandle() PhantomHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phantom
}

func (r *Registry) solflareHandle() SolflareHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.solflare
}

func (r *Registry) ethereumHandle() EthereumHandle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.ethereum
}
