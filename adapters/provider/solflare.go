package provider

import (
	"context"

	"github.com/layer-3/walletgate/core"
)

// Solflare adapts a Solflare handle
type Solflare struct {
	handles *Registry
}

func (s *Solflare) Kind() core.WalletType {
	return core.WalletSolflare
}

func (s *Solflare) handle() (SolflareHandle, bool) {
	h := s.handles.solflareHandle()
	if h == nil || !h.IsSolflare() {
		return nil, false
	}
	return h, true
}

func (s *Solflare) Available() bool {
	_, ok := s.handle()
	return ok
}

// ConnectSilently only reads state: Solflare has no trusted-connect call
func (s *Solflare) ConnectSilently(ctx context.Context) (core.ConnectionResult, error) {
	h, ok := s.handle()
	if !ok {
		return core.ConnectionResult{}, notVerified(core.ErrProviderNotFound)
	}
	if !h.IsConnected() {
		return core.ConnectionResult{}, notVerified(&core.ConnectionFailedError{Message: "not connected"})
	}

	res, ok := s.normalize(h, "")
	if !ok {
		return core.ConnectionResult{}, notVerified(&core.ConnectionFailedError{Message: "no public key"})
	}
	return res, nil
}

func (s *Solflare) ConnectInteractively(ctx context.Context) (core.ConnectionResult, error) {
	h, ok := s.handle()
	if !ok {
		return core.ConnectionResult{}, core.ErrProviderNotFound
	}

	key, err := h.Connect(ctx)
	if err != nil {
		return core.ConnectionResult{}, classify(err)
	}

	res, ok := s.normalize(h, key)
	if !ok {
		return core.ConnectionResult{}, &core.ConnectionFailedError{Message: "Solflare returned no public key"}
	}
	return res, nil
}

// normalize tries the connect response, then the handle property, then the nested wallet
func (s *Solflare) normalize(h SolflareHandle, fromResponse string) (core.ConnectionResult, bool) {
	key := firstNonEmpty(
		func() string { return fromResponse },
		h.PublicKey,
		func() string {
			if w := h.Wallet(); w != nil {
				return w.PublicKey()
			}
			return ""
		},
	)
	if key == "" {
		return core.ConnectionResult{}, false
	}
	return core.ConnectionResult{Type: core.WalletSolflare, PublicKey: key, Address: key}, true
}
