package provider

import (
	"context"

	"github.com/layer-3/walletgate/core"
)

// Phantom adapts a Phantom handle
type Phantom struct {
	handles *Registry
}

func (p *Phantom) Kind() core.WalletType {
	return core.WalletPhantom
}

func (p *Phantom) handle() (PhantomHandle, bool) {
	h := p.handles.phantomHandle()
	if h == nil || !h.IsPhantom() {
		return nil, false
	}
	return h, true
}

func (p *Phantom) Available() bool {
	_, ok := p.handle()
	return ok
}

// ConnectSilently asks Phantom to connect only if the site is already trusted
func (p *Phantom) ConnectSilently(ctx context.Context) (core.ConnectionResult, error) {
	h, ok := p.handle()
	if !ok {
		return core.ConnectionResult{}, notVerified(core.ErrProviderNotFound)
	}

	resp, err := h.Connect(ctx, ConnectOptions{OnlyIfTrusted: true})
	if err != nil {
		return core.ConnectionResult{}, notVerified(err)
	}

	res, ok := p.normalize(h, resp)
	if !ok {
		return core.ConnectionResult{}, notVerified(&core.ConnectionFailedError{Message: "no public key"})
	}
	return res, nil
}

func (p *Phantom) ConnectInteractively(ctx context.Context) (core.ConnectionResult, error) {
	h, ok := p.handle()
	if !ok {
		return core.ConnectionResult{}, core.ErrProviderNotFound
	}

	resp, err := h.Connect(ctx, ConnectOptions{})
	if err != nil {
		return core.ConnectionResult{}, classify(err)
	}

	res, ok := p.normalize(h, resp)
	if !ok {
		return core.ConnectionResult{}, &core.ConnectionFailedError{Message: "Phantom returned no public key"}
	}
	return res, nil
}

func (p *Phantom) normalize(h PhantomHandle, resp PhantomConnectResponse) (core.ConnectionResult, bool) {
	key := firstNonEmpty(
		func() string { return resp.PublicKey },
		h.PublicKey,
	)
	if key == "" {
		return core.ConnectionResult{}, false
	}
	return core.ConnectionResult{Type: core.WalletPhantom, PublicKey: key, Address: key}, true
}
