package main

import (
	"context"
	"sync"
	"time"

	"github.com/layer-3/walletgate/adapters/provider"
)

const demoPromptDelay = 800 * time.Millisecond

// demoPhantom approves every prompt and trusts the page afterwards
type demoPhantom struct {
	key string

	mu      sync.Mutex
	trusted bool
}

func (p *demoPhantom) IsPhantom() bool { return true }

func (p *demoPhantom) Connect(ctx context.Context, opts provider.ConnectOptions) (provider.PhantomConnectResponse, error) {
	p.mu.Lock()
	trusted := p.trusted
	p.mu.Unlock()

	if opts.OnlyIfTrusted {
		if !trusted {
			return provider.PhantomConnectResponse{}, &provider.ProviderError{Code: provider.CodeUserRejected, Message: "not trusted"}
		}
		return provider.PhantomConnectResponse{PublicKey: p.key}, nil
	}

	if err := prompt(ctx); err != nil {
		return provider.PhantomConnectResponse{}, err
	}

	p.mu.Lock()
	p.trusted = true
	p.mu.Unlock()
	return provider.PhantomConnectResponse{PublicKey: p.key}, nil
}

func (p *demoPhantom) PublicKey() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.trusted {
		return ""
	}
	return p.key
}

// demoSolflare rejects every other prompt
type demoSolflare struct {
	key string

	mu        sync.Mutex
	attempts  int
	connected bool
}

func (s *demoSolflare) IsSolflare() bool { return true }

func (s *demoSolflare) IsConnected() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.connected
}

func (s *demoSolflare) PublicKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return ""
	}
	return s.key
}

func (s *demoSolflare) Connect(ctx context.Context) (string, error) {
	if err := prompt(ctx); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.attempts++
	if s.attempts%2 == 1 {
		return "", &provider.ProviderError{Code: provider.CodeUserRejected, Message: "User rejected the request."}
	}
	s.connected = true
	// resolves without the key, like older Solflare builds
	return "", nil
}

func (s *demoSolflare) Wallet() provider.SolflareWallet { return nil }

func prompt(ctx context.Context) error {
	select {
	case <-time.After(demoPromptDelay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
