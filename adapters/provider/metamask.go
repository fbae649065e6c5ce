package provider

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"

	"github.com/layer-3/walletgate/core"
)

const (
	methodAccounts        = "eth_accounts"
	methodRequestAccounts = "eth_requestAccounts"
)

// MetaMask adapts an EIP-1193 handle
type MetaMask struct {
	handles *Registry
}

func (m *MetaMask) Kind() core.WalletType {
	return core.WalletMetaMask
}

func (m *MetaMask) handle() (EthereumHandle, bool) {
	h := m.handles.ethereumHandle()
	if h == nil || !h.IsMetaMask() {
		return nil, false
	}
	return h, true
}

func (m *MetaMask) Available() bool {
	_, ok := m.handle()
	return ok
}

// ConnectSilently reads the already permitted accounts; eth_accounts never prompts
func (m *MetaMask) ConnectSilently(ctx context.Context) (core.ConnectionResult, error) {
	h, ok := m.handle()
	if !ok {
		return core.ConnectionResult{}, notVerified(core.ErrProviderNotFound)
	}

	result, err := h.Request(ctx, RequestArguments{Method: methodAccounts})
	if err != nil {
		return core.ConnectionResult{}, notVerified(err)
	}

	accounts := toAccounts(result)
	if len(accounts) == 0 {
		return core.ConnectionResult{}, notVerified(&core.ConnectionFailedError{Message: "no permitted accounts"})
	}

	res, ok := m.normalize(h, accounts)
	if !ok {
		return core.ConnectionResult{}, notVerified(&core.ConnectionFailedError{Message: "invalid account"})
	}
	return res, nil
}

func (m *MetaMask) ConnectInteractively(ctx context.Context) (core.ConnectionResult, error) {
	h, ok := m.handle()
	if !ok {
		return core.ConnectionResult{}, core.ErrProviderNotFound
	}

	result, err := h.Request(ctx, RequestArguments{Method: methodRequestAccounts})
	if err != nil {
		return core.ConnectionResult{}, classify(err)
	}

	res, ok := m.normalize(h, toAccounts(result))
	if !ok {
		return core.ConnectionResult{}, &core.ConnectionFailedError{Message: "MetaMask returned no account"}
	}
	return res, nil
}

func (m *MetaMask) normalize(h EthereumHandle, accounts []string) (core.ConnectionResult, bool) {
	addr := firstNonEmpty(
		func() string {
			if len(accounts) == 0 {
				return ""
			}
			return checksum(accounts[0])
		},
		func() string { return checksum(h.SelectedAddress()) },
	)
	if addr == "" {
		return core.ConnectionResult{}, false
	}
	return core.ConnectionResult{Type: core.WalletMetaMask, PublicKey: addr, Address: addr}, true
}

// checksum renders a hex address in EIP-55 form, or "" when it is not an address
func checksum(addr string) string {
	addr = strings.TrimSpace(addr)
	if !common.IsHexAddress(addr) {
		return ""
	}
	return common.HexToAddress(addr).Hex()
}

// toAccounts accepts the shapes an eth_accounts result takes after decoding
func toAccounts(result any) []string {
	switch v := result.(type) {
	case []string:
		return v
	case []any:
		accounts := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				accounts = append(accounts, s)
			}
		}
		return accounts
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}
