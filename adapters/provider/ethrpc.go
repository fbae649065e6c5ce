package provider

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/rpc"
)

const codeMethodNotFound = -32601

// RPCEthereum is an EthereumHandle speaking JSON-RPC to a node or a dev wallet
// with unlocked accounts. It lets the gate run outside a browser.
type RPCEthereum struct {
	client *rpc.Client

	mu       sync.RWMutex
	selected string
}

// DialEthereum connects to a JSON-RPC endpoint
func DialEthereum(ctx context.Context, url string) (*RPCEthereum, error) {
	client, err := rpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}
	return NewRPCEthereum(client), nil
}

// NewRPCEthereum wraps an existing rpc client
func NewRPCEthereum(client *rpc.Client) *RPCEthereum {
	return &RPCEthereum{client: client}
}

// IsMetaMask is true: the endpoint answers the same account methods MetaMask does
func (e *RPCEthereum) IsMetaMask() bool {
	return true
}

// Request forwards an EIP-1193 request. Nodes without eth_requestAccounts
// are asked for eth_accounts instead.
func (e *RPCEthereum) Request(ctx context.Context, args RequestArguments) (any, error) {
	var result any
	err := e.client.CallContext(ctx, &result, args.Method, args.Params...)

	var rpcErr rpc.Error
	if err != nil && args.Method == methodRequestAccounts && errors.As(err, &rpcErr) && rpcErr.ErrorCode() == codeMethodNotFound {
		err = e.client.CallContext(ctx, &result, methodAccounts)
	}
	if err != nil {
		return nil, err
	}

	if args.Method == methodAccounts || args.Method == methodRequestAccounts {
		if accounts := toAccounts(result); len(accounts) > 0 {
			e.mu.Lock()
			e.selected = accounts[0]
			e.mu.Unlock()
		}
	}
	return result, nil
}

// SelectedAddress is the first account seen in the last accounts response
func (e *RPCEthereum) SelectedAddress() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

// Close releases the rpc client
func (e *RPCEthereum) Close() {
	e.client.Close()
}
