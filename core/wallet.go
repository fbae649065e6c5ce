package core

import (
	"fmt"
	"strings"
)

// WalletType identifies a browser wallet provider family
type WalletType string

const (
	WalletPhantom  WalletType = "phantom"
	WalletMetaMask WalletType = "metamask"
	WalletSolflare WalletType = "solflare"
)

// WalletTypes lists the supported wallets in selection-screen order
var WalletTypes = []WalletType{WalletPhantom, WalletSolflare, WalletMetaMask}

// ParseWalletType accepts the data attribute value of a wallet control
func ParseWalletType(raw string) (WalletType, error) {
	switch t := WalletType(strings.ToLower(strings.TrimSpace(raw))); t {
	case WalletPhantom, WalletMetaMask, WalletSolflare:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownWallet, raw)
	}
}

// Valid reports whether t is one of the supported wallets
func (t WalletType) Valid() bool {
	_, err := ParseWalletType(string(t))
	return err == nil
}

// DisplayName is the label rendered on the wallet control
func (t WalletType) DisplayName() string {
	switch t {
	case WalletPhantom:
		return "Phantom"
	case WalletMetaMask:
		return "MetaMask"
	case WalletSolflare:
		return "Solflare"
	default:
		return string(t)
	}
}

// ConnectionResult is the normalized outcome of a successful connect
type ConnectionResult struct {
	Type      WalletType `json:"type"`
	PublicKey string     `json:"publicKey"`
	Address   string     `json:"address"`
}
