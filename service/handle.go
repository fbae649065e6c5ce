package service

import (
	"context"

	"github.com/layer-3/walletgate/core"
)

// Handle is what a hosting application gets to drive and observe the gate
type Handle interface {
	Authenticated() bool
	Connection() (core.ConnectionResult, bool)
	Status() Status
	Detect()
	ForceReauth(ctx context.Context)
	Select(ctx context.Context, wallet core.WalletType) error
}

// Status is a point-in-time view of the gate
type Status struct {
	Authenticated bool                                  `json:"authenticated"`
	Screen        core.Screen                           `json:"screen"`
	Progress      int                                   `json:"progress"`
	Connection    *core.ConnectionResult                `json:"connection,omitempty"`
	Controls      map[core.WalletType]core.ControlState `json:"controls"`
	Detected      map[core.WalletType]bool              `json:"detected"`
}

var _ Handle = (*Gate)(nil)
