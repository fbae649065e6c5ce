package ports

import "github.com/layer-3/walletgate/core"

// Surface renders the gate: the screen regions, the progress bar and the wallet controls
type Surface interface {
	ShowScreen(screen core.Screen)
	SetProgress(percent int)
	SetControl(wallet core.WalletType, state core.ControlState)
	SetDetected(wallet core.WalletType, detected bool)
}
