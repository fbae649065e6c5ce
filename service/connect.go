package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/layer-3/walletgate/core"
)

// Select runs an interactive connect for wallet. It blocks until the provider answers.
// On success the content is revealed after Config.SuccessDelay; on failure the control
// shows the error for Config.ErrorDelay and the selection screen stays open.
func (g *Gate) Select(ctx context.Context, wallet core.WalletType) error {
	provider, ok := g.providers.Provider(wallet)
	if !ok {
		return fmt.Errorf("%w: %q", core.ErrUnknownWallet, wallet)
	}

	g.mu.Lock()
	if err := g.canSelectLocked(wallet); err != nil {
		g.mu.Unlock()
		return err
	}
	cycle := g.cycle
	g.setControlLocked(wallet, core.BusyControl())
	g.mu.Unlock()

	res, err := provider.ConnectInteractively(ctx)

	g.mu.Lock()
	if g.cycle != cycle {
		g.mu.Unlock()
		return core.ErrCycleSuperseded
	}

	if err != nil {
		g.setControlLocked(wallet, core.ErrorControl(err))
		g.afterLocked(g.cfg.ErrorDelay, func() func() {
			if g.screen == core.ScreenAuthenticating && !g.claimed {
				g.setControlLocked(wallet, core.IdleControl())
			}
			return nil
		})
		g.mu.Unlock()

		g.logger.Info("wallet connect failed", zap.String("wallet", string(wallet)), zap.Error(err))
		return err
	}

	if g.claimed {
		// another wallet won while this prompt was open
		g.setControlLocked(wallet, core.IdleControl())
		g.mu.Unlock()
		return core.ErrAlreadyConnected
	}
	g.claimed = true
	g.setControlLocked(wallet, core.SuccessControl())
	g.mu.Unlock()

	g.persist(ctx, cycle, core.NewSessionRecord(res, g.clock.Now()))
	g.logger.Info("wallet connected", zap.String("wallet", string(wallet)), zap.String("address", res.Address))

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cycle != cycle {
		return core.ErrCycleSuperseded
	}
	g.afterLocked(g.cfg.SuccessDelay, func() func() {
		g.revealLocked(res)
		return func() { g.announce(context.Background(), res) }
	})
	return nil
}

func (g *Gate) canSelectLocked(wallet core.WalletType) error {
	if g.screen != core.ScreenAuthenticating {
		return core.ErrNotSelecting
	}
	if g.claimed {
		return core.ErrAlreadyConnected
	}
	if g.controls[wallet].Disabled {
		return core.ErrControlDisabled
	}
	if g.cfg.ExclusiveConnect {
		for other, state := range g.controls {
			if other != wallet && state.Status == core.ControlBusy {
				return core.ErrConnectInProgress
			}
		}
	}
	return nil
}
