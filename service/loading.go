package service

import (
	"time"

	"github.com/layer-3/walletgate/core"
)

func (g *Gate) startLoadingLocked() {
	g.screen = core.ScreenLoading
	g.progress = 0
	g.loadStart = g.clock.Now()
	g.surface.ShowScreen(core.ScreenLoading)
	g.surface.SetProgress(0)
	g.afterLocked(g.cfg.ProgressInterval, g.tickLocked)
}

// tickLocked samples the progress bar until it reaches 100
func (g *Gate) tickLocked() func() {
	pct := progressAt(g.clock.Now().Sub(g.loadStart), g.cfg.LoadingDuration)
	if pct > g.progress {
		g.progress = pct
		g.surface.SetProgress(pct)
	}

	if g.progress >= 100 {
		g.afterLocked(g.cfg.SettleDelay, g.openSelectionLocked)
		return nil
	}
	g.afterLocked(g.cfg.ProgressInterval, g.tickLocked)
	return nil
}

func (g *Gate) openSelectionLocked() func() {
	g.screen = core.ScreenAuthenticating
	g.surface.ShowScreen(core.ScreenAuthenticating)
	for _, wallet := range g.providers.Kinds() {
		g.setControlLocked(wallet, core.IdleControl())
		g.surface.SetDetected(wallet, g.detected[wallet])
	}
	return nil
}

// progressAt maps elapsed time onto 0..100
func progressAt(elapsed, total time.Duration) int {
	if total <= 0 || elapsed >= total {
		return 100
	}
	if elapsed <= 0 {
		return 0
	}
	return int(elapsed * 100 / total)
}
