package service

import (
	"go.uber.org/zap"

	"github.com/layer-3/walletgate/core"
)

// Detect polls for injected providers. Polling stops once every provider is
// present or after Config.DetectMaxAttempts passes. A new call replaces the running poll.
func (g *Gate) Detect() {
	g.mu.Lock()
	g.stopDetectLocked()
	gen := g.detectGen
	g.mu.Unlock()

	g.detectPass(gen, 1)
}

func (g *Gate) detectPass(gen uint64, attempt int) {
	kinds := g.providers.Kinds()
	present := make([]bool, len(kinds))
	for i, kind := range kinds {
		if p, ok := g.providers.Provider(kind); ok {
			present[i] = p.Available()
		}
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.detectGen {
		return
	}
	g.detectTimer = nil

	var missing []string
	for i, kind := range kinds {
		if prev, seen := g.detected[kind]; !seen || prev != present[i] {
			g.detected[kind] = present[i]
			g.surface.SetDetected(kind, present[i])
		}
		if !present[i] {
			missing = append(missing, string(kind))
		}
	}

	if len(missing) == 0 {
		return
	}
	if attempt >= g.cfg.DetectMaxAttempts {
		g.logger.Info("wallet providers not available", zap.Strings("wallets", missing), zap.Int("attempts", attempt))
		return
	}

	g.detectTimer = g.clock.AfterFunc(g.cfg.DetectInterval, func() {
		g.detectPass(gen, attempt+1)
	})
}

// stopDetectLocked cancels the running poll and invalidates its pending pass
func (g *Gate) stopDetectLocked() {
	if g.detectTimer != nil {
		g.detectTimer.Stop()
		g.detectTimer = nil
	}
	g.detectGen++
}

// Detected reports whether wallet's provider was found by the last detection pass
func (g *Gate) Detected(wallet core.WalletType) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.detected[wallet]
}
