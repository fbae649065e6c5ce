// Package surface holds Surface implementations for hosts without a page to render.
package surface

import (
	"sync"

	"go.uber.org/zap"

	"github.com/layer-3/walletgate/core"
)

// Log reports gate transitions to a zap logger. Progress is logged in quarter steps.
type Log struct {
	logger *zap.Logger

	mu      sync.Mutex
	quarter int
}

// NewLog creates a Log surface
func NewLog(logger *zap.Logger) *Log {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Log{logger: logger.Named("surface")}
}

func (l *Log) ShowScreen(screen core.Screen) {
	l.logger.Info("screen changed", zap.String("screen", string(screen)))
}

func (l *Log) SetProgress(percent int) {
	l.mu.Lock()
	defer l.mu.Unlock()

	q := percent / 25
	if percent == 0 {
		l.quarter = 0
	}
	if q <= l.quarter && percent != 0 {
		return
	}
	l.quarter = q
	l.logger.Debug("loading", zap.Int("percent", percent))
}

func (l *Log) SetControl(wallet core.WalletType, state core.ControlState) {
	l.logger.Debug("control changed",
		zap.String("wallet", string(wallet)),
		zap.String("status", string(state.Status)),
		zap.String("label", state.Label),
		zap.Bool("disabled", state.Disabled),
	)
}

func (l *Log) SetDetected(wallet core.WalletType, detected bool) {
	l.logger.Info("wallet detection", zap.String("wallet", string(wallet)), zap.Bool("detected", detected))
}
