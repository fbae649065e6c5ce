package service

import (
	"time"

	"github.com/layer-3/walletgate/core"
)

// Config parameterizes the gate. Zero durations take the DefaultConfig values.
type Config struct {
	// LoadingDuration is how long the progress bar takes to reach 100%
	LoadingDuration time.Duration

	// EnableSilentResume lets a stored session skip the loading and selection screens
	EnableSilentResume bool

	ProgressInterval time.Duration
	SettleDelay      time.Duration
	SuccessDelay     time.Duration
	ErrorDelay       time.Duration
	SessionTTL       time.Duration

	DetectInterval    time.Duration
	DetectMaxAttempts int

	// ExclusiveConnect rejects a connect while another wallet's attempt is in flight
	ExclusiveConnect bool
}

// DefaultConfig is the short-loading variant with silent resume
func DefaultConfig() Config {
	return Config{
		LoadingDuration:    2 * time.Second,
		EnableSilentResume: true,
		ProgressInterval:   50 * time.Millisecond,
		SettleDelay:        500 * time.Millisecond,
		SuccessDelay:       1500 * time.Millisecond,
		ErrorDelay:         3 * time.Second,
		SessionTTL:         core.DefaultSessionTTL,
		DetectInterval:     500 * time.Millisecond,
		DetectMaxAttempts:  20,
		ExclusiveConnect:   true,
	}
}

// ExtendedConfig is the long-loading variant that always shows the selection screen
func ExtendedConfig() Config {
	cfg := DefaultConfig()
	cfg.LoadingDuration = 10 * time.Second
	cfg.EnableSilentResume = false
	return cfg
}

func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.LoadingDuration <= 0 {
		c.LoadingDuration = def.LoadingDuration
	}
	if c.ProgressInterval <= 0 {
		c.ProgressInterval = def.ProgressInterval
	}
	if c.SettleDelay <= 0 {
		c.SettleDelay = def.SettleDelay
	}
	if c.SuccessDelay <= 0 {
		c.SuccessDelay = def.SuccessDelay
	}
	if c.ErrorDelay <= 0 {
		c.ErrorDelay = def.ErrorDelay
	}
	if c.SessionTTL <= 0 {
		c.SessionTTL = def.SessionTTL
	}
	if c.DetectInterval <= 0 {
		c.DetectInterval = def.DetectInterval
	}
	if c.DetectMaxAttempts <= 0 {
		c.DetectMaxAttempts = def.DetectMaxAttempts
	}
	return c
}
