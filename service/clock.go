package service

import (
	"time"

	"github.com/layer-3/walletgate/ports"
)

type systemClock struct{}

// SystemClock schedules callbacks with time.AfterFunc
func SystemClock() ports.Clock {
	return systemClock{}
}

func (systemClock) Now() time.Time {
	return time.Now()
}

func (systemClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}
