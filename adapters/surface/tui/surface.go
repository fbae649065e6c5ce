// Package tui renders the gate in a terminal with bubbletea.
package tui

import (
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/layer-3/walletgate/core"
)

type (
	screenMsg   struct{ screen core.Screen }
	progressMsg struct{ percent int }
	controlMsg  struct {
		wallet core.WalletType
		state  core.ControlState
	}
	detectedMsg struct {
		wallet   core.WalletType
		detected bool
	}
)

// Sender is the part of tea.Program the surface needs
type Sender interface {
	Send(msg tea.Msg)
}

// Surface queues gate updates and forwards them to a running program in order.
// Its methods never block, so the gate can call them with its lock held.
type Surface struct {
	mu    sync.Mutex
	queue []tea.Msg
	wake  chan struct{}
}

func NewSurface() *Surface {
	return &Surface{wake: make(chan struct{}, 1)}
}

func (s *Surface) ShowScreen(screen core.Screen) { s.push(screenMsg{screen: screen}) }

func (s *Surface) SetProgress(percent int) { s.push(progressMsg{percent: percent}) }

func (s *Surface) SetControl(wallet core.WalletType, state core.ControlState) {
	s.push(controlMsg{wallet: wallet, state: state})
}

func (s *Surface) SetDetected(wallet core.WalletType, detected bool) {
	s.push(detectedMsg{wallet: wallet, detected: detected})
}

func (s *Surface) push(msg tea.Msg) {
	s.mu.Lock()
	s.queue = append(s.queue, msg)
	s.mu.Unlock()

	select {
	case s.wake <- struct{}{}:
	default:
	}
}

// Pump forwards queued updates to sender until ctx is done
func (s *Surface) Pump(ctx context.Context, sender Sender) {
	for {
		s.mu.Lock()
		batch := s.queue
		s.queue = nil
		s.mu.Unlock()

		for _, msg := range batch {
			sender.Send(msg)
		}

		select {
		case <-ctx.Done():
			return
		case <-s.wake:
		}
	}
}
