package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/ports"
)

// Gate keeps content behind a wallet connection.
//
// It moves through Loading, Authenticating and Authenticated. A stored session
// can skip straight to Authenticated. Every reset starts a new cycle; scheduled
// callbacks of an older cycle do nothing when they fire.
//
// Surface methods are called with the gate lock held and must not call back
// into the gate.
type Gate struct {
	cfg       Config
	providers ports.ProviderSet
	store     ports.SessionStore
	events    ports.EventPublisher
	surface   ports.Surface
	clock     ports.Clock
	logger    *zap.Logger

	// storeMu orders session writes against clears; taken before mu
	storeMu sync.Mutex

	mu        sync.Mutex
	cycle     uint64
	screen    core.Screen
	progress  int
	loadStart time.Time
	conn      *core.ConnectionResult
	claimed   bool
	controls  map[core.WalletType]core.ControlState
	timers    map[uint64]ports.Timer
	timerSeq  uint64

	detectGen   uint64
	detectTimer ports.Timer
	detected    map[core.WalletType]bool
}

// Option customizes a Gate
type Option func(*Gate)

// WithClock replaces the system clock
func WithClock(clock ports.Clock) Option {
	return func(g *Gate) { g.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// NewGate creates a gate. events may be nil when nobody listens.
func NewGate(
	cfg Config,
	providers ports.ProviderSet,
	store ports.SessionStore,
	events ports.EventPublisher,
	surface ports.Surface,
	opts ...Option,
) *Gate {
	g := &Gate{
		cfg:       cfg.withDefaults(),
		providers: providers,
		store:     store,
		events:    events,
		surface:   surface,
		clock:     SystemClock(),
		logger:    zap.NewNop(),
		screen:    core.ScreenInitializing,
		controls:  make(map[core.WalletType]core.ControlState),
		timers:    make(map[uint64]ports.Timer),
		detected:  make(map[core.WalletType]bool),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = g.logger.Named("gate")
	return g
}

// Start runs the initial transition: resume a stored session or show the loading screen.
// Provider detection starts alongside.
func (g *Gate) Start(ctx context.Context) {
	g.mu.Lock()
	cycle := g.resetLocked()
	g.mu.Unlock()

	g.Detect()

	if res, ok := g.resume(ctx, cycle); ok {
		g.mu.Lock()
		if g.cycle != cycle {
			g.mu.Unlock()
			return
		}
		g.revealLocked(res)
		g.mu.Unlock()

		g.logger.Info("session resumed", zap.String("wallet", string(res.Type)), zap.String("address", res.Address))
		g.announce(ctx, res)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if g.cycle == cycle {
		g.startLoadingLocked()
	}
}

// resume returns the verified connection of a stored session.
// Unusable records are discarded; failures are never surfaced.
func (g *Gate) resume(ctx context.Context, cycle uint64) (core.ConnectionResult, bool) {
	record, err := g.store.Load(ctx)
	switch {
	case errors.Is(err, core.ErrSessionNotFound):
		return core.ConnectionResult{}, false
	case err != nil:
		g.logger.Info("discarding stored session", zap.Error(err))
		g.discard(ctx)
		return core.ConnectionResult{}, false
	}

	if record.Expired(g.clock.Now(), g.cfg.SessionTTL) {
		g.logger.Info("discarding expired session", zap.Time("created_at", record.CreatedAt()))
		g.discard(ctx)
		return core.ConnectionResult{}, false
	}

	if !g.cfg.EnableSilentResume {
		return core.ConnectionResult{}, false
	}

	provider, ok := g.providers.Provider(record.WalletType)
	if !ok {
		g.discard(ctx)
		return core.ConnectionResult{}, false
	}

	res, err := provider.ConnectSilently(ctx)
	if err == nil && res.Address == "" {
		err = core.ErrVerificationFailed
	}
	if err != nil {
		g.logger.Debug("silent verification failed", zap.String("wallet", string(record.WalletType)), zap.Error(err))
		g.discard(ctx)
		return core.ConnectionResult{}, false
	}

	if res.Address != record.Address || res.PublicKey != record.PublicKey {
		record.Address = res.Address
		record.PublicKey = res.PublicKey
		g.persist(ctx, cycle, record)
	}

	return res, true
}

// persist saves record unless cycle was reset. A reset that races the write
// clears the store after it.
func (g *Gate) persist(ctx context.Context, cycle uint64, record core.SessionRecord) {
	g.storeMu.Lock()
	defer g.storeMu.Unlock()

	g.mu.Lock()
	current := g.cycle == cycle
	g.mu.Unlock()
	if !current {
		return
	}
	if err := g.store.Save(ctx, record); err != nil {
		g.logger.Warn("failed to store session", zap.Error(err))
	}
}

func (g *Gate) discard(ctx context.Context) {
	g.storeMu.Lock()
	defer g.storeMu.Unlock()

	if err := g.store.Clear(ctx); err != nil {
		g.logger.Warn("failed to clear stored session", zap.Error(err))
	}
}

// ForceReauth forgets the session and starts over at the loading screen
func (g *Gate) ForceReauth(ctx context.Context) {
	g.mu.Lock()
	var wallet core.WalletType
	if g.conn != nil {
		wallet = g.conn.Type
	}
	cycle := g.resetLocked()
	g.mu.Unlock()

	g.discard(ctx)
	if g.events != nil {
		if err := g.events.PublishDisconnected(ctx, wallet); err != nil {
			g.logger.Warn("failed to publish disconnect", zap.Error(err))
		}
	}
	g.logger.Info("re-authentication forced", zap.String("wallet", string(wallet)))

	g.mu.Lock()
	if g.cycle == cycle {
		g.startLoadingLocked()
	}
	g.mu.Unlock()

	g.Detect()
}

// Stop cancels every pending timer and detection poll
func (g *Gate) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.cycle++
	g.stopTimersLocked()
	g.stopDetectLocked()
}

// Authenticated reports whether the content is revealed
func (g *Gate) Authenticated() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.screen == core.ScreenAuthenticated && g.conn != nil
}

// Connection returns the wallet the content was revealed for
func (g *Gate) Connection() (core.ConnectionResult, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.conn == nil {
		return core.ConnectionResult{}, false
	}
	return *g.conn, true
}

// Status returns a snapshot of the gate
func (g *Gate) Status() Status {
	g.mu.Lock()
	defer g.mu.Unlock()

	st := Status{
		Authenticated: g.screen == core.ScreenAuthenticated && g.conn != nil,
		Screen:        g.screen,
		Progress:      g.progress,
		Controls:      make(map[core.WalletType]core.ControlState, len(g.controls)),
		Detected:      make(map[core.WalletType]bool, len(g.detected)),
	}
	if g.conn != nil {
		conn := *g.conn
		st.Connection = &conn
	}
	for k, v := range g.controls {
		st.Controls[k] = v
	}
	for k, v := range g.detected {
		st.Detected[k] = v
	}
	return st
}

// resetLocked opens a new cycle and drops everything tied to the old one
func (g *Gate) resetLocked() uint64 {
	g.cycle++
	g.stopTimersLocked()
	g.conn = nil
	g.claimed = false
	g.progress = 0
	g.controls = make(map[core.WalletType]core.ControlState)
	return g.cycle
}

func (g *Gate) stopTimersLocked() {
	for id, t := range g.timers {
		t.Stop()
		delete(g.timers, id)
	}
}

// afterLocked schedules step in the current cycle. step runs with the lock
// held and may return a func to run after the lock is released.
func (g *Gate) afterLocked(d time.Duration, step func() func()) {
	g.timerSeq++
	id := g.timerSeq
	cycle := g.cycle

	g.timers[id] = g.clock.AfterFunc(d, func() {
		g.mu.Lock()
		delete(g.timers, id)
		if g.cycle != cycle {
			g.mu.Unlock()
			return
		}
		after := step()
		g.mu.Unlock()

		if after != nil {
			after()
		}
	})
}

func (g *Gate) setControlLocked(wallet core.WalletType, state core.ControlState) {
	g.controls[wallet] = state
	g.surface.SetControl(wallet, state)
}

func (g *Gate) revealLocked(res core.ConnectionResult) {
	g.conn = &res
	g.screen = core.ScreenAuthenticated
	g.surface.ShowScreen(core.ScreenAuthenticated)
}

func (g *Gate) announce(ctx context.Context, res core.ConnectionResult) {
	if g.events == nil {
		return
	}
	if err := g.events.PublishConnected(ctx, res); err != nil {
		g.logger.Warn("failed to publish connect", zap.Error(err))
	}
}
