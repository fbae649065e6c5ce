package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/layer-3/walletgate/adapters/store"
	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/ports"
)

var epoch = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type harness struct {
	gate      *Gate
	cfg       Config
	clock     *fakeClock
	surface   *recorder
	events    *recordedEvents
	store     *store.MemoryStore
	providers fakeProviders
}

func newHarness(t *testing.T, cfg Config) *harness {
	t.Helper()

	h := &harness{
		cfg:     cfg.withDefaults(),
		clock:   newFakeClock(epoch),
		surface: newRecorder(),
		events:  &recordedEvents{},
		store:   store.NewMemoryStore(),
		providers: fakeProviders{
			core.WalletPhantom:  newFakeProvider(core.WalletPhantom, "PhantomKey111"),
			core.WalletSolflare: newFakeProvider(core.WalletSolflare, "SolflareKey222"),
			core.WalletMetaMask: newFakeProvider(core.WalletMetaMask, "0x52908400098527886E0F7030069857D2E4169EE7"),
		},
	}
	h.gate = NewGate(cfg, h.providers, h.store, h.events, h.surface, WithClock(h.clock))
	t.Cleanup(h.gate.Stop)
	return h
}

// loadingSpan is the time from entering Loading to the selection screen
func (h *harness) loadingSpan() time.Duration {
	return h.cfg.LoadingDuration + h.cfg.SettleDelay
}

func (h *harness) toSelection(t *testing.T) {
	t.Helper()
	h.gate.Start(context.Background())
	h.clock.Advance(h.loadingSpan())
	require.Equal(t, core.ScreenAuthenticating, h.gate.Status().Screen)
}

func (h *harness) seed(t *testing.T, wallet core.WalletType, age time.Duration) core.SessionRecord {
	t.Helper()
	p := h.providers[wallet]
	record := core.NewSessionRecord(p.result, h.clock.Now().Add(-age))
	require.NoError(t, h.store.Save(context.Background(), record))
	return record
}

// useStore rebuilds the gate over s; the harness store stays the backing store
func (h *harness) useStore(t *testing.T, s ports.SessionStore) {
	t.Helper()
	h.gate.Stop()
	h.gate = NewGate(h.cfg, h.providers, s, h.events, h.surface, WithClock(h.clock))
	t.Cleanup(h.gate.Stop)
}

func (h *harness) cycle() uint64 {
	h.gate.mu.Lock()
	defer h.gate.mu.Unlock()
	return h.gate.cycle
}

func TestStartWithoutSessionRunsLoading(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.gate.Start(context.Background())

	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	assert.Equal(t, []int{0}, h.surface.Progress())

	h.clock.Advance(h.cfg.LoadingDuration)
	progress := h.surface.Progress()
	assert.Equal(t, 100, progress[len(progress)-1])
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())

	h.clock.Advance(h.cfg.SettleDelay - time.Millisecond)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())
	assert.False(t, h.gate.Authenticated())

	for _, wallet := range core.WalletTypes {
		assert.Equal(t, core.IdleControl(), h.surface.Control(wallet))
		assert.True(t, h.surface.IsDetected(wallet))
	}
}

func TestProgressIsMonotonicAndCompletesBeforeSelection(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.toSelection(t)

	progress := h.surface.Progress()
	require.NotEmpty(t, progress)
	for i := 1; i < len(progress); i++ {
		assert.Greater(t, progress[i], progress[i-1], "progress went backwards at %d", i)
	}

	log := h.surface.Log()
	full, selection := -1, -1
	for i, entry := range log {
		switch entry {
		case "progress:100":
			full = i
		case "screen:" + string(core.ScreenAuthenticating):
			selection = i
		}
	}
	require.NotEqual(t, -1, full)
	require.NotEqual(t, -1, selection)
	assert.Less(t, full, selection)
}

func TestExtendedConfigLoadsLonger(t *testing.T) {
	h := newHarness(t, ExtendedConfig())
	h.gate.Start(context.Background())

	h.clock.Advance(DefaultConfig().LoadingDuration + h.cfg.SettleDelay)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())

	h.clock.Advance(h.loadingSpan())
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())
}

func TestExpiredSessionIsDiscarded(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.seed(t, core.WalletPhantom, 25*time.Hour)

	h.gate.Start(context.Background())

	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	assert.Equal(t, []int{0}, h.surface.Progress())
	assert.Empty(t, h.events.Connected())

	_, err := h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestSessionAtExactTTLIsStillValid(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.seed(t, core.WalletPhantom, core.DefaultSessionTTL)

	h.gate.Start(context.Background())
	assert.True(t, h.gate.Authenticated())
}

func TestSilentResume(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.seed(t, core.WalletPhantom, time.Hour)

	h.gate.Start(context.Background())

	assert.True(t, h.gate.Authenticated())
	assert.Equal(t, []core.Screen{core.ScreenAuthenticated}, h.surface.Screens())
	assert.Empty(t, h.surface.Progress())

	conn, ok := h.gate.Connection()
	require.True(t, ok)
	assert.Equal(t, core.WalletPhantom, conn.Type)
	assert.Equal(t, "PhantomKey111", conn.Address)

	connected := h.events.Connected()
	require.Len(t, connected, 1)
	assert.Equal(t, conn, connected[0])

	h.clock.Advance(time.Minute)
	assert.NotContains(t, h.surface.Screens(), core.ScreenAuthenticating)
}

func TestSilentResumeRewritesChangedAddress(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	original := h.seed(t, core.WalletPhantom, time.Hour)
	h.providers[core.WalletPhantom].silent = core.ConnectionResult{
		Type:      core.WalletPhantom,
		PublicKey: "PhantomKey999",
		Address:   "PhantomKey999",
	}

	h.gate.Start(context.Background())
	require.True(t, h.gate.Authenticated())

	record, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "PhantomKey999", record.Address)
	assert.Equal(t, original.Timestamp, record.Timestamp)
}

func TestSilentResumeFailureFallsBackToLoading(t *testing.T) {
	tcs := []struct {
		name  string
		setup func(p *fakeProvider)
	}{
		{
			name:  "not trusted",
			setup: func(p *fakeProvider) { p.silentErr = fmt.Errorf("%w: not trusted", core.ErrVerificationFailed) },
		},
		{
			name:  "provider gone",
			setup: func(p *fakeProvider) { p.setAvailable(false) },
		},
		{
			name:  "empty address",
			setup: func(p *fakeProvider) { p.silent = core.ConnectionResult{Type: core.WalletPhantom} },
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t, DefaultConfig())
			h.seed(t, core.WalletPhantom, time.Hour)
			tc.setup(h.providers[core.WalletPhantom])

			h.gate.Start(context.Background())

			assert.Equal(t, core.ScreenLoading, h.surface.Screen())
			assert.False(t, h.gate.Authenticated())
			assert.Empty(t, h.events.Connected())

			_, err := h.store.Load(context.Background())
			assert.ErrorIs(t, err, core.ErrSessionNotFound)
		})
	}
}

func TestSilentResumeDisabledKeepsRecord(t *testing.T) {
	h := newHarness(t, ExtendedConfig())
	seeded := h.seed(t, core.WalletSolflare, time.Hour)

	h.gate.Start(context.Background())
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())

	h.clock.Advance(h.loadingSpan())
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())

	record, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, seeded, record)
}

func TestCorruptSessionFallsBackToLoading(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	require.NoError(t, h.store.SaveRaw(context.Background(), []byte("{not json")))

	h.gate.Start(context.Background())

	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	_, err := h.store.LoadRaw(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestSelectSuccessRevealsAfterDelay(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.toSelection(t)
	connectedAt := h.clock.Now()

	require.NoError(t, h.gate.Select(context.Background(), core.WalletPhantom))
	assert.Equal(t, core.SuccessControl(), h.surface.Control(core.WalletPhantom))

	record, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.WalletPhantom, record.WalletType)
	assert.Equal(t, "PhantomKey111", record.PublicKey)
	assert.Equal(t, connectedAt.UnixMilli(), record.Timestamp)

	h.clock.Advance(h.cfg.SuccessDelay - time.Millisecond)
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())
	assert.Empty(t, h.events.Connected())

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, core.ScreenAuthenticated, h.surface.Screen())
	assert.True(t, h.gate.Authenticated())

	connected := h.events.Connected()
	require.Len(t, connected, 1)
	assert.Equal(t, core.WalletPhantom, connected[0].Type)
}

func TestSelectUserRejection(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.providers[core.WalletPhantom].err = fmt.Errorf("%w: user closed the prompt", core.ErrUserRejected)
	h.toSelection(t)

	err := h.gate.Select(context.Background(), core.WalletPhantom)
	require.ErrorIs(t, err, core.ErrUserRejected)

	ctrl := h.surface.Control(core.WalletPhantom)
	assert.Equal(t, core.ControlError, ctrl.Status)
	assert.Equal(t, "Rejected", ctrl.Label)
	assert.True(t, ctrl.Disabled)

	err = h.gate.Select(context.Background(), core.WalletPhantom)
	assert.ErrorIs(t, err, core.ErrControlDisabled)

	h.clock.Advance(h.cfg.ErrorDelay - time.Millisecond)
	assert.Equal(t, core.ControlError, h.surface.Control(core.WalletPhantom).Status)

	h.clock.Advance(time.Millisecond)
	assert.Equal(t, core.IdleControl(), h.surface.Control(core.WalletPhantom))
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())

	_, err = h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Empty(t, h.events.Connected())
}

func TestSelectErrorLabels(t *testing.T) {
	tcs := []struct {
		err   error
		label string
	}{
		{core.ErrProviderNotFound, "Not installed"},
		{core.ErrUserRejected, "Rejected"},
		{core.ErrRequestAlreadyPending, "Check wallet"},
		{&core.ConnectionFailedError{Message: "boom"}, "Failed"},
	}

	for _, tc := range tcs {
		t.Run(tc.label, func(t *testing.T) {
			h := newHarness(t, DefaultConfig())
			h.providers[core.WalletSolflare].err = tc.err
			h.toSelection(t)

			err := h.gate.Select(context.Background(), core.WalletSolflare)
			require.Error(t, err)
			assert.Equal(t, tc.label, h.surface.Control(core.WalletSolflare).Label)
		})
	}
}

func TestSelectMissingProvider(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.providers[core.WalletMetaMask].setAvailable(false)
	h.toSelection(t)

	assert.False(t, h.surface.IsDetected(core.WalletMetaMask))

	err := h.gate.Select(context.Background(), core.WalletMetaMask)
	require.ErrorIs(t, err, core.ErrProviderNotFound)
	assert.Equal(t, "Not installed", h.surface.Control(core.WalletMetaMask).Label)

	_, err = h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
}

func TestSelectPreconditions(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.gate.Start(context.Background())

	err := h.gate.Select(context.Background(), core.WalletPhantom)
	assert.ErrorIs(t, err, core.ErrNotSelecting)

	err = h.gate.Select(context.Background(), core.WalletType("trust"))
	assert.ErrorIs(t, err, core.ErrUnknownWallet)

	h.clock.Advance(h.loadingSpan())
	require.NoError(t, h.gate.Select(context.Background(), core.WalletPhantom))

	err = h.gate.Select(context.Background(), core.WalletSolflare)
	assert.ErrorIs(t, err, core.ErrAlreadyConnected)
}

func TestForceReauth(t *testing.T) {
	for _, wallet := range core.WalletTypes {
		t.Run(string(wallet), func(t *testing.T) {
			h := newHarness(t, DefaultConfig())
			h.toSelection(t)
			require.NoError(t, h.gate.Select(context.Background(), wallet))
			h.clock.Advance(h.cfg.SuccessDelay)
			require.True(t, h.gate.Authenticated())

			h.gate.ForceReauth(context.Background())

			assert.False(t, h.gate.Authenticated())
			_, ok := h.gate.Connection()
			assert.False(t, ok)
			assert.Equal(t, core.ScreenLoading, h.surface.Screen())
			progress := h.surface.Progress()
			assert.Equal(t, 0, progress[len(progress)-1])
			assert.Equal(t, []core.WalletType{wallet}, h.events.Disconnected())

			_, err := h.store.Load(context.Background())
			assert.ErrorIs(t, err, core.ErrSessionNotFound)

			h.clock.Advance(h.loadingSpan())
			assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())
			assert.Equal(t, core.IdleControl(), h.surface.Control(wallet))
		})
	}
}

func TestForceReauthIsIdempotent(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.seed(t, core.WalletPhantom, time.Hour)
	h.gate.Start(context.Background())
	require.True(t, h.gate.Authenticated())

	h.gate.ForceReauth(context.Background())
	h.gate.ForceReauth(context.Background())

	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	assert.False(t, h.gate.Authenticated())
	_, err := h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)

	h.clock.Advance(h.loadingSpan())
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())
}

func TestForceReauthSuppressesPendingReveal(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.toSelection(t)
	require.NoError(t, h.gate.Select(context.Background(), core.WalletSolflare))

	h.clock.Advance(h.cfg.SuccessDelay / 2)
	h.gate.ForceReauth(context.Background())

	h.clock.Advance(h.cfg.SuccessDelay)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	assert.Empty(t, h.events.Connected())

	h.clock.Advance(h.loadingSpan())
	assert.Equal(t, core.ScreenAuthenticating, h.surface.Screen())
	assert.NotContains(t, h.surface.Screens(), core.ScreenAuthenticated)
}

func TestForceReauthSupersedesInflightConnect(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.toSelection(t)

	entered, release := h.providers[core.WalletPhantom].block()
	done := make(chan error, 1)
	go func() { done <- h.gate.Select(context.Background(), core.WalletPhantom) }()
	<-entered

	h.gate.ForceReauth(context.Background())
	release()

	assert.ErrorIs(t, <-done, core.ErrCycleSuperseded)
	_, err := h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
}

func TestForceReauthDuringSessionWriteLeavesNoRecord(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	slow := newSlowSaveStore(h.store)
	h.useStore(t, slow)
	h.toSelection(t)

	selected := make(chan error, 1)
	go func() { selected <- h.gate.Select(context.Background(), core.WalletPhantom) }()
	<-slow.entered

	before := h.cycle()
	reauthed := make(chan struct{})
	go func() {
		h.gate.ForceReauth(context.Background())
		close(reauthed)
	}()
	require.Eventually(t, func() bool { return h.cycle() > before }, time.Second, time.Millisecond)
	close(slow.release)

	assert.ErrorIs(t, <-selected, core.ErrCycleSuperseded)
	<-reauthed

	_, err := h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	assert.False(t, h.gate.Authenticated())
	assert.Empty(t, h.events.Connected())
}

func TestForceReauthDuringResumeRewriteLeavesNoRecord(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.seed(t, core.WalletPhantom, time.Hour)
	h.providers[core.WalletPhantom].silent = core.ConnectionResult{
		Type:      core.WalletPhantom,
		PublicKey: "PhantomKey999",
		Address:   "PhantomKey999",
	}
	slow := newSlowSaveStore(h.store)
	h.useStore(t, slow)

	started := make(chan struct{})
	go func() {
		h.gate.Start(context.Background())
		close(started)
	}()
	<-slow.entered

	before := h.cycle()
	reauthed := make(chan struct{})
	go func() {
		h.gate.ForceReauth(context.Background())
		close(reauthed)
	}()
	require.Eventually(t, func() bool { return h.cycle() > before }, time.Second, time.Millisecond)
	close(slow.release)
	<-started
	<-reauthed

	_, err := h.store.Load(context.Background())
	assert.ErrorIs(t, err, core.ErrSessionNotFound)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
	assert.False(t, h.gate.Authenticated())
}

func TestExclusiveConnect(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.toSelection(t)

	entered, release := h.providers[core.WalletPhantom].block()
	done := make(chan error, 1)
	go func() { done <- h.gate.Select(context.Background(), core.WalletPhantom) }()
	<-entered

	assert.Equal(t, core.BusyControl(), h.surface.Control(core.WalletPhantom))

	err := h.gate.Select(context.Background(), core.WalletSolflare)
	assert.ErrorIs(t, err, core.ErrConnectInProgress)

	err = h.gate.Select(context.Background(), core.WalletPhantom)
	assert.ErrorIs(t, err, core.ErrControlDisabled)

	release()
	require.NoError(t, <-done)

	err = h.gate.Select(context.Background(), core.WalletSolflare)
	assert.ErrorIs(t, err, core.ErrAlreadyConnected)
	assert.Equal(t, 1, h.providers[core.WalletPhantom].calls)
	assert.Equal(t, 0, h.providers[core.WalletSolflare].calls)
}

func TestConcurrentConnectFirstSuccessWins(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ExclusiveConnect = false
	h := newHarness(t, cfg)
	h.toSelection(t)

	phantomEntered, releasePhantom := h.providers[core.WalletPhantom].block()
	solflareEntered, releaseSolflare := h.providers[core.WalletSolflare].block()

	phantomDone := make(chan error, 1)
	solflareDone := make(chan error, 1)
	go func() { phantomDone <- h.gate.Select(context.Background(), core.WalletPhantom) }()
	<-phantomEntered
	go func() { solflareDone <- h.gate.Select(context.Background(), core.WalletSolflare) }()
	<-solflareEntered

	releaseSolflare()
	require.NoError(t, <-solflareDone)

	releasePhantom()
	assert.ErrorIs(t, <-phantomDone, core.ErrAlreadyConnected)
	assert.Equal(t, core.IdleControl(), h.surface.Control(core.WalletPhantom))

	h.clock.Advance(h.cfg.SuccessDelay)
	conn, ok := h.gate.Connection()
	require.True(t, ok)
	assert.Equal(t, core.WalletSolflare, conn.Type)
	assert.Len(t, h.events.Connected(), 1)

	record, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, core.WalletSolflare, record.WalletType)
}

func TestDetectionIsBounded(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DetectMaxAttempts = 3
	h := newHarness(t, cfg)
	h.providers[core.WalletMetaMask].setAvailable(false)

	h.toSelection(t)

	assert.False(t, h.gate.Detected(core.WalletMetaMask))
	assert.True(t, h.gate.Detected(core.WalletPhantom))
	assert.Zero(t, h.clock.Pending())

	// a late injection is only picked up by an explicit re-detect
	h.providers[core.WalletMetaMask].setAvailable(true)
	h.clock.Advance(time.Minute)
	assert.False(t, h.gate.Detected(core.WalletMetaMask))

	h.gate.Detect()
	assert.True(t, h.gate.Detected(core.WalletMetaMask))
	assert.True(t, h.surface.IsDetected(core.WalletMetaMask))
}

func TestDetectionPicksUpLateInjection(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.providers[core.WalletSolflare].setAvailable(false)

	h.gate.Start(context.Background())
	assert.False(t, h.surface.IsDetected(core.WalletSolflare))

	h.clock.Advance(h.cfg.DetectInterval)
	assert.False(t, h.gate.Detected(core.WalletSolflare))

	h.providers[core.WalletSolflare].setAvailable(true)
	h.clock.Advance(h.cfg.DetectInterval)
	assert.True(t, h.gate.Detected(core.WalletSolflare))
	assert.True(t, h.surface.IsDetected(core.WalletSolflare))

	h.clock.Advance(h.loadingSpan())
	assert.Equal(t, core.IdleControl(), h.surface.Control(core.WalletSolflare))
}

func TestStopCancelsTimers(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.providers[core.WalletMetaMask].setAvailable(false)

	h.gate.Start(context.Background())
	require.NotZero(t, h.clock.Pending())

	h.gate.Stop()
	assert.Zero(t, h.clock.Pending())

	h.clock.Advance(time.Minute)
	assert.Equal(t, core.ScreenLoading, h.surface.Screen())
}

func TestStatusSnapshot(t *testing.T) {
	h := newHarness(t, DefaultConfig())
	h.toSelection(t)

	st := h.gate.Status()
	assert.False(t, st.Authenticated)
	assert.Equal(t, core.ScreenAuthenticating, st.Screen)
	assert.Equal(t, 100, st.Progress)
	assert.Nil(t, st.Connection)
	assert.Len(t, st.Controls, len(core.WalletTypes))

	st.Controls[core.WalletPhantom] = core.BusyControl()
	assert.Equal(t, core.IdleControl(), h.gate.Status().Controls[core.WalletPhantom])
}

func TestGateWithSystemClock(t *testing.T) {
	cfg := Config{
		LoadingDuration:    40 * time.Millisecond,
		EnableSilentResume: true,
		ProgressInterval:   5 * time.Millisecond,
		SettleDelay:        5 * time.Millisecond,
		SuccessDelay:       5 * time.Millisecond,
		ErrorDelay:         5 * time.Millisecond,
		DetectInterval:     5 * time.Millisecond,
		DetectMaxAttempts:  2,
		ExclusiveConnect:   true,
	}
	providers := fakeProviders{core.WalletPhantom: newFakeProvider(core.WalletPhantom, "PhantomKey111")}
	surface := newRecorder()
	events := &recordedEvents{}

	gate := NewGate(cfg, providers, store.NewMemoryStore(), events, surface)
	defer gate.Stop()

	gate.Start(context.Background())
	require.Eventually(t, func() bool {
		return gate.Status().Screen == core.ScreenAuthenticating
	}, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, gate.Select(context.Background(), core.WalletPhantom))
	require.Eventually(t, gate.Authenticated, 2*time.Second, 5*time.Millisecond)
	require.Eventually(t, func() bool {
		return len(events.Connected()) == 1
	}, time.Second, 5*time.Millisecond)
}
