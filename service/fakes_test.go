package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/layer-3/walletgate/adapters/store"
	"github.com/layer-3/walletgate/core"
	"github.com/layer-3/walletgate/ports"
)

// fakeClock fires timers only when the test advances it
type fakeClock struct {
	mu     sync.Mutex
	now    time.Time
	seq    int
	timers []*fakeTimer
}

type fakeTimer struct {
	clock   *fakeClock
	at      time.Time
	seq     int
	f       func()
	stopped bool
	fired   bool
}

func newFakeClock(now time.Time) *fakeClock {
	return &fakeClock{now: now}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.seq++
	t := &fakeTimer{clock: c, at: c.now.Add(d), seq: c.seq, f: f}
	c.timers = append(c.timers, t)
	return t
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// Advance moves time forward, firing due timers in order
func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	target := c.now.Add(d)
	c.mu.Unlock()

	for {
		c.mu.Lock()
		var next *fakeTimer
		live := c.timers[:0]
		for _, t := range c.timers {
			if t.stopped || t.fired {
				continue
			}
			live = append(live, t)
			if !t.at.After(target) && (next == nil || t.at.Before(next.at) || (t.at.Equal(next.at) && t.seq < next.seq)) {
				next = t
			}
		}
		c.timers = live
		if next == nil {
			c.now = target
			c.mu.Unlock()
			return
		}
		if next.at.After(c.now) {
			c.now = next.at
		}
		next.fired = true
		c.mu.Unlock()

		next.f()
	}
}

// Pending counts timers that are neither stopped nor fired
func (c *fakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, t := range c.timers {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

type fakeProvider struct {
	kind core.WalletType

	mu        sync.Mutex
	available bool
	silent    core.ConnectionResult
	silentErr error
	result    core.ConnectionResult
	err       error
	calls     int

	entered chan struct{}
	release chan struct{}
}

func newFakeProvider(kind core.WalletType, address string) *fakeProvider {
	res := core.ConnectionResult{Type: kind, PublicKey: address, Address: address}
	return &fakeProvider{
		kind:      kind,
		available: true,
		silent:    res,
		result:    res,
	}
}

func (p *fakeProvider) Kind() core.WalletType { return p.kind }

func (p *fakeProvider) Available() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.available
}

func (p *fakeProvider) setAvailable(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.available = v
}

func (p *fakeProvider) ConnectSilently(context.Context) (core.ConnectionResult, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.available {
		return core.ConnectionResult{}, core.ErrVerificationFailed
	}
	if p.silentErr != nil {
		return core.ConnectionResult{}, p.silentErr
	}
	return p.silent, nil
}

func (p *fakeProvider) ConnectInteractively(ctx context.Context) (core.ConnectionResult, error) {
	p.mu.Lock()
	p.calls++
	entered, release := p.entered, p.release
	p.entered, p.release = nil, nil
	p.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return core.ConnectionResult{}, ctx.Err()
		}
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.available {
		return core.ConnectionResult{}, core.ErrProviderNotFound
	}
	if p.err != nil {
		return core.ConnectionResult{}, p.err
	}
	return p.result, nil
}

// block makes the next interactive connect wait for the returned release func
func (p *fakeProvider) block() (entered <-chan struct{}, release func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.entered = make(chan struct{})
	p.release = make(chan struct{})
	ch := p.release
	return p.entered, func() { close(ch) }
}

type fakeProviders map[core.WalletType]*fakeProvider

func (s fakeProviders) Provider(kind core.WalletType) (ports.Provider, bool) {
	p, ok := s[kind]
	if !ok {
		return nil, false
	}
	return p, true
}

func (s fakeProviders) Kinds() []core.WalletType {
	var kinds []core.WalletType
	for _, k := range core.WalletTypes {
		if _, ok := s[k]; ok {
			kinds = append(kinds, k)
		}
	}
	return kinds
}

// recorder is a Surface that logs every call
type recorder struct {
	mu       sync.Mutex
	log      []string
	screen   core.Screen
	progress []int
	controls map[core.WalletType]core.ControlState
	detected map[core.WalletType]bool
}

func newRecorder() *recorder {
	return &recorder{
		controls: make(map[core.WalletType]core.ControlState),
		detected: make(map[core.WalletType]bool),
	}
}

func (r *recorder) ShowScreen(screen core.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screen = screen
	r.log = append(r.log, "screen:"+string(screen))
}

func (r *recorder) SetProgress(percent int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.progress = append(r.progress, percent)
	r.log = append(r.log, fmt.Sprintf("progress:%d", percent))
}

func (r *recorder) SetControl(wallet core.WalletType, state core.ControlState) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.controls[wallet] = state
}

func (r *recorder) SetDetected(wallet core.WalletType, detected bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detected[wallet] = detected
}

func (r *recorder) Screen() core.Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.screen
}

func (r *recorder) Control(wallet core.WalletType) core.ControlState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.controls[wallet]
}

func (r *recorder) IsDetected(wallet core.WalletType) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.detected[wallet]
}

func (r *recorder) Screens() []core.Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	var screens []core.Screen
	for _, entry := range r.log {
		if len(entry) > 7 && entry[:7] == "screen:" {
			screens = append(screens, core.Screen(entry[7:]))
		}
	}
	return screens
}

func (r *recorder) Progress() []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.progress...)
}

func (r *recorder) Log() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.log...)
}

type recordedEvents struct {
	mu           sync.Mutex
	connected    []core.ConnectionResult
	disconnected []core.WalletType
}

func (e *recordedEvents) PublishConnected(_ context.Context, res core.ConnectionResult) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.connected = append(e.connected, res)
	return nil
}

func (e *recordedEvents) PublishDisconnected(_ context.Context, wallet core.WalletType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disconnected = append(e.disconnected, wallet)
	return nil
}

func (e *recordedEvents) Connected() []core.ConnectionResult {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.ConnectionResult(nil), e.connected...)
}

func (e *recordedEvents) Disconnected() []core.WalletType {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]core.WalletType(nil), e.disconnected...)
}

// slowSaveStore holds the first Save until release is closed
type slowSaveStore struct {
	*store.MemoryStore

	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newSlowSaveStore(inner *store.MemoryStore) *slowSaveStore {
	return &slowSaveStore{
		MemoryStore: inner,
		entered:     make(chan struct{}),
		release:     make(chan struct{}),
	}
}

func (s *slowSaveStore) Save(ctx context.Context, record core.SessionRecord) error {
	s.once.Do(func() { close(s.entered) })
	<-s.release
	return s.MemoryStore.Save(ctx, record)
}
