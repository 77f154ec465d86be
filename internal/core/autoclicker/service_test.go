package autoclicker

import (
	"context"
	"errors"
	"math"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

type recordingInjector struct {
	mu     sync.Mutex
	events []Event
	closed bool
	err    error
}

func (r *recordingInjector) WriteEvents(events ...Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.events = append(r.events, events...)
	return nil
}

func (r *recordingInjector) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

func (r *recordingInjector) snapshot() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

func (r *recordingInjector) isClosed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

func (r *recordingInjector) setErr(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err = err
}

func (r *recordingInjector) clicks(code uint16) int {
	count := 0
	for _, event := range r.snapshot() {
		if event.Type == EventTypeKey && event.Code == code && event.Value == 1 {
			count++
		}
	}
	return count
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// fakeSource replays a fixed sequence of polls and then repeats the last one.
type fakeSource struct {
	mu        sync.Mutex
	frames    []hotkey.Pressed
	current   hotkey.Pressed
	err       error
	available bool
	closed    bool
}

func newFakeSource(frames ...hotkey.Pressed) *fakeSource {
	return &fakeSource{frames: frames, available: true}
}

func (f *fakeSource) Poll() (hotkey.Pressed, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return hotkey.Pressed{}, f.err
	}
	if len(f.frames) > 0 {
		f.current = f.frames[0]
		f.frames = f.frames[1:]
	}
	return f.current, nil
}

func (f *fakeSource) set(pressed hotkey.Pressed) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames = nil
	f.current = pressed
}

func (f *fakeSource) Available() bool { return f.available }

func (f *fakeSource) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

type bindingSource struct {
	*fakeSource
	bindMu sync.Mutex
	binds  [][]hotkey.Code
}

func (b *bindingSource) Bind(codes []hotkey.Code) error {
	b.bindMu.Lock()
	defer b.bindMu.Unlock()
	b.binds = append(b.binds, codes)
	return nil
}

func (b *bindingSource) lastBind() []hotkey.Code {
	b.bindMu.Lock()
	defer b.bindMu.Unlock()
	if len(b.binds) == 0 {
		return nil
	}
	return b.binds[len(b.binds)-1]
}

type recordingPersister struct {
	mu    sync.Mutex
	saved []SettingsSnapshot
	err   error
}

func (p *recordingPersister) Save(settings SettingsSnapshot) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.saved = append(p.saved, settings)
	return p.err
}

func (p *recordingPersister) last() (SettingsSnapshot, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.saved) == 0 {
		return SettingsSnapshot{}, false
	}
	return p.saved[len(p.saved)-1], true
}

func pressedKeys(codes ...hotkey.Code) hotkey.Pressed {
	return hotkey.NewPressed(codes...)
}

func fastTiming() Timing {
	return Timing{
		ListenerPoll:   time.Millisecond,
		ListenerIdle:   time.Millisecond,
		EmitterIdle:    time.Millisecond,
		EmitterStopped: time.Millisecond,
		RecordPoll:     time.Millisecond,
	}
}

func testConfig(startRunning bool) Config {
	settings := DefaultSettings()
	settings.HotkeyLeft = "F6"
	settings.ClickSpeedMS = 1
	return Config{
		Settings:     settings,
		Timing:       fastTiming(),
		StartRunning: startRunning,
		Seed:         1,
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timeout waiting for %s", msg)
}

func assertReleaseSuffix(t *testing.T, events []Event, code uint16) {
	t.Helper()
	if len(events) < 2 {
		t.Fatalf("expected at least 2 events, got %d", len(events))
	}
	up := events[len(events)-2]
	syn := events[len(events)-1]
	if up != (Event{Type: EventTypeKey, Code: code, Value: 0}) {
		t.Fatalf("unexpected release event: %#v", up)
	}
	if syn != (Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0}) {
		t.Fatalf("unexpected sync event: %#v", syn)
	}
}

func TestNewServiceRequiresInjectorAndLogger(t *testing.T) {
	if _, err := NewService(testConfig(true), nil, nil, nil, noopLogger{}); err == nil {
		t.Fatalf("expected error for nil injector")
	}
	if _, err := NewService(testConfig(true), nil, &recordingInjector{}, nil, nil); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

func TestNewServiceNormalizesSettings(t *testing.T) {
	cfg := testConfig(false)
	cfg.Settings.ClickSpeedMS = -5
	cfg.Settings.Theme = "neon"

	service, err := NewService(cfg, nil, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	got := service.Settings()
	if got.ClickSpeedMS != DefaultClickSpeedMS {
		t.Fatalf("ClickSpeedMS = %v, want %v", got.ClickSpeedMS, DefaultClickSpeedMS)
	}
	if got.Theme != ThemeSystem {
		t.Fatalf("Theme = %q, want %q", got.Theme, ThemeSystem)
	}
}

func TestToggleHotkeyStartsAndStopsClicking(t *testing.T) {
	source := newFakeSource()
	injector := &recordingInjector{}
	service, err := NewService(testConfig(true), source, injector, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()
	defer service.Stop()

	waitFor(t, time.Second, service.HotkeysAvailable, "hotkeys available")

	source.set(pressedKeys(hotkey.KeyF6))
	waitFor(t, time.Second, func() bool { return service.IsActive(SideLeft) }, "left active")
	source.set(hotkey.Pressed{})
	waitFor(t, time.Second, func() bool { return injector.clicks(LeftButtonCode) >= 3 }, "left clicks")

	source.set(pressedKeys(hotkey.KeyF6))
	waitFor(t, time.Second, func() bool { return !service.IsActive(SideLeft) }, "left inactive")
	if service.IsActive(SideRight) {
		t.Fatalf("right side should stay inactive")
	}
}

func TestRightHotkeyClicksRightButton(t *testing.T) {
	cfg := testConfig(true)
	cfg.Settings.HotkeyLeft = ""
	cfg.Settings.HotkeyRight = "Mouse5"
	cfg.Settings.HoldMode = true

	source := newFakeSource(pressedKeys(hotkey.BtnExtra))
	injector := &recordingInjector{}
	service, err := NewService(cfg, source, injector, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()
	defer service.Stop()

	waitFor(t, time.Second, func() bool { return injector.clicks(RightButtonCode) >= 2 }, "right clicks")
	if injector.clicks(LeftButtonCode) != 0 {
		t.Fatalf("left button must not be clicked")
	}
}

func TestStoppedServiceNeverClicks(t *testing.T) {
	source := newFakeSource(pressedKeys(hotkey.KeyF6))
	injector := &recordingInjector{}
	service, err := NewService(testConfig(false), source, injector, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()
	time.Sleep(30 * time.Millisecond)
	service.Stop()

	if n := len(injector.snapshot()); n != 0 {
		t.Fatalf("expected no events while stopped, got %d", n)
	}
}

func TestStopReleasesButtonBeforeClosingInjector(t *testing.T) {
	injector := &recordingInjector{}
	source := newFakeSource()
	service, err := NewService(testConfig(true), source, injector, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	if err := service.emitter.writeEvents(
		Event{Type: EventTypeKey, Code: LeftButtonCode, Value: 1},
		Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
	); err != nil {
		t.Fatalf("writeEvents() error = %v", err)
	}

	service.Stop()

	if !injector.isClosed() {
		t.Fatalf("expected injector to be closed")
	}
	if !source.closed {
		t.Fatalf("expected input source to be closed")
	}
	assertReleaseSuffix(t, injector.snapshot(), LeftButtonCode)
}

func TestStopIsIdempotent(t *testing.T) {
	service, err := NewService(testConfig(true), newFakeSource(), &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()

	done := make(chan struct{})
	go func() {
		service.Stop()
		service.Stop()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("Stop did not return")
	}
}

func TestUnavailableSourceKeepsServiceUsable(t *testing.T) {
	injector := &recordingInjector{}
	service, err := NewService(testConfig(true), nil, injector, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()
	defer service.Stop()

	time.Sleep(10 * time.Millisecond)
	if service.HotkeysAvailable() {
		t.Fatalf("expected hotkeys to be unavailable")
	}
	if err := service.SetClickSpeed(20); err != nil {
		t.Fatalf("SetClickSpeed() error = %v", err)
	}
	if running := service.ToggleRunning(); running {
		t.Fatalf("ToggleRunning() = true, want false")
	}
	if _, err := service.RecordHotkey(context.Background()); !errors.Is(err, ErrHotkeysUnavailable) {
		t.Fatalf("RecordHotkey() error = %v, want ErrHotkeysUnavailable", err)
	}
}

func TestSetClickSpeedRejectsInvalid(t *testing.T) {
	persister := &recordingPersister{}
	service, err := NewService(testConfig(false), nil, &recordingInjector{}, persister, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	for _, ms := range []float64{0, -1, math.NaN(), 1e17} {
		if err := service.SetClickSpeed(ms); !errors.Is(err, ErrInvalidSpeed) {
			t.Fatalf("SetClickSpeed(%v) error = %v, want ErrInvalidSpeed", ms, err)
		}
	}
	if _, ok := persister.last(); ok {
		t.Fatalf("rejected speeds must not be persisted")
	}

	if err := service.SetClickSpeed(0.5); err != nil {
		t.Fatalf("SetClickSpeed(0.5) error = %v", err)
	}
	saved, ok := persister.last()
	if !ok || saved.ClickSpeedMS != 0.5 {
		t.Fatalf("persisted speed = %v, want 0.5", saved.ClickSpeedMS)
	}
}

func TestSettersPersistSnapshot(t *testing.T) {
	persister := &recordingPersister{}
	service, err := NewService(testConfig(false), nil, &recordingInjector{}, persister, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	service.SetHotkey(SideRight, "  ctrl+b ")
	service.SetHoldMode(true)
	service.SetRandomize(true)
	service.SetTheme(ThemeDark)

	saved, ok := persister.last()
	if !ok {
		t.Fatalf("expected settings to be persisted")
	}
	want := SettingsSnapshot{
		HotkeyLeft:   "F6",
		HotkeyRight:  "ctrl+b",
		ClickSpeedMS: 1,
		HoldMode:     true,
		Randomize:    true,
		Theme:        ThemeDark,
	}
	if saved != want {
		t.Fatalf("persisted = %#v, want %#v", saved, want)
	}
	if service.Settings() != want {
		t.Fatalf("Settings() = %#v, want %#v", service.Settings(), want)
	}
}

func TestPersistFailureKeepsInMemoryValue(t *testing.T) {
	persister := &recordingPersister{err: errors.New("disk full")}
	service, err := NewService(testConfig(false), nil, &recordingInjector{}, persister, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	service.SetHoldMode(true)
	if !service.Settings().HoldMode {
		t.Fatalf("hold mode should be applied even when saving fails")
	}
}

func TestApplySettingsDoesNotPersist(t *testing.T) {
	persister := &recordingPersister{}
	service, err := NewService(testConfig(false), nil, &recordingInjector{}, persister, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	next := service.Settings()
	next.HotkeyLeft = "F8"
	if !service.ApplySettings(next) {
		t.Fatalf("ApplySettings() = false, want true")
	}
	if service.ApplySettings(next) {
		t.Fatalf("second ApplySettings() = true, want false")
	}
	if _, ok := persister.last(); ok {
		t.Fatalf("ApplySettings must not persist")
	}
	if got := service.Settings().HotkeyLeft; got != "F8" {
		t.Fatalf("HotkeyLeft = %q, want F8", got)
	}
}

func TestSetRunningIsIdempotent(t *testing.T) {
	service, err := NewService(testConfig(false), nil, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.SetRunning(true)
	service.SetRunning(true)
	if !service.IsRunning() {
		t.Fatalf("expected running")
	}
	if service.ToggleRunning() {
		t.Fatalf("ToggleRunning() = true, want false")
	}
}

func TestRecordHotkeyReturnsCombination(t *testing.T) {
	source := newFakeSource(
		hotkey.Pressed{},
		pressedKeys(hotkey.KeyLeftCtrl),
		pressedKeys(hotkey.KeyLeftCtrl, hotkey.KeyA),
		pressedKeys(hotkey.KeyA),
		hotkey.Pressed{},
	)
	service, err := NewService(testConfig(false), source, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	got, err := service.RecordHotkey(ctx)
	if err != nil {
		t.Fatalf("RecordHotkey() error = %v", err)
	}
	if got != "Ctrl+A" {
		t.Fatalf("RecordHotkey() = %q, want Ctrl+A", got)
	}
}

func TestRecordHotkeyEscapeCancels(t *testing.T) {
	source := newFakeSource(pressedKeys(hotkey.KeyEsc), hotkey.Pressed{})
	service, err := NewService(testConfig(false), source, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := service.RecordHotkey(ctx); !errors.Is(err, ErrRecordCancelled) {
		t.Fatalf("RecordHotkey() error = %v, want ErrRecordCancelled", err)
	}
}

func TestRecordHotkeyHonoursContext(t *testing.T) {
	service, err := NewService(testConfig(false), newFakeSource(), &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if _, err := service.RecordHotkey(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("RecordHotkey() error = %v, want deadline exceeded", err)
	}
}

func TestSubscribeReceivesActivationChanges(t *testing.T) {
	cfg := testConfig(true)
	cfg.Settings.HoldMode = true
	source := newFakeSource()
	service, err := NewService(cfg, source, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	events, cancel := service.Subscribe(8)
	defer cancel()
	service.Start()
	defer service.Stop()

	source.set(pressedKeys(hotkey.KeyF6))
	select {
	case event := <-events:
		if event != (ActivationEvent{Side: SideLeft, Active: true}) {
			t.Fatalf("unexpected event %#v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for activation event")
	}

	source.set(hotkey.Pressed{})
	select {
	case event := <-events:
		if event != (ActivationEvent{Side: SideLeft, Active: false}) {
			t.Fatalf("unexpected event %#v", event)
		}
	case <-time.After(time.Second):
		t.Fatalf("timeout waiting for deactivation event")
	}
}

func TestSleepWithStop(t *testing.T) {
	stop := make(chan struct{})
	if !sleepWithStop(stop, 0) {
		t.Fatalf("zero sleep should succeed while not stopped")
	}
	if !sleepWithStop(stop, time.Millisecond) {
		t.Fatalf("short sleep should complete")
	}
	close(stop)
	if sleepWithStop(stop, time.Hour) {
		t.Fatalf("sleep should abort once stopped")
	}
	if !stopped(stop) {
		t.Fatalf("stopped() = false after close")
	}
}

func TestBindingsFollowRunningStateAndHotkeys(t *testing.T) {
	source := &bindingSource{fakeSource: newFakeSource()}
	cfg := testConfig(false)
	cfg.Settings.HotkeyRight = "Ctrl+MouseButton4"
	service, err := NewService(cfg, source, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()
	defer service.Stop()

	if got := source.lastBind(); len(got) != 0 {
		t.Fatalf("stopped service bound %v, want nothing", got)
	}

	service.SetRunning(true)
	if got, want := source.lastBind(), []hotkey.Code{hotkey.KeyF6, hotkey.BtnSide}; !slices.Equal(got, want) {
		t.Fatalf("running binds = %v, want %v", got, want)
	}

	service.SetHotkey(SideRight, "")
	if got, want := source.lastBind(), []hotkey.Code{hotkey.KeyF6}; !slices.Equal(got, want) {
		t.Fatalf("binds after clearing right = %v, want %v", got, want)
	}

	next := service.Settings()
	next.HotkeyLeft = "MouseButton5"
	if !service.ApplySettings(next) {
		t.Fatal("ApplySettings() = false, want true")
	}
	if got, want := source.lastBind(), []hotkey.Code{hotkey.BtnExtra}; !slices.Equal(got, want) {
		t.Fatalf("binds after reload = %v, want %v", got, want)
	}

	service.ToggleRunning()
	if got := source.lastBind(); len(got) != 0 {
		t.Fatalf("binds after stopping = %v, want nothing", got)
	}
}

func TestRecordingBindsMouseButtons(t *testing.T) {
	source := &bindingSource{fakeSource: newFakeSource(
		pressedKeys(hotkey.BtnSide),
		hotkey.Pressed{},
	)}
	service, err := NewService(testConfig(false), source, &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if _, err := service.RecordHotkey(ctx); err != nil {
		t.Fatalf("RecordHotkey() error = %v", err)
	}

	source.bindMu.Lock()
	binds := slices.Clone(source.binds)
	source.bindMu.Unlock()
	if len(binds) != 2 {
		t.Fatalf("Bind called %d times, want 2", len(binds))
	}
	if !slices.Contains(binds[0], hotkey.BtnSide) || !slices.Contains(binds[0], hotkey.BtnExtra) {
		t.Fatalf("recording binds = %v, want side buttons", binds[0])
	}
	if len(binds[1]) != 0 {
		t.Fatalf("binds after recording = %v, want nothing", binds[1])
	}
}

func TestSubscribeAfterStopIsClosed(t *testing.T) {
	service, err := NewService(testConfig(false), newFakeSource(), &recordingInjector{}, nil, noopLogger{})
	if err != nil {
		t.Fatalf("NewService() error = %v", err)
	}
	service.Start()
	service.Stop()

	events, cancel := service.Subscribe(4)
	defer cancel()
	select {
	case _, ok := <-events:
		if ok {
			t.Fatal("received an event after Stop")
		}
	case <-time.After(time.Second):
		t.Fatal("Subscribe after Stop returned an open channel")
	}
}
