package autoclicker

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

var (
	ErrHotkeysUnavailable = errors.New("global hotkeys unavailable")
	ErrRecordCancelled    = errors.New("hotkey recording cancelled")
)

// Service owns the shared state and both background loops, and exposes the
// control contract used by the GUI, the TUI and the settings watcher.
type Service struct {
	runtime   *RuntimeState
	settings  *Settings
	notifier  *Notifier
	listener  *Listener
	emitter   *Emitter
	source    InputSource
	injector  Injector
	persister Persister
	logger    Logger
	timing    Timing

	recordMu  sync.Mutex
	bindMu    sync.Mutex
	recording bool
	stopCh    chan struct{}
	startOnce sync.Once
	stopOnce  sync.Once
	workersWG sync.WaitGroup
}

func NewService(cfg Config, source InputSource, injector Injector, persister Persister, logger Logger) (*Service, error) {
	if injector == nil {
		return nil, fmt.Errorf("injector is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	if source == nil {
		source = UnavailableSource{}
	}
	if persister == nil {
		persister = nopPersister{}
	}

	timing := cfg.Timing.withDefaults()
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runtime := &RuntimeState{}
	runtime.SetRunning(cfg.StartRunning)
	settings := NewSettings(cfg.Settings)
	notifier := NewNotifier()

	return &Service{
		runtime:   runtime,
		settings:  settings,
		notifier:  notifier,
		listener:  NewListener(runtime, settings, source, notifier, logger, timing),
		emitter:   NewEmitter(runtime, settings, injector, logger, timing, rand.New(rand.NewSource(seed))),
		source:    source,
		injector:  injector,
		persister: persister,
		logger:    logger,
		timing:    timing,
		stopCh:    make(chan struct{}),
	}, nil
}

func (s *Service) Start() {
	s.startOnce.Do(func() {
		s.syncBindings()
		s.workersWG.Add(1)
		go func() {
			defer s.workersWG.Done()
			s.listener.Run(s.stopCh)
		}()

		s.workersWG.Add(1)
		go func() {
			defer s.workersWG.Done()
			s.emitter.Run(s.stopCh)
		}()
	})
}

// Stop signals both loops, waits for them, releases any held button and
// closes the injector and input source.
func (s *Service) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		s.workersWG.Wait()
		s.emitter.releaseButtons()
		if err := s.injector.Close(); err != nil {
			s.logger.Warn("Failed to close injector", "err", err)
		}
		if err := s.source.Close(); err != nil {
			s.logger.Warn("Failed to close input source", "err", err)
		}
		s.notifier.Close()
	})
}

func (s *Service) SetHotkey(side Side, value string) {
	value = strings.TrimSpace(value)
	snap := s.settings.update(func(v *SettingsSnapshot) {
		if side == SideRight {
			v.HotkeyRight = value
		} else {
			v.HotkeyLeft = value
		}
	})
	if value != "" {
		if _, ok := hotkey.Parse(value); !ok {
			s.logger.Warn("Hotkey does not resolve to a key and will never match", "side", side, "hotkey", value)
		}
	}
	s.logger.Info("Hotkey updated", "side", side, "hotkey", value)
	s.syncBindings()
	s.persist(snap)
}

func (s *Service) SetClickSpeed(ms float64) error {
	if !validSpeed(ms) {
		return fmt.Errorf("%w: %v", ErrInvalidSpeed, ms)
	}
	snap := s.settings.update(func(v *SettingsSnapshot) {
		v.ClickSpeedMS = ms
	})
	s.logger.Debug("Click speed updated", "ms", ms)
	s.persist(snap)
	return nil
}

func (s *Service) SetHoldMode(hold bool) {
	snap := s.settings.update(func(v *SettingsSnapshot) {
		v.HoldMode = hold
	})
	s.logger.Info("Activation mode updated", "mode", snap.Mode())
	s.persist(snap)
}

func (s *Service) SetRandomize(randomize bool) {
	snap := s.settings.update(func(v *SettingsSnapshot) {
		v.Randomize = randomize
	})
	s.persist(snap)
}

func (s *Service) SetTheme(theme Theme) {
	snap := s.settings.update(func(v *SettingsSnapshot) {
		v.Theme = ParseTheme(string(theme))
	})
	s.persist(snap)
}

// ApplySettings adopts settings that were changed outside the process. It
// does not persist and reports whether anything changed.
func (s *Service) ApplySettings(next SettingsSnapshot) bool {
	changed := s.settings.Replace(next)
	if changed {
		s.logger.Info("Settings reloaded")
		s.syncBindings()
	}
	return changed
}

func (s *Service) Settings() SettingsSnapshot {
	return s.settings.Snapshot()
}

func (s *Service) ToggleRunning() bool {
	running := s.runtime.ToggleRunning()
	s.logRunning(running)
	s.syncBindings()
	return running
}

func (s *Service) SetRunning(running bool) {
	if s.runtime.IsRunning() == running {
		return
	}
	s.runtime.SetRunning(running)
	s.logRunning(running)
	s.syncBindings()
}

func (s *Service) IsRunning() bool {
	return s.runtime.IsRunning()
}

func (s *Service) IsActive(side Side) bool {
	return s.runtime.IsActive(side)
}

func (s *Service) HotkeysAvailable() bool {
	return s.runtime.HotkeysAvailable()
}

func (s *Service) ClickCount() int64 {
	return s.emitter.ClickCount()
}

// Subscribe delivers activation changes until the returned cancel function
// is called or the service stops.
func (s *Service) Subscribe(buffer int) (<-chan ActivationEvent, func()) {
	return s.notifier.Subscribe(buffer)
}

// RecordHotkey waits for the user to press and release a combination and
// returns it in hotkey string form. Escape on its own cancels.
func (s *Service) RecordHotkey(ctx context.Context) (string, error) {
	if !s.source.Available() {
		return "", ErrHotkeysUnavailable
	}
	s.recordMu.Lock()
	defer s.recordMu.Unlock()
	s.setRecording(true)
	defer s.setRecording(false)

	var recorder hotkey.Recorder
	ticker := time.NewTicker(s.timing.RecordPoll)
	defer ticker.Stop()
	for {
		pressed, err := s.source.Poll()
		if err != nil {
			s.logger.Debug("Input poll failed while recording", "err", err)
		} else {
			switch state, result := recorder.Observe(pressed); state {
			case hotkey.RecordDone:
				s.logger.Info("Recorded hotkey", "hotkey", result)
				return result, nil
			case hotkey.RecordCancelled:
				return "", ErrRecordCancelled
			}
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-s.stopCh:
			return "", ErrRecordCancelled
		case <-ticker.C:
		}
	}
}

func (s *Service) setRecording(on bool) {
	s.bindMu.Lock()
	s.recording = on
	s.bindMu.Unlock()
	s.syncBindings()
}

// syncBindings tells a BindingSource which codes to observe. While running
// that is the main input of each configured hotkey; while recording it is
// every mouse button; otherwise nothing.
func (s *Service) syncBindings() {
	binder, ok := s.source.(BindingSource)
	if !ok || stopped(s.stopCh) {
		return
	}
	s.bindMu.Lock()
	defer s.bindMu.Unlock()
	if err := binder.Bind(s.boundCodes()); err != nil {
		s.logger.Warn("Failed to bind hotkey inputs", "err", err)
	}
}

func (s *Service) boundCodes() []hotkey.Code {
	if s.recording {
		var buttons []hotkey.Code
		for _, code := range hotkey.Known() {
			if code.IsButton() {
				buttons = append(buttons, code)
			}
		}
		return buttons
	}
	if !s.runtime.IsRunning() {
		return nil
	}
	snap := s.settings.Snapshot()
	var codes []hotkey.Code
	for _, side := range Sides {
		if spec, ok := hotkey.Parse(snap.Hotkey(side)); ok {
			codes = append(codes, spec.Main)
		}
	}
	return codes
}

func (s *Service) logRunning(running bool) {
	if running {
		s.logger.Info("Autoclicker started")
		return
	}
	s.logger.Info("Autoclicker stopped")
}

func (s *Service) persist(snap SettingsSnapshot) {
	if err := s.persister.Save(snap); err != nil {
		s.logger.Warn("Failed to persist settings", "err", err)
	}
}

// UnavailableSource stands in for platforms or sessions without readable input.
type UnavailableSource struct {
	Reason error
}

func (u UnavailableSource) Poll() (hotkey.Pressed, error) {
	if u.Reason != nil {
		return hotkey.Pressed{}, fmt.Errorf("%w: %w", ErrHotkeysUnavailable, u.Reason)
	}
	return hotkey.Pressed{}, ErrHotkeysUnavailable
}

func (UnavailableSource) Available() bool { return false }
func (UnavailableSource) Close() error    { return nil }

type nopPersister struct{}

func (nopPersister) Save(SettingsSnapshot) error { return nil }

func stopped(stop <-chan struct{}) bool {
	select {
	case <-stop:
		return true
	default:
		return false
	}
}

func sleepWithStop(stop <-chan struct{}, duration time.Duration) bool {
	if duration <= 0 {
		return !stopped(stop)
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-stop:
		return false
	case <-timer.C:
		return true
	}
}
