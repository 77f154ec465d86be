package autoclicker

import (
	"errors"
	"math"
	"sync"
	"sync/atomic"
	"time"
)

var ErrInvalidSpeed = errors.New("click speed must be > 0 and at most one hour")

const (
	DefaultClickSpeedMS = 100.0
	minClickSpeedMS     = 1.0
	maxClickSpeedMS     = float64(time.Hour / time.Millisecond)
)

type Theme string

const (
	ThemeSystem Theme = "system"
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
)

func ParseTheme(value string) Theme {
	switch Theme(value) {
	case ThemeLight, ThemeDark:
		return Theme(value)
	default:
		return ThemeSystem
	}
}

// RuntimeState holds the derived flags shared by both loops and the control
// surface. Each flag is synchronized on its own.
type RuntimeState struct {
	running          atomic.Bool
	leftActive       atomic.Bool
	rightActive      atomic.Bool
	hotkeysAvailable atomic.Bool
}

func (r *RuntimeState) IsRunning() bool {
	return r.running.Load()
}

func (r *RuntimeState) SetRunning(running bool) {
	r.running.Store(running)
}

// ToggleRunning flips the running flag and returns the new value.
func (r *RuntimeState) ToggleRunning() bool {
	for {
		current := r.running.Load()
		if r.running.CompareAndSwap(current, !current) {
			return !current
		}
	}
}

func (r *RuntimeState) IsActive(side Side) bool {
	return r.activeCell(side).Load()
}

// setActive stores the flag and reports whether it changed.
func (r *RuntimeState) setActive(side Side, active bool) bool {
	return r.activeCell(side).Swap(active) != active
}

func (r *RuntimeState) activeCell(side Side) *atomic.Bool {
	if side == SideRight {
		return &r.rightActive
	}
	return &r.leftActive
}

func (r *RuntimeState) HotkeysAvailable() bool {
	return r.hotkeysAvailable.Load()
}

func (r *RuntimeState) setHotkeysAvailable(available bool) {
	r.hotkeysAvailable.Store(available)
}

// SettingsSnapshot is a consistent copy of the configured values.
type SettingsSnapshot struct {
	HotkeyLeft   string
	HotkeyRight  string
	ClickSpeedMS float64
	HoldMode     bool
	Randomize    bool
	Theme        Theme
}

func DefaultSettings() SettingsSnapshot {
	return SettingsSnapshot{
		ClickSpeedMS: DefaultClickSpeedMS,
		Theme:        ThemeSystem,
	}
}

func (s SettingsSnapshot) Hotkey(side Side) string {
	if side == SideRight {
		return s.HotkeyRight
	}
	return s.HotkeyLeft
}

func (s SettingsSnapshot) Mode() ActivationMode {
	if s.HoldMode {
		return ModeHold
	}
	return ModeToggle
}

// Normalize replaces values a store may have left invalid with defaults.
func (s SettingsSnapshot) Normalize() SettingsSnapshot {
	if !validSpeed(s.ClickSpeedMS) {
		s.ClickSpeedMS = DefaultClickSpeedMS
	}
	s.Theme = ParseTheme(string(s.Theme))
	return s
}

// Settings guards the configured values with one RW lock so readers always
// see the hotkeys and mode together.
type Settings struct {
	mu     sync.RWMutex
	values SettingsSnapshot
}

func NewSettings(initial SettingsSnapshot) *Settings {
	return &Settings{values: initial.Normalize()}
}

func (s *Settings) Snapshot() SettingsSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values
}

// Replace swaps in next and reports whether anything changed.
func (s *Settings) Replace(next SettingsSnapshot) bool {
	next = next.Normalize()
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == next {
		return false
	}
	s.values = next
	return true
}

func (s *Settings) update(apply func(values *SettingsSnapshot)) SettingsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	apply(&s.values)
	return s.values
}

func validSpeed(ms float64) bool {
	return ms > 0 && ms <= maxClickSpeedMS
}

// ClampSpeed keeps a click speed between one millisecond and one hour.
// NaN collapses to the floor.
func ClampSpeed(ms float64) float64 {
	switch {
	case math.IsNaN(ms) || ms < minClickSpeedMS:
		return minClickSpeedMS
	case ms > maxClickSpeedMS:
		return maxClickSpeedMS
	}
	return ms
}

// ClickInterval converts a click speed into a sleep duration with
// microsecond resolution.
func ClickInterval(ms float64) time.Duration {
	return time.Duration(ClampSpeed(ms)*1000) * time.Microsecond
}
