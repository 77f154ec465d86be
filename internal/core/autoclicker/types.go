package autoclicker

import (
	"time"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

const (
	EventTypeSyn uint16 = 0x00
	EventTypeKey uint16 = 0x01

	SynReportCode   uint16 = 0
	LeftButtonCode  uint16 = 0x110
	RightButtonCode uint16 = 0x111
)

type Event struct {
	Type  uint16
	Code  uint16
	Value int32
}

// Injector synthesizes input events. Implementations receive a click as
// button down, SYN, button up, SYN.
type Injector interface {
	WriteEvents(events ...Event) error
	Close() error
}

// InputSource reports which keys and buttons are currently held, merged
// across every device the platform exposes.
type InputSource interface {
	Poll() (hotkey.Pressed, error)
	Available() bool
	Close() error
}

// BindingSource is an InputSource that only observes some codes while they
// are bound, for example buttons it must grab to see. Bind receives the full
// set each time and releases whatever is no longer listed.
type BindingSource interface {
	InputSource
	Bind(codes []hotkey.Code) error
}

type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// Persister durably stores a settings snapshot.
type Persister interface {
	Save(settings SettingsSnapshot) error
}

type Side int

const (
	SideLeft Side = iota
	SideRight
)

var Sides = [...]Side{SideLeft, SideRight}

func (s Side) String() string {
	if s == SideRight {
		return "right"
	}
	return "left"
}

// ButtonCode is the mouse button clicked for this side.
func (s Side) ButtonCode() uint16 {
	if s == SideRight {
		return RightButtonCode
	}
	return LeftButtonCode
}

type ActivationMode int

const (
	ModeToggle ActivationMode = iota
	ModeHold
)

func (m ActivationMode) String() string {
	if m == ModeHold {
		return "hold"
	}
	return "toggle"
}

// Timing holds the sleep intervals of both loops.
type Timing struct {
	ListenerPoll   time.Duration
	ListenerIdle   time.Duration
	EmitterIdle    time.Duration
	EmitterStopped time.Duration
	RecordPoll     time.Duration
}

func DefaultTiming() Timing {
	return Timing{
		ListenerPoll:   5 * time.Millisecond,
		ListenerIdle:   50 * time.Millisecond,
		EmitterIdle:    50 * time.Millisecond,
		EmitterStopped: 200 * time.Millisecond,
		RecordPoll:     10 * time.Millisecond,
	}
}

func (t Timing) withDefaults() Timing {
	def := DefaultTiming()
	if t.ListenerPoll <= 0 {
		t.ListenerPoll = def.ListenerPoll
	}
	if t.ListenerIdle <= 0 {
		t.ListenerIdle = def.ListenerIdle
	}
	if t.EmitterIdle <= 0 {
		t.EmitterIdle = def.EmitterIdle
	}
	if t.EmitterStopped <= 0 {
		t.EmitterStopped = def.EmitterStopped
	}
	if t.RecordPoll <= 0 {
		t.RecordPoll = def.RecordPoll
	}
	return t
}

type Config struct {
	Settings     SettingsSnapshot
	Timing       Timing
	StartRunning bool
	// Seed fixes the interval randomization source; zero seeds from the clock.
	Seed int64
}
