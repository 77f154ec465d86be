package autoclicker

import (
	"time"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

// Listener polls the input source and drives the per-side activation state
// machines. It is the only writer of the active flags.
type Listener struct {
	runtime  *RuntimeState
	settings *Settings
	source   InputSource
	notifier *Notifier
	logger   Logger
	timing   Timing

	specs       hotkey.ParseCache
	sides       [len(Sides)]Activation
	pollFailing bool
}

func NewListener(runtime *RuntimeState, settings *Settings, source InputSource, notifier *Notifier, logger Logger, timing Timing) *Listener {
	return &Listener{
		runtime:  runtime,
		settings: settings,
		source:   source,
		notifier: notifier,
		logger:   logger,
		timing:   timing.withDefaults(),
	}
}

// Run loops until stop is closed. When the source is unavailable it marks
// hotkeys unavailable and returns at once.
func (l *Listener) Run(stop <-chan struct{}) {
	if l.source == nil || !l.source.Available() {
		l.runtime.setHotkeysAvailable(false)
		l.logger.Warn("Global hotkeys unavailable; no readable input source")
		return
	}
	l.runtime.setHotkeysAvailable(true)
	l.logger.Debug("Hotkey listener started", "poll", l.timing.ListenerPoll)

	for {
		if stopped(stop) {
			return
		}
		if !sleepWithStop(stop, l.tick()) {
			return
		}
	}
}

// tick performs one poll and returns how long to sleep before the next.
func (l *Listener) tick() time.Duration {
	if !l.runtime.IsRunning() {
		l.idle()
		return l.timing.ListenerIdle
	}

	pressed, err := l.source.Poll()
	if err != nil {
		if !l.pollFailing {
			l.logger.Warn("Input poll failed", "err", err)
			l.pollFailing = true
		}
		pressed = hotkey.Pressed{}
	} else if l.pollFailing {
		l.logger.Info("Input poll recovered")
		l.pollFailing = false
	}

	snap := l.settings.Snapshot()
	mode := snap.Mode()
	for _, side := range Sides {
		matched := l.matches(pressed, snap.Hotkey(side))
		if active, changed := l.sides[side].Step(matched, mode); changed {
			l.publish(side, active)
		}
	}
	return l.timing.ListenerPoll
}

func (l *Listener) idle() {
	holdMode := l.settings.Snapshot().HoldMode
	for _, side := range Sides {
		state := &l.sides[side]
		state.ResetEdges()
		if holdMode && state.ForceInactive() {
			l.publish(side, false)
		}
	}
}

func (l *Listener) matches(pressed hotkey.Pressed, raw string) bool {
	if raw == "" {
		return false
	}
	spec, ok := l.specs.Parse(raw)
	if !ok {
		return false
	}
	return hotkey.Match(pressed, spec)
}

func (l *Listener) publish(side Side, active bool) {
	if !l.runtime.setActive(side, active) {
		return
	}
	l.logger.Debug("Hotkey activation changed", "side", side, "active", active)
	if l.notifier != nil {
		l.notifier.Publish(ActivationEvent{Side: side, Active: active})
	}
}
