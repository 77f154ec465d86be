package autoclicker

import (
	"math/rand"
	"sync"
	"sync/atomic"
	"time"
)

// Emitter synthesizes clicks for every active side while the clicker runs.
// It is the only user of the injector.
type Emitter struct {
	runtime  *RuntimeState
	settings *Settings
	injector Injector
	logger   Logger
	timing   Timing
	rng      *rand.Rand

	injectorMu   sync.Mutex
	buttonDown   [len(Sides)]atomic.Bool
	clickCount   atomic.Int64
	lastProgress time.Time
}

func NewEmitter(runtime *RuntimeState, settings *Settings, injector Injector, logger Logger, timing Timing, rng *rand.Rand) *Emitter {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Emitter{
		runtime:  runtime,
		settings: settings,
		injector: injector,
		logger:   logger,
		timing:   timing.withDefaults(),
		rng:      rng,
	}
}

func (e *Emitter) Run(stop <-chan struct{}) {
	e.lastProgress = time.Now()
	for {
		if stopped(stop) {
			return
		}
		if !sleepWithStop(stop, e.tick()) {
			return
		}
	}
}

func (e *Emitter) ClickCount() int64 {
	return e.clickCount.Load()
}

// tick clicks each active side once and returns how long to sleep.
func (e *Emitter) tick() time.Duration {
	if !e.runtime.IsRunning() {
		return e.timing.EmitterStopped
	}

	snap := e.settings.Snapshot()
	anyActive := false
	for _, side := range Sides {
		if !e.runtime.IsActive(side) {
			continue
		}
		anyActive = true
		e.click(side)
	}
	if !anyActive {
		return e.timing.EmitterIdle
	}

	if now := time.Now(); now.Sub(e.lastProgress) >= time.Second {
		e.logger.Debug("Clicks sent", "count", e.clickCount.Load())
		e.lastProgress = now
	}
	return e.interval(snap)
}

func (e *Emitter) click(side Side) {
	code := side.ButtonCode()
	err := e.writeEvents(
		Event{Type: EventTypeKey, Code: code, Value: 1},
		Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
		Event{Type: EventTypeKey, Code: code, Value: 0},
		Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
	)
	if err != nil {
		e.logger.Warn("Failed to emit click", "side", side, "err", err)
		return
	}
	e.clickCount.Add(1)
}

// interval is the pause after a tick with clicks, optionally perturbed by up
// to 10% either way.
func (e *Emitter) interval(snap SettingsSnapshot) time.Duration {
	base := ClickInterval(snap.ClickSpeedMS)
	if !snap.Randomize {
		return base
	}
	variation := base / 10
	if variation <= 0 {
		return base
	}
	offset := time.Duration(e.rng.Int63n(int64(2*variation)+1)) - variation
	next := base + offset
	if next < time.Millisecond {
		next = time.Millisecond
	}
	return next
}

func (e *Emitter) writeEvents(events ...Event) error {
	e.injectorMu.Lock()
	defer e.injectorMu.Unlock()
	err := e.injector.WriteEvents(events...)
	e.trackButtons(events, err)
	return err
}

// trackButtons remembers which buttons may still be held. After a failed
// write any button it touched is treated as held.
func (e *Emitter) trackButtons(events []Event, err error) {
	for _, event := range events {
		if event.Type != EventTypeKey {
			continue
		}
		for _, side := range Sides {
			if event.Code != side.ButtonCode() {
				continue
			}
			switch {
			case err != nil:
				e.buttonDown[side].Store(true)
			case event.Value == 0:
				e.buttonDown[side].Store(false)
			default:
				e.buttonDown[side].Store(true)
			}
		}
	}
}

// releaseButtons sends a button-up for anything that may still be held.
func (e *Emitter) releaseButtons() {
	for _, side := range Sides {
		if !e.buttonDown[side].Load() {
			continue
		}
		code := side.ButtonCode()
		if err := e.writeEvents(
			Event{Type: EventTypeKey, Code: code, Value: 0},
			Event{Type: EventTypeSyn, Code: SynReportCode, Value: 0},
		); err != nil {
			e.logger.Warn("Failed to release button", "side", side, "err", err)
		}
	}
}
