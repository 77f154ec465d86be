//go:build linux

package linuxinput

import (
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

const (
	synDropped evdev.EvCode = 3
	// maxDrain bounds how many events one poll reads from a single device.
	maxDrain = 512
)

// keyTracker follows which EV_KEY codes one device reports as down. After
// SYN_DROPPED it ignores events up to the next SYN_REPORT and then asks for
// a resync from the kernel key state.
type keyTracker struct {
	held       map[evdev.EvCode]struct{}
	dropping   bool
	needResync bool
}

func newKeyTracker() *keyTracker {
	return &keyTracker{held: make(map[evdev.EvCode]struct{}), needResync: true}
}

func (k *keyTracker) apply(event evdev.InputEvent) {
	switch event.Type {
	case evdev.EV_KEY:
		if k.dropping {
			return
		}
		if event.Value == 0 {
			delete(k.held, event.Code)
			return
		}
		k.held[event.Code] = struct{}{}
	case evdev.EV_SYN:
		switch event.Code {
		case synDropped:
			k.dropping = true
		case evdev.SYN_REPORT:
			if k.dropping {
				k.dropping = false
				k.needResync = true
			}
		}
	}
}

// resync replaces the held set with the state read from the device.
func (k *keyTracker) resync(read func() (evdev.StateMap, error)) error {
	state, err := read()
	if err != nil {
		return err
	}
	clear(k.held)
	for code, down := range state {
		if down {
			k.held[code] = struct{}{}
		}
	}
	k.needResync = false
	return nil
}

type sourceDevice struct {
	dev  *evdev.InputDevice
	keys *keyTracker
}

func (sd *sourceDevice) keyState() (evdev.StateMap, error) {
	return sd.dev.State(evdev.EV_KEY)
}

// Source reads every physical keyboard and mouse under /dev/input and
// reports the union of held keys and buttons.
type Source struct {
	logger autoclicker.Logger

	mu      sync.Mutex
	devices []*sourceDevice
	closed  bool
}

func NewSource(logger autoclicker.Logger) (*Source, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}
	devices, err := openKeyDevices()
	if err != nil {
		return nil, err
	}

	source := &Source{logger: logger}
	for _, dev := range devices {
		name, _ := dev.Name()
		logger.Info("Using source device", "path", dev.Path(), "name", name)
		source.devices = append(source.devices, &sourceDevice{dev: dev, keys: newKeyTracker()})
	}
	return source, nil
}

func (s *Source) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed && len(s.devices) > 0
}

// Poll drains pending events from every device and returns what is held now.
// Devices that disappear are dropped; the poll fails once none remain.
func (s *Source) Poll() (hotkey.Pressed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return hotkey.Pressed{}, fmt.Errorf("input source closed")
	}

	pressed := hotkey.NewPressed()
	live := s.devices[:0]
	for _, sd := range s.devices {
		if err := s.drain(sd); err != nil {
			s.logger.Warn("Input device lost", "path", sd.dev.Path(), "err", err)
			_ = sd.dev.Close()
			continue
		}
		s.syncKeys(sd)
		for code := range sd.keys.held {
			pressed.Add(toHotkeyCode(code))
		}
		live = append(live, sd)
	}
	s.devices = live

	if len(s.devices) == 0 {
		return pressed, ErrNoDevices
	}
	return pressed, nil
}

func (s *Source) drain(sd *sourceDevice) error {
	for i := 0; i < maxDrain; i++ {
		event, err := sd.dev.ReadOne()
		if err != nil {
			if isWouldBlock(err) {
				return nil
			}
			if isDeviceGone(err) {
				return err
			}
			s.logger.Debug("Read failed", "path", sd.dev.Path(), "err", err)
			return nil
		}
		if event == nil {
			return nil
		}
		sd.keys.apply(*event)
	}
	return nil
}

func (s *Source) syncKeys(sd *sourceDevice) {
	if !sd.keys.needResync {
		return
	}
	if err := sd.keys.resync(sd.keyState); err != nil {
		s.logger.Debug("Key state read failed", "path", sd.dev.Path(), "err", err)
	}
}

func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	for _, sd := range s.devices {
		_ = sd.dev.Close()
	}
	s.devices = nil
	return nil
}
