//go:build linux

package linuxinput

import (
	"errors"
	"fmt"
	"sync"

	evdev "github.com/holoplot/go-evdev"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
)

const injectorName = "autoclicker-virtual-mouse"

var errInjectorClosed = errors.New("uinput device closed")

// Injector writes clicks through a uinput mouse.
type Injector struct {
	mu  sync.Mutex
	dev *evdev.InputDevice
}

// NewInjector creates the uinput device. It reports relative axes so
// libinput classifies it as a pointer, but only button events are written.
func NewInjector() (*Injector, error) {
	id := evdev.InputID{
		BusType: uint16(evdev.BUS_VIRTUAL),
		Vendor:  0x1,
		Product: 0x1,
		Version: 1,
	}
	capabilities := map[evdev.EvType][]evdev.EvCode{
		evdev.EV_KEY: {evdev.BTN_LEFT, evdev.BTN_RIGHT},
		evdev.EV_REL: {evdev.REL_X, evdev.REL_Y},
	}
	dev, err := evdev.CreateDevice(injectorName, id, capabilities)
	if err != nil {
		return nil, fmt.Errorf("create uinput device: %w", err)
	}
	return &Injector{dev: dev}, nil
}

func (i *Injector) WriteEvents(events ...autoclicker.Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.dev == nil {
		return errInjectorClosed
	}
	for _, event := range events {
		ev := evdev.InputEvent{
			Type:  evdev.EvType(event.Type),
			Code:  evdev.EvCode(event.Code),
			Value: event.Value,
		}
		if err := i.dev.WriteOne(&ev); err != nil {
			return fmt.Errorf("write %s: %w", injectorName, err)
		}
	}
	return nil
}

func (i *Injector) Close() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.dev == nil {
		return nil
	}
	err := i.dev.Close()
	i.dev = nil
	return err
}
