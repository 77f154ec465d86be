//go:build darwin

package macinput

/*
#cgo LDFLAGS: -framework CoreGraphics -framework ApplicationServices

#include <CoreGraphics/CoreGraphics.h>
#include <ApplicationServices/ApplicationServices.h>
#include <stdbool.h>

static bool keyDown(uint16_t key) {
    return CGEventSourceKeyState(kCGEventSourceStateCombinedSessionState, (CGKeyCode)key);
}

static bool buttonDown(uint32_t button) {
    return CGEventSourceButtonState(kCGEventSourceStateCombinedSessionState, (CGMouseButton)button);
}

static bool listenAllowed(void) {
    if (__builtin_available(macOS 10.15, *)) {
        return CGPreflightListenEventAccess();
    }
    return true;
}
*/
import "C"

import (
	"errors"
	"fmt"
	"sync"

	"github.com/go-vgo/robotgo"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

// ErrListenDenied means the process lacks Input Monitoring permission.
var ErrListenDenied = errors.New("input monitoring permission not granted")

// Source polls the combined session key and button state.
type Source struct {
	mu     sync.Mutex
	closed bool
}

func NewSource() (*Source, error) {
	if !bool(C.listenAllowed()) {
		return nil, ErrListenDenied
	}
	return &Source{}, nil
}

func (s *Source) Available() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.closed
}

func (s *Source) Poll() (hotkey.Pressed, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return hotkey.Pressed{}, fmt.Errorf("input source closed")
	}

	pressed := hotkey.NewPressed()
	for _, entry := range pollKeys {
		if bool(C.keyDown(C.uint16_t(entry.native))) {
			pressed.Add(entry.code)
		}
	}
	for _, entry := range pollButtons {
		if bool(C.buttonDown(C.uint32_t(entry.native))) {
			pressed.Add(entry.code)
		}
	}
	return pressed, nil
}

func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// Injector clicks through robotgo.
type Injector struct {
	mu sync.Mutex
}

func NewInjector() *Injector {
	return &Injector{}
}

func (i *Injector) WriteEvents(events ...autoclicker.Event) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	for _, event := range events {
		if event.Type != autoclicker.EventTypeKey {
			continue
		}
		button, ok := robotgoButton(event.Code)
		if !ok {
			continue
		}
		var err error
		switch event.Value {
		case 1:
			err = robotgo.Toggle(button)
		case 0:
			err = robotgo.Toggle(button, "up")
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("robotgo toggle %s: %w", button, err)
		}
	}
	return nil
}

func (i *Injector) Close() error {
	return nil
}
