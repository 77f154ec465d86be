//go:build windows

package wininput

import (
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

const (
	inputMouse = 0

	mouseeventfLeftDown  = 0x0002
	mouseeventfLeftUp    = 0x0004
	mouseeventfRightDown = 0x0008
	mouseeventfRightUp   = 0x0010
)

var (
	user32 = windows.NewLazySystemDLL("user32.dll")

	procSendInput        = user32.NewProc("SendInput")
	procGetAsyncKeyState = user32.NewProc("GetAsyncKeyState")
)

type mouseInput struct {
	Dx          int32
	Dy          int32
	MouseData   uint32
	DwFlags     uint32
	Time        uint32
	DwExtraInfo uintptr
}

type input struct {
	Type uint32
	Mi   mouseInput
}

// Source polls GetAsyncKeyState for every mapped virtual key. It needs no
// special privileges.
type Source struct {
	mu     sync.Mutex
	closed bool
}

func NewSource() (*Source, error) {
	if err := procGetAsyncKeyState.Find(); err != nil {
		return nil, fmt.Errorf("GetAsyncKeyState unavailable: %w", err)
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
	for _, entry := range pollVKs {
		if isVKDown(entry.vk) {
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

func isVKDown(vk uint32) bool {
	state, _, _ := procGetAsyncKeyState.Call(uintptr(vk))
	return uint16(state)&0x8000 != 0
}

// Injector sends mouse buttons with SendInput.
type Injector struct{}

func NewInjector() (*Injector, error) {
	if err := procSendInput.Find(); err != nil {
		return nil, fmt.Errorf("SendInput unavailable: %w", err)
	}
	return &Injector{}, nil
}

func (i *Injector) WriteEvents(events ...autoclicker.Event) error {
	inputs := make([]input, 0, len(events))
	for _, event := range events {
		if event.Type != autoclicker.EventTypeKey {
			continue
		}
		flags, ok := buttonFlags(event.Code, event.Value)
		if !ok {
			continue
		}
		inputs = append(inputs, input{
			Type: inputMouse,
			Mi:   mouseInput{DwFlags: flags},
		})
	}
	if len(inputs) == 0 {
		return nil
	}

	sent, _, callErr := procSendInput.Call(
		uintptr(len(inputs)),
		uintptr(unsafe.Pointer(&inputs[0])),
		unsafe.Sizeof(inputs[0]),
	)
	if sent != uintptr(len(inputs)) {
		if callErr != nil && callErr != syscall.Errno(0) {
			return callErr
		}
		return fmt.Errorf("SendInput sent %d of %d inputs", sent, len(inputs))
	}
	return nil
}

func (i *Injector) Close() error {
	return nil
}

func buttonFlags(code uint16, value int32) (uint32, bool) {
	switch {
	case code == autoclicker.LeftButtonCode && value == 1:
		return mouseeventfLeftDown, true
	case code == autoclicker.LeftButtonCode && value == 0:
		return mouseeventfLeftUp, true
	case code == autoclicker.RightButtonCode && value == 1:
		return mouseeventfRightDown, true
	case code == autoclicker.RightButtonCode && value == 0:
		return mouseeventfRightUp, true
	default:
		return 0, false
	}
}

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
}

func ListInputDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{
		{Path: "windows-global", Name: "Windows Global Input", IsPointer: true},
	}, nil
}
