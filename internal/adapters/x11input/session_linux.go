//go:build linux

package x11input

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgb/xtest"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/keybind"

	"github.com/LuggaPugga/autoclicker/internal/core/autoclicker"
	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

type DeviceInfo struct {
	Path      string
	Name      string
	IsVirtual bool
	IsPointer bool
}

// Session is one X11 connection shared by the input source and the XTEST
// injector.
type Session struct {
	xu      *xgbutil.XUtil
	conn    *xgb.Conn
	rootWin xproto.Window
	logger  autoclicker.Logger

	keycodes map[byte]hotkey.Code

	mu       sync.Mutex
	sideHeld map[byte]bool
	closed   bool

	grabMu     sync.Mutex
	grabbed    []byte
	injectMu   sync.Mutex
	eventsDone chan struct{}
}

func NewSession(logger autoclicker.Logger) (*Session, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	xu, err := xgbutil.NewConn()
	if err != nil {
		return nil, err
	}
	conn := xu.Conn()
	if conn == nil {
		return nil, fmt.Errorf("failed to open X11 connection")
	}
	if err := xtest.Init(conn); err != nil {
		conn.Close()
		return nil, err
	}
	keybind.Initialize(xu)

	s := &Session{
		xu:         xu,
		conn:       conn,
		rootWin:    xu.RootWin(),
		logger:     logger,
		keycodes:   buildKeycodeMap(xu),
		sideHeld:   make(map[byte]bool),
		eventsDone: make(chan struct{}),
	}
	logger.Debug("Resolved X11 keycodes", "count", len(s.keycodes))

	go s.eventLoop()
	return s, nil
}

func buildKeycodeMap(xu *xgbutil.XUtil) map[byte]hotkey.Code {
	out := make(map[byte]hotkey.Code)
	for _, code := range hotkey.Known() {
		if code.IsButton() {
			continue
		}
		for _, name := range keysymNames(code) {
			for _, keycode := range keybind.StrToKeycodes(xu, name) {
				if _, taken := out[byte(keycode)]; !taken {
					out[byte(keycode)] = code
				}
			}
		}
	}
	return out
}

func (s *Session) eventLoop() {
	defer close(s.eventsDone)
	for {
		event, xerr := s.conn.WaitForEvent()
		if event == nil && xerr == nil {
			return
		}
		if xerr != nil {
			if s.isClosed() {
				return
			}
			s.logger.Debug("X11 event error", "err", xerr)
			continue
		}

		switch ev := event.(type) {
		case xproto.ButtonPressEvent:
			s.setSideHeld(byte(ev.Detail), true)
		case xproto.ButtonReleaseEvent:
			s.setSideHeld(byte(ev.Detail), false)
		}
	}
}

func (s *Session) setSideHeld(button byte, held bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sideHeld[button] = held
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) Source() *Source {
	return &Source{s: s}
}

func (s *Session) Injector() *Injector {
	return &Injector{s: s}
}

// bind grabs the side buttons among codes and releases any other grab.
// Buttons 8 and 9 are missing from the core pointer mask, so they are only
// seen through passive grabs on the root window, which also hide them from
// every other client.
func (s *Session) bind(codes []hotkey.Code) error {
	want := grabButtons(codes)

	s.grabMu.Lock()
	defer s.grabMu.Unlock()
	if s.isClosed() {
		return nil
	}

	var errs []error
	kept := s.grabbed[:0]
	for _, button := range s.grabbed {
		if slices.Contains(want, button) {
			kept = append(kept, button)
			continue
		}
		if err := xproto.UngrabButtonChecked(s.conn, button, s.rootWin, xproto.ModMaskAny).Check(); err != nil {
			errs = append(errs, fmt.Errorf("ungrab button %d: %w", button, err))
		}
		s.setSideHeld(button, false)
		s.logger.Debug("Released X11 mouse button", "button", button)
	}
	s.grabbed = kept

	for _, button := range want {
		if slices.Contains(s.grabbed, button) {
			continue
		}
		if err := xproto.GrabButtonChecked(
			s.conn,
			false,
			s.rootWin,
			xproto.EventMaskButtonPress|xproto.EventMaskButtonRelease,
			xproto.GrabModeAsync,
			xproto.GrabModeAsync,
			xproto.WindowNone,
			xproto.CursorNone,
			button,
			xproto.ModMaskAny,
		).Check(); err != nil {
			errs = append(errs, fmt.Errorf("grab button %d: %w", button, err))
			continue
		}
		s.grabbed = append(s.grabbed, button)
		s.logger.Debug("Grabbed X11 mouse button", "button", button)
	}
	return errors.Join(errs...)
}

func (s *Session) Close() error {
	s.grabMu.Lock()
	defer s.grabMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	for _, button := range s.grabbed {
		xproto.UngrabButton(s.conn, button, s.rootWin, xproto.ModMaskAny)
	}
	s.grabbed = nil
	s.conn.Close()
	<-s.eventsDone
	return nil
}

var _ autoclicker.BindingSource = (*Source)(nil)

// Source reports held keys from the X keymap and held buttons from the
// pointer state.
type Source struct {
	s *Session
}

func (src *Source) Available() bool {
	return !src.s.isClosed()
}

func (src *Source) Poll() (hotkey.Pressed, error) {
	s := src.s
	if s.isClosed() {
		return hotkey.Pressed{}, errors.New("x11 session closed")
	}

	pressed := hotkey.NewPressed()
	keymap, err := xproto.QueryKeymap(s.conn).Reply()
	if err != nil {
		return pressed, fmt.Errorf("query keymap: %w", err)
	}
	keymapHeld(keymap.Keys, s.keycodes, &pressed)

	pointer, err := xproto.QueryPointer(s.conn, s.rootWin).Reply()
	if err != nil {
		return pressed, fmt.Errorf("query pointer: %w", err)
	}
	for button, mask := range map[byte]uint16{
		xButtonLeft:   xproto.KeyButMaskButton1,
		xButtonMiddle: xproto.KeyButMaskButton2,
		xButtonRight:  xproto.KeyButMaskButton3,
	} {
		if pointer.Mask&mask != 0 {
			code, _ := xButtonToCode(button)
			pressed.Add(code)
		}
	}

	s.mu.Lock()
	for button, held := range s.sideHeld {
		if !held {
			continue
		}
		if code, ok := xButtonToCode(button); ok {
			pressed.Add(code)
		}
	}
	s.mu.Unlock()
	return pressed, nil
}

// Bind implements autoclicker.BindingSource.
func (src *Source) Bind(codes []hotkey.Code) error {
	return src.s.bind(codes)
}

func (src *Source) Close() error {
	return src.s.Close()
}

// Injector sends button presses through XTEST.
type Injector struct {
	s *Session
}

func (i *Injector) WriteEvents(events ...autoclicker.Event) error {
	s := i.s
	s.injectMu.Lock()
	defer s.injectMu.Unlock()
	if s.isClosed() {
		return errors.New("x11 session closed")
	}

	dirty := false
	for _, event := range events {
		if event.Type != autoclicker.EventTypeKey {
			continue
		}
		button, ok := codeToXButton(hotkey.Code(event.Code))
		if !ok {
			continue
		}

		var eventType byte
		switch event.Value {
		case 1:
			eventType = xproto.ButtonPress
		case 0:
			eventType = xproto.ButtonRelease
		default:
			continue
		}

		if err := xtest.FakeInputChecked(
			s.conn,
			eventType,
			button,
			xproto.TimeCurrentTime,
			s.rootWin,
			0,
			0,
			0,
		).Check(); err != nil {
			return err
		}
		dirty = true
	}
	if dirty {
		s.conn.Sync()
	}
	return nil
}

// Close is a no-op; the session is closed through the source.
func (i *Injector) Close() error {
	return nil
}

func ListInputDevices() ([]DeviceInfo, error) {
	return []DeviceInfo{
		{
			Path:      "x11-global",
			Name:      "X11 Core Keyboard and Pointer",
			IsVirtual: false,
			IsPointer: true,
		},
	}, nil
}
