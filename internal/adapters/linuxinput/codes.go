//go:build linux

package linuxinput

import (
	evdev "github.com/holoplot/go-evdev"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

// Hotkey codes share the kernel's EV_KEY numbering, so evdev codes convert
// without a table.
func toHotkeyCode(code evdev.EvCode) hotkey.Code {
	return hotkey.Code(code)
}
