package macinput

import (
	"sort"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

// Carbon virtual key codes (kVK_*) for the keys a hotkey can name.
var codeToMacKey = map[hotkey.Code]uint16{
	hotkey.KeyA:          0x00,
	hotkey.KeyS:          0x01,
	hotkey.KeyD:          0x02,
	hotkey.KeyF:          0x03,
	hotkey.KeyH:          0x04,
	hotkey.KeyG:          0x05,
	hotkey.KeyZ:          0x06,
	hotkey.KeyX:          0x07,
	hotkey.KeyC:          0x08,
	hotkey.KeyV:          0x09,
	hotkey.KeyB:          0x0B,
	hotkey.KeyQ:          0x0C,
	hotkey.KeyW:          0x0D,
	hotkey.KeyE:          0x0E,
	hotkey.KeyR:          0x0F,
	hotkey.KeyY:          0x10,
	hotkey.KeyT:          0x11,
	hotkey.Key1:          0x12,
	hotkey.Key2:          0x13,
	hotkey.Key3:          0x14,
	hotkey.Key4:          0x15,
	hotkey.Key6:          0x16,
	hotkey.Key5:          0x17,
	hotkey.KeyEqual:      0x18,
	hotkey.Key9:          0x19,
	hotkey.Key7:          0x1A,
	hotkey.KeyMinus:      0x1B,
	hotkey.Key8:          0x1C,
	hotkey.Key0:          0x1D,
	hotkey.KeyRightBrace: 0x1E,
	hotkey.KeyO:          0x1F,
	hotkey.KeyU:          0x20,
	hotkey.KeyLeftBrace:  0x21,
	hotkey.KeyI:          0x22,
	hotkey.KeyP:          0x23,
	hotkey.KeyEnter:      0x24,
	hotkey.KeyL:          0x25,
	hotkey.KeyJ:          0x26,
	hotkey.KeyApostrophe: 0x27,
	hotkey.KeyK:          0x28,
	hotkey.KeySemicolon:  0x29,
	hotkey.KeyBackslash:  0x2A,
	hotkey.KeyComma:      0x2B,
	hotkey.KeySlash:      0x2C,
	hotkey.KeyN:          0x2D,
	hotkey.KeyM:          0x2E,
	hotkey.KeyDot:        0x2F,
	hotkey.KeyTab:        0x30,
	hotkey.KeySpace:      0x31,
	hotkey.KeyGrave:      0x32,
	hotkey.KeyBackspace:  0x33,
	hotkey.KeyEsc:        0x35,
	hotkey.KeyRightMeta:  0x36,
	hotkey.KeyLeftMeta:   0x37,
	hotkey.KeyLeftShift:  0x38,
	hotkey.KeyCapsLock:   0x39,
	hotkey.KeyLeftAlt:    0x3A,
	hotkey.KeyLeftCtrl:   0x3B,
	hotkey.KeyRightShift: 0x3C,
	hotkey.KeyRightAlt:   0x3D,
	hotkey.KeyRightCtrl:  0x3E,
	hotkey.KeyF17:        0x40,
	hotkey.KeyKPDot:      0x41,
	hotkey.KeyKPAsterisk: 0x43,
	hotkey.KeyKPPlus:     0x45,
	hotkey.KeyVolumeUp:   0x48,
	hotkey.KeyVolumeDown: 0x49,
	hotkey.KeyMute:       0x4A,
	hotkey.KeyKPSlash:    0x4B,
	hotkey.KeyKPEnter:    0x4C,
	hotkey.KeyKPMinus:    0x4E,
	hotkey.KeyF18:        0x4F,
	hotkey.KeyF19:        0x50,
	hotkey.KeyKP0:        0x52,
	hotkey.KeyKP1:        0x53,
	hotkey.KeyKP2:        0x54,
	hotkey.KeyKP3:        0x55,
	hotkey.KeyKP4:        0x56,
	hotkey.KeyKP5:        0x57,
	hotkey.KeyKP6:        0x58,
	hotkey.KeyKP7:        0x59,
	hotkey.KeyF20:        0x5A,
	hotkey.KeyKP8:        0x5B,
	hotkey.KeyKP9:        0x5C,
	hotkey.KeyF5:         0x60,
	hotkey.KeyF6:         0x61,
	hotkey.KeyF7:         0x62,
	hotkey.KeyF3:         0x63,
	hotkey.KeyF8:         0x64,
	hotkey.KeyF9:         0x65,
	hotkey.KeyF11:        0x67,
	hotkey.KeyF13:        0x69,
	hotkey.KeyF16:        0x6A,
	hotkey.KeyF14:        0x6B,
	hotkey.KeyF10:        0x6D,
	hotkey.KeyF12:        0x6F,
	hotkey.KeyF15:        0x71,
	hotkey.KeyInsert:     0x72,
	hotkey.KeyHome:       0x73,
	hotkey.KeyPageUp:     0x74,
	hotkey.KeyDelete:     0x75,
	hotkey.KeyF4:         0x76,
	hotkey.KeyEnd:        0x77,
	hotkey.KeyF2:         0x78,
	hotkey.KeyPageDown:   0x79,
	hotkey.KeyF1:         0x7A,
	hotkey.KeyLeft:       0x7B,
	hotkey.KeyRight:      0x7C,
	hotkey.KeyDown:       0x7D,
	hotkey.KeyUp:         0x7E,
}

// CGMouseButton numbers.
var codeToMacButton = map[hotkey.Code]uint32{
	hotkey.BtnLeft:   0,
	hotkey.BtnRight:  1,
	hotkey.BtnMiddle: 2,
	hotkey.BtnSide:   3,
	hotkey.BtnExtra:  4,
}

type pollEntry struct {
	native uint32
	code   hotkey.Code
}

func sortedEntries[T uint16 | uint32](table map[hotkey.Code]T) []pollEntry {
	out := make([]pollEntry, 0, len(table))
	for code, native := range table {
		out = append(out, pollEntry{native: uint32(native), code: code})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].code < out[j].code })
	return out
}

var (
	pollKeys    = sortedEntries(codeToMacKey)
	pollButtons = sortedEntries(codeToMacButton)
)

// robotgoButton names the robotgo mouse button for a click event code.
func robotgoButton(code uint16) (string, bool) {
	switch hotkey.Code(code) {
	case hotkey.BtnLeft:
		return "left", true
	case hotkey.BtnRight:
		return "right", true
	default:
		return "", false
	}
}
