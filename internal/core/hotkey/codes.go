package hotkey

import (
	"sort"
	"strconv"
)

// Code identifies a physical key or mouse button using Linux input-event
// numbering. Every platform adapter translates its native codes into this space.
type Code uint16

const (
	BtnLeft   Code = 0x110
	BtnRight  Code = 0x111
	BtnMiddle Code = 0x112
	BtnSide   Code = 0x113
	BtnExtra  Code = 0x114
)

const (
	KeyEsc        Code = 1
	Key1          Code = 2
	Key2          Code = 3
	Key3          Code = 4
	Key4          Code = 5
	Key5          Code = 6
	Key6          Code = 7
	Key7          Code = 8
	Key8          Code = 9
	Key9          Code = 10
	Key0          Code = 11
	KeyMinus      Code = 12
	KeyEqual      Code = 13
	KeyBackspace  Code = 14
	KeyTab        Code = 15
	KeyQ          Code = 16
	KeyW          Code = 17
	KeyE          Code = 18
	KeyR          Code = 19
	KeyT          Code = 20
	KeyY          Code = 21
	KeyU          Code = 22
	KeyI          Code = 23
	KeyO          Code = 24
	KeyP          Code = 25
	KeyLeftBrace  Code = 26
	KeyRightBrace Code = 27
	KeyEnter      Code = 28
	KeyLeftCtrl   Code = 29
	KeyA          Code = 30
	KeyS          Code = 31
	KeyD          Code = 32
	KeyF          Code = 33
	KeyG          Code = 34
	KeyH          Code = 35
	KeyJ          Code = 36
	KeyK          Code = 37
	KeyL          Code = 38
	KeySemicolon  Code = 39
	KeyApostrophe Code = 40
	KeyGrave      Code = 41
	KeyLeftShift  Code = 42
	KeyBackslash  Code = 43
	KeyZ          Code = 44
	KeyX          Code = 45
	KeyC          Code = 46
	KeyV          Code = 47
	KeyB          Code = 48
	KeyN          Code = 49
	KeyM          Code = 50
	KeyComma      Code = 51
	KeyDot        Code = 52
	KeySlash      Code = 53
	KeyRightShift Code = 54
	KeyKPAsterisk Code = 55
	KeyLeftAlt    Code = 56
	KeySpace      Code = 57
	KeyCapsLock   Code = 58
	KeyF1         Code = 59
	KeyF2         Code = 60
	KeyF3         Code = 61
	KeyF4         Code = 62
	KeyF5         Code = 63
	KeyF6         Code = 64
	KeyF7         Code = 65
	KeyF8         Code = 66
	KeyF9         Code = 67
	KeyF10        Code = 68
	KeyNumLock    Code = 69
	KeyScrollLock Code = 70
	KeyKP7        Code = 71
	KeyKP8        Code = 72
	KeyKP9        Code = 73
	KeyKPMinus    Code = 74
	KeyKP4        Code = 75
	KeyKP5        Code = 76
	KeyKP6        Code = 77
	KeyKPPlus     Code = 78
	KeyKP1        Code = 79
	KeyKP2        Code = 80
	KeyKP3        Code = 81
	KeyKP0        Code = 82
	KeyKPDot      Code = 83
	KeyF11        Code = 87
	KeyF12        Code = 88
	KeyKPEnter    Code = 96
	KeyRightCtrl  Code = 97
	KeyKPSlash    Code = 98
	KeySysRq      Code = 99
	KeyRightAlt   Code = 100
	KeyHome       Code = 102
	KeyUp         Code = 103
	KeyPageUp     Code = 104
	KeyLeft       Code = 105
	KeyRight      Code = 106
	KeyEnd        Code = 107
	KeyDown       Code = 108
	KeyPageDown   Code = 109
	KeyInsert     Code = 110
	KeyDelete     Code = 111
	KeyMute       Code = 113
	KeyVolumeDown Code = 114
	KeyVolumeUp   Code = 115
	KeyPause      Code = 119
	KeyLeftMeta   Code = 125
	KeyRightMeta  Code = 126
	KeyMenu       Code = 139
	KeyF13        Code = 183
	KeyF14        Code = 184
	KeyF15        Code = 185
	KeyF16        Code = 186
	KeyF17        Code = 187
	KeyF18        Code = 188
	KeyF19        Code = 189
	KeyF20        Code = 190
	KeyF21        Code = 191
	KeyF22        Code = 192
	KeyF23        Code = 193
	KeyF24        Code = 194
	KeyPrint      Code = 210
)

var codeNames = map[Code]string{
	BtnLeft:   "BTN_LEFT",
	BtnRight:  "BTN_RIGHT",
	BtnMiddle: "BTN_MIDDLE",
	BtnSide:   "BTN_SIDE",
	BtnExtra:  "BTN_EXTRA",

	KeyEsc:        "KEY_ESC",
	Key1:          "KEY_1",
	Key2:          "KEY_2",
	Key3:          "KEY_3",
	Key4:          "KEY_4",
	Key5:          "KEY_5",
	Key6:          "KEY_6",
	Key7:          "KEY_7",
	Key8:          "KEY_8",
	Key9:          "KEY_9",
	Key0:          "KEY_0",
	KeyMinus:      "KEY_MINUS",
	KeyEqual:      "KEY_EQUAL",
	KeyBackspace:  "KEY_BACKSPACE",
	KeyTab:        "KEY_TAB",
	KeyQ:          "KEY_Q",
	KeyW:          "KEY_W",
	KeyE:          "KEY_E",
	KeyR:          "KEY_R",
	KeyT:          "KEY_T",
	KeyY:          "KEY_Y",
	KeyU:          "KEY_U",
	KeyI:          "KEY_I",
	KeyO:          "KEY_O",
	KeyP:          "KEY_P",
	KeyLeftBrace:  "KEY_LEFTBRACE",
	KeyRightBrace: "KEY_RIGHTBRACE",
	KeyEnter:      "KEY_ENTER",
	KeyLeftCtrl:   "KEY_LEFTCTRL",
	KeyA:          "KEY_A",
	KeyS:          "KEY_S",
	KeyD:          "KEY_D",
	KeyF:          "KEY_F",
	KeyG:          "KEY_G",
	KeyH:          "KEY_H",
	KeyJ:          "KEY_J",
	KeyK:          "KEY_K",
	KeyL:          "KEY_L",
	KeySemicolon:  "KEY_SEMICOLON",
	KeyApostrophe: "KEY_APOSTROPHE",
	KeyGrave:      "KEY_GRAVE",
	KeyLeftShift:  "KEY_LEFTSHIFT",
	KeyBackslash:  "KEY_BACKSLASH",
	KeyZ:          "KEY_Z",
	KeyX:          "KEY_X",
	KeyC:          "KEY_C",
	KeyV:          "KEY_V",
	KeyB:          "KEY_B",
	KeyN:          "KEY_N",
	KeyM:          "KEY_M",
	KeyComma:      "KEY_COMMA",
	KeyDot:        "KEY_DOT",
	KeySlash:      "KEY_SLASH",
	KeyRightShift: "KEY_RIGHTSHIFT",
	KeyKPAsterisk: "KEY_KPASTERISK",
	KeyLeftAlt:    "KEY_LEFTALT",
	KeySpace:      "KEY_SPACE",
	KeyCapsLock:   "KEY_CAPSLOCK",
	KeyF1:         "KEY_F1",
	KeyF2:         "KEY_F2",
	KeyF3:         "KEY_F3",
	KeyF4:         "KEY_F4",
	KeyF5:         "KEY_F5",
	KeyF6:         "KEY_F6",
	KeyF7:         "KEY_F7",
	KeyF8:         "KEY_F8",
	KeyF9:         "KEY_F9",
	KeyF10:        "KEY_F10",
	KeyNumLock:    "KEY_NUMLOCK",
	KeyScrollLock: "KEY_SCROLLLOCK",
	KeyKP7:        "KEY_KP7",
	KeyKP8:        "KEY_KP8",
	KeyKP9:        "KEY_KP9",
	KeyKPMinus:    "KEY_KPMINUS",
	KeyKP4:        "KEY_KP4",
	KeyKP5:        "KEY_KP5",
	KeyKP6:        "KEY_KP6",
	KeyKPPlus:     "KEY_KPPLUS",
	KeyKP1:        "KEY_KP1",
	KeyKP2:        "KEY_KP2",
	KeyKP3:        "KEY_KP3",
	KeyKP0:        "KEY_KP0",
	KeyKPDot:      "KEY_KPDOT",
	KeyF11:        "KEY_F11",
	KeyF12:        "KEY_F12",
	KeyKPEnter:    "KEY_KPENTER",
	KeyRightCtrl:  "KEY_RIGHTCTRL",
	KeyKPSlash:    "KEY_KPSLASH",
	KeySysRq:      "KEY_SYSRQ",
	KeyRightAlt:   "KEY_RIGHTALT",
	KeyHome:       "KEY_HOME",
	KeyUp:         "KEY_UP",
	KeyPageUp:     "KEY_PAGEUP",
	KeyLeft:       "KEY_LEFT",
	KeyRight:      "KEY_RIGHT",
	KeyEnd:        "KEY_END",
	KeyDown:       "KEY_DOWN",
	KeyPageDown:   "KEY_PAGEDOWN",
	KeyInsert:     "KEY_INSERT",
	KeyDelete:     "KEY_DELETE",
	KeyMute:       "KEY_MUTE",
	KeyVolumeDown: "KEY_VOLUMEDOWN",
	KeyVolumeUp:   "KEY_VOLUMEUP",
	KeyPause:      "KEY_PAUSE",
	KeyLeftMeta:   "KEY_LEFTMETA",
	KeyRightMeta:  "KEY_RIGHTMETA",
	KeyMenu:       "KEY_MENU",
	KeyF13:        "KEY_F13",
	KeyF14:        "KEY_F14",
	KeyF15:        "KEY_F15",
	KeyF16:        "KEY_F16",
	KeyF17:        "KEY_F17",
	KeyF18:        "KEY_F18",
	KeyF19:        "KEY_F19",
	KeyF20:        "KEY_F20",
	KeyF21:        "KEY_F21",
	KeyF22:        "KEY_F22",
	KeyF23:        "KEY_F23",
	KeyF24:        "KEY_F24",
	KeyPrint:      "KEY_PRINT",
}

var (
	nameToCode map[string]Code
	knownCodes []Code
)

func init() {
	nameToCode = make(map[string]Code, len(codeNames)+2)
	knownCodes = make([]Code, 0, len(codeNames))
	for code, name := range codeNames {
		nameToCode[name] = code
		knownCodes = append(knownCodes, code)
	}
	nameToCode["BTN_BACK"] = BtnSide
	nameToCode["BTN_FORWARD"] = BtnExtra
	sort.Slice(knownCodes, func(i, j int) bool { return knownCodes[i] < knownCodes[j] })
}

// IsButton reports whether the code is a mouse button rather than a key.
func (c Code) IsButton() bool {
	return c >= BtnLeft && c <= BtnExtra
}

// String returns the canonical KEY_*/BTN_* name, or the decimal value for
// codes outside the table.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return strconv.Itoa(int(c))
}

// Known returns every code with a canonical name, sorted ascending.
func Known() []Code {
	out := make([]Code, len(knownCodes))
	copy(out, knownCodes)
	return out
}

// Lookup resolves a canonical KEY_*/BTN_* name. The name must already be upper case.
func Lookup(name string) (Code, bool) {
	code, ok := nameToCode[name]
	return code, ok
}
