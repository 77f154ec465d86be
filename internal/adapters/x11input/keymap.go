package x11input

import (
	"slices"
	"strings"

	"github.com/LuggaPugga/autoclicker/internal/core/hotkey"
)

// Core X button numbers for the mouse buttons a hotkey can use.
const (
	xButtonLeft    byte = 1
	xButtonMiddle  byte = 2
	xButtonRight   byte = 3
	xButtonBack    byte = 8
	xButtonForward byte = 9
)

var xButtonCodes = map[byte]hotkey.Code{
	xButtonLeft:    hotkey.BtnLeft,
	xButtonMiddle:  hotkey.BtnMiddle,
	xButtonRight:   hotkey.BtnRight,
	xButtonBack:    hotkey.BtnSide,
	xButtonForward: hotkey.BtnExtra,
}

func xButtonToCode(button byte) (hotkey.Code, bool) {
	code, ok := xButtonCodes[button]
	return code, ok
}

func codeToXButton(code hotkey.Code) (byte, bool) {
	for button, c := range xButtonCodes {
		if c == code {
			return button, true
		}
	}
	return 0, false
}

// grabButtons returns, sorted and without duplicates, the X buttons among
// codes that can only be observed through a grab.
func grabButtons(codes []hotkey.Code) []byte {
	var out []byte
	for _, code := range codes {
		button, ok := codeToXButton(code)
		if !ok || button < xButtonBack || slices.Contains(out, button) {
			continue
		}
		out = append(out, button)
	}
	slices.Sort(out)
	return out
}

var xKeysymNames = map[string][]string{
	"ESC":        {"Escape"},
	"ENTER":      {"Return"},
	"TAB":        {"Tab"},
	"SPACE":      {"space"},
	"BACKSPACE":  {"BackSpace"},
	"LEFTSHIFT":  {"Shift_L"},
	"RIGHTSHIFT": {"Shift_R"},
	"LEFTCTRL":   {"Control_L"},
	"RIGHTCTRL":  {"Control_R"},
	"LEFTALT":    {"Alt_L"},
	"RIGHTALT":   {"Alt_R", "ISO_Level3_Shift"},
	"LEFTMETA":   {"Super_L", "Meta_L"},
	"RIGHTMETA":  {"Super_R", "Meta_R"},
	"CAPSLOCK":   {"Caps_Lock"},
	"NUMLOCK":    {"Num_Lock"},
	"SCROLLLOCK": {"Scroll_Lock"},
	"PAGEUP":     {"Prior"},
	"PAGEDOWN":   {"Next"},
	"INSERT":     {"Insert"},
	"DELETE":     {"Delete"},
	"HOME":       {"Home"},
	"END":        {"End"},
	"UP":         {"Up"},
	"DOWN":       {"Down"},
	"LEFT":       {"Left"},
	"RIGHT":      {"Right"},
	"MENU":       {"Menu"},
	"COMPOSE":    {"Menu"},
	"PAUSE":      {"Pause"},
	"PRINT":      {"Print"},
	"SYSRQ":      {"Print", "Sys_Req"},
	"MINUS":      {"minus"},
	"EQUAL":      {"equal"},
	"LEFTBRACE":  {"bracketleft"},
	"RIGHTBRACE": {"bracketright"},
	"SEMICOLON":  {"semicolon"},
	"APOSTROPHE": {"apostrophe"},
	"GRAVE":      {"grave"},
	"BACKSLASH":  {"backslash"},
	"COMMA":      {"comma"},
	"DOT":        {"period"},
	"SLASH":      {"slash"},
	"KPPLUS":     {"KP_Add"},
	"KPMINUS":    {"KP_Subtract"},
	"KPASTERISK": {"KP_Multiply"},
	"KPSLASH":    {"KP_Divide"},
	"KPDOT":      {"KP_Decimal"},
	"KPENTER":    {"KP_Enter"},
}

// keysymNames lists the X keysym names that may produce code. Buttons and
// codes without an X equivalent return nil.
func keysymNames(code hotkey.Code) []string {
	name := code.String()
	if !strings.HasPrefix(name, "KEY_") {
		return nil
	}
	token := strings.TrimPrefix(name, "KEY_")

	if names, ok := xKeysymNames[token]; ok {
		return names
	}
	if len(token) == 1 && token[0] >= 'A' && token[0] <= 'Z' {
		return []string{strings.ToLower(token)}
	}
	if len(token) == 1 && token[0] >= '0' && token[0] <= '9' {
		return []string{token}
	}
	if strings.HasPrefix(token, "F") && isDigits(token[1:]) {
		return []string{token}
	}
	if strings.HasPrefix(token, "KP") && len(token) == 3 && token[2] >= '0' && token[2] <= '9' {
		return []string{"KP_" + token[2:]}
	}
	return nil
}

// keymapHeld decodes a QueryKeymap bitmap into the hotkey codes it holds.
func keymapHeld(keys []byte, keycodes map[byte]hotkey.Code, pressed *hotkey.Pressed) {
	for i, b := range keys {
		if b == 0 {
			continue
		}
		for bit := 0; bit < 8; bit++ {
			if b&(1<<bit) == 0 {
				continue
			}
			if code, ok := keycodes[byte(i*8+bit)]; ok {
				pressed.Add(code)
			}
		}
	}
}

func isDigits(value string) bool {
	if value == "" {
		return false
	}
	for _, r := range value {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
