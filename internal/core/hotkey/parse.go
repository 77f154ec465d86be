package hotkey

import (
	"strings"
	"sync"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ModifierPair is a modifier requirement satisfied by either physical side.
type ModifierPair struct {
	Left  Code
	Right Code
}

var (
	ModCtrl  = ModifierPair{Left: KeyLeftCtrl, Right: KeyRightCtrl}
	ModAlt   = ModifierPair{Left: KeyLeftAlt, Right: KeyRightAlt}
	ModShift = ModifierPair{Left: KeyLeftShift, Right: KeyRightShift}
	ModMeta  = ModifierPair{Left: KeyLeftMeta, Right: KeyRightMeta}
)

// modifierOrder is the display and storage order of modifiers.
var modifierOrder = []ModifierPair{ModCtrl, ModAlt, ModShift, ModMeta}

var modifierNames = map[ModifierPair]string{
	ModCtrl:  "Ctrl",
	ModAlt:   "Alt",
	ModShift: "Shift",
	ModMeta:  "Meta",
}

var modifierTokens = map[string]ModifierPair{
	"CTRL":    ModCtrl,
	"CONTROL": ModCtrl,
	"SHIFT":   ModShift,
	"ALT":     ModAlt,
	"META":    ModMeta,
	"SUPER":   ModMeta,
	"WIN":     ModMeta,
	"WINDOWS": ModMeta,
}

var keyAliases = map[string]Code{
	"ESCAPE":       KeyEsc,
	"ESC":          KeyEsc,
	"RETURN":       KeyEnter,
	"ENTER":        KeyEnter,
	"SPACE":        KeySpace,
	"TAB":          KeyTab,
	"BACKSPACE":    KeyBackspace,
	"BACK":         KeyBackspace,
	"DELETE":       KeyDelete,
	"DEL":          KeyDelete,
	"INSERT":       KeyInsert,
	"INS":          KeyInsert,
	"HOME":         KeyHome,
	"END":          KeyEnd,
	"PAGEUP":       KeyPageUp,
	"PGUP":         KeyPageUp,
	"PAGEDOWN":     KeyPageDown,
	"PGDN":         KeyPageDown,
	"PGDOWN":       KeyPageDown,
	"UP":           KeyUp,
	"ARROWUP":      KeyUp,
	"DOWN":         KeyDown,
	"ARROWDOWN":    KeyDown,
	"LEFT":         KeyLeft,
	"ARROWLEFT":    KeyLeft,
	"RIGHT":        KeyRight,
	"ARROWRIGHT":   KeyRight,
	"PRINTSCREEN":  KeyPrint,
	"PRTSC":        KeyPrint,
	"PRINT":        KeyPrint,
	"SCROLLLOCK":   KeyScrollLock,
	"PAUSE":        KeyPause,
	"BREAK":        KeyPause,
	"NUMLOCK":      KeyNumLock,
	"CAPSLOCK":     KeyCapsLock,
	"CAPS":         KeyCapsLock,
	"MENU":         KeyMenu,
	"MINUS":        KeyMinus,
	"EQUAL":        KeyEqual,
	"COMMA":        KeyComma,
	"PERIOD":       KeyDot,
	"DOT":          KeyDot,
	"SLASH":        KeySlash,
	"BACKSLASH":    KeyBackslash,
	"SEMICOLON":    KeySemicolon,
	"APOSTROPHE":   KeyApostrophe,
	"GRAVE":        KeyGrave,
	"MOUSEBUTTON4": BtnSide,
	"MOUSE4":       BtnSide,
	"MB4":          BtnSide,
	"XBUTTON1":     BtnSide,
	"MOUSEBUTTON5": BtnExtra,
	"MOUSE5":       BtnExtra,
	"MB5":          BtnExtra,
	"XBUTTON2":     BtnExtra,
}

// displayNames are the names Format prefers. Each one parses back to its code.
var displayNames = map[Code]string{
	KeyEsc:        "Escape",
	KeyEnter:      "Enter",
	KeySpace:      "Space",
	KeyTab:        "Tab",
	KeyBackspace:  "Backspace",
	KeyDelete:     "Delete",
	KeyInsert:     "Insert",
	KeyHome:       "Home",
	KeyEnd:        "End",
	KeyPageUp:     "PageUp",
	KeyPageDown:   "PageDown",
	KeyUp:         "Up",
	KeyDown:       "Down",
	KeyLeft:       "Left",
	KeyRight:      "Right",
	KeyPrint:      "PrintScreen",
	KeyScrollLock: "ScrollLock",
	KeyPause:      "Pause",
	KeyNumLock:    "NumLock",
	KeyCapsLock:   "CapsLock",
	KeyMenu:       "Menu",
	BtnSide:       "Mouse4",
	BtnExtra:      "Mouse5",
	KeyLeftCtrl:   "Ctrl",
	KeyLeftAlt:    "Alt",
	KeyLeftShift:  "Shift",
	KeyLeftMeta:   "Meta",
}

// Spec is a parsed hotkey: a set of modifier requirements plus one main input.
type Spec struct {
	Modifiers []ModifierPair
	Main      Code
}

// Valid reports whether the spec has a main input.
func (s Spec) Valid() bool {
	return s.Main != 0
}

func (s Spec) hasModifier(pair ModifierPair) bool {
	for _, m := range s.Modifiers {
		if m == pair {
			return true
		}
	}
	return false
}

// Parse resolves a hotkey string such as "Ctrl+Shift+A" or "Mouse4".
// Unknown tokens are ignored. The second result is false when no main input
// could be resolved.
func Parse(s string) (Spec, bool) {
	tokens := splitTokens(s)
	if len(tokens) == 0 {
		return Spec{}, false
	}

	if len(tokens) == 1 {
		if pair, ok := modifierTokens[tokens[0]]; ok {
			return Spec{Main: pair.Left}, true
		}
		code, ok := resolveKey(tokens[0])
		if !ok {
			return Spec{}, false
		}
		return Spec{Main: code}, true
	}

	var (
		spec Spec
		seen = make(map[ModifierPair]bool, len(modifierOrder))
	)
	for _, token := range tokens {
		if pair, ok := modifierTokens[token]; ok {
			seen[pair] = true
			continue
		}
		if code, ok := resolveKey(token); ok {
			spec.Main = code
		}
	}
	for _, pair := range modifierOrder {
		if seen[pair] {
			spec.Modifiers = append(spec.Modifiers, pair)
		}
	}
	if !spec.Valid() {
		return Spec{}, false
	}
	return spec, true
}

// Format renders a spec in the canonical human form, e.g. "Ctrl+Shift+A".
// The result parses back to an equal spec.
func Format(spec Spec) string {
	if !spec.Valid() {
		return ""
	}
	parts := make([]string, 0, len(spec.Modifiers)+1)
	for _, pair := range modifierOrder {
		if spec.hasModifier(pair) {
			parts = append(parts, modifierNames[pair])
		}
	}
	parts = append(parts, DisplayName(spec.Main))
	return strings.Join(parts, "+")
}

// DisplayName returns a short human name for a code that Parse accepts.
func DisplayName(code Code) string {
	if name, ok := displayNames[code]; ok {
		return name
	}
	name := code.String()
	short, isKey := strings.CutPrefix(name, "KEY_")
	if !isKey {
		return name
	}
	if len(short) == 1 || (short[0] == 'F' && isDigits(short[1:])) {
		return short
	}
	return name
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

func splitTokens(s string) []string {
	upper := cases.Upper(language.Und)
	raw := strings.Split(s, "+")
	tokens := make([]string, 0, len(raw))
	for _, part := range raw {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		tokens = append(tokens, upper.String(part))
	}
	return tokens
}

func resolveKey(token string) (Code, bool) {
	if code, ok := keyAliases[token]; ok {
		return code, true
	}
	if code, ok := Lookup(token); ok {
		return code, true
	}
	if code, ok := Lookup("KEY_" + token); ok {
		return code, true
	}
	return 0, false
}

// ParseCache memoizes Parse results for strings read on every listener tick.
type ParseCache struct {
	mu      sync.RWMutex
	entries map[string]cachedSpec
}

type cachedSpec struct {
	spec Spec
	ok   bool
}

func (c *ParseCache) Parse(s string) (Spec, bool) {
	c.mu.RLock()
	entry, hit := c.entries[s]
	c.mu.RUnlock()
	if hit {
		return entry.spec, entry.ok
	}

	spec, ok := Parse(s)
	c.mu.Lock()
	if c.entries == nil {
		c.entries = make(map[string]cachedSpec)
	}
	if len(c.entries) >= 64 {
		clear(c.entries)
	}
	c.entries[s] = cachedSpec{spec: spec, ok: ok}
	c.mu.Unlock()
	return spec, ok
}
