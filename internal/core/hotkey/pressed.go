package hotkey

import "sort"

// Pressed is a snapshot of held inputs. Keyboard keys and mouse buttons are
// kept in separate sets.
type Pressed struct {
	keys    map[Code]struct{}
	buttons map[Code]struct{}
}

func NewPressed(codes ...Code) Pressed {
	var p Pressed
	for _, code := range codes {
		p.Add(code)
	}
	return p
}

// Add records code as held, routing it to the key or button set.
func (p *Pressed) Add(code Code) {
	if code.IsButton() {
		p.AddButton(code)
		return
	}
	p.AddKey(code)
}

func (p *Pressed) AddKey(code Code) {
	if p.keys == nil {
		p.keys = make(map[Code]struct{})
	}
	p.keys[code] = struct{}{}
}

func (p *Pressed) AddButton(code Code) {
	if p.buttons == nil {
		p.buttons = make(map[Code]struct{})
	}
	p.buttons[code] = struct{}{}
}

func (p *Pressed) Merge(other Pressed) {
	for code := range other.keys {
		p.AddKey(code)
	}
	for code := range other.buttons {
		p.AddButton(code)
	}
}

func (p Pressed) HasKey(code Code) bool {
	_, ok := p.keys[code]
	return ok
}

func (p Pressed) HasButton(code Code) bool {
	_, ok := p.buttons[code]
	return ok
}

// Has checks code against the set matching its kind.
func (p Pressed) Has(code Code) bool {
	if code.IsButton() {
		return p.HasButton(code)
	}
	return p.HasKey(code)
}

func (p Pressed) Len() int {
	return len(p.keys) + len(p.buttons)
}

func (p Pressed) Empty() bool {
	return p.Len() == 0
}

// Codes returns every held code, keys first, each group sorted ascending.
func (p Pressed) Codes() []Code {
	out := make([]Code, 0, p.Len())
	out = appendSorted(out, p.keys)
	out = appendSorted(out, p.buttons)
	return out
}

func appendSorted(dst []Code, set map[Code]struct{}) []Code {
	start := len(dst)
	for code := range set {
		dst = append(dst, code)
	}
	tail := dst[start:]
	sort.Slice(tail, func(i, j int) bool { return tail[i] < tail[j] })
	return dst
}
