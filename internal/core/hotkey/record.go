package hotkey

import "strings"

// FromPressed builds a hotkey string out of a held combination, e.g.
// "Ctrl+Alt+F8". A combination of only modifiers yields the first modifier
// on its own. It returns "" when nothing usable is held.
func FromPressed(pressed Pressed) string {
	var (
		parts []string
		first string
		main  Code
	)
	for _, pair := range modifierOrder {
		if pressed.HasKey(pair.Left) || pressed.HasKey(pair.Right) {
			parts = append(parts, modifierNames[pair])
		}
	}
	if len(parts) > 0 {
		first = parts[0]
	}

	for _, code := range pressed.Codes() {
		if isModifierCode(code) {
			continue
		}
		if _, named := codeNames[code]; !named {
			continue
		}
		main = code
		break
	}

	if main == 0 {
		return first
	}
	parts = append(parts, DisplayName(main))
	return strings.Join(parts, "+")
}

func isModifierCode(code Code) bool {
	for _, pair := range modifierOrder {
		if code == pair.Left || code == pair.Right {
			return true
		}
	}
	return false
}

// Recorder turns a stream of pressed snapshots into one hotkey. It collects
// everything held from the first press until all inputs are released.
// Pressing Escape on its own cancels.
type Recorder struct {
	peak    Pressed
	started bool
}

// RecordState is the outcome of feeding one snapshot to a Recorder.
type RecordState int

const (
	RecordPending RecordState = iota
	RecordDone
	RecordCancelled
)

// Observe consumes one snapshot. When the state is RecordDone the hotkey
// string is returned alongside.
func (r *Recorder) Observe(pressed Pressed) (RecordState, string) {
	if pressed.Empty() {
		if !r.started {
			return RecordPending, ""
		}
		result := FromPressed(r.peak)
		r.Reset()
		if result == "" {
			return RecordCancelled, ""
		}
		return RecordDone, result
	}

	if pressed.Len() == 1 && pressed.HasKey(KeyEsc) && !r.started {
		return RecordCancelled, ""
	}
	r.started = true
	r.peak.Merge(pressed)
	return RecordPending, ""
}

func (r *Recorder) Reset() {
	r.peak = Pressed{}
	r.started = false
}
