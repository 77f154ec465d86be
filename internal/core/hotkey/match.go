package hotkey

// Match reports whether the held inputs satisfy spec. A modifier used as the
// main key is satisfied by either side; every required modifier pair needs at
// least one side held.
func Match(pressed Pressed, spec Spec) bool {
	if !spec.Valid() {
		return false
	}
	if !mainHeld(pressed, spec.Main) {
		return false
	}
	for _, pair := range spec.Modifiers {
		if !pressed.HasKey(pair.Left) && !pressed.HasKey(pair.Right) {
			return false
		}
	}
	return true
}

// Check parses s and matches it against pressed. Empty or invalid strings never match.
func Check(pressed Pressed, s string) bool {
	if s == "" {
		return false
	}
	spec, ok := Parse(s)
	if !ok {
		return false
	}
	return Match(pressed, spec)
}

func mainHeld(pressed Pressed, main Code) bool {
	if main.IsButton() {
		return pressed.HasButton(main)
	}
	for _, pair := range modifierOrder {
		if main == pair.Left {
			return pressed.HasKey(pair.Left) || pressed.HasKey(pair.Right)
		}
	}
	return pressed.HasKey(main)
}
