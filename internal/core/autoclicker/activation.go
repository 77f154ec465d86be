package autoclicker

// Activation is the per-side hold/toggle state machine. It is owned by the
// listener goroutine and is not safe for concurrent use.
type Activation struct {
	active      bool
	prevMatched bool
}

// Step advances the machine by one tick and reports the new active value and
// whether it differs from the previous one.
func (a *Activation) Step(matched bool, mode ActivationMode) (active bool, changed bool) {
	next := a.active
	switch mode {
	case ModeHold:
		next = matched
	default:
		if matched && !a.prevMatched {
			next = !a.active
		}
	}
	a.prevMatched = matched
	changed = next != a.active
	a.active = next
	return next, changed
}

func (a *Activation) Active() bool {
	return a.active
}

// ResetEdges forgets the previous tick's match so the next match counts as a
// rising edge.
func (a *Activation) ResetEdges() {
	a.prevMatched = false
}

// ForceInactive clears the active flag and reports whether it was set.
func (a *Activation) ForceInactive() bool {
	was := a.active
	a.active = false
	return was
}
