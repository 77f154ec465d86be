package autoclicker

import "strings"

// Advisory is a non-fatal notice for the control surface. Details are shown
// only when the user expands it.
type Advisory struct {
	Title   string
	Summary string
	Details []string
}

func (a Advisory) Empty() bool {
	return a.Title == "" && a.Summary == ""
}

func (a Advisory) DetailText() string {
	return strings.Join(a.Details, "\n")
}

// HotkeysUnavailable builds the notice shown when no input source could be
// opened. Clicking still works through the control surface.
func HotkeysUnavailable(details ...string) Advisory {
	return Advisory{
		Title:   "Global hotkeys unavailable",
		Summary: "Hotkeys will not work. Use the start button to click instead.",
		Details: details,
	}
}
