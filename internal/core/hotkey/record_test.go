package hotkey

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromPressed(t *testing.T) {
	assert.Equal(t, "Ctrl+Alt+F8", FromPressed(NewPressed(KeyRightAlt, KeyF8, KeyLeftCtrl)))
	assert.Equal(t, "Shift", FromPressed(NewPressed(KeyRightShift)))
	assert.Equal(t, "Ctrl", FromPressed(NewPressed(KeyLeftCtrl, KeyLeftShift)))
	assert.Equal(t, "Mouse4", FromPressed(NewPressed(BtnSide)))
	assert.Equal(t, "", FromPressed(Pressed{}))
}

func TestRecorderCollectsUntilRelease(t *testing.T) {
	var r Recorder
	steps := []Pressed{
		{},
		NewPressed(KeyLeftCtrl),
		NewPressed(KeyLeftCtrl, KeyA),
		NewPressed(KeyA),
	}
	for _, p := range steps {
		state, _ := r.Observe(p)
		require.Equal(t, RecordPending, state)
	}

	state, hotkey := r.Observe(Pressed{})
	require.Equal(t, RecordDone, state)
	assert.Equal(t, "Ctrl+A", hotkey)

	spec, ok := Parse(hotkey)
	require.True(t, ok)
	assert.True(t, Match(NewPressed(KeyRightCtrl, KeyA), spec))
}

func TestRecorderEscapeCancels(t *testing.T) {
	var r Recorder
	state, _ := r.Observe(NewPressed(KeyEsc))
	assert.Equal(t, RecordCancelled, state)
}

func TestRecorderEscapeInsideComboIsRecorded(t *testing.T) {
	var r Recorder
	r.Observe(NewPressed(KeyLeftShift))
	r.Observe(NewPressed(KeyLeftShift, KeyEsc))
	state, hotkey := r.Observe(Pressed{})
	require.Equal(t, RecordDone, state)
	assert.Equal(t, "Shift+Escape", hotkey)
}
