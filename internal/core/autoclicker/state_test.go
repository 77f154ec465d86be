package autoclicker

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClampSpeed(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{in: 0.5, want: 1},
		{in: 0, want: 1},
		{in: -3, want: 1},
		{in: math.NaN(), want: 1},
		{in: math.Inf(1), want: maxClickSpeedMS},
		{in: math.Inf(-1), want: 1},
		{in: 1e17, want: maxClickSpeedMS},
		{in: 1, want: 1},
		{in: 12.5, want: 12.5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ClampSpeed(tt.in), "ClampSpeed(%v)", tt.in)
	}
}

func TestClickIntervalUsesMicroseconds(t *testing.T) {
	assert.Equal(t, 1500*time.Microsecond, ClickInterval(1.5))
	assert.Equal(t, time.Millisecond, ClickInterval(0.5))
	assert.Equal(t, 100*time.Millisecond, ClickInterval(DefaultClickSpeedMS))
}

func TestClickIntervalStaysPositiveForHugeSpeeds(t *testing.T) {
	for _, ms := range []float64{1e13, 1e16, 1e17, math.MaxFloat64, math.Inf(1)} {
		assert.Equal(t, time.Hour, ClickInterval(ms), "ClickInterval(%v)", ms)
	}
}

func TestNormalizeRejectsHugeSpeeds(t *testing.T) {
	snap := SettingsSnapshot{ClickSpeedMS: 1e17}.Normalize()
	assert.Equal(t, DefaultClickSpeedMS, snap.ClickSpeedMS)

	snap = SettingsSnapshot{ClickSpeedMS: maxClickSpeedMS}.Normalize()
	assert.Equal(t, maxClickSpeedMS, snap.ClickSpeedMS)
}

func TestParseTheme(t *testing.T) {
	assert.Equal(t, ThemeDark, ParseTheme("dark"))
	assert.Equal(t, ThemeLight, ParseTheme("light"))
	assert.Equal(t, ThemeSystem, ParseTheme(""))
	assert.Equal(t, ThemeSystem, ParseTheme("Dark"))
}

func TestRuntimeStateToggleIsAtomic(t *testing.T) {
	var state RuntimeState
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			state.ToggleRunning()
		}()
	}
	wg.Wait()
	assert.False(t, state.IsRunning())
}

func TestRuntimeStateSetActiveReportsChange(t *testing.T) {
	var state RuntimeState
	assert.True(t, state.setActive(SideRight, true))
	assert.False(t, state.setActive(SideRight, true))
	assert.True(t, state.IsActive(SideRight))
	assert.False(t, state.IsActive(SideLeft))
}

func TestSettingsSnapshotHelpers(t *testing.T) {
	snap := SettingsSnapshot{HotkeyLeft: "F6", HotkeyRight: "F7", HoldMode: true}
	assert.Equal(t, "F6", snap.Hotkey(SideLeft))
	assert.Equal(t, "F7", snap.Hotkey(SideRight))
	assert.Equal(t, ModeHold, snap.Mode())

	normalized := snap.Normalize()
	assert.Equal(t, DefaultClickSpeedMS, normalized.ClickSpeedMS)
	assert.Equal(t, ThemeSystem, normalized.Theme)
}

func TestSettingsReplace(t *testing.T) {
	settings := NewSettings(DefaultSettings())
	assert.False(t, settings.Replace(DefaultSettings()))

	next := DefaultSettings()
	next.Randomize = true
	assert.True(t, settings.Replace(next))
	assert.True(t, settings.Snapshot().Randomize)
}

func TestSideButtonCodes(t *testing.T) {
	assert.Equal(t, LeftButtonCode, SideLeft.ButtonCode())
	assert.Equal(t, RightButtonCode, SideRight.ButtonCode())
	assert.Equal(t, "left", SideLeft.String())
	assert.Equal(t, "right", SideRight.String())
}
