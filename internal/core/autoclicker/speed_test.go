package autoclicker

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpeedUnitConversions(t *testing.T) {
	assert.Equal(t, 10.0, UnitCPS.FromMS(100))
	assert.Equal(t, 100.0, UnitCPS.ToMS(10))
	assert.Equal(t, 100.0, UnitMS.FromMS(100))
	assert.Equal(t, 250.0, UnitMS.ToMS(250))

	// Below the floor interval the CPS view tops out at 1000.
	assert.Equal(t, 1000.0, UnitCPS.FromMS(0.2))
}

func TestSpeedUnitToMSClampsToRange(t *testing.T) {
	tests := []struct {
		unit SpeedUnit
		in   float64
		want float64
	}{
		{unit: UnitCPS, in: 0, want: 1000},
		{unit: UnitCPS, in: math.NaN(), want: 1000},
		{unit: UnitCPS, in: 500, want: 10},
		{unit: UnitMS, in: 2000, want: 1000},
		{unit: UnitMS, in: -4, want: 1},
		{unit: UnitMS, in: 1e17, want: 1000},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.unit.ToMS(tt.in), "%s.ToMS(%v)", tt.unit, tt.in)
	}
}

func TestSpeedUnitStep(t *testing.T) {
	assert.InDelta(t, 1000.0/11, UnitCPS.Step(100, 1), 1e-9)
	assert.Equal(t, 110.0, UnitMS.Step(100, 10))
	assert.Equal(t, 1.0, UnitMS.Step(3, -10))
}

func TestSpeedUnitFormatAndCycle(t *testing.T) {
	assert.Equal(t, "10.0 CPS", UnitCPS.Format(100))
	assert.Equal(t, "12 ms", UnitMS.Format(12.4))
	assert.Equal(t, UnitMS, UnitCPS.Next())
	assert.Equal(t, UnitCPS, UnitMS.Next())
}

func TestHotkeysUnavailableAdvisory(t *testing.T) {
	adv := HotkeysUnavailable("line one", "line two")
	assert.Equal(t, "Global hotkeys unavailable", adv.Title)
	assert.False(t, adv.Empty())
	assert.Equal(t, "line one\nline two", adv.DetailText())
	assert.True(t, Advisory{}.Empty())
}
