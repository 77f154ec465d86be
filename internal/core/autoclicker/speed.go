package autoclicker

import (
	"fmt"
	"math"
)

// SpeedUnit selects how a control surface presents the click speed. The
// stored value is always an interval in milliseconds.
type SpeedUnit int

const (
	UnitCPS SpeedUnit = iota
	UnitMS
)

const (
	minCPS        = 1.0
	maxCPS        = 100.0
	minIntervalMS = 1.0
	maxIntervalMS = 1000.0
)

func (u SpeedUnit) String() string {
	if u == UnitMS {
		return "ms"
	}
	return "cps"
}

// Next cycles between the two units.
func (u SpeedUnit) Next() SpeedUnit {
	if u == UnitMS {
		return UnitCPS
	}
	return UnitMS
}

// Range is the slider range for the unit.
func (u SpeedUnit) Range() (lo, hi float64) {
	if u == UnitMS {
		return minIntervalMS, maxIntervalMS
	}
	return minCPS, maxCPS
}

// FromMS converts an interval into the unit's value.
func (u SpeedUnit) FromMS(ms float64) float64 {
	ms = ClampSpeed(ms)
	if u == UnitMS {
		return ms
	}
	return 1000 / ms
}

// ToMS converts a value in the unit back into an interval, clamped to the
// unit's range first.
func (u SpeedUnit) ToMS(value float64) float64 {
	lo, hi := u.Range()
	if math.IsNaN(value) || value < lo {
		value = lo
	}
	if value > hi {
		value = hi
	}
	if u == UnitMS {
		return value
	}
	return 1000 / value
}

// Step returns the interval after nudging the displayed value by delta.
func (u SpeedUnit) Step(ms, delta float64) float64 {
	return u.ToMS(u.FromMS(ms) + delta)
}

func (u SpeedUnit) Format(ms float64) string {
	if u == UnitMS {
		return fmt.Sprintf("%.0f ms", u.FromMS(ms))
	}
	return fmt.Sprintf("%.1f CPS", u.FromMS(ms))
}
