// Package spinner is the demo simulation: a triangle turning at a constant
// angular velocity, advanced in fixed steps and blended for display
package spinner

import (
	"math"
	"time"

	"github.com/lixenwraith/tickloop/constants"
	"github.com/lixenwraith/tickloop/vmath"
)

// State is the interpolable part of the simulation
type State struct {
	Angle float64 // Degrees, unbounded
}

// Spinner advances State; its rate is changed only between iterations by Controls
// The rate is configuration owned by input, not simulation state: it is never
// interpolated, and within one drain every Update sees the same value
type Spinner struct {
	rate float64 // Degrees per second
}

// New creates a spinner turning at rate degrees per second
func New(rate float64) *Spinner {
	s := &Spinner{}
	s.SetRate(rate)
	return s
}

// Update returns the state one step later
func (s *Spinner) Update(cur State, step time.Duration) (State, error) {
	return State{Angle: cur.Angle + s.rate*step.Seconds()}, nil
}

// Rate returns the angular velocity in degrees per second
func (s *Spinner) Rate() float64 {
	return s.rate
}

// SetRate sets the angular velocity, clamped to ±MaxSpinRate
func (s *Spinner) SetRate(rate float64) {
	s.rate = math.Max(-constants.MaxSpinRate, math.Min(constants.MaxSpinRate, rate))
}

// Reverse flips the direction of rotation
func (s *Spinner) Reverse() {
	s.rate = -s.rate
}

// Lerp blends two states for display
func Lerp(prev, cur State, alpha float64) State {
	return State{Angle: vmath.Lerp(prev.Angle, cur.Angle, alpha)}
}
