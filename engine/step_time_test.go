package engine

import (
	"sync/atomic"
	"time"
)

// stepTime is a TimeProvider read as a fixed base plus a settable offset
// The offset may move backwards, which the clamp tests rely on
type stepTime struct {
	base   time.Time
	offset atomic.Int64
}

func newStepTime(base time.Time) *stepTime {
	return &stepTime{base: base}
}

func (s *stepTime) Now() time.Time {
	return s.base.Add(time.Duration(s.offset.Load()))
}

// Advance moves the reading forward by d
func (s *stepTime) Advance(d time.Duration) {
	s.offset.Add(int64(d))
}

// Jump places the reading at base+at, earlier or later than now
func (s *stepTime) Jump(at time.Duration) {
	s.offset.Store(int64(at))
}
