package engine

import "time"

// TimeProvider is the wall-clock source sampled by Clock
type TimeProvider interface {
	Now() time.Time
}

// MonotonicTimeProvider reads the system clock
// time.Now carries a monotonic reading, so deltas between samples ignore wall-clock jumps
type MonotonicTimeProvider struct{}

// NewMonotonicTimeProvider creates a new monotonic time provider
func NewMonotonicTimeProvider() *MonotonicTimeProvider {
	return &MonotonicTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (p *MonotonicTimeProvider) Now() time.Time {
	return time.Now()
}
