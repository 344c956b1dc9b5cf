package engine

import (
	"time"

	"github.com/lixenwraith/tickloop/constants"
)

// RateReport is emitted once per accumulated second of sampled time
type RateReport struct {
	UPS int // Update ticks recorded during the interval
	FPS int // Frame ticks recorded during the interval
}

// RateSink receives rate reports; sinks run synchronously on the loop goroutine
type RateSink func(RateReport)

// ClockOption configures a Clock
type ClockOption func(*Clock)

// WithMaxDelta caps a single sampled delta, 0 disables the cap
// Long stalls (suspended process, debugger) then cost at most d of simulation time
func WithMaxDelta(d time.Duration) ClockOption {
	return func(c *Clock) {
		if d < 0 {
			d = 0
		}
		c.maxDelta = d
	}
}

// WithRateSink adds a receiver for rate reports
func WithRateSink(sink RateSink) ClockOption {
	return func(c *Clock) {
		if sink != nil {
			c.sinks = append(c.sinks, sink)
		}
	}
}

// Clock measures elapsed time between loop iterations and counts updates and
// frames, reporting both once per second of sampled time
// Not safe for concurrent use; owned by the loop goroutine
type Clock struct {
	provider TimeProvider
	maxDelta time.Duration
	sinks    []RateSink

	lastSample  time.Time
	sinceReport time.Duration

	updates int
	frames  int

	ups int
	fps int

	anomalies int
}

// NewClock creates a clock seeded with the provider's current time
func NewClock(provider TimeProvider, opts ...ClockOption) *Clock {
	c := &Clock{
		provider: provider,
		maxDelta: constants.DefaultMaxFrameTime,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.lastSample = provider.Now()
	return c
}

// Reset re-seeds the sample point and clears counters and carry-over
func (c *Clock) Reset() {
	c.lastSample = c.provider.Now()
	c.sinceReport = 0
	c.updates = 0
	c.frames = 0
	c.ups = 0
	c.fps = 0
}

// SampleDelta returns the time elapsed since the previous sample
// A backwards reading yields 0 and leaves the sample point in place; an
// oversized reading is capped at maxDelta. Both count as anomalies
func (c *Clock) SampleDelta() time.Duration {
	now := c.provider.Now()
	delta := now.Sub(c.lastSample)

	if delta < 0 {
		c.anomalies++
		return 0
	}
	c.lastSample = now

	if c.maxDelta > 0 && delta > c.maxDelta {
		c.anomalies++
		delta = c.maxDelta
	}

	c.sinceReport += delta
	return delta
}

// RecordUpdate counts one fixed update step
func (c *Clock) RecordUpdate() {
	c.updates++
}

// RecordFrame counts one rendered frame
func (c *Clock) RecordFrame() {
	c.frames++
}

// Tick publishes the counts once a full second has been sampled
// The second is subtracted rather than zeroed so the reporting cadence does not drift
func (c *Clock) Tick() bool {
	if c.sinceReport < constants.ReportInterval {
		return false
	}

	c.ups = c.updates
	c.fps = c.frames
	c.updates = 0
	c.frames = 0
	c.sinceReport -= constants.ReportInterval

	report := RateReport{UPS: c.ups, FPS: c.fps}
	for _, sink := range c.sinks {
		sink(report)
	}
	return true
}

// UPS returns the last reported updates per second
func (c *Clock) UPS() int { return c.ups }

// FPS returns the last reported frames per second
func (c *Clock) FPS() int { return c.fps }

// Anomalies returns how many samples were clamped
func (c *Clock) Anomalies() int { return c.anomalies }

// SinceReport returns sampled time not yet covered by a report
func (c *Clock) SinceReport() time.Duration { return c.sinceReport }

// Pending returns the update and frame counts of the current interval
func (c *Clock) Pending() (updates, frames int) { return c.updates, c.frames }
