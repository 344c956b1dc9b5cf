package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func TestClockSampleDelta(t *testing.T) {
	tp := newStepTime(epoch)
	c := NewClock(tp)

	assert.Equal(t, time.Duration(0), c.SampleDelta())

	tp.Advance(16 * time.Millisecond)
	assert.Equal(t, 16*time.Millisecond, c.SampleDelta())

	tp.Advance(4 * time.Millisecond)
	assert.Equal(t, 4*time.Millisecond, c.SampleDelta())
	assert.Equal(t, 20*time.Millisecond, c.SinceReport())
	assert.Zero(t, c.Anomalies())
}

func TestClockClampsBackwardsTime(t *testing.T) {
	tp := newStepTime(epoch)
	c := NewClock(tp)

	tp.Advance(100 * time.Millisecond)
	require.Equal(t, 100*time.Millisecond, c.SampleDelta())

	// Source jumps back 50ms
	tp.Jump(50 * time.Millisecond)
	assert.Equal(t, time.Duration(0), c.SampleDelta())
	assert.Equal(t, 1, c.Anomalies())

	// Sample point stayed at +100ms, so the next 30ms of source time are not counted
	tp.Jump(80 * time.Millisecond)
	assert.Equal(t, time.Duration(0), c.SampleDelta())

	tp.Jump(130 * time.Millisecond)
	assert.Equal(t, 30*time.Millisecond, c.SampleDelta())
	assert.Equal(t, 130*time.Millisecond, c.SinceReport())
}

func TestClockClampsHugeDelta(t *testing.T) {
	tp := newStepTime(epoch)
	c := NewClock(tp, WithMaxDelta(250*time.Millisecond))

	tp.Advance(10 * time.Second)
	assert.Equal(t, 250*time.Millisecond, c.SampleDelta())
	assert.Equal(t, 1, c.Anomalies())

	// The sample point still moves to now; the stall is forgotten, not replayed
	tp.Advance(10 * time.Millisecond)
	assert.Equal(t, 10*time.Millisecond, c.SampleDelta())
}

func TestClockMaxDeltaDisabled(t *testing.T) {
	tp := newStepTime(epoch)
	c := NewClock(tp, WithMaxDelta(0))

	tp.Advance(5 * time.Second)
	assert.Equal(t, 5*time.Second, c.SampleDelta())
	assert.Zero(t, c.Anomalies())
}

func TestClockTickReportsAndCarries(t *testing.T) {
	tp := newStepTime(epoch)
	var reports []RateReport
	c := NewClock(tp, WithRateSink(func(r RateReport) { reports = append(reports, r) }))

	for i := 0; i < 9; i++ {
		tp.Advance(100 * time.Millisecond)
		c.SampleDelta()
		c.RecordUpdate()
		c.RecordFrame()
		c.RecordFrame()
		require.False(t, c.Tick(), "no report before a full second")
	}

	tp.Advance(125 * time.Millisecond)
	c.SampleDelta()
	c.RecordUpdate()
	c.RecordFrame()
	c.RecordFrame()
	require.True(t, c.Tick())

	assert.Equal(t, []RateReport{{UPS: 10, FPS: 20}}, reports)
	assert.Equal(t, 10, c.UPS())
	assert.Equal(t, 20, c.FPS())

	updates, frames := c.Pending()
	assert.Zero(t, updates)
	assert.Zero(t, frames)
	assert.Equal(t, 25*time.Millisecond, c.SinceReport(), "fractional remainder is kept")

	assert.False(t, c.Tick(), "at most one report per accumulated second")
	assert.Len(t, reports, 1)
}

func TestClockTickOncePerCall(t *testing.T) {
	tp := newStepTime(epoch)
	count := 0
	c := NewClock(tp, WithMaxDelta(0), WithRateSink(func(RateReport) { count++ }))

	tp.Advance(2500 * time.Millisecond)
	c.SampleDelta()

	assert.True(t, c.Tick())
	assert.Equal(t, 1500*time.Millisecond, c.SinceReport())
	assert.True(t, c.Tick())
	assert.False(t, c.Tick())
	assert.Equal(t, 2, count)
	assert.Equal(t, 500*time.Millisecond, c.SinceReport())
}

func TestClockReset(t *testing.T) {
	tp := newStepTime(epoch)
	c := NewClock(tp)

	tp.Advance(300 * time.Millisecond)
	c.SampleDelta()
	c.RecordUpdate()

	tp.Advance(5 * time.Second)
	c.Reset()

	assert.Equal(t, time.Duration(0), c.SampleDelta())
	assert.Zero(t, c.SinceReport())
	updates, _ := c.Pending()
	assert.Zero(t, updates)
}
