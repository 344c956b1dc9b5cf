package spinner

import (
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/tickloop/constants"
)

func TestUpdateIsPure(t *testing.T) {
	s := New(50)
	start := State{Angle: 10}

	next, err := s.Update(start, 100*time.Millisecond)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, next.Angle, 1e-12)
	assert.Equal(t, 10.0, start.Angle)

	// Same inputs, same output
	again, _ := s.Update(start, 100*time.Millisecond)
	assert.Equal(t, next, again)
}

func TestOneSecondOfSteps(t *testing.T) {
	s := New(constants.DefaultSpinRate)
	st := State{}
	for i := 0; i < 20; i++ {
		st, _ = s.Update(st, 50*time.Millisecond)
	}
	assert.InDelta(t, constants.DefaultSpinRate, st.Angle, 1e-9)
}

func TestLerp(t *testing.T) {
	prev, cur := State{Angle: 100}, State{Angle: 105}
	assert.Equal(t, prev, Lerp(prev, cur, 0))
	assert.InDelta(t, 103.5, Lerp(prev, cur, 0.7).Angle, 1e-12)
}

func TestRateClamp(t *testing.T) {
	s := New(10 * constants.MaxSpinRate)
	assert.Equal(t, constants.MaxSpinRate, s.Rate())

	s.SetRate(-10 * constants.MaxSpinRate)
	assert.Equal(t, -constants.MaxSpinRate, s.Rate())
}

type keyQueue []*tcell.EventKey

func (q *keyQueue) Keys() []*tcell.EventKey {
	keys := *q
	*q = nil
	return keys
}

func runeKey(r rune) *tcell.EventKey {
	return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone)
}

func TestControls(t *testing.T) {
	s := New(50)
	q := &keyQueue{runeKey('+'), runeKey('+'), runeKey('x'), tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone)}
	c := NewControls(q, s)

	require.NoError(t, c.HandleInput())
	assert.Equal(t, 50+2*constants.SpinRateStep, s.Rate())
	assert.Empty(t, q.Keys(), "queue drained")

	*q = keyQueue{runeKey('r')}
	require.NoError(t, c.HandleInput())
	assert.Equal(t, -(50 + 2*constants.SpinRateStep), s.Rate())

	*q = keyQueue{runeKey('-'), runeKey('0')}
	require.NoError(t, c.HandleInput())
	assert.Equal(t, constants.DefaultSpinRate, s.Rate())
}

func TestControlsBindings(t *testing.T) {
	s := New(50)
	q := &keyQueue{runeKey('h'), runeKey('h'), runeKey('+')}
	c := NewControls(q, s)

	toggles := 0
	c.Bind('h', func() { toggles++ })
	c.Bind('+', func() { t.Error("spinner key reached a binding") })

	require.NoError(t, c.HandleInput())
	assert.Equal(t, 2, toggles)
	assert.Equal(t, 50+constants.SpinRateStep, s.Rate())
}

func TestRateChangeAppliesToLaterSteps(t *testing.T) {
	s := New(50)
	first, _ := s.Update(State{}, time.Second)

	// Input changes the rate between iterations
	s.SetRate(100)
	second, _ := s.Update(first, time.Second)

	assert.InDelta(t, 50.0, first.Angle, 1e-12, "earlier result is unaffected")
	assert.InDelta(t, 150.0, second.Angle, 1e-12)
}
