package engine

import "time"

// Window is the host surface: it answers the termination query polled at the
// top of every iteration and presents the rendered frame at the end of it
type Window interface {
	ShouldClose() bool
	Present() error
}

// InputFunc handles pending input once per iteration, before the update drain
type InputFunc func() error

// UpdateFunc advances the simulation by one fixed step
// It must not retain or mutate current; the result becomes the new current state
type UpdateFunc[S any] func(current S, step time.Duration) (S, error)

// RenderFunc draws a frame blended between the two newest simulation states
// alpha is in [0, 1); 0 shows previous, values near 1 approach current
type RenderFunc[S any] func(alpha float64, previous, current S) error
