package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/tickloop/engine/services"
	"github.com/lixenwraith/tickloop/status"
)

// LoopConfig wires a Loop to its collaborators
type LoopConfig[S any] struct {
	// TargetUPS fixes the simulation step at time.Second / TargetUPS
	TargetUPS int

	Clock  *Clock
	Window Window
	Input  InputFunc // Optional
	Update UpdateFunc[S]
	Render RenderFunc[S]

	// Initial seeds both previous and current state
	Initial S

	// Resources are acquired on Start and released on Dispose; optional
	Resources *services.Hub

	// Status receives loop metrics; a private registry is created when nil
	Status *status.Registry
}

// Frame summarizes one loop iteration
type Frame struct {
	Delta   time.Duration // Sampled (and clamped) elapsed time
	Updates int           // Fixed steps drained this iteration
	Alpha   float64       // Interpolation factor passed to render
	Stopped bool          // Termination was observed; nothing else ran
}

// Loop drives a fixed-timestep simulation with a free-running renderer
// Unconsumed time accumulates until it covers whole steps; the remainder
// becomes the interpolation factor for the frame
//
// All methods except State must be called from a single goroutine
type Loop[S any] struct {
	step      time.Duration
	targetUPS int

	clock     *Clock
	window    Window
	input     InputFunc
	update    UpdateFunc[S]
	render    RenderFunc[S]
	resources *services.Hub

	ctx   context.Context
	state atomic.Int32

	accumulator time.Duration
	alpha       float64
	previous    S
	current     S

	updates uint64
	frames  uint64

	// Cached metric pointers
	statUPS       *atomic.Int64
	statFPS       *atomic.Int64
	statUpdates   *atomic.Int64
	statFrames    *atomic.Int64
	statAnomalies *atomic.Int64
	statAlpha     *status.AtomicFloat
	statState     *status.AtomicString
}

// NewLoop validates the configuration and creates an uninitialized loop
func NewLoop[S any](cfg LoopConfig[S]) (*Loop[S], error) {
	switch {
	case cfg.TargetUPS <= 0:
		return nil, fmt.Errorf("%w: target ups must be positive, got %d", ErrInvalidConfig, cfg.TargetUPS)
	case cfg.Clock == nil:
		return nil, fmt.Errorf("%w: clock is required", ErrInvalidConfig)
	case cfg.Window == nil:
		return nil, fmt.Errorf("%w: window is required", ErrInvalidConfig)
	case cfg.Update == nil:
		return nil, fmt.Errorf("%w: update is required", ErrInvalidConfig)
	case cfg.Render == nil:
		return nil, fmt.Errorf("%w: render is required", ErrInvalidConfig)
	}

	step := time.Second / time.Duration(cfg.TargetUPS)
	if step <= 0 {
		return nil, fmt.Errorf("%w: target ups %d is finer than clock resolution", ErrInvalidConfig, cfg.TargetUPS)
	}

	reg := cfg.Status
	if reg == nil {
		reg = status.NewRegistry()
	}

	l := &Loop[S]{
		step:          step,
		targetUPS:     cfg.TargetUPS,
		clock:         cfg.Clock,
		window:        cfg.Window,
		input:         cfg.Input,
		update:        cfg.Update,
		render:        cfg.Render,
		resources:     cfg.Resources,
		ctx:           context.Background(),
		previous:      cfg.Initial,
		current:       cfg.Initial,
		statUPS:       reg.Ints.Get("loop.ups"),
		statFPS:       reg.Ints.Get("loop.fps"),
		statUpdates:   reg.Ints.Get("loop.updates"),
		statFrames:    reg.Ints.Get("loop.frames"),
		statAnomalies: reg.Ints.Get("clock.anomalies"),
		statAlpha:     reg.Floats.Get("loop.alpha"),
		statState:     reg.Strings.Get("loop.state"),
	}
	l.setState(StateUninitialized)

	return l, nil
}

// Start acquires resources and enters Running
// On failure every acquired resource has been released and the loop stays Uninitialized
func (l *Loop[S]) Start() error {
	if s := l.State(); s != StateUninitialized {
		return fmt.Errorf("%w: start in %s", ErrState, s)
	}

	if l.resources != nil {
		if err := l.resources.InitAll(); err != nil {
			return fmt.Errorf("%w: %w", ErrStartup, err)
		}
		if err := l.resources.StartAll(); err != nil {
			return fmt.Errorf("%w: %w", ErrStartup, err)
		}
	}

	// Startup latency is not simulation time
	l.clock.Reset()
	l.accumulator = 0
	l.alpha = 0

	l.setState(StateRunning)
	log.Printf("loop: running at %d UPS (step %v)", l.targetUPS, l.step)
	return nil
}

// Step runs one iteration: poll termination, sample, input, drain, render, report, present
// A collaborator failure, including a panicking termination query or rate sink, moves the loop to Terminating and is returned wrapped in ErrCollaborator
func (l *Loop[S]) Step() (Frame, error) {
	switch s := l.State(); s {
	case StateRunning:
	case StateTerminating, StateDisposed:
		return Frame{Stopped: true}, nil
	default:
		return Frame{}, fmt.Errorf("%w: step in %s", ErrState, s)
	}

	var stop bool
	if err := l.guard("terminate", func() error {
		stop = l.shouldTerminate()
		return nil
	}); err != nil {
		return Frame{}, err
	}
	if stop {
		l.setState(StateTerminating)
		log.Printf("loop: termination requested")
		return Frame{Stopped: true}, nil
	}

	delta := l.clock.SampleDelta()
	l.accumulator += delta
	frame := Frame{Delta: delta}

	if l.input != nil {
		if err := l.guard("input", l.input); err != nil {
			return frame, err
		}
	}

	// Catch-up: every owed step runs before the next render
	for l.accumulator >= l.step {
		var next S
		err := l.guard("update", func() error {
			var err error
			next, err = l.update(l.current, l.step)
			return err
		})
		if err != nil {
			return frame, err
		}

		l.previous = l.current
		l.current = next
		l.clock.RecordUpdate()
		l.accumulator -= l.step
		l.updates++
		frame.Updates++
	}

	l.alpha = float64(l.accumulator) / float64(l.step)
	frame.Alpha = l.alpha

	err := l.guard("render", func() error {
		return l.render(l.alpha, l.previous, l.current)
	})
	if err != nil {
		return frame, err
	}
	l.clock.RecordFrame()
	l.frames++

	// Rate sinks run inside Tick
	var reported bool
	if err := l.guard("report", func() error {
		reported = l.clock.Tick()
		return nil
	}); err != nil {
		return frame, err
	}
	if reported {
		l.statUPS.Store(int64(l.clock.UPS()))
		l.statFPS.Store(int64(l.clock.FPS()))
	}
	l.publish()

	if err := l.guard("present", l.window.Present); err != nil {
		return frame, err
	}

	return frame, nil
}

// Run starts the loop, iterates until the window closes, ctx is cancelled or a
// collaborator fails, then disposes. Cancellation is observed between iterations only
func (l *Loop[S]) Run(ctx context.Context) error {
	if ctx != nil {
		l.ctx = ctx
	}

	if err := l.Start(); err != nil {
		return err
	}

	var runErr error
	for {
		frame, err := l.Step()
		if err != nil {
			log.Printf("loop: %v", err)
			runErr = err
			break
		}
		if frame.Stopped {
			break
		}
	}

	if err := l.Dispose(); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

// Dispose releases resources and enters the terminal Disposed state; repeat calls are no-ops
func (l *Loop[S]) Dispose() error {
	prev := l.State()
	if prev == StateDisposed {
		return nil
	}
	l.setState(StateDisposed)

	if prev == StateUninitialized {
		return nil
	}

	log.Printf("loop: disposed after %d updates, %d frames", l.updates, l.frames)
	if l.resources == nil {
		return nil
	}
	return l.resources.StopAll()
}

// State returns the lifecycle state; safe to call from any goroutine
func (l *Loop[S]) State() LoopState {
	return LoopState(l.state.Load())
}

// FixedStep returns the simulation step
func (l *Loop[S]) FixedStep() time.Duration { return l.step }

// Accumulator returns sampled time not yet consumed by update steps
func (l *Loop[S]) Accumulator() time.Duration { return l.accumulator }

// Alpha returns the interpolation factor of the last frame
func (l *Loop[S]) Alpha() float64 { return l.alpha }

// Previous returns the state before the last update
func (l *Loop[S]) Previous() S { return l.previous }

// Current returns the newest simulation state
func (l *Loop[S]) Current() S { return l.current }

// Updates returns the number of update steps since creation
func (l *Loop[S]) Updates() uint64 { return l.updates }

// Frames returns the number of rendered frames since creation
func (l *Loop[S]) Frames() uint64 { return l.frames }

func (l *Loop[S]) shouldTerminate() bool {
	return l.ctx.Err() != nil || l.window.ShouldClose()
}

func (l *Loop[S]) setState(s LoopState) {
	l.state.Store(int32(s))
	l.statState.Store(s.String())
}

func (l *Loop[S]) publish() {
	l.statUpdates.Store(int64(l.updates))
	l.statFrames.Store(int64(l.frames))
	l.statAnomalies.Store(int64(l.clock.Anomalies()))
	l.statAlpha.Set(l.alpha)
}

// guard runs a collaborator, converting errors and panics into a terminal failure
func (l *Loop[S]) guard(phase string, fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
		if err != nil {
			l.setState(StateTerminating)
			err = fmt.Errorf("%w: %s: %w", ErrCollaborator, phase, err)
		}
	}()
	return fn()
}
