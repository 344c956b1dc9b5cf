package terminal

import (
	"fmt"
	"log"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tickloop/constants"
	"github.com/lixenwraith/tickloop/core"
)

// ColorMode selects the palette requested from the terminal
type ColorMode string

const (
	ColorAuto      ColorMode = "auto"
	ColorTrueColor ColorMode = "truecolor"
	Color256       ColorMode = "256"
)

// ParseColorMode accepts the names used on the command line and in config
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "", "auto":
		return ColorAuto, nil
	case "truecolor", "true", "24bit":
		return ColorTrueColor, nil
	case "256":
		return Color256, nil
	default:
		return "", fmt.Errorf("unknown color mode %q", s)
	}
}

// Options configures a Window
type Options struct {
	Color ColorMode

	// MaxFPS paces Present to at most this many frames per second, 0 is uncapped
	MaxFPS int

	// Screen overrides screen creation; tests pass a simulation screen
	Screen tcell.Screen

	// OnResize is called from Present after the terminal size changed
	OnResize func(width, height int)
}

// Window is the loop's host surface backed by a tcell screen
// It answers the termination query, presents frames, and collects key presses
// for the input handler. Terminal events are read by a poller goroutine and
// applied on the loop goroutine inside Present
type Window struct {
	opts   Options
	screen tcell.Screen

	events  chan tcell.Event
	done    chan struct{}
	closing atomic.Bool
	keys    []*tcell.EventKey

	width, height int

	frameInterval time.Duration
	nextFrame     time.Time

	finiOnce sync.Once
}

// New creates an uninitialized window
func New(opts Options) *Window {
	w := &Window{
		opts:   opts,
		events: make(chan tcell.Event, constants.EventQueueSize),
		done:   make(chan struct{}),
	}
	if opts.MaxFPS > 0 {
		w.frameInterval = time.Second / time.Duration(opts.MaxFPS)
	}
	return w
}

// Name implements services.Service
func (w *Window) Name() string {
	return "window"
}

// Dependencies implements services.Service
func (w *Window) Dependencies() []string {
	return nil
}

// Init acquires the terminal
func (w *Window) Init() error {
	if w.opts.Color == Color256 {
		// tcell reads this when the screen is created
		os.Setenv("TCELL_TRUECOLOR", "disable")
	}

	screen := w.opts.Screen
	if screen == nil {
		var err error
		screen, err = tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("create screen: %w", err)
		}
	}

	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}

	screen.HideCursor()
	screen.Clear()
	w.screen = screen
	w.width, w.height = screen.Size()

	core.SetCrashCleanup(w.Fini)
	log.Printf("terminal: %dx%d, %d colors", w.width, w.height, screen.Colors())
	return nil
}

// Start launches the event poller
func (w *Window) Start() error {
	core.Go(w.poll)
	return nil
}

// Stop releases the terminal
func (w *Window) Stop() error {
	w.Fini()
	return nil
}

// Fini restores the terminal; safe to call more than once and from the crash handler
func (w *Window) Fini() {
	w.finiOnce.Do(func() {
		close(w.done)
		if w.screen != nil {
			w.screen.Fini()
		}
	})
}

func (w *Window) poll() {
	for {
		ev := w.screen.PollEvent()
		if ev == nil {
			// Screen finalized
			return
		}
		select {
		case w.events <- ev:
		case <-w.done:
			return
		}
	}
}

// ShouldClose reports whether a close was requested
func (w *Window) ShouldClose() bool {
	return w.closing.Load()
}

// RequestClose asks the loop to stop at its next iteration boundary
func (w *Window) RequestClose() {
	w.closing.Store(true)
}

// Present shows the drawn frame, applies pending terminal events and paces to MaxFPS
func (w *Window) Present() error {
	w.screen.Show()
	w.drainEvents()
	w.pace()
	return nil
}

// Keys returns keys received since the previous call
func (w *Window) Keys() []*tcell.EventKey {
	keys := w.keys
	w.keys = nil
	return keys
}

// Size returns the terminal size in cells
func (w *Window) Size() (int, int) {
	return w.width, w.height
}

// Screen returns the underlying screen for renderers
func (w *Window) Screen() tcell.Screen {
	return w.screen
}

func (w *Window) drainEvents() {
	for {
		select {
		case ev := <-w.events:
			w.handleEvent(ev)
		default:
			return
		}
	}
}

func (w *Window) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyCtrlC:
			w.RequestClose()
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			w.RequestClose()
		default:
			if len(w.keys) < constants.KeyQueueSize {
				w.keys = append(w.keys, ev)
			}
		}

	case *tcell.EventResize:
		width, height := ev.Size()
		if width == w.width && height == w.height {
			return
		}
		w.width, w.height = width, height
		w.screen.Sync()
		if w.opts.OnResize != nil {
			w.opts.OnResize(width, height)
		}
	}
}

// pace sleeps until the next frame deadline, dropping the schedule when far behind
func (w *Window) pace() {
	if w.frameInterval <= 0 {
		return
	}

	now := time.Now()
	if w.nextFrame.IsZero() || now.Sub(w.nextFrame) > 2*w.frameInterval {
		w.nextFrame = now
	}
	w.nextFrame = w.nextFrame.Add(w.frameInterval)

	if d := w.nextFrame.Sub(now); d > 0 {
		time.Sleep(d)
	}
}
