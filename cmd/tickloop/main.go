// Command tickloop spins a colored triangle in the terminal on a
// fixed-timestep loop, rendering between simulation steps
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/lixenwraith/tickloop/audio"
	"github.com/lixenwraith/tickloop/config"
	"github.com/lixenwraith/tickloop/core"
	"github.com/lixenwraith/tickloop/debug"
	"github.com/lixenwraith/tickloop/engine"
	"github.com/lixenwraith/tickloop/engine/services"
	"github.com/lixenwraith/tickloop/spinner"
	"github.com/lixenwraith/tickloop/status"
	"github.com/lixenwraith/tickloop/terminal"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Until the window owns the terminal, a crash only needs the escape-sequence reset
	core.SetCrashCleanup(func() { terminal.EmergencyReset(os.Stdout) })
	defer func() {
		if r := recover(); r != nil {
			core.HandleCrash(r)
		}
	}()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tickloop: %v\n", err)
		return 1
	}
	opts.apply(&cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "tickloop: %v\n", err)
		return 1
	}

	if logFile := setupLogging(cfg.Log.Enabled, cfg.Log.Dir); logFile != nil {
		defer logFile.Close()
	}

	session := uuid.NewString()
	log.SetPrefix(fmt.Sprintf("[%s] ", shortID(session)))
	log.Printf("tickloop: session %s, %d UPS, max %d FPS", session, cfg.Loop.TargetUPS, cfg.Loop.MaxFPS)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(cfg, session, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "tickloop: %v\n", err)
		return 1
	}

	runErr := a.loop.Run(ctx)

	// The terminal is released by now
	a.printSummary(os.Stdout)

	if runErr != nil {
		if errors.Is(runErr, engine.ErrStartup) {
			fmt.Fprintf(os.Stderr, "tickloop: could not start: %v\n", runErr)
		} else {
			fmt.Fprintf(os.Stderr, "tickloop: %v\n", runErr)
		}
		return 1
	}
	return 0
}

// app is one wired run: services, simulation and loop
type app struct {
	session string
	status  *status.Registry
	hub     *services.Hub
	window  *terminal.Window
	spinner *spinner.Spinner
	loop    *engine.Loop[spinner.State]

	started    time.Time
	lastReport engine.RateReport
}

// newApp wires every component; screen is nil outside tests
func newApp(cfg config.Config, session string, screen tcell.Screen) (*app, error) {
	color, err := terminal.ParseColorMode(cfg.Terminal.Color)
	if err != nil {
		return nil, err
	}

	a := &app{
		session: session,
		status:  status.NewRegistry(),
		hub:     services.NewHub(),
		spinner: spinner.New(cfg.Spinner.DegreesPerSecond),
	}
	a.status.Strings.Get("session.id").Store(session)

	a.window = terminal.New(terminal.Options{
		Color:  color,
		MaxFPS: cfg.Loop.MaxFPS,
		Screen: screen,
		OnResize: func(w, h int) {
			log.Printf("terminal: resized to %dx%d", w, h)
		},
	})
	scn := newScene(a.window, a.status)

	clockOpts := []engine.ClockOption{
		engine.WithMaxDelta(cfg.Loop.MaxFrameTime.Duration),
		engine.WithRateSink(a.onReport),
	}

	svcs := []services.Service{a.window, scn}
	if cfg.Audio.Enabled {
		metronome := audio.NewMetronome(audio.Options{
			Enabled:   true,
			TargetUPS: cfg.Loop.TargetUPS,
			Volume:    cfg.Audio.Volume,
		})
		svcs = append(svcs, metronome)
		clockOpts = append(clockOpts, engine.WithRateSink(metronome.Cue))
	}
	if cfg.Debug.Addr != "" {
		svcs = append(svcs, debug.NewServer(debug.Options{
			Addr:      cfg.Debug.Addr,
			SessionID: session,
			Status:    a.status,
		}))
	}
	for _, svc := range svcs {
		if err := a.hub.Register(svc); err != nil {
			return nil, err
		}
	}

	controls := spinner.NewControls(a.window, a.spinner)
	controls.Bind('h', scn.hud.Toggle)
	statRate := a.status.Floats.Get("spinner.rate")
	statRate.Set(a.spinner.Rate())

	a.loop, err = engine.NewLoop(engine.LoopConfig[spinner.State]{
		TargetUPS: cfg.Loop.TargetUPS,
		Clock:     engine.NewClock(engine.NewMonotonicTimeProvider(), clockOpts...),
		Window:    a.window,
		Input: func() error {
			if err := controls.HandleInput(); err != nil {
				return err
			}
			statRate.Set(a.spinner.Rate())
			return nil
		},
		Update:    a.spinner.Update,
		Render:    scn.Render,
		Resources: a.hub,
		Status:    a.status,
	})
	if err != nil {
		return nil, err
	}

	a.started = time.Now()
	return a, nil
}

func (a *app) onReport(r engine.RateReport) {
	a.lastReport = r
	log.Printf("FPS: %d | UPS: %d", r.FPS, r.UPS)
}

// printSummary writes the run summary once the loop has run; a startup failure prints only its diagnostic
func (a *app) printSummary(w io.Writer) {
	if a.loop.State() == engine.StateUninitialized {
		return
	}
	fmt.Fprintln(w, a.summary())
}

func (a *app) summary() string {
	return fmt.Sprintf("tickloop %s: %d updates, %d frames in %v (last report %d UPS, %d FPS)",
		shortID(a.session), a.loop.Updates(), a.loop.Frames(),
		time.Since(a.started).Round(time.Millisecond), a.lastReport.UPS, a.lastReport.FPS)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
