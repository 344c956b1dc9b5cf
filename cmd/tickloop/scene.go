package main

import (
	"errors"

	"github.com/lixenwraith/tickloop/render"
	"github.com/lixenwraith/tickloop/spinner"
	"github.com/lixenwraith/tickloop/status"
	"github.com/lixenwraith/tickloop/terminal"
)

// scene owns the render pipeline; it is a service so the pipeline is
// built once, after the window has a screen
type scene struct {
	window *terminal.Window
	tri    *render.TriangleRenderer
	hud    *render.HUDRenderer
	orch   *render.Orchestrator
}

func newScene(window *terminal.Window, reg *status.Registry) *scene {
	return &scene{
		window: window,
		tri:    render.NewTriangleRenderer(render.DefaultTriangle),
		hud:    render.NewHUDRenderer(reg),
	}
}

func (s *scene) Name() string           { return "scene" }
func (s *scene) Dependencies() []string { return []string{"window"} }
func (s *scene) Start() error           { return nil }
func (s *scene) Stop() error            { return nil }

func (s *scene) Init() error {
	screen := s.window.Screen()
	if screen == nil {
		return errors.New("scene: window has no screen")
	}
	s.orch = render.NewOrchestrator(screen)
	s.orch.Register(s.tri, render.PriorityEntities)
	s.orch.Register(s.hud, render.PriorityUI)
	return nil
}

// Render draws the state blended alpha of the way from previous to current
func (s *scene) Render(alpha float64, previous, current spinner.State) error {
	if s.orch == nil {
		return errors.New("scene: render before init")
	}

	view := spinner.Lerp(previous, current, alpha)
	width, height := s.window.Size()
	s.orch.RenderFrame(render.Context{
		Alpha:  alpha,
		Angle:  view.Angle,
		Width:  width,
		Height: height,
	})
	return nil
}
