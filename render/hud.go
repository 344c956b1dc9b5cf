package render

import (
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tickloop/status"
)

// HUDRenderer writes the rate line on the top row
type HUDRenderer struct {
	statUPS  *atomic.Int64
	statFPS  *atomic.Int64
	statRate *status.AtomicFloat
	visible  bool
}

// NewHUDRenderer reads loop metrics from reg
func NewHUDRenderer(reg *status.Registry) *HUDRenderer {
	return &HUDRenderer{
		statUPS:  reg.Ints.Get("loop.ups"),
		statFPS:  reg.Ints.Get("loop.fps"),
		statRate: reg.Floats.Get("spinner.rate"),
		visible:  true,
	}
}

// IsVisible implements VisibilityToggle
func (h *HUDRenderer) IsVisible() bool { return h.visible }

// Toggle shows or hides the HUD
func (h *HUDRenderer) Toggle() { h.visible = !h.visible }

// Line formats the HUD text for a frame
func (h *HUDRenderer) Line(ctx Context) string {
	return fmt.Sprintf(" UPS %3d  FPS %4d  α %.2f  θ %7.1f°  ω %+4.0f°/s  [+/-] speed [r] reverse [h] hud [q] quit",
		h.statUPS.Load(), h.statFPS.Load(), ctx.Alpha, ctx.Angle, h.statRate.Get())
}

// Render implements Renderer
func (h *HUDRenderer) Render(ctx Context, screen tcell.Screen) {
	style := tcell.StyleDefault.Foreground(RGBHUD.Color()).Background(RGBBlack.Color())

	x := 0
	for _, r := range h.Line(ctx) {
		if x >= ctx.Width {
			break
		}
		screen.SetContent(x, 0, r, nil, style)
		x++
	}
	for ; x < ctx.Width; x++ {
		screen.SetContent(x, 0, ' ', nil, style)
	}
}
