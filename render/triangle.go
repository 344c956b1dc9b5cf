package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/tickloop/vmath"
)

// cellAspect is the height/width ratio of a terminal cell
const cellAspect = 2.0

// Vertex is a model-space corner with its color
type Vertex struct {
	Pos   vmath.Vec2
	Color RGB
}

// DefaultTriangle is the demo geometry: model coordinates in [-1, 1]
var DefaultTriangle = [3]Vertex{
	{Pos: vmath.Vec2{X: -0.6, Y: -0.4}, Color: RGBRed},
	{Pos: vmath.Vec2{X: 0.6, Y: -0.4}, Color: RGBGreen},
	{Pos: vmath.Vec2{X: 0, Y: 0.6}, Color: RGBBlue},
}

// TriangleRenderer rasterizes a rotating, vertex-colored triangle into cells
// Geometry is fixed at construction; each frame only rotates three points
type TriangleRenderer struct {
	verts [3]Vertex
	glyph rune
}

// NewTriangleRenderer creates a renderer for the given geometry
func NewTriangleRenderer(verts [3]Vertex) *TriangleRenderer {
	return &TriangleRenderer{verts: verts, glyph: '█'}
}

// Render implements Renderer
func (r *TriangleRenderer) Render(ctx Context, screen tcell.Screen) {
	if ctx.Width <= 0 || ctx.Height <= 0 {
		return
	}

	var p [3]vmath.Vec2
	for i, v := range r.verts {
		p[i] = v.Pos.Rotate(ctx.Angle)
	}

	// Orthographic projection with x spanning [-ratio, ratio] so the shape keeps its proportions
	ratio := float64(ctx.Width) / (float64(ctx.Height) * cellAspect)

	for y := 0; y < ctx.Height; y++ {
		wy := 1 - (float64(y)+0.5)/float64(ctx.Height)*2
		for x := 0; x < ctx.Width; x++ {
			wx := ((float64(x)+0.5)/float64(ctx.Width)*2 - 1) * ratio

			w0, w1, w2, ok := vmath.Barycentric(p[0], p[1], p[2], vmath.Vec2{X: wx, Y: wy})
			if !ok {
				continue
			}

			c := Mix3(r.verts[0].Color, r.verts[1].Color, r.verts[2].Color, w0, w1, w2)
			screen.SetContent(x, y, r.glyph, nil, tcell.StyleDefault.Foreground(c.Color()))
		}
	}
}
