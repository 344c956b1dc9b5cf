package render

import (
	"math"

	"github.com/gdamore/tcell/v2"
)

// RGB is a 24-bit color; tcell downsamples it on 256-color terminals
type RGB struct {
	R, G, B uint8
}

var (
	RGBBlack = RGB{0, 0, 0}
	RGBRed   = RGB{255, 0, 0}
	RGBGreen = RGB{0, 255, 0}
	RGBBlue  = RGB{0, 0, 255}
	RGBHUD   = RGB{200, 200, 200}
)

// Color converts to a tcell color
func (c RGB) Color() tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Mix3 blends three colors by barycentric weights
func Mix3(a, b, c RGB, wa, wb, wc float64) RGB {
	mix := func(x, y, z uint8) uint8 {
		return clamp(wa*float64(x) + wb*float64(y) + wc*float64(z))
	}
	return RGB{
		R: mix(a.R, b.R, c.R),
		G: mix(a.G, b.G, c.G),
		B: mix(a.B, b.B, c.B),
	}
}

// clamp converts float to uint8 with rounding
func clamp(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.Round(v))
}
