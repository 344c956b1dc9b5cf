package render

// Context is the per-frame input to renderers, passed by value
type Context struct {
	// Alpha is the loop's interpolation factor for this frame
	Alpha float64

	// Angle is the interpolated spinner angle in degrees
	Angle float64

	// Screen dimensions (terminal size)
	Width  int
	Height int
}
