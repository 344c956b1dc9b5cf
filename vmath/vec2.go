package vmath

import "math"

// Vec2 is a point or direction in normalized device coordinates
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Sub(o Vec2) Vec2      { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Cross(o Vec2) float64 { return v.X*o.Y - v.Y*o.X }

// Rotate turns v counter-clockwise about the origin by deg degrees
func (v Vec2) Rotate(deg float64) Vec2 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Lerp blends a toward b; t=0 yields a, t=1 yields b
func Lerp(a, b, t float64) float64 {
	return (1-t)*a + t*b
}

// Barycentric returns the weights of p relative to triangle abc
// ok is false when p lies outside the triangle or the triangle is degenerate
// Works for either winding
func Barycentric(a, b, c, p Vec2) (w0, w1, w2 float64, ok bool) {
	area := b.Sub(a).Cross(c.Sub(a))
	if area == 0 {
		return 0, 0, 0, false
	}

	w0 = c.Sub(b).Cross(p.Sub(b)) / area
	w1 = a.Sub(c).Cross(p.Sub(c)) / area
	w2 = 1 - w0 - w1

	const eps = -1e-9
	if w0 < eps || w1 < eps || w2 < eps {
		return 0, 0, 0, false
	}
	return w0, w1, w2, true
}
