package model

import "math"

// Rectangle is an item footprint centered at Center. Length and Width are the
// item's original dimensions and never change; Rotate only swaps which one
// spans the x-axis.
//
// Unrotated, Width runs along x and Length along y. Rotation is limited to
// 0° and 90°, so the vertices always form an axis-aligned box. Overlap checks
// in the engine rely on that: a general rotation would need a real polygon
// intersection test.
type Rectangle struct {
	Center  Point
	Length  float64
	Width   float64
	rotated bool
	verts   [4]Point
}

// NewRectangle creates an unrotated rectangle.
func NewRectangle(center Point, length, width float64) Rectangle {
	r := Rectangle{Center: center, Length: length, Width: width}
	r.updateVertices()
	return r
}

func (r *Rectangle) updateVertices() {
	halfW, halfH := r.Width/2, r.Length/2
	if r.rotated {
		halfW, halfH = r.Length/2, r.Width/2
	}
	x, y := r.Center.X, r.Center.Y
	r.verts = [4]Point{
		{X: x - halfW, Y: y - halfH},
		{X: x + halfW, Y: y - halfH},
		{X: x + halfW, Y: y + halfH},
		{X: x - halfW, Y: y + halfH},
	}
}

// Rotate toggles between 0° and 90° and recomputes the vertices.
func (r *Rectangle) Rotate() {
	r.rotated = !r.rotated
	r.updateVertices()
}

// Rotated reports whether the rectangle is at 90°.
func (r Rectangle) Rotated() bool {
	return r.rotated
}

// Angle returns 0 or 90.
func (r Rectangle) Angle() int {
	if r.rotated {
		return 90
	}
	return 0
}

// Vertices returns the corners counter-clockwise from the lower-left.
func (r Rectangle) Vertices() [4]Point {
	return r.verts
}

// Dimensions returns the current extents: width along x, length along y.
func (r Rectangle) Dimensions() (width, length float64) {
	if r.rotated {
		return r.Length, r.Width
	}
	return r.Width, r.Length
}

// Bounds returns the axis-aligned bounding box derived from the vertices.
func (r Rectangle) Bounds() (min, max Point) {
	min, max = r.verts[0], r.verts[0]
	for _, v := range r.verts[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// Area returns Length * Width.
func (r Rectangle) Area() float64 {
	return r.Length * r.Width
}
