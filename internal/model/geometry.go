package model

import (
	"errors"
	"fmt"
	"math"
)

// Tolerance is the absolute tolerance used for every coordinate comparison.
const Tolerance = 1e-6

// ErrInvalidGeometry is returned (wrapped) for malformed rooms and doors.
var ErrInvalidGeometry = errors.New("invalid geometry")

// Point represents a 2D coordinate in mm.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Equal reports whether both coordinates match within Tolerance.
func (p Point) Equal(o Point) bool {
	return math.Abs(p.X-o.X) < Tolerance && math.Abs(p.Y-o.Y) < Tolerance
}

func (p Point) String() string {
	return fmt.Sprintf("(%g, %g)", p.X, p.Y)
}

// Edge is one side of a polygon, from A to B.
type Edge struct {
	A, B Point
}

// Horizontal reports whether both endpoints share a y-coordinate.
func (e Edge) Horizontal() bool {
	return math.Abs(e.A.Y-e.B.Y) < Tolerance
}

// Vertical reports whether both endpoints share an x-coordinate.
func (e Edge) Vertical() bool {
	return math.Abs(e.A.X-e.B.X) < Tolerance
}

// Length returns the Euclidean length of the edge.
func (e Edge) Length() float64 {
	return math.Hypot(e.B.X-e.A.X, e.B.Y-e.A.Y)
}

// Midpoint returns the point halfway between A and B.
func (e Edge) Midpoint() Point {
	return Point{X: (e.A.X + e.B.X) / 2, Y: (e.A.Y + e.B.Y) / 2}
}

// onSegment reports whether p lies on the edge within Tolerance.
func (e Edge) onSegment(p Point) bool {
	dx := e.B.X - e.A.X
	dy := e.B.Y - e.A.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return p.Equal(e.A)
	}
	t := ((p.X-e.A.X)*dx + (p.Y-e.A.Y)*dy) / lenSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	nx := e.A.X + t*dx
	ny := e.A.Y + t*dy
	return math.Hypot(p.X-nx, p.Y-ny) <= Tolerance
}

// Polygon is a closed room outline. The last vertex connects back to the
// first. Polygons are read-only once built by NewPolygon.
type Polygon struct {
	points []Point
}

// NewPolygon validates the vertex ring and returns a Polygon.
// A trailing vertex equal to the first one is an explicit closure and is
// dropped before validation.
func NewPolygon(points []Point) (Polygon, error) {
	pts := make([]Point, len(points))
	copy(pts, points)
	if len(pts) > 1 && pts[0].Equal(pts[len(pts)-1]) {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return Polygon{}, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalidGeometry, len(pts))
	}
	for i := range pts {
		j := (i + 1) % len(pts)
		if pts[i].Equal(pts[j]) {
			return Polygon{}, fmt.Errorf("%w: degenerate edge at vertex %d %s", ErrInvalidGeometry, i, pts[i])
		}
	}
	return Polygon{points: pts}, nil
}

// Points returns a copy of the vertex ring (without the closing vertex).
func (p Polygon) Points() []Point {
	out := make([]Point, len(p.points))
	copy(out, p.points)
	return out
}

// Len returns the number of vertices.
func (p Polygon) Len() int {
	return len(p.points)
}

// IsEmpty reports whether the polygon has no vertices (the zero value).
func (p Polygon) IsEmpty() bool {
	return len(p.points) == 0
}

// Edges returns the boundary edges in vertex order. This is the canonical
// enumeration order for wall candidates.
func (p Polygon) Edges() []Edge {
	n := len(p.points)
	edges := make([]Edge, 0, n)
	for i := 0; i < n; i++ {
		edges = append(edges, Edge{A: p.points[i], B: p.points[(i+1)%n]})
	}
	return edges
}

// Contains reports whether pt lies inside the polygon using even-odd ray
// casting. Points on the boundary (within Tolerance) count as inside.
func (p Polygon) Contains(pt Point) bool {
	n := len(p.points)
	if n < 3 {
		return false
	}
	inside := false
	for i := 0; i < n; i++ {
		a := p.points[i]
		b := p.points[(i+1)%n]
		if (Edge{A: a, B: b}).onSegment(pt) {
			return true
		}
		if (a.Y > pt.Y) != (b.Y > pt.Y) &&
			pt.X < (b.X-a.X)*(pt.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// ContainsStrict reports whether pt lies inside the polygon and not on its
// boundary.
func (p Polygon) ContainsStrict(pt Point) bool {
	return !p.OnBoundary(pt) && p.Contains(pt)
}

// OnBoundary reports whether pt lies on one of the polygon's edges.
func (p Polygon) OnBoundary(pt Point) bool {
	for _, e := range p.Edges() {
		if e.onSegment(pt) {
			return true
		}
	}
	return false
}

// Bounds returns the min and max corners over all vertices.
func (p Polygon) Bounds() (min, max Point) {
	if len(p.points) == 0 {
		return Point{}, Point{}
	}
	min, max = p.points[0], p.points[0]
	for _, v := range p.points[1:] {
		min.X = math.Min(min.X, v.X)
		min.Y = math.Min(min.Y, v.Y)
		max.X = math.Max(max.X, v.X)
		max.Y = math.Max(max.Y, v.Y)
	}
	return min, max
}

// HasVertex reports whether pt coincides with one of the polygon's vertices.
func (p Polygon) HasVertex(pt Point) bool {
	for _, v := range p.points {
		if v.Equal(pt) {
			return true
		}
	}
	return false
}

// Area computes the absolute area using the shoelace formula.
func (p Polygon) Area() float64 {
	n := len(p.points)
	if n < 3 {
		return 0
	}
	var area float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		area += p.points[i].X * p.points[j].Y
		area -= p.points[j].X * p.points[i].Y
	}
	return math.Abs(area) / 2
}
