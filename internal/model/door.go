package model

import (
	"fmt"
	"math"
)

// Door is an opening in one wall, given by its two endpoints.
type Door struct {
	A          Point
	B          Point
	OpenInward bool
	vertical   bool
	width      float64
}

// NewDoor validates the door segment. The endpoints must share an x- or
// y-coordinate and be at distinct positions.
func NewDoor(a, b Point, openInward bool) (Door, error) {
	d := Door{A: a, B: b, OpenInward: openInward}
	switch {
	case math.Abs(a.X-b.X) < Tolerance:
		d.vertical = true
		d.width = math.Abs(a.Y - b.Y)
	case math.Abs(a.Y-b.Y) < Tolerance:
		d.width = math.Abs(a.X - b.X)
	default:
		return Door{}, fmt.Errorf("%w: door %s-%s is not axis-aligned", ErrInvalidGeometry, a, b)
	}
	if d.width < Tolerance {
		return Door{}, fmt.Errorf("%w: door %s-%s has zero width", ErrInvalidGeometry, a, b)
	}
	return d, nil
}

// Width returns the door width along its wall.
func (d Door) Width() float64 {
	return d.width
}

// Vertical reports whether the door sits on a vertical wall.
func (d Door) Vertical() bool {
	return d.vertical
}

// Midpoint returns the center of the door segment.
func (d Door) Midpoint() Point {
	return Point{X: (d.A.X + d.B.X) / 2, Y: (d.A.Y + d.B.Y) / 2}
}

// ObstructionArea returns the square swept by an inward-opening door: side
// Width, anchored on the door's midpoint and extending one full width into
// the room. The side is picked by probing width/2 off the midpoint toward +x
// (vertical doors) or +y (horizontal doors); if the probe is outside the room
// the square goes the other way. Returns false when the door opens outward.
func (d Door) ObstructionArea(room Polygon) (Polygon, bool) {
	if !d.OpenInward {
		return Polygon{}, false
	}
	c := d.Midpoint()
	n := d.width
	var pts []Point
	if d.vertical {
		if room.Contains(Point{X: c.X + n/2, Y: c.Y}) {
			pts = []Point{{c.X, c.Y - n/2}, {c.X + n, c.Y - n/2}, {c.X + n, c.Y + n/2}, {c.X, c.Y + n/2}}
		} else {
			pts = []Point{{c.X - n, c.Y - n/2}, {c.X, c.Y - n/2}, {c.X, c.Y + n/2}, {c.X - n, c.Y + n/2}}
		}
	} else {
		if room.Contains(Point{X: c.X, Y: c.Y + n/2}) {
			pts = []Point{{c.X - n/2, c.Y}, {c.X + n/2, c.Y}, {c.X + n/2, c.Y + n}, {c.X - n/2, c.Y + n}}
		} else {
			pts = []Point{{c.X - n/2, c.Y - n}, {c.X + n/2, c.Y - n}, {c.X + n/2, c.Y}, {c.X - n/2, c.Y}}
		}
	}
	// Width is validated non-zero, so the square is never degenerate.
	area, _ := NewPolygon(pts)
	return area, true
}
