package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareRoom(t *testing.T) Polygon {
	t.Helper()
	room, err := NewPolygon([]Point{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}})
	require.NoError(t, err)
	return room
}

func TestPointEqualWithinTolerance(t *testing.T) {
	assert.True(t, Point{1, 2}.Equal(Point{1 + 1e-7, 2 - 1e-7}))
	assert.False(t, Point{1, 2}.Equal(Point{1.001, 2}))
}

func TestNewPolygon_TooFewVertices(t *testing.T) {
	_, err := NewPolygon([]Point{{0, 0}, {10, 0}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestNewPolygon_DegenerateEdge(t *testing.T) {
	_, err := NewPolygon([]Point{{0, 0}, {10, 0}, {10, 0}, {0, 10}})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestNewPolygon_DropsExplicitClosure(t *testing.T) {
	room, err := NewPolygon([]Point{{0, 0}, {1000, 0}, {1000, 1000}, {0, 1000}, {0, 0}})
	require.NoError(t, err)
	assert.Equal(t, 4, room.Len())
	assert.Len(t, room.Edges(), 4)
}

func TestNewPolygon_ClosedTriangleTooSmall(t *testing.T) {
	// Three points where the last closes the ring leaves only two vertices.
	_, err := NewPolygon([]Point{{0, 0}, {10, 0}, {0, 0}})
	assert.True(t, errors.Is(err, ErrInvalidGeometry))
}

func TestPolygonContains_Interior(t *testing.T) {
	room := squareRoom(t)
	assert.True(t, room.Contains(Point{500, 500}))
	assert.True(t, room.Contains(Point{1, 999}))
}

func TestPolygonContains_OutsideBounds(t *testing.T) {
	room := squareRoom(t)
	assert.False(t, room.Contains(Point{-1, 500}))
	assert.False(t, room.Contains(Point{500, 1001}))
	assert.False(t, room.Contains(Point{2000, 2000}))
}

func TestPolygonContains_BoundaryIsStable(t *testing.T) {
	room := squareRoom(t)
	boundary := []Point{{0, 0}, {1000, 1000}, {500, 0}, {1000, 500}, {500, 1000}, {0, 500}}
	for _, p := range boundary {
		first := room.Contains(p)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, room.Contains(p), "classification of %s changed", p)
		}
		assert.True(t, first, "boundary point %s should count as inside", p)
	}
}

func TestPolygonContains_Concave(t *testing.T) {
	// L-shaped room: the upper-right quadrant is cut away.
	room, err := NewPolygon([]Point{{0, 0}, {1000, 0}, {1000, 500}, {500, 500}, {500, 1000}, {0, 1000}})
	require.NoError(t, err)

	assert.True(t, room.Contains(Point{250, 750}))
	assert.True(t, room.Contains(Point{750, 250}))
	assert.False(t, room.Contains(Point{750, 750}))
}

func TestPolygonBounds(t *testing.T) {
	room, err := NewPolygon([]Point{{-5, 10}, {20, 10}, {20, 40}, {-5, 35}})
	require.NoError(t, err)

	min, max := room.Bounds()
	assert.Equal(t, Point{-5, 10}, min)
	assert.Equal(t, Point{20, 40}, max)
}

func TestPolygonArea(t *testing.T) {
	room := squareRoom(t)
	assert.InDelta(t, 1e6, room.Area(), 1e-9)
}

func TestEdgeClassification(t *testing.T) {
	h := Edge{A: Point{0, 0}, B: Point{100, 0}}
	v := Edge{A: Point{0, 0}, B: Point{0, 100}}

	assert.True(t, h.Horizontal())
	assert.False(t, h.Vertical())
	assert.True(t, v.Vertical())
	assert.InDelta(t, 100.0, v.Length(), 1e-9)
	assert.Equal(t, Point{0, 50}, v.Midpoint())
}

func TestPolygonOnBoundary(t *testing.T) {
	room := squareRoom(t)
	assert.True(t, room.OnBoundary(Point{0, 500}))
	assert.True(t, room.OnBoundary(Point{1000, 1000}))
	assert.False(t, room.OnBoundary(Point{500, 500}))
	assert.False(t, room.OnBoundary(Point{-1, 500}))
}

func TestPolygonContainsStrict(t *testing.T) {
	room := squareRoom(t)
	assert.True(t, room.ContainsStrict(Point{500, 500}))
	assert.False(t, room.ContainsStrict(Point{0, 500}), "edge points are not strictly inside")
	assert.False(t, room.ContainsStrict(Point{1000, 0}))
	assert.False(t, room.ContainsStrict(Point{1500, 500}))
}
