package importer

import (
	"testing"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func squareSegments() []segment {
	return []segment{
		{start: model.Point{X: 0, Y: 0}, end: model.Point{X: 1000, Y: 0}},
		{start: model.Point{X: 1000, Y: 1000}, end: model.Point{X: 1000, Y: 0}},
		{start: model.Point{X: 1000, Y: 1000}, end: model.Point{X: 0, Y: 1000}},
		{start: model.Point{X: 0, Y: 1000}, end: model.Point{X: 0, Y: 0.005}},
	}
}

func TestChainSegments_ClosedLoopAndLooseLine(t *testing.T) {
	segs := append(squareSegments(), segment{start: model.Point{X: 0, Y: 400}, end: model.Point{X: 0, Y: 600}})

	closed, loose := chainSegments(segs, chainTolerance)

	require.Len(t, closed, 1)
	assert.Len(t, closed[0], 4)
	room, err := model.NewPolygon(closed[0])
	require.NoError(t, err)
	assert.InDelta(t, 1e6, room.Area(), 10)

	require.Len(t, loose, 1)
	assert.Equal(t, model.Point{X: 0, Y: 400}, loose[0].start)
	assert.Equal(t, model.Point{X: 0, Y: 600}, loose[0].end)
}

func TestChainSegments_Empty(t *testing.T) {
	closed, loose := chainSegments(nil, chainTolerance)
	assert.Nil(t, closed)
	assert.Nil(t, loose)
}

func TestPickRoom_LargestOutlineAndDoor(t *testing.T) {
	room := []model.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}
	rug := []model.Point{{X: 100, Y: 100}, {X: 200, Y: 100}, {X: 200, Y: 200}}
	loose := []segment{
		{start: model.Point{X: 500, Y: 500}, end: model.Point{X: 600, Y: 500}},
		{start: model.Point{X: 1000, Y: 300}, end: model.Point{X: 1000, Y: 500}},
	}

	result := pickRoom([][]model.Point{rug, room}, loose, RoomImportResult{})

	require.Empty(t, result.Errors)
	assert.Equal(t, room, result.Boundary)
	assert.Equal(t, model.Point{X: 1000, Y: 300}, result.Door.A)
	assert.Equal(t, model.Point{X: 1000, Y: 500}, result.Door.B)
	assert.False(t, result.Door.OpenInward)
	assert.Len(t, result.Warnings, 1)
}

func TestPickRoom_Errors(t *testing.T) {
	result := pickRoom(nil, nil, RoomImportResult{})
	assert.NotEmpty(t, result.Errors)

	room := []model.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}
	result = pickRoom([][]model.Point{room}, nil, RoomImportResult{})
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "No door")
}

func TestPickRoom_SkipsDegenerateShapes(t *testing.T) {
	sliver := []model.Point{{X: 0, Y: 0}, {X: 5000, Y: 0}}
	room := []model.Point{{X: 0, Y: 0}, {X: 1000, Y: 0}, {X: 1000, Y: 1000}, {X: 0, Y: 1000}}
	loose := []segment{{start: model.Point{X: 0, Y: 400}, end: model.Point{X: 0, Y: 600}}}

	result := pickRoom([][]model.Point{sliver, room}, loose, RoomImportResult{})

	require.Empty(t, result.Errors)
	assert.Equal(t, room, result.Boundary)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Skipping closed shape 1")

	result = pickRoom([][]model.Point{sliver}, loose, RoomImportResult{})
	assert.NotEmpty(t, result.Errors)
}

func TestImportRoomDXF_FileNotFound(t *testing.T) {
	result := ImportRoomDXF("/nonexistent/room.dxf")
	assert.NotEmpty(t, result.Errors)
}
