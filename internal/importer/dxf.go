package importer

import (
	"fmt"
	"math"
	"sort"

	"github.com/piwi3910/roomfit/internal/model"
	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"
)

// chainTolerance is the maximum gap between LINE endpoints that still counts
// as connected.
const chainTolerance = 0.01

// segment is a line between two points, used for chaining disconnected LINE
// entities into room outlines.
type segment struct {
	start model.Point
	end   model.Point
}

// RoomImportResult holds a room outline and door read from a drawing.
type RoomImportResult struct {
	Boundary []model.Point
	Door     model.DoorSpec
	Errors   []string
	Warnings []string
}

// ImportRoomDXF reads a room from a DXF drawing. The largest closed shape
// (LWPOLYLINE or chain of connected LINEs) becomes the room boundary. The
// first loose LINE lying on that boundary becomes the door. Drawings cannot
// express the swing direction, so the door is returned opening outward.
func ImportRoomDXF(path string) RoomImportResult {
	result := RoomImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	var outlines [][]model.Point
	var segments []segment

	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.LwPolyline:
			outline, curved := lwPolylinePoints(e)
			if curved {
				result.Warnings = append(result.Warnings,
					"LWPOLYLINE bulges ignored, rooms must have straight walls")
			}
			if len(outline) >= 3 {
				outlines = append(outlines, outline)
			} else {
				result.Warnings = append(result.Warnings,
					"Skipped LWPOLYLINE with fewer than 3 vertices")
			}

		case *entity.Line:
			segments = append(segments, segment{
				start: model.Point{X: e.Start[0], Y: e.Start[1]},
				end:   model.Point{X: e.End[0], Y: e.End[1]},
			})

		default:
			// Unsupported entity types are silently skipped
		}
	}

	closed, open := chainSegments(segments, chainTolerance)
	outlines = append(outlines, closed...)

	return pickRoom(outlines, open, result)
}

// pickRoom chooses the boundary and door from the shapes found in a drawing.
func pickRoom(outlines [][]model.Point, loose []segment, result RoomImportResult) RoomImportResult {
	if len(outlines) == 0 {
		result.Errors = append(result.Errors, "No closed room outline found in DXF file")
		return result
	}

	var rooms []model.Polygon
	for i, o := range outlines {
		poly, err := model.NewPolygon(o)
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("Skipping closed shape %d: %v", i+1, err))
			continue
		}
		rooms = append(rooms, poly)
	}
	if len(rooms) == 0 {
		result.Errors = append(result.Errors, "No valid room outline found in DXF file")
		return result
	}

	sort.SliceStable(rooms, func(i, j int) bool {
		return rooms[i].Area() > rooms[j].Area()
	})
	if len(rooms) > 1 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Found %d closed shapes, using the largest as the room", len(rooms)))
	}
	room := rooms[0]
	result.Boundary = room.Points()

	for _, s := range loose {
		if room.OnBoundary(s.start) && room.OnBoundary(s.end) {
			result.Door = model.DoorSpec{A: s.start, B: s.end}
			return result
		}
	}

	result.Errors = append(result.Errors, "No door found: draw the door as a LINE on a room wall")
	return result
}

// lwPolylinePoints returns the vertices of an LWPOLYLINE and whether any
// vertex carried a bulge.
func lwPolylinePoints(lw *entity.LwPolyline) ([]model.Point, bool) {
	pts := make([]model.Point, 0, len(lw.Vertices))
	curved := false
	for i, v := range lw.Vertices {
		if i < len(lw.Bulges) && math.Abs(lw.Bulges[i]) > 1e-9 {
			curved = true
		}
		pts = append(pts, model.Point{X: v[0], Y: v[1]})
	}
	return pts, curved
}

// chainSegments connects segments end to end. Chains that return to their
// start are closed outlines (without the repeated closing point); the rest
// are returned as loose segments from their first to last point.
func chainSegments(segs []segment, tolerance float64) ([][]model.Point, []segment) {
	if len(segs) == 0 {
		return nil, nil
	}

	used := make([]bool, len(segs))
	var closed [][]model.Point
	var loose []segment

	for {
		startIdx := -1
		for i, u := range used {
			if !u {
				startIdx = i
				break
			}
		}
		if startIdx == -1 {
			break
		}

		chain := []model.Point{segs[startIdx].start, segs[startIdx].end}
		used[startIdx] = true

		changed := true
		for changed {
			changed = false
			tail := chain[len(chain)-1]

			for i, seg := range segs {
				if used[i] {
					continue
				}
				if pointsClose(tail, seg.start, tolerance) {
					chain = append(chain, seg.end)
					used[i] = true
					changed = true
					break
				}
				if pointsClose(tail, seg.end, tolerance) {
					chain = append(chain, seg.start)
					used[i] = true
					changed = true
					break
				}
			}
		}

		if len(chain) >= 4 && pointsClose(chain[0], chain[len(chain)-1], tolerance) {
			closed = append(closed, chain[:len(chain)-1])
			continue
		}
		loose = append(loose, segment{start: chain[0], end: chain[len(chain)-1]})
	}

	return closed, loose
}

// pointsClose checks whether two points are within the given tolerance.
func pointsClose(a, b model.Point, tolerance float64) bool {
	return math.Hypot(a.X-b.X, a.Y-b.Y) <= tolerance
}
