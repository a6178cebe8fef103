package engine

import (
	"fmt"
	"iter"
	"math"

	"github.com/piwi3910/roomfit/internal/model"
	"k8s.io/klog/v2"
)

// Packer places items against the walls of a room with a greedy first-fit
// search. A Packer is immutable after New; the list of placed rectangles is
// owned by each Pack call.
type Packer struct {
	room           model.Polygon
	door           model.Door
	obstruction    model.Polygon
	hasObstruction bool
	settings       model.Settings
}

// New builds a Packer and computes the door's swing area once.
// A door whose endpoint sits on a room vertex is rejected as invalid geometry.
// Settings at zero or below take their defaults; steps that are not finite or
// are below model.MinStep return model.ErrInvalidSettings.
func New(room model.Polygon, door model.Door, settings model.Settings) (*Packer, error) {
	if room.Len() < 3 {
		return nil, fmt.Errorf("%w: room polygon is empty", model.ErrInvalidGeometry)
	}
	if room.HasVertex(door.A) || room.HasVertex(door.B) {
		return nil, fmt.Errorf("%w: door endpoint %s-%s coincides with a room vertex",
			model.ErrInvalidGeometry, door.A, door.B)
	}

	defaults := model.DefaultSettings()
	if settings.Step <= 0 {
		settings.Step = defaults.Step
	}
	if settings.ProbeOffset <= 0 {
		settings.ProbeOffset = defaults.ProbeOffset
	}
	if settings.InteriorStep <= 0 {
		settings.InteriorStep = defaults.InteriorStep
	}
	if err := model.ValidateSettings(settings); err != nil {
		return nil, err
	}

	p := &Packer{room: room, door: door, settings: settings}
	p.obstruction, p.hasObstruction = door.ObstructionArea(room)
	return p, nil
}

// NewFromRequest validates the raw room and door of a request and builds a Packer.
func NewFromRequest(req model.Request, settings model.Settings) (*Packer, error) {
	room, err := model.NewPolygon(req.Boundary)
	if err != nil {
		return nil, fmt.Errorf("room boundary: %w", err)
	}
	door, err := model.NewDoor(req.Door.A, req.Door.B, req.Door.OpenInward)
	if err != nil {
		return nil, fmt.Errorf("door: %w", err)
	}
	return New(room, door, settings)
}

// Solve validates a request, packs its items and returns the result.
func Solve(req model.Request, settings model.Settings) (model.Result, error) {
	if err := model.ValidateItems(req.Items); err != nil {
		return model.Result{}, err
	}
	p, err := NewFromRequest(req, settings)
	if err != nil {
		return model.Result{}, err
	}
	return p.Pack(req.Items), nil
}

// Room returns the room outline.
func (p *Packer) Room() model.Polygon {
	return p.room
}

// Door returns the door.
func (p *Packer) Door() model.Door {
	return p.door
}

// Obstruction returns the door's swing area, if the door opens inward.
func (p *Packer) Obstruction() (model.Polygon, bool) {
	return p.obstruction, p.hasObstruction
}

// Valid reports whether rect can be placed given the rectangles already placed:
// every vertex is inside the room, it does not overlap any placed rectangle,
// and none of its vertices lies inside the door swing area.
func (p *Packer) Valid(rect model.Rectangle, placed []model.Rectangle) bool {
	for _, v := range rect.Vertices() {
		if !p.room.Contains(v) {
			return false
		}
	}
	for _, other := range placed {
		if Overlap(rect, other) {
			return false
		}
	}
	if p.hasObstruction {
		// Only vertices count: a rectangle crossing the swing area with all
		// four corners outside it is accepted. Corners on its edge are outside.
		for _, v := range rect.Vertices() {
			if p.obstruction.ContainsStrict(v) {
				return false
			}
		}
	}
	return true
}

// Overlap reports whether the bounding boxes of a and b share a region of
// positive area. Touching edges do not overlap.
//
// This is exact only because Rectangle is restricted to 0° and 90°: its
// silhouette is its bounding box. Arbitrary rotation would need a
// separating-axis test here.
func Overlap(a, b model.Rectangle) bool {
	aMin, aMax := a.Bounds()
	bMin, bMax := b.Bounds()
	return boxesOverlap(aMin, aMax, bMin, bMax)
}

func boxesOverlap(aMin, aMax, bMin, bMax model.Point) bool {
	return intervalsOverlap(aMin.X, aMax.X, bMin.X, bMax.X) &&
		intervalsOverlap(aMin.Y, aMax.Y, bMin.Y, bMax.Y)
}

func intervalsOverlap(a1, a2, b1, b2 float64) bool {
	return math.Max(a1, b1) < math.Min(a2, b2)-model.Tolerance
}

// footprint returns the x and y extents of item in the given orientation.
func footprint(item model.Item, rotated bool) (w, l float64) {
	if rotated {
		return item.Length, item.Width
	}
	return item.Width, item.Length
}

// place builds the rectangle for item at center in the given orientation.
func place(item model.Item, center model.Point, rotated bool) model.Rectangle {
	rect := model.NewRectangle(center, item.Length, item.Width)
	if rotated {
		rect.Rotate()
	}
	return rect
}

// WallPositions returns every valid wall-aligned position for item in the
// given orientation, in canonical order: edges in room order, then offsets
// along each edge.
func (p *Packer) WallPositions(item model.Item, rotated bool, placed []model.Rectangle) []model.Rectangle {
	var positions []model.Rectangle
	for rect := range p.wallCandidates(item, rotated) {
		if p.Valid(rect, placed) {
			positions = append(positions, rect)
		}
	}
	return positions
}

// wallCandidates yields candidate rectangles slid along each axis-aligned
// wall in Step increments. The item sits on the interior side of the wall,
// found by probing ProbeOffset off the edge midpoint. Walls shorter than the
// item's extent along them are skipped, as are diagonal walls.
func (p *Packer) wallCandidates(item model.Item, rotated bool) iter.Seq[model.Rectangle] {
	w, l := footprint(item, rotated)
	step := p.settings.Step
	probe := p.settings.ProbeOffset

	return func(yield func(model.Rectangle) bool) {
		for _, edge := range p.room.Edges() {
			mid := edge.Midpoint()
			switch {
			case edge.Horizontal():
				start := math.Min(edge.A.X, edge.B.X)
				end := math.Max(edge.A.X, edge.B.X)
				if end-start < w-model.Tolerance {
					continue
				}
				y := edge.A.Y
				if p.room.Contains(model.Point{X: mid.X, Y: y + probe}) {
					y += l / 2
				} else {
					y -= l / 2
				}
				for k := 0; ; k++ {
					x := start + float64(k)*step
					if x > end-w+model.Tolerance {
						break
					}
					if !yield(place(item, model.Point{X: x + w/2, Y: y}, rotated)) {
						return
					}
				}

			case edge.Vertical():
				start := math.Min(edge.A.Y, edge.B.Y)
				end := math.Max(edge.A.Y, edge.B.Y)
				if end-start < l-model.Tolerance {
					continue
				}
				x := edge.A.X
				if p.room.Contains(model.Point{X: x + probe, Y: mid.Y}) {
					x += w / 2
				} else {
					x -= w / 2
				}
				for k := 0; ; k++ {
					y := start + float64(k)*step
					if y > end-l+model.Tolerance {
						break
					}
					if !yield(place(item, model.Point{X: x, Y: y + l/2}, rotated)) {
						return
					}
				}
			}
		}
	}
}

// InteriorPositions returns valid positions on a grid over the room's bounds,
// row by row from the lower-left. Used only when Settings.InteriorFallback is set.
func (p *Packer) InteriorPositions(item model.Item, rotated bool, placed []model.Rectangle) []model.Rectangle {
	var positions []model.Rectangle
	for rect := range p.interiorCandidates(item, rotated) {
		if p.Valid(rect, placed) {
			positions = append(positions, rect)
		}
	}
	return positions
}

func (p *Packer) interiorCandidates(item model.Item, rotated bool) iter.Seq[model.Rectangle] {
	w, l := footprint(item, rotated)
	step := p.settings.InteriorStep
	min, max := p.room.Bounds()

	return func(yield func(model.Rectangle) bool) {
		for i := 0; ; i++ {
			x := min.X + w/2 + float64(i)*step
			if x > max.X-w/2+model.Tolerance {
				return
			}
			for j := 0; ; j++ {
				y := min.Y + l/2 + float64(j)*step
				if y > max.Y-l/2+model.Tolerance {
					break
				}
				if !yield(place(item, model.Point{X: x, Y: y}, rotated)) {
					return
				}
			}
		}
	}
}

// first returns the first candidate accepted by Valid.
func (p *Packer) first(candidates iter.Seq[model.Rectangle], placed []model.Rectangle) (model.Rectangle, bool) {
	for rect := range candidates {
		if p.Valid(rect, placed) {
			return rect, true
		}
	}
	return model.Rectangle{}, false
}

// Pack places items largest-area first (ties by name). Each item tries its
// given orientation, then the swapped one, and takes the first valid wall
// position. Placements are never revisited. Items that cannot be placed are
// reported in the result and do not stop the pass.
func (p *Packer) Pack(items []model.Item) model.Result {
	sorted := model.SortItems(items)
	placed := make([]model.Rectangle, 0, len(sorted))

	result := model.Result{
		Placements: []model.Placement{},
		Statuses:   make([]model.ItemStatus, 0, len(sorted)),
		RoomArea:   p.room.Area(),
	}

	for _, item := range sorted {
		rect, interior, ok := p.placeItem(item, placed)
		if !ok {
			klog.Warningf("Could not place item %q (%gx%g) in either orientation", item.Name, item.Length, item.Width)
			result.Unplaced = append(result.Unplaced, item)
			result.Statuses = append(result.Statuses, model.ItemStatus{
				Name:   item.Name,
				Status: model.StatusUnplaceable,
				Reason: unplacedReason(p.settings),
			})
			continue
		}

		placed = append(placed, rect)
		result.Placements = append(result.Placements, model.Placement{
			Item:     item,
			Center:   rect.Center,
			Angle:    rect.Angle(),
			Interior: interior,
		})
		result.Statuses = append(result.Statuses, model.ItemStatus{Name: item.Name, Status: model.StatusPlaced})
		klog.V(2).InfoS("Placed item", "item", item.Name, "center", rect.Center, "angle", rect.Angle(), "interior", interior)
	}

	result.Feasible = len(result.Placements) == len(items)
	return result
}

// placeItem searches wall positions in both orientations, then the interior
// grid when enabled.
func (p *Packer) placeItem(item model.Item, placed []model.Rectangle) (model.Rectangle, bool, bool) {
	if item.Length <= 0 || item.Width <= 0 {
		return model.Rectangle{}, false, false
	}
	for _, rotated := range []bool{false, true} {
		if rect, ok := p.first(p.wallCandidates(item, rotated), placed); ok {
			return rect, false, true
		}
	}
	if !p.settings.InteriorFallback {
		return model.Rectangle{}, false, false
	}
	for _, rotated := range []bool{false, true} {
		if rect, ok := p.first(p.interiorCandidates(item, rotated), placed); ok {
			return rect, true, true
		}
	}
	return model.Rectangle{}, false, false
}

func unplacedReason(s model.Settings) string {
	if s.InteriorFallback {
		return "no valid wall or interior position in either orientation"
	}
	return "no valid wall position in either orientation"
}
