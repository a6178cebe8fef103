package model

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// Item is a named rectangular object to place against a wall.
type Item struct {
	Name   string  `json:"name"`
	Length float64 `json:"length"` // mm, along y when unrotated
	Width  float64 `json:"width"`  // mm, along x when unrotated
}

// Area returns Length * Width.
func (it Item) Area() float64 {
	return it.Length * it.Width
}

// SortItems returns a copy of items ordered by descending area. Ties are
// broken by name so the processing order never depends on input order.
func SortItems(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		ai, aj := sorted[i].Area(), sorted[j].Area()
		if ai != aj {
			return ai > aj
		}
		return sorted[i].Name < sorted[j].Name
	})
	return sorted
}

// DoorSpec is the raw door description from a request.
type DoorSpec struct {
	A          Point `json:"a"`
	B          Point `json:"b"`
	OpenInward bool  `json:"open_inward"`
}

// Request is the typed input to the packer.
type Request struct {
	Boundary []Point  `json:"boundary"`
	Door     DoorSpec `json:"door"`
	Items    []Item   `json:"items"`
}

// Settings holds packer configuration.
type Settings struct {
	Step             float64 `json:"step"`              // Slide step along a wall (mm)
	ProbeOffset      float64 `json:"probe_offset"`      // Distance of the interior-side probe from a wall (mm)
	InteriorFallback bool    `json:"interior_fallback"` // Try a grid of interior positions when no wall fits
	InteriorStep     float64 `json:"interior_step"`     // Grid spacing for interior positions (mm)
}

func DefaultSettings() Settings {
	return Settings{
		Step:             10,
		ProbeOffset:      10,
		InteriorFallback: false,
		InteriorStep:     50,
	}
}

// Placement is one item's chosen position.
type Placement struct {
	Item     Item  `json:"item"`
	Center   Point `json:"center"`
	Angle    int   `json:"angle"`              // 0 or 90
	Interior bool  `json:"interior,omitempty"` // Placed by the interior fallback rather than against a wall
}

// PlacedWidth returns the extent along x considering rotation.
func (p Placement) PlacedWidth() float64 {
	if p.Angle == 90 {
		return p.Item.Length
	}
	return p.Item.Width
}

// PlacedLength returns the extent along y considering rotation.
func (p Placement) PlacedLength() float64 {
	if p.Angle == 90 {
		return p.Item.Width
	}
	return p.Item.Length
}

// Status is the outcome for a single item.
type Status int

const (
	StatusPlaced      Status = iota
	StatusUnplaceable        // No valid position in either orientation
)

func (s Status) String() string {
	switch s {
	case StatusUnplaceable:
		return "unplaceable"
	default:
		return "placed"
	}
}

// MarshalText encodes the status by name.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText decodes a status name written by MarshalText.
func (s *Status) UnmarshalText(text []byte) error {
	switch string(text) {
	case "placed":
		*s = StatusPlaced
	case "unplaceable":
		*s = StatusUnplaceable
	default:
		return fmt.Errorf("unknown item status %q", text)
	}
	return nil
}

// ItemStatus records what happened to one requested item.
type ItemStatus struct {
	Name   string `json:"name"`
	Status Status `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// Result is the outcome of a packing pass. Placements follow processing
// order (area descending, then name).
type Result struct {
	Feasible   bool         `json:"feasible"`
	Placements []Placement  `json:"placements"`
	Unplaced   []Item       `json:"unplaced,omitempty"`
	Statuses   []ItemStatus `json:"statuses"`
	RoomArea   float64      `json:"room_area"`
}

// UsedArea returns the total footprint of placed items.
func (r Result) UsedArea() float64 {
	var total float64
	for _, p := range r.Placements {
		total += p.Item.Area()
	}
	return total
}

// FillRatio returns the used share of the room area as a percentage.
func (r Result) FillRatio() float64 {
	if r.RoomArea == 0 {
		return 0
	}
	return r.UsedArea() / r.RoomArea * 100.0
}

// Placement looks up the placement for the named item.
func (r Result) Placement(name string) (Placement, bool) {
	for _, p := range r.Placements {
		if p.Item.Name == name {
			return p, true
		}
	}
	return Placement{}, false
}

// Project ties a request, its settings and the last result together for save/load.
type Project struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Request  Request  `json:"request"`
	Settings Settings `json:"settings"`
	Result   *Result  `json:"result,omitempty"`
}

func NewProject(name string) Project {
	return Project{
		ID:       uuid.New().String()[:8],
		Name:     name,
		Settings: DefaultSettings(),
	}
}
