package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/piwi3910/roomfit/internal/model"
)

// ErrMalformedRequest is returned when a request file cannot be mapped onto
// a model.Request.
var ErrMalformedRequest = errors.New("malformed request")

// requestFile is the on-disk request layout:
//
//	{
//	  "boundary": [[0, 0], [1000, 0], [1000, 1000], [0, 1000], [0, 0]],
//	  "door": [[0, 400], [0, 600]],
//	  "isOpenInward": false,
//	  "algoToPlace": {"shelf-1": [400, 200]}
//	}
//
// Item dimensions are [length, width].
type requestFile struct {
	Boundary     [][]float64          `json:"boundary"`
	Door         [][]float64          `json:"door"`
	IsOpenInward bool                 `json:"isOpenInward"`
	AlgoToPlace  map[string][]float64 `json:"algoToPlace"`
}

// DecodeRequest reads a request in the room file format. Items are returned
// sorted by name, since the file keys them in a map.
func DecodeRequest(r io.Reader) (model.Request, error) {
	var rf requestFile
	dec := json.NewDecoder(r)
	if err := dec.Decode(&rf); err != nil {
		return model.Request{}, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	req := model.Request{Door: model.DoorSpec{OpenInward: rf.IsOpenInward}}

	if len(rf.Boundary) == 0 {
		return model.Request{}, fmt.Errorf("%w: missing boundary", ErrMalformedRequest)
	}
	for i, pair := range rf.Boundary {
		pt, err := toPoint(pair)
		if err != nil {
			return model.Request{}, fmt.Errorf("%w: boundary vertex %d: %v", ErrMalformedRequest, i, err)
		}
		req.Boundary = append(req.Boundary, pt)
	}

	if len(rf.Door) != 2 {
		return model.Request{}, fmt.Errorf("%w: door needs exactly 2 points, got %d", ErrMalformedRequest, len(rf.Door))
	}
	var err error
	if req.Door.A, err = toPoint(rf.Door[0]); err != nil {
		return model.Request{}, fmt.Errorf("%w: door: %v", ErrMalformedRequest, err)
	}
	if req.Door.B, err = toPoint(rf.Door[1]); err != nil {
		return model.Request{}, fmt.Errorf("%w: door: %v", ErrMalformedRequest, err)
	}

	names := make([]string, 0, len(rf.AlgoToPlace))
	for name := range rf.AlgoToPlace {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		dims := rf.AlgoToPlace[name]
		if len(dims) != 2 {
			return model.Request{}, fmt.Errorf("%w: item %q needs [length, width], got %d values", ErrMalformedRequest, name, len(dims))
		}
		req.Items = append(req.Items, model.Item{Name: name, Length: dims[0], Width: dims[1]})
	}

	return req, nil
}

// LoadRequest opens and decodes a request file.
func LoadRequest(path string) (model.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Request{}, fmt.Errorf("opening request: %w", err)
	}
	defer f.Close()
	return DecodeRequest(f)
}

// EncodeRequest writes req in the room file format.
func EncodeRequest(w io.Writer, req model.Request) error {
	rf := requestFile{
		Boundary:     make([][]float64, 0, len(req.Boundary)),
		Door:         [][]float64{{req.Door.A.X, req.Door.A.Y}, {req.Door.B.X, req.Door.B.Y}},
		IsOpenInward: req.Door.OpenInward,
		AlgoToPlace:  make(map[string][]float64, len(req.Items)),
	}
	for _, p := range req.Boundary {
		rf.Boundary = append(rf.Boundary, []float64{p.X, p.Y})
	}
	for _, it := range req.Items {
		rf.AlgoToPlace[it.Name] = []float64{it.Length, it.Width}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rf)
}

func toPoint(pair []float64) (model.Point, error) {
	if len(pair) != 2 {
		return model.Point{}, fmt.Errorf("expected [x, y], got %d values", len(pair))
	}
	return model.Point{X: pair[0], Y: pair[1]}, nil
}
