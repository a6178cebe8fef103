package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/piwi3910/roomfit/internal/engine"
	"github.com/piwi3910/roomfit/internal/importer"
	"github.com/piwi3910/roomfit/internal/model"
	"k8s.io/klog/v2"
)

// comparisonEntry is the wire form of one engine.ComparisonResult.
type comparisonEntry struct {
	Name        string         `json:"name"`
	Settings    model.Settings `json:"settings"`
	Feasible    bool           `json:"feasible"`
	Placed      int            `json:"placed"`
	Unplaced    int            `json:"unplaced"`
	FillPercent float64        `json:"fill_percent"`
	Error       string         `json:"error,omitempty"`
}

func makePackHandler(defaults model.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, settings, ok := readRequest(w, r, defaults)
		if !ok {
			return
		}

		klog.V(2).InfoS("Pack request", "items", len(req.Items), "vertices", len(req.Boundary))

		result, err := engine.Solve(req, settings)
		if err != nil {
			writeSolveError(w, err)
			return
		}

		if !result.Feasible {
			klog.Infof("Pack request infeasible: %d of %d items unplaced", len(result.Unplaced), len(req.Items))
		}
		writeJSON(w, http.StatusOK, result)
	}
}

func makeCompareHandler(defaults model.Settings) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, settings, ok := readRequest(w, r, defaults)
		if !ok {
			return
		}

		// Validate once up front so a bad room is a client error, not a
		// list of identical per-scenario failures.
		if _, err := engine.NewFromRequest(req, settings); err != nil {
			writeSolveError(w, err)
			return
		}
		if err := model.ValidateItems(req.Items); err != nil {
			writeSolveError(w, err)
			return
		}

		results := engine.CompareScenarios(engine.BuildDefaultScenarios(settings), req)
		entries := make([]comparisonEntry, 0, len(results))
		for _, res := range results {
			entry := comparisonEntry{
				Name:        res.Scenario.Name,
				Settings:    res.Scenario.Settings,
				Feasible:    res.Result.Feasible,
				Placed:      res.PlacedCount,
				Unplaced:    res.UnplacedCount,
				FillPercent: res.FillPercent,
			}
			if res.Err != nil {
				entry.Error = res.Err.Error()
			}
			entries = append(entries, entry)
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

// readRequest decodes the body and applies query overrides to the default
// settings. On failure it writes a 400 and returns false.
func readRequest(w http.ResponseWriter, r *http.Request, defaults model.Settings) (model.Request, model.Settings, bool) {
	if r.Body != nil {
		defer r.Body.Close()
	}

	settings, err := settingsFromQuery(r, defaults)
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return model.Request{}, model.Settings{}, false
	}

	req, err := importer.DecodeRequest(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		klog.Errorf("Bad pack request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(err.Error()))
		return model.Request{}, model.Settings{}, false
	}
	return req, settings, true
}

// settingsFromQuery reads the optional step, probe, interior and interior_step
// query parameters. Steps below model.MinStep are rejected.
func settingsFromQuery(r *http.Request, s model.Settings) (model.Settings, error) {
	q := r.URL.Query()

	floats := []struct {
		key string
		dst *float64
		min float64
	}{
		{"step", &s.Step, model.MinStep},
		{"probe", &s.ProbeOffset, 0},
		{"interior_step", &s.InteriorStep, model.MinStep},
	}
	for _, f := range floats {
		v := q.Get(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(n) || math.IsInf(n, 0) || n <= 0 || n < f.min {
			return s, fmt.Errorf("invalid %s %q: must be a finite number of at least %g mm", f.key, v, math.Max(f.min, 0))
		}
		*f.dst = n
	}

	if v := q.Get("interior"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return s, fmt.Errorf("invalid interior %q: %w", v, err)
		}
		s.InteriorFallback = b
	}
	return s, nil
}

// writeSolveError maps validation failures to 422 and anything else to 500.
func writeSolveError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrInvalidGeometry) ||
		errors.Is(err, model.ErrDuplicateItem) ||
		errors.Is(err, model.ErrUnnamedItem) ||
		errors.Is(err, model.ErrInvalidSettings) {
		status = http.StatusUnprocessableEntity
	} else {
		klog.Errorf("Pack failed: %v", err)
	}
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	body, err := json.Marshal(v)
	if err != nil {
		klog.Errorf("Failed to marshal response: %s", err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Failed to marshal response"))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(body)
}
