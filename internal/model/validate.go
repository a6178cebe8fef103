package model

import (
	"errors"
	"fmt"
	"math"
)

// MinStep is the smallest slide or grid step the packer accepts, in mm.
const MinStep = 0.1

var (
	// ErrDuplicateItem is returned when two requested items share a name.
	ErrDuplicateItem = errors.New("duplicate item name")
	// ErrUnnamedItem is returned for an item with an empty name.
	ErrUnnamedItem = errors.New("item has no name")
	// ErrInvalidSettings is returned for packer settings that are not finite
	// or whose steps are below MinStep.
	ErrInvalidSettings = errors.New("invalid settings")
)

// ValidateItems checks that every item has a unique, non-empty name and
// positive dimensions.
func ValidateItems(items []Item) error {
	seen := make(map[string]bool, len(items))
	for i, it := range items {
		if it.Name == "" {
			return fmt.Errorf("%w: item %d", ErrUnnamedItem, i+1)
		}
		if seen[it.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateItem, it.Name)
		}
		seen[it.Name] = true
		if it.Length <= 0 || it.Width <= 0 {
			return fmt.Errorf("%w: item %q must have positive length and width, got %gx%g",
				ErrInvalidGeometry, it.Name, it.Length, it.Width)
		}
	}
	return nil
}

// ValidateSettings checks that every numeric setting is finite and that
// both steps are at least MinStep. Zero values must be replaced by defaults
// before calling it.
func ValidateSettings(s Settings) error {
	steps := []struct {
		name string
		v    float64
		min  float64
	}{
		{"step", s.Step, MinStep},
		{"probe offset", s.ProbeOffset, 0},
		{"interior step", s.InteriorStep, MinStep},
	}
	for _, st := range steps {
		if math.IsNaN(st.v) || math.IsInf(st.v, 0) {
			return fmt.Errorf("%w: %s must be finite, got %v", ErrInvalidSettings, st.name, st.v)
		}
		if st.v <= 0 || st.v < st.min {
			return fmt.Errorf("%w: %s %g is below the minimum of %g", ErrInvalidSettings, st.name, st.v, st.min)
		}
	}
	return nil
}
