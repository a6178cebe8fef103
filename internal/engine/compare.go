package engine

import (
	"fmt"

	"github.com/piwi3910/roomfit/internal/model"
)

// ComparisonScenario defines a named set of settings to compare.
type ComparisonScenario struct {
	Name     string
	Settings model.Settings
}

// ComparisonResult holds the packing result and computed statistics
// for a single scenario.
type ComparisonResult struct {
	Scenario      ComparisonScenario
	Result        model.Result
	PlacedCount   int
	UnplacedCount int
	FillPercent   float64
	Err           error
}

// CompareScenarios packs the same request under each scenario's settings and
// returns the results in scenario order. A scenario whose request fails
// validation carries the error instead of a result.
func CompareScenarios(scenarios []ComparisonScenario, req model.Request) []ComparisonResult {
	results := make([]ComparisonResult, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := Solve(req, scenario.Settings)
		if err != nil {
			results = append(results, ComparisonResult{Scenario: scenario, Err: err})
			continue
		}

		results = append(results, ComparisonResult{
			Scenario:      scenario,
			Result:        result,
			PlacedCount:   len(result.Placements),
			UnplacedCount: len(result.Unplaced),
			FillPercent:   result.FillRatio(),
		})
	}

	return results
}

// BuildDefaultScenarios generates a set of comparison scenarios based on
// the current settings, varying key parameters to show what-if alternatives.
func BuildDefaultScenarios(base model.Settings) []ComparisonScenario {
	if base.Step <= 0 {
		base.Step = model.DefaultSettings().Step
	}

	scenarios := []ComparisonScenario{
		{
			Name:     "Current Settings",
			Settings: base,
		},
	}

	// Finer slide step
	if base.Step > 1.0 {
		fine := base
		fine.Step = base.Step * 0.5
		scenarios = append(scenarios, ComparisonScenario{
			Name:     fmt.Sprintf("Step %.1fmm (half)", fine.Step),
			Settings: fine,
		})
	}

	coarse := base
	coarse.Step = base.Step * 2
	scenarios = append(scenarios, ComparisonScenario{
		Name:     fmt.Sprintf("Step %.1fmm (double)", coarse.Step),
		Settings: coarse,
	})

	alt := base
	alt.InteriorFallback = !base.InteriorFallback
	name := "Walls Only"
	if alt.InteriorFallback {
		name = "With Interior Fallback"
	}
	scenarios = append(scenarios, ComparisonScenario{
		Name:     name,
		Settings: alt,
	})

	return scenarios
}
