package project

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/piwi3910/roomfit/internal/model"
)

// ProjectExt is the file extension used for saved projects.
const ProjectExt = ".roomfit"

// SaveProject writes a project (request, settings and last result) to path.
func SaveProject(path string, p model.Project) error {
	if err := writeJSON(path, p); err != nil {
		return fmt.Errorf("failed to save project: %w", err)
	}
	return nil
}

// LoadProject reads a project saved by SaveProject. Settings left at zero in
// older files fall back to the defaults.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project: %w", err)
	}
	var p model.Project
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project: %w", err)
	}
	if p.ID == "" {
		return model.Project{}, fmt.Errorf("invalid project file: missing id")
	}

	defaults := model.DefaultSettings()
	if p.Settings.Step <= 0 {
		p.Settings.Step = defaults.Step
	}
	if p.Settings.ProbeOffset <= 0 {
		p.Settings.ProbeOffset = defaults.ProbeOffset
	}
	if p.Settings.InteriorStep <= 0 {
		p.Settings.InteriorStep = defaults.InteriorStep
	}
	return p, nil
}
