package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default packer settings applied to new projects
	DefaultStep             float64 `json:"default_step"`
	DefaultProbeOffset      float64 `json:"default_probe_offset"`
	DefaultInteriorFallback bool    `json:"default_interior_fallback"`
	DefaultInteriorStep     float64 `json:"default_interior_step"`

	// Application preferences
	ListenAddr     string   `json:"listen_addr"` // HTTP API address for "roomfit -serve"
	RecentProjects []string `json:"recent_projects"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultStep:             defaults.Step,
		DefaultProbeOffset:      defaults.ProbeOffset,
		DefaultInteriorFallback: defaults.InteriorFallback,
		DefaultInteriorStep:     defaults.InteriorStep,
		ListenAddr:              ":8080",
		RecentProjects:          []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// Zero values in the config leave the corresponding setting untouched.
func (c AppConfig) ApplyToSettings(s *Settings) {
	if c.DefaultStep > 0 {
		s.Step = c.DefaultStep
	}
	if c.DefaultProbeOffset > 0 {
		s.ProbeOffset = c.DefaultProbeOffset
	}
	if c.DefaultInteriorStep > 0 {
		s.InteriorStep = c.DefaultInteriorStep
	}
	s.InteriorFallback = c.DefaultInteriorFallback
}

// AddRecentProject moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentProject(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentProjects {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentProjects = recent
}
