package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultStep != defaults.Step {
		t.Errorf("Step mismatch: config=%f settings=%f", cfg.DefaultStep, defaults.Step)
	}
	if cfg.DefaultProbeOffset != defaults.ProbeOffset {
		t.Errorf("ProbeOffset mismatch: config=%f settings=%f", cfg.DefaultProbeOffset, defaults.ProbeOffset)
	}
	if cfg.DefaultInteriorStep != defaults.InteriorStep {
		t.Errorf("InteriorStep mismatch: config=%f settings=%f", cfg.DefaultInteriorStep, defaults.InteriorStep)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("expected default listen addr :8080, got %s", cfg.ListenAddr)
	}
	if cfg.RecentProjects == nil {
		t.Error("RecentProjects should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultStep = 5.0
	cfg.DefaultInteriorFallback = true

	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Step != 5.0 {
		t.Errorf("expected Step=5.0, got %f", s.Step)
	}
	if !s.InteriorFallback {
		t.Error("expected InteriorFallback=true")
	}
	if s.ProbeOffset != 10 {
		t.Errorf("expected ProbeOffset=10, got %f", s.ProbeOffset)
	}
}

func TestApplyToSettingsIgnoresZeroValues(t *testing.T) {
	cfg := AppConfig{}
	s := DefaultSettings()
	cfg.ApplyToSettings(&s)

	if s.Step != 10 {
		t.Errorf("zero config step should keep default, got %f", s.Step)
	}
}

func TestAddRecentProject(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentProject("/a.roomfit", 2)
	cfg.AddRecentProject("/b.roomfit", 2)
	cfg.AddRecentProject("/a.roomfit", 2)
	cfg.AddRecentProject("/c.roomfit", 2)

	if len(cfg.RecentProjects) != 2 {
		t.Fatalf("expected 2 recent projects, got %d", len(cfg.RecentProjects))
	}
	if cfg.RecentProjects[0] != "/c.roomfit" || cfg.RecentProjects[1] != "/a.roomfit" {
		t.Errorf("unexpected order: %v", cfg.RecentProjects)
	}
}
