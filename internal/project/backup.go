package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/roomfit/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Projects  []BackupProject `json:"projects"`
}

// BackupProject is a saved project and the path it was read from.
type BackupProject struct {
	Path    string        `json:"path"`
	Project model.Project `json:"project"`
}

// ExportAllData writes the config and every recent project that can still be
// read into a single JSON file. Unreadable recent entries are skipped and
// returned so the caller can report them.
func ExportAllData(exportPath string, config model.AppConfig) ([]string, error) {
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Projects:  []BackupProject{},
	}

	var skipped []string
	for _, path := range config.RecentProjects {
		p, err := LoadProject(path)
		if err != nil {
			skipped = append(skipped, path)
			continue
		}
		backup.Projects = append(backup.Projects, BackupProject{Path: path, Project: p})
	}

	if err := writeJSON(exportPath, backup); err != nil {
		return skipped, fmt.Errorf("failed to write backup file: %w", err)
	}
	return skipped, nil
}

// ImportAllData reads a backup JSON file and returns the contained data.
// Use RestoreAllData to write its projects back to disk.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Config.RecentProjects == nil {
		backup.Config.RecentProjects = []string{}
	}
	if backup.Projects == nil {
		backup.Projects = []BackupProject{}
	}
	return backup, nil
}

// RestoreAllData writes every project in backup back to disk and returns the
// backed-up config with RecentProjects listing the restored files. Projects
// go to the path they were backed up from, or into projectDir under the same
// file name when projectDir is set. The config itself is not saved.
func RestoreAllData(backup BackupData, projectDir string) (model.AppConfig, error) {
	cfg := backup.Config
	cfg.RecentProjects = make([]string, 0, len(backup.Projects))

	for _, bp := range backup.Projects {
		target := bp.Path
		if projectDir != "" {
			name := filepath.Base(bp.Path)
			if bp.Path == "" {
				name = bp.Project.ID + ProjectExt
			}
			target = filepath.Join(projectDir, name)
		}
		if target == "" {
			return cfg, fmt.Errorf("project %q has no saved path; choose a directory to restore into", bp.Project.Name)
		}
		if err := SaveProject(target, bp.Project); err != nil {
			return cfg, fmt.Errorf("restoring %s: %w", target, err)
		}
		cfg.RecentProjects = append(cfg.RecentProjects, target)
	}
	return cfg, nil
}
