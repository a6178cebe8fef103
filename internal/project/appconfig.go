// Package project persists application config, projects and backups as JSON
// files under the user's home directory.
package project

import (
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"

	"github.com/piwi3910/roomfit/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.roomfit/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".roomfit")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	return writeJSON(path, config)
}

// LoadAppConfig reads the roomfit config at path, starting from
// DefaultAppConfig so keys missing from the file keep their defaults. A
// missing file yields the defaults. An empty listen address falls back to the
// default one and a malformed one is an error. Blank and repeated recent
// project entries are dropped.
func LoadAppConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return model.AppConfig{}, fmt.Errorf("failed to read config: %w", err)
	}
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if config.ListenAddr == "" {
		config.ListenAddr = model.DefaultAppConfig().ListenAddr
	}
	if _, _, err := net.SplitHostPort(config.ListenAddr); err != nil {
		return model.AppConfig{}, fmt.Errorf("invalid listen_addr %q in %s: %w", config.ListenAddr, path, err)
	}

	recent := make([]string, 0, len(config.RecentProjects))
	seen := make(map[string]bool, len(config.RecentProjects))
	for _, p := range config.RecentProjects {
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		recent = append(recent, p)
	}
	config.RecentProjects = recent
	return config, nil
}

// writeJSON marshals v with indentation and writes it to path, creating
// parent directories.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
