package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Constants for default values.
const (
	DefaultLevel  = "info"
	DefaultTheme  = "default"
	DefaultFormat = "text"

	configFileName = ".spectrace.yaml"
	configDirName  = "spectrace"
)

// AppConfig represents the contents of .spectrace.yaml.
type AppConfig struct {
	Level         string `yaml:"level"`
	Format        string `yaml:"format"`
	NoColor       bool   `yaml:"no_color"`
	CI            bool   `yaml:"ci"`
	Theme         string `yaml:"theme"`
	Timestamps    bool   `yaml:"timestamps"`
	ShortPackages bool   `yaml:"short_packages"`
	Humanize      bool   `yaml:"humanize"`
}

// NewDefaultAppConfig returns the hardcoded defaults.
func NewDefaultAppConfig() *AppConfig {
	return &AppConfig{
		Level:    DefaultLevel,
		Format:   DefaultFormat,
		Theme:    DefaultTheme,
		Humanize: true,
	}
}

// LoadConfig loads the first config file found (see getConfigPath) on top of
// the defaults. It returns the path it read, or "" when no file exists.
func LoadConfig() (*AppConfig, string, error) {
	path := getConfigPath()
	if path == "" {
		return NewDefaultAppConfig(), "", nil
	}
	cfg, err := LoadConfigFile(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// LoadConfigFile reads path on top of the defaults. Keys missing from the
// file keep their default values.
func LoadConfigFile(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	cfg := NewDefaultAppConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal renders cfg as YAML.
func (c *AppConfig) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// getConfigPath returns the first existing file among configSearchPaths,
// or "" when there is none.
func getConfigPath() string {
	for _, path := range configSearchPaths() {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// configSearchPaths lists candidate config files in priority order: the
// working directory, $XDG_CONFIG_HOME, ~/.config, then the platform config
// dir (e.g. ~/Library/Application Support on macOS).
func configSearchPaths() []string {
	paths := []string{configFileName}
	seen := map[string]bool{}
	addDir := func(dir string) {
		if dir == "" || !filepath.IsAbs(dir) {
			return
		}
		path := filepath.Join(dir, configDirName, configFileName)
		if !seen[path] {
			seen[path] = true
			paths = append(paths, path)
		}
	}

	addDir(os.Getenv("XDG_CONFIG_HOME"))
	if home, err := os.UserHomeDir(); err == nil {
		addDir(filepath.Join(home, ".config"))
	}
	if dir, err := os.UserConfigDir(); err == nil {
		addDir(dir)
	}
	return paths
}
