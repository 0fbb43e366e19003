package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".exotimeline"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile reads a configuration file.
// A missing file returns ErrConfigNotFound; callers decide whether that
// matters based on whether the path was given explicitly.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if cf.Sources == nil {
		cf.Sources = make(map[string]SourceConfig)
	}
	return &cf, nil
}

// FindConfigFile returns the configuration file to use, or "" if there is
// none. An explicit configPath is used as is; otherwise .exotimeline is
// looked up in the current directory and then the home directory.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	var dirs []string
	if cwd, err := os.Getwd(); err == nil {
		dirs = append(dirs, cwd)
	}
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}

	for _, dir := range dirs {
		path := filepath.Join(dir, DefaultConfigFile)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// Load finds and reads the configuration file. It returns an empty File when
// no file exists and configPath is empty, and ErrConfigNotFound when an
// explicit configPath does not exist.
func Load(configPath string) (*File, string, error) {
	path := FindConfigFile(configPath)
	if path == "" {
		if configPath != "" {
			return nil, "", fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return &File{Sources: make(map[string]SourceConfig)}, "", nil
	}

	cf, err := LoadConfigFile(path)
	if err != nil {
		return nil, path, err
	}
	return cf, path, nil
}
