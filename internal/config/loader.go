package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local directories.
const FileName = "ipod.yaml"

// Load returns the shell configuration. An explicit customPath must load;
// otherwise the first valid file among searchPaths wins, then the embedded
// default. Files are decoded over the defaults, so a partial file only
// overrides what it names.
func Load(customPath string) (*Config, error) {
	if customPath != "" {
		return loadFile(customPath)
	}

	for _, path := range searchPaths() {
		// Missing or broken files fall through to the next location
		if cfg, err := loadFile(path); err == nil {
			return cfg, nil
		}
	}

	if cfg, err := Parse(defaultYAML); err == nil {
		return cfg, nil
	}
	return Default(), nil
}

// searchPaths lists ~/.ipod/configs/ipod.yaml then ./configs/ipod.yaml.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".ipod", "configs", FileName))
	}
	return append(paths, filepath.Join("configs", FileName))
}

func loadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
