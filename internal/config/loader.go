package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vovakirdan/rubberband/internal/catalog"
	"gopkg.in/yaml.v3"
)

const catalogFile = "catalog.yaml"

// Load loads the economy catalog.
// Search order: customPath -> ~/.rubberband/catalog.yaml -> ./configs/catalog.yaml -> embedded default
func Load(customPath string) (*catalog.Catalog, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cat, err := Parse(data)
		if err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cat, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(catalogFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cat, err := Parse(data); err == nil {
				return cat, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", catalogFile)); err == nil {
		if cat, err := Parse(data); err == nil {
			return cat, nil
		}
	}

	return Default(), nil
}

// Parse decodes and validates a catalog document.
func Parse(data []byte) (*catalog.Catalog, error) {
	var cfg CatalogConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	return cfg.Build()
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".rubberband", filename)
}
