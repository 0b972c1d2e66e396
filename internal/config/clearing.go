// Package config loads the costmap clearing configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultConfigPath is the path to the canonical clearing defaults file.
// This is the single source of truth for default clearing values.
const DefaultConfigPath = "config/clearing.defaults.json"

// ClearingConfig is the process-lifetime clearing configuration. Fields are
// pointers so that a partial JSON file only overrides what it names; the
// Get* methods supply defaults for everything else. The configuration is
// loaded once at startup and never mutated afterwards.
type ClearingConfig struct {
	// ClearableLayers lists the leaf layer names eligible for selective
	// clearing. Layers not listed are never touched by the
	// clear-except-region operation.
	ClearableLayers *[]string `json:"clearable_layers,omitempty"`

	// ForwardExtentMeters biases the preserved oriented region toward the
	// robot's front; 0 keeps it symmetric. See clearing.Params.
	ForwardExtentMeters *float64 `json:"forward_extent_meters,omitempty"`

	// ResetDistance is the daemon's default oriented-region size (metres).
	ResetDistance *float64 `json:"reset_distance,omitempty"`

	// WindowSizeX / WindowSizeY are the daemon's default around-robot
	// window dimensions (metres). 0 means "clear everything".
	WindowSizeX *float64 `json:"window_size_x,omitempty"`
	WindowSizeY *float64 `json:"window_size_y,omitempty"`
}

// EmptyClearingConfig returns a ClearingConfig with all fields unset.
// Use LoadClearingConfig to load actual values from a file.
func EmptyClearingConfig() *ClearingConfig {
	return &ClearingConfig{}
}

// LoadClearingConfig loads a ClearingConfig from a JSON file. The file is
// validated to have a .json extension and to be under the max file size.
// Fields omitted from the file retain their defaults, so partial configs
// are safe.
func LoadClearingConfig(path string) (*ClearingConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyClearingConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads the canonical clearing defaults from
// DefaultConfigPath, searching the current directory and common parent
// directories. Panics if the file cannot be loaded, intended for test
// setup and binaries that have already validated config availability.
func MustLoadDefaultConfig() *ClearingConfig {
	candidates := []string{
		DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
		"../../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadClearingConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *ClearingConfig) Validate() error {
	if c.ForwardExtentMeters != nil && *c.ForwardExtentMeters < 0 {
		return fmt.Errorf("forward_extent_meters must be non-negative, got %f", *c.ForwardExtentMeters)
	}
	if c.ResetDistance != nil && *c.ResetDistance < 0 {
		return fmt.Errorf("reset_distance must be non-negative, got %f", *c.ResetDistance)
	}
	if c.WindowSizeX != nil && *c.WindowSizeX < 0 {
		return fmt.Errorf("window_size_x must be non-negative, got %f", *c.WindowSizeX)
	}
	if c.WindowSizeY != nil && *c.WindowSizeY < 0 {
		return fmt.Errorf("window_size_y must be non-negative, got %f", *c.WindowSizeY)
	}
	if c.ClearableLayers != nil {
		for _, name := range *c.ClearableLayers {
			if name == "" {
				return fmt.Errorf("clearable_layers must not contain empty names")
			}
		}
	}
	return nil
}

// GetClearableLayers returns the clearable layer whitelist or the default.
func (c *ClearingConfig) GetClearableLayers() []string {
	if c.ClearableLayers == nil {
		return []string{"obstacle_layer"} // default
	}
	return *c.ClearableLayers
}

// GetForwardExtentMeters returns the forward extent or the default.
func (c *ClearingConfig) GetForwardExtentMeters() float64 {
	if c.ForwardExtentMeters == nil {
		return 0 // default: symmetric preserved region
	}
	return *c.ForwardExtentMeters
}

// GetResetDistance returns the default oriented-region size.
func (c *ClearingConfig) GetResetDistance() float64 {
	if c.ResetDistance == nil {
		return 3.0 // default
	}
	return *c.ResetDistance
}

// GetWindowSizeX returns the default around-robot window width.
func (c *ClearingConfig) GetWindowSizeX() float64 {
	if c.WindowSizeX == nil {
		return 5.0 // default
	}
	return *c.WindowSizeX
}

// GetWindowSizeY returns the default around-robot window height.
func (c *ClearingConfig) GetWindowSizeY() float64 {
	if c.WindowSizeY == nil {
		return 5.0 // default
	}
	return *c.WindowSizeY
}
