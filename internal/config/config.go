// Package config handles workspace configuration.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/umaja/valign/internal/align"
)

// Config represents workspace configuration stored in .valign/config.json.
type Config struct {
	Threshold  float32 `json:"threshold"`            // acceptance threshold for check/violations
	Alpha      float32 `json:"alpha"`                // interpolation factor for suggest
	Policy     string  `json:"policy"`               // default aggregation policy
	OllamaURL  string  `json:"ollama_url,omitempty"` // encoder endpoint, empty = default
	Model      string  `json:"model"`                // embedding model name
	Dimensions int     `json:"dimensions"`           // embedding dimensionality
	ValuesFile string  `json:"values_file"`          // definition file, relative to workspace root
}

const (
	ValignDir         = ".valign"
	ConfigFile        = "config.json"
	RegistryFile      = "vectors.db"
	DefaultValuesFile = "values.yml"
)

// Default returns the configuration written by 'valign init'.
func Default() *Config {
	return &Config{
		Threshold:  align.DefaultThreshold,
		Alpha:      align.DefaultAlpha,
		Policy:     string(align.PolicyMean),
		Model:      "all-minilm:l6-v2",
		Dimensions: 384,
		ValuesFile: DefaultValuesFile,
	}
}

// ValignPath returns the path to the .valign directory from a root path.
func ValignPath(root string) string {
	return filepath.Join(root, ValignDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, ValignDir, ConfigFile)
}

// RegistryPath returns the path to the vector registry from a root path.
func RegistryPath(root string) string {
	return filepath.Join(root, ValignDir, RegistryFile)
}

// ValuesPath returns the path to the values definition file for a
// workspace. Relative paths resolve against the workspace root.
func (c *Config) ValuesPath(root string) string {
	if filepath.IsAbs(c.ValuesFile) {
		return c.ValuesFile
	}
	return filepath.Join(root, c.ValuesFile)
}

// IsWorkspace checks if the given path contains a valign workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(ValignPath(root))
	return err == nil && info.IsDir()
}

// FindWorkspace walks up from the given path to find a valign workspace.
// Returns the workspace root path or an error if not found.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("not in a valign workspace (no .valign directory found)")
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks configuration value ranges.
func (c *Config) Validate() error {
	if c.Threshold < 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold %v out of range [0,1]", c.Threshold)
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return fmt.Errorf("alpha %v out of range [0,1]", c.Alpha)
	}
	if !align.Policy(c.Policy).Valid() {
		return fmt.Errorf("invalid policy %q (valid: mean, min, max)", c.Policy)
	}
	if c.Dimensions <= 0 {
		return fmt.Errorf("dimensions must be positive, got %d", c.Dimensions)
	}
	if c.ValuesFile == "" {
		return fmt.Errorf("values_file must not be empty")
	}
	return nil
}
