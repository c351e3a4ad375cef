package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config is the persistent application configuration
type Config struct {
	// Database holds the catalog and rating tables
	DBPath string `json:"db_path"`

	// Recommendation defaults
	TopN int `json:"top_n"`

	// Synthetic rating generation
	Generator GeneratorConfig `json:"generator"`
}

// GeneratorConfig holds synthetic rating generation settings
type GeneratorConfig struct {
	MinPerItem int       `json:"min_ratings_per_item"`
	MaxPerItem int       `json:"max_ratings_per_item"`
	MaxPerUser int       `json:"max_ratings_per_user"`
	Weights    []float64 `json:"rating_weights"` // relative weight per rating value 0..5
	Seed       int64     `json:"seed"`           // 0 = seed from current time
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		DBPath: defaultDBPath(),
		TopN:   5,
		Generator: GeneratorConfig{
			MinPerItem: 0,
			MaxPerItem: 80,
			MaxPerUser: 3,
			Weights:    []float64{0.02, 0.08, 0.10, 0.15, 0.30, 0.35},
			Seed:       0,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".picks", "config.json")
}

func defaultDBPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".picks", "picks.db")
}

// Load reads config from disk, or returns defaults
func Load() (*Config, error) {
	path := ConfigPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), nil
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	path := ConfigPath()

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
