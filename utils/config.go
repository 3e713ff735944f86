package utils

import (
	"encoding/json"
	"os"
	"time"

	"github.com/pkg/errors"
)

// Config holds the configuration for the driver
type Config struct {
	Width           int           `json:"width"`
	Height          int           `json:"height"`
	FrameRate       time.Duration `json:"frame_rate"`
	MaxGenerations  int           `json:"max_generations"`
	Seed            int64         `json:"seed"`
	Workers         int           `json:"workers"`
	Render          bool          `json:"render"`
	HistorySize     int           `json:"history_size"`
	PopulationChart string        `json:"population_chart"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Width:          80,
		Height:         40,
		FrameRate:      100 * time.Millisecond,
		MaxGenerations: 0, // Run until interrupted
		Seed:           0, // Derived from the clock
		Render:         true,
		HistorySize:    6,
	}
}

// LoadConfig loads configuration from JSON file
func LoadConfig(filename string) (Config, error) {
	config := DefaultConfig()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to read file: %+v", filename)
	}

	if err = json.Unmarshal(data, &config); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] failed to unmarshal data from file: %+v", filename)
	}

	if err = config.Validate(); err != nil {
		return config, errors.Wrapf(err, "[LoadConfig] invalid config in file: %+v", filename)
	}

	return config, nil
}

// Validate checks the values the driver cannot run with
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return errors.Errorf("[Validate] grid must be positive, got %dx%d", c.Width, c.Height)
	case c.FrameRate < 0:
		return errors.Errorf("[Validate] frame_rate must not be negative, got %s", c.FrameRate)
	case c.MaxGenerations < 0:
		return errors.Errorf("[Validate] max_generations must not be negative, got %d", c.MaxGenerations)
	case c.Workers < 0:
		return errors.Errorf("[Validate] workers must not be negative, got %d", c.Workers)
	case c.HistorySize < 0:
		return errors.Errorf("[Validate] history_size must not be negative, got %d", c.HistorySize)
	}
	return nil
}
