package config

import (
	"encoding/json"
	"fmt"
	"os"
)

// Config holds the construction-time options for the viewer.
type Config struct {
	Title      string  `json:"title"`       // window title, default "voxceler"
	VoxcelSize int     `json:"voxcel_size"` // grid side length in cells, default 16
	Width      int32   `json:"width"`       // render surface width, default 800
	Height     int32   `json:"height"`      // render surface height, default 600
	UnitSize   float32 `json:"unit_size"`   // cube edge length in world units, default 50
	Debug      bool    `json:"debug"`
}

func Default() Config {
	return Config{
		Title:      "voxceler",
		VoxcelSize: 16,
		Width:      800,
		Height:     600,
		UnitSize:   50,
	}
}

// Load reads a JSON config file if it exists; absent files keep defaults,
// unparsable or out-of-range values are explicit errors rather than silent
// fallthrough.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	if err := json.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.VoxcelSize <= 0 {
		return fmt.Errorf("voxcel_size must be positive, got %d", c.VoxcelSize)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.UnitSize <= 0 {
		return fmt.Errorf("unit_size must be positive, got %g", c.UnitSize)
	}
	return nil
}
