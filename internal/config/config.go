// Package config reads the viewer's deployment settings from the environment.
package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every COFFEE_* setting.
type Config struct {
	AssetBaseURL  string `env:"COFFEE_ASSET_BASE_URL"`
	PrimaryModel  string `env:"COFFEE_PRIMARY_MODEL" envDefault:"/models/ian_coffee.glb"`
	FallbackModel string `env:"COFFEE_FALLBACK_MODEL" envDefault:"/models/fashion+model+3d+model.glb"`
	CacheDir      string `env:"COFFEE_CACHE_DIR" envDefault:"cache/models"`
	AssetsDir     string `env:"COFFEE_ASSETS_DIR" envDefault:"assets"`
	LogFile       string `env:"COFFEE_LOG_FILE" envDefault:"logs/viewer.txt"`
	PrefsFile     string `env:"COFFEE_PREFS_FILE" envDefault:"config/viewer.json"`
	OTelEndpoint  string `env:"COFFEE_OTEL_ENDPOINT"`

	Width  int32 `env:"COFFEE_WIDTH" envDefault:"1280"`
	Height int32 `env:"COFFEE_HEIGHT" envDefault:"720"`

	Tuning Tuning
}

// Tuning is the part of the configuration that shapes the scene.
type Tuning struct {
	AutoRotate      bool    `env:"COFFEE_AUTO_ROTATE" envDefault:"true"`
	AutoSpeed       float64 `env:"COFFEE_AUTO_SPEED" envDefault:"0.08"`
	ModelScale      float64 `env:"COFFEE_MODEL_SCALE" envDefault:"3.5"`
	DragSensitivity float64 `env:"COFFEE_DRAG_SENSITIVITY" envDefault:"0.012"`
	InertiaDecay    float64 `env:"COFFEE_INERTIA_DECAY" envDefault:"4.0"`
	Volume          float64 `env:"COFFEE_VOLUME" envDefault:"0.7"`
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Load returns the configuration from the current environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the viewer cannot run with.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("config: window size %dx%d must be positive", c.Width, c.Height)
	}
	if c.Tuning.ModelScale <= 0 {
		return fmt.Errorf("config: model scale %v must be positive", c.Tuning.ModelScale)
	}
	if c.Tuning.Volume < 0 || c.Tuning.Volume > 1 {
		return fmt.Errorf("config: volume %v must be within [0, 1]", c.Tuning.Volume)
	}
	if c.Tuning.InertiaDecay < 0 {
		return fmt.Errorf("config: inertia decay %v must not be negative", c.Tuning.InertiaDecay)
	}
	return nil
}
