package config

import (
	"strings"
	"testing"
)

type envTestConfig struct {
	Port int `env:"COFFEE_TEST_PORT" envDefault:"123"`
}

func TestParseEnvDefaults(t *testing.T) {
	var cfg envTestConfig

	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("parse env: %v", err)
	}
	if cfg.Port != 123 {
		t.Fatalf("expected default port 123, got %d", cfg.Port)
	}
}

func TestParseEnvError(t *testing.T) {
	var cfg envTestConfig
	t.Setenv("COFFEE_TEST_PORT", "not-an-int")

	err := ParseEnv(&cfg)
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("expected parse env prefix, got %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.PrimaryModel != "/models/ian_coffee.glb" || cfg.FallbackModel != "/models/fashion+model+3d+model.glb" {
		t.Fatalf("models = %q, %q", cfg.PrimaryModel, cfg.FallbackModel)
	}
	if !cfg.Tuning.AutoRotate || cfg.Tuning.AutoSpeed != 0.08 || cfg.Tuning.ModelScale != 3.5 {
		t.Fatalf("tuning = %+v", cfg.Tuning)
	}
	if cfg.Width != 1280 || cfg.Height != 720 {
		t.Fatalf("size = %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("COFFEE_ASSET_BASE_URL", "https://cdn.example")
	t.Setenv("COFFEE_AUTO_ROTATE", "false")
	t.Setenv("COFFEE_DRAG_SENSITIVITY", "0.02")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AssetBaseURL != "https://cdn.example" {
		t.Fatalf("base = %q", cfg.AssetBaseURL)
	}
	if cfg.Tuning.AutoRotate || cfg.Tuning.DragSensitivity != 0.02 {
		t.Fatalf("tuning = %+v", cfg.Tuning)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		key, value, want string
	}{
		{"COFFEE_VOLUME", "1.5", "volume"},
		{"COFFEE_MODEL_SCALE", "0", "model scale"},
		{"COFFEE_WIDTH", "-1", "window size"},
		{"COFFEE_INERTIA_DECAY", "-2", "inertia decay"},
		{"COFFEE_AUTO_SPEED", "fast", "parse env:"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("err = %v, want %q", err, tt.want)
			}
		})
	}
}
