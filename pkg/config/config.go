// Package config loads render/driver settings from a TOML file, the way
// noisetorch loads its on-disk config, and layers CLI flag overrides on top
// the way the teacher's main.go layers flags over scene defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Camera mirrors renderer.Config's fields as plain TOML-friendly values.
type Camera struct {
	LookFrom      [3]float64 `toml:"look_from"`
	LookAt        [3]float64 `toml:"look_at"`
	Up            [3]float64 `toml:"up"`
	VFov          float64    `toml:"vfov"`
	AspectRatio   float64    `toml:"aspect_ratio"`
	FocusDistance float64    `toml:"focus_distance"`
	DefocusAngle  float64    `toml:"defocus_angle"`
	XPixelSamples int        `toml:"x_pixel_samples"`
	YPixelSamples int        `toml:"y_pixel_samples"`
}

// Render holds everything needed to construct an integrator.Config and a
// render driver (spec §4.8, §4.9) without scene geometry itself, which
// remains the loaders package's concern.
type Render struct {
	Width           int    `toml:"width"`
	Height          int    `toml:"height"`
	SamplesPerPixel int    `toml:"samples_per_pixel"`
	SamplesPerPass  int    `toml:"samples_per_pass"`
	NumWorkers      int    `toml:"num_workers"`
	MaxDepth        int    `toml:"max_depth"`
	RRMinBounces    int    `toml:"rr_min_bounces"`
	ClampRadiance   bool   `toml:"clamp_radiance"`
	Driver          string `toml:"driver"` // "static" or "dynamic"
	OutputPNG       string `toml:"output_png"`
}

// Config is the top-level TOML document shape.
type Config struct {
	Camera Camera `toml:"camera"`
	Render Render `toml:"render"`
}

// Default returns the built-in configuration used when no TOML file is
// given, matching the teacher's DefaultProgressiveConfig defaults in scale.
func Default() Config {
	return Config{
		Camera: Camera{
			LookFrom:      [3]float64{0, 0, 0},
			LookAt:        [3]float64{0, 0, -1},
			Up:            [3]float64{0, 1, 0},
			VFov:          40,
			AspectRatio:   16.0 / 9.0,
			XPixelSamples: 1,
			YPixelSamples: 1,
		},
		Render: Render{
			Width:           400,
			Height:          225,
			SamplesPerPixel: 50,
			SamplesPerPass:  5,
			NumWorkers:      0, // 0 = caller resolves to runtime.NumCPU()
			MaxDepth:        50,
			RRMinBounces:    3,
			ClampRadiance:   false,
			Driver:          "static",
			OutputPNG:       "render.png",
		},
	}
}

// Load decodes a TOML config file on top of Default(), so a partial file
// only needs to name the fields it wants to override.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	return cfg, nil
}

// Write encodes cfg to path as TOML, creating or truncating the file.
func Write(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}
