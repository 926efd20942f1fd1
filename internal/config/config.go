// Package config holds application configuration and feature flags,
// loaded from an optional JSON file next to the binary.
package config

import (
	"encoding/json"
	"os"
	"sync"
)

// Config holds application configuration and feature flags.
type Config struct {
	Features   Features   `json:"features"`
	Simulation Simulation `json:"simulation"`
	Rendering  Rendering  `json:"rendering"`
}

// Features contains feature flags for development.
type Features struct {
	// EnableDebugServer starts the HTTP debug server exposing
	// simulation state.
	EnableDebugServer bool `json:"enable_debug_server"`

	// EnableDrag registers the aerodynamic drag force for live rounds
	// on top of each preset's built-in damping.
	EnableDrag bool `json:"enable_drag"`
}

// Simulation contains physics parameters.
type Simulation struct {
	// GravityY is the Y component of gravitational acceleration applied
	// through the force registry, in m/s^2.
	GravityY float64 `json:"gravity_y"`

	// MaxRounds is the size of the ammo pool; firing beyond it recycles
	// the oldest round.
	MaxRounds int `json:"max_rounds"`

	// DragK1 and DragK2 are the linear and quadratic drag coefficients
	// used when EnableDrag is on.
	DragK1 float64 `json:"drag_k1"`
	DragK2 float64 `json:"drag_k2"`
}

// Rendering contains rendering parameters.
type Rendering struct {
	// VSync selects Fifo presentation; off means Immediate (tearing,
	// uncapped frame rate).
	VSync bool `json:"vsync"`

	// AssetDir is the directory textures are loaded from.
	AssetDir string `json:"asset_dir"`

	// GroundTexture and RoundTexture are asset names; missing assets
	// fall back to the built-in checkerboard.
	GroundTexture string `json:"ground_texture"`
	RoundTexture  string `json:"round_texture"`
}

// DebugServerAddr is where the debug server listens when enabled.
const DebugServerAddr = "localhost:8642"

var (
	instance *Config
	once     sync.Once
	mu       sync.RWMutex
)

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Features: Features{
			EnableDebugServer: true, // On by default for development
			EnableDrag:        false,
		},
		Simulation: Simulation{
			GravityY:  -9.81,
			MaxRounds: 16,
			DragK1:    0.1,
			DragK2:    0.01,
		},
		Rendering: Rendering{
			VSync:         true,
			AssetDir:      "assets",
			GroundTexture: "ground",
			RoundTexture:  "round",
		},
	}
}

// Get returns the global configuration instance, loading config.json on
// first use when present.
func Get() *Config {
	once.Do(func() {
		instance = DefaultConfig()
		if data, err := os.ReadFile("config.json"); err == nil {
			json.Unmarshal(data, instance)
		}
	})
	return instance
}

// Load loads configuration from a file into the global instance.
func Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	return json.Unmarshal(data, instance)
}

// Save saves the current configuration to a file.
func Save(path string) error {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		instance = DefaultConfig()
	}

	data, err := json.MarshalIndent(instance, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Gravity returns the configured gravitational acceleration.
func Gravity() float64 {
	mu.RLock()
	defer mu.RUnlock()

	if instance == nil {
		return DefaultConfig().Simulation.GravityY
	}
	return instance.Simulation.GravityY
}

// SetGravity overrides gravity at runtime (used by the debug server).
func SetGravity(g float64) {
	mu.Lock()
	defer mu.Unlock()

	if instance == nil {
		instance = DefaultConfig()
	}
	instance.Simulation.GravityY = g
}
