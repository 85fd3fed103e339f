package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hjson/hjson-go/v4"
)

// Config controls the server. Fields map to the hjson config file; the
// listen address and zone directory can also be overridden from the
// environment.
type Config struct {
	ListenAddr        string        `json:"listen_addr"`
	ZoneDir           string        `json:"zone_dir"`
	SimplifyTolerance float64       `json:"simplify_tolerance"`
	DropContained     bool          `json:"drop_contained"`
	Build             BuildDefaults `json:"build"`
}

// BuildDefaults fill in build request fields that were left zero.
type BuildDefaults struct {
	NumNodes       int     `json:"num_nodes"`
	ConnectRadius  float32 `json:"connect_radius"`
	MinX           float32 `json:"min_x"`
	MinZ           float32 `json:"min_z"`
	MaxX           float32 `json:"max_x"`
	MaxZ           float32 `json:"max_z"`
	Seed           int64   `json:"seed"`
	NoiseAmplitude float64 `json:"noise_amplitude"`
	NoiseScale     float64 `json:"noise_scale"`
	Bidirectional  bool    `json:"bidirectional"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		ListenAddr: ":8080",
		Build: BuildDefaults{
			NumNodes:       500,
			ConnectRadius:  25,
			MinX:           0,
			MinZ:           0,
			MaxX:           200,
			MaxZ:           200,
			Seed:           1,
			NoiseAmplitude: 0.5,
			NoiseScale:     50,
			Bidirectional:  true,
		},
	}
}

// LoadConfig reads an hjson config file over the defaults and applies
// environment overrides. A missing file is not an error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("ℹ️  No config file at %s, using defaults\n", path)
			applyEnv(&cfg)
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := hjson.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyEnv(&cfg)
	sanitizeBuild(&cfg.Build)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if addr := os.Getenv("NAVD_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if dir := os.Getenv("NAVD_ZONE_DIR"); dir != "" {
		cfg.ZoneDir = dir
	}
}

// sanitizeBuild resets build defaults a config file set to unusable values.
func sanitizeBuild(b *BuildDefaults) {
	defaults := DefaultConfig().Build
	if b.NumNodes <= 0 {
		b.NumNodes = defaults.NumNodes
	}
	if !(b.ConnectRadius > 0) {
		b.ConnectRadius = defaults.ConnectRadius
	}
	if b.MaxX <= b.MinX || b.MaxZ <= b.MinZ {
		log.Println("⚠️  Invalid build bounds in config, using defaults")
		b.MinX, b.MinZ = defaults.MinX, defaults.MinZ
		b.MaxX, b.MaxZ = defaults.MaxX, defaults.MaxZ
	}
	if !(b.NoiseAmplitude >= 0 && b.NoiseAmplitude < 1) {
		log.Printf("⚠️  Noise amplitude %.2f outside [0, 1), using %.2f\n",
			b.NoiseAmplitude, defaults.NoiseAmplitude)
		b.NoiseAmplitude = defaults.NoiseAmplitude
	}
	if !(b.NoiseScale > 0) {
		b.NoiseScale = defaults.NoiseScale
	}
}
