package game

import (
	"fmt"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/fracturecrawl/internal/telemetry"
	"github.com/samdwyer/fracturecrawl/internal/world"
)

// Config holds game configuration options, read from the environment.
type Config struct {
	// Seed for random number generation. Used for reproducible labyrinths.
	// A seed of 0 means a random seed will be generated.
	Seed int64 `env:"FRACTURECRAWL_SEED" envDefault:"0"`

	LogLevel  string `env:"FRACTURECRAWL_LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"FRACTURECRAWL_LOG_FORMAT" envDefault:"text"`
	// Empty discards log output; the terminal belongs to the game.
	LogFile string `env:"FRACTURECRAWL_LOG_FILE"`

	OTelEnabled bool   `env:"FRACTURECRAWL_OTEL_ENABLED" envDefault:"false"`
	APIKey      string `env:"HONEYCOMB_FRACTURECRAWL_API_KEY"`
	Dataset     string `env:"HONEYCOMB_FRACTURECRAWL_DATASET" envDefault:"fracturecrawl"`

	MazeWidth  int `env:"FRACTURECRAWL_MAZE_WIDTH" envDefault:"30"`
	MazeHeight int `env:"FRACTURECRAWL_MAZE_HEIGHT" envDefault:"20"`
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() Config {
	return Config{
		LogLevel:   "info",
		LogFormat:  "text",
		Dataset:    "fracturecrawl",
		MazeWidth:  world.DefaultWidth,
		MazeHeight: world.DefaultHeight,
	}
}

// LoadConfig parses Config from environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.MazeWidth < 3 || cfg.MazeHeight < 3 {
		return Config{}, fmt.Errorf("maze size %dx%d: %w", cfg.MazeWidth, cfg.MazeHeight, world.ErrGridTooSmall)
	}
	return cfg, nil
}

// Telemetry returns the tracing settings.
func (c Config) Telemetry() telemetry.Settings {
	return telemetry.Settings{
		Enabled: c.OTelEnabled,
		APIKey:  c.APIKey,
		Dataset: c.Dataset,
	}
}
