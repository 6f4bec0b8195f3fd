// Package config loads the harness configuration from a YAML file with an
// env-file override for the database URL.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultPath is where the grade command looks for configuration.
const DefaultPath = "examinator.yaml"

// Config holds the harness settings. Flags override file values.
type Config struct {
	// EvaluationDir is the fixture tree root.
	EvaluationDir string `yaml:"evaluation_dir"`
	// BuildDir is the build output tree mirroring the evaluation tree.
	BuildDir string `yaml:"build_dir"`
	// BuildCommand compiles the submission inside BuildDir.
	BuildCommand []string `yaml:"build_command"`
	// LitBinary is the external test tool executable.
	LitBinary string `yaml:"lit_binary"`
	// BarWidth is the hidden-test proportion bar width.
	BarWidth int `yaml:"bar_width"`
	// RateLimit caps fixture executions per second; 0 means unlimited.
	RateLimit float64 `yaml:"rate_limit"`
	// DatabaseURL enables run persistence when set.
	DatabaseURL string `yaml:"database_url"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		EvaluationDir: "evaluation",
		BuildDir:      "build",
		BuildCommand:  []string{"cmake", "--build", "."},
		LitBinary:     "lit",
		BarWidth:      20,
	}
}

// Load reads a YAML config over the defaults. A missing file is not an
// error: the defaults apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("config: reading %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnv applies environment overrides, reading a .env file first when one
// exists in the working directory.
func (c *Config) LoadEnv() {
	_ = godotenv.Load()
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.DatabaseURL = url
	}
}
