package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Default config file path, relative to the working directory. Override
// with DESMOKE_CONFIG.
const defaultFile = ".desmoke.yaml"

// Config holds all desmoke configuration. Precedence, lowest to highest:
// built-in defaults, config file, DESMOKE_* environment variables, flags
// (applied by the CLI on top of Load's result).
type Config struct {
	Format    string `yaml:"format"`     // "auto", "resmoke", "cppunit"
	Summary   bool   `yaml:"summary"`    // report a summary at end-of-stream
	Only      bool   `yaml:"only"`       // suppress passthrough lines
	Color     string `yaml:"color"`      // "auto", "always", "never"
	LogLevel  string `yaml:"log_level"`  // slog level for diagnostics
	TasksFile string `yaml:"tasks_file"` // editor task configuration target
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Format:    "auto",
		Color:     "auto",
		LogLevel:  "info",
		TasksFile: filepath.Join(".vscode", "tasks.json"),
	}
}

// Load reads configuration from the config file (when present) and
// environment variables, layered over the defaults.
func Load() (Config, error) {
	cfg := Defaults()

	path := getenv("DESMOKE_CONFIG", defaultFile)
	if err := loadFile(&cfg, path); err != nil {
		return Config{}, err
	}

	cfg.Format = getenv("DESMOKE_FORMAT", cfg.Format)
	cfg.Summary = getenvBool("DESMOKE_SUMMARY", cfg.Summary)
	cfg.Only = getenvBool("DESMOKE_ONLY", cfg.Only)
	cfg.Color = getenv("DESMOKE_COLOR", cfg.Color)
	cfg.LogLevel = getenv("DESMOKE_LOG_LEVEL", cfg.LogLevel)
	cfg.TasksFile = getenv("DESMOKE_TASKS_FILE", cfg.TasksFile)
	return cfg, nil
}

// loadFile overlays cfg with values from a YAML config file. A missing
// file is not an error.
func loadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
