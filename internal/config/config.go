// Package config loads service configuration from a YAML file with
// IMPACTCTL_-prefixed environment variable overrides, applying defaults for
// anything left unset.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the impact-analyser service and CLI.
//
// All fields are optional; Load applies defaults for anything left at its
// zero value.
type Config struct {
	// Port is the HTTP server port. Default: 8090.
	Port int `yaml:"port"`

	// GinMode sets the Gin framework mode ("debug", "release", "test").
	// Default: "debug".
	GinMode string `yaml:"gin_mode"`

	// StorePath is the Badger database directory backing the graph store.
	// Default: "./data/graphs.db".
	StorePath string `yaml:"store_path"`

	// OTelEndpoint is the OpenTelemetry collector endpoint. Empty
	// disables exporting and leaves tracing as a local no-op.
	OTelEndpoint string `yaml:"otel_endpoint"`

	// EnableMetrics enables the Prometheus /metrics endpoint. Default: true.
	EnableMetrics bool `yaml:"enable_metrics"`

	// AnalysisTimeout bounds each request served over HTTP, analyze
	// included, end to end. Zero or negative disables the bound.
	// Default: 30s.
	AnalysisTimeout time.Duration `yaml:"analysis_timeout"`

	// LogLevel is the minimum slog level ("debug", "info", "warn",
	// "error"). Default: "info".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() Config {
	return Config{
		Port:            8090,
		GinMode:         "debug",
		StorePath:       "./data/graphs.db",
		EnableMetrics:   true,
		AnalysisTimeout: 30 * time.Second,
		LogLevel:        "info",
	}
}

// Load reads path (if non-empty and present) as YAML over Default(), then
// applies IMPACTCTL_* environment variable overrides. A missing path is not
// an error; a present but malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return cfg, fmt.Errorf("config: reading %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parsing %s: %w", path, err)
		}
	}

	applyEnvOverrides(&cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if v, ok := os.LookupEnv("IMPACTCTL_PORT"); ok {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.Port = p
		}
	}
	if v, ok := os.LookupEnv("IMPACTCTL_GIN_MODE"); ok {
		cfg.GinMode = v
	}
	if v, ok := os.LookupEnv("IMPACTCTL_STORE_PATH"); ok {
		cfg.StorePath = v
	}
	if v, ok := os.LookupEnv("IMPACTCTL_OTEL_ENDPOINT"); ok {
		cfg.OTelEndpoint = v
	}
	if v, ok := os.LookupEnv("IMPACTCTL_ENABLE_METRICS"); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.EnableMetrics = b
		}
	}
	if v, ok := os.LookupEnv("IMPACTCTL_ANALYSIS_TIMEOUT"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.AnalysisTimeout = d
		}
	}
	if v, ok := os.LookupEnv("IMPACTCTL_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
}
