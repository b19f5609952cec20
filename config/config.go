// Package config loads server configuration from a YAML file with
// environment-variable overrides. Every field has a working default, so a
// missing config file is not an error.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Gandalltf/prueba-productividad/nomina"
)

// Period is one flexible window in month-day form. Values are dates whose
// year is ignored, e.g. "2000-02-15".
type Period struct {
	Start string `yaml:"start"`
	End   string `yaml:"end"`
}

// Config is the server configuration.
type Config struct {
	Port              int      `yaml:"port"`
	Timezone          string   `yaml:"timezone"`
	EnforceSundayRest *bool    `yaml:"enforce_sunday_rest"`
	FlexiblePeriods   []Period `yaml:"descanso_flexible_periods"`
	CORSOrigins       []string `yaml:"cors_origins"`
}

// Load reads the config file at path, applying defaults for anything
// missing. An empty path or absent file yields the pure-default config.
// PORT and TIMEZONE environment variables override the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Port:     8080,
		Timezone: nomina.DefaultTimezone,
		CORSOrigins: []string{
			"http://localhost:5173",
			"http://localhost:8080",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := os.Getenv("PORT"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = p
	}
	if v := os.Getenv("TIMEZONE"); v != "" {
		cfg.Timezone = v
	}

	if _, err := time.LoadLocation(cfg.Timezone); err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return cfg, nil
}

// NominaPeriods converts the configured windows into engine periods.
// Nil when none are configured, which lets the engine apply its default
// Feb 15 - Jun 15 window.
func (c *Config) NominaPeriods() []nomina.FlexiblePeriod {
	if len(c.FlexiblePeriods) == 0 {
		return nil
	}
	entries := make([]any, len(c.FlexiblePeriods))
	for i, p := range c.FlexiblePeriods {
		entries[i] = map[string]any{"start": p.Start, "end": p.End}
	}
	return nomina.ParseFlexiblePeriods(entries)
}
