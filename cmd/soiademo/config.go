package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// serveConfig is the YAML document the serve command reads. Flags override
// whatever the file sets.
type serveConfig struct {
	// Addr is the host:port the HTTP server listens on.
	Addr string `yaml:"addr"`
	// Development switches the logger to zap's development mode.
	Development bool `yaml:"development"`
}

func defaultServeConfig() serveConfig {
	return serveConfig{Addr: "localhost:8787"}
}

func loadServeConfig(path string) (serveConfig, error) {
	cfg := defaultServeConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}
