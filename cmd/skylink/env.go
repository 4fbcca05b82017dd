package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/banshee-data/skylink/internal/astro"
	"github.com/banshee-data/skylink/internal/config"
	"github.com/banshee-data/skylink/internal/coordhelpers"
	"github.com/banshee-data/skylink/internal/plugin"
)

// env is the state every command builds from its configuration.
type env struct {
	cfg      *config.Config
	tr       *astro.Transformer
	registry *plugin.Registry
}

func loadEnv(configPath string) (*env, error) {
	cfg := config.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = config.LoadConfig(configPath); err != nil {
			return nil, err
		}
	}

	tr, err := astro.NewTransformer(cfg.Galactocentric())
	if err != nil {
		return nil, fmt.Errorf("galactocentric frame: %w", err)
	}
	registry := plugin.NewRegistry()
	if _, err := registry.Install(coordhelpers.New(tr)); err != nil {
		return nil, err
	}
	return &env{cfg: cfg, tr: tr, registry: registry}, nil
}

// parsePoints reads "a,b;c,d" as points and returns one column per
// component. Every point must have as many components as the first.
func parsePoints(s string) ([][]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, fmt.Errorf("no values given")
	}
	var columns [][]float64
	for i, point := range strings.Split(s, ";") {
		parts := strings.Split(point, ",")
		if columns == nil {
			columns = make([][]float64, len(parts))
		}
		if arity := len(columns); len(parts) != arity {
			return nil, fmt.Errorf("point %d has %d components, want %d", i+1, len(parts), arity)
		}
		for j, p := range parts {
			v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
			if err != nil {
				return nil, fmt.Errorf("point %d: invalid number %q", i+1, p)
			}
			columns[j] = append(columns[j], v)
		}
	}
	return columns, nil
}

func splitLabels(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
