package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/banshee-data/skylink/internal/astro"
)

// DefaultConfigPath is the path to the canonical defaults file.
const DefaultConfigPath = "config/skylink.defaults.json"

// Config is the root configuration for the skylink tools. Every field is
// optional; the Get* methods fall back to built-in defaults.
type Config struct {
	// Galactocentric frame
	GalcenRA          *float64 `json:"galcen_ra_deg,omitempty"`
	GalcenDec         *float64 `json:"galcen_dec_deg,omitempty"`
	GalcenDistanceKpc *float64 `json:"galcen_distance_kpc,omitempty"`
	ZSunKpc           *float64 `json:"z_sun_kpc,omitempty"`
	RollDeg           *float64 `json:"roll_deg,omitempty"`

	// Storage
	DBPath *string `json:"db_path,omitempty"`

	// Servers
	Listen          *string `json:"listen,omitempty"`
	GRPCListen      *string `json:"grpc_listen,omitempty"`
	ShutdownTimeout *string `json:"shutdown_timeout,omitempty"` // duration string like "5s"

	// Plots
	PlotWidthIn  *float64 `json:"plot_width_in,omitempty"`
	PlotHeightIn *float64 `json:"plot_height_in,omitempty"`

	Verbose *bool `json:"verbose,omitempty"`
}

func ptrFloat64(v float64) *float64 { return &v }
func ptrBool(v bool) *bool          { return &v }
func ptrString(v string) *string    { return &v }

// EmptyConfig returns a Config with all fields nil.
func EmptyConfig() *Config {
	return &Config{}
}

// DefaultConfig returns a Config with every field populated from the defaults.
func DefaultConfig() *Config {
	gc := astro.DefaultGalactocentric()
	return &Config{
		GalcenRA:          ptrFloat64(gc.GalcenRA),
		GalcenDec:         ptrFloat64(gc.GalcenDec),
		GalcenDistanceKpc: ptrFloat64(gc.GalcenDistance),
		ZSunKpc:           ptrFloat64(gc.ZSun),
		RollDeg:           ptrFloat64(gc.Roll),
		DBPath:            ptrString(defaultDBPath),
		Listen:            ptrString(defaultListen),
		GRPCListen:        ptrString(defaultGRPCListen),
		ShutdownTimeout:   ptrString(defaultShutdownTimeout.String()),
		PlotWidthIn:       ptrFloat64(defaultPlotWidthIn),
		PlotHeightIn:      ptrFloat64(defaultPlotHeightIn),
		Verbose:           ptrBool(false),
	}
}

const (
	defaultDBPath          = "skylink.db"
	defaultListen          = ":8080"
	defaultGRPCListen      = ":9090"
	defaultShutdownTimeout = 5 * time.Second
	defaultPlotWidthIn     = 8.0
	defaultPlotHeightIn    = 4.0
)

// LoadConfig loads a Config from a JSON file.
// The file must have a .json extension and be under 1MB.
// Fields omitted from the file keep their defaults.
func LoadConfig(path string) (*Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath, searching parent
// directories. Panics if the file cannot be loaded; intended for tests.
func MustLoadDefaultConfig() *Config {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath,    // from internal/config/
		"../../../" + DefaultConfigPath, // deeper packages
	}
	for _, path := range candidates {
		if cfg, err := LoadConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configuration values are valid.
func (c *Config) Validate() error {
	if err := c.Galactocentric().Validate(); err != nil {
		return err
	}

	if c.ShutdownTimeout != nil && *c.ShutdownTimeout != "" {
		if _, err := time.ParseDuration(*c.ShutdownTimeout); err != nil {
			return fmt.Errorf("invalid shutdown_timeout '%s': %w", *c.ShutdownTimeout, err)
		}
	}

	if c.PlotWidthIn != nil && *c.PlotWidthIn <= 0 {
		return fmt.Errorf("plot_width_in must be positive, got %f", *c.PlotWidthIn)
	}
	if c.PlotHeightIn != nil && *c.PlotHeightIn <= 0 {
		return fmt.Errorf("plot_height_in must be positive, got %f", *c.PlotHeightIn)
	}

	return nil
}

// Galactocentric builds the frame parameters, defaulting unset fields.
func (c *Config) Galactocentric() astro.GalactocentricParams {
	p := astro.DefaultGalactocentric()
	if c.GalcenRA != nil {
		p.GalcenRA = *c.GalcenRA
	}
	if c.GalcenDec != nil {
		p.GalcenDec = *c.GalcenDec
	}
	if c.GalcenDistanceKpc != nil {
		p.GalcenDistance = *c.GalcenDistanceKpc
	}
	if c.ZSunKpc != nil {
		p.ZSun = *c.ZSunKpc
	}
	if c.RollDeg != nil {
		p.Roll = *c.RollDeg
	}
	return p
}

// GetDBPath returns the db_path value or the default.
func (c *Config) GetDBPath() string {
	if c.DBPath == nil || *c.DBPath == "" {
		return defaultDBPath
	}
	return *c.DBPath
}

// GetListen returns the HTTP listen address or the default.
func (c *Config) GetListen() string {
	if c.Listen == nil || *c.Listen == "" {
		return defaultListen
	}
	return *c.Listen
}

// GetGRPCListen returns the gRPC listen address or the default.
func (c *Config) GetGRPCListen() string {
	if c.GRPCListen == nil || *c.GRPCListen == "" {
		return defaultGRPCListen
	}
	return *c.GRPCListen
}

// GetShutdownTimeout parses and returns ShutdownTimeout as a time.Duration.
func (c *Config) GetShutdownTimeout() time.Duration {
	if c.ShutdownTimeout == nil || *c.ShutdownTimeout == "" {
		return defaultShutdownTimeout
	}
	d, err := time.ParseDuration(*c.ShutdownTimeout)
	if err != nil {
		return defaultShutdownTimeout // default on parse error
	}
	return d
}

// GetPlotSize returns the plot width and height in inches.
func (c *Config) GetPlotSize() (width, height float64) {
	width, height = defaultPlotWidthIn, defaultPlotHeightIn
	if c.PlotWidthIn != nil {
		width = *c.PlotWidthIn
	}
	if c.PlotHeightIn != nil {
		height = *c.PlotHeightIn
	}
	return width, height
}

// GetVerbose returns the verbose value or the default.
func (c *Config) GetVerbose() bool {
	if c.Verbose == nil {
		return false // default: debug logging off
	}
	return *c.Verbose
}
