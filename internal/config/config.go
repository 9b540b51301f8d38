// Package config handles workspace and global configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sparkforge/spark/internal/graph"
	"github.com/sparkforge/spark/internal/mindmap"
)

// Config represents workspace configuration stored in .spark/config.json.
// It holds the defaults used when laying out and rendering diagrams.
type Config struct {
	StepX      float64 `json:"step_x"`
	YMin       float64 `json:"y_min"`
	YMax       float64 `json:"y_max"`
	MaxDepth   int     `json:"max_depth"`             // 0 disables the mind-map depth limit
	HTMLLayout string  `json:"html_layout,omitempty"` // preset, breadthfirst, circle, grid
}

const (
	SparkDir     = ".spark"
	ConfigFile   = "config.json"
	ProjectsFile = "projects.jsonl"
	CacheDir     = "cache"
	DBFile       = "projects.db"
)

// Default returns the configuration written by `spark init`.
func Default() *Config {
	opts := mindmap.DefaultOptions()
	return &Config{
		StepX:      opts.StepX,
		YMin:       opts.YMin,
		YMax:       opts.YMax,
		MaxDepth:   mindmap.MaxDepth,
		HTMLLayout: "preset",
	}
}

// SparkPath returns the path to the .spark directory from a root path.
func SparkPath(root string) string {
	return filepath.Join(root, SparkDir)
}

// ConfigPath returns the path to config.json from a root path.
func ConfigPath(root string) string {
	return filepath.Join(root, SparkDir, ConfigFile)
}

// ProjectsPath returns the path to projects.jsonl from a root path.
func ProjectsPath(root string) string {
	return filepath.Join(root, SparkDir, ProjectsFile)
}

// CachePath returns the path to the cache directory from a root path.
func CachePath(root string) string {
	return filepath.Join(root, SparkDir, CacheDir)
}

// DBPath returns the path to projects.db from a root path.
func DBPath(root string) string {
	return filepath.Join(root, SparkDir, CacheDir, DBFile)
}

// IsWorkspace checks if the given path contains a spark workspace.
func IsWorkspace(root string) bool {
	info, err := os.Stat(SparkPath(root))
	return err == nil && info.IsDir()
}

// ErrNoWorkspace is returned by FindWorkspace when no .spark directory is found.
var ErrNoWorkspace = errors.New("not in a spark workspace (no .spark directory found)")

// FindWorkspace walks up from the given path to find a spark workspace.
func FindWorkspace(start string) (string, error) {
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	for {
		if IsWorkspace(abs) {
			return abs, nil
		}

		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNoWorkspace
		}
		abs = parent
	}
}

// Load reads configuration from the workspace at the given root. Fields
// missing from the file keep their defaults.
func Load(root string) (*Config, error) {
	data, err := os.ReadFile(ConfigPath(root))
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the workspace at the given root.
func (c *Config) Save(root string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}

	if err := os.WriteFile(ConfigPath(root), data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	for _, f := range []struct {
		key string
		v   float64
	}{{"step_x", c.StepX}, {"y_min", c.YMin}, {"y_max", c.YMax}} {
		if math.IsNaN(f.v) || math.IsInf(f.v, 0) {
			return fmt.Errorf("invalid %s: %v (must be finite)", f.key, f.v)
		}
	}
	if c.StepX <= 0 {
		return fmt.Errorf("invalid step_x: %v (must be positive)", c.StepX)
	}
	if c.YMax < c.YMin {
		return fmt.Errorf("invalid y range: y_max %v is below y_min %v", c.YMax, c.YMin)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth: %d (must be 0 or more)", c.MaxDepth)
	}
	return graph.ValidateLayout(c.HTMLLayout)
}

// LayoutOptions returns the mind-map layout options this configuration selects.
func (c *Config) LayoutOptions() mindmap.Options {
	return mindmap.Options{StepX: c.StepX, YMin: c.YMin, YMax: c.YMax}
}

// ErrUnknownKey is returned by Get and Set for keys that are not config fields.
var ErrUnknownKey = errors.New("unknown config key")

// Keys lists the settable configuration keys.
func Keys() []string {
	return []string{"html_layout", "max_depth", "step_x", "y_max", "y_min"}
}

// Get returns the string form of a configuration value.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "step_x":
		return formatFloat(c.StepX), nil
	case "y_min":
		return formatFloat(c.YMin), nil
	case "y_max":
		return formatFloat(c.YMax), nil
	case "max_depth":
		return strconv.Itoa(c.MaxDepth), nil
	case "html_layout":
		return c.HTMLLayout, nil
	}
	return "", fmt.Errorf("%w: %s (valid: %v)", ErrUnknownKey, key, Keys())
}

// Set parses value into the named field and validates the result. On error
// the configuration is left unchanged.
func (c *Config) Set(key, value string) error {
	next := *c
	var err error
	switch key {
	case "step_x":
		next.StepX, err = strconv.ParseFloat(value, 64)
	case "y_min":
		next.YMin, err = strconv.ParseFloat(value, 64)
	case "y_max":
		next.YMax, err = strconv.ParseFloat(value, 64)
	case "max_depth":
		next.MaxDepth, err = strconv.Atoi(value)
	case "html_layout":
		next.HTMLLayout = value
	default:
		return fmt.Errorf("%w: %s (valid: %v)", ErrUnknownKey, key, Keys())
	}
	if err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ExpandPath expands ~ to the user's home directory.
// Returns the original path unchanged if it doesn't start with ~.
func ExpandPath(path string) string {
	if len(path) == 0 || path[0] != '~' {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	return filepath.Join(home, path[1:])
}
