package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// GlobalConfig represents configuration stored in ~/.config/spark/config.yml.
type GlobalConfig struct {
	WorkspacePath string `yaml:"workspace_path,omitempty"` // used when no .spark is found upward
	LogLevel      string `yaml:"log_level,omitempty"`
	LogFormat     string `yaml:"log_format,omitempty"` // console or json
	LogFile       string `yaml:"log_file,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "spark"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// LogLevelEnv overrides log_level when set.
	LogLevelEnv = "SPARK_LOG_LEVEL"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/spark/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file.
// Returns an empty config (not an error) if the file doesn't exist.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	path := GlobalConfigPath()
	if path == "" {
		return &GlobalConfig{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &GlobalConfig{}, nil
		}
		return nil, fmt.Errorf("reading global config: %w", err)
	}

	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing global config: %w", err)
	}

	if cfg.WorkspacePath != "" {
		cfg.WorkspacePath = ExpandPath(cfg.WorkspacePath)
	}
	if cfg.LogFile != "" {
		cfg.LogFile = ExpandPath(cfg.LogFile)
	}

	globalConfigCache = &cfg
	return &cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// EffectiveLogLevel returns SPARK_LOG_LEVEL if set, else log_level, else "warn".
func (g *GlobalConfig) EffectiveLogLevel() string {
	if env := strings.TrimSpace(os.Getenv(LogLevelEnv)); env != "" {
		return strings.ToLower(env)
	}
	if g != nil && g.LogLevel != "" {
		return strings.ToLower(g.LogLevel)
	}
	return "warn"
}

// ErrWorkspacePathNotExist is returned when the configured workspace_path doesn't exist.
var ErrWorkspacePathNotExist = errors.New("workspace_path does not exist")

// ResolveWorkspace finds the workspace for a command run from start. It walks
// up from start first and falls back to workspace_path from the global config.
func ResolveWorkspace(start string) (string, error) {
	root, err := FindWorkspace(start)
	if err == nil {
		return root, nil
	}
	if !errors.Is(err, ErrNoWorkspace) {
		return "", err
	}

	cfg, gerr := LoadGlobalConfig()
	if gerr != nil {
		return "", gerr
	}
	if cfg.WorkspacePath == "" {
		return "", err
	}
	if !IsWorkspace(cfg.WorkspacePath) {
		return "", fmt.Errorf("%w: %s", ErrWorkspacePathNotExist, cfg.WorkspacePath)
	}
	return cfg.WorkspacePath, nil
}

// HelpfulConfigMessage returns a hint shown when no workspace can be found.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`No spark workspace found.

Run 'spark init' in a project directory, or create %s to set a default:
  mkdir -p %s
  echo 'workspace_path: /path/to/your/workspace' > %s`,
		configPath,
		filepath.Dir(configPath),
		configPath)
}
