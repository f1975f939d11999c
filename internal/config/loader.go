package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/gamecfg/gamecfg/internal/constants"
)

// Loader handles loading and saving the configuration file.
type Loader struct {
	homeDir string
	// dotenvFiles are loaded before env overrides; missing files are ignored.
	dotenvFiles []string
}

// NewLoader creates a new config loader.
// The base directory is resolved in this order:
//  1. GAMECFG_CONFIG environment variable.
//  2. User home directory (~/).
//  3. /tmp/gamecfg-fallback (containers without a home dir).
func NewLoader() *Loader {
	if baseDir := os.Getenv("GAMECFG_CONFIG"); baseDir != "" {
		return NewLoaderAt(baseDir)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = filepath.Join(os.TempDir(), "gamecfg-fallback")
	}
	return NewLoaderAt(homeDir)
}

// NewLoaderAt creates a loader rooted at homeDir.
func NewLoaderAt(homeDir string) *Loader {
	return &Loader{
		homeDir:     homeDir,
		dotenvFiles: []string{".env"},
	}
}

// ConfigPath returns the path to the config file.
func (l *Loader) ConfigPath() string {
	return filepath.Join(l.homeDir, constants.DefaultDir, constants.ConfigFile)
}

// LogPath returns the interactive log file, honoring logging.file.
func (l *Loader) LogPath(cfg *Config) string {
	if cfg != nil && cfg.Logging.File != "" {
		return cfg.Logging.File
	}
	return filepath.Join(l.homeDir, constants.DefaultLogDir, constants.DefaultLogFile)
}

// Load reads the default config file. See LoadFile.
func (l *Loader) Load() (*Config, error) {
	return l.LoadFile(l.ConfigPath())
}

// LoadFile builds the configuration from defaults, the YAML file at path
// (skipped when absent), .env files and environment variables, in that order.
func (l *Loader) LoadFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	//nolint:gosec // G304: path is the user's own config file.
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	for _, f := range l.dotenvFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	if err := LoadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	return cfg, nil
}

// Save writes cfg to the default config file.
func (l *Loader) Save(cfg *Config) error {
	return l.SaveFile(l.ConfigPath(), cfg)
}

// SaveFile writes cfg to path, creating its directory.
func (l *Loader) SaveFile(path string, cfg *Config) error {
	//nolint:gosec // G301: directory needs standard permissions for traversal
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	//nolint:gosec // G306: config holds no secrets
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
