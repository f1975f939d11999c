package helpers

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/gamecfg/gamecfg/internal/backend"
	"github.com/gamecfg/gamecfg/internal/config"
	"github.com/gamecfg/gamecfg/internal/export"
	"github.com/gamecfg/gamecfg/internal/logging"
)

// GlobalOptions holds the persistent flags shared by every command.
type GlobalOptions struct {
	ConfigFile string
	BackendURL string
	LogLevel   string
	Timeout    time.Duration
}

// AddGlobalFlags registers the persistent flags on flags.
func AddGlobalFlags(flags *pflag.FlagSet, opts *GlobalOptions) {
	flags.StringVar(&opts.ConfigFile, "config", "", "Config file (default ~/.gamecfg/config.yaml)")
	flags.StringVar(&opts.BackendURL, "backend", "", "Game-config service URL (default http://localhost:8000)")
	flags.StringVar(&opts.LogLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "Per-request timeout, e.g. 30s (0 waits indefinitely)")
}

// LoadConfig resolves the effective configuration for cmd: defaults, the
// config file, .env, environment variables and finally any global flag set
// explicitly on the command line. The result is validated.
func LoadConfig(cmd *cobra.Command, opts *GlobalOptions) (*config.Config, *config.Loader, error) {
	loader := config.NewLoader()

	path := opts.ConfigFile
	if path == "" {
		path = loader.ConfigPath()
	}

	cfg, err := loader.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Backend.URL = opts.BackendURL
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.LogLevel
	}
	if flags.Changed("timeout") {
		cfg.Backend.Timeout = opts.Timeout
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, loader, nil
}

// NewLogger creates a console logger writing to w.
func NewLogger(cfg *config.Config, w io.Writer, component string) zerolog.Logger {
	return logging.NewWithComponent(logging.Config{
		Level:  cfg.Logging.Level,
		Pretty: true,
		Output: w,
	}, component)
}

// NewBackendClient creates a client for the configured service.
func NewBackendClient(cfg *config.Config, logger zerolog.Logger) (*backend.Client, error) {
	client, err := backend.New(cfg.Backend.URL,
		backend.WithTimeout(cfg.Backend.Timeout),
		backend.WithLogger(logger),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client: %w", err)
	}
	return client, nil
}

// NewExporter returns the configured state file writer.
func NewExporter(cfg *config.Config) *export.Writer {
	return export.NewWriter(cfg.Export.Dir, cfg.Export.Filename)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
