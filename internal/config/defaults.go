package config

import (
	"github.com/gamecfg/gamecfg/internal/constants"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: SchemaVersion,
		Backend: BackendConfig{
			URL: constants.DefaultBackendURL,
		},
		Export: ExportConfig{
			Dir:      constants.DefaultExportDir,
			Filename: constants.ExportFilename,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		Chat: ChatConfig{
			RenderMarkdown: true,
			AltScreen:      true,
		},
	}
}
