// Package config provides configuration loading and management.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/invopop/jsonschema"
)

// SchemaVersion is the configuration schema version.
const SchemaVersion = "1"

// Config represents ~/.gamecfg/config.yaml.
type Config struct {
	Version string        `yaml:"version" json:"version" jsonschema:"description=Configuration schema version"`
	Backend BackendConfig `yaml:"backend" json:"backend"`
	Export  ExportConfig  `yaml:"export" json:"export"`
	Logging LoggingConfig `yaml:"logging" json:"logging"`
	Chat    ChatConfig    `yaml:"chat" json:"chat"`
}

// BackendConfig locates the game-config service.
type BackendConfig struct {
	URL string `yaml:"url" json:"url" env:"GAMECFG_BACKEND_URL" jsonschema:"description=Base URL of the game-config service,default=http://localhost:8000"`
	// Timeout of zero leaves the transport default in place (no deadline).
	Timeout time.Duration `yaml:"timeout,omitempty" json:"timeout,omitempty" env:"GAMECFG_BACKEND_TIMEOUT" jsonschema:"description=Per-request timeout such as 30s (0 disables)"`
}

// ExportConfig controls where the downloaded state lands.
type ExportConfig struct {
	Dir      string `yaml:"dir" json:"dir" env:"GAMECFG_EXPORT_DIR" jsonschema:"description=Directory the state file is written to"`
	Filename string `yaml:"filename" json:"filename" env:"GAMECFG_EXPORT_FILENAME" jsonschema:"description=Name of the state file,default=game_params.json"`
}

// LoggingConfig contains logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" json:"level" env:"GAMECFG_LOG_LEVEL" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	// File overrides the interactive log location (~/.gamecfg/logs/gamecfg.log).
	File string `yaml:"file,omitempty" json:"file,omitempty" env:"GAMECFG_LOG_FILE" jsonschema:"description=Log file used while the chat UI owns the terminal"`
}

// ChatConfig contains chat view preferences.
type ChatConfig struct {
	RenderMarkdown bool `yaml:"render_markdown" json:"render_markdown" env:"GAMECFG_RENDER_MARKDOWN" jsonschema:"description=Render bot replies as markdown"`
	AltScreen      bool `yaml:"alt_screen" json:"alt_screen" env:"GAMECFG_ALT_SCREEN" jsonschema:"description=Run the chat view in the alternate screen buffer"`
}

// JSONSchema returns the JSON schema of the configuration file.
func JSONSchema() ([]byte, error) {
	reflector := jsonschema.Reflector{
		FieldNameTag:   "yaml",
		DoNotReference: true,
	}
	schema := reflector.Reflect(&Config{})
	schema.Title = "gamecfg configuration"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}
	return data, nil
}
