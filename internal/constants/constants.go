// Package constants defines shared configuration constants.
package constants

var (
	ConfigFile = "config.yaml"

	DefaultDir = ".gamecfg"

	// DefaultLogDir is relative to the config base directory.
	DefaultLogDir = DefaultDir + "/" + "logs"

	DefaultLogFile = "gamecfg.log"

	// DefaultBackendURL is the game-config service the chat talks to.
	DefaultBackendURL = "http://localhost:8000"

	// ExportFilename is the fixed name of the downloaded state file.
	ExportFilename = "game_params.json"

	// DefaultExportDir is where the state file lands (current directory).
	DefaultExportDir = "."
)

// Backend routes.
const (
	ChatPath  = "/chat"
	StatePath = "/state"
)

// Log rotation defaults.
const (
	// DefaultLogMaxSizeMB is the size at which the TUI log file rotates.
	DefaultLogMaxSizeMB = 10

	DefaultLogMaxBackups = 3

	DefaultLogMaxAgeDays = 14
)
