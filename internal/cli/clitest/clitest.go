// Package clitest runs cobra commands against an isolated configuration.
package clitest

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
)

// envVars are cleared so the developer's environment cannot leak into tests.
var envVars = []string{
	"GAMECFG_BACKEND_URL",
	"GAMECFG_BACKEND_TIMEOUT",
	"GAMECFG_EXPORT_DIR",
	"GAMECFG_EXPORT_FILENAME",
	"GAMECFG_LOG_LEVEL",
	"GAMECFG_LOG_FILE",
	"GAMECFG_RENDER_MARKDOWN",
	"GAMECFG_ALT_SCREEN",
}

// Isolate points the config loader at a fresh directory and clears GAMECFG_*
// overrides. It returns the directory.
func Isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("GAMECFG_CONFIG", dir)
	for _, name := range envVars {
		t.Setenv(name, "")
	}
	t.Setenv("NO_COLOR", "1")
	return dir
}

// Run executes cmd with args and returns what it wrote to stdout and stderr.
func Run(t *testing.T, cmd *cobra.Command, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err = cmd.Execute()
	return out.String(), errOut.String(), err
}
