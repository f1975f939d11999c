package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/gamecfg/gamecfg/internal/cli/clitest"
	"github.com/gamecfg/gamecfg/internal/cli/helpers"
	"github.com/gamecfg/gamecfg/internal/config"
)

func newTestCmd() *cobra.Command {
	g := &helpers.GlobalOptions{}
	cmd := NewConfigCmd(g)
	helpers.AddGlobalFlags(cmd.PersistentFlags(), g)
	return cmd
}

func TestNewConfigCmd(t *testing.T) {
	cmd := NewConfigCmd(&helpers.GlobalOptions{})

	assert.Equal(t, "config", cmd.Use)
	assert.NotEmpty(t, cmd.Short)

	var names []string
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"show", "path", "schema", "validate", "init"}, names)
}

func TestShow_MergesFlags(t *testing.T) {
	clitest.Isolate(t)
	t.Setenv("GAMECFG_EXPORT_DIR", "/srv/exports")

	stdout, _, err := clitest.Run(t, newTestCmd(), "show", "--backend", "http://game:9000", "--timeout", "30s")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, "http://game:9000", cfg.Backend.URL)
	assert.Equal(t, "30s", cfg.Backend.Timeout.String())
	assert.Equal(t, "/srv/exports", cfg.Export.Dir)
	assert.Equal(t, "game_params.json", cfg.Export.Filename)
}

func TestShow_JSON(t *testing.T) {
	clitest.Isolate(t)

	stdout, _, err := clitest.Run(t, newTestCmd(), "show", "-o", "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	assert.Contains(t, decoded, "backend")
	assert.Contains(t, decoded, "export")
}

func TestInitAndPath(t *testing.T) {
	dir := clitest.Isolate(t)
	expected := filepath.Join(dir, ".gamecfg", "config.yaml")

	stdout, _, err := clitest.Run(t, newTestCmd(), "path")
	require.NoError(t, err)
	assert.Contains(t, stdout, "config: "+expected+" (not present)")
	assert.Contains(t, stdout, "log:    "+filepath.Join(dir, ".gamecfg", "logs", "gamecfg.log"))

	stdout, _, err = clitest.Run(t, newTestCmd(), "init", "--backend", "http://game:9000")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+expected+"\n", stdout)

	loaded, err := config.NewLoaderAt(dir).LoadFile(expected)
	require.NoError(t, err)
	assert.Equal(t, "http://game:9000", loaded.Backend.URL)

	_, _, err = clitest.Run(t, newTestCmd(), "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = clitest.Run(t, newTestCmd(), "init", "--force")
	require.NoError(t, err)

	stdout, _, err = clitest.Run(t, newTestCmd(), "path")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(present)")
}

func TestValidate(t *testing.T) {
	dir := clitest.Isolate(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: localhost\nlogging:\n  level: chatty\n"), 0644))

	_, _, err := clitest.Run(t, newTestCmd(), "validate", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed with 2 errors")

	stdout, _, err := clitest.Run(t, newTestCmd(), "validate")
	require.NoError(t, err)
	assert.Contains(t, stdout, ": valid")
}

func TestSchema(t *testing.T) {
	clitest.Isolate(t)

	stdout, _, err := clitest.Run(t, newTestCmd(), "schema")
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &schema))
	assert.Equal(t, "gamecfg configuration", schema["title"])
}
