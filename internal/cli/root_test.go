package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecfg/gamecfg/internal/backend/backendtest"
	"github.com/gamecfg/gamecfg/internal/cli/clitest"
	"github.com/gamecfg/gamecfg/pkg/version"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := NewRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	for _, want := range []string{"chat", "ask", "export", "state", "status", "config", "version"} {
		assert.Contains(t, names, want)
	}

	for _, flag := range []string{"backend", "config", "log-level", "timeout"} {
		assert.NotNil(t, root.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCmd(t *testing.T) {
	stdout, _, err := clitest.Run(t, NewRootCmd(), "version")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(stdout, "gamecfg version "+version.Version+"\n"))
	assert.Contains(t, stdout, "Go version: ")
}

func TestStatusCmd(t *testing.T) {
	clitest.Isolate(t)
	srv := backendtest.New(t)
	srv.SetState(`{"game_mode":"racer","params":[{"name":"top_speed","value":220,"source":"ai"}]}`)

	stdout, _, err := clitest.Run(t, NewRootCmd(), "status", "--backend", srv.URL)
	require.NoError(t, err)
	assert.Contains(t, stdout, srv.URL+" (reachable")
	assert.Contains(t, stdout, "Game:      racer")
	assert.Contains(t, stdout, "Params:    1 total (1 tuned)")

	stdout, _, err = clitest.Run(t, NewRootCmd(), "status", "--backend", srv.URL, "-o", "json")
	require.NoError(t, err)

	var info map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, "racer", info["game_mode"])
	assert.Equal(t, "missing", info["export_state"])
}

func TestStatusCmd_Unreachable(t *testing.T) {
	clitest.Isolate(t)
	srv := backendtest.New(t)
	url := srv.URL
	srv.Close()

	stdout, _, err := clitest.Run(t, NewRootCmd(), "status", "--backend", url, "--timeout", "2s")
	require.NoError(t, err)
	assert.Contains(t, stdout, "(unreachable)")
}

func TestExportThroughRoot(t *testing.T) {
	dir := clitest.Isolate(t)
	srv := backendtest.New(t)
	srv.SetState(`{"level":3}`)

	// Values from the config file apply when flags are absent.
	cfgPath := filepath.Join(dir, "gamecfg.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("backend:\n  url: "+srv.URL+"\nexport:\n  dir: "+dir+"\n"), 0644))

	_, _, err := clitest.Run(t, NewRootCmd(), "export", "--config", cfgPath)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "game_params.json"))
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"level\": 3\n}", string(data))
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := clitest.Run(t, NewRootCmd(), "frobnicate")
	assert.Error(t, err)
}
