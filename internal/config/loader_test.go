package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gamecfg/gamecfg/internal/constants"
)

func newTestLoader(t *testing.T) *Loader {
	t.Helper()
	l := NewLoaderAt(t.TempDir())
	l.dotenvFiles = nil
	return l
}

func TestLoader_Load_NotExists(t *testing.T) {
	loader := newTestLoader(t)

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, SchemaVersion, cfg.Version)
	assert.Equal(t, "http://localhost:8000", cfg.Backend.URL)
	assert.Equal(t, "game_params.json", cfg.Export.Filename)
	assert.Zero(t, cfg.Backend.Timeout)
}

func TestLoader_SaveAndLoad(t *testing.T) {
	loader := newTestLoader(t)

	cfg := DefaultConfig()
	cfg.Backend.URL = "http://game-config.internal:9000"
	cfg.Backend.Timeout = 45 * time.Second
	cfg.Export.Dir = "/tmp/exports"
	cfg.Chat.RenderMarkdown = false

	require.NoError(t, loader.Save(cfg))
	assert.FileExists(t, loader.ConfigPath())

	loaded, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoader_PartialFileKeepsDefaults(t *testing.T) {
	loader := newTestLoader(t)
	path := loader.ConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("backend:\n  url: http://10.0.0.5:8000\n  timeout: 2m\n"), 0644))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://10.0.0.5:8000", cfg.Backend.URL)
	assert.Equal(t, 2*time.Minute, cfg.Backend.Timeout)
	assert.Equal(t, constants.ExportFilename, cfg.Export.Filename)
	assert.True(t, cfg.Chat.RenderMarkdown)
}

func TestLoader_InvalidYAML(t *testing.T) {
	loader := newTestLoader(t)
	path := loader.ConfigPath()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("backend: [oops"), 0644))

	_, err := loader.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoader_EnvOverridesFile(t *testing.T) {
	loader := newTestLoader(t)
	require.NoError(t, loader.Save(DefaultConfig()))

	t.Setenv("GAMECFG_BACKEND_URL", "http://override:8000")
	t.Setenv("GAMECFG_EXPORT_DIR", "/srv/out")

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "http://override:8000", cfg.Backend.URL)
	assert.Equal(t, "/srv/out", cfg.Export.Dir)
}

func TestLoader_DotenvFile(t *testing.T) {
	loader := newTestLoader(t)
	dotenv := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("GAMECFG_LOG_LEVEL=debug\n"), 0644))
	loader.dotenvFiles = []string{dotenv, filepath.Join(t.TempDir(), "missing.env")}

	// godotenv sets process env; make sure it is cleared afterwards.
	t.Setenv("GAMECFG_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("GAMECFG_LOG_LEVEL"))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoader_LogPath(t *testing.T) {
	loader := newTestLoader(t)

	assert.Equal(t,
		filepath.Join(loader.homeDir, ".gamecfg", "logs", "gamecfg.log"),
		loader.LogPath(DefaultConfig()))

	cfg := DefaultConfig()
	cfg.Logging.File = "/var/log/gamecfg.log"
	assert.Equal(t, "/var/log/gamecfg.log", loader.LogPath(cfg))
}

func TestNewLoader_EnvBaseDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GAMECFG_CONFIG", dir)

	loader := NewLoader()
	assert.Equal(t, filepath.Join(dir, ".gamecfg", "config.yaml"), loader.ConfigPath())
}
