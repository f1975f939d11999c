package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnv_Config(t *testing.T) {
	t.Setenv("GAMECFG_BACKEND_URL", "https://cfg.example.com")
	t.Setenv("GAMECFG_BACKEND_TIMEOUT", "15s")
	t.Setenv("GAMECFG_EXPORT_FILENAME", "params.json")
	t.Setenv("GAMECFG_RENDER_MARKDOWN", "false")

	cfg := DefaultConfig()
	require.NoError(t, LoadFromEnv(cfg))

	assert.Equal(t, "https://cfg.example.com", cfg.Backend.URL)
	assert.Equal(t, 15*time.Second, cfg.Backend.Timeout)
	assert.Equal(t, "params.json", cfg.Export.Filename)
	assert.False(t, cfg.Chat.RenderMarkdown)
}

func TestLoadFromEnv_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{"bad duration", "GAMECFG_BACKEND_TIMEOUT", "soon"},
		{"bad bool", "GAMECFG_ALT_SCREEN", "maybe"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.envVar, tc.value)

			err := LoadFromEnv(DefaultConfig())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.envVar)
		})
	}
}

func TestLoadFromEnv_KindsAndNil(t *testing.T) {
	type sample struct {
		Count  int      `env:"GAMECFG_TEST_COUNT"`
		Ratio  float64  `env:"GAMECFG_TEST_RATIO"`
		Tags   []string `env:"GAMECFG_TEST_TAGS"`
		hidden string   `env:"GAMECFG_TEST_HIDDEN"` //nolint:unused
	}

	t.Setenv("GAMECFG_TEST_COUNT", "7")
	t.Setenv("GAMECFG_TEST_RATIO", "0.5")
	t.Setenv("GAMECFG_TEST_TAGS", "shooter, rpg ,puzzle")
	t.Setenv("GAMECFG_TEST_HIDDEN", "ignored")

	var s sample
	require.NoError(t, LoadFromEnv(&s))
	assert.Equal(t, 7, s.Count)
	assert.Equal(t, 0.5, s.Ratio)
	assert.Equal(t, []string{"shooter", "rpg", "puzzle"}, s.Tags)
	assert.Empty(t, s.hidden)

	var nilCfg *Config
	assert.NoError(t, LoadFromEnv(nilCfg))
}
