package platform

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig("", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfig_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "folio.yaml", `
base_url: https://file.example/api/portfolio
token: from-file
timeout: 5s
event_buffer: 7
`)
	t.Setenv("FOLIO_TOKEN", "from-env")

	cfg, err := LoadConfig(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, "https://file.example/api/portfolio", cfg.BaseURL)
	assert.Equal(t, "from-env", cfg.Token, "environment overrides the file")
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, 7, cfg.EventBuffer)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := writeFile(t, dir, ".env", "FOLIO_BASE_URL=https://dotenv.example/api\nFOLIO_LOG_LEVEL=debug\n")
	t.Setenv("FOLIO_BASE_URL", "")
	t.Setenv("FOLIO_LOG_LEVEL", "")
	require.NoError(t, os.Unsetenv("FOLIO_BASE_URL"))
	require.NoError(t, os.Unsetenv("FOLIO_LOG_LEVEL"))

	cfg, err := LoadConfig("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "https://dotenv.example/api", cfg.BaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadConfig_Errors(t *testing.T) {
	dir := t.TempDir()

	unknown := writeFile(t, dir, "unknown.yaml", "base_urll: typo\n")
	_, err := LoadConfig(unknown, filepath.Join(dir, "missing.env"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = LoadConfig(filepath.Join(dir, "nope.yaml"), filepath.Join(dir, "missing.env"))
	assert.Error(t, err)

	t.Setenv("FOLIO_TIMEOUT", "soon")
	_, err = LoadConfig("", filepath.Join(dir, "missing.env"))
	assert.ErrorContains(t, err, "FOLIO_TIMEOUT")
}

func TestConfig_Options(t *testing.T) {
	cfg := Config{Token: "t", Timeout: time.Second, EventBuffer: 3}
	o := defaultOptions()
	for _, opt := range cfg.Options() {
		opt(o)
	}
	assert.Equal(t, "t", o.token)
	assert.Equal(t, time.Second, o.timeout)
	assert.Equal(t, 3, o.eventBuffer)
}
