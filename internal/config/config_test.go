package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/logoshrink/internal/model"
	"github.com/shinji-kodama/logoshrink/internal/resample"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func requireConfigError(t *testing.T, err error) {
	t.Helper()
	require.Error(t, err)
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitConfigInvalid, cliErr.Code)
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "logo_original.png", cfg.Input)
	assert.Equal(t, "logo_optimized.png", cfg.Output)
	assert.Empty(t, cfg.PublishTo)
	assert.Equal(t, resample.BackendImaging, cfg.Backend())
}

// TestLoad_JSONC verifies comments and trailing commas are accepted and
// unset fields keep their defaults.
func TestLoad_JSONC(t *testing.T) {
	path := writeConfig(t, "logoshrink.jsonc", `{
  // where the final logo goes
  "publishTo": "/srv/www/static/logo.png",
  /* lanczos3 via nfnt */
  "resampler": "nfnt",
}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/srv/www/static/logo.png", cfg.PublishTo)
	assert.Equal(t, resample.BackendNfnt, cfg.Backend())
	assert.Equal(t, DefaultInput, cfg.Input)
	assert.Equal(t, DefaultOutput, cfg.Output)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "logoshrink.yaml", `
input: assets/logo.png
output: build/logo.png
publish_to: /tmp/downloads
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "assets/logo.png", cfg.Input)
	assert.Equal(t, "build/logo.png", cfg.Output)
	assert.Equal(t, "/tmp/downloads", cfg.PublishTo)
	assert.Equal(t, "imaging", cfg.Resampler)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		requireConfigError(t, err)
	})

	t.Run("unknown extension", func(t *testing.T) {
		_, err := Load(writeConfig(t, "logoshrink.toml", `input = "x"`))
		requireConfigError(t, err)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := Load(writeConfig(t, "bad.json", `{"input": `))
		requireConfigError(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		_, err := Load(writeConfig(t, "bad.yml", "input: [unclosed"))
		requireConfigError(t, err)
	})
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(c *Config)
		hasError bool
	}{
		{"complete", func(c *Config) {}, false},
		{"missing input", func(c *Config) { c.Input = "" }, true},
		{"missing output", func(c *Config) { c.Output = "" }, true},
		{"missing destination", func(c *Config) { c.PublishTo = "" }, true},
		{"unknown resampler", func(c *Config) { c.Resampler = "bicubic" }, true},
		{"empty resampler uses default", func(c *Config) { c.Resampler = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.PublishTo = "/tmp/out.png"
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.hasError {
				requireConfigError(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBackend_InvalidFallsBack(t *testing.T) {
	cfg := Default()
	cfg.Resampler = "bicubic"
	assert.Equal(t, resample.BackendImaging, cfg.Backend())
}
