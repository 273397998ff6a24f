// Package config loads the logoshrink settings file.
//
// Two formats are accepted, chosen by file extension:
//   - .json / .jsonc: JSON with comments, stripped with
//     github.com/tidwall/jsonc before decoding with encoding/json
//   - .yaml / .yml: decoded with gopkg.in/yaml.v3
//
// Every field is optional in the file. Values not present keep the
// defaults from Default, and command-line flags override both.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/logoshrink/internal/model"
	"github.com/shinji-kodama/logoshrink/internal/resample"
)

const (
	// DefaultInput is the source image read when no input is configured.
	DefaultInput = "logo_original.png"

	// DefaultOutput is the intermediate file each pass overwrites.
	DefaultOutput = "logo_optimized.png"
)

// Config holds the settings for one run.
type Config struct {
	// Input is the source image path.
	Input string `json:"input" yaml:"input"`

	// Output is the intermediate file path. Its extension selects the
	// encoded format.
	Output string `json:"output" yaml:"output"`

	// PublishTo is the file or existing directory the final output is
	// copied to. There is no default.
	PublishTo string `json:"publishTo" yaml:"publish_to"`

	// Resampler selects the resize backend: "imaging" or "nfnt".
	Resampler string `json:"resampler" yaml:"resampler"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Input:     DefaultInput,
		Output:    DefaultOutput,
		Resampler: resample.BackendImaging.String(),
	}
}

// Load reads the settings file at path on top of Default.
//
// Returns a CLIError with ExitConfigInvalid if the file cannot be read,
// has an unknown extension, or fails to parse.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitConfigInvalid,
			fmt.Sprintf("failed to read config file: %s", path),
			err,
		)
	}

	cfg := Default()
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		err = json.Unmarshal(jsonc.ToJSON(data), cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		return nil, model.NewCLIError(
			model.ExitConfigInvalid,
			fmt.Sprintf("unsupported config file extension %q (valid: .json, .jsonc, .yaml, .yml)", ext),
		)
	}
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitConfigInvalid,
			fmt.Sprintf("failed to parse config file: %s", path),
			err,
		)
	}

	return cfg, nil
}

// Validate checks that every path is set and the resampler is known.
func (c *Config) Validate() error {
	if c.Input == "" {
		return model.NewCLIError(model.ExitConfigInvalid, "input path must not be empty")
	}
	if c.Output == "" {
		return model.NewCLIError(model.ExitConfigInvalid, "output path must not be empty")
	}
	if c.PublishTo == "" {
		return model.NewCLIError(model.ExitConfigInvalid,
			"publish destination is required: pass --publish-to or set it in the config file")
	}
	if _, err := resample.ParseBackend(c.Resampler); err != nil {
		return model.WrapCLIError(model.ExitConfigInvalid, "invalid resampler", err)
	}
	return nil
}

// Backend returns the configured resampler backend, falling back to
// imaging when the value is invalid. Call Validate first to reject
// invalid values instead.
func (c *Config) Backend() resample.Backend {
	b, err := resample.ParseBackend(c.Resampler)
	if err != nil {
		return resample.BackendImaging
	}
	return b
}
