// Package cli — shrink.go implements the root command's shrink run.
//
// Settings are resolved in three layers: built-in defaults, then the
// optional --config file, then any flag the user set explicitly. The
// resolved settings drive a pipeline.Pipeline whose progress callbacks
// print the console trace as each pass completes.
package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/logoshrink/internal/config"
	"github.com/shinji-kodama/logoshrink/internal/model"
	"github.com/shinji-kodama/logoshrink/internal/pipeline"
	"github.com/shinji-kodama/logoshrink/internal/resample"
)

// shrinkFlags holds the flag values for the shrink run.
type shrinkFlags struct {
	configPath string
	input      string
	output     string
	publishTo  string
	resampler  string
}

func registerShrinkFlags(cmd *cobra.Command, flags *shrinkFlags) {
	cmd.Flags().StringVarP(&flags.configPath, "config", "c", "",
		"Settings file (.json, .jsonc, .yaml, .yml)")
	cmd.Flags().StringVarP(&flags.input, "input", "i", config.DefaultInput,
		"Source image")
	cmd.Flags().StringVarP(&flags.output, "output", "o", config.DefaultOutput,
		"Intermediate output file, overwritten by every pass")
	cmd.Flags().StringVarP(&flags.publishTo, "publish-to", "p", "",
		"File or existing directory the final image is copied to")
	cmd.Flags().StringVar(&flags.resampler, "resampler", resample.BackendImaging.String(),
		"Lanczos backend: imaging, nfnt")
}

// resolveConfig layers the config file and explicitly set flags over
// the defaults.
func resolveConfig(cmd *cobra.Command, flags *shrinkFlags) (*config.Config, error) {
	cfg := config.Default()
	if flags.configPath != "" {
		loaded, err := config.Load(flags.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
		VerboseLog("Loaded config from %s", flags.configPath)
	}

	if cmd.Flags().Changed("input") {
		cfg.Input = flags.input
	}
	if cmd.Flags().Changed("output") {
		cfg.Output = flags.output
	}
	if cmd.Flags().Changed("publish-to") {
		cfg.PublishTo = flags.publishTo
	}
	if cmd.Flags().Changed("resampler") {
		cfg.Resampler = flags.resampler
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runShrink is the main logic function for the root command.
func runShrink(cmd *cobra.Command, flags *shrinkFlags) error {
	cfg, err := resolveConfig(cmd, flags)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	resizer := resample.New(cfg.Backend())
	VerboseLog("Using %s resampler", resizer.Backend())

	p := pipeline.New(resizer)
	p.OnLoad = func(img *model.Image) {
		VerboseLog("Decoded %s (%s)", img.Path, humanize.IBytes(uint64(img.Size)))
		if !IsJSONOutput() {
			printOriginal(out, img)
		}
	}
	p.OnPass = func(pass model.PassResult) {
		VerboseLog("%s: wrote %s at %s (%s), needs reduction: %t",
			pass.State, cfg.Output, pass.Dimensions, humanize.IBytes(uint64(pass.Size)), pass.NeedsReduction)
		if !IsJSONOutput() {
			fmt.Fprintln(out, FormatPassLine(pass))
		}
	}

	report, err := p.Run(cmd.Context(), pipeline.Job{
		Source:      cfg.Input,
		Output:      cfg.Output,
		Destination: cfg.PublishTo,
	})
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintln(os.Stderr, RenderPassTable(report.Passes, shouldStyle(os.Stderr)))
	}

	if IsJSONOutput() {
		return printJSON(out, report)
	}
	fmt.Fprintf(out, "\nOptimized logo saved to: %s\n", report.Destination)
	return nil
}

// printOriginal writes the three lines describing the source image.
func printOriginal(w io.Writer, img *model.Image) {
	fmt.Fprintf(w, "Original size: %s\n", FormatMB(img.Size))
	fmt.Fprintf(w, "Original dimensions: %s\n", img.Dimensions)
	fmt.Fprintf(w, "Original mode: %s\n", img.Mode)
}
