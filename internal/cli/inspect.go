// Package cli — inspect.go implements the "logoshrink inspect" command.
//
// inspect decodes an image with the same loader the shrink run uses and
// prints its byte size, dimensions, and color mode, along with whether
// the file as it stands would pass the 1 MiB size gate.
package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/logoshrink/internal/imageio"
	"github.com/shinji-kodama/logoshrink/internal/sizegate"
)

// inspectJSON is the JSON output structure for the inspect command.
type inspectJSON struct {
	Path           string `json:"path"`
	Size           int64  `json:"size"`
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	Mode           string `json:"mode"`
	NeedsReduction bool   `json:"needsReduction"`
}

// NewInspectCommand creates the "inspect" cobra command.
func NewInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <image>",
		Short: "Show size, dimensions, and color mode of an image",
		Long: `Decode an image and report its on-disk size, pixel dimensions, and
color mode, plus whether it is already under the 1 MiB limit.

Examples:
  logoshrink inspect logo_original.png
  logoshrink inspect logo_optimized.png --json`,

		Args: cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imageio.Load(args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			needs := sizegate.NeedsReduction(img.Size)
			if IsJSONOutput() {
				return printJSON(out, inspectJSON{
					Path:           img.Path,
					Size:           img.Size,
					Width:          img.Dimensions.Width,
					Height:         img.Dimensions.Height,
					Mode:           img.Mode.String(),
					NeedsReduction: needs,
				})
			}

			fmt.Fprintf(out, "Size: %s (%s)\n", FormatMB(img.Size), humanize.Comma(img.Size)+" bytes")
			fmt.Fprintf(out, "Dimensions: %s\n", img.Dimensions)
			fmt.Fprintf(out, "Mode: %s\n", img.Mode)
			if needs {
				fmt.Fprintln(out, "Under 1 MiB: no")
			} else {
				fmt.Fprintln(out, "Under 1 MiB: yes")
			}
			return nil
		},
	}
}
