package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/shinji-kodama/logoshrink/internal/model"
	"github.com/shinji-kodama/logoshrink/internal/sizegate"
)

// FormatMB renders a byte count in MiB with two decimals, e.g. "1.20 MB".
func FormatMB(size int64) string {
	return fmt.Sprintf("%.2f MB", sizegate.Megabytes(size))
}

// FormatPassLine renders the progress line for one pass.
//
//	Optimized size: 2.00 MB
//	Resized to (3600, 2700), new size: 1.20 MB
func FormatPassLine(pass model.PassResult) string {
	if !pass.Resized {
		return fmt.Sprintf("Optimized size: %s", FormatMB(pass.Size))
	}
	return fmt.Sprintf("Resized to %s, new size: %s", pass.Dimensions, FormatMB(pass.Size))
}

// RenderPassTable renders the passes as a table for verbose output.
// styled selects rounded box drawing; otherwise plain ASCII is used.
func RenderPassTable(passes []model.PassResult, styled bool) string {
	tw := table.NewWriter()
	if styled {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"PASS", "DIMENSIONS", "QUALITY", "SIZE", "GATE"})
	for _, pass := range passes {
		gate := "ok"
		if pass.NeedsReduction {
			gate = "too large"
		}
		tw.AppendRow(table.Row{
			pass.State.String(),
			pass.Dimensions.String(),
			strconv.Itoa(pass.Options.Quality),
			humanize.IBytes(uint64(pass.Size)),
			gate,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	return tw.Render()
}

// shouldStyle reports whether writer is a terminal.
func shouldStyle(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
