package imageio

import (
	"fmt"
	"image/png"
	"os"

	"github.com/disintegration/imaging"

	"github.com/shinji-kodama/logoshrink/internal/model"
)

// Encoder writes images to disk. The zero value is ready to use.
type Encoder struct{}

// Encode serializes img to path, overwriting any existing file, and
// returns the byte size of the written file as reported by the
// filesystem.
//
// The format is chosen from path's extension. opts.Optimize selects
// maximum PNG compression. opts.Quality is passed to the JPEG encoder
// and has no effect on PNG output.
func (Encoder) Encode(img *model.Image, path string, opts model.EncodeOptions) (int64, error) {
	if err := opts.Validate(); err != nil {
		return 0, model.WrapCLIError(model.ExitConfigInvalid, "invalid encoder settings", err)
	}

	format, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, model.WrapCLIError(
			model.ExitConfigInvalid,
			fmt.Sprintf("unsupported output format for %s", path),
			err,
		)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return 0, model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("cannot open output file: %s", path),
			err,
		)
	}

	if err := imaging.Encode(f, img.Pixels, format, encodeOptions(opts)...); err != nil {
		_ = f.Close()
		return 0, model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("failed to encode %s", path),
			err,
		)
	}
	if err := f.Close(); err != nil {
		return 0, model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("failed to flush %s", path),
			err,
		)
	}

	info, err := os.Stat(path)
	if err != nil {
		return 0, model.WrapCLIError(
			model.ExitIOFailed,
			fmt.Sprintf("cannot stat output file: %s", path),
			err,
		)
	}
	return info.Size(), nil
}

func encodeOptions(opts model.EncodeOptions) []imaging.EncodeOption {
	level := png.DefaultCompression
	if opts.Optimize {
		level = png.BestCompression
	}
	return []imaging.EncodeOption{
		imaging.PNGCompressionLevel(level),
		imaging.JPEGQuality(opts.Quality),
	}
}
