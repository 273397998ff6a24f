package imageio

import (
	"fmt"
	"image"
	"os"

	"github.com/disintegration/imaging"

	"github.com/shinji-kodama/logoshrink/internal/model"
)

// Loader decodes image files from the local filesystem.
// The zero value is ready to use.
type Loader struct{}

// Load decodes the image at path and reports its on-disk byte size,
// pixel dimensions, and color mode. The mode comes from the file header,
// so an alpha PNG whose pixels are all opaque still reports RGBA.
//
// EXIF orientation is deliberately not applied so the reported
// dimensions are the stored ones.
func (Loader) Load(path string) (*model.Image, error) {
	return Load(path)
}

// Load is the package-level form of Loader.Load.
func Load(path string) (*model.Image, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, model.WrapCLIError(
				model.ExitDecodeFailed,
				fmt.Sprintf("source image not found: %s", path),
				err,
			)
		}
		return nil, model.WrapCLIError(
			model.ExitDecodeFailed,
			fmt.Sprintf("cannot read source image: %s", path),
			err,
		)
	}
	if info.IsDir() {
		return nil, model.NewCLIError(
			model.ExitDecodeFailed,
			fmt.Sprintf("source image is a directory: %s", path),
		)
	}

	img, err := imaging.Open(path)
	if err != nil {
		return nil, model.WrapCLIError(
			model.ExitDecodeFailed,
			fmt.Sprintf("cannot decode source image: %s", path),
			err,
		)
	}

	dims := model.DimensionsOf(img)
	if err := dims.Validate(); err != nil {
		return nil, model.WrapCLIError(
			model.ExitDecodeFailed,
			fmt.Sprintf("source image has no pixels: %s", path),
			err,
		)
	}

	mode, ok := headerModeOfFile(path)
	if !ok {
		mode = ModeOf(img)
	}

	return &model.Image{
		Pixels:     img,
		Path:       path,
		Size:       info.Size(),
		Dimensions: dims,
		Mode:       mode,
	}, nil
}

// FromPixels wraps an already decoded bitmap as a model.Image with no
// backing file.
func FromPixels(img image.Image) *model.Image {
	return &model.Image{
		Pixels:     img,
		Dimensions: model.DimensionsOf(img),
		Mode:       ModeOf(img),
	}
}
