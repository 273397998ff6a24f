package resample

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
	"golang.org/x/image/draw"

	"github.com/shinji-kodama/logoshrink/internal/imageio"
	"github.com/shinji-kodama/logoshrink/internal/model"
)

// Backend selects the resampling library.
type Backend string

const (
	// BackendImaging resamples with disintegration/imaging's Lanczos filter.
	BackendImaging Backend = "imaging"

	// BackendNfnt resamples with nfnt/resize's Lanczos3 interpolation.
	BackendNfnt Backend = "nfnt"
)

// String returns the string representation of Backend.
func (b Backend) String() string {
	return string(b)
}

// IsValid checks whether the Backend value is one of the known backends.
func (b Backend) IsValid() bool {
	return b == BackendImaging || b == BackendNfnt
}

// ParseBackend converts a string to a Backend. An empty string selects
// BackendImaging.
func ParseBackend(s string) (Backend, error) {
	if s == "" {
		return BackendImaging, nil
	}
	b := Backend(strings.ToLower(s))
	if !b.IsValid() {
		return "", fmt.Errorf("invalid resampler: %q (valid: imaging, nfnt)", s)
	}
	return b, nil
}

// Resizer produces a resized copy of an image.
type Resizer interface {
	Resize(img *model.Image, target model.Dimensions) (*model.Image, error)
}

// Lanczos is the Resizer used by the CLI.
type Lanczos struct {
	backend Backend
}

// New returns a Lanczos resizer for the given backend.
func New(backend Backend) *Lanczos {
	if !backend.IsValid() {
		backend = BackendImaging
	}
	return &Lanczos{backend: backend}
}

// Backend reports which library the resizer uses.
func (l *Lanczos) Backend() Backend {
	return l.backend
}

// Resize returns a new Image of exactly target's dimensions. img is not
// modified.
func (l *Lanczos) Resize(img *model.Image, target model.Dimensions) (*model.Image, error) {
	if err := target.Validate(); err != nil {
		return nil, fmt.Errorf("resize: %w", err)
	}
	if img == nil || img.Pixels == nil {
		return nil, fmt.Errorf("resize: no image data")
	}

	_, paletted := img.Pixels.(*image.Paletted)
	scaled := l.scale(img.Pixels, target, paletted)

	out := imageio.FromPixels(restoreLayout(img.Pixels, scaled))
	if img.Mode.IsValid() {
		// The layout is restored, so the mode the loader read from the
		// file header still applies.
		out.Mode = img.Mode
	}
	return out, nil
}

func (l *Lanczos) scale(src image.Image, target model.Dimensions, nearest bool) image.Image {
	switch l.backend {
	case BackendNfnt:
		interp := resize.Lanczos3
		if nearest {
			interp = resize.NearestNeighbor
		}
		return resize.Resize(uint(target.Width), uint(target.Height), src, interp)
	default:
		filter := imaging.Lanczos
		if nearest {
			filter = imaging.NearestNeighbor
		}
		return imaging.Resize(src, target.Width, target.Height, filter)
	}
}

// restoreLayout converts scaled back to src's concrete image type.
// Layouts it does not know are returned unchanged.
func restoreLayout(src, scaled image.Image) image.Image {
	b := scaled.Bounds()
	bounds := image.Rect(0, 0, b.Dx(), b.Dy())

	var dst draw.Image
	switch s := src.(type) {
	case *image.Gray:
		if _, ok := scaled.(*image.Gray); ok {
			return scaled
		}
		dst = image.NewGray(bounds)
	case *image.Gray16:
		if _, ok := scaled.(*image.Gray16); ok {
			return scaled
		}
		dst = image.NewGray16(bounds)
	case *image.Paletted:
		dst = image.NewPaletted(bounds, s.Palette)
	case *image.RGBA:
		if _, ok := scaled.(*image.RGBA); ok {
			return scaled
		}
		dst = image.NewRGBA(bounds)
	case *image.RGBA64:
		dst = image.NewRGBA64(bounds)
	case *image.NRGBA:
		if _, ok := scaled.(*image.NRGBA); ok {
			return scaled
		}
		dst = image.NewNRGBA(bounds)
	case *image.NRGBA64:
		dst = image.NewNRGBA64(bounds)
	case *image.CMYK:
		dst = image.NewCMYK(bounds)
	case *image.YCbCr:
		return toYCbCr(scaled)
	default:
		return scaled
	}

	draw.Draw(dst, bounds, scaled, b.Min, draw.Src)
	return dst
}

// toYCbCr re-encodes img as a full-resolution (4:4:4) YCbCr image.
// image.YCbCr is not a draw.Image, so it is filled pixel by pixel.
func toYCbCr(img image.Image) *image.YCbCr {
	b := img.Bounds()
	out := image.NewYCbCr(image.Rect(0, 0, b.Dx(), b.Dy()), image.YCbCrSubsampleRatio444)
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			c := color.RGBAModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.RGBA)
			yy, cb, cr := color.RGBToYCbCr(c.R, c.G, c.B)
			out.Y[out.YOffset(x, y)] = yy
			out.Cb[out.COffset(x, y)] = cb
			out.Cr[out.COffset(x, y)] = cr
		}
	}
	return out
}
