package resample

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/logoshrink/internal/imageio"
	"github.com/shinji-kodama/logoshrink/internal/model"
)

func checker(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(0)
			if (x/4+y/4)%2 == 0 {
				v = 255
			}
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: uint8(x), B: uint8(y), A: uint8(128 + x%128)})
		}
	}
	return img
}

// TestScale verifies floor(0.9 * original) in both axes.
func TestScale(t *testing.T) {
	tests := []struct {
		orig model.Dimensions
		want model.Dimensions
	}{
		{model.Dimensions{Width: 4000, Height: 3000}, model.Dimensions{Width: 3600, Height: 2700}},
		{model.Dimensions{Width: 500, Height: 500}, model.Dimensions{Width: 450, Height: 450}},
		{model.Dimensions{Width: 333, Height: 101}, model.Dimensions{Width: 299, Height: 90}},
		{model.Dimensions{Width: 1, Height: 1}, model.Dimensions{Width: 0, Height: 0}},
	}

	target := Scale(0.9)
	assert.Equal(t, "90%", target.Describe)
	for _, tt := range tests {
		t.Run(tt.orig.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, target.Of(tt.orig))
		})
	}
}

func TestFixed(t *testing.T) {
	target := Fixed(800, 800)
	assert.Equal(t, "800x800", target.Describe)
	assert.Equal(t, model.Dimensions{Width: 800, Height: 800}, target.Of(model.Dimensions{Width: 4000, Height: 3000}))
	assert.Equal(t, model.Dimensions{Width: 800, Height: 800}, target.Of(model.Dimensions{Width: 10, Height: 2000}))
}

func TestParseBackend(t *testing.T) {
	tests := []struct {
		input    string
		expected Backend
		hasError bool
	}{
		{"", BackendImaging, false},
		{"imaging", BackendImaging, false},
		{"NFNT", BackendNfnt, false},
		{"vips", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			b, err := ParseBackend(tt.input)
			if tt.hasError {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.expected, b)
			}
		})
	}
}

func TestNew_FallsBackToImaging(t *testing.T) {
	assert.Equal(t, BackendImaging, New(Backend("bogus")).Backend())
	assert.Equal(t, BackendNfnt, New(BackendNfnt).Backend())
}

// TestResize_ExactDimensions checks both backends hit the target exactly,
// including a target that ignores the source aspect ratio.
func TestResize_ExactDimensions(t *testing.T) {
	src := imageio.FromPixels(checker(120, 60))
	targets := []model.Dimensions{
		{Width: 108, Height: 54},
		{Width: 80, Height: 80},
		{Width: 1, Height: 1},
	}

	for _, backend := range []Backend{BackendImaging, BackendNfnt} {
		r := New(backend)
		for _, target := range targets {
			t.Run(backend.String()+target.String(), func(t *testing.T) {
				out, err := r.Resize(src, target)
				require.NoError(t, err)
				assert.Equal(t, target, out.Dimensions)
				assert.Equal(t, target, model.DimensionsOf(out.Pixels))
				assert.Equal(t, model.ModeRGBA, out.Mode)
			})
		}
	}
}

func TestResize_InvalidTarget(t *testing.T) {
	src := imageio.FromPixels(checker(10, 10))
	for _, target := range []model.Dimensions{{Width: 0, Height: 5}, {Width: 5, Height: -1}} {
		_, err := New(BackendImaging).Resize(src, target)
		assert.Error(t, err)
	}

	_, err := New(BackendImaging).Resize(&model.Image{}, model.Dimensions{Width: 1, Height: 1})
	assert.Error(t, err)
}

// TestResize_DoesNotMutateSource verifies a resize produces a new value.
func TestResize_DoesNotMutateSource(t *testing.T) {
	pixels := checker(40, 40)
	before := append([]uint8(nil), pixels.Pix...)
	src := imageio.FromPixels(pixels)

	out, err := New(BackendImaging).Resize(src, model.Dimensions{Width: 20, Height: 20})
	require.NoError(t, err)

	assert.NotSame(t, src, out)
	assert.Equal(t, model.Dimensions{Width: 40, Height: 40}, src.Dimensions)
	assert.Equal(t, before, pixels.Pix)
}

// TestResize_PreservesColorMode checks the source layout survives a
// resize for every mode the loader reports.
func TestResize_PreservesColorMode(t *testing.T) {
	rect := image.Rect(0, 0, 30, 20)

	gray := image.NewGray(rect)
	for i := range gray.Pix {
		gray.Pix[i] = uint8(i)
	}

	palette := color.Palette{
		color.NRGBA{A: 255},
		color.NRGBA{R: 255, A: 255},
		color.NRGBA{G: 255, A: 255},
		color.NRGBA{B: 255, A: 128},
	}
	paletted := image.NewPaletted(rect, palette)
	for i := range paletted.Pix {
		paletted.Pix[i] = uint8(i % len(palette))
	}

	opaque := image.NewRGBA(rect)
	for i := range opaque.Pix {
		opaque.Pix[i] = 0xff
	}

	tests := []struct {
		name string
		img  image.Image
		mode model.ColorMode
	}{
		{"gray", gray, model.ModeGray},
		{"gray16", image.NewGray16(rect), model.ModeGray16},
		{"paletted", paletted, model.ModePaletted},
		{"opaque rgba", opaque, model.ModeRGB},
		{"cmyk", image.NewCMYK(rect), model.ModeCMYK},
		{"ycbcr", image.NewYCbCr(rect, image.YCbCrSubsampleRatio420), model.ModeYCbCr},
	}

	for _, backend := range []Backend{BackendImaging, BackendNfnt} {
		for _, tt := range tests {
			t.Run(backend.String()+"/"+tt.name, func(t *testing.T) {
				src := imageio.FromPixels(tt.img)
				require.Equal(t, tt.mode, src.Mode)

				out, err := New(backend).Resize(src, model.Dimensions{Width: 15, Height: 12})
				require.NoError(t, err)
				assert.Equal(t, tt.mode, out.Mode)
				assert.Equal(t, model.Dimensions{Width: 15, Height: 12}, out.Dimensions)
			})
		}
	}
}

// TestResize_KeepsHeaderMode covers an alpha PNG whose pixels happen to
// be opaque: the mode read from the file header carries over.
func TestResize_KeepsHeaderMode(t *testing.T) {
	opaque := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for i := range opaque.Pix {
		opaque.Pix[i] = 0xff
	}
	src := imageio.FromPixels(opaque)
	src.Mode = model.ModeRGBA

	out, err := New(BackendImaging).Resize(src, model.Dimensions{Width: 10, Height: 10})
	require.NoError(t, err)
	assert.Equal(t, model.ModeRGBA, out.Mode)
}

// TestResize_PalettedKeepsPalette verifies every output index refers to
// the source palette.
func TestResize_PalettedKeepsPalette(t *testing.T) {
	palette := color.Palette{color.Black, color.White, color.NRGBA{R: 200, G: 10, B: 10, A: 255}}
	src := image.NewPaletted(image.Rect(0, 0, 16, 16), palette)
	for i := range src.Pix {
		src.Pix[i] = uint8(i % 3)
	}

	out, err := New(BackendImaging).Resize(imageio.FromPixels(src), model.Dimensions{Width: 8, Height: 8})
	require.NoError(t, err)

	p, ok := out.Pixels.(*image.Paletted)
	require.True(t, ok, "expected *image.Paletted, got %T", out.Pixels)
	assert.Equal(t, palette, p.Palette)
	for _, idx := range p.Pix {
		assert.Less(t, int(idx), len(palette))
	}
}
