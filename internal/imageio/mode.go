package imageio

import (
	"bufio"
	"bytes"
	"image"
	"image/color"
	"io"
	"os"

	"github.com/shinji-kodama/logoshrink/internal/model"
)

// opaquer is implemented by the standard library's concrete image types.
type opaquer interface {
	Opaque() bool
}

// pngSignature prefixes every PNG file. The IHDR color type sits at a
// fixed offset after it.
var pngSignature = []byte("\x89PNG\r\n\x1a\n")

const (
	pngColorTypeOffset = 25
	pngGrayAlpha       = 4
)

// ModeOf maps a bitmap's concrete type to a color mode. It is used for
// images built in memory, where there is no file header to consult.
//
// Truecolor types report ModeRGB when every pixel is fully opaque and
// ModeRGBA otherwise.
func ModeOf(img image.Image) model.ColorMode {
	switch img.(type) {
	case *image.Gray:
		return model.ModeGray
	case *image.Gray16:
		return model.ModeGray16
	case *image.Paletted:
		return model.ModePaletted
	case *image.CMYK:
		return model.ModeCMYK
	case *image.YCbCr:
		return model.ModeYCbCr
	}

	if isOpaque(img) {
		return model.ModeRGB
	}
	return model.ModeRGBA
}

// HeaderMode reads the color mode an encoded image declares in its
// header. ok is false when the header cannot be parsed or its color
// model has no matching mode.
func HeaderMode(r io.Reader) (mode model.ColorMode, ok bool) {
	br := bufio.NewReader(r)

	// image.DecodeConfig reports gray+alpha PNGs as NRGBA, so the IHDR
	// color type is checked first.
	if head, err := br.Peek(pngColorTypeOffset + 1); err == nil &&
		bytes.HasPrefix(head, pngSignature) &&
		head[pngColorTypeOffset] == pngGrayAlpha {
		return model.ModeGrayAlpha, true
	}

	cfg, _, err := image.DecodeConfig(br)
	if err != nil {
		return "", false
	}
	return modeOfModel(cfg.ColorModel)
}

func headerModeOfFile(path string) (model.ColorMode, bool) {
	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()
	return HeaderMode(f)
}

func modeOfModel(m color.Model) (model.ColorMode, bool) {
	if _, ok := m.(color.Palette); ok {
		return model.ModePaletted, true
	}
	switch m {
	case color.GrayModel:
		return model.ModeGray, true
	case color.Gray16Model:
		return model.ModeGray16, true
	case color.RGBAModel, color.RGBA64Model:
		return model.ModeRGB, true
	case color.NRGBAModel, color.NRGBA64Model:
		return model.ModeRGBA, true
	case color.CMYKModel:
		return model.ModeCMYK, true
	case color.YCbCrModel:
		return model.ModeYCbCr, true
	}
	return "", false
}

func isOpaque(img image.Image) bool {
	if o, ok := img.(opaquer); ok {
		return o.Opaque()
	}
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if _, _, _, a := img.At(x, y).RGBA(); a != 0xffff {
				return false
			}
		}
	}
	return true
}
