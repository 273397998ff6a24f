// Package model defines the domain types for the logoshrink CLI.
//
// These types are used throughout the application for passing data
// between the loader, encoder, resizer, size gate, and publisher. They
// live only for the duration of a single run.
package model

import (
	"fmt"
	"image"
	"strings"
)

// Dimensions is a pixel size pair. Both axes must be positive for any
// image the pipeline handles.
type Dimensions struct {
	// Width is the horizontal pixel count.
	Width int `json:"width"`

	// Height is the vertical pixel count.
	Height int `json:"height"`
}

// Validate checks that both axes are positive integers.
func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("invalid dimensions %dx%d: width and height must be positive", d.Width, d.Height)
	}
	return nil
}

// String formats the dimensions as a tuple, e.g. "(800, 800)".
// This matches the progress lines printed by the CLI.
func (d Dimensions) String() string {
	return fmt.Sprintf("(%d, %d)", d.Width, d.Height)
}

// DimensionsOf returns the pixel size of an image.Image's bounds.
func DimensionsOf(img image.Image) Dimensions {
	b := img.Bounds()
	return Dimensions{Width: b.Dx(), Height: b.Dy()}
}

// ColorMode names the pixel layout of a decoded image. The names follow
// the conventional single-token mode strings used by most imaging tools
// so the console output stays familiar.
type ColorMode string

const (
	// ModeGray is 8-bit grayscale.
	ModeGray ColorMode = "L"

	// ModeGrayAlpha is grayscale with an alpha channel.
	ModeGrayAlpha ColorMode = "LA"

	// ModeGray16 is 16-bit grayscale.
	ModeGray16 ColorMode = "I;16"

	// ModePaletted is an indexed image with a color palette.
	ModePaletted ColorMode = "P"

	// ModeRGB is truecolor without an alpha channel.
	ModeRGB ColorMode = "RGB"

	// ModeRGBA is truecolor with an alpha channel.
	ModeRGBA ColorMode = "RGBA"

	// ModeCMYK is the four-channel print color model (JPEG only).
	ModeCMYK ColorMode = "CMYK"

	// ModeYCbCr is the luma/chroma layout produced by JPEG decoding.
	ModeYCbCr ColorMode = "YCbCr"
)

// String returns the string representation of ColorMode.
func (m ColorMode) String() string {
	return string(m)
}

// IsValid checks whether the ColorMode value is one of the
// predefined modes.
func (m ColorMode) IsValid() bool {
	switch m {
	case ModeGray, ModeGrayAlpha, ModeGray16, ModePaletted, ModeRGB, ModeRGBA, ModeCMYK, ModeYCbCr:
		return true
	default:
		return false
	}
}

// ParseColorMode converts a string to a ColorMode.
// Matching is case-insensitive.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToUpper(s) {
	case "L":
		return ModeGray, nil
	case "LA":
		return ModeGrayAlpha, nil
	case "I;16":
		return ModeGray16, nil
	case "P":
		return ModePaletted, nil
	case "RGB":
		return ModeRGB, nil
	case "RGBA":
		return ModeRGBA, nil
	case "CMYK":
		return ModeCMYK, nil
	case "YCBCR":
		return ModeYCbCr, nil
	}
	return "", fmt.Errorf("invalid color mode: %q (valid: L, LA, I;16, P, RGB, RGBA, CMYK, YCbCr)", s)
}

// Image is the in-memory decoded bitmap the pipeline works on.
//
// An Image is never mutated after construction. A resize produces a new
// Image value and the previous one is simply dropped.
type Image struct {
	// Pixels holds the decoded bitmap.
	Pixels image.Image `json:"-"`

	// Path is the file the image was decoded from. Empty for images
	// produced by a resize.
	Path string `json:"path,omitempty"`

	// Size is the on-disk byte size of Path at load time.
	// Zero for images produced by a resize.
	Size int64 `json:"size"`

	// Dimensions is the pixel size of Pixels.
	Dimensions Dimensions `json:"dimensions"`

	// Mode is the color mode of Pixels.
	Mode ColorMode `json:"mode"`
}

// State is one step of the shrink pipeline's state machine.
//
//	Initial → FirstPass → SecondPass → Published
//	Initial/FirstPass → Published (when the size gate passes)
type State string

const (
	// StateInitial encodes the source image at its original dimensions.
	StateInitial State = "initial"

	// StateFirstPass encodes a copy scaled to 90% in both axes.
	StateFirstPass State = "first-pass"

	// StateSecondPass encodes a fixed 800x800 copy. No gate follows it.
	StateSecondPass State = "second-pass"

	// StatePublished is terminal: the last output has been copied to
	// the publish destination.
	StatePublished State = "published"
)

// String returns the string representation of State.
func (s State) String() string {
	return string(s)
}

// IsValid checks whether the State value is one of the predefined states.
func (s State) IsValid() bool {
	switch s {
	case StateInitial, StateFirstPass, StateSecondPass, StatePublished:
		return true
	default:
		return false
	}
}

// EncodeOptions carries the encoder hints for one pass.
type EncodeOptions struct {
	// Optimize requests the strongest lossless compression the format
	// offers.
	Optimize bool `json:"optimize"`

	// Quality is a 0-100 lossy quality hint. Lossless formats ignore it.
	Quality int `json:"quality"`
}

// Validate checks that Quality is within 0-100.
func (o EncodeOptions) Validate() error {
	if o.Quality < 0 || o.Quality > 100 {
		return fmt.Errorf("encode options: quality %d out of range (0-100)", o.Quality)
	}
	return nil
}

// PassResult records one encode-then-size-check cycle.
type PassResult struct {
	// State is the pipeline state the pass ran in.
	State State `json:"state"`

	// Resized reports whether the pass encoded a resized copy.
	Resized bool `json:"resized"`

	// Dimensions is the pixel size that was encoded.
	Dimensions Dimensions `json:"dimensions"`

	// Options are the encoder hints used.
	Options EncodeOptions `json:"options"`

	// Size is the output file size read back from disk after the write.
	Size int64 `json:"size"`

	// NeedsReduction is the size gate verdict. Always false for a pass
	// that is not followed by a gate.
	NeedsReduction bool `json:"needsReduction"`
}

// Report summarises a complete run.
type Report struct {
	// Source is the decoded input file.
	Source string `json:"source"`

	// OriginalSize is the input file's byte size.
	OriginalSize int64 `json:"originalSize"`

	// OriginalDimensions is the input image's pixel size.
	OriginalDimensions Dimensions `json:"originalDimensions"`

	// OriginalMode is the input image's color mode.
	OriginalMode ColorMode `json:"originalMode"`

	// Passes lists the passes in the order they ran. Never empty for a
	// successful run.
	Passes []PassResult `json:"passes"`

	// Output is the intermediate file every pass overwrote.
	Output string `json:"output"`

	// Destination is where the final output was copied.
	Destination string `json:"destination"`

	// State is the last state reached.
	State State `json:"state"`
}

// FinalPass returns the last pass that ran, or nil if none did.
func (r *Report) FinalPass() *PassResult {
	if len(r.Passes) == 0 {
		return nil
	}
	return &r.Passes[len(r.Passes)-1]
}

// ExitCode defines the process exit codes of the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitDecodeFailed indicates the source image is missing, unreadable,
	// or not a decodable image format.
	ExitDecodeFailed ExitCode = 2

	// ExitIOFailed indicates writing the output or copying it to the
	// publish destination failed.
	ExitIOFailed ExitCode = 3

	// ExitConfigInvalid indicates the config file or flags are invalid.
	ExitConfigInvalid ExitCode = 4
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
