package resample

import (
	"fmt"
	"math"

	"github.com/shinji-kodama/logoshrink/internal/model"
)

// Target computes the dimensions a pass resizes to from the original
// image's dimensions.
type Target struct {
	// Describe is a short label for logs and reports, e.g. "90%" or "800x800".
	Describe string

	compute func(model.Dimensions) model.Dimensions
}

// Of applies the target to the original dimensions.
func (t Target) Of(orig model.Dimensions) model.Dimensions {
	return t.compute(orig)
}

// Scale returns a target of floor(factor * original) in both axes.
// The result is not clamped: a factor that floors an axis to zero
// yields a target that Resize rejects.
func Scale(factor float64) Target {
	return Target{
		Describe: fmt.Sprintf("%.0f%%", factor*100),
		compute: func(d model.Dimensions) model.Dimensions {
			return model.Dimensions{
				Width:  int(math.Floor(float64(d.Width) * factor)),
				Height: int(math.Floor(float64(d.Height) * factor)),
			}
		},
	}
}

// Fixed returns a target of exactly width x height regardless of the
// original aspect ratio.
func Fixed(width, height int) Target {
	return Target{
		Describe: fmt.Sprintf("%dx%d", width, height),
		compute: func(model.Dimensions) model.Dimensions {
			return model.Dimensions{Width: width, Height: height}
		},
	}
}
