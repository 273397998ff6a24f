// Package pipeline runs the shrink state machine:
//
//	Initial → FirstPass → SecondPass → Published
//
// Each state except Published is a pass: an optional resize of the
// original image, an encode that overwrites the single output file, and
// (for gated stages) a size check against the 1 MiB gate. A passing gate
// jumps straight to Published. The last stage is ungated and always
// proceeds to Published regardless of the size it achieved.
//
// Any error aborts the run immediately. There is no retry, rollback, or
// partial success.
package pipeline

import (
	"context"
	"fmt"

	"github.com/shinji-kodama/logoshrink/internal/imageio"
	"github.com/shinji-kodama/logoshrink/internal/model"
	"github.com/shinji-kodama/logoshrink/internal/publish"
	"github.com/shinji-kodama/logoshrink/internal/resample"
	"github.com/shinji-kodama/logoshrink/internal/sizegate"
)

// Loader decodes the source image.
type Loader interface {
	Load(path string) (*model.Image, error)
}

// Encoder writes an image to path and returns the size on disk.
type Encoder interface {
	Encode(img *model.Image, path string, opts model.EncodeOptions) (int64, error)
}

// Publisher copies the final output to its destination and returns the
// path written.
type Publisher interface {
	Publish(src, dst string) (string, error)
}

// Stage is one rung of the escalation ladder.
type Stage struct {
	// State names the pass in reports.
	State model.State

	// Target is the resize applied to the original image before
	// encoding. Nil encodes the original at its own dimensions.
	Target *resample.Target

	// Options are the encoder hints for this pass.
	Options model.EncodeOptions

	// Gated stages are followed by a size check. An ungated stage ends
	// the ladder.
	Gated bool
}

// DefaultStages returns the three-pass ladder: the original at quality
// 85, 90% at quality 85, then 800x800 at quality 80.
func DefaultStages() []Stage {
	first := resample.Scale(0.9)
	second := resample.Fixed(800, 800)
	return []Stage{
		{
			State:   model.StateInitial,
			Options: model.EncodeOptions{Optimize: true, Quality: 85},
			Gated:   true,
		},
		{
			State:   model.StateFirstPass,
			Target:  &first,
			Options: model.EncodeOptions{Optimize: true, Quality: 85},
			Gated:   true,
		},
		{
			State:   model.StateSecondPass,
			Target:  &second,
			Options: model.EncodeOptions{Optimize: true, Quality: 80},
			Gated:   false,
		},
	}
}

// Job names the files a run touches.
type Job struct {
	// Source is the image to shrink.
	Source string

	// Output is the intermediate file every pass overwrites.
	Output string

	// Destination is where the final output is published.
	Destination string
}

// Validate checks that every path is set.
func (j Job) Validate() error {
	if j.Source == "" {
		return fmt.Errorf("source path must not be empty")
	}
	if j.Output == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if j.Destination == "" {
		return fmt.Errorf("publish destination must not be empty")
	}
	return nil
}

// Pipeline wires the components of a run together. Fields left nil by
// the caller are filled with the file-backed defaults by New.
type Pipeline struct {
	Loader    Loader
	Encoder   Encoder
	Resizer   resample.Resizer
	Publisher Publisher
	Stages    []Stage

	// OnLoad, if set, is called once after the source is decoded.
	OnLoad func(img *model.Image)

	// OnPass, if set, is called after every pass with its result.
	OnPass func(pass model.PassResult)
}

// New returns a Pipeline using the on-disk loader, encoder, and
// publisher, the given resizer, and the default stage ladder.
func New(resizer resample.Resizer) *Pipeline {
	return &Pipeline{
		Loader:    imageio.Loader{},
		Encoder:   imageio.Encoder{},
		Resizer:   resizer,
		Publisher: publish.Publisher{},
		Stages:    DefaultStages(),
	}
}

// Run executes the state machine for job and returns the report of the
// run. ctx is checked between passes.
func (p *Pipeline) Run(ctx context.Context, job Job) (*model.Report, error) {
	if err := job.Validate(); err != nil {
		return nil, model.WrapCLIError(model.ExitConfigInvalid, "invalid job", err)
	}
	if len(p.Stages) == 0 {
		return nil, model.NewCLIError(model.ExitConfigInvalid, "pipeline has no stages")
	}

	src, err := p.Loader.Load(job.Source)
	if err != nil {
		return nil, err
	}
	if p.OnLoad != nil {
		p.OnLoad(src)
	}

	report := &model.Report{
		Source:             job.Source,
		OriginalSize:       src.Size,
		OriginalDimensions: src.Dimensions,
		OriginalMode:       src.Mode,
		Output:             job.Output,
		State:              model.StateInitial,
	}

	for _, stage := range p.Stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		pass, err := p.runStage(stage, src, job.Output)
		if err != nil {
			return nil, err
		}
		report.State = stage.State
		report.Passes = append(report.Passes, pass)
		if p.OnPass != nil {
			p.OnPass(pass)
		}

		if !pass.NeedsReduction {
			break
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dest, err := p.Publisher.Publish(job.Output, job.Destination)
	if err != nil {
		return nil, err
	}
	report.Destination = dest
	report.State = model.StatePublished
	return report, nil
}

// runStage performs one pass. Resizes always sample the original image.
func (p *Pipeline) runStage(stage Stage, src *model.Image, output string) (model.PassResult, error) {
	img := src
	if stage.Target != nil {
		dims := stage.Target.Of(src.Dimensions)
		resized, err := p.Resizer.Resize(src, dims)
		if err != nil {
			return model.PassResult{}, fmt.Errorf("%s: resize to %s: %w", stage.State, dims, err)
		}
		img = resized
	}

	size, err := p.Encoder.Encode(img, output, stage.Options)
	if err != nil {
		return model.PassResult{}, err
	}

	return model.PassResult{
		State:          stage.State,
		Resized:        stage.Target != nil,
		Dimensions:     img.Dimensions,
		Options:        stage.Options,
		Size:           size,
		NeedsReduction: stage.Gated && sizegate.NeedsReduction(size),
	}, nil
}
