package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/traart/transcribe/internal/asr"
	"github.com/traart/transcribe/internal/audio"
	"github.com/traart/transcribe/internal/diarize"
	"github.com/traart/transcribe/internal/format"
	"github.com/traart/transcribe/internal/progress"
	"github.com/traart/transcribe/internal/transcript"
)

// Plain pipeline progress window inside a full run.
const (
	plainProgressOffset = 0.15
	plainProgressScale  = 0.78
)

// Options parameterizes one transcription run.
type Options struct {
	Input  string
	Output string
	Format string

	Diarize  bool
	Speakers int // expected speaker count hint, 0 = auto

	ChunkDuration float64 // seconds per chunk
	ChunkOverlap  float64 // seconds shared by adjacent chunks
	MergeGap      float64 // max gap for same-speaker merge
	MinSegment    float64 // min diarization turn duration
	ExpansionPad  float64 // symmetric retry padding

	FFmpegPath string
}

// Run executes the whole pipeline for one file: normalize, load the
// model, transcribe (diarized or plain), render and write the output.
// The reporter receives progress throughout and the warnings summary at
// the end. Fatal errors are returned; per-unit failures are warnings.
func Run(ctx context.Context, opts Options, engine asr.Engine, diarizer diarize.Diarizer, rep *progress.Reporter) error {
	input, err := filepath.Abs(opts.Input)
	if err != nil {
		return &InputError{Msg: fmt.Sprintf("invalid input path: %v", err)}
	}
	output, err := filepath.Abs(opts.Output)
	if err != nil {
		return &InputError{Msg: fmt.Sprintf("invalid output path: %v", err)}
	}

	if _, err := os.Stat(input); err != nil {
		return &InputError{Msg: fmt.Sprintf("input file not found: %s", input)}
	}
	if !audio.IsSupported(input) {
		return &InputError{Msg: fmt.Sprintf("unsupported file format: %s", filepath.Ext(input))}
	}

	rep.Report(0.01, progress.StepPreparing, "converting audio")

	duration := audio.ProbeDuration(ctx, input, opts.FFmpegPath)

	wavPath, err := audio.Normalize(ctx, input, opts.FFmpegPath)
	if err != nil {
		return err
	}
	defer os.Remove(wavPath)

	rep.Report(0.03, progress.StepPreparing, "loading audio")

	buf, err := audio.DecodeWAV(wavPath)
	if err != nil {
		return &audio.ConversionError{Err: err}
	}
	if duration <= 0 {
		duration = buf.Duration()
	}

	rep.Report(0.05, progress.StepLoadingModel, "loading "+engine.Name())
	stop := progress.StartHeartbeat(rep, "loading "+engine.Name())
	err = engine.Load(ctx)
	stop()
	if err != nil {
		if asr.IsModelLoadError(err) {
			return err
		}
		return &asr.ModelLoadError{Err: err}
	}
	rep.Report(0.14, progress.StepLoadingModel, "model ready")

	st := &segmentTranscriber{
		engine:        engine,
		buf:           buf,
		rep:           rep,
		chunkDuration: opts.ChunkDuration,
		chunkOverlap:  opts.ChunkOverlap,
		expansionPad:  opts.ExpansionPad,
	}

	diarized := opts.Diarize
	var segments []transcript.Segment
	var fullText string

	if diarized {
		segments, fullText, err = runDiarized(ctx, st, diarizer, wavPath, opts.Speakers, opts.MergeGap)
		var unavailable *diarize.UnavailableError
		switch {
		case errors.As(err, &unavailable):
			rep.Warn("Диаризация недоступна: " + unavailable.Reason.Error())
			rep.Report(plainProgressOffset, progress.StepTranscribing, "fallback: транскрибация без диаризации")
			diarized = false
			segments, fullText = runPlain(ctx, st, plainProgressOffset, plainProgressScale)
		case err != nil:
			return err
		}
	} else {
		rep.Report(plainProgressOffset, progress.StepTranscribing, "starting transcription")
		segments, fullText = runPlain(ctx, st, plainProgressOffset, plainProgressScale)
	}

	speakers := 0
	if diarized {
		speakers = transcript.CountSpeakers(segments)
	}

	rep.Report(tailProgress, progress.StepSaving, "writing output")

	result := transcript.Result{
		Source:      input,
		Duration:    duration,
		Diarization: diarized,
		Speakers:    speakers,
		Text:        fullText,
		Segments:    segments,
	}

	rendered, err := format.Render(opts.Format, result)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(output, []byte(rendered), 0644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	rep.Summary()
	rep.Report(1.0, progress.StepComplete, "saved to "+output)
	return nil
}
