package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/traart/transcribe/internal/diarize"
	"github.com/traart/transcribe/internal/progress"
	"github.com/traart/transcribe/internal/transcript"
)

// Diarized pipeline progress window: diarization maps to [0.16, 0.35],
// per-turn transcription to [0.35, 0.95].
const (
	diarizeProgressStart  = 0.16
	diarizeProgressEnd    = 0.35
	turnProgressScale     = 0.6
	tailProgress          = 0.95
	tailGapFallbackSecond = 10
)

// runDiarized obtains speaker turns and transcribes each one in order.
// Turns that stay empty after the expansion retry become "[...]"
// placeholder segments when long enough, and are dropped silently
// otherwise. A long undiarized tail falls back to chunk transcription.
// Adjacent same-speaker segments are merged before returning.
//
// The only error returned is the diarizer's; callers check for
// diarize.UnavailableError and fall back to the plain pipeline.
func runDiarized(ctx context.Context, t *segmentTranscriber, d diarize.Diarizer, wavPath string, speakers int, mergeGap float64) ([]transcript.Segment, string, error) {
	t.rep.Report(diarizeProgressStart, progress.StepDiarizing, "running speaker diarization")
	turns, err := d.Diarize(ctx, wavPath, speakers)
	if err != nil {
		return nil, "", err
	}
	t.rep.Report(diarizeProgressEnd, progress.StepDiarizing, fmt.Sprintf("found %d segments", len(turns)))

	buf := t.buf
	total := len(turns)

	var est progress.Estimator
	var results []transcript.Segment

	for i, turn := range turns {
		started := time.Now()
		span := Span{Start: buf.SampleIndex(turn.Start), End: buf.SampleIndex(turn.End)}
		duration := float64(span.End-span.Start) / float64(buf.SampleRate)

		text := t.withExpansion(ctx, span)

		if text != "" {
			results = append(results, transcript.Segment{
				Start:   round2(turn.Start),
				End:     round2(turn.End),
				Speaker: turn.Speaker,
				Text:    text,
			})
		} else if duration >= minRecoverSeconds {
			// keep the slot so the user still sees the full timeline
			t.rep.Warn(fmt.Sprintf("Пустой сегмент %s [%.1f–%.1fс] (%.1fс)",
				turn.Speaker, turn.Start, turn.End, duration))
			results = append(results, transcript.Segment{
				Start:   round2(turn.Start),
				End:     round2(turn.End),
				Speaker: turn.Speaker,
				Text:    transcript.PlaceholderText,
			})
		}

		est.Observe(time.Since(started).Seconds())

		p := diarizeProgressEnd + turnProgressScale*float64(i+1)/float64(total)
		detail := fmt.Sprintf("segment %d/%d", i+1, total)
		if eta, ok := est.ETA(total - i - 1); ok {
			t.rep.ReportETA(p, progress.StepTranscribing, detail, eta)
		} else {
			t.rep.Report(p, progress.StepTranscribing, detail)
		}
	}

	results = append(results, transcribeTail(ctx, t, turns)...)

	merged := mergeSegments(results, mergeGap)

	texts := make([]string, len(merged))
	for i, s := range merged {
		texts[i] = s.Text
	}
	return merged, strings.Join(texts, " "), nil
}

// transcribeTail recovers trailing speech the diarizer missed:
// diarization models are known to truncate trailing silence/noise
// detection. Anything past the last turn longer than 10 seconds is
// chunk-transcribed and appended as speaker-less segments.
func transcribeTail(ctx context.Context, t *segmentTranscriber, turns []diarize.Turn) []transcript.Segment {
	buf := t.buf
	lastEnd := 0.0
	if len(turns) > 0 {
		lastEnd = turns[len(turns)-1].End
	}
	if buf.Duration()-lastEnd <= tailGapFallbackSecond {
		return nil
	}

	t.rep.Report(tailProgress, progress.StepTranscribing, "processing undetected tail audio")

	tailStart := buf.SampleIndex(lastEnd)
	tailSamples := len(buf.Samples) - tailStart

	var segments []transcript.Segment
	for _, c := range PlanChunks(tailSamples, buf.SampleRate, t.chunkDuration, t.chunkOverlap) {
		text := t.unit(ctx, Span{Start: tailStart + c.Start, End: tailStart + c.End})
		if text != "" {
			segments = append(segments, transcript.Segment{
				Start: round2(lastEnd + float64(c.Start)/float64(buf.SampleRate)),
				End:   round2(lastEnd + float64(c.End)/float64(buf.SampleRate)),
				Text:  text,
			})
		}
	}
	return segments
}

// mergeSegments joins consecutive segments that share a non-empty
// speaker label and sit closer than mergeGap seconds. Merged text is the
// space-concatenation of the parts.
func mergeSegments(segments []transcript.Segment, mergeGap float64) []transcript.Segment {
	var merged []transcript.Segment
	for _, s := range segments {
		if len(merged) > 0 {
			prev := &merged[len(merged)-1]
			if prev.Speaker == s.Speaker && s.Speaker != "" && (s.Start-prev.End) < mergeGap {
				prev.End = s.End
				prev.Text += " " + s.Text
				continue
			}
		}
		merged = append(merged, s)
	}
	return merged
}
