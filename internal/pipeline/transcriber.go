package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/traart/transcribe/internal/asr"
	"github.com/traart/transcribe/internal/audio"
	"github.com/traart/transcribe/internal/progress"
)

const (
	// minUnitSeconds guards against degenerate spans: anything shorter
	// is returned as empty text without calling the engine.
	minUnitSeconds = 0.1
	// minRecoverSeconds is the shortest span worth an expansion retry or
	// a placeholder segment.
	minRecoverSeconds = 0.5
)

// segmentTranscriber drives the ASR engine over spans of one shared
// buffer. Engine failures never propagate: they become warnings and
// empty text, so one bad chunk cannot abort the run.
type segmentTranscriber struct {
	engine        asr.Engine
	buf           *audio.Buffer
	rep           *progress.Reporter
	chunkDuration float64
	chunkOverlap  float64
	expansionPad  float64
}

// unit transcribes a single span.
func (t *segmentTranscriber) unit(ctx context.Context, span Span) string {
	slice := t.buf.Slice(span.Start, span.End)
	if slice.Duration() < minUnitSeconds {
		return ""
	}
	text, err := t.engine.Transcribe(ctx, slice)
	if err != nil {
		t.rep.Warn(fmt.Sprintf("Не удалось распознать чанк (%.1fс): %v", slice.Duration(), err))
		return ""
	}
	return strings.TrimSpace(text)
}

// longSpan transcribes a span, re-chunking it when it exceeds the chunk
// stride. Per-chunk texts are joined with a single space.
func (t *segmentTranscriber) longSpan(ctx context.Context, span Span) string {
	slice := t.buf.Slice(span.Start, span.End)
	if slice.Duration() <= t.chunkDuration-t.chunkOverlap {
		return t.unit(ctx, span)
	}

	var parts []string
	for _, c := range PlanChunks(len(slice.Samples), slice.SampleRate, t.chunkDuration, t.chunkOverlap) {
		text := t.unit(ctx, Span{Start: span.Start + c.Start, End: span.Start + c.End})
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}

// withExpansion transcribes a span and, when the result is empty and the
// span is long enough to matter, retries once with symmetric padding.
// Diarization boundaries sometimes clip the onset or offset of speech;
// the padded retry recovers those.
func (t *segmentTranscriber) withExpansion(ctx context.Context, span Span) string {
	text := t.longSpan(ctx, span)
	if text != "" {
		return text
	}
	slice := t.buf.Slice(span.Start, span.End)
	if slice.Duration() < minRecoverSeconds {
		return ""
	}
	pad := int(t.expansionPad * float64(t.buf.SampleRate))
	return t.unit(ctx, Span{Start: span.Start - pad, End: span.End + pad})
}
