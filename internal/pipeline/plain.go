package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/traart/transcribe/internal/progress"
	"github.com/traart/transcribe/internal/transcript"
)

// runPlain transcribes the whole buffer chunk by chunk, without
// diarization and without expansion retries. Reported progress covers
// [offset, offset+scale].
func runPlain(ctx context.Context, t *segmentTranscriber, offset, scale float64) ([]transcript.Segment, string) {
	buf := t.buf
	totalSamples := len(buf.Samples)
	chunkSamples := int(t.chunkDuration * float64(buf.SampleRate))

	if totalSamples <= chunkSamples {
		t.rep.Report(offset+scale*0.1, progress.StepTranscribing, "single chunk")
		text := t.unit(ctx, Span{Start: 0, End: totalSamples})
		t.rep.Report(offset+scale, progress.StepTranscribing, "chunk 1/1")

		var segments []transcript.Segment
		if text != "" {
			segments = append(segments, transcript.Segment{
				Start: 0,
				End:   round2(buf.Duration()),
				Text:  text,
			})
		}
		return segments, text
	}

	spans := PlanChunks(totalSamples, buf.SampleRate, t.chunkDuration, t.chunkOverlap)
	total := len(spans)

	var est progress.Estimator
	var texts []string
	var segments []transcript.Segment

	for i, span := range spans {
		started := time.Now()
		text := t.unit(ctx, span)
		est.Observe(time.Since(started).Seconds())

		if text != "" {
			texts = append(texts, text)
			segments = append(segments, transcript.Segment{
				Start: round2(float64(span.Start) / float64(buf.SampleRate)),
				End:   round2(float64(span.End) / float64(buf.SampleRate)),
				Text:  text,
			})
		}

		p := offset + scale*float64(i+1)/float64(total)
		detail := fmt.Sprintf("chunk %d/%d", i+1, total)
		if eta, ok := est.ETA(total - i - 1); ok {
			t.rep.ReportETA(p, progress.StepTranscribing, detail, eta)
		} else {
			t.rep.Report(p, progress.StepTranscribing, detail)
		}
	}

	return segments, strings.Join(texts, " ")
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
