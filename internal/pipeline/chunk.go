package pipeline

// Span is a half-open sample range [Start, End).
type Span struct {
	Start int
	End   int
}

// minTailSeconds is the shortest chunk worth transcribing; a trailing
// remainder below this is discarded.
const minTailSeconds = 0.3

// PlanChunks computes the overlapping windowing of a sample buffer for
// chunk-based transcription. Windows are chunkDuration seconds long and
// advance by chunkDuration-overlap, so adjacent chunks share overlap
// seconds of audio. A buffer no longer than one chunk yields a single
// span covering it entirely.
//
// Texts from adjacent chunks are later joined with a single space and the
// overlapping region is NOT deduplicated; words near chunk boundaries can
// appear twice. Changing that is a behavior change, not a cleanup.
func PlanChunks(totalSamples, sampleRate int, chunkDuration, overlap float64) []Span {
	chunkSamples := int(chunkDuration * float64(sampleRate))
	stepSamples := int((chunkDuration - overlap) * float64(sampleRate))

	if totalSamples <= chunkSamples {
		return []Span{{Start: 0, End: totalSamples}}
	}

	minSamples := int(minTailSeconds * float64(sampleRate))
	var spans []Span
	for start := 0; start < totalSamples; start += stepSamples {
		end := start + chunkSamples
		if end > totalSamples {
			end = totalSamples
		}
		if end-start < minSamples {
			break
		}
		spans = append(spans, Span{Start: start, End: end})
	}
	return spans
}
