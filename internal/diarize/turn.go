package diarize

import "sort"

// Turn is one speaker-labeled time interval. Speaker labels are stable
// within a single run only.
type Turn struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker"`
}

// Duration returns the turn length in seconds.
func (t Turn) Duration() float64 { return t.End - t.Start }

// SortTurns orders turns by non-decreasing start time.
func SortTurns(turns []Turn) {
	sort.SliceStable(turns, func(i, j int) bool {
		return turns[i].Start < turns[j].Start
	})
}

// MergeTurns joins consecutive same-speaker turns whose gap is below
// gapThreshold seconds. Input must be ordered by start.
func MergeTurns(turns []Turn, gapThreshold float64) []Turn {
	if len(turns) == 0 {
		return turns
	}
	merged := []Turn{turns[0]}
	for _, t := range turns[1:] {
		prev := &merged[len(merged)-1]
		if t.Speaker == prev.Speaker && (t.Start-prev.End) < gapThreshold {
			prev.End = t.End
		} else {
			merged = append(merged, t)
		}
	}
	return merged
}

// FilterShort drops turns shorter than minDuration seconds.
func FilterShort(turns []Turn, minDuration float64) []Turn {
	out := turns[:0:0]
	for _, t := range turns {
		if t.Duration() >= minDuration {
			out = append(out, t)
		}
	}
	return out
}
