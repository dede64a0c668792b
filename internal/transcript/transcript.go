package transcript

// PlaceholderText marks a segment where speech was detected but
// recognition failed even after expansion. It keeps the timeline visible.
const PlaceholderText = "[...]"

// Segment is one unit of transcript output. An empty Speaker means the
// segment is non-diarized or the speaker is unknown.
type Segment struct {
	Start   float64 `json:"start"`
	End     float64 `json:"end"`
	Speaker string  `json:"speaker,omitempty"`
	Text    string  `json:"text"`
}

// Result is the terminal artifact of one run, handed to a formatter and
// then discarded.
type Result struct {
	Source      string
	Duration    float64
	Diarization bool
	Speakers    int
	Text        string
	Segments    []Segment
}

// CountSpeakers returns the number of distinct speaker labels among the
// segments, counting the empty label when present.
func CountSpeakers(segments []Segment) int {
	seen := make(map[string]struct{}, 4)
	for _, s := range segments {
		seen[s.Speaker] = struct{}{}
	}
	return len(seen)
}
