package format

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/traart/transcribe/internal/transcript"
)

type jsonResult struct {
	Source      string               `json:"source"`
	Duration    float64              `json:"duration"`
	Diarization bool                 `json:"diarization"`
	Speakers    int                  `json:"speakers"`
	Text        string               `json:"text"`
	Segments    []transcript.Segment `json:"segments"`
}

// renderJSON produces the machine-readable document. Duration is
// reported with one-decimal precision; the speaker field is omitted on
// non-diarized segments.
func renderJSON(res transcript.Result) (string, error) {
	segments := res.Segments
	if segments == nil {
		segments = []transcript.Segment{}
	}

	out := jsonResult{
		Source:      res.Source,
		Duration:    math.Round(res.Duration*10) / 10,
		Diarization: res.Diarization,
		Speakers:    res.Speakers,
		Text:        res.Text,
		Segments:    segments,
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
