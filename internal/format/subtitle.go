package format

import (
	"fmt"
	"strings"

	"github.com/traart/transcribe/internal/transcript"
)

// renderSRT produces standard numbered SRT cues. When diarized and the
// speaker is known, the text line is prefixed with "[speaker]".
func renderSRT(res transcript.Result) string {
	var lines []string
	for i, seg := range res.Segments {
		lines = append(lines,
			fmt.Sprintf("%d", i+1),
			clockSRT(seg.Start)+" --> "+clockSRT(seg.End),
		)
		if res.Diarization && seg.Speaker != "" {
			lines = append(lines, fmt.Sprintf("[%s] %s", seg.Speaker, seg.Text))
		} else {
			lines = append(lines, seg.Text)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

// renderVTT produces WebVTT cues. When diarized and the speaker is
// known, the text is wrapped as a voice span "<v speaker>text".
func renderVTT(res transcript.Result) string {
	lines := []string{"WEBVTT", ""}
	for _, seg := range res.Segments {
		lines = append(lines, clockVTT(seg.Start)+" --> "+clockVTT(seg.End))
		if res.Diarization && seg.Speaker != "" {
			lines = append(lines, fmt.Sprintf("<v %s>%s", seg.Speaker, seg.Text))
		} else {
			lines = append(lines, seg.Text)
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}
