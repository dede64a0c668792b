package format

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/traart/transcribe/internal/transcript"
)

// renderMarkdown produces the Markdown document: a title with metadata,
// then speaker-grouped sections when diarized, a plain timeline when
// there are multiple segments, or the raw text for a single segment.
func renderMarkdown(res transcript.Result) string {
	name := filepath.Base(res.Source)
	stem := strings.TrimSuffix(name, filepath.Ext(name))

	var lines []string
	lines = append(lines, "# Транскрипция: "+stem, "")

	durMin := int(res.Duration) / 60
	durSec := int(res.Duration) % 60
	lines = append(lines, fmt.Sprintf("**Длительность:** %d мин %d сек", durMin, durSec))
	if res.Diarization && res.Speakers > 0 {
		lines = append(lines, fmt.Sprintf("**Спикеров:** %d", res.Speakers))
	}
	lines = append(lines, fmt.Sprintf("**Файл:** `%s`", name), "", "---", "")

	switch {
	case res.Diarization && hasSpeakerLabels(res.Segments):
		current := ""
		for _, seg := range res.Segments {
			if seg.Speaker != "" && seg.Speaker != current {
				lines = append(lines, "### "+seg.Speaker, "")
				current = seg.Speaker
			}
			lines = append(lines, fmt.Sprintf("*[%s]* %s", clockMMSS(seg.Start), seg.Text), "")
		}
	case len(res.Segments) > 1:
		for _, seg := range res.Segments {
			lines = append(lines, fmt.Sprintf("*[%s]* %s", clockMMSS(seg.Start), seg.Text), "")
		}
	default:
		lines = append(lines, res.Text, "")
	}

	return strings.Join(lines, "\n")
}

// renderText produces the plain-text document with a Source/Duration
// header and, when diarized, per-segment time ranges and indented text.
func renderText(res transcript.Result) string {
	var lines []string
	lines = append(lines,
		"Source: "+res.Source,
		fmt.Sprintf("Duration: %.1f min", res.Duration/60),
		strings.Repeat("=", 50),
		"",
	)

	if res.Diarization && len(res.Segments) > 0 {
		for _, seg := range res.Segments {
			span := fmt.Sprintf("[%s - %s]", clockMMSS(seg.Start), clockMMSS(seg.End))
			if seg.Speaker != "" {
				lines = append(lines, span+" "+seg.Speaker+":")
			} else {
				lines = append(lines, span)
			}
			lines = append(lines, "  "+seg.Text, "")
		}
	} else {
		lines = append(lines, res.Text)
	}

	return strings.Join(lines, "\n")
}

func hasSpeakerLabels(segments []transcript.Segment) bool {
	for _, s := range segments {
		if s.Speaker != "" {
			return true
		}
	}
	return false
}
