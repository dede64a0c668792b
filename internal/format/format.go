// Package format renders a finished transcript into one of the
// supported text formats. Renderers are pure: no model calls, no I/O.
package format

import (
	"fmt"
	"math"

	"github.com/traart/transcribe/internal/transcript"
)

// Names of the supported output formats.
const (
	Markdown = "md"
	Text     = "txt"
	JSON     = "json"
	SRT      = "srt"
	VTT      = "vtt"
)

// Formats lists the supported format names in display order.
func Formats() []string {
	return []string{Markdown, JSON, Text, SRT, VTT}
}

// IsValid reports whether name is a supported format.
func IsValid(name string) bool {
	switch name {
	case Markdown, Text, JSON, SRT, VTT:
		return true
	}
	return false
}

// Render serializes the result in the named format.
func Render(name string, res transcript.Result) (string, error) {
	switch name {
	case Markdown:
		return renderMarkdown(res), nil
	case Text:
		return renderText(res), nil
	case JSON:
		return renderJSON(res)
	case SRT:
		return renderSRT(res), nil
	case VTT:
		return renderVTT(res), nil
	}
	return "", fmt.Errorf("unknown output format: %s", name)
}

// clockMMSS formats whole seconds as MM:SS.
func clockMMSS(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}

// clockSRT formats seconds as HH:MM:SS,mmm.
func clockSRT(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// clockVTT formats seconds as HH:MM:SS.mmm.
func clockVTT(seconds float64) string {
	h, m, s, ms := clockParts(seconds)
	return fmt.Sprintf("%02d:%02d:%02d.%03d", h, m, s, ms)
}

func clockParts(seconds float64) (h, m, s, ms int) {
	whole := int(seconds)
	h = whole / 3600
	m = (whole % 3600) / 60
	s = whole % 60
	ms = int(math.Round((seconds - math.Trunc(seconds)) * 1000))
	return h, m, s, ms
}
