package audio

import (
	"path/filepath"
	"strings"
)

// SampleRate is the canonical pipeline sample rate. Every buffer that
// enters the pipeline is mono PCM at this rate; no stage resamples.
const SampleRate = 16000

// Buffer holds normalized mono PCM audio. Created once by the
// normalizer/decoder and read-only afterward; slices share the backing
// array.
type Buffer struct {
	Samples    []int16
	SampleRate int
}

// Duration returns the buffer length in seconds.
func (b *Buffer) Duration() float64 {
	if b.SampleRate == 0 {
		return 0
	}
	return float64(len(b.Samples)) / float64(b.SampleRate)
}

// SampleIndex converts a time offset in seconds to a sample index.
func (b *Buffer) SampleIndex(seconds float64) int {
	return int(seconds * float64(b.SampleRate))
}

// Slice returns the sub-buffer [start, end), clamped to valid bounds.
func (b *Buffer) Slice(start, end int) *Buffer {
	if start < 0 {
		start = 0
	}
	if end > len(b.Samples) {
		end = len(b.Samples)
	}
	if start > end {
		start = end
	}
	return &Buffer{Samples: b.Samples[start:end], SampleRate: b.SampleRate}
}

// supportedExtensions lists the media containers the decoder handles.
var supportedExtensions = map[string]bool{
	// audio
	".wav": true, ".mp3": true, ".m4a": true, ".flac": true, ".ogg": true,
	".oga": true, ".opus": true, ".aac": true, ".wma": true, ".amr": true,
	".m4b": true, ".mp2": true, ".aiff": true, ".aif": true,
	// video
	".mp4": true, ".mkv": true, ".webm": true, ".mov": true, ".avi": true,
	".wmv": true, ".m4v": true,
}

// IsSupported reports whether the file extension is a known audio/video
// container.
func IsSupported(path string) bool {
	return supportedExtensions[strings.ToLower(filepath.Ext(path))]
}

// SupportedExtensions returns the recognized extensions, dot included.
func SupportedExtensions() []string {
	out := make([]string, 0, len(supportedExtensions))
	for ext := range supportedExtensions {
		out = append(out, ext)
	}
	return out
}
