package audio

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	conversionTimeout = 300 * time.Second
	probeTimeout      = 30 * time.Second
)

// ConversionError marks a decoder failure or timeout. It is fatal for
// the whole run: no partial results are produced from undecodable input.
type ConversionError struct {
	Err error
}

func (e *ConversionError) Error() string {
	if e == nil || e.Err == nil {
		return "audio conversion failed"
	}
	return "audio conversion failed: " + e.Err.Error()
}

func (e *ConversionError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// FindFFmpeg locates the ffmpeg binary, checking PATH first and then
// common install locations.
func FindFFmpeg() (string, error) {
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		return path, nil
	}
	for _, candidate := range []string{
		"/opt/homebrew/bin/ffmpeg",
		"/usr/local/bin/ffmpeg",
		"/usr/bin/ffmpeg",
	} {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("ffmpeg not found in PATH")
}

// Normalize converts an arbitrary media file to a temporary mono 16 kHz
// 16-bit PCM WAV and returns its path. The caller owns the temp file and
// must remove it on every exit path.
func Normalize(ctx context.Context, src, ffmpegPath string) (string, error) {
	out := filepath.Join(os.TempDir(), "traart-"+uuid.NewString()+".wav")

	ctx, cancel := context.WithTimeout(ctx, conversionTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffmpegPath,
		"-y", "-hide_banner", "-loglevel", "error",
		"-i", src,
		"-ar", strconv.Itoa(SampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		out,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	if err != nil {
		os.Remove(out)
		if ctx.Err() == context.DeadlineExceeded {
			return "", &ConversionError{Err: fmt.Errorf("ffmpeg timed out after %s", conversionTimeout)}
		}
		return "", &ConversionError{Err: fmt.Errorf("ffmpeg: %w: %s", err, strings.TrimSpace(stderr.String()))}
	}

	log.Printf("audio: normalized %s in %v", filepath.Base(src), time.Since(start).Truncate(time.Millisecond))
	return out, nil
}

// ProbeDuration returns the media duration in seconds via ffprobe, or 0
// when probing fails; the caller falls back to the decoded sample count.
func ProbeDuration(ctx context.Context, path, ffmpegPath string) float64 {
	ffprobe := strings.Replace(ffmpegPath, "ffmpeg", "ffprobe", 1)

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, ffprobe,
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	)
	out, err := cmd.Output()
	if err != nil {
		return 0
	}
	seconds, err := strconv.ParseFloat(strings.TrimSpace(string(out)), 64)
	if err != nil {
		return 0
	}
	return seconds
}
