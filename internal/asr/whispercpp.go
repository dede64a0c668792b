package asr

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

	"github.com/traart/transcribe/internal/audio"
)

// WhisperCpp recognizes audio with a local whisper.cpp install. Each call
// writes the buffer to a temp WAV and runs whisper-cli on it.
type WhisperCpp struct {
	modelPath string
	language  string
	threads   int
	cliPath   string
}

func NewWhisperCpp(modelPath, language string, threads int) *WhisperCpp {
	return &WhisperCpp{
		modelPath: modelPath,
		language:  language,
		threads:   threads,
	}
}

func (e *WhisperCpp) Name() string { return "whisper-cpp/" + filepath.Base(e.modelPath) }

// Load verifies the binary and the model file are present.
func (e *WhisperCpp) Load(ctx context.Context) error {
	cliPath, err := exec.LookPath("whisper-cli")
	if err != nil {
		return &ModelLoadError{Err: fmt.Errorf("whisper-cli not found: install whisper.cpp first")}
	}
	e.cliPath = cliPath

	if info, err := os.Stat(e.modelPath); err != nil || info.Size() == 0 {
		return &ModelLoadError{Err: fmt.Errorf("model file not found: %s", e.modelPath)}
	}
	return nil
}

func (e *WhisperCpp) Transcribe(ctx context.Context, buf *audio.Buffer) (string, error) {
	if len(buf.Samples) == 0 {
		return "", nil
	}
	if e.cliPath == "" {
		return "", &InferenceError{Err: fmt.Errorf("engine not loaded")}
	}

	tmpFile := filepath.Join(os.TempDir(), "traart-"+uuid.NewString()+".wav")
	if err := audio.WriteWAVFile(tmpFile, buf); err != nil {
		return "", &InferenceError{Err: err}
	}
	defer os.Remove(tmpFile)

	lang := e.language
	if lang == "" {
		lang = "auto"
	}

	args := []string{
		"-m", e.modelPath,
		"-l", lang,
		"-nt", // no timestamps
		"-np", // no progress
		"-f", tmpFile,
	}
	if e.threads > 0 {
		args = append(args, "-t", strconv.Itoa(e.threads))
	}

	cmd := exec.CommandContext(ctx, e.cliPath, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		log.Printf("asr: whisper-cli failed after %v: %v\nstderr: %s",
			time.Since(start).Truncate(time.Millisecond), err, stderr.String())
		return "", &InferenceError{Err: fmt.Errorf("whisper-cli: %w", err)}
	}

	return strings.TrimSpace(stdout.String()), nil
}
