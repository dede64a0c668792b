package diarize

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Diarizer produces speaker turns for an audio file. Turns come back
// ordered by start time; overlapping turns are tolerated downstream.
type Diarizer interface {
	Diarize(ctx context.Context, wavPath string, speakers int) ([]Turn, error)
}

// Command runs an external diarization tool. The tool receives the WAV
// path plus optional hints and prints one JSON turn per stdout line:
// {"start": 1.2, "end": 3.4, "speaker": "SPEAKER_00"}.
type Command struct {
	Path        string
	ModelsDir   string
	MergeGap    float64 // same-speaker turns closer than this merge
	MinDuration float64 // turns shorter than this are dropped
}

func NewCommand(path, modelsDir string, mergeGap, minDuration float64) *Command {
	return &Command{
		Path:        path,
		ModelsDir:   modelsDir,
		MergeGap:    mergeGap,
		MinDuration: minDuration,
	}
}

func (c *Command) Diarize(ctx context.Context, wavPath string, speakers int) ([]Turn, error) {
	if c == nil || c.Path == "" {
		return nil, &UnavailableError{Reason: fmt.Errorf("no diarization command configured")}
	}

	args := []string{wavPath}
	if speakers > 0 {
		args = append(args, "--speakers", strconv.Itoa(speakers))
	}
	if c.ModelsDir != "" {
		args = append(args, "--models-dir", c.ModelsDir)
	}

	cmd := exec.CommandContext(ctx, c.Path, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &UnavailableError{
			Reason: fmt.Errorf("%s: %w: %s", c.Path, err, strings.TrimSpace(stderr.String())),
		}
	}

	turns, err := parseTurns(&stdout)
	if err != nil {
		return nil, &UnavailableError{Reason: err}
	}
	log.Printf("diarize: %d turns in %v", len(turns), time.Since(start).Truncate(time.Millisecond))

	SortTurns(turns)
	turns = MergeTurns(turns, c.MergeGap)
	turns = FilterShort(turns, c.MinDuration)
	return turns, nil
}

func parseTurns(r *bytes.Buffer) ([]Turn, error) {
	var turns []Turn
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var t Turn
		if err := json.Unmarshal([]byte(line), &t); err != nil {
			// non-turn diagnostics are allowed on stdout
			continue
		}
		if t.End <= t.Start {
			continue
		}
		turns = append(turns, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read diarization output: %w", err)
	}
	return turns, nil
}
