package watch

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestNewNormalizesExtensions(t *testing.T) {
	w := New(os.Stdout, []string{"m4a", ".MP4", " wav ", ""}, 0)

	for _, ext := range []string{".m4a", ".mp4", ".wav"} {
		if !w.extensions[ext] {
			t.Errorf("extension %q not in watch set: %v", ext, w.extensions)
		}
	}
	if w.debounce != DefaultDebounce {
		t.Errorf("debounce %v, want default", w.debounce)
	}
}

func TestNewDefaultExtensions(t *testing.T) {
	w := New(os.Stdout, nil, time.Second)
	if len(w.extensions) != len(DefaultExtensions) {
		t.Errorf("got %d extensions, want %d", len(w.extensions), len(DefaultExtensions))
	}
	if w.debounce != time.Second {
		t.Errorf("debounce %v, want 1s", w.debounce)
	}
}

func TestShouldSkip(t *testing.T) {
	skipped := []string{
		"/home/u/node_modules/pkg/a.mp3",
		"/home/u/.cache/x.wav",
		"/home/u/.git/objects/aa",
	}
	for _, path := range skipped {
		if !shouldSkip(path) {
			t.Errorf("shouldSkip(%q) = false", path)
		}
	}

	kept := []string{
		"/home/u/Recordings/call.m4a",
		"/home/u/my-cache-notes/a.wav", // only exact directory names skip
	}
	for _, path := range kept {
		if shouldSkip(path) {
			t.Errorf("shouldSkip(%q) = true", path)
		}
	}
}

func TestFlushDebounce(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rec.m4a")
	if err := os.WriteFile(file, []byte("audio data"), 0644); err != nil {
		t.Fatal(err)
	}

	var out strings.Builder
	w := New(&out, []string{".m4a"}, 100*time.Millisecond)

	// a fresh write is still inside the debounce window
	w.mu.Lock()
	w.pending[file] = time.Now()
	w.mu.Unlock()
	w.flush()
	if out.Len() != 0 {
		t.Fatalf("reported before debounce elapsed: %s", out.String())
	}

	// backdate the write past the window
	w.mu.Lock()
	w.pending[file] = time.Now().Add(-time.Second)
	w.mu.Unlock()
	w.flush()

	var e Event
	if err := json.Unmarshal([]byte(strings.TrimSpace(out.String())), &e); err != nil {
		t.Fatalf("invalid event JSON: %v\n%s", err, out.String())
	}
	if e.Event != "new_file" {
		t.Errorf("event %q, want new_file", e.Event)
	}
	if e.ID == "" {
		t.Error("event has no id")
	}
	if e.Path != file {
		t.Errorf("path %q, want %q", e.Path, file)
	}
	if e.Size != int64(len("audio data")) {
		t.Errorf("size %d", e.Size)
	}
	if e.Timestamp == "" {
		t.Error("event has no timestamp")
	}

	// the same file is never reported twice
	out.Reset()
	w.mu.Lock()
	w.pending[file] = time.Now().Add(-time.Second)
	w.mu.Unlock()
	w.flush()
	if out.Len() != 0 {
		t.Errorf("file reported twice: %s", out.String())
	}
}

func TestFlushSkipsVanishedFiles(t *testing.T) {
	var out strings.Builder
	w := New(&out, []string{".m4a"}, 100*time.Millisecond)

	w.mu.Lock()
	w.pending["/nonexistent/gone.m4a"] = time.Now().Add(-time.Second)
	w.mu.Unlock()
	w.flush()

	if out.Len() != 0 {
		t.Errorf("vanished file reported: %s", out.String())
	}
}
