// Package watch monitors directories for new audio/video files and
// reports them as JSON lines once writes have settled.
package watch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/google/uuid"
)

// DefaultDebounce is how long a file must stay quiet after its last
// write before it is reported.
const DefaultDebounce = 5 * time.Second

// DefaultExtensions is the media set watched when none is configured.
var DefaultExtensions = []string{
	".wav", ".mp3", ".m4a", ".flac", ".ogg",
	".mp4", ".mkv", ".webm", ".mov",
}

// skipDirs are directory names never worth descending into.
var skipDirs = map[string]bool{
	".Trash": true, ".cache": true, ".npm": true, ".yarn": true,
	".gradle": true, ".cargo": true, "node_modules": true, ".git": true,
	"__pycache__": true, ".venv": true, "venv": true, "Library": true,
}

// Event is one line of the watcher protocol.
type Event struct {
	Event      string   `json:"event"`
	ID         string   `json:"id,omitempty"`
	Path       string   `json:"path,omitempty"`
	Size       int64    `json:"size,omitempty"`
	Folders    []string `json:"folders,omitempty"`
	Extensions []string `json:"extensions,omitempty"`
	Timestamp  string   `json:"timestamp"`
}

// Watcher reports new media files in the watched folders, debouncing
// filesystem events so each file is emitted exactly once, after its
// writer has finished.
type Watcher struct {
	out        io.Writer
	extensions map[string]bool
	debounce   time.Duration

	mu       sync.Mutex
	pending  map[string]time.Time
	reported map[string]bool
}

func New(out io.Writer, extensions []string, debounce time.Duration) *Watcher {
	if len(extensions) == 0 {
		extensions = DefaultExtensions
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	extSet := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		extSet[ext] = true
	}
	return &Watcher{
		out:        out,
		extensions: extSet,
		debounce:   debounce,
		pending:    make(map[string]time.Time),
		reported:   make(map[string]bool),
	}
}

// Run watches the folders until the context is cancelled.
func (w *Watcher) Run(ctx context.Context, folders []string) error {
	if len(folders) == 0 {
		return fmt.Errorf("no folders to watch")
	}
	for _, folder := range folders {
		if info, err := os.Stat(folder); err != nil || !info.IsDir() {
			return fmt.Errorf("directory not found: %s", folder)
		}
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, folder := range folders {
		if err := addRecursive(fsw, folder); err != nil {
			return err
		}
	}

	w.emit(Event{
		Event:      "started",
		Folders:    absolute(folders),
		Extensions: w.extensionList(),
		Timestamp:  timestamp(),
	})

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, event)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)

		case <-ticker.C:
			w.flush()
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
		return
	}
	if shouldSkip(event.Name) {
		return
	}

	// new directories join the watch set
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := addRecursive(fsw, event.Name); err != nil {
				log.Printf("watch: %v", err)
			}
			return
		}
	}

	if !w.extensions[strings.ToLower(filepath.Ext(event.Name))] {
		return
	}

	w.mu.Lock()
	w.pending[event.Name] = time.Now()
	w.mu.Unlock()
}

// flush reports every pending file whose debounce window has elapsed.
func (w *Watcher) flush() {
	now := time.Now()
	var ready []string

	w.mu.Lock()
	for path, lastSeen := range w.pending {
		if now.Sub(lastSeen) >= w.debounce {
			delete(w.pending, path)
			if !w.reported[path] {
				w.reported[path] = true
				ready = append(ready, path)
			}
		}
	}
	w.mu.Unlock()

	for _, path := range ready {
		info, err := os.Stat(path)
		if err != nil {
			continue
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		w.emit(Event{
			Event:     "new_file",
			ID:        uuid.NewString(),
			Path:      abs,
			Size:      info.Size(),
			Timestamp: timestamp(),
		})
	}
}

func (w *Watcher) emit(e Event) {
	data, err := json.Marshal(e)
	if err != nil {
		return
	}
	w.out.Write(append(data, '\n'))
}

func (w *Watcher) extensionList() []string {
	out := make([]string, 0, len(w.extensions))
	for ext := range w.extensions {
		out = append(out, ext)
	}
	return out
}

func addRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && shouldSkip(path) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			log.Printf("watch: add %s: %v", path, err)
		}
		return nil
	})
}

func shouldSkip(path string) bool {
	for _, part := range strings.Split(path, string(filepath.Separator)) {
		if skipDirs[part] {
			return true
		}
	}
	return false
}

func absolute(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			abs = p
		}
		out[i] = abs
	}
	return out
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05")
}
