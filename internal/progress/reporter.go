package progress

import (
	"encoding/json"
	"io"
	"math"
	"sync"
)

// Pipeline step names reported over the progress protocol.
const (
	StepPreparing    = "preparing"
	StepLoadingModel = "loading_model"
	StepDiarizing    = "diarizing"
	StepTranscribing = "transcribing"
	StepSaving       = "saving"
	StepComplete     = "complete"
)

// maxSummaryWarnings caps the warnings list in the end-of-run summary.
const maxSummaryWarnings = 20

// Event is a single progress line of the protocol.
type Event struct {
	Progress   float64  `json:"progress"`
	Step       string   `json:"step"`
	Detail     string   `json:"detail,omitempty"`
	ETASeconds *float64 `json:"eta_seconds,omitempty"`
}

type errorEvent struct {
	Error string `json:"error"`
}

type warningEvent struct {
	Warning string `json:"warning"`
}

type summaryEvent struct {
	WarningsCount int      `json:"warnings_count"`
	Warnings      []string `json:"warnings"`
}

// Reporter emits the machine-readable progress protocol: one JSON object
// per line on an out-of-band stream. It also collects warnings for the
// end-of-run summary. A Reporter is handed down the pipeline call chain
// explicitly; there is no process-wide instance.
type Reporter struct {
	mu       sync.Mutex
	w        io.Writer
	warnings []string
}

func NewReporter(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Report emits a progress event without an ETA.
func (r *Reporter) Report(progress float64, step, detail string) {
	r.emit(Event{Progress: round3(progress), Step: step, Detail: detail})
}

// ReportETA emits a progress event with an ETA in seconds.
func (r *Reporter) ReportETA(progress float64, step, detail string, etaSeconds float64) {
	eta := round1(etaSeconds)
	r.emit(Event{Progress: round3(progress), Step: step, Detail: detail, ETASeconds: &eta})
}

// Warn emits a warning line and records it for the summary.
func (r *Reporter) Warn(message string) {
	r.mu.Lock()
	r.warnings = append(r.warnings, message)
	r.mu.Unlock()
	r.emit(warningEvent{Warning: message})
}

// Error emits an error line. Errors are not collected.
func (r *Reporter) Error(message string) {
	r.emit(errorEvent{Error: message})
}

// Summary emits the collected-warnings summary. It is a no-op when no
// warnings were recorded. The list is capped at 20 entries; the count
// reflects all warnings.
func (r *Reporter) Summary() {
	r.mu.Lock()
	count := len(r.warnings)
	capped := r.warnings
	if len(capped) > maxSummaryWarnings {
		capped = capped[:maxSummaryWarnings]
	}
	list := make([]string, len(capped))
	copy(list, capped)
	r.mu.Unlock()

	if count == 0 {
		return
	}
	r.emit(summaryEvent{WarningsCount: count, Warnings: list})
}

// Warnings returns a copy of all recorded warnings.
func (r *Reporter) Warnings() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.warnings))
	copy(out, r.warnings)
	return out
}

func (r *Reporter) emit(v any) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.w.Write(append(data, '\n'))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
