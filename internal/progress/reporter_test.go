package progress

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
)

func decodeLines(t *testing.T, out string) []map[string]any {
	t.Helper()
	var events []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
		if line == "" {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		events = append(events, m)
	}
	return events
}

func TestReport(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out)

	r.Report(0.12345, StepTranscribing, "chunk 1/3")

	events := decodeLines(t, out.String())
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	e := events[0]
	if e["progress"] != 0.123 {
		t.Errorf("progress %v, want 0.123 (rounded to 3 decimals)", e["progress"])
	}
	if e["step"] != StepTranscribing {
		t.Errorf("step %v", e["step"])
	}
	if e["detail"] != "chunk 1/3" {
		t.Errorf("detail %v", e["detail"])
	}
	if _, ok := e["eta_seconds"]; ok {
		t.Error("eta_seconds present without ETA")
	}
}

func TestReportETA(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out)

	r.ReportETA(0.5, StepTranscribing, "chunk 2/3", 12.345)

	e := decodeLines(t, out.String())[0]
	if e["eta_seconds"] != 12.3 {
		t.Errorf("eta_seconds %v, want 12.3 (rounded to 1 decimal)", e["eta_seconds"])
	}
}

func TestReportOmitsEmptyDetail(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out)

	r.Report(1.0, StepComplete, "")

	if strings.Contains(out.String(), "detail") {
		t.Errorf("empty detail serialized: %s", out.String())
	}
}

func TestWarnAndError(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out)

	r.Warn("что-то пошло не так")
	r.Error("фатальная ошибка")

	events := decodeLines(t, out.String())
	if events[0]["warning"] != "что-то пошло не так" {
		t.Errorf("warning event %v", events[0])
	}
	if events[1]["error"] != "фатальная ошибка" {
		t.Errorf("error event %v", events[1])
	}

	// warnings are collected, errors are not
	if got := r.Warnings(); len(got) != 1 {
		t.Errorf("got %d collected warnings, want 1", len(got))
	}
}

func TestSummaryEmptyIsSilent(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out)

	r.Summary()

	if out.Len() != 0 {
		t.Errorf("summary emitted without warnings: %s", out.String())
	}
}

func TestSummaryCapsList(t *testing.T) {
	var out strings.Builder
	r := NewReporter(&out)

	for i := 0; i < 25; i++ {
		r.Warn(fmt.Sprintf("warning %d", i))
	}
	out.Reset()
	r.Summary()

	e := decodeLines(t, out.String())[0]
	if e["warnings_count"] != float64(25) {
		t.Errorf("warnings_count %v, want 25", e["warnings_count"])
	}
	list, ok := e["warnings"].([]any)
	if !ok || len(list) != 20 {
		t.Fatalf("warnings list has %d entries, want 20", len(list))
	}
	if list[0] != "warning 0" || list[19] != "warning 19" {
		t.Errorf("list order wrong: first %v, last %v", list[0], list[19])
	}
}

func TestEstimator(t *testing.T) {
	var e Estimator

	if _, ok := e.ETA(10); ok {
		t.Error("ETA defined with no observations")
	}

	e.Observe(2)
	if _, ok := e.ETA(10); ok {
		t.Error("ETA defined with a single observation")
	}

	e.Observe(4)
	eta, ok := e.ETA(5)
	if !ok {
		t.Fatal("ETA undefined after two observations")
	}
	// mean of 2 and 4 is 3, times 5 remaining units
	if eta != 15 {
		t.Errorf("ETA %v, want 15", eta)
	}

	eta, ok = e.ETA(0)
	if !ok || eta != 0 {
		t.Errorf("ETA for zero remaining: %v, %v", eta, ok)
	}
}
