package pipeline

import (
	"testing"
)

func TestPlanChunks(t *testing.T) {
	const rate = 16000

	tests := []struct {
		name     string
		seconds  float64
		duration float64
		overlap  float64
		want     []Span
	}{
		{
			name:     "shorter than one chunk",
			seconds:  5,
			duration: 20,
			overlap:  4,
			want:     []Span{{0, 5 * rate}},
		},
		{
			name:     "exactly one chunk",
			seconds:  20,
			duration: 20,
			overlap:  4,
			want:     []Span{{0, 20 * rate}},
		},
		{
			name:     "overlapping windows with short tail",
			seconds:  45,
			duration: 20,
			overlap:  4,
			want: []Span{
				{0, 20 * rate},
				{16 * rate, 36 * rate},
				{32 * rate, 45 * rate},
			},
		},
		{
			name:     "tail below minimum is dropped",
			seconds:  32.2,
			duration: 20,
			overlap:  4,
			want: []Span{
				{0, 20 * rate},
				{16 * rate, int(32.2 * rate)},
			},
		},
		{
			name:     "no overlap",
			seconds:  25,
			duration: 10,
			overlap:  0,
			want: []Span{
				{0, 10 * rate},
				{10 * rate, 20 * rate},
				{20 * rate, 25 * rate},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			total := int(tt.seconds * rate)
			got := PlanChunks(total, rate, tt.duration, tt.overlap)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d spans, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("span %d: got %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestPlanChunksCoverage(t *testing.T) {
	const rate = 16000
	spans := PlanChunks(120*rate, rate, 20, 4)

	if spans[0].Start != 0 {
		t.Errorf("first span starts at %d, want 0", spans[0].Start)
	}
	last := spans[len(spans)-1]
	if last.End != 120*rate {
		t.Errorf("last span ends at %d, want %d", last.End, 120*rate)
	}
	// adjacent spans must overlap by the configured amount
	for i := 1; i < len(spans); i++ {
		if spans[i].Start >= spans[i-1].End {
			t.Errorf("spans %d and %d do not overlap: %v %v", i-1, i, spans[i-1], spans[i])
		}
		if got := spans[i].Start - spans[i-1].Start; got != 16*rate {
			t.Errorf("stride between spans %d and %d is %d samples, want %d", i-1, i, got, 16*rate)
		}
	}
}
