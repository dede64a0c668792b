package transcript

import "testing"

func TestCountSpeakers(t *testing.T) {
	tests := []struct {
		name     string
		segments []Segment
		want     int
	}{
		{"empty", nil, 0},
		{
			"two speakers",
			[]Segment{
				{Speaker: "SPEAKER_00"},
				{Speaker: "SPEAKER_01"},
				{Speaker: "SPEAKER_00"},
			},
			2,
		},
		{
			"unknown speaker counts as one",
			[]Segment{
				{Speaker: "SPEAKER_00"},
				{Speaker: ""},
				{Speaker: ""},
			},
			2,
		},
		{"single unlabeled", []Segment{{}}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountSpeakers(tt.segments); got != tt.want {
				t.Errorf("CountSpeakers = %d, want %d", got, tt.want)
			}
		})
	}
}
