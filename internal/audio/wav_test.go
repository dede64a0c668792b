package audio

import (
	"path/filepath"
	"testing"
)

func TestWAVRoundTrip(t *testing.T) {
	samples := make([]int16, 1600)
	for i := range samples {
		samples[i] = int16(i%256 - 128)
	}
	buf := &Buffer{Samples: samples, SampleRate: 16000}

	path := filepath.Join(t.TempDir(), "roundtrip.wav")
	if err := WriteWAVFile(path, buf); err != nil {
		t.Fatalf("WriteWAVFile: %v", err)
	}

	got, err := DecodeWAV(path)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if got.SampleRate != 16000 {
		t.Errorf("sample rate %d, want 16000", got.SampleRate)
	}
	if len(got.Samples) != len(samples) {
		t.Fatalf("got %d samples, want %d", len(got.Samples), len(samples))
	}
	for i := range samples {
		if got.Samples[i] != samples[i] {
			t.Fatalf("sample %d: got %d, want %d", i, got.Samples[i], samples[i])
		}
	}
}

func TestDecodeWAVMissingFile(t *testing.T) {
	if _, err := DecodeWAV(filepath.Join(t.TempDir(), "nope.wav")); err == nil {
		t.Error("want error for missing file")
	}
}

func TestWriteWAVFileEmptyBuffer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := WriteWAVFile(path, &Buffer{SampleRate: 16000}); err != nil {
		t.Fatalf("WriteWAVFile: %v", err)
	}
	got, err := DecodeWAV(path)
	if err != nil {
		t.Fatalf("DecodeWAV: %v", err)
	}
	if len(got.Samples) != 0 {
		t.Errorf("got %d samples, want 0", len(got.Samples))
	}
}
