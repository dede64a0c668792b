package asr

import (
	"errors"
	"fmt"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{
			name:    "openai requires key",
			cfg:     Config{Provider: "openai"},
			wantErr: true,
		},
		{
			name: "openai with key",
			cfg:  Config{Provider: "openai", APIKey: "sk-test"},
		},
		{
			name:    "whisper-cpp requires model path",
			cfg:     Config{Provider: "whisper-cpp"},
			wantErr: true,
		},
		{
			name: "whisper-cpp with model path",
			cfg:  Config{Provider: "whisper-cpp", ModelPath: "/models/ggml-base.bin"},
		},
		{
			name:    "unknown provider",
			cfg:     Config{Provider: "siri"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, err := New(tt.cfg)
			if tt.wantErr {
				if err == nil {
					t.Error("want error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if engine.Name() == "" {
				t.Error("empty engine name")
			}
		})
	}
}

func TestModelLoadError(t *testing.T) {
	cause := fmt.Errorf("file missing")
	err := &ModelLoadError{Err: cause}

	if !IsModelLoadError(err) {
		t.Error("IsModelLoadError = false for ModelLoadError")
	}
	if !errors.Is(err, cause) {
		t.Error("Unwrap does not expose the cause")
	}
	if IsModelLoadError(cause) {
		t.Error("IsModelLoadError = true for plain error")
	}

	wrapped := fmt.Errorf("loading: %w", err)
	if !IsModelLoadError(wrapped) {
		t.Error("IsModelLoadError = false for wrapped ModelLoadError")
	}
}

func TestInferenceErrorUnwrap(t *testing.T) {
	cause := fmt.Errorf("exec failed")
	err := &InferenceError{Err: cause}
	if !errors.Is(err, cause) {
		t.Error("Unwrap does not expose the cause")
	}
}

func TestWhisperCppName(t *testing.T) {
	e := NewWhisperCpp("/models/ggml-base.bin", "ru", 4)
	if e.Name() != "whisper-cpp/ggml-base.bin" {
		t.Errorf("Name() = %q", e.Name())
	}
}
