package asr

import (
	"context"
	"fmt"

	"github.com/traart/transcribe/internal/audio"
)

// Engine is the speech recognition collaborator. One engine instance is
// a single stateful model bound to one compute device: calls are strictly
// sequential and never concurrent.
type Engine interface {
	// Name identifies the engine for logs and progress details.
	Name() string
	// Load prepares the model. It may block for a long time; the caller
	// runs a progress heartbeat around it.
	Load(ctx context.Context) error
	// Transcribe recognizes one mono 16 kHz buffer and returns the text.
	Transcribe(ctx context.Context, buf *audio.Buffer) (string, error)
}

// Config selects and parameterizes an engine.
type Config struct {
	Provider  string // "openai" or "whisper-cpp"
	APIKey    string
	Model     string // API model name (openai)
	ModelPath string // local model file (whisper-cpp)
	Language  string
	Threads   int
}

// New creates the engine for the configured provider.
func New(cfg Config) (Engine, error) {
	switch cfg.Provider {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key required")
		}
		return NewOpenAIEngine(cfg), nil
	case "whisper-cpp":
		if cfg.ModelPath == "" {
			return nil, fmt.Errorf("whisper-cpp model path required")
		}
		return NewWhisperCpp(cfg.ModelPath, cfg.Language, cfg.Threads), nil
	default:
		return nil, fmt.Errorf("unsupported engine provider: %s", cfg.Provider)
	}
}
