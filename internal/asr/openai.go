package asr

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/traart/transcribe/internal/audio"
)

// OpenAIEngine recognizes audio through the OpenAI transcription API.
type OpenAIEngine struct {
	client *openai.Client
	cfg    Config
}

func NewOpenAIEngine(cfg Config) *OpenAIEngine {
	if cfg.Model == "" {
		cfg.Model = openai.Whisper1
	}
	return &OpenAIEngine{
		client: openai.NewClient(cfg.APIKey),
		cfg:    cfg,
	}
}

func (e *OpenAIEngine) Name() string { return "openai/" + e.cfg.Model }

// Load is a no-op beyond key validation: the model lives server-side.
func (e *OpenAIEngine) Load(ctx context.Context) error {
	if e.cfg.APIKey == "" {
		return &ModelLoadError{Err: fmt.Errorf("OpenAI API key required")}
	}
	return nil
}

func (e *OpenAIEngine) Transcribe(ctx context.Context, buf *audio.Buffer) (string, error) {
	if len(buf.Samples) == 0 {
		return "", nil
	}

	var wavData bytes.Buffer
	if err := audio.EncodeWAV(&wavData, buf); err != nil {
		return "", &InferenceError{Err: err}
	}

	req := openai.AudioRequest{
		Model:    e.cfg.Model,
		Reader:   bytes.NewReader(wavData.Bytes()),
		FilePath: "audio.wav",
		Language: e.cfg.Language,
	}

	start := time.Now()
	resp, err := e.client.CreateTranscription(ctx, req)
	if err != nil {
		log.Printf("asr: openai call failed after %v: %v", time.Since(start).Truncate(time.Millisecond), err)
		return "", &InferenceError{Err: err}
	}
	return resp.Text, nil
}
