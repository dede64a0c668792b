package config

import (
	"fmt"
	"os"
)

func (c *Config) Validate() error {
	switch c.Engine.Provider {
	case "openai":
		if c.ResolveAPIKey() == "" {
			return fmt.Errorf("OpenAI API key required: not found in config (engine.api_key) or environment variable (OPENAI_API_KEY)")
		}
	case "whisper-cpp":
		// local engine, no key required
	default:
		return fmt.Errorf("unsupported engine.provider: %s (must be whisper-cpp or openai)", c.Engine.Provider)
	}

	if c.Engine.Model == "" {
		return fmt.Errorf("invalid engine.model: empty")
	}

	ch := c.Chunking
	if ch.Duration <= 0 {
		return fmt.Errorf("invalid chunking.duration: %v (must be positive seconds)", ch.Duration)
	}
	if ch.Overlap < 0 || ch.Overlap >= ch.Duration {
		return fmt.Errorf("invalid chunking.overlap: %v (must satisfy 0 <= overlap < duration)", ch.Overlap)
	}
	if ch.MergeGap <= 0 {
		return fmt.Errorf("invalid chunking.merge_gap: %v (must be positive seconds)", ch.MergeGap)
	}
	if ch.MinSegment <= 0 {
		return fmt.Errorf("invalid chunking.min_segment: %v (must be positive seconds)", ch.MinSegment)
	}
	if ch.ExpansionPad < 0 {
		return fmt.Errorf("invalid chunking.expansion_pad: %v (must be >= 0 seconds)", ch.ExpansionPad)
	}

	if c.Watch.Debounce < 0 {
		return fmt.Errorf("invalid watch.debounce: %v", c.Watch.Debounce)
	}

	return nil
}

// ResolveAPIKey returns the engine API key from the config, falling back
// to the provider's conventional environment variable.
func (c *Config) ResolveAPIKey() string {
	if c.Engine.APIKey != "" {
		return c.Engine.APIKey
	}
	if c.Engine.Provider == "openai" {
		return os.Getenv("OPENAI_API_KEY")
	}
	return ""
}
