package config

import (
	"runtime"
	"time"
)

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		Engine: EngineConfig{
			Provider: "whisper-cpp",
			Model:    "base",
		},
		Chunking: ChunkingConfig{
			Duration:     20,
			Overlap:      4,
			MergeGap:     0.8,
			MinSegment:   0.2,
			ExpansionPad: 3,
		},
		Watch: WatchConfig{
			Debounce: 5 * time.Second,
		},
	}
}

// applyThreadsDefault sets the local-engine thread count when the user
// left it unset.
func (c *Config) applyThreadsDefault() {
	if c.Engine.Threads == 0 {
		threads := runtime.NumCPU() - 1
		if threads < 1 {
			threads = 1
		}
		c.Engine.Threads = threads
	}
}
