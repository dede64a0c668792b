package config

import "time"

type Config struct {
	Engine      EngineConfig      `toml:"engine"`
	Diarization DiarizationConfig `toml:"diarization"`
	Chunking    ChunkingConfig    `toml:"chunking"`
	FFmpeg      FFmpegConfig      `toml:"ffmpeg"`
	Watch       WatchConfig       `toml:"watch"`
}

// EngineConfig selects the speech recognition collaborator.
type EngineConfig struct {
	Provider string `toml:"provider"` // "whisper-cpp" or "openai"
	Model    string `toml:"model"`    // registry ID (whisper-cpp) or API model (openai)
	APIKey   string `toml:"api_key"`
	Language string `toml:"language"` // ISO-639-1, empty = auto-detect
	Threads  int    `toml:"threads"`  // CPU threads for local engines (0 = auto)
}

// DiarizationConfig points at the external diarization tool.
type DiarizationConfig struct {
	Command   string `toml:"command"` // path to the diarization executable
	ModelsDir string `toml:"models_dir"`
	Speakers  int    `toml:"speakers"` // expected speaker count hint, 0 = auto
}

// ChunkingConfig holds the windowing and merge parameters, in seconds.
type ChunkingConfig struct {
	Duration     float64 `toml:"duration"`
	Overlap      float64 `toml:"overlap"`
	MergeGap     float64 `toml:"merge_gap"`
	MinSegment   float64 `toml:"min_segment"`
	ExpansionPad float64 `toml:"expansion_pad"`
}

type FFmpegConfig struct {
	Path string `toml:"path"` // empty = discover
}

type WatchConfig struct {
	Folders    []string      `toml:"folders"`
	Extensions []string      `toml:"extensions"`
	Debounce   time.Duration `toml:"debounce"`
}
