package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Engine.Provider != "whisper-cpp" || cfg.Engine.Model != "base" {
		t.Errorf("engine defaults: %+v", cfg.Engine)
	}
	ch := cfg.Chunking
	if ch.Duration != 20 || ch.Overlap != 4 || ch.MergeGap != 0.8 ||
		ch.MinSegment != 0.2 || ch.ExpansionPad != 3 {
		t.Errorf("chunking defaults: %+v", ch)
	}
	if cfg.Watch.Debounce != 5*time.Second {
		t.Errorf("watch debounce default: %v", cfg.Watch.Debounce)
	}
}

func TestApplyThreadsDefault(t *testing.T) {
	cfg := Default()
	cfg.applyThreadsDefault()
	if cfg.Engine.Threads < 1 {
		t.Errorf("threads %d, want >= 1", cfg.Engine.Threads)
	}

	cfg.Engine.Threads = 3
	cfg.applyThreadsDefault()
	if cfg.Engine.Threads != 3 {
		t.Errorf("explicit thread count overwritten: %d", cfg.Engine.Threads)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero overlap is valid", func(c *Config) { c.Chunking.Overlap = 0 }, false},
		{"unknown provider", func(c *Config) { c.Engine.Provider = "siri" }, true},
		{"openai without key", func(c *Config) { c.Engine.Provider = "openai"; c.Engine.Model = "whisper-1" }, true},
		{"openai with key", func(c *Config) {
			c.Engine.Provider = "openai"
			c.Engine.Model = "whisper-1"
			c.Engine.APIKey = "sk-test"
		}, false},
		{"empty model", func(c *Config) { c.Engine.Model = "" }, true},
		{"zero duration", func(c *Config) { c.Chunking.Duration = 0 }, true},
		{"negative overlap", func(c *Config) { c.Chunking.Overlap = -1 }, true},
		{"overlap equals duration", func(c *Config) { c.Chunking.Overlap = c.Chunking.Duration }, true},
		{"zero merge gap", func(c *Config) { c.Chunking.MergeGap = 0 }, true},
		{"zero min segment", func(c *Config) { c.Chunking.MinSegment = 0 }, true},
		{"negative expansion pad", func(c *Config) { c.Chunking.ExpansionPad = -1 }, true},
		{"zero expansion pad is valid", func(c *Config) { c.Chunking.ExpansionPad = 0 }, false},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("OPENAI_API_KEY", "")
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr && err == nil {
				t.Error("want error, got nil")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestResolveAPIKey(t *testing.T) {
	cfg := Default()
	cfg.Engine.Provider = "openai"

	t.Setenv("OPENAI_API_KEY", "sk-env")
	if got := cfg.ResolveAPIKey(); got != "sk-env" {
		t.Errorf("env key not resolved: %q", got)
	}

	cfg.Engine.APIKey = "sk-config"
	if got := cfg.ResolveAPIKey(); got != "sk-config" {
		t.Errorf("config key not preferred: %q", got)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Provider != "whisper-cpp" {
		t.Errorf("provider %q, want default", cfg.Engine.Provider)
	}
	if cfg.Engine.Threads < 1 {
		t.Errorf("threads %d, want >= 1", cfg.Engine.Threads)
	}
}

func TestLoadLayersOverDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	// only some keys defined: the rest must keep defaults, and a defined
	// zero must not be overwritten
	content := `
[engine]
model = "small"

[chunking]
duration = 30.0
overlap = 0.0
`
	cfgDir := filepath.Join(dir, "traart")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(cfgDir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Engine.Model != "small" {
		t.Errorf("model %q, want small", cfg.Engine.Model)
	}
	if cfg.Engine.Provider != "whisper-cpp" {
		t.Errorf("provider %q, default lost", cfg.Engine.Provider)
	}
	if cfg.Chunking.Duration != 30 {
		t.Errorf("duration %v, want 30", cfg.Chunking.Duration)
	}
	if cfg.Chunking.Overlap != 0 {
		t.Errorf("explicit zero overlap overwritten: %v", cfg.Chunking.Overlap)
	}
	if cfg.Chunking.MergeGap != 0.8 {
		t.Errorf("merge gap %v, default lost", cfg.Chunking.MergeGap)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Engine.Model = "medium"
	cfg.Engine.Language = "ru"
	cfg.Diarization.Command = "/usr/local/bin/diarize"
	cfg.Diarization.Speakers = 2
	cfg.Chunking.Duration = 25

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.Engine.Model != "medium" || got.Engine.Language != "ru" {
		t.Errorf("engine: %+v", got.Engine)
	}
	if got.Diarization.Command != "/usr/local/bin/diarize" || got.Diarization.Speakers != 2 {
		t.Errorf("diarization: %+v", got.Diarization)
	}
	if got.Chunking.Duration != 25 {
		t.Errorf("duration %v, want 25", got.Chunking.Duration)
	}
}
