package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Path returns the config file location, creating the directory.
func Path() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config directory: %w", err)
	}
	dir := filepath.Join(configDir, "traart")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create config directory: %w", err)
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Load reads the config file, layering it over the defaults. A missing
// file is not an error: the defaults are returned so the CLI works out
// of the box.
func Load() (*Config, error) {
	path, err := Path()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg.applyThreadsDefault()
		return cfg, nil
	} else if err != nil {
		return nil, fmt.Errorf("stat config file %s: %w", path, err)
	}

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.applyThreadsDefault()

	log.Printf("config: loaded %s", path)
	return cfg, nil
}

// Save writes the config file.
func Save(cfg *Config) error {
	path, err := Path()
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}
