// Package models manages the locally cached whisper.cpp model files the
// local ASR engine runs on: a registry of known models plus a checksum-
// verified, retrying downloader.
package models

import (
	"fmt"
	"os"
	"path/filepath"
)

// Asset is one downloadable model file.
type Asset struct {
	ID           string // model identifier (e.g. "base.en")
	Name         string // display name
	Filename     string
	SHA1         string // expected checksum, as published upstream
	Size         string // human readable, for listings
	SizeBytes    int64  // expected size, progress fallback
	Multilingual bool
}

// models hosted at huggingface.co/ggerganov/whisper.cpp; checksums are
// the sha1 sums published in the whisper.cpp models README
const baseDownloadURL = "https://huggingface.co/ggerganov/whisper.cpp/resolve/main"

var assets = []Asset{
	// english-only models (faster, smaller)
	{ID: "tiny.en", Name: "Tiny English", Filename: "ggml-tiny.en.bin", SHA1: "c78c86eb1a8faa21b369bcd33207cc90d64ae9df", Size: "75MB", SizeBytes: 75_000_000},
	{ID: "base.en", Name: "Base English", Filename: "ggml-base.en.bin", SHA1: "137c40403d78fd54d454da0f9bd998f78703390c", Size: "142MB", SizeBytes: 142_000_000},
	{ID: "small.en", Name: "Small English", Filename: "ggml-small.en.bin", SHA1: "db8a495a91d927739e50b3fc1cc4c6b8f6c2d022", Size: "466MB", SizeBytes: 466_000_000},
	{ID: "medium.en", Name: "Medium English", Filename: "ggml-medium.en.bin", SHA1: "8c30f0e44ce9560643ebd10bbe50cd20eafd3723", Size: "1.5GB", SizeBytes: 1_500_000_000},

	// multilingual models
	{ID: "tiny", Name: "Tiny", Filename: "ggml-tiny.bin", SHA1: "bd577a113a864445d4c299885e0cb97d4ba92b5f", Size: "75MB", SizeBytes: 75_000_000, Multilingual: true},
	{ID: "base", Name: "Base", Filename: "ggml-base.bin", SHA1: "465707469ff3a37a2b9b8d8f89f2f99de7299dac", Size: "142MB", SizeBytes: 142_000_000, Multilingual: true},
	{ID: "small", Name: "Small", Filename: "ggml-small.bin", SHA1: "55356645c2b361a969dfd0ef2c5a50d530afd8d5", Size: "466MB", SizeBytes: 466_000_000, Multilingual: true},
	{ID: "medium", Name: "Medium", Filename: "ggml-medium.bin", SHA1: "fd9727b6e1217c2f614f9b698455c4ffd82463b4", Size: "1.5GB", SizeBytes: 1_500_000_000, Multilingual: true},
	{ID: "large-v3", Name: "Large V3", Filename: "ggml-large-v3.bin", SHA1: "ad82bf6a9043ceed055076d0fd39f5f186ff8062", Size: "3GB", SizeBytes: 3_000_000_000, Multilingual: true},
}

var assetByID = func() map[string]Asset {
	m := make(map[string]Asset, len(assets))
	for _, a := range assets {
		m[a.ID] = a
	}
	return m
}()

// Dir returns the directory where model files are cached.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "share", "traart", "models", "whisper"), nil
}

// Get returns the asset with the given ID, or nil when unknown.
func Get(id string) *Asset {
	a, ok := assetByID[id]
	if !ok {
		return nil
	}
	return &a
}

// List returns all known assets.
func List() []Asset {
	out := make([]Asset, len(assets))
	copy(out, assets)
	return out
}

// DownloadURL returns the asset's download URL, empty when unknown.
func DownloadURL(id string) string {
	a := Get(id)
	if a == nil {
		return ""
	}
	return baseDownloadURL + "/" + a.Filename
}

// Path returns the full cache path for an asset, empty when unknown.
func Path(id string) string {
	a := Get(id)
	if a == nil {
		return ""
	}
	dir, err := Dir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, a.Filename)
}

// IsInstalled reports whether the asset exists locally and is non-empty.
func IsInstalled(id string) bool {
	path := Path(id)
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Size() > 0
}

// InstalledPath returns the path to an installed asset, or an error when
// it has not been downloaded yet.
func InstalledPath(id string) (string, error) {
	if !IsInstalled(id) {
		return "", fmt.Errorf("model not installed: %s (run: transcribe model download %s)", id, id)
	}
	return Path(id), nil
}

// ListInstalled returns the IDs of all locally available assets.
func ListInstalled() []string {
	var installed []string
	for _, a := range assets {
		if IsInstalled(a.ID) {
			installed = append(installed, a.ID)
		}
	}
	return installed
}

// Remove deletes a cached asset.
func Remove(id string) error {
	if Get(id) == nil {
		return &DownloadError{Asset: id, Err: errUnknownAsset}
	}
	if !IsInstalled(id) {
		return fmt.Errorf("model not installed: %s", id)
	}
	return os.Remove(Path(id))
}
