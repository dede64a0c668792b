package models

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"
)

const (
	maxAttempts    = 10
	attemptTimeout = time.Hour
	maxRetryDelay  = 30 * time.Second
)

var errUnknownAsset = errors.New("unknown model asset")

// DownloadError marks a model download that failed after all retries or
// produced a corrupt file. It is fatal only for the collaborator that
// needs the model.
type DownloadError struct {
	Asset string
	Err   error
}

func (e *DownloadError) Error() string {
	return fmt.Sprintf("download %s: %v", e.Asset, e.Err)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// ProgressFunc is called during download with bytes fetched and total.
// When the server does not report a length, total falls back to the
// asset's expected size.
type ProgressFunc func(downloaded, total int64)

// RetryDelay returns the backoff before the next attempt: linear in the
// attempt number, capped at 30 seconds.
func RetryDelay(attempt int) time.Duration {
	d := time.Duration(attempt) * 5 * time.Second
	if d > maxRetryDelay {
		d = maxRetryDelay
	}
	return d
}

// Download fetches one asset into the cache directory, retrying up to 10
// times with capped linear backoff and a 1-hour ceiling per attempt. The
// checksum is verified before the file is moved into place.
func Download(ctx context.Context, id string, onProgress ProgressFunc) error {
	asset := Get(id)
	if asset == nil {
		return &DownloadError{Asset: id, Err: errUnknownAsset}
	}

	if IsInstalled(id) && verifyChecksum(Path(id), asset.SHA1) == nil {
		return nil
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		lastErr = downloadOnce(ctx, asset, onProgress)
		if lastErr == nil {
			return nil
		}
		if ctx.Err() != nil {
			return &DownloadError{Asset: id, Err: ctx.Err()}
		}
		if attempt < maxAttempts {
			delay := RetryDelay(attempt)
			log.Printf("models: download %s failed (attempt %d/%d), retrying in %v: %v",
				id, attempt, maxAttempts, delay, lastErr)
			select {
			case <-ctx.Done():
				return &DownloadError{Asset: id, Err: ctx.Err()}
			case <-time.After(delay):
			}
		}
	}
	return &DownloadError{Asset: id, Err: lastErr}
}

// DownloadAll fetches every missing asset.
func DownloadAll(ctx context.Context, onProgress ProgressFunc) error {
	for _, a := range assets {
		if err := Download(ctx, a.ID, onProgress); err != nil {
			return err
		}
	}
	return nil
}

func downloadOnce(ctx context.Context, asset *Asset, onProgress ProgressFunc) error {
	dir, err := Dir()
	if err != nil {
		return fmt.Errorf("models directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create models directory: %w", err)
	}

	destPath := filepath.Join(dir, asset.Filename)
	tempPath := destPath + ".downloading"

	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		out.Close()
		os.Remove(tempPath)
	}()

	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, DownloadURL(asset.ID), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch: status %s", resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = asset.SizeBytes
	}
	var downloaded int64
	buf := make([]byte, 64*1024)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		n, err := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return fmt.Errorf("write: %w", writeErr)
			}
			downloaded += int64(n)
			if onProgress != nil {
				onProgress(downloaded, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := verifyChecksum(tempPath, asset.SHA1); err != nil {
		return err
	}
	if err := os.Rename(tempPath, destPath); err != nil {
		return fmt.Errorf("finalize: %w", err)
	}
	return nil
}

func verifyChecksum(path, expected string) error {
	if expected == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	h := sha1.New()
	if _, err := io.Copy(h, f); err != nil {
		return err
	}
	actual := hex.EncodeToString(h.Sum(nil))
	if actual != expected {
		return fmt.Errorf("checksum mismatch: expected %s, got %s", expected, actual)
	}
	return nil
}
