// Package fs provides file-based storage for downloaded documents.
package fs

import (
	"context"
	"net/url"
	"os"
	"time"

	"github.com/fwojciec/htmlwords"
)

// Ensure Downloader implements htmlwords.Downloader at compile time.
var _ htmlwords.Downloader = (*Downloader)(nil)

// Downloader fetches documents and stores them on disk.
// Content is written to a temporary file next to the target and renamed
// over it, so an existing document is only replaced by a complete one.
type Downloader struct {
	fetcher htmlwords.Fetcher
	delays  []time.Duration
}

// Option configures a Downloader.
type Option func(*Downloader)

// WithRetryDelays retries a failed fetch once per delay, waiting that long
// before each attempt. By default a fetch is attempted once.
func WithRetryDelays(delays ...time.Duration) Option {
	return func(d *Downloader) {
		d.delays = delays
	}
}

// BackoffDelays returns n exponentially growing delays starting at 1s.
func BackoffDelays(n int) []time.Duration {
	delays := make([]time.Duration, n)
	for i := range delays {
		delays[i] = time.Second << i
	}
	return delays
}

// NewDownloader creates a new Downloader that retrieves content with fetcher.
func NewDownloader(fetcher htmlwords.Fetcher, opts ...Option) *Downloader {
	d := &Downloader{fetcher: fetcher}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Download fetches rawURL and writes the content to path.
func (d *Downloader) Download(ctx context.Context, rawURL, path string) (int64, error) {
	if path == "" {
		return 0, htmlwords.Errorf(htmlwords.EMALFORMED, "output path required")
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return 0, htmlwords.Errorf(htmlwords.EIO, "malformed URL %q", rawURL)
	}

	html, err := d.fetch(ctx, rawURL)
	if err != nil {
		if htmlwords.ErrorCode(err) == htmlwords.EINTERNAL {
			return 0, htmlwords.Errorf(htmlwords.EIO, "fetch %s: %v", rawURL, err)
		}
		return 0, err
	}

	if err := writeFile(path, []byte(html)); err != nil {
		return 0, htmlwords.Errorf(htmlwords.EIO, "write %s: %v", path, err)
	}

	return int64(len(html)), nil
}

// fetch attempts the download once plus once per retry delay.
func (d *Downloader) fetch(ctx context.Context, rawURL string) (string, error) {
	html, err := d.fetcher.Fetch(ctx, rawURL)
	for _, delay := range d.delays {
		if err == nil {
			break
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(delay):
		}
		html, err = d.fetcher.Fetch(ctx, rawURL)
	}
	return html, err
}

func tempPath(path string) string {
	return path + ".tmp"
}

// writeFile replaces path with data, leaving no temporary file behind.
// The parent directory must already exist.
func writeFile(path string, data []byte) error {
	tmp := tempPath(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}

	return nil
}
