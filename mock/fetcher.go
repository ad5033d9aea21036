package mock

import (
	"context"

	"github.com/fwojciec/htmlwords"
)

var _ htmlwords.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of htmlwords.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ htmlwords.Downloader = (*Downloader)(nil)

// Downloader is a mock implementation of htmlwords.Downloader.
type Downloader struct {
	DownloadFn func(ctx context.Context, url, path string) (int64, error)
}

func (d *Downloader) Download(ctx context.Context, url, path string) (int64, error) {
	return d.DownloadFn(ctx, url, path)
}
