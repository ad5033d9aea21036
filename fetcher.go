package htmlwords

import "context"

// Fetcher retrieves HTML from URLs.
// Implementations may use browser automation to handle JavaScript-rendered content.
type Fetcher interface {
	// Fetch retrieves the HTML served at url.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	// Must be called when the Fetcher is no longer needed.
	Close() error
}

// Downloader stores remote HTML documents on local storage.
type Downloader interface {
	// Download fetches url and writes the content to path, replacing any
	// existing file. Returns the number of bytes written.
	// Returns EIO on malformed URLs, connection or write failures.
	Download(ctx context.Context, url, path string) (n int64, err error)
}
