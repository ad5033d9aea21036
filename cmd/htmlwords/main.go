package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/htmlwords"
	"github.com/fwojciec/htmlwords/fs"
	"github.com/fwojciec/htmlwords/goquery"
	wordshttp "github.com/fwojciec/htmlwords/http"
	"github.com/fwojciec/htmlwords/rod"
	"github.com/fwojciec/htmlwords/scan"
	wordslog "github.com/fwojciec/htmlwords/slog"
	"github.com/fwojciec/htmlwords/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	// Failures are reported but never turned into a non-zero exit status.
	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		ReportError(os.Stderr, err)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database used by the report history. Nil when history is off.
	DB *sqlite.DB

	// Fetcher overrides the fetcher selected by flags. Used in tests.
	Fetcher htmlwords.Fetcher
}

// NewMain returns a new instance of Main.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("htmlwords"),
		kong.Description("Count the words in the body of an HTML document."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars(vars),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	deps.Logger = newLogger(stderr, cli.Verbose)

	if cli.DB != "" {
		m.DB = sqlite.NewDB(cli.DB)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set HTMLWORDS_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", cli.DB, err)
		}
		defer m.Close()

		deps.Reports = wordslog.NewLoggingReportService(sqlite.NewReportService(m.DB), deps.Logger)
		deps.Titles = goquery.NewTitleExtractor()
	}

	deps.Opener = wordslog.NewLoggingOpener(scan.NewOpener(), deps.Logger)

	// The browser is only started when there is something to download.
	if len(cli.Args) == 2 && cli.Scanning() {
		fetcher, err := m.newFetcher(cli)
		if err != nil {
			return err
		}
		defer fetcher.Close()

		deps.Downloader = wordslog.NewLoggingDownloader(
			fs.NewDownloader(
				wordslog.NewLoggingFetcher(fetcher, deps.Logger),
				fs.WithRetryDelays(fs.BackoffDelays(cli.Retries)...),
			),
			deps.Logger,
		)
	}

	return cli.Run(deps)
}

func (m *Main) newFetcher(cli *CLI) (htmlwords.Fetcher, error) {
	if m.Fetcher != nil {
		return m.Fetcher, nil
	}

	if cli.Render {
		fetcher, err := rod.NewFetcher(
			rod.WithFetchTimeout(cli.Timeout),
			rod.WithUserAgent(cli.UserAgent),
		)
		if err != nil {
			return nil, htmlwords.Errorf(htmlwords.EIO, "failed to start browser (Chrome or Chromium must be installed): %v", err)
		}
		return fetcher, nil
	}

	return wordshttp.NewFetcher(
		wordshttp.WithTimeout(cli.Timeout),
		wordshttp.WithUserAgent(cli.UserAgent),
	), nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, nil))
}

// ReportError writes a one-line diagnostic for err to w, naming the kind of
// failure by its error code.
func ReportError(w io.Writer, err error) {
	msg := htmlwords.ErrorMessage(err)

	switch htmlwords.ErrorCode(err) {
	case htmlwords.EIO:
		fmt.Fprintf(w, "error: I/O failure: %s\n", msg)
	case htmlwords.EMALFORMED:
		fmt.Fprintf(w, "error: malformed input: %s\n", msg)
	case htmlwords.ECLOSED, htmlwords.EEXHAUSTED:
		fmt.Fprintf(w, "error: invalid scanner state: %s\n", msg)
	case htmlwords.EINTERNAL:
		fmt.Fprintf(w, "error: %s\n", err)
	default:
		fmt.Fprintf(w, "error: %s\n", msg)
	}
}
