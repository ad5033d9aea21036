package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/fwojciec/htmlwords"
	wordshttp "github.com/fwojciec/htmlwords/http"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx        context.Context
	Stdout     io.Writer
	Stderr     io.Writer
	Logger     *slog.Logger
	Opener     htmlwords.Opener
	Downloader htmlwords.Downloader
	Reports    htmlwords.ReportService // nil when history is off
	Titles     htmlwords.TitleExtractor
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Args      []string      `arg:"" optional:"" help:"Either <URL> <path> to download and count, or <path> to count a local file."`
	DB        string        `env:"HTMLWORDS_DB" help:"SQLite database recording every scan (disabled when empty)."`
	History   bool          `help:"List recorded scans instead of scanning."`
	Source    string        `help:"With --history, only list scans of this URL or path."`
	Limit     int           `default:"0" help:"With --history, list at most this many scans (0 lists all)."`
	Offset    int           `default:"0" help:"With --history, skip this many of the newest scans."`
	Show      string        `placeholder:"ID" help:"Print the words recorded by the scan with this ID."`
	Delete    string        `placeholder:"ID" help:"Remove the recorded scan with this ID."`
	Render    bool          `help:"Download through a headless browser so scripts run first."`
	Retries   int           `default:"0" help:"Retry a failed download this many times with exponential backoff."`
	Timeout   time.Duration `default:"10s" help:"Download timeout."`
	UserAgent string        `default:"${user_agent}" help:"User-Agent sent when downloading."`
	Verbose   bool          `short:"v" help:"Log operations to stderr."`
}

// usage is printed when the arguments do not name a document.
const usage = `Usage:
  htmlwords <URL> <path>   download <URL> into <path> and count its words
  htmlwords <path>         count the words of the HTML file at <path>
`

// Scanning reports whether the arguments ask for a scan rather than a
// history operation.
func (c *CLI) Scanning() bool {
	return !c.History && c.Show == "" && c.Delete == ""
}

// Run runs a history operation when one is requested and otherwise
// dispatches on the number of positional arguments.
func (c *CLI) Run(deps *Dependencies) error {
	switch {
	case c.Delete != "":
		return c.runDelete(deps)
	case c.Show != "":
		return c.runShow(deps)
	case c.History:
		return c.runHistory(deps)
	}

	switch len(c.Args) {
	case 0:
		fmt.Fprint(deps.Stdout, usage)
		return nil
	case 1:
		return c.count(deps, c.Args[0], c.Args[0])
	case 2:
		url, path := c.Args[0], c.Args[1]
		if _, err := deps.Downloader.Download(deps.Ctx, url, path); err != nil {
			return err
		}
		return c.count(deps, url, path)
	default:
		fmt.Fprint(deps.Stdout, usage)
		return htmlwords.Errorf(htmlwords.EINVALID, "Unexpected arguments count: %d", len(c.Args))
	}
}

// count scans the document at path and prints its word distribution.
// source names where the document came from in the recorded report.
func (c *CLI) count(deps *Dependencies, source, path string) error {
	s, err := deps.Opener.Open(path)
	if err != nil {
		return err
	}
	defer s.Close()

	dist, err := htmlwords.Count(s)
	if err != nil {
		return err
	}

	fmt.Fprint(deps.Stdout, htmlwords.FormatDistribution(dist))

	if deps.Reports == nil {
		return nil
	}

	report := htmlwords.NewReport(source, path, dist)
	report.Title = c.title(deps, path)
	if err := deps.Reports.CreateReport(deps.Ctx, report); err != nil {
		return err
	}
	return c.noteUnchanged(deps, report)
}

// noteUnchanged tells the user when the previous scan of the same source
// recorded the same words.
func (c *CLI) noteUnchanged(deps *Dependencies, report *htmlwords.Report) error {
	if report.ContentHash == "" {
		return nil
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, htmlwords.ReportFilter{
		Source:      &report.Source,
		ContentHash: &report.ContentHash,
		Limit:       2,
	})
	if err != nil {
		return err
	}

	for _, r := range reports {
		if r.ID != report.ID {
			fmt.Fprintf(deps.Stderr, "note: words unchanged since scan %s at %s\n",
				r.ID, r.ScannedAt.Format(time.DateTime))
			return nil
		}
	}
	return nil
}

// title reads the document title for the history. A document that cannot be
// read again is recorded without one.
func (c *CLI) title(deps *Dependencies, path string) string {
	if deps.Titles == nil {
		return ""
	}
	b, err := os.ReadFile(path)
	if err != nil {
		deps.Logger.Warn("read title", "path", path, "err", err)
		return ""
	}
	return deps.Titles.Title(string(b))
}

func (c *CLI) runHistory(deps *Dependencies) error {
	if deps.Reports == nil {
		return htmlwords.Errorf(htmlwords.EINVALID, "--history requires --db or HTMLWORDS_DB")
	}

	filter := htmlwords.ReportFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Source != "" {
		filter.Source = &c.Source
	}

	reports, err := deps.Reports.FindReports(deps.Ctx, filter)
	if err != nil {
		return err
	}

	if len(reports) == 0 {
		fmt.Fprintln(deps.Stdout, "No scans recorded.")
		return nil
	}

	fmt.Fprint(deps.Stdout, htmlwords.FormatReports(reports))
	return nil
}

func (c *CLI) runShow(deps *Dependencies) error {
	if deps.Reports == nil {
		return htmlwords.Errorf(htmlwords.EINVALID, "--show requires --db or HTMLWORDS_DB")
	}

	report, err := deps.Reports.FindReportByID(deps.Ctx, c.Show)
	if err != nil {
		return err
	}

	fmt.Fprint(deps.Stdout, htmlwords.FormatReports([]*htmlwords.Report{report}))
	fmt.Fprint(deps.Stdout, htmlwords.FormatDistribution(report.Words))
	return nil
}

func (c *CLI) runDelete(deps *Dependencies) error {
	if deps.Reports == nil {
		return htmlwords.Errorf(htmlwords.EINVALID, "--delete requires --db or HTMLWORDS_DB")
	}

	if err := deps.Reports.DeleteReport(deps.Ctx, c.Delete); err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted scan %s\n", c.Delete)
	return nil
}

// vars holds the values interpolated into CLI struct tags.
var vars = map[string]string{
	"user_agent": wordshttp.DefaultUserAgent,
}
