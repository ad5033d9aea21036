package htmlwords

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Report is a recorded word distribution of one scanned document.
type Report struct {
	ID          string       `json:"id"`
	Source      string       `json:"source"` // URL or local path the document came from
	Path        string       `json:"path"`
	Title       string       `json:"title"`
	Total       int          `json:"total"`
	Distinct    int          `json:"distinct"`
	ContentHash string       `json:"contentHash"`
	Words       Distribution `json:"words"`
	ScannedAt   time.Time    `json:"scannedAt"`
}

// NewReport builds a report for the distribution scanned from path.
// Source is the URL the document was downloaded from, or path itself.
func NewReport(source, path string, dist Distribution) *Report {
	return &Report{
		Source:   source,
		Path:     path,
		Total:    dist.Total(),
		Distinct: len(dist),
		Words:    dist,
	}
}

// Validate returns an error if the report contains invalid fields.
func (r *Report) Validate() error {
	if r.Source == "" {
		return Errorf(EINVALID, "report source required")
	}
	if r.Path == "" {
		return Errorf(EINVALID, "report path required")
	}
	if r.Words == nil {
		return Errorf(EINVALID, "report words required")
	}
	return nil
}

// ReportService represents a service for managing recorded reports.
type ReportService interface {
	// CreateReport records a new report.
	CreateReport(ctx context.Context, report *Report) error

	// FindReportByID retrieves a report by ID, including its words.
	// Returns ENOTFOUND if report does not exist.
	FindReportByID(ctx context.Context, id string) (*Report, error)

	// FindReports retrieves reports matching the filter, newest first.
	// Words are not loaded.
	FindReports(ctx context.Context, filter ReportFilter) ([]*Report, error)

	// DeleteReport permanently removes a report and its words.
	// Returns ENOTFOUND if report does not exist.
	DeleteReport(ctx context.Context, id string) error
}

// ReportFilter represents a filter for FindReports.
type ReportFilter struct {
	ID          *string `json:"id"`
	Source      *string `json:"source"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// TitleExtractor reads the title of an HTML document.
type TitleExtractor interface {
	// Title returns the document title, or "" if it has none.
	Title(html string) string
}

// FormatReports renders one summary line per report.
func FormatReports(reports []*Report) string {
	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%s  %s  %s  words=%d distinct=%d",
			r.ScannedAt.Format(time.DateTime), r.ID, r.Source, r.Total, r.Distinct)
		if r.Title != "" {
			fmt.Fprintf(&b, "  %q", r.Title)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
