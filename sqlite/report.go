package sqlite

import (
	"context"
	"strings"
	"time"

	"github.com/fwojciec/htmlwords"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ htmlwords.ReportService = (*ReportService)(nil)

// ReportService implements htmlwords.ReportService using SQLite.
type ReportService struct {
	db *DB
}

// NewReportService creates a new ReportService.
func NewReportService(db *DB) *ReportService {
	return &ReportService{db: db}
}

// CreateReport records a report and its words in a single transaction.
func (s *ReportService) CreateReport(ctx context.Context, report *htmlwords.Report) error {
	if err := report.Validate(); err != nil {
		return err
	}

	report.ID = uuid.New().String()
	report.ScannedAt = time.Now().UTC().Truncate(time.Second)
	report.Total = report.Words.Total()
	report.Distinct = len(report.Words)
	report.ContentHash = hashContent(htmlwords.FormatDistribution(report.Words))

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO reports (id, source, path, title, total, distinct_words, content_hash, scanned_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, report.ID, report.Source, report.Path, report.Title, report.Total, report.Distinct, report.ContentHash,
		report.ScannedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO report_words (report_id, word, occurrences)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for word, n := range report.Words {
		if _, err := stmt.ExecContext(ctx, report.ID, word, n); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// FindReportByID retrieves a report by ID together with its words.
func (s *ReportService) FindReportByID(ctx context.Context, id string) (*htmlwords.Report, error) {
	reports, err := s.FindReports(ctx, htmlwords.ReportFilter{ID: &id, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, htmlwords.Errorf(htmlwords.ENOTFOUND, "report %q not found", id)
	}

	report := reports[0]
	if report.Words, err = s.findWords(ctx, id); err != nil {
		return nil, err
	}
	return report, nil
}

// FindReports retrieves reports matching the filter, newest first.
func (s *ReportService) FindReports(ctx context.Context, filter htmlwords.ReportFilter) ([]*htmlwords.Report, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, source, path, title, total, distinct_words, content_hash, scanned_at FROM reports WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY scanned_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []*htmlwords.Report
	for rows.Next() {
		var r htmlwords.Report
		var scannedAt string

		if err := rows.Scan(&r.ID, &r.Source, &r.Path, &r.Title, &r.Total, &r.Distinct,
			&r.ContentHash, &scannedAt); err != nil {
			return nil, err
		}

		if r.ScannedAt, err = parseRFC3339(scannedAt, "scanned_at"); err != nil {
			return nil, err
		}

		reports = append(reports, &r)
	}

	return reports, rows.Err()
}

// DeleteReport permanently removes a report and its words.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM reports WHERE id = ?", id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return htmlwords.Errorf(htmlwords.ENOTFOUND, "report %q not found", id)
	}

	return nil
}

func (s *ReportService) findWords(ctx context.Context, id string) (htmlwords.Distribution, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT word, occurrences FROM report_words WHERE report_id = ?
	`, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	words := make(htmlwords.Distribution)
	for rows.Next() {
		var word string
		var n int
		if err := rows.Scan(&word, &n); err != nil {
			return nil, err
		}
		words[word] = n
	}
	return words, rows.Err()
}
