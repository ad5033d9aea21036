package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/htmlwords"
)

// Ensure LoggingReportService implements htmlwords.ReportService.
var _ htmlwords.ReportService = (*LoggingReportService)(nil)

// LoggingReportService wraps a ReportService with logging of writes.
// Lookups are delegated without logging.
type LoggingReportService struct {
	next   htmlwords.ReportService
	logger *slog.Logger
}

// NewLoggingReportService creates a new LoggingReportService.
func NewLoggingReportService(next htmlwords.ReportService, logger *slog.Logger) *LoggingReportService {
	return &LoggingReportService{next: next, logger: logger}
}

// CreateReport logs the recorded report and delegates to the wrapped service.
func (s *LoggingReportService) CreateReport(ctx context.Context, report *htmlwords.Report) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("record report",
			"id", report.ID,
			"source", report.Source,
			"words", report.Total,
			"distinct", report.Distinct,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateReport(ctx, report)
}

// FindReportByID delegates to the wrapped service.
func (s *LoggingReportService) FindReportByID(ctx context.Context, id string) (*htmlwords.Report, error) {
	return s.next.FindReportByID(ctx, id)
}

// FindReports delegates to the wrapped service.
func (s *LoggingReportService) FindReports(ctx context.Context, filter htmlwords.ReportFilter) ([]*htmlwords.Report, error) {
	return s.next.FindReports(ctx, filter)
}

// DeleteReport logs the removed report and delegates to the wrapped service.
func (s *LoggingReportService) DeleteReport(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete report",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteReport(ctx, id)
}
