package mock

import (
	"context"

	"github.com/fwojciec/htmlwords"
)

var _ htmlwords.ReportService = (*ReportService)(nil)

// ReportService is a mock implementation of htmlwords.ReportService.
type ReportService struct {
	CreateReportFn   func(ctx context.Context, report *htmlwords.Report) error
	FindReportByIDFn func(ctx context.Context, id string) (*htmlwords.Report, error)
	FindReportsFn    func(ctx context.Context, filter htmlwords.ReportFilter) ([]*htmlwords.Report, error)
	DeleteReportFn   func(ctx context.Context, id string) error
}

func (s *ReportService) CreateReport(ctx context.Context, report *htmlwords.Report) error {
	return s.CreateReportFn(ctx, report)
}

func (s *ReportService) FindReportByID(ctx context.Context, id string) (*htmlwords.Report, error) {
	return s.FindReportByIDFn(ctx, id)
}

func (s *ReportService) FindReports(ctx context.Context, filter htmlwords.ReportFilter) ([]*htmlwords.Report, error) {
	return s.FindReportsFn(ctx, filter)
}

func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.DeleteReportFn(ctx, id)
}

var _ htmlwords.TitleExtractor = (*TitleExtractor)(nil)

// TitleExtractor is a mock implementation of htmlwords.TitleExtractor.
type TitleExtractor struct {
	TitleFn func(html string) string
}

func (e *TitleExtractor) Title(html string) string {
	return e.TitleFn(html)
}
