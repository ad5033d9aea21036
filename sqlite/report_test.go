package sqlite_test

import (
	"context"
	"testing"

	"github.com/fwojciec/htmlwords"
	"github.com/fwojciec/htmlwords/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createReport(t *testing.T, svc *sqlite.ReportService, source string, words htmlwords.Distribution) *htmlwords.Report {
	t.Helper()
	report := htmlwords.NewReport(source, "/tmp/page.html", words)
	require.NoError(t, svc.CreateReport(context.Background(), report))
	return report
}

func TestReportService_CreateReport(t *testing.T) {
	t.Parallel()

	t.Run("creates report with generated ID, timestamp and hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		report := createReport(t, svc, "https://example.com", htmlwords.Distribution{"a": 2, "b": 1})

		assert.NotEmpty(t, report.ID, "ID should be generated")
		assert.False(t, report.ScannedAt.IsZero(), "ScannedAt should be set")
		assert.Len(t, report.ContentHash, 16)
		assert.Equal(t, 3, report.Total)
		assert.Equal(t, 2, report.Distinct)
	})

	t.Run("records empty distributions", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()

		report := createReport(t, svc, "page.html", htmlwords.Distribution{})

		found, err := svc.FindReportByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Empty(t, found.Words)
		assert.Equal(t, 0, found.Total)
	})

	t.Run("identical distributions share a content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		first := createReport(t, svc, "one.html", htmlwords.Distribution{"x": 1, "y": 3})
		second := createReport(t, svc, "two.html", htmlwords.Distribution{"y": 3, "x": 1})
		third := createReport(t, svc, "three.html", htmlwords.Distribution{"x": 2})

		assert.Equal(t, first.ContentHash, second.ContentHash)
		assert.NotEqual(t, first.ContentHash, third.ContentHash)
		assert.NotEqual(t, first.ID, second.ID)
	})

	t.Run("returns error for invalid report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		err := svc.CreateReport(context.Background(), &htmlwords.Report{})
		require.Error(t, err)
		assert.Equal(t, htmlwords.EINVALID, htmlwords.ErrorCode(err))
	})
}

func TestReportService_FindReportByID(t *testing.T) {
	t.Parallel()

	t.Run("returns report with its words", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()
		words := htmlwords.Distribution{"Zażółć": 1, "gęślą": 2, "jaźń": 3}

		created := createReport(t, svc, "https://example.com/pl", words)

		found, err := svc.FindReportByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, created.ID, found.ID)
		assert.Equal(t, "https://example.com/pl", found.Source)
		assert.Equal(t, "/tmp/page.html", found.Path)
		assert.Equal(t, 6, found.Total)
		assert.Equal(t, 3, found.Distinct)
		assert.Equal(t, created.ContentHash, found.ContentHash)
		assert.Equal(t, words, found.Words)
		assert.True(t, created.ScannedAt.Equal(found.ScannedAt))
	})

	t.Run("keeps the document title", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()

		report := htmlwords.NewReport("https://example.com", "page.html", htmlwords.Distribution{"a": 1})
		report.Title = "Example Domain"
		require.NoError(t, svc.CreateReport(ctx, report))

		found, err := svc.FindReportByID(ctx, report.ID)
		require.NoError(t, err)
		assert.Equal(t, "Example Domain", found.Title)
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		_, err := svc.FindReportByID(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, htmlwords.ENOTFOUND, htmlwords.ErrorCode(err))
	})
}

func TestReportService_FindReports(t *testing.T) {
	t.Parallel()

	t.Run("returns reports newest first without words", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		first := createReport(t, svc, "a.html", htmlwords.Distribution{"a": 1})
		second := createReport(t, svc, "b.html", htmlwords.Distribution{"b": 1})
		third := createReport(t, svc, "c.html", htmlwords.Distribution{"c": 1})

		reports, err := svc.FindReports(context.Background(), htmlwords.ReportFilter{})
		require.NoError(t, err)
		require.Len(t, reports, 3)
		assert.Equal(t, third.ID, reports[0].ID)
		assert.Equal(t, second.ID, reports[1].ID)
		assert.Equal(t, first.ID, reports[2].ID)
		assert.Nil(t, reports[0].Words)
	})

	t.Run("filters by source", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		source := "https://example.com"

		want := createReport(t, svc, source, htmlwords.Distribution{"a": 1})
		createReport(t, svc, "other.html", htmlwords.Distribution{"a": 1})

		reports, err := svc.FindReports(context.Background(), htmlwords.ReportFilter{Source: &source})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, want.ID, reports[0].ID)
	})

	t.Run("filters by source and content hash", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		source := "https://example.com"

		first := createReport(t, svc, source, htmlwords.Distribution{"a": 1})
		createReport(t, svc, source, htmlwords.Distribution{"b": 1})
		createReport(t, svc, "other.html", htmlwords.Distribution{"a": 1})
		latest := createReport(t, svc, source, htmlwords.Distribution{"a": 1})

		reports, err := svc.FindReports(context.Background(), htmlwords.ReportFilter{
			Source:      &source,
			ContentHash: &first.ContentHash,
		})
		require.NoError(t, err)
		require.Len(t, reports, 2)
		assert.Equal(t, latest.ID, reports[0].ID)
		assert.Equal(t, first.ID, reports[1].ID)
	})

	t.Run("filters by ID", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		createReport(t, svc, "a.html", htmlwords.Distribution{"a": 1})
		want := createReport(t, svc, "b.html", htmlwords.Distribution{"b": 1})

		reports, err := svc.FindReports(context.Background(), htmlwords.ReportFilter{ID: &want.ID})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "b.html", reports[0].Source)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))
		ctx := context.Background()

		createReport(t, svc, "a.html", htmlwords.Distribution{"a": 1})
		second := createReport(t, svc, "b.html", htmlwords.Distribution{"b": 1})
		third := createReport(t, svc, "c.html", htmlwords.Distribution{"c": 1})

		reports, err := svc.FindReports(ctx, htmlwords.ReportFilter{Limit: 1})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, third.ID, reports[0].ID)

		reports, err = svc.FindReports(ctx, htmlwords.ReportFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, second.ID, reports[0].ID)

		reports, err = svc.FindReports(ctx, htmlwords.ReportFilter{Offset: 2})
		require.NoError(t, err)
		require.Len(t, reports, 1)
		assert.Equal(t, "a.html", reports[0].Source)
	})

	t.Run("returns empty result for empty database", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		reports, err := svc.FindReports(context.Background(), htmlwords.ReportFilter{})
		require.NoError(t, err)
		assert.Empty(t, reports)
	})
}

func TestReportService_DeleteReport(t *testing.T) {
	t.Parallel()

	t.Run("removes report and its words", func(t *testing.T) {
		t.Parallel()

		db := setupTestDB(t)
		svc := sqlite.NewReportService(db)
		ctx := context.Background()

		report := createReport(t, svc, "a.html", htmlwords.Distribution{"a": 1, "b": 2})

		require.NoError(t, svc.DeleteReport(ctx, report.ID))

		_, err := svc.FindReportByID(ctx, report.ID)
		assert.Equal(t, htmlwords.ENOTFOUND, htmlwords.ErrorCode(err))

		var words int
		err = db.QueryRowContext(ctx, "SELECT COUNT(*) FROM report_words WHERE report_id = ?", report.ID).Scan(&words)
		require.NoError(t, err)
		assert.Zero(t, words)
	})

	t.Run("returns ENOTFOUND for missing report", func(t *testing.T) {
		t.Parallel()

		svc := sqlite.NewReportService(setupTestDB(t))

		err := svc.DeleteReport(context.Background(), "missing")
		require.Error(t, err)
		assert.Equal(t, htmlwords.ENOTFOUND, htmlwords.ErrorCode(err))
	})
}
