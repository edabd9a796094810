package warehouse

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/simbuah/go-api-http-client/httpclient"
	"go.uber.org/zap"
)

var (
	ErrDateRangeRequired = errors.New("start and end date are required")
	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// exportExtensions maps an export format to the extension of the default filename.
var exportExtensions = map[string]string{
	FormatPDF:   "pdf",
	FormatExcel: "xlsx",
	FormatCSV:   "csv",
}

// BatchStock returns the remaining stock of every batch.
func (s *Service) BatchStock(ctx context.Context) ([]Batch, error) {
	return list[Batch](ctx, s, BatchStockEndpoint, nil)
}

// FIFOMonitor returns the batches in the order they should leave the warehouse.
func (s *Service) FIFOMonitor(ctx context.Context) ([]FIFOBatch, error) {
	return list[FIFOBatch](ctx, s, FIFOMonitorEndpoint, nil)
}

// SalesReport returns daily sales totals between start and end, inclusive.
func (s *Service) SalesReport(ctx context.Context, start, end time.Time) ([]SalesReportRow, error) {
	query, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}
	return list[SalesReportRow](ctx, s, SalesReportEndpoint, query)
}

// TransactionReport returns inbound and outbound transactions between start and end.
func (s *Service) TransactionReport(ctx context.Context, start, end time.Time) ([]TransactionReportRow, error) {
	query, err := dateRange(start, end)
	if err != nil {
		return nil, err
	}
	return list[TransactionReportRow](ctx, s, TxReportEndpoint, query)
}

// ExportReport downloads reportType in format to w and returns the file name: the one
// in Content-Disposition when the server sends it, Laporan_<type>_<start>_<end>.<ext>
// otherwise.
func (s *Service) ExportReport(ctx context.Context, reportType, format string, start, end time.Time, w io.Writer) (string, error) {
	ext, ok := exportExtensions[format]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	query, err := dateRange(start, end)
	if err != nil {
		return "", err
	}
	query.Set("format", format)

	resp, err := s.client.Download(ctx, ExportReportEndpoint+url.PathEscape(reportType), &httpclient.RequestOptions{Query: query}, w)
	if err != nil {
		return "", fmt.Errorf("exporting %s report: %w", reportType, err)
	}

	filename, ok := resp.Filename()
	if !ok {
		filename = fmt.Sprintf("Laporan_%s_%s_%s.%s", reportType, query.Get("start_date"), query.Get("end_date"), ext)
	}

	s.log.Info("Report exported",
		zap.String("report", reportType),
		zap.String("format", format),
		zap.String("filename", filename),
		zap.Int("bytes", len(resp.Body)),
	)
	return filename, nil
}

func dateRange(start, end time.Time) (url.Values, error) {
	if start.IsZero() || end.IsZero() {
		return nil, ErrDateRangeRequired
	}
	return url.Values{
		"start_date": []string{start.Format(ReportDateLayout)},
		"end_date":   []string{end.Format(ReportDateLayout)},
	}, nil
}
