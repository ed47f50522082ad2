package services

import (
	"context"
	"fmt"
	"log/slog"

	"moneta/internal/amqp"
	"moneta/internal/core"
	"moneta/internal/reports"
	"moneta/internal/source"
)

// ReportService runs the category spending report: filter, then the explicit
// persistence step, then an optional report event. The artifact is written
// exactly once per call, after the filter and before the result is returned.
type ReportService struct {
	source     source.OperationSource
	writer     *reports.Writer
	amqpClient *amqp.Client
}

func NewReportService(src source.OperationSource, writer *reports.Writer, amqpClient *amqp.Client) *ReportService {
	return &ReportService{
		source:     src,
		writer:     writer,
		amqpClient: amqpClient,
	}
}

// SpendingByCategory filters the table and persists the result as a report
// artifact. fileName may be empty to get a generated name. It returns the
// filtered records and the artifact path.
func (s *ReportService) SpendingByCategory(ctx context.Context, category, referenceDate, fileName string) ([]core.Record, string, error) {
	rows, err := s.source.Load(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("load operations: %w", err)
	}

	filtered, err := core.SpendingByCategory(rows, category, referenceDate)
	if err != nil {
		return nil, "", err
	}
	records := core.Records(filtered)

	path, err := s.writer.Write(records, fileName)
	if err != nil {
		return nil, "", fmt.Errorf("persist report: %w", err)
	}

	s.publishReportEvent(ctx, category, referenceDate, path, len(records))
	return records, path, nil
}

// publishReportEvent is best effort: the report is already on disk, a broker
// outage must not fail the request.
func (s *ReportService) publishReportEvent(ctx context.Context, category, referenceDate, path string, rowCount int) {
	if s.amqpClient == nil {
		slog.DebugContext(ctx, "AMQP client not available, skipping report event")
		return
	}
	msg := amqp.NewReportEventMessage(category, referenceDate, path, rowCount)
	if err := s.amqpClient.PublishReportEvent(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "Failed to publish report event",
			"error", err,
			"category", category,
			"report_path", path)
	}
}
