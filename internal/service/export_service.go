package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/charusat-labs/attendance-api/internal/models"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
	"github.com/charusat-labs/attendance-api/pkg/export"
)

// ExportFormat selects the rendered download format.
type ExportFormat string

const (
	FormatXLSX ExportFormat = "xlsx"
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
)

// ParseExportFormat normalises the optional format parameter; empty means
// the xlsx contract format.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(raw) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatPDF:
		return FormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", raw))
	}
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

type exportRecordSource interface {
	FindMatching(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// Fixed column order of every export format.
var exportHeaders = []string{
	"Student Name",
	"Enrollment Number",
	"Email",
	"Time Slot",
	"Subject",
	"Faculty",
	"Class",
	"Semester",
	"Date",
	"Attendance Time",
}

// ExportService projects matching records into a spreadsheet download.
type ExportService struct {
	records exportRecordSource
	xlsx    xlsxRenderer
	csv     csvRenderer
	pdf     pdfRenderer
	metrics *MetricsService
	logger  *zap.Logger
}

// NewExportService constructs the service with default renderers for any nil
// exporter.
func NewExportService(records exportRecordSource, metrics *MetricsService, logger *zap.Logger, xlsx xlsxRenderer, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		records: records,
		xlsx:    xlsx,
		csv:     csv,
		pdf:     pdf,
		metrics: metrics,
		logger:  logger,
	}
}

// Generate renders the records matching the filter. An empty match is Not
// Found rather than an empty file.
func (s *ExportService) Generate(ctx context.Context, filter models.AttendanceFilter, format ExportFormat) (*ExportFile, error) {
	records, err := s.records.FindMatching(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}
	if len(records) == 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no attendance records found")
	}

	dataset := buildDataset(records)

	var payload []byte
	var contentType string
	switch format {
	case FormatXLSX:
		payload, err = s.xlsx.Render(dataset)
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case FormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case FormatPDF:
		title := fmt.Sprintf("Attendance %s %s %s", filter.ClassName, filter.Subject, filter.Date)
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	filename := fmt.Sprintf("attendance_%s_%s_%s.%s", filter.ClassName, filter.Subject, filter.Date, format)

	s.metrics.IncExport(string(format))
	s.logger.Info("attendance exported",
		zap.String("filename", filename),
		zap.Int("rows", len(records)),
	)

	return &ExportFile{
		Filename:    filename,
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

func buildDataset(records []models.AttendanceRecord) export.Dataset {
	rows := make([]map[string]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, map[string]string{
			"Student Name":      record.StudentName,
			"Enrollment Number": record.EnrollmentNumber,
			"Email":             record.Email,
			"Time Slot":         record.TimeSlot,
			"Subject":           record.Subject,
			"Faculty":           record.Faculty,
			"Class":             record.ClassName,
			"Semester":          record.Semester,
			"Date":              record.Date,
			"Attendance Time":   record.Timestamp.Format("2006-01-02 15:04:05"),
		})
	}
	return export.Dataset{Headers: exportHeaders, Rows: rows}
}
