package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charusat-labs/attendance-api/internal/models"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
	"github.com/charusat-labs/attendance-api/pkg/export"
)

type exportSourceStub struct {
	records []models.AttendanceRecord
}

func (s exportSourceStub) FindMatching(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	return s.records, nil
}

type datasetRendererStub struct {
	dataset export.Dataset
	title   string
	called  bool
}

func (r *datasetRendererStub) Render(data export.Dataset) ([]byte, error) {
	r.called = true
	r.dataset = data
	return []byte("rendered"), nil
}

func (r *datasetRendererStub) RenderTitled(data export.Dataset, title string) ([]byte, error) {
	r.called = true
	r.dataset = data
	r.title = title
	return []byte("rendered"), nil
}

type pdfRendererStub struct{ inner datasetRendererStub }

func (r *pdfRendererStub) Render(data export.Dataset, title string) ([]byte, error) {
	return r.inner.RenderTitled(data, title)
}

func exportRecords() []models.AttendanceRecord {
	return []models.AttendanceRecord{
		{
			StudentName: "Alice", EnrollmentNumber: "21CE001", Email: "a@charusat.edu.in",
			TimeSlot: "9:00-10:00", Subject: "CS", Faculty: "Dr. Smith",
			ClassName: "CSE-A", Semester: "3", Date: "2024-01-01",
			Timestamp: time.Date(2024, 1, 1, 9, 15, 42, 123456789, time.UTC),
		},
		{
			StudentName: "Bob", EnrollmentNumber: "21CE002", Email: "b@charusat.edu.in",
			TimeSlot: "9:00-10:00", Subject: "CS", Faculty: "Dr. Smith",
			ClassName: "CSE-A", Semester: "3", Date: "2024-01-01",
			Timestamp: time.Date(2024, 1, 1, 9, 16, 0, 0, time.UTC),
		},
	}
}

func TestExportServiceGenerateXLSX(t *testing.T) {
	xlsx := &datasetRendererStub{}
	svc := NewExportService(exportSourceStub{records: exportRecords()}, nil, nil, xlsx, nil, nil)

	filter := testFilter()
	file, err := svc.Generate(context.Background(), filter, FormatXLSX)
	require.NoError(t, err)
	assert.True(t, xlsx.called)
	assert.Equal(t, "attendance_CSE-A_CS_2024-01-01.xlsx", file.Filename)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", file.ContentType)

	// Every matching record appears as exactly one row, in the fixed column set.
	require.Len(t, xlsx.dataset.Rows, 2)
	assert.Equal(t, exportHeaders, xlsx.dataset.Headers)
	assert.Equal(t, "21CE001", xlsx.dataset.Rows[0]["Enrollment Number"])
	assert.Equal(t, "a@charusat.edu.in", xlsx.dataset.Rows[0]["Email"])
	assert.Equal(t, "21CE002", xlsx.dataset.Rows[1]["Enrollment Number"])
	// Second precision, no timezone.
	assert.Equal(t, "2024-01-01 09:15:42", xlsx.dataset.Rows[0]["Attendance Time"])
}

func TestExportServiceGenerateCSVAndPDF(t *testing.T) {
	csv := &datasetRendererStub{}
	pdf := &pdfRendererStub{}
	svc := NewExportService(exportSourceStub{records: exportRecords()}, nil, nil, &datasetRendererStub{}, csv, pdf)

	file, err := svc.Generate(context.Background(), testFilter(), FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "attendance_CSE-A_CS_2024-01-01.csv", file.Filename)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.True(t, csv.called)

	file, err = svc.Generate(context.Background(), testFilter(), FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "attendance_CSE-A_CS_2024-01-01.pdf", file.Filename)
	assert.Equal(t, "application/pdf", file.ContentType)
	assert.True(t, pdf.inner.called)
	assert.Equal(t, "Attendance CSE-A CS 2024-01-01", pdf.inner.title)
}

func TestExportServiceGenerateEmpty(t *testing.T) {
	svc := NewExportService(exportSourceStub{}, nil, nil, &datasetRendererStub{}, nil, nil)

	_, err := svc.Generate(context.Background(), testFilter(), FormatXLSX)
	require.Error(t, err)
	assert.Equal(t, 404, appErrors.FromError(err).Status)
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, format)

	format, err = ParseExportFormat("pdf")
	require.NoError(t, err)
	assert.Equal(t, FormatPDF, format)

	_, err = ParseExportFormat("docx")
	require.Error(t, err)
	assert.Equal(t, 400, appErrors.FromError(err).Status)
}
