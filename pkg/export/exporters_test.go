package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDataset() Dataset {
	return Dataset{
		Headers: []string{"Student Name", "Enrollment Number", "Email"},
		Rows: []map[string]string{
			{"Student Name": "Alice", "Enrollment Number": "21CE001", "Email": "a@charusat.edu.in"},
			{"Student Name": "Bob, Jr.", "Enrollment Number": "21CE002", "Email": "b@charusat.edu.in"},
		},
	}
}

func TestCSVExporterRender(t *testing.T) {
	out, err := NewCSVExporter().Render(sampleDataset())
	require.NoError(t, err)

	expected := "Student Name,Enrollment Number,Email\n" +
		"Alice,21CE001,a@charusat.edu.in\n" +
		"\"Bob, Jr.\",21CE002,b@charusat.edu.in\n"
	assert.Equal(t, expected, string(out))
}

func TestCSVExporterRenderNoHeaders(t *testing.T) {
	_, err := NewCSVExporter().Render(Dataset{})
	require.Error(t, err)
}

func TestXLSXExporterRender(t *testing.T) {
	out, err := NewXLSXExporter().Render(sampleDataset())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Attendance"}, f.GetSheetList())

	rows, err := f.GetRows("Attendance")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Student Name", "Enrollment Number", "Email"}, rows[0])
	assert.Equal(t, []string{"Alice", "21CE001", "a@charusat.edu.in"}, rows[1])
	assert.Equal(t, []string{"Bob, Jr.", "21CE002", "b@charusat.edu.in"}, rows[2])
}

func TestPDFExporterRender(t *testing.T) {
	out, err := NewPDFExporter().Render(sampleDataset(), "Attendance CSE-A CS 2024-01-01")
	require.NoError(t, err)
	require.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
