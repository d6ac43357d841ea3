package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/charusat-labs/attendance-api/internal/dto"
	"github.com/charusat-labs/attendance-api/internal/models"
	"github.com/charusat-labs/attendance-api/internal/service"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
)

type attendanceQueryMock struct {
	listResp   *dto.AttendanceListResponse
	listErr    error
	resetCount int64
	resetErr   error
	lastFilter models.AttendanceFilter
}

func (m *attendanceQueryMock) List(ctx context.Context, filter models.AttendanceFilter) (*dto.AttendanceListResponse, error) {
	m.lastFilter = filter
	return m.listResp, m.listErr
}

func (m *attendanceQueryMock) Reset(ctx context.Context, filter models.AttendanceFilter) (int64, error) {
	m.lastFilter = filter
	return m.resetCount, m.resetErr
}

type exportServiceMock struct {
	file       *service.ExportFile
	err        error
	lastFormat service.ExportFormat
}

func (m *exportServiceMock) Generate(ctx context.Context, filter models.AttendanceFilter, format service.ExportFormat) (*service.ExportFile, error) {
	m.lastFormat = format
	return m.file, m.err
}

func queryBody(t *testing.T) *bytes.Reader {
	t.Helper()
	body, err := json.Marshal(dto.AttendanceQueryRequest{
		ClassName: "CSE-A", TimeSlot: "9:00-10:00", Faculty: "Dr. Smith",
		Subject: "CS", Semester: "3", Date: "2024-01-01",
	})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

func TestAttendanceHandlerList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceQueryMock{listResp: &dto.AttendanceListResponse{
		Success:         true,
		TotalAttendance: 2,
		Records: []dto.AttendanceRecordView{
			{RecordID: "rec-1", StudentName: "Alice"},
			{RecordID: "rec-2", StudentName: "Bob"},
		},
	}}
	h := NewAttendanceHandler(mockSvc, &exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/get-attendance", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "CSE-A", mockSvc.lastFilter.ClassName)
	assert.Equal(t, "2024-01-01", mockSvc.lastFilter.Date)

	var resp dto.AttendanceListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.TotalAttendance)
	require.Len(t, resp.Records, 2)
	assert.Equal(t, "Alice", resp.Records[0].StudentName)
}

func TestAttendanceHandlerListIncompleteFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceQueryMock{}
	h := NewAttendanceHandler(mockSvc, &exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/get-attendance", bytes.NewBufferString(`{"class_name":"CSE-A"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.List(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mockSvc.lastFilter.ClassName)
}

func TestAttendanceHandlerDownload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockExport := &exportServiceMock{file: &service.ExportFile{
		Filename:    "attendance_CSE-A_CS_2024-01-01.xlsx",
		ContentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		Payload:     []byte("sheet-bytes"),
	}}
	h := NewAttendanceHandler(&attendanceQueryMock{}, mockExport)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/download-attendance", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatXLSX, mockExport.lastFormat)
	assert.Equal(t, `attachment; filename="attendance_CSE-A_CS_2024-01-01.xlsx"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
	assert.Equal(t, "sheet-bytes", w.Body.String())
}

func TestAttendanceHandlerDownloadFormatQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockExport := &exportServiceMock{file: &service.ExportFile{
		Filename:    "attendance_CSE-A_CS_2024-01-01.pdf",
		ContentType: "application/pdf",
		Payload:     []byte("%PDF"),
	}}
	h := NewAttendanceHandler(&attendanceQueryMock{}, mockExport)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/download-attendance?format=pdf", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Download(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, service.FormatPDF, mockExport.lastFormat)
}

func TestAttendanceHandlerDownloadUnknownFormat(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockExport := &exportServiceMock{}
	h := NewAttendanceHandler(&attendanceQueryMock{}, mockExport)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/download-attendance?format=docx", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Download(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mockExport.lastFormat)
}

func TestAttendanceHandlerDownloadEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAttendanceHandler(&attendanceQueryMock{}, &exportServiceMock{
		err: appErrors.Clone(appErrors.ErrNotFound, "no attendance records found"),
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/download-attendance", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Download(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAttendanceHandlerReset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &attendanceQueryMock{resetCount: 5}
	h := NewAttendanceHandler(mockSvc, &exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/reset-attendance", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Reset(c)
	require.Equal(t, http.StatusOK, w.Code)

	var resp dto.ResetAttendanceResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.DeletedCount)
	assert.Equal(t, "Successfully reset 5 attendance records", resp.Message)
}

func TestAttendanceHandlerResetEmpty(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewAttendanceHandler(&attendanceQueryMock{
		resetErr: appErrors.Clone(appErrors.ErrNotFound, "no attendance records found"),
	}, &exportServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/teacher/reset-attendance", queryBody(t))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Reset(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
