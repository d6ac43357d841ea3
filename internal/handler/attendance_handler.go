package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/charusat-labs/attendance-api/internal/dto"
	"github.com/charusat-labs/attendance-api/internal/models"
	"github.com/charusat-labs/attendance-api/internal/service"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
	"github.com/charusat-labs/attendance-api/pkg/response"
)

type attendanceQueryService interface {
	List(ctx context.Context, filter models.AttendanceFilter) (*dto.AttendanceListResponse, error)
	Reset(ctx context.Context, filter models.AttendanceFilter) (int64, error)
}

type attendanceExportService interface {
	Generate(ctx context.Context, filter models.AttendanceFilter, format service.ExportFormat) (*service.ExportFile, error)
}

// AttendanceHandler exposes the teacher query, download and reset endpoints.
// All three bind the same six-field filter.
type AttendanceHandler struct {
	attendance attendanceQueryService
	exports    attendanceExportService
}

// NewAttendanceHandler constructs the handler.
func NewAttendanceHandler(attendance attendanceQueryService, exports attendanceExportService) *AttendanceHandler {
	return &AttendanceHandler{attendance: attendance, exports: exports}
}

// List handles POST /teacher/get-attendance.
func (h *AttendanceHandler) List(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	resp, err := h.attendance.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Download handles POST /teacher/download-attendance. The optional format
// query selects xlsx (default), csv or pdf.
func (h *AttendanceHandler) Download(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}

	file, err := h.exports.Generate(c.Request.Context(), filter, format)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

// Reset handles POST /teacher/reset-attendance.
func (h *AttendanceHandler) Reset(c *gin.Context) {
	filter, ok := bindFilter(c)
	if !ok {
		return
	}

	deleted, err := h.attendance.Reset(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.ResetAttendanceResponse{
		Success:      true,
		Message:      fmt.Sprintf("Successfully reset %d attendance records", deleted),
		DeletedCount: deleted,
	})
}

func bindFilter(c *gin.Context) (models.AttendanceFilter, bool) {
	var req dto.AttendanceQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return models.AttendanceFilter{}, false
	}
	return req.Filter(), true
}
