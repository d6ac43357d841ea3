package handler

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charusat-labs/attendance-api/internal/dto"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
	"github.com/charusat-labs/attendance-api/pkg/response"
)

type studentAttendanceService interface {
	Authenticate(ctx context.Context, req dto.StudentAuthRequest) (*dto.SessionInfo, error)
	Submit(ctx context.Context, form dto.SubmitAttendanceForm, photo []byte) (time.Time, error)
}

// StudentHandler exposes the student-facing gate and submission endpoints.
type StudentHandler struct {
	service       studentAttendanceService
	maxPhotoBytes int64
}

// NewStudentHandler constructs the handler. maxPhotoBytes caps the fully
// buffered selfie upload.
func NewStudentHandler(service studentAttendanceService, maxPhotoBytes int64) *StudentHandler {
	return &StudentHandler{service: service, maxPhotoBytes: maxPhotoBytes}
}

// Authenticate handles POST /student/authenticate. It performs the gate
// checks without creating any record.
func (h *StudentHandler) Authenticate(c *gin.Context) {
	var req dto.StudentAuthRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	info, err := h.service.Authenticate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.StudentAuthResponse{
		Success:     true,
		Message:     "Authentication successful",
		SessionInfo: *info,
	})
}

// Submit handles POST /student/submit-attendance (multipart form).
func (h *StudentHandler) Submit(c *gin.Context) {
	var form dto.SubmitAttendanceForm
	if err := c.ShouldBind(&form); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	fileHeader, err := c.FormFile("selfie")
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "selfie file required"))
		return
	}
	if h.maxPhotoBytes > 0 && fileHeader.Size > h.maxPhotoBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("selfie exceeds the %d byte limit", h.maxPhotoBytes)))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to open selfie upload"))
		return
	}
	defer file.Close()

	var reader io.Reader = file
	if h.maxPhotoBytes > 0 {
		reader = io.LimitReader(file, h.maxPhotoBytes+1)
	}
	photo, err := io.ReadAll(reader)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read selfie upload"))
		return
	}
	if h.maxPhotoBytes > 0 && int64(len(photo)) > h.maxPhotoBytes {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation,
			fmt.Sprintf("selfie exceeds the %d byte limit", h.maxPhotoBytes)))
		return
	}

	submittedAt, err := h.service.Submit(c.Request.Context(), form, photo)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.SubmitAttendanceResponse{
		Success:   true,
		Message:   "Attendance marked successfully",
		Timestamp: submittedAt.Format(time.RFC3339Nano),
	})
}
