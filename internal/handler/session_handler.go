package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/charusat-labs/attendance-api/internal/dto"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
	"github.com/charusat-labs/attendance-api/pkg/response"
)

type sessionService interface {
	Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.CreateSessionResponse, error)
	Get(ctx context.Context, sessionID string) (*dto.SessionInfo, error)
}

// SessionHandler exposes session creation and lookup.
type SessionHandler struct {
	service sessionService
}

// NewSessionHandler constructs the handler.
func NewSessionHandler(service sessionService) *SessionHandler {
	return &SessionHandler{service: service}
}

// Create handles POST /teacher/create-session.
func (h *SessionHandler) Create(c *gin.Context) {
	var req dto.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}

	resp, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, resp)
}

// Get handles GET /session/:session_id.
func (h *SessionHandler) Get(c *gin.Context) {
	info, err := h.service.Get(c.Request.Context(), c.Param("session_id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, dto.SessionInfoResponse{Success: true, SessionInfo: *info})
}
