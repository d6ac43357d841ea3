package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/charusat-labs/attendance-api/internal/dto"
	"github.com/charusat-labs/attendance-api/pkg/response"
)

// HealthChecker reports reachability of an external collaborator.
type HealthChecker func(ctx context.Context) bool

// HealthHandler answers the liveness probe.
type HealthHandler struct {
	database HealthChecker
	cache    HealthChecker
}

// NewHealthHandler constructs the handler; nil checkers report false.
func NewHealthHandler(database, cache HealthChecker) *HealthHandler {
	return &HealthHandler{database: database, cache: cache}
}

// Check handles GET /health.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	resp := dto.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().Format(time.RFC3339Nano),
	}
	if h.database != nil {
		resp.Database = h.database(ctx)
	}
	if h.cache != nil {
		resp.Cache = h.cache(ctx)
	}
	response.OK(c, resp)
}
