package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/charusat-labs/attendance-api/internal/dto"
	"github.com/charusat-labs/attendance-api/internal/models"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
)

type sessionStore interface {
	Insert(ctx context.Context, session models.AttendanceSession) error
	FindActiveByID(ctx context.Context, sessionID string) (*models.AttendanceSession, error)
}

type qrRenderer interface {
	DataURL(payload string) (string, error)
}

// SessionService creates attendance sessions and serves session lookups.
type SessionService struct {
	sessions sessionStore
	qr       qrRenderer
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSessionService constructs the service.
func NewSessionService(sessions sessionStore, qr qrRenderer, metrics *MetricsService, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		sessions: sessions,
		qr:       qr,
		metrics:  metrics,
		logger:   logger,
	}
}

// Create persists a new active session, renders its QR code and computes the
// student-facing link.
func (s *SessionService) Create(ctx context.Context, req dto.CreateSessionRequest) (*dto.CreateSessionResponse, error) {
	sessionID := uuid.NewString()

	session := models.AttendanceSession{
		SessionID:    sessionID,
		TimeSlot:     req.TimeSlot,
		LectureOrLab: req.LectureOrLab,
		Subject:      req.Subject,
		Faculty:      req.Faculty,
		ClassName:    req.ClassName,
		Semester:     req.Semester,
		Date:         req.Date,
		CreatedAt:    time.Now(),
		IsActive:     true,
	}

	if err := s.sessions.Insert(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	qrImage, err := s.qr.DataURL("session_id=" + sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render session code")
	}

	s.metrics.IncSessionCreated()
	s.logger.Info("session created",
		zap.String("session_id", sessionID),
		zap.String("class_name", req.ClassName),
		zap.String("subject", req.Subject),
	)

	return &dto.CreateSessionResponse{
		Success:   true,
		SessionID: sessionID,
		QRCode:    qrImage,
		Link:      "/student/attendance?session_id=" + sessionID,
		Message:   "Attendance session created successfully",
	}, nil
}

// Get returns the full descriptive field set of an active session.
func (s *SessionService) Get(ctx context.Context, sessionID string) (*dto.SessionInfo, error) {
	session, err := s.sessions.FindActiveByID(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session == nil {
		return nil, appErrors.Clone(appErrors.ErrSessionNotFound, "session not found or expired")
	}

	return &dto.SessionInfo{
		SessionID:    session.SessionID,
		Subject:      session.Subject,
		Faculty:      session.Faculty,
		ClassName:    session.ClassName,
		TimeSlot:     session.TimeSlot,
		Date:         session.Date,
		LectureOrLab: session.LectureOrLab,
		Semester:     session.Semester,
	}, nil
}
