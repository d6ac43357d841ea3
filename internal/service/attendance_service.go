package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/charusat-labs/attendance-api/internal/dto"
	"github.com/charusat-labs/attendance-api/internal/models"
	"github.com/charusat-labs/attendance-api/internal/repository"
	appErrors "github.com/charusat-labs/attendance-api/pkg/errors"
)

type sessionReader interface {
	FindActiveByID(ctx context.Context, sessionID string) (*models.AttendanceSession, error)
}

type sessionDeactivator interface {
	DeactivateMatching(ctx context.Context, filter models.AttendanceFilter) (int64, error)
}

type attendanceStore interface {
	Exists(ctx context.Context, sessionID, email string) (bool, error)
	Insert(ctx context.Context, record models.AttendanceRecord) error
	FindMatching(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error)
	CountMatching(ctx context.Context, filter models.AttendanceFilter) (int64, error)
	DeleteMatching(ctx context.Context, filter models.AttendanceFilter) (int64, error)
}

// AttendanceService implements the student submission flow and the teacher
// query/reset operations.
type AttendanceService struct {
	sessions    sessionReader
	deactivator sessionDeactivator
	records     attendanceStore
	emailDomain string
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewAttendanceService constructs the service. emailDomain is the
// institutional suffix required of student emails.
func NewAttendanceService(sessions sessionReader, deactivator sessionDeactivator, records attendanceStore, emailDomain string, metrics *MetricsService, logger *zap.Logger) *AttendanceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AttendanceService{
		sessions:    sessions,
		deactivator: deactivator,
		records:     records,
		emailDomain: emailDomain,
		metrics:     metrics,
		logger:      logger,
	}
}

// gate runs the three pre-submission checks shared by Authenticate and
// Submit: active session, email domain, no existing record. The two callers
// are not transactionally linked, so each runs the full sequence.
func (s *AttendanceService) gate(ctx context.Context, sessionID, email string) (*models.AttendanceSession, error) {
	session, err := s.sessions.FindActiveByID(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session == nil {
		return nil, appErrors.ErrSessionNotFound
	}

	if !strings.HasSuffix(email, s.emailDomain) {
		return nil, appErrors.Clone(appErrors.ErrEmailDomain, fmt.Sprintf("only %s emails are allowed", s.emailDomain))
	}

	exists, err := s.records.Exists(ctx, sessionID, email)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check existing attendance")
	}
	if exists {
		return nil, appErrors.ErrDuplicateAttendance
	}

	return session, nil
}

// Authenticate is the side-effect-free pre-submission gate. On success it
// returns the display subset of the session.
func (s *AttendanceService) Authenticate(ctx context.Context, req dto.StudentAuthRequest) (*dto.SessionInfo, error) {
	session, err := s.gate(ctx, req.SessionID, req.Email)
	if err != nil {
		return nil, err
	}

	return &dto.SessionInfo{
		Subject:   session.Subject,
		Faculty:   session.Faculty,
		ClassName: session.ClassName,
		TimeSlot:  session.TimeSlot,
		Date:      session.Date,
	}, nil
}

// Submit repeats the gate checks, encodes the photo and inserts the record
// with the session's descriptive fields denormalized onto it.
//
// The gate check and the insert are two separate operations; the unique
// (session_id, email) index turns the losing side of a concurrent duplicate
// race into a Conflict instead of a second row.
func (s *AttendanceService) Submit(ctx context.Context, form dto.SubmitAttendanceForm, photo []byte) (time.Time, error) {
	session, err := s.gate(ctx, form.SessionID, form.Email)
	if err != nil {
		return time.Time{}, err
	}

	now := time.Now()
	record := models.AttendanceRecord{
		RecordID:         uuid.NewString(),
		SessionID:        form.SessionID,
		StudentName:      form.StudentName,
		EnrollmentNumber: form.EnrollmentNumber,
		Email:            form.Email,
		SelfieData:       base64.StdEncoding.EncodeToString(photo),
		Timestamp:        now,
		TimeSlot:         session.TimeSlot,
		LectureOrLab:     session.LectureOrLab,
		Subject:          session.Subject,
		Faculty:          session.Faculty,
		ClassName:        session.ClassName,
		Semester:         session.Semester,
		Date:             session.Date,
	}

	if err := s.records.Insert(ctx, record); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecord) {
			return time.Time{}, appErrors.ErrDuplicateAttendance
		}
		return time.Time{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to submit attendance")
	}

	s.metrics.IncSubmission()
	s.logger.Info("attendance recorded",
		zap.String("session_id", form.SessionID),
		zap.String("enrollment_number", form.EnrollmentNumber),
	)

	return now, nil
}

// List returns every record matching the shared filter, photos excluded, with
// identifiers and timestamps rendered as display strings. An empty match is a
// normal zero-count response.
func (s *AttendanceService) List(ctx context.Context, filter models.AttendanceFilter) (*dto.AttendanceListResponse, error) {
	records, err := s.records.FindMatching(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fetch attendance")
	}

	views := make([]dto.AttendanceRecordView, 0, len(records))
	for _, record := range records {
		views = append(views, recordView(record))
	}

	return &dto.AttendanceListResponse{
		Success:         true,
		TotalAttendance: len(views),
		Records:         views,
		QueryInfo:       filter,
	}, nil
}

// Reset deletes every record matching the filter and deactivates the
// matching sessions. Zero matching records is Not Found.
func (s *AttendanceService) Reset(ctx context.Context, filter models.AttendanceFilter) (int64, error) {
	count, err := s.records.CountMatching(ctx, filter)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count attendance")
	}
	if count == 0 {
		return 0, appErrors.Clone(appErrors.ErrNotFound, "no attendance records found to reset")
	}

	deleted, err := s.records.DeleteMatching(ctx, filter)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reset attendance")
	}

	deactivated, err := s.deactivator.DeactivateMatching(ctx, filter)
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to deactivate sessions")
	}

	s.metrics.IncReset()
	s.logger.Info("attendance reset",
		zap.String("class_name", filter.ClassName),
		zap.String("subject", filter.Subject),
		zap.String("date", filter.Date),
		zap.Int64("deleted", deleted),
		zap.Int64("deactivated", deactivated),
	)

	return deleted, nil
}

func recordView(record models.AttendanceRecord) dto.AttendanceRecordView {
	return dto.AttendanceRecordView{
		ID:               record.ID.Hex(),
		RecordID:         record.RecordID,
		SessionID:        record.SessionID,
		StudentName:      record.StudentName,
		EnrollmentNumber: record.EnrollmentNumber,
		Email:            record.Email,
		Timestamp:        record.Timestamp.Format(time.RFC3339Nano),
		TimeSlot:         record.TimeSlot,
		LectureOrLab:     record.LectureOrLab,
		Subject:          record.Subject,
		Faculty:          record.Faculty,
		ClassName:        record.ClassName,
		Semester:         record.Semester,
		Date:             record.Date,
	}
}
