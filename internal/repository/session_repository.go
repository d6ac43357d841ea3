package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/charusat-labs/attendance-api/internal/models"
)

const sessionCollection = "attendance_sessions"

// SessionRepository persists attendance sessions.
type SessionRepository struct {
	col *mongo.Collection
}

// NewSessionRepository constructs the repository.
func NewSessionRepository(db *mongo.Database) *SessionRepository {
	return &SessionRepository{col: db.Collection(sessionCollection)}
}

// Insert stores a new session document.
func (r *SessionRepository) Insert(ctx context.Context, session models.AttendanceSession) error {
	_, err := r.col.InsertOne(ctx, session)
	return err
}

// FindActiveByID returns the active session with the given identifier, or
// nil when the session is absent or deactivated.
func (r *SessionRepository) FindActiveByID(ctx context.Context, sessionID string) (*models.AttendanceSession, error) {
	var session models.AttendanceSession
	err := r.col.FindOne(ctx, bson.M{
		"session_id": sessionID,
		"is_active":  true,
	}).Decode(&session)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &session, nil
}

// DeactivateMatching flips is_active to false on every session matching the
// shared filter. Sessions are never physically deleted.
func (r *SessionRepository) DeactivateMatching(ctx context.Context, filter models.AttendanceFilter) (int64, error) {
	result, err := r.col.UpdateMany(ctx, filter.Document(), bson.M{
		"$set": bson.M{"is_active": false},
	})
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
