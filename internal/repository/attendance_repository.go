package repository

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/charusat-labs/attendance-api/internal/models"
)

const recordCollection = "attendance_records"

// ErrDuplicateRecord signals that a record for the same (session, email)
// pair already exists. The unique index backstops the pre-insert check.
var ErrDuplicateRecord = errors.New("attendance already recorded for session and email")

// AttendanceRepository persists attendance records.
type AttendanceRepository struct {
	col *mongo.Collection
}

// NewAttendanceRepository constructs the repository.
func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{col: db.Collection(recordCollection)}
}

// EnsureIndexes creates the unique compound index on (session_id, email) so
// concurrent duplicate submissions cannot both persist.
func (r *AttendanceRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "session_id", Value: 1},
			{Key: "email", Value: 1},
		},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Exists reports whether a record for the (session, email) pair is present.
func (r *AttendanceRepository) Exists(ctx context.Context, sessionID, email string) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{
		"session_id": sessionID,
		"email":      email,
	}, options.FindOne().SetProjection(bson.M{"_id": 1})).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Insert stores a new attendance record. A duplicate-key violation maps to
// ErrDuplicateRecord.
func (r *AttendanceRepository) Insert(ctx context.Context, record models.AttendanceRecord) error {
	_, err := r.col.InsertOne(ctx, record)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateRecord
		}
		return err
	}
	return nil
}

// FindMatching returns every record matching the shared filter, with the
// photo payload projected away.
func (r *AttendanceRepository) FindMatching(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceRecord, error) {
	cursor, err := r.col.Find(ctx, filter.Document(),
		options.Find().SetProjection(bson.M{"selfie_data": 0}))
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.AttendanceRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// CountMatching counts records selected by the shared filter.
func (r *AttendanceRepository) CountMatching(ctx context.Context, filter models.AttendanceFilter) (int64, error) {
	return r.col.CountDocuments(ctx, filter.Document())
}

// DeleteMatching removes every record selected by the shared filter.
func (r *AttendanceRepository) DeleteMatching(ctx context.Context, filter models.AttendanceFilter) (int64, error) {
	result, err := r.col.DeleteMany(ctx, filter.Document())
	if err != nil {
		return 0, err
	}
	return result.DeletedCount, nil
}
