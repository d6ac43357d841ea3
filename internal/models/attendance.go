package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceRecord is one student's presence claim for a session. The owning
// session's descriptive fields are denormalized onto the record at submission
// time so teacher queries never join through the session.
type AttendanceRecord struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	RecordID         string             `bson:"record_id" json:"record_id"`
	SessionID        string             `bson:"session_id" json:"session_id"`
	StudentName      string             `bson:"student_name" json:"student_name"`
	EnrollmentNumber string             `bson:"enrollment_number" json:"enrollment_number"`
	Email            string             `bson:"email" json:"email"`
	SelfieData       string             `bson:"selfie_data,omitempty" json:"selfie_data,omitempty"`
	Timestamp        time.Time          `bson:"timestamp" json:"timestamp"`

	TimeSlot     string `bson:"time_slot" json:"time_slot"`
	LectureOrLab string `bson:"lecture_or_lab" json:"lecture_or_lab"`
	Subject      string `bson:"subject" json:"subject"`
	Faculty      string `bson:"faculty" json:"faculty"`
	ClassName    string `bson:"class_name" json:"class_name"`
	Semester     string `bson:"semester" json:"semester"`
	Date         string `bson:"date" json:"date"`
}

// AttendanceFilter is the six-field exact-match tuple shared by the query,
// export and reset paths. One type keeps the three from drifting apart.
type AttendanceFilter struct {
	ClassName string `json:"class_name"`
	TimeSlot  string `json:"time_slot"`
	Faculty   string `json:"faculty"`
	Subject   string `json:"subject"`
	Semester  string `json:"semester"`
	Date      string `json:"date"`
}

// Document renders the filter as a Mongo query. Session documents persist all
// six fields, so the same document selects records and their sessions.
func (f AttendanceFilter) Document() bson.M {
	return bson.M{
		"class_name": f.ClassName,
		"time_slot":  f.TimeSlot,
		"faculty":    f.Faculty,
		"subject":    f.Subject,
		"semester":   f.Semester,
		"date":       f.Date,
	}
}
