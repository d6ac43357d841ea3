package models

import "time"

// AttendanceSession is one teacher-defined attendance window. Descriptive
// fields are immutable after creation; only IsActive may flip true to false.
type AttendanceSession struct {
	SessionID    string    `bson:"session_id" json:"session_id"`
	TimeSlot     string    `bson:"time_slot" json:"time_slot"`
	LectureOrLab string    `bson:"lecture_or_lab" json:"lecture_or_lab"`
	Subject      string    `bson:"subject" json:"subject"`
	Faculty      string    `bson:"faculty" json:"faculty"`
	ClassName    string    `bson:"class_name" json:"class_name"`
	Semester     string    `bson:"semester" json:"semester"`
	Date         string    `bson:"date" json:"date"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	IsActive     bool      `bson:"is_active" json:"is_active"`
}
