package dto

import "github.com/charusat-labs/attendance-api/internal/models"

// StudentAuthRequest is the pre-submission gate payload. It has no side
// effect; the submission endpoint repeats every check independently.
type StudentAuthRequest struct {
	SessionID        string `json:"session_id" binding:"required"`
	Email            string `json:"email" binding:"required,email"`
	Name             string `json:"name" binding:"required"`
	EnrollmentNumber string `json:"enrollment_number" binding:"required"`
}

// StudentAuthResponse echoes the session display subset on success.
type StudentAuthResponse struct {
	Success     bool        `json:"success"`
	Message     string      `json:"message"`
	SessionInfo SessionInfo `json:"session_info"`
}

// SubmitAttendanceForm carries the multipart fields of a submission; the
// selfie file itself is read by the handler.
type SubmitAttendanceForm struct {
	SessionID        string `form:"session_id" binding:"required"`
	StudentName      string `form:"student_name" binding:"required"`
	EnrollmentNumber string `form:"enrollment_number" binding:"required"`
	Email            string `form:"email" binding:"required,email"`
}

// SubmitAttendanceResponse confirms the stored submission time.
type SubmitAttendanceResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// AttendanceQueryRequest binds the shared six-field filter from JSON.
type AttendanceQueryRequest struct {
	ClassName string `json:"class_name" binding:"required"`
	TimeSlot  string `json:"time_slot" binding:"required"`
	Faculty   string `json:"faculty" binding:"required"`
	Subject   string `json:"subject" binding:"required"`
	Semester  string `json:"semester" binding:"required"`
	Date      string `json:"date" binding:"required"`
}

// Filter converts the request into the shared filter value.
func (r AttendanceQueryRequest) Filter() models.AttendanceFilter {
	return models.AttendanceFilter{
		ClassName: r.ClassName,
		TimeSlot:  r.TimeSlot,
		Faculty:   r.Faculty,
		Subject:   r.Subject,
		Semester:  r.Semester,
		Date:      r.Date,
	}
}

// AttendanceRecordView is a record projected for display: identifiers and
// timestamps as strings, photo data excluded.
type AttendanceRecordView struct {
	ID               string `json:"_id"`
	RecordID         string `json:"record_id"`
	SessionID        string `json:"session_id"`
	StudentName      string `json:"student_name"`
	EnrollmentNumber string `json:"enrollment_number"`
	Email            string `json:"email"`
	Timestamp        string `json:"timestamp"`
	TimeSlot         string `json:"time_slot"`
	LectureOrLab     string `json:"lecture_or_lab"`
	Subject          string `json:"subject"`
	Faculty          string `json:"faculty"`
	ClassName        string `json:"class_name"`
	Semester         string `json:"semester"`
	Date             string `json:"date"`
}

// AttendanceListResponse returns matching records and echoes the filter.
type AttendanceListResponse struct {
	Success         bool                    `json:"success"`
	TotalAttendance int                     `json:"total_attendance"`
	Records         []AttendanceRecordView  `json:"records"`
	QueryInfo       models.AttendanceFilter `json:"query_info"`
}

// ResetAttendanceResponse reports how many records a reset removed.
type ResetAttendanceResponse struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	DeletedCount int64  `json:"deleted_count"`
}

// HealthResponse reports liveness plus collaborator reachability.
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Database  bool   `json:"database"`
	Cache     bool   `json:"cache"`
}
