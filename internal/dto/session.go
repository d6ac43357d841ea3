package dto

// CreateSessionRequest carries the descriptive fields of a new session.
type CreateSessionRequest struct {
	TimeSlot     string `json:"time_slot" binding:"required"`
	LectureOrLab string `json:"lecture_or_lab" binding:"required"`
	Subject      string `json:"subject" binding:"required"`
	Faculty      string `json:"faculty" binding:"required"`
	ClassName    string `json:"class_name" binding:"required"`
	Semester     string `json:"semester" binding:"required"`
	Date         string `json:"date" binding:"required"`
}

// CreateSessionResponse returns the identifier plus the scannable assets.
type CreateSessionResponse struct {
	Success   bool   `json:"success"`
	SessionID string `json:"session_id"`
	QRCode    string `json:"qr_code"`
	Link      string `json:"link"`
	Message   string `json:"message"`
}

// SessionInfo is the display subset of a session. Authenticate returns the
// short form; the session lookup endpoint fills every field.
type SessionInfo struct {
	SessionID    string `json:"session_id,omitempty"`
	Subject      string `json:"subject"`
	Faculty      string `json:"faculty"`
	ClassName    string `json:"class_name"`
	TimeSlot     string `json:"time_slot"`
	Date         string `json:"date"`
	LectureOrLab string `json:"lecture_or_lab,omitempty"`
	Semester     string `json:"semester,omitempty"`
}

// SessionInfoResponse wraps a lookup result.
type SessionInfoResponse struct {
	Success     bool        `json:"success"`
	SessionInfo SessionInfo `json:"session_info"`
}
