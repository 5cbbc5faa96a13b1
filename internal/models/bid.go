package models

// Bid is one unit of student interest in a session. Bids are immutable
// once placed; duplicates are allowed and collapse at resolution time.
type Bid struct {
	StudentID string `json:"student_id"`
	SessionID string `json:"session_id"`
}
