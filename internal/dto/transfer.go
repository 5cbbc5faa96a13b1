package dto

// TransferRequest moves a student into a new session, withdrawing them
// from whichever session currently holds them.
type TransferRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}
