package dto

// PlaceBidRequest records one unit of student interest in a session.
type PlaceBidRequest struct {
	StudentID string `json:"studentId" validate:"required"`
	SessionID string `json:"sessionId" validate:"required"`
}

// ResolveBidsResult summarises one bulk resolution pass.
type ResolveBidsResult struct {
	BidsSeen    int `json:"bids_seen"`
	Enrollments int `json:"enrollments"`
	Duplicates  int `json:"duplicates"`
	Dangling    int `json:"dangling"`
}
