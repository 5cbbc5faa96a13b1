package dto

// Assignment outcome statuses.
const (
	AssignmentStatusAssigned  = "ASSIGNED"
	AssignmentStatusKept      = "KEPT"
	AssignmentStatusNoTeacher = "NO_TEACHER"
	CallOutStatusReassigned   = "REASSIGNED"
	CallOutStatusNoCoverage   = "NO_COVERAGE"
)

// RunAssignmentsRequest triggers a bulk assignment pass. OnlyUnassigned
// defaults to true when omitted: existing assignments are preserved
// unless the caller opts into a full re-solve.
type RunAssignmentsRequest struct {
	OnlyUnassigned *bool `json:"onlyUnassigned"`
}

// AssignmentOutcome reports the engine's decision for one session.
type AssignmentOutcome struct {
	SessionID string  `json:"session_id"`
	Status    string  `json:"status"`
	TeacherID string  `json:"teacher_id,omitempty"`
	Weight    float64 `json:"weight,omitempty"`
}

// AssignmentReport summarises a bulk assignment pass.
type AssignmentReport struct {
	Outcomes   []AssignmentOutcome `json:"outcomes"`
	Assigned   int                 `json:"assigned"`
	Kept       int                 `json:"kept"`
	Unassigned int                 `json:"unassigned"`
}

// CallOutOutcome reports the substitute search result for one session
// previously held by the absent teacher.
type CallOutOutcome struct {
	SessionID    string `json:"session_id"`
	Status       string `json:"status"`
	SubstituteID string `json:"substitute_id,omitempty"`
}

// CallOutReport is the full result of handling one teacher call-out.
type CallOutReport struct {
	ReportID  string           `json:"report_id"`
	TeacherID string           `json:"teacher_id"`
	Outcomes  []CallOutOutcome `json:"outcomes"`
	Covered   int              `json:"covered"`
	Uncovered int              `json:"uncovered"`
}
