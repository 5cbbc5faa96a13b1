package models

import (
	"fmt"
	"time"
)

// DateLayout is the ISO calendar date form used across the engine.
const DateLayout = "2006-01-02"

// Session is one concrete scheduled class occurrence.
type Session struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Date      string   `json:"date"`
	Hour      int      `json:"hour"`
	Enrolled  []string `json:"enrolled,omitempty"`
	TeacherID string   `json:"teacher_id,omitempty"`
}

// NewSession constructs an unassigned session with an empty roster.
func NewSession(id, name, date string, hour int) *Session {
	return &Session{ID: id, Name: name, Date: date, Hour: hour}
}

// Enroll adds a student id under set semantics. It returns false when
// the student was already enrolled.
func (s *Session) Enroll(studentID string) bool {
	for _, id := range s.Enrolled {
		if id == studentID {
			return false
		}
	}
	s.Enrolled = append(s.Enrolled, studentID)
	return true
}

// Withdraw removes a student id, reporting whether they were enrolled.
func (s *Session) Withdraw(studentID string) bool {
	for i, id := range s.Enrolled {
		if id == studentID {
			s.Enrolled = append(s.Enrolled[:i], s.Enrolled[i+1:]...)
			return true
		}
	}
	return false
}

// HasStudent reports membership in the enrolled set.
func (s *Session) HasStudent(studentID string) bool {
	for _, id := range s.Enrolled {
		if id == studentID {
			return true
		}
	}
	return false
}

// Frequency is the recurrence interval of a session template.
type Frequency string

const (
	FrequencyDaily  Frequency = "daily"
	FrequencyWeekly Frequency = "weekly"
)

// Valid reports whether the frequency is a supported interval.
func (f Frequency) Valid() bool {
	return f == FrequencyDaily || f == FrequencyWeekly
}

func (f Frequency) stepDays() int {
	if f == FrequencyWeekly {
		return 7
	}
	return 1
}

// RecurringSessionTemplate expands into a bounded run of sessions
// sharing a name and hour but stepping through dates.
type RecurringSessionTemplate struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	Hour      int       `json:"hour"`
	Frequency Frequency `json:"frequency"`
	Count     int       `json:"count"`
}

// Expand materialises the template into Count concrete sessions. Each
// instance gets a minted composite id so Directory insertion keeps all
// of them instead of collapsing onto the template id.
func (t RecurringSessionTemplate) Expand() ([]*Session, error) {
	start, err := time.Parse(DateLayout, t.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse template start date %q: %w", t.StartDate, err)
	}
	if !t.Frequency.Valid() {
		return nil, fmt.Errorf("unsupported frequency %q", t.Frequency)
	}
	count := t.Count
	if count <= 0 {
		count = 10
	}

	step := t.Frequency.stepDays()
	sessions := make([]*Session, 0, count)
	for k := 0; k < count; k++ {
		date := start.AddDate(0, 0, k*step).Format(DateLayout)
		id := fmt.Sprintf("%s#%d", t.ID, k+1)
		sessions = append(sessions, NewSession(id, t.Name, date, t.Hour))
	}
	return sessions, nil
}
