package models

// Teacher is a person tracking the session ids currently assigned to them.
type Teacher struct {
	Person
	Assigned []string `json:"assigned_sessions,omitempty"`
}

// NewTeacher constructs a teacher with an empty assigned set.
func NewTeacher(id, name string) *Teacher {
	return &Teacher{Person: Person{ID: id, Name: name}}
}

// Assign records a session id, keeping the set free of duplicates.
func (t *Teacher) Assign(sessionID string) {
	for _, id := range t.Assigned {
		if id == sessionID {
			return
		}
	}
	t.Assigned = append(t.Assigned, sessionID)
}

// Unassign removes a session id from the assigned set.
func (t *Teacher) Unassign(sessionID string) {
	for i, id := range t.Assigned {
		if id == sessionID {
			t.Assigned = append(t.Assigned[:i], t.Assigned[i+1:]...)
			return
		}
	}
}

// HasAssigned reports whether the session id is in the assigned set.
func (t *Teacher) HasAssigned(sessionID string) bool {
	for _, id := range t.Assigned {
		if id == sessionID {
			return true
		}
	}
	return false
}
