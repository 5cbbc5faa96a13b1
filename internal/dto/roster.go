package dto

// AddPersonRequest creates a student or teacher.
type AddPersonRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
}

// AddSessionRequest creates one concrete session.
type AddSessionRequest struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required"`
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	Hour int    `json:"hour" validate:"min=0,max=23"`
}

// AddRecurringSessionRequest creates a recurring template that expands
// into a bounded run of sessions.
type AddRecurringSessionRequest struct {
	ID        string `json:"id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	StartDate string `json:"startDate" validate:"required,datetime=2006-01-02"`
	Hour      int    `json:"hour" validate:"min=0,max=23"`
	Frequency string `json:"frequency" validate:"required,oneof=daily weekly"`
}

// AvailabilityEntry sets the available hours for one date.
type AvailabilityEntry struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Hours []int  `json:"hours" validate:"dive,min=0,max=23"`
}

// SetAvailabilityRequest replaces availability for the listed dates.
type SetAvailabilityRequest struct {
	Entries []AvailabilityEntry `json:"entries" validate:"required,min=1,dive"`
}

// PreferenceEntry sets hour weights for one date.
type PreferenceEntry struct {
	Date    string          `json:"date" validate:"required,datetime=2006-01-02"`
	Weights map[int]float64 `json:"weights" validate:"required"`
}

// SetPreferenceRequest replaces preference weights for the listed dates.
type SetPreferenceRequest struct {
	Entries []PreferenceEntry `json:"entries" validate:"required,min=1,dive"`
}
