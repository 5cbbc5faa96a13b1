package models

// Availability maps an ISO date ("2006-01-02") to the hours (0-23) a
// person can be scheduled on that date.
type Availability map[string][]int

// Covers reports whether the given date and hour are available.
func (a Availability) Covers(date string, hour int) bool {
	for _, h := range a[date] {
		if h == hour {
			return true
		}
	}
	return false
}

// Preference maps an ISO date to per-hour weights. Higher weight means
// the person prefers teaching that slot.
type Preference map[string]map[int]float64

// Weight returns the recorded weight for a slot, defaulting to 0.
func (p Preference) Weight(date string, hour int) float64 {
	if hours, ok := p[date]; ok {
		return hours[hour]
	}
	return 0
}

// Person carries the identity and scheduling constraints shared by
// students and teachers.
type Person struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Availability Availability `json:"availability,omitempty"`
	Preference   Preference   `json:"preference,omitempty"`
}

// SetAvailability replaces the available hours for one date.
func (p *Person) SetAvailability(date string, hours []int) {
	if p.Availability == nil {
		p.Availability = make(Availability)
	}
	p.Availability[date] = append([]int(nil), hours...)
}

// SetPreference replaces the hour weights for one date.
func (p *Person) SetPreference(date string, weights map[int]float64) {
	if p.Preference == nil {
		p.Preference = make(Preference)
	}
	copied := make(map[int]float64, len(weights))
	for hour, weight := range weights {
		copied[hour] = weight
	}
	p.Preference[date] = copied
}
