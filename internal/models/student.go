package models

// Student is a person holding an ordered list of outstanding bids.
type Student struct {
	Person
	Bids []Bid `json:"bids,omitempty"`
}

// NewStudent constructs a student with no bids.
func NewStudent(id, name string) *Student {
	return &Student{Person: Person{ID: id, Name: name}}
}

// PlaceBid appends a bid in submission order.
func (s *Student) PlaceBid(bid Bid) {
	s.Bids = append(s.Bids, bid)
}
