package dto

// DaySession is one row of the day-roster view. TeacherName is "TBD"
// while a session has no assigned teacher.
type DaySession struct {
	SessionID   string `json:"session_id"`
	Name        string `json:"name"`
	TeacherName string `json:"teacher_name"`
	Hour        int    `json:"hour"`
	Enrolled    int    `json:"enrolled"`
}
