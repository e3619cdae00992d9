package dtos

// MeetingStatistics counts meetings by date. ScopedToAdmin reports whether
// the counts cover only the admin's buildings or every meeting in the store.
type MeetingStatistics struct {
	Total                 int     `json:"total"`
	Completed             int     `json:"completed"`
	Upcoming              int     `json:"upcoming"`
	Cancelled             int     `json:"cancelled"`
	AverageAttendanceRate float64 `json:"average_attendance_rate"`
	ScopedToAdmin         bool    `json:"scoped_to_admin"`
}
