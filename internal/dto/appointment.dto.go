package dto

// LookupResult is all a patient sees of their appointment.
type LookupResult struct {
	Date   string `json:"date"`
	Status string `json:"status"`
}

type BookedSlots struct {
	BookedTimes []string `json:"bookedTimes"`
}

type AppointmentStats struct {
	Total     int64 `json:"total"`
	Pending   int64 `json:"pending"`
	Accepted  int64 `json:"accepted"`
	Cancelled int64 `json:"cancelled"`
	Upcoming  int64 `json:"upcoming"`
}
