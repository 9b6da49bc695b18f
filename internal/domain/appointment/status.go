package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusCancelled Status = "cancelled"
)

// ParseStatus only accepts the three persisted values, case-sensitive.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusAccepted, StatusCancelled:
		return Status(s), nil
	}
	return "", httperr.Validation("invalid_status", "Invalid status")
}

func (s Status) String() string {
	return string(s)
}

func InitialStatus() Status {
	return StatusPending
}
