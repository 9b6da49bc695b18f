package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// SelfCancelMinDays is exclusive: a patient needs strictly more lead time.
const SelfCancelMinDays = 3

const PatientCancelRemark = "cancelled by patient"

// CanSelfCancel applies the patient cancellation rules to ap as of now.
func CanSelfCancel(ap *models.Appointment, now time.Time) error {
	if Status(ap.Status) == StatusCancelled {
		return ErrAlreadyCancelled
	}

	days, err := DaysUntil(ap.Date, now)
	if err != nil {
		return err
	}
	if days <= SelfCancelMinDays {
		return ErrCancellationWindow
	}
	return nil
}

// BookingHorizon bounds how far ahead a booking may be placed.
func BookingHorizon(today time.Time) (from, to time.Time) {
	from = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, today.Location())
	return from, from.AddDate(0, 1, 0)
}

func WithinHorizon(date string, today time.Time) error {
	d, err := ParseDate(date, today.Location())
	if err != nil {
		return err
	}
	from, to := BookingHorizon(today)
	if d.Before(from) {
		return httperr.Validation("date_in_past", "Appointment date is in the past")
	}
	if d.After(to) {
		return httperr.Validation("date_too_far", "Appointments can be booked at most one month ahead")
	}
	return nil
}
