package appointment

import "github.com/BruksfildServices01/clinic-scheduler/internal/httperr"

var (
	ErrAppointmentNotFound = httperr.NotFoundErr("appointment_not_found", "Appointment not found")
	ErrBookingNotFound     = httperr.NotFoundErr("booking_not_found", "No appointment found with that Booking ID and Email")
	ErrAlreadyCancelled    = httperr.ConflictErr("already_cancelled", "Appointment is already cancelled")
	ErrSlotAlreadyBooked   = httperr.ConflictErr("slot_already_booked", "Another appointment is already accepted for this slot")
	ErrSlotBeingBooked     = httperr.ConflictErr("slot_being_booked", "Slot is currently being booked, please retry")
	ErrCancellationWindow  = httperr.Policy("cancellation_window", "You can only cancel appointments more than 3 days in advance")
)
