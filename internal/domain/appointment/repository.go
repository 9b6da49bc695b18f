package appointment

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListFilter struct {
	Status string
	Branch string
	Date   string
}

type Repository interface {
	// -------- Appointment (create / read) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// GetAppointment returns ErrAppointmentNotFound for unknown ids.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	// FindByBookingCodeAndEmail matches both values on the same record and
	// returns ErrBookingNotFound otherwise.
	FindByBookingCodeAndEmail(
		ctx context.Context,
		code string,
		email string,
	) (*models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	// -------- Appointment (state change) --------
	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	BookingCodeExists(
		ctx context.Context,
		code string,
	) (bool, error)

	// -------- Slots --------
	ListBookedTimes(
		ctx context.Context,
		branch string,
		date string,
	) ([]string, error)

	HasAcceptedInSlot(
		ctx context.Context,
		branch string,
		date string,
		slot string,
		excludeID uint,
	) (bool, error)

	// -------- Stats --------
	CountByStatus(ctx context.Context) (map[string]int64, error)

	CountUpcoming(ctx context.Context, today string) (int64, error)

	// -------- Patient --------
	GetOrCreatePatient(
		ctx context.Context,
		name string,
		email string,
		phone string,
	) (*models.Patient, error)
}

// SlotLocker serialises work on one (branch, date, time) slot.
type SlotLocker interface {
	WithSlotLock(ctx context.Context, branch, date, slot string, fn func(ctx context.Context) error) error
}
