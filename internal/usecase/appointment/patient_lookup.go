package appointment

import (
	"context"
	"strings"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type LookupAppointment struct {
	repo domain.Repository
}

func NewLookupAppointment(repo domain.Repository) *LookupAppointment {
	return &LookupAppointment{repo: repo}
}

func (uc *LookupAppointment) Execute(
	ctx context.Context,
	bookingCode string,
	email string,
) (dto.LookupResult, error) {

	ap, err := findBooking(ctx, uc.repo, bookingCode, email)
	if err != nil {
		return dto.LookupResult{}, err
	}

	return dto.LookupResult{
		Date:   ap.Date,
		Status: ap.Status,
	}, nil
}

// findBooking requires both values and an exact match on one record.
func findBooking(
	ctx context.Context,
	repo domain.Repository,
	bookingCode string,
	email string,
) (*models.Appointment, error) {

	bookingCode = strings.TrimSpace(bookingCode)
	email = strings.TrimSpace(email)
	if bookingCode == "" || email == "" {
		return nil, httperr.Validation("missing_fields", "Booking ID and email are required")
	}

	return repo.FindByBookingCodeAndEmail(ctx, bookingCode, email)
}
