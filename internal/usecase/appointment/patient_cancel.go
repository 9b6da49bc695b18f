package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
)

// PatientCancel lets a patient cancel with booking code and email, more
// than SelfCancelMinDays ahead in clinic time.
type PatientCancel struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	now   func() time.Time
}

func NewPatientCancel(
	repo domain.Repository,
	audit *audit.Dispatcher,
	now func() time.Time,
) *PatientCancel {
	return &PatientCancel{
		repo:  repo,
		audit: audit,
		now:   now,
	}
}

func (uc *PatientCancel) Execute(
	ctx context.Context,
	bookingCode string,
	email string,
) error {

	ap, err := findBooking(ctx, uc.repo, bookingCode, email)
	if err != nil {
		return err
	}

	if err := domain.CancelByPatient(ap, uc.now()); err != nil {
		return err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPatient,
		Action:   audit.ActionPatientCancelled,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return nil
}
