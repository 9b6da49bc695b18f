package appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

const maxCodeAttempts = 5

var ErrBookingCodeExhausted = errors.New("could not issue a unique booking code")

// ======================================================
// INPUT
// ======================================================

type SetStatusInput struct {
	ID     uint
	Status string

	// Blank Date/Time keep the stored values.
	Date string
	Time string

	Remarks *string
	Actor   string
}

// ======================================================
// USE CASE
// ======================================================

type SetStatus struct {
	repo    domain.Repository
	catalog domain.Catalog
	locker domain.SlotLocker
	codes  *domain.BookingCodeGenerator
	sender notify.Sender
	audit  *audit.Dispatcher
	log    zerolog.Logger
	now    func() time.Time
}

func NewSetStatus(
	repo domain.Repository,
	catalog domain.Catalog,
	locker domain.SlotLocker,
	codes *domain.BookingCodeGenerator,
	sender notify.Sender,
	audit *audit.Dispatcher,
	log zerolog.Logger,
	now func() time.Time,
) *SetStatus {
	return &SetStatus{
		repo:    repo,
		catalog: catalog,
		locker:  locker,
		codes:   codes,
		sender:  sender,
		audit:   audit,
		log:     log,
		now:     now,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *SetStatus) Execute(
	ctx context.Context,
	in SetStatusInput,
) (*models.Appointment, error) {

	status, err := domain.ParseStatus(in.Status)
	if err != nil {
		return nil, err
	}

	if in.Date != "" {
		if _, err := domain.ParseDate(in.Date, time.UTC); err != nil {
			return nil, err
		}
	}
	if in.Time != "" {
		if !domain.ValidTime(in.Time) {
			return nil, httperr.Validation("invalid_time", "Time must be HH:MM")
		}
		if err := uc.catalog.CheckSlot(in.Time); err != nil {
			return nil, err
		}
	}

	ap, err := uc.repo.GetAppointment(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	// A new date must be bookable; an unchanged one may already be past.
	if d := domain.NormalizeDate(in.Date); d != "" && d != ap.Date {
		if err := domain.WithinHorizon(d, uc.now()); err != nil {
			return nil, err
		}
	}

	domain.Reschedule(ap, in.Date, in.Time)

	var action string
	switch status {
	case domain.StatusAccepted:
		if err := uc.accept(ctx, ap); err != nil {
			return nil, err
		}
		action = audit.ActionAppointmentAccepted

	case domain.StatusCancelled:
		domain.Cancel(ap, in.Remarks, uc.now())
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
		action = audit.ActionAppointmentCancelled

	case domain.StatusPending:
		domain.Reopen(ap, uc.now())
		if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
			return nil, err
		}
		action = audit.ActionAppointmentReopened
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    in.Actor,
		Action:   action,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"date": ap.Date,
			"time": ap.Time,
		},
	})

	if status == domain.StatusAccepted {
		uc.sendConfirmation(ctx, ap)
	}

	return ap, nil
}

// accept re-checks the slot and persists under the slot lock.
func (uc *SetStatus) accept(ctx context.Context, ap *models.Appointment) error {
	return uc.locker.WithSlotLock(ctx, ap.Branch, ap.Date, ap.Time, func(ctx context.Context) error {
		taken, err := uc.repo.HasAcceptedInSlot(ctx, ap.Branch, ap.Date, ap.Time, ap.ID)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrSlotAlreadyBooked
		}

		var code string
		if !domain.HasBookingCode(ap) {
			if code, err = uc.uniqueCode(ctx); err != nil {
				return err
			}
		}

		domain.Accept(ap, code, uc.now())
		return uc.repo.UpdateAppointment(ctx, ap)
	})
}

func (uc *SetStatus) uniqueCode(ctx context.Context) (string, error) {
	for i := 0; i < maxCodeAttempts; i++ {
		code, err := uc.codes.Generate()
		if err != nil {
			return "", fmt.Errorf("generate booking code: %w", err)
		}

		exists, err := uc.repo.BookingCodeExists(ctx, code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", ErrBookingCodeExhausted
}

// sendConfirmation never fails the status change.
func (uc *SetStatus) sendConfirmation(ctx context.Context, ap *models.Appointment) {
	msg, err := notify.AcceptedConfirmation(ap)
	if err == nil {
		err = uc.sender.Send(ctx, msg)
	}
	if err == nil {
		return
	}

	uc.log.Warn().
		Err(err).
		Uint("appointment_id", ap.ID).
		Msg("confirmation mail failed")

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorSystem,
		Action:   audit.ActionNotificationFailed,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{"error": err.Error()},
	})
}
