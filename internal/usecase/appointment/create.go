package appointment

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	Name      string
	Email     string
	Phone     string
	Procedure string
	Branch    string
	Date      string
	Time      string

	UnderHMO            string
	HMOProvider         string
	HMOMembershipNumber string
	Employer            string
}

func (in CreateAppointmentInput) fields() domain.BookingFields {
	return domain.BookingFields{
		Name:                in.Name,
		Email:               in.Email,
		Phone:               in.Phone,
		Procedure:           in.Procedure,
		Branch:              in.Branch,
		Date:                in.Date,
		Time:                in.Time,
		UnderHMO:            in.UnderHMO,
		HMOProvider:         in.HMOProvider,
		HMOMembershipNumber: in.HMOMembershipNumber,
		Employer:            in.Employer,
	}
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo       domain.Repository
	catalog    domain.Catalog
	audit      *audit.Dispatcher
	now        func() time.Time
	emailCheck func(ctx context.Context, email string) bool
}

func NewCreateAppointment(
	repo domain.Repository,
	catalog domain.Catalog,
	audit *audit.Dispatcher,
	now func() time.Time,
) *CreateAppointment {
	return &CreateAppointment{
		repo:    repo,
		catalog: catalog,
		audit:   audit,
		now:     now,
	}
}

// WithEmailCheck rejects bookings whose email fails check.
func (uc *CreateAppointment) WithEmailCheck(check func(ctx context.Context, email string) bool) *CreateAppointment {
	uc.emailCheck = check
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// Schema
	// --------------------------------------------------
	f := in.fields()
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Branch / slot / email / horizon
	// --------------------------------------------------
	if err := uc.catalog.Check(f.Branch, f.Time); err != nil {
		return nil, err
	}

	if uc.emailCheck != nil && !uc.emailCheck(ctx, f.Email) {
		return nil, httperr.Validation("invalid_email_domain", "Email domain does not accept mail")
	}

	now := uc.now()
	if err := domain.WithinHorizon(f.Date, now); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Patient (get or create)
	// --------------------------------------------------
	if _, err := uc.repo.GetOrCreatePatient(ctx, f.Name, f.Email, f.Phone); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Persist
	// --------------------------------------------------
	ap := domain.NewAppointment(f, now)
	if err := uc.repo.CreateAppointment(ctx, ap); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Actor:    audit.ActorPatient,
		Action:   audit.ActionAppointmentCreated,
		Entity:   "appointment",
		EntityID: &ap.ID,
		Metadata: map[string]string{
			"branch": ap.Branch,
			"date":   ap.Date,
			"time":   ap.Time,
		},
	})

	return ap, nil
}
