package appointment

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func NewAppointment(f BookingFields, now time.Time) *models.Appointment {
	provider, membership, employer := f.HMODetails()

	return &models.Appointment{
		Name:                f.Name,
		Email:               f.Email,
		Phone:               f.Phone,
		Procedure:           f.Procedure,
		Branch:              f.Branch,
		Date:                f.Date,
		Time:                f.Time,
		UnderHMO:            f.UnderHMO,
		HMOProvider:         provider,
		HMOMembershipNumber: membership,
		Employer:            employer,
		Status:              string(InitialStatus()),
		LastUpdate:          now,
	}
}

// Reschedule replaces date and time when given; blank values keep the
// stored ones.
func Reschedule(ap *models.Appointment, date, slot string) {
	if d := NormalizeDate(date); d != "" {
		ap.Date = d
	}
	if slot != "" {
		ap.Time = slot
	}
}

// Accept keeps an already issued booking code; code is only used the
// first time an appointment is accepted.
func Accept(ap *models.Appointment, code string, now time.Time) {
	ap.Status = string(StatusAccepted)
	if !HasBookingCode(ap) {
		ap.BookingCode = &code
	}
	ap.LastUpdate = now
}

func Cancel(ap *models.Appointment, remarks *string, now time.Time) {
	ap.Status = string(StatusCancelled)
	ap.Remarks = remarks
	ap.LastUpdate = now
}

func Reopen(ap *models.Appointment, now time.Time) {
	ap.Status = string(StatusPending)
	ap.LastUpdate = now
}

func CancelByPatient(ap *models.Appointment, now time.Time) error {
	if err := CanSelfCancel(ap, now); err != nil {
		return err
	}
	remark := PatientCancelRemark
	Cancel(ap, &remark, now)
	return nil
}

func HasBookingCode(ap *models.Appointment) bool {
	return ap.BookingCode != nil && *ap.BookingCode != ""
}
