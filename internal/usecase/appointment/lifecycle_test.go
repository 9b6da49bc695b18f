package appointment

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/testutil"
)

func TestCreateAppointment_PersistsPending(t *testing.T) {
	f := newFixture()
	uc := f.create(fixedClock(2025, 9, 1, 10))

	ap, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.ID == 0 {
		t.Error("expected id to be assigned")
	}
	if ap.Status != "pending" {
		t.Errorf("expected pending, got %q", ap.Status)
	}
	if ap.BookingCode != nil {
		t.Errorf("expected no booking code, got %q", *ap.BookingCode)
	}
	if ap.HMOProvider != nil || ap.Employer != nil {
		t.Error("expected HMO fields to be nil")
	}
	if _, ok := f.repo.Patients["juan@example.com"]; !ok {
		t.Error("expected patient record to be created")
	}
}

func TestCreateAppointment_NormalizesDate(t *testing.T) {
	f := newFixture()
	uc := f.create(fixedClock(2025, 9, 1, 10))

	in := validInput()
	in.Date = "2025-09-10T00:00:00.000Z"

	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.Date != "2025-09-10" {
		t.Errorf("expected 2025-09-10, got %q", ap.Date)
	}
}

func TestCreateAppointment_HMOFields(t *testing.T) {
	f := newFixture()
	uc := f.create(fixedClock(2025, 9, 1, 10))

	in := validInput()
	in.UnderHMO = "Yes"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}

	in.HMOProvider = "Maxicare"
	in.HMOMembershipNumber = "MC-001"
	in.Employer = "Acme"
	ap, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.HMOProvider == nil || *ap.HMOProvider != "Maxicare" {
		t.Errorf("expected provider to be stored, got %v", ap.HMOProvider)
	}

	in.UnderHMO = "No"
	ap, err = uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ap.HMOProvider != nil || ap.HMOMembershipNumber != nil || ap.Employer != nil {
		t.Error("expected HMO fields to be dropped when not under HMO")
	}
}

func TestCreateAppointment_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *CreateAppointmentInput)
		code   string
	}{
		{"missing name", func(in *CreateAppointmentInput) { in.Name = " " }, "missing_fields"},
		{"bad email", func(in *CreateAppointmentInput) { in.Email = "not-an-email" }, "invalid_fields"},
		{"bad hmo flag", func(in *CreateAppointmentInput) { in.UnderHMO = "maybe" }, "invalid_fields"},
		{"unknown branch", func(in *CreateAppointmentInput) { in.Branch = "Makati" }, "unknown_branch"},
		{"off-grid slot", func(in *CreateAppointmentInput) { in.Time = "14:30" }, "unknown_slot"},
		{"past date", func(in *CreateAppointmentInput) { in.Date = "2025-08-31" }, "date_in_past"},
		{"too far ahead", func(in *CreateAppointmentInput) { in.Date = "2025-10-02" }, "date_too_far"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture()
			uc := f.create(fixedClock(2025, 9, 1, 10))

			in := validInput()
			tt.mutate(&in)

			_, err := uc.Execute(context.Background(), in)
			if !httperr.IsBusiness(err, tt.code) {
				t.Fatalf("expected %s, got %v", tt.code, err)
			}
			if len(f.repo.Apps) != 0 {
				t.Error("expected nothing to be stored")
			}
		})
	}
}

func TestCreateAppointment_EmailCheck(t *testing.T) {
	f := newFixture()
	uc := f.create(fixedClock(2025, 9, 1, 10)).WithEmailCheck(func(_ context.Context, email string) bool {
		return strings.HasSuffix(email, "@example.com")
	})

	if _, err := uc.Execute(context.Background(), validInput()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	in := validInput()
	in.Email = "juan@nowhere.invalid"
	if _, err := uc.Execute(context.Background(), in); !httperr.IsBusiness(err, "invalid_email_domain") {
		t.Fatalf("expected invalid_email_domain, got %v", err)
	}
}

func TestSetStatus_AcceptIssuesCodeAndNotifies(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())

	got, err := f.setStatus(now).Execute(context.Background(), SetStatusInput{
		ID:     ap.ID,
		Status: "accepted",
		Actor:  "admin",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "accepted" {
		t.Errorf("expected accepted, got %q", got.Status)
	}
	if got.BookingCode == nil || !domain.IsBookingCode(*got.BookingCode) {
		t.Fatalf("expected a booking code, got %v", got.BookingCode)
	}
	if f.locker.Calls != 1 {
		t.Errorf("expected acceptance under the slot lock, got %d calls", f.locker.Calls)
	}

	if len(f.sender.Sent) != 1 {
		t.Fatalf("expected 1 mail, got %d", len(f.sender.Sent))
	}
	msg := f.sender.Sent[0]
	if msg.To != "juan@example.com" || msg.Subject != notify.ConfirmationSubject {
		t.Errorf("unexpected message: %+v", msg)
	}
	if !strings.Contains(msg.Text, *got.BookingCode) {
		t.Error("expected the code in the mail body")
	}
}

func TestSetStatus_ReacceptKeepsCode(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())
	uc := f.setStatus(now)

	first, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "accepted"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	code := *first.BookingCode

	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "pending"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	again, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "accepted"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *again.BookingCode != code {
		t.Errorf("expected code %s to be kept, got %s", code, *again.BookingCode)
	}
}

func TestSetStatus_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture()
	f.sender.Err = errors.New("smtp down")
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())

	got, err := f.setStatus(now).Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "accepted"})
	if err != nil {
		t.Fatalf("expected success despite mail failure, got %v", err)
	}

	stored := f.repo.Apps[ap.ID]
	if stored.Status != "accepted" || stored.BookingCode == nil || *stored.BookingCode != *got.BookingCode {
		t.Errorf("expected acceptance to persist, got %+v", stored)
	}
}

func TestSetStatus_SlotConflict(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	create := f.create(now)
	a, _ := create.Execute(context.Background(), validInput())
	b, _ := create.Execute(context.Background(), validInput())
	uc := f.setStatus(now)

	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: a.ID, Status: "accepted"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := uc.Execute(context.Background(), SetStatusInput{ID: b.ID, Status: "accepted"})
	if !errors.Is(err, domain.ErrSlotAlreadyBooked) {
		t.Fatalf("expected slot_already_booked, got %v", err)
	}
	if f.repo.Apps[b.ID].Status != "pending" {
		t.Error("expected the second appointment to stay pending")
	}

	// Moving it to a free slot succeeds.
	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: b.ID, Status: "accepted", Time: "15:00"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetStatus_SlotBeingBooked(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())

	uc := NewSetStatus(f.repo, clinicCatalog, busyLocker{}, domain.NewBookingCodeGenerator(), f.sender, nil, zerolog.Nop(), now)
	_, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "accepted"})
	if !httperr.IsKind(err, httperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if len(f.sender.Sent) != 0 {
		t.Error("expected no mail")
	}
}

func TestSetStatus_CodeCollisionsExhausted(t *testing.T) {
	f := newFixture()
	f.repo.TakenCodes["PDCAAAAAAA"] = true
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())

	gen := domain.NewBookingCodeGeneratorFrom(&seqReader{b: 0})
	uc := NewSetStatus(f.repo, clinicCatalog, f.locker, gen, f.sender, nil, zerolog.Nop(), now)

	_, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "accepted"})
	if !errors.Is(err, ErrBookingCodeExhausted) {
		t.Fatalf("expected ErrBookingCodeExhausted, got %v", err)
	}
	if f.repo.Apps[ap.ID].BookingCode != nil {
		t.Error("expected no code to be stored")
	}
}

func TestSetStatus_CancelAndReschedule(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())

	reason := "patient requested by phone"
	got, err := f.setStatus(now).Execute(context.Background(), SetStatusInput{
		ID:      ap.ID,
		Status:  "cancelled",
		Date:    "2025-09-12 00:00:00",
		Remarks: &reason,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Status != "cancelled" || got.Remarks == nil || *got.Remarks != reason {
		t.Errorf("unexpected record: %+v", got)
	}
	if got.Date != "2025-09-12" || got.Time != "14:00" {
		t.Errorf("expected date replaced and time kept, got %s %s", got.Date, got.Time)
	}
	if len(f.sender.Sent) != 0 {
		t.Error("expected no mail on cancellation")
	}
}

func TestSetStatus_Errors(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())
	uc := f.setStatus(now)

	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "done"}); !httperr.IsBusiness(err, "invalid_status") {
		t.Errorf("expected invalid_status, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: 999, Status: "accepted"}); !errors.Is(err, domain.ErrAppointmentNotFound) {
		t.Errorf("expected not found, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "pending", Time: "2pm"}); !httperr.IsBusiness(err, "invalid_time") {
		t.Errorf("expected invalid_time, got %v", err)
	}

	f.repo.FailUpdate = true
	if _, err := uc.Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "pending"}); !errors.Is(err, testutil.ErrStoreDown) {
		t.Errorf("expected store error, got %v", err)
	}
}

func TestSetStatus_RescheduleMustBeBookable(t *testing.T) {
	f := newFixture()
	now := fixedClock(2025, 9, 1, 10)
	ap, _ := f.create(now).Execute(context.Background(), validInput())
	uc := f.setStatus(now)

	cases := []struct {
		name string
		in   SetStatusInput
		code string
	}{
		{"off-grid time", SetStatusInput{ID: ap.ID, Status: "pending", Time: "14:30"}, "unknown_slot"},
		{"past date", SetStatusInput{ID: ap.ID, Status: "pending", Date: "2025-08-30"}, "date_in_past"},
		{"beyond horizon", SetStatusInput{ID: ap.ID, Status: "accepted", Date: "2025-12-01"}, "date_too_far"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := uc.Execute(context.Background(), tc.in); !httperr.IsBusiness(err, tc.code) {
				t.Errorf("expected %s, got %v", tc.code, err)
			}
		})
	}

	stored := f.repo.Apps[ap.ID]
	if stored.Date != "2025-09-10" || stored.Time != "14:00" || stored.Status != "pending" {
		t.Errorf("rejected reschedule must not change the record: %+v", stored)
	}

	// The stored date is accepted as-is even once it has passed.
	later := fixedClock(2025, 9, 20, 10)
	if _, err := f.setStatus(later).Execute(context.Background(), SetStatusInput{ID: ap.ID, Status: "cancelled", Date: "2025-09-10"}); err != nil {
		t.Errorf("unchanged date should be allowed, got %v", err)
	}
}
