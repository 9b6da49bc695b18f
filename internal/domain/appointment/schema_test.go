package appointment

import (
	"testing"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

func validFields() BookingFields {
	return BookingFields{
		Name:      "Juan Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		Procedure: "Cleaning",
		Branch:    "Binan",
		Date:      "2025-09-10",
		Time:      "14:00",
	}
}

func TestBookingFields_Valid(t *testing.T) {
	f := validFields()
	f.Normalize()
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.UnderHMO != HMONo {
		t.Errorf("expected HMO flag to default to No, got %q", f.UnderHMO)
	}
}

func TestBookingFields_MissingRequired(t *testing.T) {
	fields := []func(f *BookingFields){
		func(f *BookingFields) { f.Name = "" },
		func(f *BookingFields) { f.Email = "  " },
		func(f *BookingFields) { f.Phone = "" },
		func(f *BookingFields) { f.Procedure = "" },
		func(f *BookingFields) { f.Branch = "" },
		func(f *BookingFields) { f.Date = "" },
		func(f *BookingFields) { f.Time = "" },
	}
	for i, mutate := range fields {
		f := validFields()
		mutate(&f)
		f.Normalize()
		if err := f.Validate(); !httperr.IsBusiness(err, "missing_fields") {
			t.Errorf("case %d: expected missing_fields, got %v", i, err)
		}
	}
}

func TestBookingFields_Malformed(t *testing.T) {
	f := validFields()
	f.Email = "not-an-email"
	f.Normalize()
	if err := f.Validate(); !httperr.IsBusiness(err, "invalid_fields") {
		t.Errorf("expected invalid_fields for email, got %v", err)
	}

	f = validFields()
	f.UnderHMO = "true"
	f.Normalize()
	if err := f.Validate(); !httperr.IsBusiness(err, "invalid_fields") {
		t.Errorf("expected invalid_fields for HMO flag, got %v", err)
	}
}

func TestBookingFields_DateTimeIsTruncated(t *testing.T) {
	f := validFields()
	f.Date = "2025-09-10T00:00:00.000Z"
	f.Normalize()
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.Date != "2025-09-10" {
		t.Errorf("expected truncated date, got %q", f.Date)
	}
}

func TestBookingFields_HMORequiredTogether(t *testing.T) {
	f := validFields()
	f.UnderHMO = HMOYes
	f.HMOProvider = "Maxicare"
	f.Normalize()
	if err := f.Validate(); !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}

	f.HMOMembershipNumber = "M-123"
	f.Employer = "Acme"
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	provider, membership, employer := f.HMODetails()
	if provider == nil || *provider != "Maxicare" || membership == nil || employer == nil {
		t.Errorf("expected all HMO details, got %v %v %v", provider, membership, employer)
	}
}

func TestBookingFields_HMODroppedWhenNotUnderHMO(t *testing.T) {
	f := validFields()
	f.UnderHMO = HMONo
	f.HMOProvider = "Maxicare"
	f.Normalize()
	if err := f.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	provider, membership, employer := f.HMODetails()
	if provider != nil || membership != nil || employer != nil {
		t.Error("HMO details must be absent when not under HMO")
	}
}

func TestBookingFields_TimeMustBeZeroPadded(t *testing.T) {
	for _, tm := range []string{"9:00", "09:0", "9:5", "14:00:00"} {
		f := validFields()
		f.Time = tm
		f.Normalize()
		if err := f.Validate(); !httperr.IsBusiness(err, "invalid_fields") {
			t.Errorf("%q: expected invalid_fields, got %v", tm, err)
		}
		if ValidTime(tm) {
			t.Errorf("%q: ValidTime should reject it", tm)
		}
	}
}
