package appointment

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	HMOYes = "Yes"
	HMONo  = "No"
)

// BookingFields is the booking request schema. HMO details are required
// together when UnderHMO is "Yes" and discarded otherwise.
type BookingFields struct {
	Name      string `validate:"required,max=100"`
	Email     string `validate:"required,email,max=100"`
	Phone     string `validate:"required,max=30"`
	Procedure string `validate:"required,max=100"`
	Branch    string `validate:"required,max=50"`
	Date      string `validate:"required,datetime=2006-01-02"`
	Time      string `validate:"required,len=5,datetime=15:04"`

	UnderHMO            string `validate:"oneof=Yes No"`
	HMOProvider         string `validate:"required_if=UnderHMO Yes,max=100"`
	HMOMembershipNumber string `validate:"required_if=UnderHMO Yes,max=100"`
	Employer            string `validate:"required_if=UnderHMO Yes,max=100"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Normalize trims every field, truncates the date to its calendar part and
// defaults the HMO flag to "No".
func (f *BookingFields) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.Procedure = strings.TrimSpace(f.Procedure)
	f.Branch = strings.TrimSpace(f.Branch)
	f.Date = NormalizeDate(f.Date)
	f.Time = strings.TrimSpace(f.Time)
	f.UnderHMO = strings.TrimSpace(f.UnderHMO)
	f.HMOProvider = strings.TrimSpace(f.HMOProvider)
	f.HMOMembershipNumber = strings.TrimSpace(f.HMOMembershipNumber)
	f.Employer = strings.TrimSpace(f.Employer)

	if f.UnderHMO == "" {
		f.UnderHMO = HMONo
	}
}

// Validate runs the schema. Callers should Normalize first.
func (f *BookingFields) Validate() error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return httperr.Validation("invalid_request", err.Error())
	}

	var missing, invalid []string
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required", "required_if":
			missing = append(missing, fe.Field())
		default:
			invalid = append(invalid, fe.Field())
		}
	}
	if len(missing) > 0 {
		return httperr.Validation("missing_fields", "Missing required fields: "+strings.Join(missing, ", "))
	}
	return httperr.Validation("invalid_fields", "Invalid fields: "+strings.Join(invalid, ", "))
}

// HMODetails returns the optional HMO columns, nil when not under HMO or blank.
func (f *BookingFields) HMODetails() (provider, membership, employer *string) {
	if f.UnderHMO != HMOYes {
		return nil, nil, nil
	}
	return optional(f.HMOProvider), optional(f.HMOMembershipNumber), optional(f.Employer)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
