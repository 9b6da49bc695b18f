package appointment

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/testutil"
)

type busyLocker struct{}

func (busyLocker) WithSlotLock(context.Context, string, string, string, func(ctx context.Context) error) error {
	return domain.ErrSlotBeingBooked
}

// seqReader yields a fixed byte pattern so generated codes are predictable.
type seqReader struct{ b byte }

func (r *seqReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = r.b
	}
	return len(p), nil
}

var manila = mustLoad("Asia/Manila")

func mustLoad(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("PHT", 8*3600)
	}
	return loc
}

func fixedClock(year int, month time.Month, day, hour int) func() time.Time {
	t := time.Date(year, month, day, hour, 0, 0, 0, manila)
	return func() time.Time { return t }
}

type fixture struct {
	repo   *testutil.MemRepo
	sender *testutil.StubSender
	locker *testutil.CountingLocker
}

func newFixture() *fixture {
	return &fixture{
		repo:   testutil.NewMemRepo(),
		sender: &testutil.StubSender{},
		locker: &testutil.CountingLocker{},
	}
}

var clinicCatalog = domain.Catalog{
	Branches: []string{"Binan", "Pasig"},
	Slots:    []string{"09:00", "10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"},
}

func (f *fixture) create(now func() time.Time) *CreateAppointment {
	return NewCreateAppointment(f.repo, clinicCatalog, nil, now)
}

func (f *fixture) setStatus(now func() time.Time) *SetStatus {
	return NewSetStatus(f.repo, clinicCatalog, f.locker, domain.NewBookingCodeGenerator(), f.sender, nil, zerolog.Nop(), now)
}

func validInput() CreateAppointmentInput {
	return CreateAppointmentInput{
		Name:      "Juan Dela Cruz",
		Email:     "juan@example.com",
		Phone:     "09171234567",
		Procedure: "Cleaning",
		Branch:    "Binan",
		Date:      "2025-09-10",
		Time:      "14:00",
		UnderHMO:  "No",
	}
}
