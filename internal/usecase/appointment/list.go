package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// LIST
// ======================================================

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(repo domain.Repository) *ListAppointments {
	return &ListAppointments{repo: repo}
}

func (uc *ListAppointments) Execute(
	ctx context.Context,
	filter domain.ListFilter,
) ([]models.Appointment, error) {

	if filter.Status != "" {
		if _, err := domain.ParseStatus(filter.Status); err != nil {
			return nil, err
		}
	}
	if filter.Date != "" {
		filter.Date = domain.NormalizeDate(filter.Date)
		if _, err := domain.ParseDate(filter.Date, time.UTC); err != nil {
			return nil, err
		}
	}

	return uc.repo.ListAppointments(ctx, filter)
}

// ======================================================
// GET
// ======================================================

type GetAppointment struct {
	repo domain.Repository
}

func NewGetAppointment(repo domain.Repository) *GetAppointment {
	return &GetAppointment{repo: repo}
}

func (uc *GetAppointment) Execute(ctx context.Context, id uint) (*models.Appointment, error) {
	return uc.repo.GetAppointment(ctx, id)
}

// ======================================================
// STATS
// ======================================================

type Stats struct {
	repo domain.Repository
	now  func() time.Time
}

func NewStats(repo domain.Repository, now func() time.Time) *Stats {
	return &Stats{repo: repo, now: now}
}

func (uc *Stats) Execute(ctx context.Context) (dto.AppointmentStats, error) {
	counts, err := uc.repo.CountByStatus(ctx)
	if err != nil {
		return dto.AppointmentStats{}, err
	}

	upcoming, err := uc.repo.CountUpcoming(ctx, domain.TodayString(uc.now()))
	if err != nil {
		return dto.AppointmentStats{}, err
	}

	out := dto.AppointmentStats{
		Pending:   counts[string(domain.StatusPending)],
		Accepted:  counts[string(domain.StatusAccepted)],
		Cancelled: counts[string(domain.StatusCancelled)],
		Upcoming:  upcoming,
	}
	for _, n := range counts {
		out.Total += n
	}
	return out, nil
}
