package appointment

import (
	"context"
	"strings"
	"time"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// GetBookedSlots lists the accepted times of one branch and day. The
// result is advisory; acceptance re-checks the slot.
type GetBookedSlots struct {
	repo domain.Repository
}

func NewGetBookedSlots(repo domain.Repository) *GetBookedSlots {
	return &GetBookedSlots{repo: repo}
}

func (uc *GetBookedSlots) Execute(
	ctx context.Context,
	branch string,
	date string,
) ([]string, error) {

	branch = strings.TrimSpace(branch)
	if branch == "" {
		return nil, httperr.Validation("missing_branch", "branch is required")
	}

	date = domain.NormalizeDate(date)
	if date == "" {
		return nil, httperr.Validation("missing_date", "date is required")
	}
	if _, err := domain.ParseDate(date, time.UTC); err != nil {
		return nil, err
	}

	times, err := uc.repo.ListBookedTimes(ctx, branch, date)
	if err != nil {
		return nil, err
	}
	if times == nil {
		times = []string{}
	}
	return times, nil
}
