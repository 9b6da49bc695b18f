package appointment

import (
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// NormalizeDate truncates combined date-time values ("2025-09-10T00:00:00.000Z",
// "2025-09-10 08:00:00") to their calendar date.
func NormalizeDate(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexAny(s, "T "); i >= 0 {
		s = s[:i]
	}
	return s
}

func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, NormalizeDate(s), loc)
	if err != nil {
		return time.Time{}, httperr.Validation("invalid_date", "Date must be YYYY-MM-DD")
	}
	return d, nil
}

func ValidTime(s string) bool {
	_, err := time.Parse(TimeLayout, s)
	return err == nil && len(s) == len(TimeLayout)
}

// DaysUntil counts whole calendar days from today's date to date, both
// taken in today's location.
func DaysUntil(date string, today time.Time) (int, error) {
	loc := today.Location()
	target, err := ParseDate(date, loc)
	if err != nil {
		return 0, err
	}
	start := time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, loc)

	// Round to absorb DST shifts between the two midnights.
	hours := target.Sub(start).Hours()
	if hours >= 0 {
		return int((hours + 12) / 24), nil
	}
	return -int((-hours + 12) / 24), nil
}

func TodayString(now time.Time) string {
	return now.Format(DateLayout)
}
