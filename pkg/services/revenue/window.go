package revenue

import (
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
)

// ValidatePeriod checks an optional explicit reporting month. Both nil means
// the month is inferred from activity.
func ValidatePeriod(month, year *int) (*domain.Period, error) {
	if month == nil && year == nil {
		return nil, nil
	}
	if month == nil || year == nil {
		return nil, &domain.WindowArgsError{Detail: "month and year must be provided together"}
	}
	if *month < 1 || *month > 12 {
		return nil, &domain.WindowArgsError{Detail: fmt.Sprintf("month must be between 1 and 12, got %d", *month)}
	}
	if *year < domain.MinReportYear || *year > domain.MaxReportYear {
		return nil, &domain.WindowArgsError{Detail: fmt.Sprintf("year must be between %d and %d, got %d",
			domain.MinReportYear, domain.MaxReportYear, *year)}
	}
	return &domain.Period{Month: time.Month(*month), Year: *year}, nil
}

func LoadLocation(name string) (*time.Location, error) {
	if name == "" {
		return nil, fmt.Errorf("property timezone is empty")
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", name, err)
	}
	return loc, nil
}

// WallClock converts an absolute instant into the wall-clock reading of loc.
// The result keeps the local fields on the UTC location so it can be compared
// with MonthWindow boundaries without DST transitions moving them.
func WallClock(instant time.Time, loc *time.Location) time.Time {
	l := instant.In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), l.Nanosecond(), time.UTC)
}

// ResolveWindow picks the reporting month: the explicit period when given,
// otherwise the month holding the latest wall-clock check-in. Nil when neither
// exists.
func ResolveWindow(period *domain.Period, latest *time.Time) *domain.MonthWindow {
	if period != nil {
		return &domain.MonthWindow{Year: period.Year, Month: period.Month}
	}
	if latest == nil {
		return nil
	}
	w := domain.NewMonthWindow(*latest)
	return &w
}

// candidateRange bounds the absolute check-in instants that can land in the
// window or the month before it for any timezone. UTC offsets stay within
// [-12h, +14h], so a day of padding on each side is enough.
func candidateRange(w domain.MonthWindow) (time.Time, time.Time) {
	const pad = 24 * time.Hour
	return w.PriorStart().Add(-pad), w.End().Add(pad)
}
