package domain

import (
	"fmt"
	"time"
)

const (
	MinReportYear = 1900
	MaxReportYear = 2100
)

// Period is an explicit reporting month requested by a caller.
type Period struct {
	Month time.Month
	Year  int
}

// MonthWindow is a calendar month in a property's local wall-clock time.
// Boundaries are expressed on a zone-less clock (UTC location) holding the
// local wall-clock fields, so they compare directly against values produced
// by a wall-clock conversion.
type MonthWindow struct {
	Year  int
	Month time.Month
}

func NewMonthWindow(wall time.Time) MonthWindow {
	return MonthWindow{Year: wall.Year(), Month: wall.Month()}
}

func (w MonthWindow) Start() time.Time {
	return time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
}

// End is the start of the following calendar month.
func (w MonthWindow) End() time.Time {
	return w.Start().AddDate(0, 1, 0)
}

// PriorStart is the start of the preceding calendar month.
func (w MonthWindow) PriorStart() time.Time {
	return w.Start().AddDate(0, -1, 0)
}

// Date renders the window start as YYYY-MM-DD.
func (w MonthWindow) Date() string {
	return w.Start().Format(time.DateOnly)
}

func (w MonthWindow) String() string {
	return fmt.Sprintf("%04d-%02d", w.Year, int(w.Month))
}
