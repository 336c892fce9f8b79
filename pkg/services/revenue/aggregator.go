package revenue

import (
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/shopspring/decimal"
)

var (
	one      = decimal.NewFromInt(1)
	two      = decimal.NewFromInt(2)
	thousand = decimal.NewFromInt(1000)
)

func inTargetWindow(w domain.MonthWindow, wall time.Time) bool {
	return !wall.Before(w.Start()) && wall.Before(w.End())
}

func inPriorWindow(w domain.MonthWindow, wall time.Time) bool {
	return !wall.Before(w.PriorStart()) && wall.Before(w.Start())
}

// Aggregator folds reservations into target-month and prior-month totals in a
// single pass. Without an explicit period the first observed reservation fixes
// the window, so rows must then arrive newest first.
type Aggregator struct {
	loc    *time.Location
	window *domain.MonthWindow
	floor  time.Time

	target decimal.Decimal
	prior  decimal.Decimal
	count  int
}

func NewAggregator(loc *time.Location, period *domain.Period) *Aggregator {
	a := &Aggregator{loc: loc}
	if period != nil {
		a.setWindow(ResolveWindow(period, nil))
	}
	return a
}

func (a *Aggregator) setWindow(w *domain.MonthWindow) {
	a.window = w
	a.floor, _ = candidateRange(*w)
}

// Observe adds one reservation. It reports false once the check-in is older
// than anything the window or its prior month can contain; with newest-first
// input no later row can match either.
func (a *Aggregator) Observe(checkIn time.Time, amount decimal.Decimal) bool {
	wall := WallClock(checkIn, a.loc)
	if a.window == nil {
		a.setWindow(ResolveWindow(nil, &wall))
	}

	switch {
	case inTargetWindow(*a.window, wall):
		a.target = a.target.Add(amount)
		a.count++
	case inPriorWindow(*a.window, wall):
		a.prior = a.prior.Add(amount)
	}

	return !checkIn.Before(a.floor)
}

func (a *Aggregator) Window() *domain.MonthWindow {
	return a.window
}

func (a *Aggregator) Report(scope domain.PropertyScope) *domain.RevenueReport {
	report := &domain.RevenueReport{
		PropertyID: scope.PropertyID,
		TenantID:   scope.TenantID,
		Total:      a.target,
		PriorTotal: a.prior,
		Currency:   domain.ReportingCurrency,
		Count:      a.count,
	}
	if a.window != nil {
		w := *a.window
		report.ReportMonth = &w
		report.TrendPercentage = Trend(a.target, a.prior)
	}
	return report
}

// EmptyReport is the report for a property with no resolvable window.
func EmptyReport(scope domain.PropertyScope) *domain.RevenueReport {
	return &domain.RevenueReport{
		PropertyID: scope.PropertyID,
		TenantID:   scope.TenantID,
		Currency:   domain.ReportingCurrency,
	}
}

// Trend is the month-over-month change in percent, rounded half-up to one
// decimal place. Nil without a positive prior-month baseline.
func Trend(target, prior decimal.Decimal) *float64 {
	if !prior.IsPositive() {
		return nil
	}
	// tenths of a percent: (target-prior) * 100 * 10 / prior
	scaled := target.Sub(prior).Mul(thousand)
	q, r := scaled.QuoRem(prior, 0)
	if r.Abs().Mul(two).GreaterThanOrEqual(prior) {
		if scaled.IsNegative() {
			q = q.Sub(one)
		} else {
			q = q.Add(one)
		}
	}
	pct, _ := q.Shift(-1).Float64()
	return &pct
}

// FormatAmount renders a monetary amount with two decimals, rounding half-up.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}
