package domain

import "github.com/shopspring/decimal"

const ReportingCurrency = "USD"

type SummaryRequest struct {
	PropertyID string
	TenantID   string
	Month      *int
	Year       *int
}

// RevenueReport is the per-request output of the aggregation engine.
// ReportMonth and TrendPercentage are nil when there is no activity or no
// prior-month baseline respectively.
type RevenueReport struct {
	PropertyID      string
	TenantID        string
	Total           decimal.Decimal
	PriorTotal      decimal.Decimal
	Currency        string
	Count           int
	ReportMonth     *MonthWindow
	TrendPercentage *float64
}
