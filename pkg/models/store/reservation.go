package store

import (
	"database/sql"
	"time"

	"github.com/shopspring/decimal"
)

// ReservationRow is one row of the property/reservation join. A property
// without reservations yields a single row whose reservation columns are null.
type ReservationRow struct {
	Timezone string
	ID       sql.NullString
	CheckIn  sql.NullTime
	Amount   decimal.NullDecimal
}

// TimeRange bounds check-in instants, start inclusive, end exclusive.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

type ReservationFilter struct {
	PropertyID string
	TenantID   string
	CheckIn    *TimeRange
}

type PropertyRecord struct {
	ID       string
	TenantID string
	Name     string
	Timezone string
}

type ReservationRecord struct {
	ID          string
	PropertyID  string
	TenantID    string
	CheckIn     time.Time
	TotalAmount decimal.Decimal
}
