package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Property struct {
	ID       string
	TenantID string
	Name     string
	Timezone string // IANA name, e.g. America/New_York
}

// PropertyScope identifies a property within a tenant. Property IDs are only
// unique per tenant, so every read is scoped by both.
type PropertyScope struct {
	PropertyID string
	TenantID   string
}

type Reservation struct {
	ID          string
	PropertyID  string
	TenantID    string
	CheckIn     time.Time // absolute instant, not localized
	TotalAmount decimal.Decimal
}
