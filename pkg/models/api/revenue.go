package api

// RevenueReport mirrors the engine output shape.
type RevenueReport struct {
	PropertyID      string   `json:"property_id"`
	TenantID        string   `json:"tenant_id"`
	Total           string   `json:"total"`
	Currency        string   `json:"currency"`
	Count           int      `json:"count"`
	ReportMonth     *string  `json:"report_month"`
	TrendPercentage *float64 `json:"trend_percentage"`
}

type DashboardSummary struct {
	PropertyID        string   `json:"property_id"`
	TotalRevenue      string   `json:"total_revenue"`
	Currency          string   `json:"currency"`
	ReservationsCount int      `json:"reservations_count"`
	ReportMonth       *string  `json:"report_month"`
	TrendPercentage   *float64 `json:"trend_percentage"`
}

type Property struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type PropertyList struct {
	Properties []Property `json:"properties"`
}

type Error struct {
	Detail string `json:"detail"`
}

type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
}
