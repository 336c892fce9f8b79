package adapters

import (
	"github.com/de-tools/revenue-atlas/pkg/models/api"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
)

func formatAmount(r domain.RevenueReport) string {
	return revenue.FormatAmount(r.Total)
}

func reportMonth(r domain.RevenueReport) *string {
	if r.ReportMonth == nil {
		return nil
	}
	d := r.ReportMonth.Date()
	return &d
}

func MapRevenueReportDomainToApi(r domain.RevenueReport) api.RevenueReport {
	return api.RevenueReport{
		PropertyID:      r.PropertyID,
		TenantID:        r.TenantID,
		Total:           formatAmount(r),
		Currency:        r.Currency,
		Count:           r.Count,
		ReportMonth:     reportMonth(r),
		TrendPercentage: r.TrendPercentage,
	}
}

func MapRevenueReportDomainToDashboard(r domain.RevenueReport) api.DashboardSummary {
	return api.DashboardSummary{
		PropertyID:        r.PropertyID,
		TotalRevenue:      formatAmount(r),
		Currency:          r.Currency,
		ReservationsCount: r.Count,
		ReportMonth:       reportMonth(r),
		TrendPercentage:   r.TrendPercentage,
	}
}

func MapPropertyStoreToDomain(p store.PropertyRecord) domain.Property {
	return domain.Property{
		ID:       p.ID,
		TenantID: p.TenantID,
		Name:     p.Name,
		Timezone: p.Timezone,
	}
}

func MapPropertyDomainToApi(p domain.Property) api.Property {
	return api.Property{ID: p.ID, Name: p.Name}
}

func MapPropertyDomainToStore(p domain.Property) store.PropertyRecord {
	return store.PropertyRecord{
		ID:       p.ID,
		TenantID: p.TenantID,
		Name:     p.Name,
		Timezone: p.Timezone,
	}
}

func MapReservationDomainToStore(r domain.Reservation) store.ReservationRecord {
	return store.ReservationRecord{
		ID:          r.ID,
		PropertyID:  r.PropertyID,
		TenantID:    r.TenantID,
		CheckIn:     r.CheckIn,
		TotalAmount: r.TotalAmount,
	}
}
