package revenue

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/reservation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type Service interface {
	GetRevenueSummary(ctx context.Context, req domain.SummaryRequest) (*domain.RevenueReport, error)
}

// SessionProvider hands out one scoped connection per logical operation.
type SessionProvider interface {
	WithSession(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error
}

type service struct {
	sessions     SessionProvider
	reservations reservation.Store
}

func NewService(sessions SessionProvider, reservations reservation.Store) Service {
	return &service{
		sessions:     sessions,
		reservations: reservations,
	}
}

func (s *service) GetRevenueSummary(ctx context.Context, req domain.SummaryRequest) (*domain.RevenueReport, error) {
	logger := zerolog.Ctx(ctx)

	period, err := ValidatePeriod(req.Month, req.Year)
	if err != nil {
		return nil, err
	}

	scope := domain.PropertyScope{PropertyID: req.PropertyID, TenantID: req.TenantID}
	filter := store.ReservationFilter{
		PropertyID: req.PropertyID,
		TenantID:   req.TenantID,
	}
	if period != nil {
		start, end := candidateRange(*ResolveWindow(period, nil))
		filter.CheckIn = &store.TimeRange{Start: start, End: end}
	}

	var agg *Aggregator
	err = s.sessions.WithSession(ctx, func(ctx context.Context, conn *sql.Conn) error {
		return s.reservations.Stream(ctx, conn, filter, func(row store.ReservationRow) (bool, error) {
			if agg == nil {
				loc, err := LoadLocation(row.Timezone)
				if err != nil {
					return false, err
				}
				agg = NewAggregator(loc, period)
			}
			if !row.CheckIn.Valid {
				return true, nil
			}
			amount := decimal.Zero
			if row.Amount.Valid {
				amount = row.Amount.Decimal
			}
			return agg.Observe(row.CheckIn.Time, amount), nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("aggregate revenue for property %s: %w", req.PropertyID, err)
	}

	if agg == nil {
		logger.Debug().
			Str("property_id", req.PropertyID).
			Str("tenant_id", req.TenantID).
			Msg("property not found in scope, returning empty report")
		return EmptyReport(scope), nil
	}

	report := agg.Report(scope)
	event := logger.Debug().
		Str("property_id", req.PropertyID).
		Str("tenant_id", req.TenantID).
		Str("total", FormatAmount(report.Total)).
		Int("count", report.Count)
	if report.ReportMonth != nil {
		event = event.Str("report_month", report.ReportMonth.String())
	}
	event.Msg("revenue summary computed")

	return report, nil
}
