package revenue

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/de-tools/revenue-atlas/pkg/store/pool"
	"github.com/de-tools/revenue-atlas/pkg/store/reservation"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reservationQuery = `SELECT p\.timezone, r\.id, r\.check_in_date, r\.total_amount\s+FROM properties p\s+LEFT JOIN reservations r`

var reservationColumns = []string{"timezone", "id", "check_in_date", "total_amount"}

type instant struct {
	expected time.Time
}

func (a instant) Match(v driver.Value) bool {
	t, ok := v.(time.Time)
	return ok && t.Equal(a.expected)
}

func newTestService(t *testing.T) (Service, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	provisioner := pool.NewProvisioner(func(ctx context.Context) (*sql.DB, error) {
		return db, nil
	}, zerolog.Nop())

	return NewService(provisioner, reservation.NewStore(database.DriverPostgres)), mock
}

func TestService_GetRevenueSummary_ExplicitMonth(t *testing.T) {
	// Given
	svc, mock := newTestService(t)
	rows := sqlmock.NewRows(reservationColumns).
		AddRow("America/New_York", "res-2", time.Date(2024, 3, 20, 18, 0, 0, 0, time.UTC), "250.50").
		AddRow("America/New_York", "res-1", time.Date(2024, 3, 5, 15, 0, 0, 0, time.UTC), "100.00").
		AddRow("America/New_York", "res-0", time.Date(2024, 2, 14, 17, 0, 0, 0, time.UTC), "200.00")
	mock.ExpectQuery(reservationQuery).
		WithArgs(
			instant{time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)},
			instant{time.Date(2024, 4, 2, 0, 0, 0, 0, time.UTC)},
			"prop-1", "tenant-a",
		).
		WillReturnRows(rows)

	// When
	report, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
		Month:      intPtr(3),
		Year:       intPtr(2024),
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, "prop-1", report.PropertyID)
	assert.Equal(t, "tenant-a", report.TenantID)
	assert.Equal(t, "350.50", FormatAmount(report.Total))
	assert.Equal(t, 2, report.Count)
	require.NotNil(t, report.ReportMonth)
	assert.Equal(t, "2024-03", report.ReportMonth.String())
	require.NotNil(t, report.TrendPercentage)
	assert.Equal(t, 75.3, *report.TrendPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetRevenueSummary_InferredMonth(t *testing.T) {
	svc, mock := newTestService(t)
	rows := sqlmock.NewRows(reservationColumns).
		AddRow("Europe/Paris", "res-3", time.Date(2024, 6, 30, 22, 30, 0, 0, time.UTC), "90.00"). // July 1st in Paris
		AddRow("Europe/Paris", "res-2", time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC), "60.00").
		AddRow("Europe/Paris", "res-1", time.Date(2024, 4, 1, 12, 0, 0, 0, time.UTC), "500.00")
	mock.ExpectQuery(reservationQuery).
		WithArgs("prop-1", "tenant-a").
		WillReturnRows(rows)

	report, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
	})

	require.NoError(t, err)
	require.NotNil(t, report.ReportMonth)
	assert.Equal(t, domain.MonthWindow{Year: 2024, Month: time.July}, *report.ReportMonth)
	assert.Equal(t, "90.00", FormatAmount(report.Total))
	assert.Equal(t, 1, report.Count)
	require.NotNil(t, report.TrendPercentage)
	assert.Equal(t, 50.0, *report.TrendPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetRevenueSummary_PropertyWithoutReservations(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(reservationQuery).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow("UTC", nil, nil, nil))

	t.Run("inferred month", func(t *testing.T) {
		report, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
			PropertyID: "prop-1",
			TenantID:   "tenant-a",
		})
		require.NoError(t, err)
		assert.Equal(t, "0.00", FormatAmount(report.Total))
		assert.Equal(t, 0, report.Count)
		assert.Nil(t, report.ReportMonth)
		assert.Nil(t, report.TrendPercentage)
	})

	mock.ExpectQuery(reservationQuery).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow("UTC", nil, nil, nil))

	t.Run("explicit month", func(t *testing.T) {
		report, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
			PropertyID: "prop-1",
			TenantID:   "tenant-a",
			Month:      intPtr(1),
			Year:       intPtr(2025),
		})
		require.NoError(t, err)
		assert.Equal(t, "0.00", FormatAmount(report.Total))
		require.NotNil(t, report.ReportMonth)
		assert.Equal(t, "2025-01-01", report.ReportMonth.Date())
		assert.Nil(t, report.TrendPercentage)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetRevenueSummary_UnknownProperty(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(reservationQuery).
		WithArgs("prop-x", "tenant-b").
		WillReturnRows(sqlmock.NewRows(reservationColumns))

	report, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-x",
		TenantID:   "tenant-b",
	})

	require.NoError(t, err)
	assert.Equal(t, "prop-x", report.PropertyID)
	assert.Equal(t, domain.ReportingCurrency, report.Currency)
	assert.True(t, report.Total.IsZero())
	assert.Nil(t, report.ReportMonth)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetRevenueSummary_InvalidPeriodSkipsStorage(t *testing.T) {
	svc, mock := newTestService(t)

	_, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
		Month:      intPtr(13),
		Year:       intPtr(2024),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidWindowArgs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_GetRevenueSummary_QueryFailure(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(reservationQuery).WillReturnError(errors.New("connection reset by peer"))

	_, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "aggregate revenue for property prop-1")
	assert.Contains(t, err.Error(), "connection reset by peer")
}

func TestService_GetRevenueSummary_BadTimezone(t *testing.T) {
	svc, mock := newTestService(t)
	mock.ExpectQuery(reservationQuery).
		WillReturnRows(sqlmock.NewRows(reservationColumns).AddRow("Not/AZone", nil, nil, nil))

	_, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
	})

	require.Error(t, err)
	assert.Contains(t, err.Error(), `load timezone "Not/AZone"`)
}

func TestService_GetRevenueSummary_StorageUnavailable(t *testing.T) {
	provisioner := pool.NewProvisioner(func(ctx context.Context) (*sql.DB, error) {
		return nil, errors.New("dial tcp: connection refused")
	}, zerolog.Nop())
	svc := NewService(provisioner, reservation.NewStore(database.DriverPostgres))

	_, err := svc.GetRevenueSummary(context.Background(), domain.SummaryRequest{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
	})

	assert.ErrorIs(t, err, domain.ErrStorageUnavailable)
	assert.Equal(t, pool.Failed, provisioner.State())
}
