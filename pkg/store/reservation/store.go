package reservation

import (
	"context"
	"fmt"
	"strings"

	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/rs/zerolog"
)

// Visitor receives rows newest check-in first and returns false to stop.
type Visitor func(row store.ReservationRow) (bool, error)

type Store interface {
	Stream(ctx context.Context, q database.Querier, filter store.ReservationFilter, visit Visitor) error
	Insert(ctx context.Context, q database.Querier, records ...store.ReservationRecord) error
}

type reservationStore struct {
	driver string
}

func NewStore(driver string) Store {
	return &reservationStore{driver: driver}
}

// Stream runs the single aggregation query for a property scope. The property
// row is joined so its timezone arrives with the reservations; a property with
// no matching reservations yields one row with null reservation columns and an
// unknown property yields nothing.
func (s *reservationStore) Stream(
	ctx context.Context,
	q database.Querier,
	filter store.ReservationFilter,
	visit Visitor,
) error {
	logger := zerolog.Ctx(ctx)

	var b strings.Builder
	b.WriteString(`
		SELECT p.timezone, r.id, r.check_in_date, r.total_amount
		FROM properties p
		LEFT JOIN reservations r
			ON r.property_id = p.id
			AND r.tenant_id = p.tenant_id`)
	args := make([]any, 0, 4)
	if filter.CheckIn != nil {
		b.WriteString(`
			AND r.check_in_date >= ?
			AND r.check_in_date < ?`)
		args = append(args, filter.CheckIn.Start.UTC(), filter.CheckIn.End.UTC())
	}
	b.WriteString(`
		WHERE p.id = ? AND p.tenant_id = ?
		ORDER BY r.check_in_date DESC`)
	args = append(args, filter.PropertyID, filter.TenantID)

	rows, err := q.QueryContext(ctx, database.Rebind(s.driver, b.String()), args...)
	if err != nil {
		return fmt.Errorf("reservation query failed: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close reservation query rows")
		}
	}()

	for rows.Next() {
		var (
			row    store.ReservationRow
			amount database.Amount
		)
		if err := rows.Scan(&row.Timezone, &row.ID, &row.CheckIn, &amount); err != nil {
			return fmt.Errorf("scan reservation row: %w", err)
		}
		row.Amount = amount.NullDecimal

		more, err := visit(row)
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}

	return rows.Err()
}

func (s *reservationStore) Insert(ctx context.Context, q database.Querier, records ...store.ReservationRecord) error {
	query := database.Rebind(s.driver, `
		INSERT INTO reservations (id, property_id, tenant_id, check_in_date, total_amount)
		VALUES (?, ?, ?, ?, ?)`)

	for _, record := range records {
		if record.TotalAmount.IsNegative() {
			return fmt.Errorf("reservation %s: total amount must not be negative", record.ID)
		}
		_, err := q.ExecContext(ctx, query,
			record.ID,
			record.PropertyID,
			record.TenantID,
			record.CheckIn.UTC(),
			record.TotalAmount.String(),
		)
		if err != nil {
			return fmt.Errorf("insert reservation %s: %w", record.ID, err)
		}
	}
	return nil
}
