package property

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/rs/zerolog"
)

type Store interface {
	List(ctx context.Context, q database.Querier, tenantID string) ([]store.PropertyRecord, error)
	Exists(ctx context.Context, q database.Querier, scope domain.PropertyScope) (bool, error)
	Insert(ctx context.Context, q database.Querier, records ...store.PropertyRecord) error
}

type propertyStore struct {
	driver string
}

func NewStore(driver string) Store {
	return &propertyStore{driver: driver}
}

func (s *propertyStore) List(ctx context.Context, q database.Querier, tenantID string) ([]store.PropertyRecord, error) {
	logger := zerolog.Ctx(ctx)
	query := database.Rebind(s.driver, `
		SELECT id, tenant_id, name, timezone
		FROM properties
		WHERE tenant_id = ?
		ORDER BY name`)

	rows, err := q.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			logger.Warn().Err(err).Msg("failed to close property query rows")
		}
	}()

	records := make([]store.PropertyRecord, 0)
	for rows.Next() {
		var r store.PropertyRecord
		if err := rows.Scan(&r.ID, &r.TenantID, &r.Name, &r.Timezone); err != nil {
			return nil, fmt.Errorf("scan property row: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate properties: %w", err)
	}
	return records, nil
}

func (s *propertyStore) Exists(ctx context.Context, q database.Querier, scope domain.PropertyScope) (bool, error) {
	query := database.Rebind(s.driver, `SELECT 1 FROM properties WHERE id = ? AND tenant_id = ?`)

	var one int
	err := q.QueryRowContext(ctx, query, scope.PropertyID, scope.TenantID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check property %s: %w", scope.PropertyID, err)
	}
	return true, nil
}

func (s *propertyStore) Insert(ctx context.Context, q database.Querier, records ...store.PropertyRecord) error {
	query := database.Rebind(s.driver, `
		INSERT INTO properties (id, tenant_id, name, timezone)
		VALUES (?, ?, ?, ?)`)

	for _, r := range records {
		if _, err := q.ExecContext(ctx, query, r.ID, r.TenantID, r.Name, r.Timezone); err != nil {
			return fmt.Errorf("insert property %s: %w", r.ID, err)
		}
	}
	return nil
}
