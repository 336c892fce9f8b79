package property

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/property"
)

// Directory answers tenant-scoped questions about properties.
type Directory interface {
	ListProperties(ctx context.Context, tenantID string) ([]domain.Property, error)
	PropertyExists(ctx context.Context, scope domain.PropertyScope) (bool, error)
}

type directory struct {
	sessions revenue.SessionProvider
	store    property.Store
}

func NewDirectory(sessions revenue.SessionProvider, store property.Store) Directory {
	return &directory{
		sessions: sessions,
		store:    store,
	}
}

func (d *directory) ListProperties(ctx context.Context, tenantID string) ([]domain.Property, error) {
	var properties []domain.Property
	err := d.sessions.WithSession(ctx, func(ctx context.Context, conn *sql.Conn) error {
		records, err := d.store.List(ctx, conn, tenantID)
		if err != nil {
			return err
		}
		properties = make([]domain.Property, 0, len(records))
		for _, r := range records {
			properties = append(properties, adapters.MapPropertyStoreToDomain(r))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list properties for tenant %s: %w", tenantID, err)
	}
	return properties, nil
}

func (d *directory) PropertyExists(ctx context.Context, scope domain.PropertyScope) (bool, error) {
	var exists bool
	err := d.sessions.WithSession(ctx, func(ctx context.Context, conn *sql.Conn) error {
		var err error
		exists, err = d.store.Exists(ctx, conn, scope)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("lookup property %s: %w", scope.PropertyID, err)
	}
	return exists, nil
}
