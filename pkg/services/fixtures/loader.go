package fixtures

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/adapters"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/services/revenue"
	"github.com/de-tools/revenue-atlas/pkg/store/property"
	"github.com/de-tools/revenue-atlas/pkg/store/reservation"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// Dataset is the JSON document accepted by the seed command.
type Dataset struct {
	Properties []struct {
		ID       string `json:"id"`
		TenantID string `json:"tenant_id"`
		Name     string `json:"name"`
		Timezone string `json:"timezone"`
	} `json:"properties"`
	Reservations []struct {
		ID          string          `json:"id"`
		PropertyID  string          `json:"property_id"`
		TenantID    string          `json:"tenant_id"`
		CheckIn     time.Time       `json:"check_in_date"`
		TotalAmount decimal.Decimal `json:"total_amount"`
	} `json:"reservations"`
}

func ReadDataset(r io.Reader) (*Dataset, error) {
	var ds Dataset
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// Loader writes properties and reservations in one transaction.
type Loader struct {
	sessions     revenue.SessionProvider
	properties   property.Store
	reservations reservation.Store
}

func NewLoader(sessions revenue.SessionProvider, properties property.Store, reservations reservation.Store) *Loader {
	return &Loader{
		sessions:     sessions,
		properties:   properties,
		reservations: reservations,
	}
}

func (l *Loader) Load(ctx context.Context, ds *Dataset) error {
	logger := zerolog.Ctx(ctx)

	props := make([]store.PropertyRecord, 0, len(ds.Properties))
	for _, p := range ds.Properties {
		if _, err := revenue.LoadLocation(p.Timezone); err != nil {
			return fmt.Errorf("property %s: %w", p.ID, err)
		}
		props = append(props, adapters.MapPropertyDomainToStore(domain.Property{
			ID:       p.ID,
			TenantID: p.TenantID,
			Name:     p.Name,
			Timezone: p.Timezone,
		}))
	}

	res := make([]store.ReservationRecord, 0, len(ds.Reservations))
	for _, r := range ds.Reservations {
		res = append(res, adapters.MapReservationDomainToStore(domain.Reservation{
			ID:          r.ID,
			PropertyID:  r.PropertyID,
			TenantID:    r.TenantID,
			CheckIn:     r.CheckIn,
			TotalAmount: r.TotalAmount,
		}))
	}

	err := l.sessions.WithSession(ctx, func(ctx context.Context, conn *sql.Conn) error {
		tx, err := conn.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin seed transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()

		if err := l.properties.Insert(ctx, tx, props...); err != nil {
			return err
		}
		if err := l.reservations.Insert(ctx, tx, res...); err != nil {
			return err
		}
		return tx.Commit()
	})
	if err != nil {
		return fmt.Errorf("seed dataset: %w", err)
	}

	logger.Info().
		Int("properties", len(props)).
		Int("reservations", len(res)).
		Msg("dataset loaded")
	return nil
}
