package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_DuckDB(t *testing.T) {
	// Given
	ctx := context.Background()
	db, err := database.NewDuckDB("")
	require.NoError(t, err)
	defer db.Close()

	_, err = db.ExecContext(ctx, `INSERT INTO properties (id, tenant_id, name, timezone) VALUES (?, ?, ?, ?)`,
		"prop-1", "tenant-a", "Loft", "Asia/Tokyo")
	require.NoError(t, err)

	s := NewStore(database.DriverDuckDB)
	require.NoError(t, s.Insert(ctx, db,
		store.ReservationRecord{
			ID: "r-1", PropertyID: "prop-1", TenantID: "tenant-a",
			CheckIn:     time.Date(2024, 3, 31, 16, 0, 0, 0, time.UTC),
			TotalAmount: decimal.RequireFromString("0.1000"),
		},
		store.ReservationRecord{
			ID: "r-2", PropertyID: "prop-1", TenantID: "tenant-a",
			CheckIn:     time.Date(2024, 3, 2, 9, 0, 0, 0, time.UTC),
			TotalAmount: decimal.RequireFromString("0.2"),
		},
		store.ReservationRecord{
			ID: "r-3", PropertyID: "prop-1", TenantID: "tenant-b",
			CheckIn:     time.Date(2024, 3, 3, 9, 0, 0, 0, time.UTC),
			TotalAmount: decimal.RequireFromString("50"),
		},
	))

	// When
	var ids []string
	total := decimal.Zero
	err = s.Stream(ctx, db, store.ReservationFilter{
		PropertyID: "prop-1",
		TenantID:   "tenant-a",
		CheckIn: &store.TimeRange{
			Start: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC),
		},
	}, func(row store.ReservationRow) (bool, error) {
		assert.Equal(t, "Asia/Tokyo", row.Timezone)
		ids = append(ids, row.ID.String)
		total = total.Add(row.Amount.Decimal)
		return true, nil
	})

	// Then
	require.NoError(t, err)
	assert.Equal(t, []string{"r-1", "r-2"}, ids)
	assert.Equal(t, "0.30", total.StringFixed(2))
	assert.True(t, total.Equal(decimal.RequireFromString("0.3")))
}
