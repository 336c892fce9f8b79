package property

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/de-tools/revenue-atlas/pkg/models/store"
	"github.com/de-tools/revenue-atlas/pkg/store/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`SELECT id, tenant_id, name, timezone\s+FROM properties\s+WHERE tenant_id = \$1\s+ORDER BY name`).
		WithArgs("tenant-a").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "timezone"}).
			AddRow("prop-2", "tenant-a", "Beach House", "Europe/Lisbon").
			AddRow("prop-1", "tenant-a", "City Loft", "America/New_York"))

	records, err := NewStore(database.DriverPostgres).List(context.Background(), db, "tenant-a")

	require.NoError(t, err)
	assert.Equal(t, []store.PropertyRecord{
		{ID: "prop-2", TenantID: "tenant-a", Name: "Beach House", Timezone: "Europe/Lisbon"},
		{ID: "prop-1", TenantID: "tenant-a", Name: "City Loft", Timezone: "America/New_York"},
	}, records)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestList_Empty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM properties").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tenant_id", "name", "timezone"}))

	records, err := NewStore(database.DriverSQLite).List(context.Background(), db, "tenant-z")

	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestExists(t *testing.T) {
	scope := domain.PropertyScope{PropertyID: "prop-1", TenantID: "tenant-a"}
	query := `SELECT 1 FROM properties WHERE id = \$1 AND tenant_id = \$2`

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(query).WithArgs("prop-1", "tenant-a").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

		ok, err := NewStore(database.DriverPostgres).Exists(context.Background(), db, scope)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("other tenant", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(query).WithArgs("prop-1", "tenant-a").
			WillReturnRows(sqlmock.NewRows([]string{"?column?"}))

		ok, err := NewStore(database.DriverPostgres).Exists(context.Background(), db, scope)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()
		mock.ExpectQuery(query).WillReturnError(errors.New("timeout"))

		_, err = NewStore(database.DriverPostgres).Exists(context.Background(), db, scope)
		assert.ErrorContains(t, err, "check property prop-1")
	})
}

func TestInsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO properties \(id, tenant_id, name, timezone\)`).
		WithArgs("prop-1", "tenant-a", "City Loft", "America/New_York").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO properties`).
		WithArgs("prop-2", "tenant-a", "Beach House", "Europe/Lisbon").
		WillReturnError(errors.New("duplicate key"))

	err = NewStore(database.DriverPostgres).Insert(context.Background(), db,
		store.PropertyRecord{ID: "prop-1", TenantID: "tenant-a", Name: "City Loft", Timezone: "America/New_York"},
		store.PropertyRecord{ID: "prop-2", TenantID: "tenant-a", Name: "Beach House", Timezone: "Europe/Lisbon"},
	)

	assert.ErrorContains(t, err, "insert property prop-2: duplicate key")
	assert.NoError(t, mock.ExpectationsWereMet())
}
