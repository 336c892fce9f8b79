package database

import (
	"context"
	"math/big"
	"path/filepath"
	"testing"
	"time"

	"github.com/marcboeker/go-duckdb/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	query := "SELECT * FROM t WHERE a = ? AND b = ? AND c IN (?, ?)"

	assert.Equal(t, "SELECT * FROM t WHERE a = $1 AND b = $2 AND c IN ($3, $4)", Rebind(DriverPostgres, query))
	assert.Equal(t, query, Rebind(DriverSQLite, query))
	assert.Equal(t, query, Rebind(DriverDuckDB, query))
}

func TestSettings_Validate(t *testing.T) {
	assert.NoError(t, Settings{Driver: DriverSQLite, DSN: "revenue.db"}.Validate())
	assert.ErrorContains(t, Settings{Driver: "mysql", DSN: "x"}.Validate(), `unsupported database driver "mysql"`)
	assert.ErrorContains(t, Settings{Driver: DriverPostgres}.Validate(), "dsn is required")
}

func TestAmount_Scan(t *testing.T) {
	tests := []struct {
		name     string
		value    any
		valid    bool
		expected string
	}{
		{name: "numeric text", value: []byte("350.50"), valid: true, expected: "350.5"},
		{name: "sqlite text", value: "10.005", valid: true, expected: "10.005"},
		{name: "integer", value: int64(42), valid: true, expected: "42"},
		{name: "null", value: nil, valid: false},
		{
			name:     "duckdb decimal",
			value:    duckdb.Decimal{Width: 18, Scale: 4, Value: big.NewInt(2505000)},
			valid:    true,
			expected: "250.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a Amount
			require.NoError(t, a.Scan(tt.value))
			assert.Equal(t, tt.valid, a.Valid)
			if tt.valid {
				assert.Equal(t, tt.expected, a.Decimal.String())
			}
		})
	}
}

func TestOpen_SQLiteWithMigrations(t *testing.T) {
	settings := Settings{
		Driver:       DriverSQLite,
		DSN:          filepath.Join(t.TempDir(), "revenue.db"),
		MaxOpenConns: 4,
		PingTimeout:  time.Second,
		Migrate:      true,
	}

	db, err := Open(context.Background(), settings)
	require.NoError(t, err)
	defer db.Close()

	var n int
	err = db.QueryRow(`SELECT count(*) FROM sqlite_master WHERE type = 'table' AND name IN ('properties', 'reservations')`).Scan(&n)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// a second run finds nothing to apply
	require.NoError(t, RunMigrations(settings))
}

func TestOpen_InvalidSettings(t *testing.T) {
	_, err := Open(context.Background(), Settings{Driver: "oracle", DSN: "x"})
	assert.Error(t, err)
}
