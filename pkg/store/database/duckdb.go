package database

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"

	"github.com/marcboeker/go-duckdb/v2"
)

const PropertiesTableSchema = `
	CREATE TABLE IF NOT EXISTS properties (
		id VARCHAR NOT NULL,
		tenant_id VARCHAR NOT NULL,
		name VARCHAR NOT NULL DEFAULT '',
		timezone VARCHAR NOT NULL DEFAULT 'UTC',
		PRIMARY KEY (tenant_id, id)
	);
`
const ReservationsTableSchema = `
	CREATE TABLE IF NOT EXISTS reservations (
		id VARCHAR NOT NULL PRIMARY KEY,
		property_id VARCHAR NOT NULL,
		tenant_id VARCHAR NOT NULL,
		check_in_date TIMESTAMPTZ NOT NULL,
		total_amount DECIMAL(18, 4) NOT NULL DEFAULT 0
	);
`

var bootQueries = []string{
	PropertiesTableSchema,
	ReservationsTableSchema,
}

// NewDuckDB opens an embedded DuckDB database whose schema is created by the
// connector on every new connection.
func NewDuckDB(path string) (*sql.DB, error) {
	c, err := duckdb.NewConnector(fmt.Sprintf("%s?threads=4", path), func(exec driver.ExecerContext) error {
		for _, query := range bootQueries {
			_, err := exec.ExecContext(context.Background(), query, nil)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return sql.OpenDB(c), nil
}
