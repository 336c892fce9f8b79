package database

import (
	"github.com/marcboeker/go-duckdb/v2"
	"github.com/shopspring/decimal"
)

// Amount scans a monetary column exactly whatever the driver hands back:
// NUMERIC text from postgres, TEXT from sqlite, DECIMAL from duckdb.
type Amount struct {
	decimal.NullDecimal
}

func (a *Amount) Scan(value any) error {
	if v, ok := value.(duckdb.Decimal); ok {
		a.Decimal = decimal.NewFromBigInt(v.Value, -int32(v.Scale))
		a.Valid = true
		return nil
	}
	return a.NullDecimal.Scan(value)
}
