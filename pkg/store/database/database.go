package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverDuckDB   = "duckdb"
)

const defaultPingTimeout = 5 * time.Second

// Querier is satisfied by *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

type Settings struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
	PingTimeout     time.Duration
	Migrate         bool
}

func (s Settings) Validate() error {
	switch s.Driver {
	case DriverPostgres, DriverSQLite, DriverDuckDB:
	default:
		return fmt.Errorf("unsupported database driver %q", s.Driver)
	}
	if s.DSN == "" {
		return fmt.Errorf("database dsn is required")
	}
	return nil
}

// NewOpener binds settings into a pool constructor.
func NewOpener(settings Settings) func(ctx context.Context) (*sql.DB, error) {
	return func(ctx context.Context) (*sql.DB, error) {
		return Open(ctx, settings)
	}
}

// Open builds a connection pool, runs migrations when asked to and verifies
// the database answers a ping before handing the pool out.
func Open(ctx context.Context, settings Settings) (*sql.DB, error) {
	logger := zerolog.Ctx(ctx)

	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if settings.Migrate && settings.Driver != DriverDuckDB {
		if err := RunMigrations(settings); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	var (
		db  *sql.DB
		err error
	)
	if settings.Driver == DriverDuckDB {
		db, err = NewDuckDB(settings.DSN)
	} else {
		db, err = sql.Open(settings.Driver, settings.DSN)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", settings.Driver, err)
	}

	if settings.MaxOpenConns > 0 {
		db.SetMaxOpenConns(settings.MaxOpenConns)
	}
	if settings.MaxIdleConns > 0 {
		db.SetMaxIdleConns(settings.MaxIdleConns)
	}
	if settings.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(settings.ConnMaxLifetime)
	}
	if settings.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(settings.ConnMaxIdleTime)
	}

	timeout := settings.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s database: %w", settings.Driver, err)
	}

	logger.Info().
		Str("driver", settings.Driver).
		Int("max_open_conns", settings.MaxOpenConns).
		Msg("database connection pool ready")

	return db, nil
}

// Rebind rewrites `?` placeholders into the positional form the driver expects.
func Rebind(driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
