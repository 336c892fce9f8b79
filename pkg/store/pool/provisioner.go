package pool

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/de-tools/revenue-atlas/pkg/models/domain"
	"github.com/rs/zerolog"
)

type State int32

const (
	Uninitialized State = iota
	Initializing
	Ready
	Failed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Initializing:
		return "initializing"
	case Ready:
		return "ready"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("state(%d)", int32(s))
	}
}

// Opener constructs the underlying connection pool.
type Opener func(ctx context.Context) (*sql.DB, error)

// Provisioner owns the process-wide connection pool. The pool is built lazily
// by the first caller; concurrent first callers share a single construction.
type Provisioner struct {
	open   Opener
	logger zerolog.Logger

	mu    sync.Mutex
	state atomic.Int32
	db    atomic.Pointer[sql.DB]
}

func NewProvisioner(open Opener, logger zerolog.Logger) *Provisioner {
	return &Provisioner{
		open:   open,
		logger: logger,
	}
}

func (p *Provisioner) State() State {
	return State(p.state.Load())
}

// Initialize makes the pool ready. Once ready it is a lock-free no-op; after a
// failed attempt the next call tries again.
func (p *Provisioner) Initialize(ctx context.Context) error {
	if p.State() == Ready {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.State() == Ready {
		return nil
	}

	p.state.Store(int32(Initializing))
	db, err := p.open(ctx)
	if err != nil {
		p.state.Store(int32(Failed))
		p.logger.Error().Err(err).Msg("database pool initialization failed")
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}

	p.db.Store(db)
	p.state.Store(int32(Ready))
	p.logger.Info().Msg("database connection pool initialized")
	return nil
}

// Acquire returns a dedicated connection. The caller must Close it.
func (p *Provisioner) Acquire(ctx context.Context) (*sql.Conn, error) {
	if err := p.Initialize(ctx); err != nil {
		return nil, err
	}

	db := p.db.Load()
	if db == nil {
		return nil, fmt.Errorf("%w: pool was shut down", domain.ErrStorageUnavailable)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if errors.Is(err, sql.ErrConnDone) {
			return nil, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
		}
		return nil, fmt.Errorf("%w: acquire connection: %w", domain.ErrStorageUnavailable, err)
	}
	return conn, nil
}

// WithSession runs fn on a scoped connection that is released on every exit
// path, panics included.
func (p *Provisioner) WithSession(ctx context.Context, fn func(ctx context.Context, conn *sql.Conn) error) error {
	conn, err := p.Acquire(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
			p.logger.Warn().Err(err).Msg("failed to release database session")
		}
	}()

	return fn(ctx, conn)
}

// Shutdown closes every pooled connection and returns to Uninitialized.
func (p *Provisioner) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	db := p.db.Swap(nil)
	p.state.Store(int32(Uninitialized))
	if db == nil {
		return nil
	}

	if err := db.Close(); err != nil {
		return fmt.Errorf("close database pool: %w", err)
	}
	p.logger.Info().Msg("database connection pool closed")
	return nil
}
