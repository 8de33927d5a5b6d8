package sqlmodel

import (
	"context"
	"database/sql"
	"sync"

	dsql "github.com/syssam/sqlmodel/dialect/sql"
	"github.com/syssam/sqlmodel/internal/logger"
)

// PoolOwner is implemented by the type named in a model's `who` option.
// Generated Lock methods call new(Who).Lock().
type PoolOwner interface {
	Lock() (*Guard, error)
}

// Pool serializes access to a database handle. Holders of a Guard have
// exclusive use of the pool until they call Unlock.
type Pool struct {
	mu      sync.Mutex
	db      *sql.DB
	conn    dsql.ExecQuerier
	stats   *dsql.StatsConn
	dialect string
	closed  bool
}

// PoolOption configures a Pool.
type PoolOption func(*Pool)

// WithStats records statement statistics, readable with Pool.Stats.
func WithStats(opts ...dsql.StatsOption) PoolOption {
	return func(p *Pool) {
		p.stats = dsql.NewStatsConn(p.conn, opts...)
		p.conn = p.stats
	}
}

// WithDebug logs every statement at debug level.
func WithDebug(log logger.Logger) PoolOption {
	return func(p *Pool) {
		p.conn = dsql.NewDebugConn(p.conn, log)
	}
}

// NewPool wraps an open database handle. Options wrap the handle in the
// order given.
func NewPool(dialect string, db *sql.DB, opts ...PoolOption) *Pool {
	p := &Pool{db: db, conn: db, dialect: dialect}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// OpenPool opens a database handle for the dialect and wraps it.
func OpenPool(dialect, source string, opts ...PoolOption) (*Pool, error) {
	db, err := dsql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewPool(dialect, db, opts...), nil
}

// Stats returns the statement statistics of a pool created WithStats.
func (p *Pool) Stats() (dsql.StatsSnapshot, bool) {
	if p.stats == nil {
		return dsql.StatsSnapshot{}, false
	}
	return p.stats.QueryStats().Stats(), true
}

// Dialect returns the pool dialect name.
func (p *Pool) Dialect() string { return p.dialect }

// Lock blocks until the pool is free and returns an exclusive handle.
func (p *Pool) Lock() (*Guard, error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, ErrPoolClosed
	}
	return &Guard{pool: p}, nil
}

// TryLock returns an exclusive handle if the pool is free.
func (p *Pool) TryLock() (*Guard, bool) {
	if !p.mu.TryLock() {
		return nil, false
	}
	if p.closed {
		p.mu.Unlock()
		return nil, false
	}
	return &Guard{pool: p}, true
}

// Close waits for the current holder and closes the database handle.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil
	}
	p.closed = true
	return p.db.Close()
}

// Guard is an exclusive handle on a Pool.
type Guard struct {
	pool *Pool
	once sync.Once
}

// Unlock releases the pool. Calling it more than once is a no-op.
func (g *Guard) Unlock() {
	g.once.Do(g.pool.mu.Unlock)
}

// Dialect returns the dialect of the underlying pool.
func (g *Guard) Dialect() string { return g.pool.dialect }

// DB returns the underlying database handle.
func (g *Guard) DB() dsql.ExecQuerier { return g.pool.conn }

// Exec binds params into query and executes it.
func (g *Guard) Exec(ctx context.Context, query string, params Params) (sql.Result, error) {
	stmt, args, err := params.Bind(query, g.pool.dialect)
	if err != nil {
		return nil, err
	}
	res, err := g.pool.conn.ExecContext(ctx, stmt, args...)
	if err != nil {
		if dsql.IsConstraintError(err) {
			return nil, NewConstraintError(err.Error(), err)
		}
		return nil, err
	}
	return res, nil
}

// Query binds params into query and returns every resulting row.
func (g *Guard) Query(ctx context.Context, query string, params Params) ([]Row, error) {
	stmt, args, err := params.Bind(query, g.pool.dialect)
	if err != nil {
		return nil, err
	}
	rs, err := g.pool.conn.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rs.Close()
	return ScanRows(rs)
}
