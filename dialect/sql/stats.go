package sql

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syssam/sqlmodel/internal/logger"
)

// DefaultSlowThreshold is the slow statement threshold of a StatsConn.
const DefaultSlowThreshold = 100 * time.Millisecond

// QueryStats holds statement execution statistics.
type QueryStats struct {
	TotalQueries  atomic.Int64
	TotalExecs    atomic.Int64
	TotalDuration atomic.Int64 // nanoseconds
	SlowQueries   atomic.Int64
	Errors        atomic.Int64
}

// Stats returns a snapshot of the current statistics.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset resets all statistics to zero.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a point-in-time copy of QueryStats.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgDuration returns the average statement duration.
func (s StatsSnapshot) AvgDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String returns a one-line summary.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalDuration, s.AvgDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is called for every statement slower than the threshold.
type SlowQueryHook func(ctx context.Context, query string, args []any, duration time.Duration)

// StatsConn wraps an ExecQuerier and records statistics for every statement.
type StatsConn struct {
	ExecQuerier
	stats *QueryStats

	mu            sync.RWMutex
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// StatsOption configures a StatsConn.
type StatsOption func(*StatsConn)

// WithSlowThreshold sets the slow statement threshold.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsConn) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets the slow statement callback.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsConn) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements at warn level.
func WithSlowQueryLog(log logger.Logger) StatsOption {
	return WithSlowQueryHook(func(_ context.Context, query string, args []any, duration time.Duration) {
		log.Warn("slow statement", "duration", duration, "query", query, "args", len(args))
	})
}

// NewStatsConn wraps conn with statistics collection.
//
//	conn := sql.NewStatsConn(db,
//	    sql.WithSlowThreshold(200*time.Millisecond),
//	    sql.WithSlowQueryLog(log),
//	)
//	fmt.Println(conn.QueryStats().Stats())
func NewStatsConn(conn ExecQuerier, opts ...StatsOption) *StatsConn {
	s := &StatsConn{
		ExecQuerier:   conn,
		stats:         &QueryStats{},
		slowThreshold: DefaultSlowThreshold,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the collected statistics.
func (s *StatsConn) QueryStats() *QueryStats {
	return s.stats
}

// SlowThreshold returns the current slow statement threshold.
func (s *StatsConn) SlowThreshold() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slowThreshold
}

// SetSlowThreshold updates the slow statement threshold.
func (s *StatsConn) SetSlowThreshold(threshold time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.slowThreshold = threshold
}

// QueryContext runs a query and records it.
func (s *StatsConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := s.ExecQuerier.QueryContext(ctx, query, args...)
	s.record(ctx, query, args, start, err, true)
	return rows, err
}

// ExecContext runs a statement and records it.
func (s *StatsConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := s.ExecQuerier.ExecContext(ctx, query, args...)
	s.record(ctx, query, args, start, err, false)
	return res, err
}

func (s *StatsConn) record(ctx context.Context, query string, args []any, start time.Time, err error, isQuery bool) {
	duration := time.Since(start)
	if isQuery {
		s.stats.TotalQueries.Add(1)
	} else {
		s.stats.TotalExecs.Add(1)
	}
	s.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		s.stats.Errors.Add(1)
	}

	s.mu.RLock()
	threshold, hook := s.slowThreshold, s.slowHook
	s.mu.RUnlock()

	if duration > threshold {
		s.stats.SlowQueries.Add(1)
		if hook != nil {
			hook(ctx, query, args, duration)
		}
	}
}

// DebugConn wraps an ExecQuerier and logs every statement at debug level.
type DebugConn struct {
	ExecQuerier
	log logger.Logger
}

// NewDebugConn wraps conn with statement logging.
func NewDebugConn(conn ExecQuerier, log logger.Logger) *DebugConn {
	if log == nil {
		log = logger.Nop()
	}
	return &DebugConn{ExecQuerier: conn, log: log}
}

// QueryContext logs and runs a query.
func (d *DebugConn) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	d.log.Debug("query", "query", query, "args", args)
	return d.ExecQuerier.QueryContext(ctx, query, args...)
}

// ExecContext logs and runs a statement.
func (d *DebugConn) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	d.log.Debug("exec", "query", query, "args", args)
	return d.ExecQuerier.ExecContext(ctx, query, args...)
}

var (
	_ ExecQuerier = (*StatsConn)(nil)
	_ ExecQuerier = (*DebugConn)(nil)
)
