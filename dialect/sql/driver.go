package sql

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/syssam/sqlmodel/dialect"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// IsValidIdentifier checks if the string is a valid SQL identifier.
func IsValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// ExecQuerier wraps the standard Exec and Query methods.
// Implemented by *sql.DB, *sql.Tx and *sql.Conn.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Open wraps the database/sql.Open method for the given dialect.
func Open(d, source string) (*sql.DB, error) {
	if !dialect.Valid(d) {
		return nil, fmt.Errorf("dialect/sql: unsupported dialect %q", d)
	}
	if d == dialect.MySQL {
		dsn, err := NormalizeMySQLDSN(source)
		if err != nil {
			return nil, err
		}
		source = dsn
	}
	db, err := sql.Open(d, source)
	if err != nil {
		return nil, fmt.Errorf("dialect/sql: open %s: %w", d, err)
	}
	return db, nil
}

// NormalizeMySQLDSN validates a MySQL DSN and enables parseTime, so that
// DATETIME values arrive as time.Time instead of raw bytes, and
// clientFoundRows, so that an UPDATE reports the rows it matched.
func NormalizeMySQLDSN(source string) (string, error) {
	cfg, err := mysql.ParseDSN(source)
	if err != nil {
		return "", fmt.Errorf("dialect/sql: invalid mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN(), nil
}

// QuoteIdent quotes a table or column identifier for dialect d. Each part
// of a qualified name (schema.table) is quoted on its own.
func QuoteIdent(d, name string) string {
	parts := strings.Split(name, ".")
	for i, p := range parts {
		if d == dialect.Postgres {
			parts[i] = pq.QuoteIdentifier(p)
		} else {
			parts[i] = "`" + strings.ReplaceAll(p, "`", "``") + "`"
		}
	}
	return strings.Join(parts, ".")
}
