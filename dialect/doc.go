// Package dialect names the database dialects the sqlmodel runtime can bind
// statements for.
//
// # Supported Dialects
//
//   - MySQL: MySQL/MariaDB database (github.com/go-sql-driver/mysql)
//   - Postgres: PostgreSQL database (github.com/lib/pq)
//   - SQLite: SQLite database (modernc.org/sqlite)
//
// Each dialect is identified by the database/sql driver name it opens with:
//
//	dialect.MySQL    = "mysql"
//	dialect.Postgres = "postgres"
//	dialect.SQLite   = "sqlite"
//
// Generated models write their statements with :name placeholders. The
// runtime rewrites them with Placeholder before execution:
//
//	dialect.Placeholder(dialect.MySQL, 2)    // "?"
//	dialect.Placeholder(dialect.Postgres, 2) // "$2"
//
// # Sub-packages
//
//   - dialect/sql: driver registration, Open and constraint error helpers
package dialect
