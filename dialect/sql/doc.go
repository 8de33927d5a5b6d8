// Package sql opens database/sql handles for the sqlmodel runtime and
// classifies driver errors.
//
// Importing the package registers the MySQL (go-sql-driver/mysql), Postgres
// (lib/pq) and SQLite (modernc.org/sqlite) drivers:
//
//	db, err := sql.Open(dialect.MySQL, "user:pass@tcp(localhost:3306)/app")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
// MySQL DSNs are normalized so that DATETIME columns decode into time.Time.
//
// StatsConn and DebugConn wrap any ExecQuerier to collect statement
// statistics or log statements.
package sql
