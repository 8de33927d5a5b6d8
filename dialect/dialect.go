package dialect

import "strconv"

// Dialect names.
const (
	MySQL    = "mysql"
	SQLite   = "sqlite"
	Postgres = "postgres"
)

// Valid reports whether d is a supported dialect name.
func Valid(d string) bool {
	switch d {
	case MySQL, SQLite, Postgres:
		return true
	}
	return false
}

// Placeholder returns the positional placeholder for the n-th (1-based)
// argument of a statement in dialect d.
func Placeholder(d string, n int) string {
	if d == Postgres {
		return "$" + strconv.Itoa(n)
	}
	return "?"
}
