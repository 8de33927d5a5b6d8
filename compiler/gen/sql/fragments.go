package sql

import (
	"strings"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// Join renders the storage names of cols, each wrapped in left and right,
// joined by sep.
//
//	Join(cols, ", ", "`", "`")  // `id`, `name`
//	Join(cols, ", ", ":", "")   // :id, :name
func Join(cols []*gen.Column, sep, left, right string) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(sep)
		}
		b.WriteString(left)
		b.WriteString(c.StorageName)
		b.WriteString(right)
	}
	return b.String()
}

// FieldNames renders "id, name".
func FieldNames(cols []*gen.Column) string { return Join(cols, ", ", "", "") }

// FieldsWithComma renders "id, name," with a trailing comma, ready to be
// followed by more select expressions.
func FieldsWithComma(cols []*gen.Column) string { return Join(cols, " ", "", ",") }

// Quoted renders `"id", "name"`.
func Quoted(cols []*gen.Column) string { return Join(cols, ", ", `"`, `"`) }

// Backquoted renders "`id`, `name`".
func Backquoted(cols []*gen.Column) string { return Join(cols, ", ", "`", "`") }

// Placeholders renders ":id, :name".
func Placeholders(cols []*gen.Column) string { return Join(cols, ", ", ":", "") }

// Assignments renders "id=:id, name=:name".
func Assignments(cols []*gen.Column) string {
	var b strings.Builder
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c.StorageName)
		b.WriteString("=:")
		b.WriteString(c.StorageName)
	}
	return b.String()
}

// CreateTable renders the CREATE TABLE statement of t: one definition line
// per column, then one line per key clause.
//
//	CREATE TABLE `users` (
//	  `id` int(11) NOT NULL AUTO_INCREMENT,
//	  `name` varchar(32) NOT NULL,
//	  PRIMARY KEY (`id`)
//	);
func CreateTable(t *gen.Table) string {
	lines := make([]string, 0, len(t.Columns)+len(t.Keys()))
	for _, c := range t.Columns {
		lines = append(lines, "  "+c.Definition())
	}
	for _, c := range t.Keys() {
		lines = append(lines, "  "+c.KeyClause())
	}
	return "CREATE TABLE `" + t.Name + "` (\n" + strings.Join(lines, ",\n") + "\n);"
}
