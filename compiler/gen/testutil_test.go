package gen

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel/compiler/load"
)

// parseDecl parses src and returns its only selected declaration.
func parseDecl(t *testing.T, src string) *load.Decl {
	t.Helper()
	decls, err := load.ParseFile("model.go", src)
	require.NoError(t, err)
	require.Len(t, decls, 1)
	return decls[0]
}

// newTestTable parses src and builds the table of its only model.
func newTestTable(t *testing.T, src string) *Table {
	t.Helper()
	tbl, err := NewTable(MustNewConfig(), parseDecl(t, src))
	require.NoError(t, err)
	return tbl
}

const userModel = `package model

//sqlmodel:table name="users" who="AppPool"
type User struct {
	ID   int    ` + "`sqlmodel:\"auto;key:PRIMARY\"`" + `
	Name string
}
`

func storageNames(cols []*Column) []string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.StorageName
	}
	return names
}
