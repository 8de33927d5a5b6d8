package sql

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/syssam/sqlmodel/compiler/gen"
	"github.com/syssam/sqlmodel/compiler/load"
)

// newHelper returns a generator usable as gen.GeneratorHelper, with extra
// features enabled.
func newHelper(t *testing.T, features ...gen.Feature) *gen.Generator {
	t.Helper()
	cfg, err := gen.NewConfig(gen.WithFeatures(features...))
	require.NoError(t, err)
	return gen.NewGenerator(cfg)
}

// newTables parses src and builds the table of every model it declares.
func newTables(t *testing.T, src string) []*gen.Table {
	t.Helper()
	decls, err := load.ParseFile("model.go", src)
	require.NoError(t, err)
	tables := make([]*gen.Table, len(decls))
	for i, d := range decls {
		tables[i], err = gen.NewTable(gen.MustNewConfig(), d)
		require.NoError(t, err)
	}
	return tables
}

// newTable is newTables for sources declaring exactly one model.
func newTable(t *testing.T, src string) *gen.Table {
	t.Helper()
	tables := newTables(t, src)
	require.Len(t, tables, 1)
	return tables[0]
}

// genCode renders the file of tables with helper h.
func genCode(t *testing.T, h gen.GeneratorHelper, tables ...*gen.Table) string {
	t.Helper()
	f, err := NewDialect(h).GenFile("model", tables)
	require.NoError(t, err)
	return f.GoString()
}

// userModel is the end-to-end model: an auto-increment primary id and a
// name.
const userModel = `package model

//sqlmodel:table name="users" who="AppPool"
type User struct {
	ID   int    ` + "`sqlmodel:\"auto;key:PRIMARY\"`" + `
	Name string
}
`

// accountModel exercises renames, overrides, qualified types and unexported
// fields.
const accountModel = `package model

import (
	"time"

	dec "github.com/shopspring/decimal"
	"github.com/google/uuid"
)

//sqlmodel:table name="accounts" who="db.Owner"
type Account struct {
	ID        int64       ` + "`sqlmodel:\"auto;key:PRIMARY\"`" + `
	Owner     uuid.UUID   ` + "`sqlmodel:\"name:owner_uuid;key:UNIQUE\"`" + `
	Balance   dec.Decimal ` + "`sqlmodel:\"type:decimal(10,2)\"`" + `
	Avatar    []byte
	Tags      []string
	CreatedAt time.Time   ` + "`sqlmodel:\"key\"`" + `
	note      *string
}
`

// eventModel has no id column.
const eventModel = `package model

//sqlmodel:table name="events"
type Event struct {
	Kind    string
	Payload string ` + "`sqlmodel:\"name:body\"`" + `
}
`
