package sql

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/parser"
)

func TestGraphQLType(t *testing.T) {
	tbl := newTable(t, accountModel)
	got := make(map[string]string)
	for _, c := range tbl.Columns {
		got[c.Name] = GraphQLType(c).String()
	}
	assert.Equal(t, map[string]string{
		"id":         "ID!",
		"owner":      "UUID!",
		"balance":    "Decimal!",
		"avatar":     "String!",
		"tags":       "String!",
		"created_at": "Time!",
		"note":       "String",
	}, got)
}

func TestGenGraphQL(t *testing.T) {
	tables := newTables(t, accountModel)
	tables = append(tables, newTable(t, userModel))

	b, err := NewDialect(newHelper(t)).GenGraphQL(tables)
	require.NoError(t, err)
	out := string(b)
	assert.True(t, strings.HasPrefix(out, "# Code generated by sqlmodel. DO NOT EDIT."))

	doc, gqlErr := parser.ParseSchema(&ast.Source{Name: "schema.graphql", Input: out})
	require.Nil(t, gqlErr, out)

	account := doc.Definitions.ForName("Account")
	require.NotNil(t, account)
	assert.Equal(t, ast.Object, account.Kind)
	assert.Equal(t, "ID!", account.Fields.ForName("id").Type.String())
	assert.Equal(t, "Time!", account.Fields.ForName("createdAt").Type.String())
	assert.NotNil(t, doc.Definitions.ForName("User"))

	for _, scalar := range []string{"UUID", "Decimal", "Time"} {
		def := doc.Definitions.ForName(scalar)
		require.NotNil(t, def, scalar)
		assert.Equal(t, ast.Scalar, def.Kind)
	}
	assert.Nil(t, doc.Definitions.ForName("String"), "builtin scalars are not declared")
}
