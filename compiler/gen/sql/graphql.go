package sql

import (
	"bytes"
	"strings"

	"github.com/go-openapi/inflect"
	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// graphqlScalars maps canonical Go types to GraphQL scalars. Types missing
// from the table map to String.
var graphqlScalars = map[string]string{
	"int":             "Int",
	"int8":            "Int",
	"int16":           "Int",
	"int32":           "Int",
	"int64":           "Int",
	"uint":            "Int",
	"uint8":           "Int",
	"uint16":          "Int",
	"uint32":          "Int",
	"uint64":          "Int",
	"float32":         "Float",
	"float64":         "Float",
	"bool":            "Boolean",
	"string":          "String",
	"time.Time":       "Time",
	"decimal.Decimal": "Decimal",
	"uuid.UUID":       "UUID",
	"json.RawMessage": "JSON",
}

// builtinScalars need no declaration.
var builtinScalars = map[string]bool{"Int": true, "Float": true, "Boolean": true, "String": true, "ID": true}

// GraphQLType returns the GraphQL type of a column. The id column is an ID,
// pointer types are nullable and every other column is non-null.
func GraphQLType(c *gen.Column) *ast.Type {
	ct := c.Canonical
	nullable := strings.HasPrefix(ct, "*")
	ct = strings.TrimPrefix(ct, "*")
	name, ok := graphqlScalars[ct]
	switch {
	case c.ID:
		name = "ID"
	case !ok:
		name = "String"
	}
	if nullable {
		return ast.NamedType(name, nil)
	}
	return ast.NonNullNamedType(name, nil)
}

// GraphQLDocument builds the schema document of tables: one object type per
// model plus the custom scalars they use.
func GraphQLDocument(tables []*gen.Table) *ast.SchemaDocument {
	var (
		doc     = &ast.SchemaDocument{}
		scalars = make(map[string]bool)
		order   []string
	)
	for _, t := range tables {
		def := &ast.Definition{
			Kind:        ast.Object,
			Name:        t.Type,
			Description: t.Type + " is stored in the " + t.Name + " table.",
		}
		for _, c := range t.Columns {
			typ := GraphQLType(c)
			def.Fields = append(def.Fields, &ast.FieldDefinition{
				Name: inflect.CamelizeDownFirst(c.Name),
				Type: typ,
			})
			if !builtinScalars[typ.NamedType] && !scalars[typ.NamedType] {
				scalars[typ.NamedType] = true
				order = append(order, typ.NamedType)
			}
		}
		doc.Definitions = append(doc.Definitions, def)
	}
	for _, s := range order {
		doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: s})
	}
	return doc
}

// GenGraphQL renders the schema document of tables.
func (d *Dialect) GenGraphQL(tables []*gen.Table) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("# " + gen.DefaultHeader + "\n\n")
	formatter.NewFormatter(&buf, formatter.WithIndent("  ")).FormatSchemaDocument(GraphQLDocument(tables))
	return buf.Bytes(), nil
}
