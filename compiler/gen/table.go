package gen

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strings"

	"github.com/syssam/sqlmodel/compiler/load"
	dsql "github.com/syssam/sqlmodel/dialect/sql"
)

// IDName is the logical identifier of the identity column.
const IDName = "id"

// Field option keys understood by NewTable.
const (
	OptAuto = "auto"
	OptKey  = "key"
	OptName = "name"
	OptType = "type"
)

type (
	// Table is the storage mapping of one model struct.
	Table struct {
		// Name is the storage table name.
		Name string
		// Who names the pool owner type whose Lock method guards the table.
		Who string
		// Type is the Go type name of the model.
		Type    string
		Package string
		File    string
		Pos     string
		// Imports of the declaring file, by local name.
		Imports map[string]string
		// Columns in field declaration order.
		Columns []*Column
		// Annotated is false when the defaults of the table directive applied.
		Annotated bool
	}

	// Column is one struct field mapped to one storage column.
	Column struct {
		// Name is the logical identifier (snake_case of GoName).
		Name   string
		GoName string
		// StorageName is the column name, Name unless renamed.
		StorageName string
		// GoType is the declared type as written, e.g. "dec.Decimal".
		GoType string
		// Canonical is GoType with package qualifiers replaced by the
		// imported package name, e.g. "decimal.Decimal".
		Canonical   string
		Expr        ast.Expr
		StorageType string
		Auto        bool
		HasKey      bool
		// KeyKind is the constraint kind of a key clause, e.g. PRIMARY.
		KeyKind string
		// ID is set on the column whose logical identifier is "id".
		ID      bool
		Options load.Options
		Pos     string
	}
)

// NewTable builds the table of a loaded declaration. Unknown field options
// are ignored and reported at debug level.
func NewTable(c *Config, d *load.Decl) (*Table, error) {
	if d == nil {
		return nil, NewSchemaError("", "", "nil declaration", nil)
	}
	log := c.logger().With("type", d.Name)
	t := &Table{
		Name:      d.Table.Name,
		Who:       d.Table.Who,
		Type:      d.Name,
		Package:   d.Package,
		File:      d.File,
		Pos:       d.Pos,
		Imports:   d.Imports,
		Annotated: d.Table.Annotated,
	}
	if t.Name == "" {
		t.Name = load.DefaultTable
	}
	if t.Who == "" {
		t.Who = load.DefaultWho
	}
	if !validWho(t.Who) {
		return nil, &SchemaError{Pos: d.Pos, Type: d.Name, Message: fmt.Sprintf("pool owner %q is not a Go identifier", t.Who)}
	}
	if !dsql.IsValidIdentifier(t.Name) {
		return nil, &SchemaError{Pos: d.Pos, Type: d.Name, Message: fmt.Sprintf("table name %q is not a valid SQL identifier", t.Name)}
	}
	if t.Name == load.DefaultTable {
		log.Warn("table name not set, using default", "table", t.Name)
	}
	for _, k := range d.Table.Ignored {
		log.Debug("ignoring non-string table option", "option", k)
	}
	for _, k := range d.Table.Unknown {
		log.Debug("ignoring unknown table option", "option", k)
	}
	var (
		logical = make(map[string]bool, len(d.Fields))
		storage = make(map[string]bool, len(d.Fields))
	)
	for _, f := range d.Fields {
		col := newColumn(f, d.Imports)
		if !validColumn(col.StorageName) {
			return nil, &SchemaError{Pos: f.Pos, Type: d.Name, Field: f.GoName, Message: fmt.Sprintf("column name %q is not a valid SQL identifier", col.StorageName)}
		}
		if logical[col.Name] {
			return nil, &SchemaError{Pos: f.Pos, Type: d.Name, Field: f.GoName, Message: fmt.Sprintf("duplicate logical name %q", col.Name)}
		}
		if storage[col.StorageName] {
			return nil, &SchemaError{Pos: f.Pos, Type: d.Name, Field: f.GoName, Message: fmt.Sprintf("duplicate column name %q", col.StorageName)}
		}
		logical[col.Name] = true
		storage[col.StorageName] = true
		for k := range f.Options {
			switch k {
			case OptAuto, OptKey, OptName, OptType:
			default:
				log.Debug("ignoring unknown field option", "field", f.GoName, "option", k)
			}
		}
		t.Columns = append(t.Columns, col)
	}
	if len(t.Columns) == 0 {
		log.Warn("model has no columns")
	}
	return t, nil
}

// newColumn applies the column resolution rules to one field.
func newColumn(f *load.Field, imports map[string]string) *Column {
	col := &Column{
		Name:        f.Name,
		GoName:      f.GoName,
		StorageName: f.Name,
		GoType:      f.Type,
		Canonical:   f.Type,
		Expr:        f.Expr,
		Options:     f.Options,
		Pos:         f.Pos,
		ID:          f.Name == IDName,
	}
	if f.Expr != nil {
		col.Canonical = CanonicalType(f.Expr, imports)
	}
	if v, ok := f.Options.Lookup(OptName); ok && v != "" {
		col.StorageName = v
	}
	if v, ok := f.Options.Lookup(OptType); ok && v != "" {
		col.StorageType = v
	} else {
		col.StorageType = MapType(col.Canonical)
	}
	col.Auto = f.Options.Has(OptAuto)
	if v, ok := f.Options.Lookup(OptKey); ok {
		col.HasKey = true
		col.KeyKind = v
	}
	return col
}

// KeyClause returns the key constraint line of the column, or "" when the
// column has no key option.
//
//	KEY (`name`)
//	PRIMARY KEY (`id`)
func (c *Column) KeyClause() string {
	if !c.HasKey {
		return ""
	}
	if c.KeyKind == "" {
		return "KEY (`" + c.StorageName + "`)"
	}
	return c.KeyKind + " KEY (`" + c.StorageName + "`)"
}

// Definition returns the column line of a CREATE TABLE statement.
func (c *Column) Definition() string {
	def := "`" + c.StorageName + "` " + c.StorageType + " NOT NULL"
	if c.Auto {
		def += " AUTO_INCREMENT"
	}
	return def
}

// Exported reports whether the Go field is exported.
func (c *Column) Exported() bool {
	return ast.IsExported(c.GoName)
}

// WithoutID returns the columns other than the identity column. When the
// table has no identity column every column is returned.
func (t *Table) WithoutID() []*Column {
	return t.Filter(func(c *Column) bool { return !c.ID })
}

// Filter returns the columns satisfying keep, in table order.
func (t *Table) Filter(keep func(*Column) bool) []*Column {
	cols := make([]*Column, 0, len(t.Columns))
	for _, c := range t.Columns {
		if keep(c) {
			cols = append(cols, c)
		}
	}
	return cols
}

// IDColumn returns the identity column, if any.
func (t *Table) IDColumn() (*Column, bool) {
	for _, c := range t.Columns {
		if c.ID {
			return c, true
		}
	}
	return nil, false
}

// HasID reports whether the table has an identity column.
func (t *Table) HasID() bool {
	_, ok := t.IDColumn()
	return ok
}

// Keys returns the key-bearing columns, in table order.
func (t *Table) Keys() []*Column {
	return t.Filter(func(c *Column) bool { return c.HasKey })
}

// ImportPath returns the import path bound to a package qualifier of the
// declaring file.
func (t *Table) ImportPath(name string) (string, bool) {
	p, ok := t.Imports[name]
	return p, ok
}

// CanonicalType renders a type expression with every package qualifier
// replaced by the name the imported package declares by convention: the last
// path element without a major version suffix.
func CanonicalType(expr ast.Expr, imports map[string]string) string {
	switch x := expr.(type) {
	case *ast.SelectorExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			if path, ok := imports[id.Name]; ok {
				return load.PackageName(path) + "." + x.Sel.Name
			}
		}
	case *ast.StarExpr:
		return "*" + CanonicalType(x.X, imports)
	case *ast.ArrayType:
		if x.Len == nil {
			return "[]" + CanonicalType(x.Elt, imports)
		}
		return "[" + types.ExprString(x.Len) + "]" + CanonicalType(x.Elt, imports)
	case *ast.MapType:
		return "map[" + CanonicalType(x.Key, imports) + "]" + CanonicalType(x.Value, imports)
	case *ast.ParenExpr:
		return CanonicalType(x.X, imports)
	}
	return types.ExprString(expr)
}

// validColumn reports whether name can be both a column and the name of a
// :name statement parameter.
func validColumn(name string) bool {
	return dsql.IsValidIdentifier(name) && !strings.Contains(name, ".")
}

// validWho reports whether s is an identifier or a qualified identifier.
func validWho(s string) bool {
	pkg, name, ok := strings.Cut(s, ".")
	if !ok {
		return token.IsIdentifier(s)
	}
	return token.IsIdentifier(pkg) && token.IsIdentifier(name)
}
