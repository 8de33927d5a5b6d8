package sql

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// AtlasTable converts t into an Atlas table. Column types are parsed from
// the resolved storage types; key clauses become the primary key or indexes
// named after their column.
func AtlasTable(t *gen.Table) (*schema.Table, error) {
	tbl := schema.NewTable(t.Name)
	cols := make(map[string]*schema.Column, len(t.Columns))
	for _, c := range t.Columns {
		typ, err := mysql.ParseType(c.StorageType)
		if err != nil {
			return nil, fmt.Errorf("column %q of %s: %w", c.StorageName, t.Type, err)
		}
		if _, ok := typ.(*schema.UnsupportedType); ok {
			return nil, fmt.Errorf("column %q of %s: unsupported storage type %q, set the type option", c.StorageName, t.Type, c.StorageType)
		}
		col := schema.NewColumn(c.StorageName).SetType(typ)
		if c.Auto {
			col.AddAttrs(&mysql.AutoIncrement{})
		}
		tbl.AddColumns(col)
		cols[c.StorageName] = col
	}
	for _, c := range t.Keys() {
		col := cols[c.StorageName]
		switch strings.ToUpper(c.KeyKind) {
		case "PRIMARY":
			tbl.SetPrimaryKey(schema.NewPrimaryKey(col))
		case "UNIQUE":
			tbl.AddIndexes(schema.NewUniqueIndex(c.StorageName).AddColumns(col))
		default:
			tbl.AddIndexes(schema.NewIndex(c.StorageName).AddColumns(col))
		}
	}
	return tbl, nil
}

// GenMigrate renders the MySQL statements creating tables, planned by Atlas.
// Tables are validated first; warnings are logged and errors abort.
func (d *Dialect) GenMigrate(ctx context.Context, tables []*gen.Table) ([]byte, error) {
	result := ValidateSchema(tables)
	for _, w := range result.Warnings {
		d.helper.Logger().Warn("migration", "table", w.Table, "warning", w.Message)
	}
	if result.HasErrors() {
		return nil, fmt.Errorf("invalid schema:\n%s", result)
	}
	changes := make([]schema.Change, 0, len(tables))
	for _, t := range tables {
		tbl, err := AtlasTable(t)
		if err != nil {
			return nil, err
		}
		changes = append(changes, &schema.AddTable{T: tbl})
	}
	plan, err := mysql.DefaultPlan.PlanChanges(ctx, "sqlmodel", changes, func(o *migrate.PlanOptions) {
		o.Indent = "  "
	})
	if err != nil {
		return nil, fmt.Errorf("plan changes: %w", err)
	}
	var buf bytes.Buffer
	buf.WriteString("-- " + gen.DefaultHeader + "\n")
	for _, c := range plan.Changes {
		if c.Comment != "" {
			buf.WriteString("\n-- " + c.Comment + "\n")
		}
		buf.WriteString(c.Cmd + ";\n")
	}
	return buf.Bytes(), nil
}
