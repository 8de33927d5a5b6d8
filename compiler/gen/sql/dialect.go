package sql

import (
	"context"
	"fmt"
	"path"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
	"github.com/syssam/sqlmodel/compiler/load"
)

// Generate is a convenience function that loads the declarations matched by
// args and generates their methods with the SQL dialect.
//
//	outputs, err := sql.Generate(ctx, cfg, []string{"./model"})
func Generate(ctx context.Context, cfg *gen.Config, args []string) ([]*gen.Output, error) {
	if cfg == nil {
		return nil, gen.NewConfigError("Config", nil, "missing config")
	}
	decls, err := load.Load(ctx, cfg.Suffix, args, cfg.Names...)
	if err != nil {
		return nil, err
	}
	g := gen.NewGenerator(cfg)
	g.WithDialect(NewDialect(g))
	return g.Generate(ctx, decls)
}

// Dialect implements gen.ModelGenerator, gen.GraphQLGenerator and
// gen.MigrateGenerator for SQL models.
type Dialect struct {
	helper gen.GeneratorHelper
}

var (
	_ gen.ModelGenerator   = (*Dialect)(nil)
	_ gen.GraphQLGenerator = (*Dialect)(nil)
	_ gen.MigrateGenerator = (*Dialect)(nil)
)

// NewDialect creates a new SQL dialect generator.
// The helper parameter is usually the *gen.Generator.
func NewDialect(helper gen.GeneratorHelper) *Dialect {
	return &Dialect{helper: helper}
}

// Name returns the dialect name.
func (d *Dialect) Name() string {
	return "sql"
}

// GenFile assembles the generated file of one source file.
func (d *Dialect) GenFile(pkg string, tables []*gen.Table) (*jen.File, error) {
	for _, t := range tables {
		if err := d.check(t); err != nil {
			return nil, err
		}
	}
	f := d.helper.NewFile(pkg)
	importNames(f, tables)
	for _, t := range tables {
		d.genTable(f, t)
	}
	return f, nil
}

// importNames names the packages whose import path does not end in their
// package name, such as major version suffixes. Jennifer would otherwise
// qualify them by the last path element.
func importNames(f *jen.File, tables []*gen.Table) {
	f.ImportName(msgpackPkg, "msgpack")
	for _, t := range tables {
		for _, p := range t.Imports {
			if name := load.PackageName(p); name != path.Base(p) {
				f.ImportAlias(p, name)
			}
		}
	}
}

// genTable renders every method of one model.
func (d *Dialect) genTable(f *jen.File, t *gen.Table) {
	h := d.helper
	genFragments(h, f, t)
	genFieldValues(h, f, t)
	genFromRow(h, f, t)
	genEqual(f, t)
	genLock(h, f, t)
	genIdentity(h, f, t)
	genQueries(h, f, t)
	if h.FeatureEnabled(gen.FeatureBuilder.Name) {
		genBuilders(h, f, t)
	}
	if h.FeatureEnabled(gen.FeatureMsgpack.Name) {
		genMsgpack(h, f, t)
	}
	if h.FeatureEnabled(gen.FeatureStringer.Name) {
		genStringer(h, f, t)
	}
	genAssertions(h, f, t)
}

// genAssertions renders the compile-time checks of the runtime contracts
// the model implements.
func genAssertions(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	ptr := jen.Parens(jen.Op("*").Id(t.Type)).Call(jen.Nil())
	f.Var().DefsFunc(func(g *jen.Group) {
		g.Id("_").Add(rt(h, "Model")).Op("=").Add(ptr.Clone())
		g.Id("_").Add(rt(h, "RowDecoder")).Op("=").Add(ptr.Clone())
		g.Id("_").Add(rt(h, "Creator")).Op("=").Add(ptr.Clone())
		if t.HasID() {
			g.Id("_").Add(rt(h, "Identified")).Op("=").Add(ptr.Clone())
		}
		if h.FeatureEnabled(gen.FeatureMsgpack.Name) {
			g.Id("_").Qual(msgpackPkg, "CustomEncoder").Op("=").Add(ptr.Clone())
			g.Id("_").Qual(msgpackPkg, "CustomDecoder").Op("=").Add(ptr.Clone())
		}
	})
}

// check rejects models whose fields collide with generated methods.
func (d *Dialect) check(t *gen.Table) error {
	reserved := d.methods(t)
	for _, c := range t.Columns {
		if reserved[c.GoName] {
			return &gen.SchemaError{Pos: c.Pos, Type: t.Type, Field: c.GoName, Message: fmt.Sprintf("field collides with generated method %s", c.GoName)}
		}
	}
	return nil
}

// methods returns the names of the methods generated for t.
func (d *Dialect) methods(t *gen.Table) map[string]bool {
	names := []string{
		"TableName", "CreateTable", "FieldNames", "FieldsWithComma", "FieldsWithQuote",
		"FieldsWithBackquote", "FieldsWithBackquoteWithoutID", "FieldSaves", "FieldSavesWithoutID",
		"FieldUpdates", "FieldUpdatesWithoutID", "FieldNamesReplace", "FieldValues", "FieldValuesWithoutID",
		"FromRow", "Equal", "EqualWithoutID", "Lock", "Identity", "GetMulti", "GetSingle", "Save",
	}
	if d.helper.FeatureEnabled(gen.FeatureBuilder.Name) {
		for _, c := range t.Columns {
			names = append(names, setterName(c))
		}
	}
	if d.helper.FeatureEnabled(gen.FeatureMsgpack.Name) {
		names = append(names, "EncodeMsgpack", "DecodeMsgpack")
	}
	if d.helper.FeatureEnabled(gen.FeatureStringer.Name) {
		names = append(names, "String")
	}
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
