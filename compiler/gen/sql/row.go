package sql

import (
	"fmt"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// genFromRow renders the positional row decoder of t. Values are read in
// column order and assigned only once every one of them converted, so a
// failed decode leaves the model untouched.
func genFromRow(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	f.Commentf("FromRow decodes a positional row into %s, in field declaration order.", t.Type)
	f.Comment("On failure the returned *sqlmodel.RowError carries the row unchanged.")
	f.Func().Params(ptrRecv(t)).Id("FromRow").Params(jen.Id("row").Add(rt(h, "Row"))).Error().BlockFunc(func(g *jen.Group) {
		for i, c := range t.Columns {
			raw, val := fmt.Sprintf("v%d", i), fmt.Sprintf("f%d", i)
			rowErr := func(err jen.Code) jen.Code {
				return jen.Return(rt(h, "NewRowError").Call(jen.Id("row"), jen.Lit(i), jen.Lit(c.StorageName), err))
			}
			g.List(jen.Id(raw), jen.Id("ok")).Op(":=").Id("row").Dot("Get").Call(jen.Lit(i))
			g.If(jen.Op("!").Id("ok")).Block(rowErr(rt(h, "ErrMissingValue")))
			g.List(jen.Id(val), jen.Err()).Op(":=").Add(rt(h, "Convert")).Types(h.GoType(t, c)).Call(jen.Id(raw))
			g.If(jen.Err().Op("!=").Nil()).Block(rowErr(jen.Err()))
		}
		for i, c := range t.Columns {
			g.Add(field(c)).Op("=").Id(fmt.Sprintf("f%d", i))
		}
		g.Return(jen.Nil())
	})
}
