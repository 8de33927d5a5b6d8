package sql

import (
	"github.com/dave/jennifer/jen"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// setterName returns the builder method of a column: With<GoName>, with the
// first letter of unexported fields upper-cased.
func setterName(c *gen.Column) string {
	if c.Exported() {
		return "With" + c.GoName
	}
	return "With" + cases.Title(language.Und, cases.NoLower).String(c.GoName)
}

// genBuilders renders one chainable setter per column.
func genBuilders(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	for _, c := range t.Columns {
		f.Commentf("%s sets the %s field.", setterName(c), c.GoName)
		f.Func().Params(ptrRecv(t)).Id(setterName(c)).Params(jen.Id("v").Add(h.GoType(t, c))).Op("*").Id(t.Type).Block(
			field(c).Op("=").Id("v"),
			jen.Return(jen.Id(recv)),
		)
	}
}
