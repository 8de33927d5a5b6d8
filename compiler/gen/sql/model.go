package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// genFragments renders the statement fragments of t as methods returning
// string constants.
func genFragments(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	var (
		all   = t.Columns
		nonID = t.WithoutID()
	)
	constMethod(f, t, "TableName", "returns the storage table of %s.", t.Name)
	constMethod(f, t, "CreateTable", "returns the CREATE TABLE statement of %s.", CreateTable(t))
	constMethod(f, t, "FieldNames", "lists the columns of %s: a, b, c.", FieldNames(all))
	constMethod(f, t, "FieldsWithComma", "lists the columns of %s with a trailing comma: a, b, c,.", FieldsWithComma(all))
	constMethod(f, t, "FieldsWithQuote", "lists the quoted columns of %s.", Quoted(all))
	constMethod(f, t, "FieldsWithBackquote", "lists the backquoted columns of %s.", Backquoted(all))
	constMethod(f, t, "FieldsWithBackquoteWithoutID", "lists the backquoted columns of %s, except id.", Backquoted(nonID))
	constMethod(f, t, "FieldSaves", "lists the named placeholders of %s: :a, :b.", Placeholders(all))
	constMethod(f, t, "FieldSavesWithoutID", "lists the named placeholders of %s, except id.", Placeholders(nonID))
	constMethod(f, t, "FieldUpdates", "lists the assignments of %s: a=:a, b=:b.", Assignments(all))
	constMethod(f, t, "FieldUpdatesWithoutID", "lists the assignments of %s, except id.", Assignments(nonID))

	f.Comment("FieldNamesReplace returns FieldNames with each from/to pair applied in order.")
	f.Func().Params(typeRecv(t)).Id("FieldNamesReplace").Params(jen.Id("pairs").Op("...").Index(jen.Lit(2)).String()).String().Block(
		jen.Return(rt(h, "ReplaceNames").Call(jen.Lit(FieldNames(all)), jen.Id("pairs").Op("..."))),
	)
}

func constMethod(f *jen.File, t *gen.Table, name, doc, value string) {
	f.Commentf("%s "+doc, name, t.Type)
	f.Func().Params(typeRecv(t)).Id(name).Params().String().Block(jen.Return(jen.Lit(value)))
}

// genFieldValues renders FieldValues and FieldValuesWithoutID. Slices and
// maps are cloned so the parameters do not alias the model.
func genFieldValues(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	values := func(name string, cols []*gen.Column) {
		f.Func().Params(ptrRecv(t)).Id(name).Params().Add(rt(h, "Params")).Block(
			jen.Return(rt(h, "Params").ValuesFunc(func(g *jen.Group) {
				for _, c := range cols {
					g.Values(jen.Dict{
						jen.Id("Name"):  jen.Lit(c.StorageName),
						jen.Id("Value"): cloneValue(c),
					})
				}
			})),
		)
	}
	f.Commentf("FieldValues returns the named parameters of every column of %s.", t.Type)
	values("FieldValues", t.Columns)
	f.Commentf("FieldValuesWithoutID returns the named parameters of %s, except id.", t.Type)
	values("FieldValuesWithoutID", t.WithoutID())
}

func cloneValue(c *gen.Column) jen.Code {
	switch {
	case c.Canonical == "[]byte" || c.Canonical == "json.RawMessage":
		return jen.Qual("bytes", "Clone").Call(field(c))
	case len(c.Canonical) > 2 && c.Canonical[:2] == "[]":
		return jen.Qual("slices", "Clone").Call(field(c))
	case len(c.Canonical) > 4 && c.Canonical[:4] == "map[":
		return jen.Qual("maps", "Clone").Call(field(c))
	}
	return field(c)
}
