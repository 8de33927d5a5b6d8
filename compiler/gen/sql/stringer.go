package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// genStringer renders a String method that prints every column with long
// values truncated.
func genStringer(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	f.Commentf("String implements fmt.Stringer. Values longer than %s are truncated.", "sqlmodel.DefaultLimit")
	f.Func().Params(ptrRecv(t)).Id("String").Params().String().Block(
		jen.Return(rt(h, "LimitPack").Call(jen.Lit(t.Type), jen.Id(recv).Dot("FieldValues").Call(), rt(h, "DefaultLimit"))),
	)
}
