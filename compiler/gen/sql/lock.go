package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/funcname"
	"github.com/syssam/sqlmodel/compiler/gen"
)

// genLock renders Lock, which acquires the pool of the owner type named by
// the table directive.
func genLock(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	f.Commentf("Lock returns an exclusive handle on the pool of %s, owned by %s.", t.Type, t.Who)
	f.Func().Params(typeRecv(t)).Id("Lock").Params().Params(jen.Op("*").Add(rt(h, "Guard")), jen.Error()).Block(
		funcname.Decl(t.Type+".Lock"),
		jen.List(jen.Id("g"), jen.Err()).Op(":=").New(whoCode(t)).Dot("Lock").Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(
			jen.Return(jen.Nil(), rt(h, "WrapFunc").Call(jen.Id(funcname.Ident), jen.Err())),
		),
		jen.Return(jen.Id("g"), jen.Nil()),
	)
}

// genIdentity renders Identity for tables with an id column.
func genIdentity(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	id, ok := t.IDColumn()
	if !ok {
		return
	}
	f.Commentf("Identity returns the id column of %s, its value and whether it is set.", t.Type)
	f.Func().Params(ptrRecv(t)).Id("Identity").Params().Params(jen.String(), jen.Any(), jen.Bool()).Block(
		jen.Return(jen.Lit(id.StorageName), field(id), jen.Op("!").Add(rt(h, "IsZero")).Call(field(id))),
	)
}

// genQueries renders the GetMulti, GetSingle and Save shorthands.
func genQueries(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	ctx := jen.Id("ctx").Qual("context", "Context")
	args := []jen.Code{ctx, jen.Id("stmt").String(), jen.Id("params").Add(rt(h, "Params"))}

	f.Commentf("GetMulti runs stmt on the pool of %s and decodes every row.", t.Type)
	f.Func().Params(typeRecv(t)).Id("GetMulti").Params(args...).Params(jen.Index().Id(t.Type), jen.Error()).Block(
		jen.Return(rt(h, "GetMulti").Types(jen.Id(t.Type)).Call(jen.Id("ctx"), jen.Id("stmt"), jen.Id("params"))),
	)
	f.Commentf("GetSingle runs stmt on the pool of %s and decodes the first row, if any.", t.Type)
	f.Func().Params(typeRecv(t)).Id("GetSingle").Params(args...).Params(jen.Op("*").Id(t.Type), jen.Error()).Block(
		jen.Return(rt(h, "GetSingle").Types(jen.Id(t.Type)).Call(jen.Id("ctx"), jen.Id("stmt"), jen.Id("params"))),
	)

	store := "Insert"
	doc := "Save inserts %s as a new record."
	if t.HasID() {
		store = "Save"
		doc = "Save updates %s when its id is set and inserts it otherwise."
	}
	f.Commentf(doc, t.Type)
	f.Func().Params(ptrRecv(t)).Id("Save").Params(jen.Id("ctx").Qual("context", "Context")).Error().Block(
		funcname.Decl(t.Type+".Save"),
		jen.List(jen.Id("_"), jen.Err()).Op(":=").Add(rt(h, store)).Call(jen.Id("ctx"), jen.Id(recv)),
		jen.Return(rt(h, "WrapFunc").Call(jen.Id(funcname.Ident), jen.Err())),
	)
}
