package sql

import (
	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
)

const msgpackPkg = "github.com/vmihailenco/msgpack/v5"

// genMsgpack renders EncodeMsgpack and DecodeMsgpack. The model travels as
// a map keyed by logical names so readers in other languages see a plain
// object. Decoding fails when a key is missing and skips unknown keys.
func genMsgpack(h gen.GeneratorHelper, f *jen.File, t *gen.Table) {
	checkErr := func(call jen.Code) jen.Code {
		return jen.If(jen.Err().Op(":=").Add(call), jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err()))
	}

	f.Commentf("EncodeMsgpack encodes %s as a map keyed by logical names.", t.Type)
	f.Func().Params(ptrRecv(t)).Id("EncodeMsgpack").Params(jen.Id("enc").Op("*").Qual(msgpackPkg, "Encoder")).Error().BlockFunc(func(g *jen.Group) {
		g.Add(checkErr(jen.Id("enc").Dot("EncodeMapLen").Call(jen.Lit(len(t.Columns)))))
		for _, c := range t.Columns {
			g.Add(checkErr(jen.Id("enc").Dot("EncodeString").Call(jen.Lit(c.Name))))
			if textCodec(c) {
				g.Add(checkErr(rt(h, "EncodeText").Call(jen.Id("enc"), field(c))))
				continue
			}
			g.Add(checkErr(jen.Id("enc").Dot("Encode").Call(field(c))))
		}
		g.Return(jen.Nil())
	})

	keys := make([]jen.Code, 0, len(t.Columns)+1)
	keys = append(keys, jen.Id("seen"))
	for _, c := range t.Columns {
		keys = append(keys, jen.Lit(c.Name))
	}
	f.Commentf("DecodeMsgpack decodes %s from a map keyed by logical names.", t.Type)
	f.Func().Params(ptrRecv(t)).Id("DecodeMsgpack").Params(jen.Id("dec").Op("*").Qual(msgpackPkg, "Decoder")).Error().Block(
		jen.List(jen.Id("n"), jen.Err()).Op(":=").Id("dec").Dot("DecodeMapLen").Call(),
		jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
		jen.Id("seen").Op(":=").Make(jen.Map(jen.String()).Bool(), jen.Max(jen.Id("n"), jen.Lit(0))),
		jen.For(jen.Id("i").Op(":=").Lit(0), jen.Id("i").Op("<").Id("n"), jen.Id("i").Op("++")).Block(
			jen.List(jen.Id("key"), jen.Err()).Op(":=").Id("dec").Dot("DecodeString").Call(),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
			jen.Switch(jen.Id("key")).BlockFunc(func(g *jen.Group) {
				for _, c := range t.Columns {
					if textCodec(c) {
						g.Case(jen.Lit(c.Name)).Block(jen.Err().Op("=").Add(rt(h, "DecodeText")).Call(jen.Id("dec"), jen.Op("&").Add(field(c))))
						continue
					}
					g.Case(jen.Lit(c.Name)).Block(jen.Err().Op("=").Id("dec").Dot("Decode").Call(jen.Op("&").Add(field(c))))
				}
				g.Default().Block(jen.Err().Op("=").Id("dec").Dot("Skip").Call())
			}),
			jen.If(jen.Err().Op("!=").Nil()).Block(jen.Return(jen.Err())),
			jen.Id("seen").Index(jen.Id("key")).Op("=").True(),
		),
		jen.Return(rt(h, "RequireKeys").Call(keys...)),
	)
}
