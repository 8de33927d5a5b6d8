package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// genEqual renders Equal and EqualWithoutID, the conjunction of the
// per-column comparisons. A model without columns is always equal.
func genEqual(f *jen.File, t *gen.Table) {
	equal := func(name string, cols []*gen.Column) {
		f.Func().Params(ptrRecv(t)).Id(name).Params(jen.Id("other").Op("*").Id(t.Type)).Bool().BlockFunc(func(g *jen.Group) {
			if len(cols) == 0 {
				g.Return(jen.True())
				return
			}
			var expr *jen.Statement
			for _, c := range cols {
				cmp := compare(c)
				if expr == nil {
					expr = jen.Add(cmp)
					continue
				}
				expr = expr.Op("&&").Line().Add(cmp)
			}
			g.Return(expr)
		})
	}
	f.Commentf("Equal reports whether every column of %s holds the same value in other.", t.Type)
	equal("Equal", t.Columns)
	f.Comment("EqualWithoutID is Equal, ignoring id.")
	equal("EqualWithoutID", t.WithoutID())
}

// compare renders the equality test of one column. Values that cannot be
// compared with == fall back to their Equal method or reflect.DeepEqual.
func compare(c *gen.Column) jen.Code {
	var (
		a = jen.Id(recv).Dot(c.GoName)
		b = jen.Id("other").Dot(c.GoName)
	)
	switch ct := c.Canonical; {
	case ct == "[]byte" || ct == "json.RawMessage":
		return jen.Qual("bytes", "Equal").Call(a, b)
	case ct == "time.Time" || ct == "decimal.Decimal":
		return a.Dot("Equal").Call(b)
	case scalar(ct):
		return jen.Add(a).Op("==").Add(b)
	}
	return jen.Qual("reflect", "DeepEqual").Call(a, b)
}

// scalar reports whether values of a canonical type are known to
// support ==: predeclared types, types of the model's own package and
// uuid.UUID.
func scalar(ct string) bool {
	switch ct {
	case "uuid.UUID":
		return true
	}
	return !strings.ContainsAny(ct, ".[]*(") && !strings.HasPrefix(ct, "map") && !strings.HasPrefix(ct, "func") &&
		!strings.HasPrefix(ct, "chan") && ct != "any" && ct != "interface{}"
}
