package sql

import (
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/sqlmodel/compiler/gen"
)

// recv is the receiver name of generated methods.
const recv = "_m"

// rt returns a qualified identifier of the runtime package.
func rt(h gen.GeneratorHelper, name string) *jen.Statement {
	return jen.Qual(h.RuntimePkg(), name)
}

// ptrRecv renders the named pointer receiver (_m *T).
func ptrRecv(t *gen.Table) *jen.Statement {
	return jen.Id(recv).Op("*").Id(t.Type)
}

// typeRecv renders the unnamed pointer receiver (*T) of methods that do not
// read the model.
func typeRecv(t *gen.Table) *jen.Statement {
	return jen.Op("*").Id(t.Type)
}

// field renders _m.<GoName>.
func field(c *gen.Column) *jen.Statement {
	return jen.Id(recv).Dot(c.GoName)
}

// whoCode renders the pool owner type. A qualified owner resolves through
// the imports of the declaring file.
func whoCode(t *gen.Table) jen.Code {
	pkg, name, ok := strings.Cut(t.Who, ".")
	if !ok {
		return jen.Id(t.Who)
	}
	if path, ok := t.ImportPath(pkg); ok {
		return jen.Qual(path, name)
	}
	return jen.Id(t.Who)
}

// storageNames lists the storage names of cols as literals.
func storageNames(cols []*gen.Column) []jen.Code {
	lits := make([]jen.Code, len(cols))
	for i, c := range cols {
		lits[i] = jen.Lit(c.StorageName)
	}
	return lits
}

// textCodec reports whether a column type travels as text in msgpack.
func textCodec(c *gen.Column) bool {
	switch c.Canonical {
	case "decimal.Decimal", "uuid.UUID":
		return true
	}
	return false
}
