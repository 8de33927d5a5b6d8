package gen

import (
	"go/ast"
	"go/types"

	"github.com/dave/jennifer/jen"
)

// TypeCode converts a declared type expression into Jennifer code. Package
// qualifiers resolve through imports so the generated file imports the
// same packages as the source file.
func TypeCode(expr ast.Expr, imports map[string]string) jen.Code {
	switch x := expr.(type) {
	case *ast.Ident:
		return jen.Id(x.Name)
	case *ast.SelectorExpr:
		if id, ok := x.X.(*ast.Ident); ok {
			if path, ok := imports[id.Name]; ok {
				return jen.Qual(path, x.Sel.Name)
			}
		}
	case *ast.StarExpr:
		return jen.Op("*").Add(TypeCode(x.X, imports))
	case *ast.ArrayType:
		if x.Len == nil {
			return jen.Index().Add(TypeCode(x.Elt, imports))
		}
		return jen.Index(jen.Id(types.ExprString(x.Len))).Add(TypeCode(x.Elt, imports))
	case *ast.MapType:
		return jen.Map(TypeCode(x.Key, imports)).Add(TypeCode(x.Value, imports))
	case *ast.ParenExpr:
		return TypeCode(x.X, imports)
	case *ast.IndexExpr:
		return jen.Add(TypeCode(x.X, imports)).Types(TypeCode(x.Index, imports))
	case *ast.IndexListExpr:
		params := make([]jen.Code, len(x.Indices))
		for i, idx := range x.Indices {
			params[i] = TypeCode(idx, imports)
		}
		return jen.Add(TypeCode(x.X, imports)).Types(params...)
	}
	return jen.Id(types.ExprString(expr))
}
