// Package funcname injects a constant holding the enclosing function name
// into functions marked with a directive, for use in error wrapping:
//
//	//sqlmodel:funcname
//	func (s *Store) Reload() error {
//		const funcName = "Store.Reload"
//		...
//		return sqlmodel.WrapFunc(funcName, err)
//	}
//
// Generated model methods carry the same declaration via Decl.
package funcname

import (
	"bytes"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/dave/jennifer/jen"
	"golang.org/x/tools/imports"
)

const (
	// Directive marks a function for injection.
	Directive = "//sqlmodel:funcname"
	// Ident is the name of the injected constant.
	Ident = "funcName"
)

// Decl returns the injected declaration: const funcName = "<name>".
func Decl(name string) jen.Code {
	return jen.Const().Id(Ident).Op("=").Lit(name)
}

// Name returns the injected name of a function: "Recv.Name" for methods,
// the bare name otherwise. Pointer and generic receivers are reduced to
// their type name.
func Name(fn *ast.FuncDecl) string {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return fn.Name.Name
	}
	return recvName(fn.Recv.List[0].Type) + "." + fn.Name.Name
}

func recvName(expr ast.Expr) string {
	switch x := expr.(type) {
	case *ast.StarExpr:
		return recvName(x.X)
	case *ast.ParenExpr:
		return recvName(x.X)
	case *ast.IndexExpr:
		return recvName(x.X)
	case *ast.IndexListExpr:
		return recvName(x.X)
	case *ast.Ident:
		return x.Name
	}
	return ""
}

// Marked reports whether fn carries the directive in its doc comment.
func Marked(fn *ast.FuncDecl) bool {
	if fn.Doc == nil {
		return false
	}
	for _, c := range fn.Doc.List {
		if strings.TrimSpace(c.Text) == Directive {
			return true
		}
	}
	return false
}

// Declared reports whether the body of fn already declares funcName at its
// top level.
func Declared(fn *ast.FuncDecl) bool {
	if fn.Body == nil {
		return false
	}
	for _, stmt := range fn.Body.List {
		ds, ok := stmt.(*ast.DeclStmt)
		if !ok {
			continue
		}
		gd, ok := ds.Decl.(*ast.GenDecl)
		if !ok || (gd.Tok != token.CONST && gd.Tok != token.VAR) {
			continue
		}
		for _, spec := range gd.Specs {
			vs, ok := spec.(*ast.ValueSpec)
			if !ok {
				continue
			}
			for _, n := range vs.Names {
				if n.Name == Ident {
					return true
				}
			}
		}
	}
	return false
}

// Rewrite injects the declaration into every marked function of src that
// does not declare it yet. It reports whether anything was injected; the
// output is src unchanged when nothing was.
func Rewrite(filename string, src []byte) ([]byte, bool, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, false, fmt.Errorf("funcname: parse %s: %w", filename, err)
	}
	type insertion struct {
		offset int
		text   string
	}
	var ins []insertion
	for _, d := range f.Decls {
		fn, ok := d.(*ast.FuncDecl)
		if !ok || fn.Body == nil || !Marked(fn) || Declared(fn) {
			continue
		}
		offset := fset.Position(fn.Body.Lbrace).Offset + 1
		text := "\nconst " + Ident + " = " + strconv.Quote(Name(fn))
		if !opensLine(src[offset:]) {
			text += "\n"
		}
		ins = append(ins, insertion{offset: offset, text: text})
	}
	if len(ins) == 0 {
		return src, false, nil
	}
	sort.Slice(ins, func(i, j int) bool { return ins[i].offset > ins[j].offset })
	out := bytes.Clone(src)
	for _, in := range ins {
		out = append(out[:in.offset], append([]byte(in.text), out[in.offset:]...)...)
	}
	formatted, err := imports.Process(filename, out, nil)
	if err != nil {
		return nil, false, fmt.Errorf("funcname: format %s: %w", filename, err)
	}
	return formatted, true, nil
}

// opensLine reports whether rest starts with a line break, ignoring blanks.
func opensLine(rest []byte) bool {
	rest = bytes.TrimLeft(rest, " \t\r")
	return len(rest) > 0 && rest[0] == '\n'
}

// RewriteFile rewrites the file at path in place. The file is left
// untouched when nothing needs injecting.
func RewriteFile(path string) (bool, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	out, changed, err := Rewrite(path, src)
	if err != nil || !changed {
		return false, err
	}
	fi, err := os.Stat(path)
	if err != nil {
		return false, err
	}
	if err := os.WriteFile(path, out, fi.Mode().Perm()); err != nil {
		return false, err
	}
	return true, nil
}
