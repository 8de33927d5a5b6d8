package load

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/go/packages"
)

// ParseFile parses one Go source file and returns the selected declarations
// in source order. If src is nil the file is read from disk. Types whose name
// is in names are selected even without a directive.
func ParseFile(filename string, src any, names ...string) ([]*Decl, error) {
	fset := token.NewFileSet()
	f, err := parser.ParseFile(fset, filename, src, parser.ParseComments|parser.SkipObjectResolution)
	if err != nil {
		return nil, fmt.Errorf("sqlmodel/load: parse %s: %w", filename, err)
	}
	return parseAST(fset, f, nameSet(names))
}

// ParseDir parses the non-test Go files of a directory. Files generated by
// sqlmodel (ending in suffix) are skipped so regeneration is stable.
func ParseDir(dir, suffix string, names ...string) ([]*Decl, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("sqlmodel/load: read dir %s: %w", dir, err)
	}
	var (
		decls []*Decl
		sel   = nameSet(names)
		fset  = token.NewFileSet()
	)
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isSource(name, suffix) {
			continue
		}
		path := filepath.Join(dir, name)
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, fmt.Errorf("sqlmodel/load: parse %s: %w", path, err)
		}
		ds, err := parseAST(fset, f, sel)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}

// Packages loads the packages matching the patterns with go/packages and
// returns their selected declarations, ordered by file then position.
func Packages(ctx context.Context, suffix string, patterns []string, names ...string) ([]*Decl, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    packages.NeedName | packages.NeedFiles | packages.NeedSyntax,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("sqlmodel/load: loading packages: %w", err)
	}
	var (
		decls []*Decl
		sel   = nameSet(names)
	)
	for _, pkg := range pkgs {
		if len(pkg.Errors) > 0 {
			return nil, fmt.Errorf("sqlmodel/load: package %s: %w", pkg.PkgPath, pkg.Errors[0])
		}
		files := make([]*ast.File, 0, len(pkg.Syntax))
		for _, f := range pkg.Syntax {
			if isSource(filepath.Base(pkg.Fset.Position(f.Pos()).Filename), suffix) {
				files = append(files, f)
			}
		}
		sort.Slice(files, func(i, j int) bool {
			return pkg.Fset.Position(files[i].Pos()).Filename < pkg.Fset.Position(files[j].Pos()).Filename
		})
		for _, f := range files {
			ds, err := parseAST(pkg.Fset, f, sel)
			if err != nil {
				return nil, err
			}
			decls = append(decls, ds...)
		}
	}
	return decls, nil
}

// Load dispatches on the shape of each argument: a .go file is parsed alone,
// an existing directory is parsed with ParseDir, anything else is handed to
// Packages as a package pattern.
func Load(ctx context.Context, suffix string, args []string, names ...string) ([]*Decl, error) {
	var (
		decls    []*Decl
		patterns []string
	)
	for _, arg := range args {
		if strings.HasSuffix(arg, ".go") {
			ds, err := ParseFile(arg, nil, names...)
			if err != nil {
				return nil, err
			}
			decls = append(decls, ds...)
			continue
		}
		if fi, err := os.Stat(arg); err == nil && fi.IsDir() {
			ds, err := ParseDir(arg, suffix, names...)
			if err != nil {
				return nil, err
			}
			decls = append(decls, ds...)
			continue
		}
		patterns = append(patterns, arg)
	}
	if len(patterns) > 0 {
		ds, err := Packages(ctx, suffix, patterns, names...)
		if err != nil {
			return nil, err
		}
		decls = append(decls, ds...)
	}
	return decls, nil
}

func isSource(name, suffix string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		(suffix == "" || !strings.HasSuffix(name, suffix))
}

func nameSet(names []string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}
