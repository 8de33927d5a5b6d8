// Package load reads model declarations from Go source: struct types marked
// with a //sqlmodel:table directive, and the sqlmodel struct tags of their
// fields.
package load

import (
	"errors"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-openapi/inflect"
)

// Directive and tag names recognized in source files.
const (
	// DirectivePrefix starts every sqlmodel comment directive.
	DirectivePrefix = "//sqlmodel:"
	// TableDirective carries the table-level options of a struct.
	TableDirective = DirectivePrefix + "table"
	// ModelDirective selects a struct with default table options.
	ModelDirective = DirectivePrefix + "model"
	// TagKey is the struct tag key holding field options.
	TagKey = "sqlmodel"
)

// Defaults applied when the table directive omits an option.
const (
	DefaultTable = "unknown"
	DefaultWho   = "DbPool"
)

// ErrInvalidDecl is matched by every DeclError.
var ErrInvalidDecl = errors.New("sqlmodel: invalid declaration")

// DeclError reports malformed input: a non-struct declaration, an unnamed
// field or an unparseable annotation literal. It is always fatal.
type DeclError struct {
	Pos     string // file:line:column of the offending node
	Type    string // declaration name
	Field   string // field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *DeclError) Error() string {
	var b strings.Builder
	if e.Pos != "" {
		b.WriteString(e.Pos)
		b.WriteString(": ")
	}
	b.WriteString("sqlmodel: invalid declaration")
	if e.Type != "" {
		b.WriteString(" ")
		b.WriteString(e.Type)
	}
	if e.Field != "" {
		b.WriteString(".")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *DeclError) Unwrap() error { return e.Cause }

// Is reports whether the target matches ErrInvalidDecl.
func (e *DeclError) Is(target error) bool { return target == ErrInvalidDecl }

// Decl is a struct declaration selected for generation.
type Decl struct {
	Name    string       `json:"name,omitempty"`
	Package string       `json:"package,omitempty"`
	File    string       `json:"file,omitempty"`
	Pos     string       `json:"-"`
	Table   TableOptions `json:"table"`
	Fields  []*Field     `json:"fields,omitempty"`
	// Imports maps the local import names of the declaring file to paths.
	Imports map[string]string `json:"imports,omitempty"`
}

// TableOptions holds the table-level annotation of a declaration.
type TableOptions struct {
	Name string `json:"name,omitempty"`
	Who  string `json:"who,omitempty"`
	// Annotated is false when the declaration had no table directive and
	// the defaults were applied.
	Annotated bool `json:"annotated,omitempty"`
	// Ignored lists directive keys whose value was not a string literal.
	Ignored []string `json:"ignored,omitempty"`
	// Unknown lists directive keys other than name and who.
	Unknown []string `json:"unknown,omitempty"`
}

// Field is one named struct field.
type Field struct {
	// Name is the logical identifier: the snake_case form of GoName.
	Name   string `json:"name,omitempty"`
	GoName string `json:"go_name,omitempty"`
	// Type is the declared type as written in source, e.g. "time.Time".
	Type    string   `json:"type,omitempty"`
	Expr    ast.Expr `json:"-"`
	Options Options  `json:"options,omitempty"`
	Pos     string   `json:"-"`
}

// Options are the key/value pairs of a field annotation. Keys given without a
// value map to the empty string.
type Options map[string]string

// Lookup returns the option value and whether the key was present.
func (o Options) Lookup(key string) (string, bool) {
	v, ok := o[key]
	return v, ok
}

// Has reports whether the key was present.
func (o Options) Has(key string) bool {
	_, ok := o[key]
	return ok
}

// LogicalName returns the logical identifier of a Go field name: its
// camel-case words joined by underscores.
//
//	LogicalName("ID")         // "id"
//	LogicalName("UserName")   // "user_name"
//	LogicalName("HTTPServer") // "http_server"
//	LogicalName("UserIDs")    // "user_ids"
func LogicalName(goName string) string {
	words := splitWords(goName)
	for i, w := range words {
		rs := []rune(strings.ToLower(w))
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return inflect.Underscore(strings.Join(words, ""))
}

// splitWords splits an identifier at underscores and case changes. An
// uppercase run followed by a lowercase letter hands its last letter to the
// next word (HTTPServer: HTTP, Server), unless that letter is a plural s
// ending the word (IDs).
func splitWords(s string) []string {
	var (
		rs    = []rune(s)
		words []string
		start int
	)
	flush := func(end int) {
		if end > start {
			words = append(words, string(rs[start:end]))
		}
		start = end
	}
	for i, r := range rs {
		switch {
		case r == '_':
			flush(i)
			start = i + 1
		case i == start || !unicode.IsUpper(r):
		case !unicode.IsUpper(rs[i-1]):
			flush(i)
		case i+1 < len(rs) && unicode.IsLower(rs[i+1]) && !pluralAt(rs, i+1):
			flush(i)
		}
	}
	flush(len(rs))
	return words
}

func pluralAt(rs []rune, i int) bool {
	return rs[i] == 's' && (i+1 == len(rs) || !unicode.IsLower(rs[i+1]))
}

// ParseFieldTag parses the sqlmodel options of a struct tag. The tag is the
// unquoted tag text, e.g. `json:"id" sqlmodel:"auto;key:PRIMARY"`. The second
// result is false when the field is excluded with `sqlmodel:"-"`. A sqlmodel
// key whose value is not a quoted string is an error.
func ParseFieldTag(tag string) (Options, bool, error) {
	opts := make(Options)
	v, ok, err := lookupTag(tag, TagKey)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		return opts, true, nil
	}
	if strings.TrimSpace(v) == "-" {
		return nil, false, nil
	}
	for _, part := range strings.Split(v, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, ":")
		opts[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return opts, true, nil
}

// lookupTag scans the conventional key:"value" pairs of a struct tag like
// reflect.StructTag.Lookup. Unlike Lookup, malformed syntax from the point
// where key appears is an error rather than a miss.
func lookupTag(tag, key string) (string, bool, error) {
	for tag != "" {
		tag = strings.TrimLeft(tag, " ")
		if tag == "" {
			break
		}
		pair := tag
		i := 0
		for i < len(tag) && tag[i] > ' ' && tag[i] != ':' && tag[i] != '"' && tag[i] != 0x7f {
			i++
		}
		if i == 0 || i+1 >= len(tag) || tag[i] != ':' || tag[i+1] != '"' {
			return malformedTag(pair, key)
		}
		name := tag[:i]
		tag = tag[i+1:]
		i = 1
		for i < len(tag) && tag[i] != '"' {
			if tag[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(tag) {
			return malformedTag(pair, key)
		}
		quoted := tag[:i+1]
		tag = tag[i+1:]
		if name != key {
			continue
		}
		v, err := strconv.Unquote(quoted)
		if err != nil {
			return "", false, fmt.Errorf("bad %s value %s: %w", key, quoted, err)
		}
		return v, true, nil
	}
	return "", false, nil
}

func malformedTag(rest, key string) (string, bool, error) {
	if !strings.Contains(rest, key+":") {
		return "", false, nil
	}
	return "", false, fmt.Errorf("bad syntax in %q", rest)
}

// parseFields collects the named fields of a struct type.
func parseFields(fset *token.FileSet, name string, st *ast.StructType) ([]*Field, error) {
	var fields []*Field
	for _, f := range st.Fields.List {
		if len(f.Names) == 0 {
			return nil, &DeclError{
				Pos:     fset.Position(f.Pos()).String(),
				Type:    name,
				Field:   types.ExprString(f.Type),
				Message: "embedded fields are not supported; every field must be named",
			}
		}
		var tag string
		if f.Tag != nil {
			t, err := strconv.Unquote(f.Tag.Value)
			if err != nil {
				return nil, &DeclError{
					Pos:     fset.Position(f.Tag.Pos()).String(),
					Type:    name,
					Field:   f.Names[0].Name,
					Message: "malformed struct tag",
					Cause:   err,
				}
			}
			tag = t
		}
		opts, keep, err := ParseFieldTag(tag)
		if err != nil {
			return nil, &DeclError{
				Pos:     fset.Position(f.Tag.Pos()).String(),
				Type:    name,
				Field:   f.Names[0].Name,
				Message: "malformed sqlmodel tag",
				Cause:   err,
			}
		}
		if !keep {
			continue
		}
		for _, id := range f.Names {
			if id.Name == "_" {
				continue
			}
			fields = append(fields, &Field{
				Name:    LogicalName(id.Name),
				GoName:  id.Name,
				Type:    types.ExprString(f.Type),
				Expr:    f.Type,
				Options: opts,
				Pos:     fset.Position(id.Pos()).String(),
			})
		}
	}
	return fields, nil
}

// fileImports returns the local-name to path mapping of a file's imports.
func fileImports(f *ast.File) map[string]string {
	imports := make(map[string]string, len(f.Imports))
	for _, spec := range f.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		name := PackageName(path)
		if spec.Name != nil {
			name = spec.Name.Name
		}
		if name == "_" || name == "." {
			continue
		}
		imports[name] = path
	}
	return imports
}

// PackageName returns the conventional package name of an import path: the
// last element without a major version suffix.
//
//	PackageName("github.com/vmihailenco/msgpack/v5") // "msgpack"
//	PackageName("gopkg.in/yaml.v3")                  // "yaml"
func PackageName(path string) string {
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	if len(parts) > 1 && isMajorVersion(name) {
		name = parts[len(parts)-2]
	}
	if i := strings.Index(name, ".v"); i > 0 && isMajorVersion(name[i+1:]) {
		name = name[:i]
	}
	name = strings.TrimPrefix(name, "go-")
	return strings.ReplaceAll(name, "-", "_")
}

func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	_, err := strconv.Atoi(s[1:])
	return err == nil
}

// declDirective returns the table or model directive in a doc comment.
func declDirective(doc *ast.CommentGroup) (text string, ok bool) {
	if doc == nil {
		return "", false
	}
	for _, c := range doc.List {
		switch {
		case c.Text == ModelDirective || strings.HasPrefix(c.Text, ModelDirective+" "):
			return "", true
		case c.Text == TableDirective || strings.HasPrefix(c.Text, TableDirective+" "):
			return strings.TrimPrefix(c.Text, TableDirective), true
		}
	}
	return "", false
}

// parseAST extracts the selected declarations of a parsed file. A type is
// selected when it carries a directive or when its name is in names.
func parseAST(fset *token.FileSet, file *ast.File, names map[string]bool) ([]*Decl, error) {
	var (
		decls   []*Decl
		imports = fileImports(file)
	)
	for _, d := range file.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}
		for _, spec := range gd.Specs {
			ts := spec.(*ast.TypeSpec)
			doc := ts.Doc
			if doc == nil && len(gd.Specs) == 1 {
				doc = gd.Doc
			}
			args, marked := declDirective(doc)
			if !marked && !names[ts.Name.Name] {
				continue
			}
			pos := fset.Position(ts.Pos()).String()
			st, ok := ts.Type.(*ast.StructType)
			if !ok {
				return nil, &DeclError{
					Pos:     pos,
					Type:    ts.Name.Name,
					Message: fmt.Sprintf("expect a struct type, got %s", types.ExprString(ts.Type)),
				}
			}
			table, err := ParseTableDirective(args)
			if err != nil {
				return nil, &DeclError{Pos: pos, Type: ts.Name.Name, Message: "malformed table directive", Cause: err}
			}
			table.Annotated = marked
			fields, err := parseFields(fset, ts.Name.Name, st)
			if err != nil {
				return nil, err
			}
			decls = append(decls, &Decl{
				Name:    ts.Name.Name,
				Package: file.Name.Name,
				File:    fset.Position(file.Pos()).Filename,
				Pos:     pos,
				Table:   table,
				Fields:  fields,
				Imports: imports,
			})
		}
	}
	return decls, nil
}
