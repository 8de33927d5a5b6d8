package sqlmodel

import (
	"fmt"
	"strings"

	"github.com/syssam/sqlmodel/dialect"
)

// Param is one named statement parameter.
type Param struct {
	Name  string
	Value any
}

// Params is an ordered list of named parameters, as produced by the
// generated FieldValues methods.
type Params []Param

// Names returns the parameter names in order.
func (p Params) Names() []string {
	names := make([]string, len(p))
	for i := range p {
		names[i] = p[i].Name
	}
	return names
}

// Get returns the value bound to name.
func (p Params) Get(name string) (any, bool) {
	for i := range p {
		if p[i].Name == name {
			return p[i].Value, true
		}
	}
	return nil, false
}

// With returns a copy of p with an extra parameter appended.
func (p Params) With(name string, value any) Params {
	out := make(Params, len(p), len(p)+1)
	copy(out, p)
	return append(out, Param{Name: name, Value: value})
}

// Map returns the parameters as a map keyed by name.
func (p Params) Map() map[string]any {
	m := make(map[string]any, len(p))
	for _, v := range p {
		m[v.Name] = v.Value
	}
	return m
}

// Bind rewrites the :name placeholders of query into the positional form of
// the given dialect and returns the matching arguments. Placeholders inside
// quoted strings or identifiers, and Postgres "::" casts, are left alone.
func (p Params) Bind(query, d string) (string, []any, error) {
	var (
		b       strings.Builder
		args    []any
		indexes map[string]int
	)
	if d == dialect.Postgres {
		indexes = make(map[string]int)
	}
	b.Grow(len(query))
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'' || c == '"' || c == '`':
			j := strings.IndexByte(query[i+1:], c)
			if j < 0 {
				b.WriteString(query[i:])
				i = len(query)
				continue
			}
			b.WriteString(query[i : i+j+2])
			i += j + 1
		case c == ':' && i+1 < len(query) && query[i+1] == ':':
			b.WriteString("::")
			i++
		case c == ':' && i+1 < len(query) && isIdentStart(query[i+1]):
			j := i + 1
			for j < len(query) && isIdentPart(query[j]) {
				j++
			}
			name := query[i+1 : j]
			v, ok := p.Get(name)
			if !ok {
				return "", nil, fmt.Errorf("%w: %q", ErrMissingParam, name)
			}
			if indexes != nil {
				n, seen := indexes[name]
				if !seen {
					args = append(args, v)
					n = len(args)
					indexes[name] = n
				}
				b.WriteString(dialect.Placeholder(d, n))
			} else {
				args = append(args, v)
				b.WriteString(dialect.Placeholder(d, len(args)))
			}
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), args, nil
}

func isIdentStart(c byte) bool {
	return c == '_' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || c >= '0' && c <= '9'
}
