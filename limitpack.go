package sqlmodel

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// DefaultLimit is the value length generated String methods truncate to.
const DefaultLimit = 64

// LimitPack renders a model as Name(key=value, ...) with every value longer
// than limit runes cut short and suffixed with "...". A limit <= 0 disables
// truncation.
func LimitPack(name string, p Params, limit int) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteByte('(')
	for i, v := range p {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(v.Name)
		b.WriteByte('=')
		b.WriteString(limitValue(v.Value, limit))
	}
	b.WriteByte(')')
	return b.String()
}

func limitValue(v any, limit int) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []byte:
		if utf8.Valid(x) {
			s = string(x)
		} else {
			s = fmt.Sprintf("%x", x)
		}
	case fmt.Stringer:
		s = x.String()
	default:
		s = fmt.Sprintf("%v", v)
	}
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	cut := 0
	for i := range s {
		if cut == limit {
			return s[:i] + "..."
		}
		cut++
	}
	return s
}
