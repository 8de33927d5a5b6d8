package load

import (
	"fmt"
	"go/scanner"
	"go/token"
	"strconv"
)

// ParseTableDirective parses the arguments of a table directive, the text
// after "//sqlmodel:table", e.g. ` name="users" who="AppPool"`.
//
// Values are Go string literals. A value of any other kind is treated as
// absent and its key recorded in TableOptions.Ignored. Missing options take
// DefaultTable and DefaultWho.
func ParseTableDirective(text string) (TableOptions, error) {
	opts := TableOptions{Name: DefaultTable, Who: DefaultWho}
	var (
		errs scanner.ErrorList
		s    scanner.Scanner
		fset = token.NewFileSet()
		file = fset.AddFile("", fset.Base(), len(text))
	)
	s.Init(file, []byte(text), func(pos token.Position, msg string) {
		errs.Add(pos, msg)
	}, 0)
	next := func() (token.Token, string) {
		for {
			_, tok, lit := s.Scan()
			// Automatic semicolons at end of input.
			if tok == token.SEMICOLON && lit == "\n" {
				continue
			}
			return tok, lit
		}
	}
	for {
		tok, lit := next()
		if len(errs) > 0 {
			return opts, errs.Err()
		}
		switch tok {
		case token.EOF:
			return opts, nil
		case token.COMMA, token.SEMICOLON:
			continue
		case token.IDENT:
		default:
			return opts, fmt.Errorf("expect option name, got %q", tokenText(tok, lit))
		}
		key := lit
		if tok, lit = next(); tok != token.ASSIGN {
			return opts, fmt.Errorf("expect '=' after %q, got %q", key, tokenText(tok, lit))
		}
		tok, lit = next()
		if len(errs) > 0 {
			return opts, errs.Err()
		}
		switch tok {
		case token.STRING:
			v, err := strconv.Unquote(lit)
			if err != nil {
				return opts, fmt.Errorf("option %q: %w", key, err)
			}
			switch key {
			case "name":
				opts.Name = v
			case "who":
				opts.Who = v
			default:
				opts.Unknown = append(opts.Unknown, key)
			}
		case token.INT, token.FLOAT, token.IMAG, token.CHAR, token.IDENT:
			opts.Ignored = append(opts.Ignored, key)
		default:
			return opts, fmt.Errorf("option %q: expect a value, got %q", key, tokenText(tok, lit))
		}
	}
}

func tokenText(tok token.Token, lit string) string {
	if lit != "" {
		return lit
	}
	return tok.String()
}
