package engine

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// SyntaxError reports a pattern the scanner rejected. Pos is a byte offset
// into the pattern.
type SyntaxError struct {
	Pos int
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos < 0 {
		return "engine: " + e.Msg
	}
	return fmt.Sprintf("engine: %s at offset %d", e.Msg, e.Pos)
}

type tokenKind uint8

const (
	tokText  tokenKind = iota // copied through unchanged
	tokPlain                  // "(" with no name
	tokNamed                  // "(?<name>", "(?'name'", "(?P<name>"
)

type token struct {
	kind tokenKind
	text string
	name string
	pos  int
}

// groupName records one named group in left-to-right order.
type groupName struct {
	name  string
	group int
	pos   int
}

// scan result: the pattern with names removed, the numbered named groups
// and the total number of capturing groups.
type scanned struct {
	rewritten string
	names     []groupName
	groups    int
}

func scan(pattern string, syn Syntax, captureGroup bool) (scanned, error) {
	toks, err := tokenize(pattern, syn)
	if err != nil {
		return scanned{}, err
	}

	hasNames := false
	for _, tk := range toks {
		if tk.kind == tokNamed {
			hasNames = true
			break
		}
	}
	// With named groups present, bare parentheses only capture when asked to.
	plainCaptures := !hasNames || captureGroup

	var (
		out    strings.Builder
		res    scanned
		seen   = make(map[string]bool)
		groups int
	)
	out.Grow(len(pattern))
	for _, tk := range toks {
		switch tk.kind {
		case tokText:
			out.WriteString(tk.text)
		case tokPlain:
			if plainCaptures {
				groups++
				out.WriteByte('(')
			} else {
				out.WriteString("(?:")
			}
		case tokNamed:
			if seen[tk.name] && !syn.allowsDuplicates() {
				return scanned{}, &SyntaxError{Pos: tk.pos, Msg: fmt.Sprintf("multiplex defined name <%s>", tk.name)}
			}
			seen[tk.name] = true
			groups++
			res.names = append(res.names, groupName{name: tk.name, group: groups, pos: tk.pos})
			out.WriteByte('(')
		}
		if groups > MaxGroups {
			return scanned{}, &SyntaxError{Pos: tk.pos, Msg: "too many capture groups"}
		}
	}
	res.rewritten = out.String()
	res.groups = groups
	return res, nil
}

// tokenize splits pattern into group openers and opaque text. It tracks
// escapes, \Q...\E quoting, character classes and comments so parentheses
// inside them are not mistaken for groups.
func tokenize(p string, syn Syntax) ([]token, error) {
	var (
		toks  []token
		text  strings.Builder
		depth int
	)
	flush := func() {
		if text.Len() > 0 {
			toks = append(toks, token{kind: tokText, text: text.String()})
			text.Reset()
		}
	}

	for i := 0; i < len(p); {
		c := p[i]
		switch c {
		case '\\':
			if i+1 >= len(p) {
				return nil, &SyntaxError{Pos: i, Msg: "end pattern at escape"}
			}
			if p[i+1] == 'Q' {
				end := strings.Index(p[i+2:], `\E`)
				if end < 0 {
					text.WriteString(p[i:])
					i = len(p)
					continue
				}
				text.WriteString(p[i : i+2+end+2])
				i += 2 + end + 2
				continue
			}
			_, size := utf8.DecodeRuneInString(p[i+1:])
			text.WriteString(p[i : i+1+size])
			i += 1 + size

		case '[':
			end, err := classEnd(p, i)
			if err != nil {
				return nil, err
			}
			text.WriteString(p[i:end])
			i = end

		case '(':
			if strings.HasPrefix(p[i:], "(?#") {
				end := strings.IndexByte(p[i:], ')')
				if end < 0 {
					return nil, &SyntaxError{Pos: i, Msg: "end pattern in group"}
				}
				i += end + 1
				continue
			}
			name, open, ok, err := namedOpener(p, i, syn)
			if err != nil {
				return nil, err
			}
			depth++
			switch {
			case ok:
				flush()
				toks = append(toks, token{kind: tokNamed, name: name, pos: i})
				i += open
			case namedForm(p[i:]):
				return nil, &SyntaxError{Pos: i, Msg: "undefined group option"}
			case strings.HasPrefix(p[i:], "(?"):
				text.WriteString("(?")
				i += 2
			default:
				flush()
				toks = append(toks, token{kind: tokPlain, pos: i})
				i++
			}

		case ')':
			if depth == 0 {
				return nil, &SyntaxError{Pos: i, Msg: "unmatched close parenthesis"}
			}
			depth--
			text.WriteByte(c)
			i++

		default:
			text.WriteByte(c)
			i++
		}
	}
	if depth != 0 {
		return nil, &SyntaxError{Pos: len(p), Msg: "end pattern with unmatched parenthesis"}
	}
	flush()
	return toks, nil
}

// namedOpener recognises a named group opener at p[i]. open is the opener's
// length including the closing delimiter of the name.
func namedOpener(p string, i int, syn Syntax) (name string, open int, ok bool, err error) {
	rest := p[i:]
	var prefix string
	var term byte
	switch {
	case strings.HasPrefix(rest, "(?<=") || strings.HasPrefix(rest, "(?<!"):
		return "", 0, false, nil
	case strings.HasPrefix(rest, "(?<") && syn.angleNames():
		prefix, term = "(?<", '>'
	case strings.HasPrefix(rest, "(?'") && syn.quoteNames():
		prefix, term = "(?'", '\''
	case strings.HasPrefix(rest, "(?P<") && syn.pythonNames():
		prefix, term = "(?P<", '>'
	default:
		return "", 0, false, nil
	}

	start := i + len(prefix)
	end := strings.IndexByte(p[start:], term)
	if end < 0 {
		return "", 0, false, &SyntaxError{Pos: start, Msg: "invalid group name <" + p[start:] + ">"}
	}
	name = p[start : start+end]
	if err := checkName(name, start); err != nil {
		return "", 0, false, err
	}
	return name, len(prefix) + end + 1, true, nil
}

// namedForm reports whether rest starts with any named group opener,
// whether or not the active syntax accepts it.
func namedForm(rest string) bool {
	if strings.HasPrefix(rest, "(?<=") || strings.HasPrefix(rest, "(?<!") {
		return false
	}
	return strings.HasPrefix(rest, "(?<") || strings.HasPrefix(rest, "(?'") || strings.HasPrefix(rest, "(?P<")
}

// checkName applies the group name rules: non-empty, word characters only,
// not starting with a digit.
func checkName(name string, pos int) error {
	if name == "" {
		return &SyntaxError{Pos: pos, Msg: "group name is empty"}
	}
	for j, r := range name {
		switch {
		case r == utf8.RuneError:
			return &SyntaxError{Pos: pos + j, Msg: "invalid code point value"}
		case j == 0 && unicode.IsDigit(r):
			return &SyntaxError{Pos: pos, Msg: "invalid group name <" + name + ">"}
		case r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.Is(unicode.Mn, r):
		default:
			return &SyntaxError{Pos: pos + j, Msg: "invalid char in group name <" + name + ">"}
		}
	}
	return nil
}

// classEnd returns the offset just past the character class opening at
// p[i]. Nested classes and POSIX brackets such as [:alpha:] are honoured.
func classEnd(p string, i int) (int, error) {
	j := i + 1
	if j < len(p) && p[j] == '^' {
		j++
	}
	if j < len(p) && p[j] == ']' {
		j++
	}
	depth := 1
	for j < len(p) {
		switch p[j] {
		case '\\':
			j += 2
			continue
		case '[':
			if strings.HasPrefix(p[j:], "[:") {
				if end := strings.Index(p[j+2:], ":]"); end >= 0 {
					j += 2 + end + 2
					continue
				}
			}
			depth++
		case ']':
			depth--
			if depth == 0 {
				return j + 1, nil
			}
		}
		j++
	}
	return 0, &SyntaxError{Pos: i, Msg: "premature end of char-class"}
}
