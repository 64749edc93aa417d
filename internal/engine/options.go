package engine

import (
	"fmt"
	"strings"

	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/format"
)

// MaxGroups bounds the number of capturing groups in one pattern.
const MaxGroups = format.MaxGroupIndex

// Syntax selects which named group forms a pattern may use.
type Syntax uint8

const (
	// SyntaxRuby accepts (?<name>...) and (?'name'...); a name may label
	// several groups.
	SyntaxRuby Syntax = iota
	// SyntaxPerl additionally accepts (?P<name>...).
	SyntaxPerl
	// SyntaxPython accepts only (?P<name>...) and rejects repeated names.
	SyntaxPython
)

func (s Syntax) String() string {
	switch s {
	case SyntaxRuby:
		return "ruby"
	case SyntaxPerl:
		return "perl"
	case SyntaxPython:
		return "python"
	}
	return fmt.Sprintf("Syntax(%d)", uint8(s))
}

// ParseSyntax maps a case-insensitive syntax name to a Syntax.
func ParseSyntax(s string) (Syntax, error) {
	switch strings.ToLower(s) {
	case "", "ruby":
		return SyntaxRuby, nil
	case "perl", "perl_nt":
		return SyntaxPerl, nil
	case "python":
		return SyntaxPython, nil
	}
	return 0, fmt.Errorf("engine: unknown syntax %q", s)
}

func (s Syntax) angleNames() bool       { return s != SyntaxPython }
func (s Syntax) quoteNames() bool       { return s != SyntaxPython }
func (s Syntax) pythonNames() bool      { return s != SyntaxRuby }
func (s Syntax) allowsDuplicates() bool { return s != SyntaxPython }

// Config controls compilation.
type Config struct {
	Syntax   Syntax
	Encoding format.Encoding

	// CaptureGroup keeps bare (...) groups capturing when named groups are
	// present. Without it they become non-capturing and only named groups
	// are numbered.
	CaptureGroup bool

	// CaseFold compiles the matcher case-insensitively.
	CaseFold bool

	// Arena selects where the name table lives.
	Arena arena.Kind
}
