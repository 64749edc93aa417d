// Package engine compiles patterns into programs. Besides the matcher, a
// program carries a name table: a chained hash table from group names to
// group numbers, laid out in a sealed arena. The table is built once here
// and only read afterwards.
package engine

import (
	"errors"
	"fmt"
	"regexp"
	"regexp/syntax"

	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/format"
)

// Program is a compiled pattern. It owns its arena; Free releases it.
type Program struct {
	pattern  string
	cfg      Config
	mem      *arena.Arena
	table    format.Ref
	numNames int
	groups   int
	matcher  *regexp.Regexp
}

// Compile scans pattern, validates it, and builds its matcher and name table.
func Compile(pattern string, cfg Config) (*Program, error) {
	sc, err := scan(pattern, cfg.Syntax, cfg.CaptureGroup)
	if err != nil {
		return nil, err
	}

	expr := sc.rewritten
	if cfg.CaseFold {
		expr = "(?i)" + expr
	}
	parsed, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		var se *syntax.Error
		if errors.As(err, &se) {
			return nil, &SyntaxError{Pos: -1, Msg: fmt.Sprintf("%s: %s", se.Code, se.Expr)}
		}
		return nil, &SyntaxError{Pos: -1, Msg: err.Error()}
	}
	if parsed.MaxCap() != sc.groups {
		return nil, &SyntaxError{Pos: -1, Msg: fmt.Sprintf("unsupported group construct (%d groups, matcher sees %d)", sc.groups, parsed.MaxCap())}
	}
	matcher, err := regexp.Compile(expr)
	if err != nil {
		return nil, &SyntaxError{Pos: -1, Msg: err.Error()}
	}

	t := newNameTable()
	for _, gn := range sc.names {
		key, err := cfg.Encoding.Encode(gn.name)
		if err != nil {
			return nil, &SyntaxError{Pos: gn.pos, Msg: fmt.Sprintf("group name <%s> not representable in %v", gn.name, cfg.Encoding)}
		}
		t.add(key, gn.group)
	}

	p := &Program{
		pattern:  pattern,
		cfg:      cfg,
		numNames: t.entries,
		groups:   sc.groups,
		matcher:  matcher,
	}
	size := 0
	if t.entries > 0 {
		size = layoutSize(t)
	}
	p.mem, err = arena.New(size, cfg.Arena)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if t.entries > 0 {
		p.table, err = layout(p.mem, t)
		if err != nil {
			_ = p.mem.Release()
			return nil, fmt.Errorf("engine: name table: %w", err)
		}
	}
	if err := p.mem.Seal(); err != nil {
		_ = p.mem.Release()
		return nil, fmt.Errorf("engine: %w", err)
	}
	return p, nil
}

// Memory returns the arena holding the name table.
func (p *Program) Memory() *arena.Arena { return p.mem }

// NameTable returns the table descriptor's reference, or format.NullRef when
// the pattern has no named groups. It is stable until Free.
func (p *Program) NameTable() format.Ref { return p.table }

// NumberOfNames returns the number of distinct group names.
func (p *Program) NumberOfNames() int { return p.numNames }

// NumGroups returns the number of capturing groups.
func (p *Program) NumGroups() int { return p.groups }

// Encoding returns the encoding names are stored in.
func (p *Program) Encoding() format.Encoding { return p.cfg.Encoding }

// Config returns the configuration the program was compiled with.
func (p *Program) Config() Config { return p.cfg }

// Pattern returns the source pattern.
func (p *Program) Pattern() string { return p.pattern }

// Matcher returns the matcher for the pattern with group names removed.
// Group numbers are the same as in the name table.
func (p *Program) Matcher() *regexp.Regexp { return p.matcher }

// Free releases the program's memory.
func (p *Program) Free() error { return p.mem.Release() }
