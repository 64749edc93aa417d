package regex

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/engine"
)

// Regex is a compiled pattern. It owns the name table and everything
// reachable from it; views and iterators borrow from it and become invalid
// once Close is called.
//
// A Regex is safe for concurrent use by multiple goroutines, except that
// Close must not run while another goroutine still uses it.
//
// Call Close when done: the name table normally lives in a memory mapping
// outside the Go heap. A Regex that becomes unreachable without Close is
// released by the garbage collector eventually, once no view, iterator or
// entry taken from it is reachable either.
type Regex struct {
	prog *engine.Program
	opts Options
}

// Compile parses pattern with default options.
func Compile(pattern string) (*Regex, error) {
	return CompileWithOptions(pattern, Options{})
}

// CompileWithOptions parses pattern and builds its name table.
//
// Example:
//
//	re, err := regex.CompileWithOptions(`(?P<year>\d{4})`, regex.Options{Syntax: regex.SyntaxPython})
//	if err != nil {
//	    return err
//	}
//	defer re.Close()
func CompileWithOptions(pattern string, opts Options) (*Regex, error) {
	cfg := engine.Config{
		Syntax:       opts.Syntax,
		Encoding:     opts.Encoding,
		CaptureGroup: opts.CaptureGroup,
		CaseFold:     opts.CaseFold,
		Arena:        arena.KindMapped,
	}
	if opts.HeapTable {
		cfg.Arena = arena.KindHeap
	}
	prog, err := engine.Compile(pattern, cfg)
	if err != nil {
		var se *engine.SyntaxError
		if errors.As(err, &se) {
			return nil, &Error{Kind: ErrKindSyntax, Msg: fmt.Sprintf("regex: compile %q", pattern), Err: err}
		}
		return nil, &Error{Kind: ErrKindResource, Msg: fmt.Sprintf("regex: compile %q", pattern), Err: err}
	}
	re := &Regex{prog: prog, opts: opts}
	runtime.AddCleanup(re, func(p *engine.Program) { _ = p.Free() }, prog)
	return re, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic(err)
	}
	return re
}

// Close releases the pattern's memory. Entries, views and iterators taken
// from it report ErrClosed afterwards and never read the released memory.
// Closing twice is a no-op.
func (re *Regex) Close() error {
	if re == nil || re.prog == nil {
		return nil
	}
	return re.prog.Free()
}

// Closed reports whether Close has been called.
func (re *Regex) Closed() bool {
	mem := re.prog.Memory()
	return !mem.Live(mem.Generation())
}

// NamesLen returns the number of distinct group names. A name carried by
// several groups counts once. It never walks the table.
func (re *Regex) NamesLen() int {
	return re.prog.NumberOfNames()
}

// NumSubexp returns the number of capturing groups.
func (re *Regex) NumSubexp() int {
	return re.prog.NumGroups()
}

// String returns the source pattern.
func (re *Regex) String() string {
	return re.prog.Pattern()
}

// Encoding returns the encoding group names are stored in.
func (re *Regex) Encoding() Encoding {
	return re.prog.Encoding()
}

// Options returns the options the pattern was compiled with.
func (re *Regex) Options() Options {
	return re.opts
}

// MatchString reports whether s contains a match of the pattern.
func (re *Regex) MatchString(s string) bool {
	return re.prog.Matcher().MatchString(s)
}

// FindStringSubmatchIndex returns index pairs for the leftmost match and
// its groups, numbered as in the name table. It returns nil on no match.
func (re *Regex) FindStringSubmatchIndex(s string) []int {
	return re.prog.Matcher().FindStringSubmatchIndex(s)
}

// FindStringSubmatch returns the text of the leftmost match and its groups.
func (re *Regex) FindStringSubmatch(s string) []string {
	return re.prog.Matcher().FindStringSubmatch(s)
}
