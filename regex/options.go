package regex

import (
	"github.com/joshuapare/onigkit/internal/engine"
	"github.com/joshuapare/onigkit/internal/format"
)

// Encoding is the character encoding group names are stored in.
type Encoding = format.Encoding

const (
	UTF8        = format.EncodingUTF8
	UTF16LE     = format.EncodingUTF16LE
	UTF16BE     = format.EncodingUTF16BE
	ISO8859_1   = format.EncodingISO8859_1
	Windows1252 = format.EncodingWindows1252
)

// ParseEncoding maps an encoding name such as "utf-16le" or "latin1".
func ParseEncoding(s string) (Encoding, error) { return format.ParseEncoding(s) }

// Syntax selects which named group forms a pattern may use.
type Syntax = engine.Syntax

const (
	SyntaxRuby   = engine.SyntaxRuby
	SyntaxPerl   = engine.SyntaxPerl
	SyntaxPython = engine.SyntaxPython
)

// ParseSyntax maps "ruby", "perl" or "python".
func ParseSyntax(s string) (Syntax, error) { return engine.ParseSyntax(s) }

// Options controls compilation. The zero value compiles Ruby syntax, UTF-8
// names, and a sealed off-heap name table.
type Options struct {
	// Syntax selects the accepted named group forms. Default: SyntaxRuby.
	Syntax Syntax

	// Encoding is the encoding names are stored in. Default: UTF8.
	Encoding Encoding

	// CaptureGroup keeps bare (...) groups capturing when named groups are
	// present. By default only named groups capture in that case.
	CaptureGroup bool

	// CaseFold makes matching case-insensitive.
	CaseFold bool

	// HeapTable keeps the name table on the Go heap instead of a sealed
	// read-only mapping. Platforms without mmap always use the heap.
	HeapTable bool
}
