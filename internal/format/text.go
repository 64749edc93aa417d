package format

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is the character encoding a pattern was compiled in. Name bytes
// in the table are stored in this encoding.
type Encoding uint8

const (
	EncodingUTF8 Encoding = iota
	EncodingUTF16LE
	EncodingUTF16BE
	EncodingISO8859_1
	EncodingWindows1252
)

var encodingNames = [...]string{
	EncodingUTF8:        "UTF-8",
	EncodingUTF16LE:     "UTF-16LE",
	EncodingUTF16BE:     "UTF-16BE",
	EncodingISO8859_1:   "ISO-8859-1",
	EncodingWindows1252: "Windows-1252",
}

func (e Encoding) String() string {
	if int(e) < len(encodingNames) {
		return encodingNames[e]
	}
	return fmt.Sprintf("Encoding(%d)", uint8(e))
}

// ParseEncoding maps a case-insensitive encoding name (dashes and
// underscores optional) to an Encoding.
func ParseEncoding(s string) (Encoding, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(s))
	switch key {
	case "", "utf8":
		return EncodingUTF8, nil
	case "utf16le", "utf16":
		return EncodingUTF16LE, nil
	case "utf16be":
		return EncodingUTF16BE, nil
	case "iso88591", "latin1":
		return EncodingISO8859_1, nil
	case "windows1252", "cp1252":
		return EncodingWindows1252, nil
	}
	return 0, fmt.Errorf("encoding %q: %w", s, ErrUnsupported)
}

func (e Encoding) codec() (encoding.Encoding, error) {
	switch e {
	case EncodingUTF8:
		return nil, nil
	case EncodingUTF16LE:
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM), nil
	case EncodingUTF16BE:
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM), nil
	case EncodingISO8859_1:
		return charmap.ISO8859_1, nil
	case EncodingWindows1252:
		return charmap.Windows1252, nil
	}
	return nil, fmt.Errorf("%v: %w", e, ErrUnsupported)
}

// Encode converts a UTF-8 name into e. Names holding characters e cannot
// represent are rejected.
func (e Encoding) Encode(name string) ([]byte, error) {
	c, err := e.codec()
	if err != nil {
		return nil, err
	}
	if c == nil {
		return []byte(name), nil
	}
	out, err := c.NewEncoder().Bytes([]byte(name))
	if err != nil {
		return nil, fmt.Errorf("encode %q as %v: %w", name, e, err)
	}
	return out, nil
}

// Validate reports whether raw is well-formed text in e. NUL is rejected in
// every encoding since no name may contain it.
func (e Encoding) Validate(raw []byte) error {
	switch e {
	case EncodingUTF8:
		if !utf8.Valid(raw) {
			return fmt.Errorf("%v: %w", e, ErrInvalidName)
		}
		for _, c := range raw {
			if c == 0 {
				return fmt.Errorf("%v: NUL byte: %w", e, ErrInvalidName)
			}
		}
		return nil
	case EncodingUTF16LE, EncodingUTF16BE:
		return validateUTF16(raw, e == EncodingUTF16BE)
	case EncodingISO8859_1, EncodingWindows1252:
		for i, c := range raw {
			if c == 0 || (e == EncodingWindows1252 && win1252Undefined(c)) {
				return fmt.Errorf("%v: byte 0x%02x at %d: %w", e, c, i, ErrInvalidName)
			}
		}
		return nil
	}
	return fmt.Errorf("%v: %w", e, ErrUnsupported)
}

// Decode converts raw from e to UTF-8. Callers validate first; Decode does
// not repeat the checks.
func (e Encoding) Decode(raw []byte) (string, error) {
	c, err := e.codec()
	if err != nil {
		return "", err
	}
	if c == nil {
		return string(raw), nil
	}
	out, err := c.NewDecoder().Bytes(raw)
	if err != nil {
		return "", fmt.Errorf("decode %v: %w", e, err)
	}
	return string(out), nil
}

// Units returns the width of e's code unit in bytes.
func (e Encoding) Units() int {
	if e == EncodingUTF16LE || e == EncodingUTF16BE {
		return 2
	}
	return 1
}

func validateUTF16(raw []byte, bigEndian bool) error {
	if len(raw)%2 != 0 {
		return fmt.Errorf("utf-16 name has odd length %d: %w", len(raw), ErrInvalidName)
	}
	unit := func(i int) uint16 {
		if bigEndian {
			return uint16(raw[i])<<8 | uint16(raw[i+1])
		}
		return uint16(raw[i]) | uint16(raw[i+1])<<8
	}
	for i := 0; i < len(raw); i += 2 {
		u := unit(i)
		switch {
		case u == 0:
			return fmt.Errorf("utf-16 NUL at %d: %w", i, ErrInvalidName)
		case u >= 0xDC00 && u <= 0xDFFF:
			return fmt.Errorf("utf-16 lone low surrogate at %d: %w", i, ErrInvalidName)
		case u >= 0xD800 && u <= 0xDBFF:
			if i+2 >= len(raw) {
				return fmt.Errorf("utf-16 truncated surrogate pair at %d: %w", i, ErrInvalidName)
			}
			if utf16.DecodeRune(rune(u), rune(unit(i+2))) == utf8.RuneError {
				return fmt.Errorf("utf-16 unpaired surrogate at %d: %w", i, ErrInvalidName)
			}
			i += 2
		}
	}
	return nil
}

// win1252Undefined reports the five byte values Windows-1252 leaves unassigned.
func win1252Undefined(c byte) bool {
	switch c {
	case 0x81, 0x8D, 0x8F, 0x90, 0x9D:
		return true
	}
	return false
}
