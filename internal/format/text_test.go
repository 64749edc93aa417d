package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncodingRoundTrip(t *testing.T) {
	for _, enc := range []Encoding{EncodingUTF8, EncodingUTF16LE, EncodingUTF16BE, EncodingISO8859_1, EncodingWindows1252} {
		t.Run(enc.String(), func(t *testing.T) {
			raw, err := enc.Encode("größe")
			require.NoError(t, err)
			require.NoError(t, enc.Validate(raw))
			got, err := enc.Decode(raw)
			require.NoError(t, err)
			require.Equal(t, "größe", got)
		})
	}
}

func TestEncodeUTF16Layout(t *testing.T) {
	raw, err := EncodingUTF16LE.Encode("ab")
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 0, 'b', 0}, raw)

	raw, err = EncodingUTF16BE.Encode("ab")
	require.NoError(t, err)
	require.Equal(t, []byte{0, 'a', 0, 'b'}, raw)

	// U+1F600 needs a surrogate pair.
	raw, err = EncodingUTF16LE.Encode("\U0001F600")
	require.NoError(t, err)
	require.Len(t, raw, 4)
	require.NoError(t, EncodingUTF16LE.Validate(raw))
}

func TestEncodeRejectsUnrepresentable(t *testing.T) {
	_, err := EncodingISO8859_1.Encode("日本")
	require.Error(t, err)
}

func TestValidateRejectsMalformedText(t *testing.T) {
	tests := []struct {
		name string
		enc  Encoding
		raw  []byte
	}{
		{"utf8 truncated sequence", EncodingUTF8, []byte{'a', 0xE6, 0x97}},
		{"utf8 NUL", EncodingUTF8, []byte{'a', 0, 'b'}},
		{"utf16 odd length", EncodingUTF16LE, []byte{'a', 0, 'b'}},
		{"utf16 lone low surrogate", EncodingUTF16LE, []byte{0x00, 0xDC}},
		{"utf16 high surrogate at end", EncodingUTF16LE, []byte{'a', 0, 0x3D, 0xD8}},
		{"utf16 high surrogate without low", EncodingUTF16BE, []byte{0xD8, 0x3D, 0x00, 'a'}},
		{"latin1 NUL", EncodingISO8859_1, []byte{'a', 0}},
		{"cp1252 unassigned", EncodingWindows1252, []byte{'a', 0x81}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.enc.Validate(tc.raw), ErrInvalidName)
		})
	}
}

func TestParseEncoding(t *testing.T) {
	cases := map[string]Encoding{
		"":             EncodingUTF8,
		"utf-8":        EncodingUTF8,
		"UTF16LE":      EncodingUTF16LE,
		"utf_16_be":    EncodingUTF16BE,
		"latin1":       EncodingISO8859_1,
		"Windows-1252": EncodingWindows1252,
	}
	for in, want := range cases {
		got, err := ParseEncoding(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseEncoding("ebcdic")
	require.ErrorIs(t, err, ErrUnsupported)
}
