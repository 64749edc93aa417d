package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/format"
)

func compile(t *testing.T, pattern string, cfg Config) *Program {
	t.Helper()
	p, err := Compile(pattern, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = p.Free() })
	return p
}

func TestCompileWithoutNames(t *testing.T) {
	p := compile(t, "(he)(l+)(o)", Config{})
	require.Equal(t, format.NullRef, p.NameTable())
	require.Zero(t, p.NumberOfNames())
	require.Equal(t, 3, p.NumGroups())
	require.True(t, p.Memory().Sealed())
}

func TestCompileLaysOutTable(t *testing.T) {
	for _, kind := range []arena.Kind{arena.KindMapped, arena.KindHeap} {
		t.Run(kind.String(), func(t *testing.T) {
			p := compile(t, "(?<foo>he)(?<bar>l+)(?<bar>o)", Config{Arena: kind})
			require.Equal(t, 2, p.NumberOfNames())
			require.Equal(t, 3, p.NumGroups())

			mem := p.Memory().Bytes()
			tab, err := format.DecodeTable(mem, p.NameTable())
			require.NoError(t, err)
			require.Equal(t, int32(11), tab.NumBins)
			require.Equal(t, int32(2), tab.NumEntries)

			head, err := format.BinHead(mem, tab, 5)
			require.NoError(t, err)
			e, err := format.DecodeEntry(mem, head)
			require.NoError(t, err)
			require.Equal(t, strEndHash([]byte("foo")), e.Hash)
			require.Equal(t, format.NullRef, e.Next)

			rec, err := format.DecodeNameRecord(mem, e.RecordRef)
			require.NoError(t, err)
			name, err := rec.Name(mem)
			require.NoError(t, err)
			require.Equal(t, "foo", string(name))
			require.Equal(t, int32(1), rec.BackNum)
			require.Equal(t, int32(1), rec.BackRef1)

			head, err = format.BinHead(mem, tab, 9)
			require.NoError(t, err)
			e, err = format.DecodeEntry(mem, head)
			require.NoError(t, err)
			rec, err = format.DecodeNameRecord(mem, e.RecordRef)
			require.NoError(t, err)
			raw, err := rec.Groups(mem)
			require.NoError(t, err)
			require.Equal(t, 2, format.GroupAt(raw, 0))
			require.Equal(t, 3, format.GroupAt(raw, 1))
			require.Equal(t, int32(8), rec.BackAlloc)
		})
	}
}

func TestCompileStoresNamesInEncoding(t *testing.T) {
	p := compile(t, "(?<ab>x)", Config{Encoding: format.EncodingUTF16LE})
	mem := p.Memory().Bytes()
	tab, err := format.DecodeTable(mem, p.NameTable())
	require.NoError(t, err)

	want := strEndHash([]byte{'a', 0, 'b', 0})
	head, err := format.BinHead(mem, tab, int(want%uint32(tab.NumBins)))
	require.NoError(t, err)
	e, err := format.DecodeEntry(mem, head)
	require.NoError(t, err)
	require.Equal(t, want, e.Hash)
	rec, err := format.DecodeNameRecord(mem, e.RecordRef)
	require.NoError(t, err)
	name, err := rec.Name(mem)
	require.NoError(t, err)
	require.Equal(t, []byte{'a', 0, 'b', 0}, name)
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		cfg     Config
	}{
		{"lookbehind unsupported by matcher", "(?<=a)b", Config{}},
		{"bad repetition", "a**", Config{}},
		{"name outside encoding", "(?<日本>x)", Config{Encoding: format.EncodingISO8859_1}},
		{"scanner error", "(?<>x)", Config{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compile(tc.pattern, tc.cfg)
			var se *SyntaxError
			require.True(t, errors.As(err, &se), "got %v", err)
		})
	}
}

func TestCompileMatcherUsesSameNumbers(t *testing.T) {
	p := compile(t, "(x)(?<y>a+)(?<z>b)", Config{})
	require.Equal(t, 2, p.NumGroups())
	m := p.Matcher().FindStringSubmatchIndex("xaab")
	require.Equal(t, []int{0, 4, 1, 3, 3, 4}, m)
}

func TestCompileCaseFold(t *testing.T) {
	p := compile(t, "(?<w>abc)", Config{CaseFold: true})
	require.True(t, p.Matcher().MatchString("ABC"))
}

func TestFreeInvalidatesGeneration(t *testing.T) {
	p, err := Compile("(?<a>x)", Config{})
	require.NoError(t, err)
	gen := p.Memory().Generation()
	require.NoError(t, p.Free())
	require.False(t, p.Memory().Live(gen))
	require.NoError(t, p.Free())
}
