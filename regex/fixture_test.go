package regex

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/format"
)

// fixture hand-assembles name tables in a heap arena so tests can plant
// malformed structures the compiler would never produce.
type fixture struct {
	t *testing.T
	a *arena.Arena
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	a, err := arena.New(4096, arena.KindHeap)
	require.NoError(t, err)
	return &fixture{t: t, a: a}
}

func (f *fixture) alloc(n int) (format.Ref, []byte) {
	f.t.Helper()
	ref, b, err := f.a.Alloc(n)
	require.NoError(f.t, err)
	return ref, b
}

// record writes name and a name record carrying groups. An empty groups
// list produces a record with a zero group count.
func (f *fixture) record(name string, groups ...int32) format.Ref {
	f.t.Helper()
	nameRef, nb := f.alloc(len(name))
	copy(nb, name)

	rec := format.NameRecord{NameRef: nameRef, NameLen: int32(len(name)), BackNum: int32(len(groups))}
	switch len(groups) {
	case 0:
	case 1:
		rec.BackRef1 = groups[0]
	default:
		arrRef, arr := f.alloc(len(groups) * format.GroupIndexSize)
		for i, g := range groups {
			format.PutI32(arr, i*format.GroupIndexSize, g)
		}
		rec.BackAlloc = int32(len(groups))
		rec.BackRefsRef = arrRef
	}
	ref, b := f.alloc(format.NameRecordSize)
	format.EncodeNameRecord(b, rec)
	return ref
}

func (f *fixture) entry(rec, next format.Ref) format.Ref {
	f.t.Helper()
	ref, b := f.alloc(format.EntrySize)
	format.EncodeEntry(b, format.Entry{RecordRef: rec, Next: next})
	return ref
}

// loop writes an entry whose successor is itself.
func (f *fixture) loop(rec format.Ref) format.Ref {
	f.t.Helper()
	ref, b := f.alloc(format.EntrySize)
	format.EncodeEntry(b, format.Entry{RecordRef: rec, Next: ref})
	return ref
}

func (f *fixture) table(entries int, heads ...format.Ref) format.Ref {
	f.t.Helper()
	typeRef, tb := f.alloc(format.HashTypeSize)
	copy(tb, format.StrEndSignature)

	binsRef, bins := f.alloc(len(heads) * format.RefSize)
	for i, h := range heads {
		format.PutRef(bins, i*format.RefSize, h)
	}
	ref, b := f.alloc(format.TableSize)
	format.EncodeTable(b, format.Table{
		TypeRef:    typeRef,
		NumBins:    int32(len(heads)),
		NumEntries: int32(entries),
		BinsRef:    binsRef,
	})
	return ref
}

func (f *fixture) view(ref format.Ref, groups int) NameTable {
	return newNameTable(f.a, f.a.Generation(), ref, format.EncodingUTF8, groups)
}

type pair struct {
	Name   string
	Groups []int
}

func collect(t *testing.T, it *NameIter) ([]pair, error) {
	t.Helper()
	var out []pair
	for it.Next() {
		e := it.Entry()
		out = append(out, pair{Name: e.Name(), Groups: e.Groups().Ints()})
	}
	return out, it.Err()
}
