package regex

import (
	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/format"
)

// NameTable is a read-only view of a pattern's name table: a bucket array
// whose buckets chain name entries. The view never copies or modifies the
// table, and is only valid while the pattern that produced it is open.
//
// A pattern without named groups has no table; its view reports zero
// buckets and iterates nothing.
type NameTable struct {
	borrow
	ref    format.Ref
	hdr    format.Table
	err    error
	enc    format.Encoding
	groups int
}

// NameTable returns a view of the pattern's name table.
func (re *Regex) NameTable() NameTable {
	mem := re.prog.Memory()
	t := newNameTable(mem, mem.Generation(), re.prog.NameTable(), re.prog.Encoding(), re.prog.NumGroups())
	t.owner = re
	return t
}

func newNameTable(mem *arena.Arena, gen uint64, ref format.Ref, enc format.Encoding, groups int) NameTable {
	t := NameTable{borrow: borrow{mem: mem, gen: gen}, ref: ref, enc: enc, groups: groups}
	if t.live() != nil {
		t.err = ErrClosed
		return t
	}
	if ref == format.NullRef {
		return t
	}
	hdr, err := format.DecodeTable(mem.Bytes(), ref)
	if err != nil {
		t.err = decodeFault(err)
		return t
	}
	t.hdr = hdr
	return t
}

// Present reports whether the pattern has a name table at all.
func (t NameTable) Present() bool { return t.ref != format.NullRef }

// Buckets returns the number of buckets, zero when the table is absent or
// its header could not be decoded.
func (t NameTable) Buckets() int { return int(t.hdr.NumBins) }

// Entries returns the entry count the table header declares.
func (t NameTable) Entries() int { return int(t.hdr.NumEntries) }

// Err returns the error found while building the view, if any.
func (t NameTable) Err() error { return t.err }

// Encoding returns the encoding names are stored in.
func (t NameTable) Encoding() Encoding { return t.enc }

// Names returns a fresh iterator over the table.
func (t NameTable) Names() *NameIter {
	return &NameIter{tab: t, bucket: -1}
}

// borrow ties a value to the pattern memory it reads from. owner keeps the
// pattern reachable, so its cleanup cannot release memory still borrowed.
type borrow struct {
	owner *Regex
	mem   *arena.Arena
	gen   uint64
}

// live fails with ErrClosed once the owning pattern has been closed. The
// zero borrow is never live.
func (b borrow) live() error {
	if b.mem == nil || !b.mem.Live(b.gen) {
		return ErrClosed
	}
	return nil
}

// TableStats summarises bucket usage.
type TableStats struct {
	Buckets      int // bucket array length
	UsedBuckets  int // buckets with at least one entry
	Entries      int // entries reached by walking every chain
	LongestChain int // most entries in a single bucket
}

// Stats walks the whole table and reports bucket usage.
func (t NameTable) Stats() (TableStats, error) {
	st := TableStats{Buckets: t.Buckets()}
	it := t.Names()
	for it.Next() {
		e := it.Entry()
		st.Entries++
		if e.Link == 0 {
			st.UsedBuckets++
		}
		st.LongestChain = max(st.LongestChain, e.Link+1)
	}
	if err := it.Err(); err != nil {
		return TableStats{}, err
	}
	return st, nil
}
