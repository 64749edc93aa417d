package regex

import (
	"fmt"

	"github.com/joshuapare/onigkit/internal/format"
)

// Entry is one decoded (name, groups) pair. It reads the pattern's memory in
// place, so it is only usable while the pattern is open: after Close, Name
// and NameBytes return empty values, Groups is empty and Err reports
// ErrClosed. Slices returned by NameBytes alias that memory and must not be
// kept past Close.
type Entry struct {
	borrow
	raw    []byte
	enc    format.Encoding
	groups Groups

	// Hash is the hash value stored with the entry.
	Hash uint32
	// Bucket is the bucket the entry was found in.
	Bucket int
	// Link is the entry's position in its bucket's chain, head first.
	Link int
}

// Err returns ErrClosed once the pattern the entry came from is closed.
func (e Entry) Err() error { return e.live() }

// NameBytes returns the name exactly as stored, in the pattern's encoding.
// It returns nil after Close.
func (e Entry) NameBytes() []byte {
	if e.live() != nil {
		return nil
	}
	return e.raw
}

// Name returns the name converted to UTF-8, or "" after Close. For UTF-8
// patterns this is a copy of NameBytes.
func (e Entry) Name() string {
	if e.live() != nil {
		return ""
	}
	s, err := e.enc.Decode(e.raw)
	if err != nil {
		// Unreachable for validated entries.
		return string(e.raw)
	}
	return s
}

// Groups returns the group numbers carrying this name, in the order the
// groups appear in the pattern.
func (e Entry) Groups() Groups { return e.groups }

func (e Entry) String() string {
	return fmt.Sprintf("%s%v", e.Name(), e.groups.Ints())
}

// Groups is a read-only view of group numbers stored in the name table.
// Like Entry it is empty once the pattern is closed.
type Groups struct {
	borrow
	raw []byte
}

// Len returns the number of groups, 0 after Close.
func (g Groups) Len() int {
	if g.live() != nil {
		return 0
	}
	return len(g.raw) / format.GroupIndexSize
}

// At returns the i-th group number. It panics if i is out of range, which
// every index is after Close.
func (g Groups) At(i int) int {
	if n := g.Len(); i < 0 || i >= n {
		if g.live() != nil {
			panic(fmt.Sprintf("regex: group index %d: %v", i, ErrClosed))
		}
		panic(fmt.Sprintf("regex: group index %d out of range [0,%d)", i, n))
	}
	return format.GroupAt(g.raw, i)
}

// Ints copies the group numbers into a new slice. It returns nil after
// Close.
func (g Groups) Ints() []int {
	if g.live() != nil {
		return nil
	}
	out := make([]int, len(g.raw)/format.GroupIndexSize)
	for i := range out {
		out[i] = format.GroupAt(g.raw, i)
	}
	return out
}

// NameIter walks a name table bucket by bucket and, within a bucket, along
// its chain from head to tail. It yields every entry exactly once and stops
// for good at the end of the table or at the first decode fault.
//
//	it := re.Names()
//	for it.Next() {
//	    e := it.Entry()
//	    fmt.Println(e.Name(), e.Groups().Ints())
//	}
//	if err := it.Err(); err != nil {
//	    return err
//	}
type NameIter struct {
	tab     NameTable
	bucket  int        // current bucket, -1 before the first
	pending format.Ref // next entry in the current chain, null when none
	link    int        // chain position of pending
	yielded int
	seen    map[format.Ref]struct{} // entries already yielded
	cur     Entry
	err     error
	done    bool
}

// Names returns a fresh iterator over the pattern's name table.
func (re *Regex) Names() *NameIter {
	return re.NameTable().Names()
}

// Next advances to the next entry. It returns false at the end of the
// table or on error; check Err to tell them apart.
func (it *NameIter) Next() bool {
	if it.done {
		return false
	}
	if err := it.step(); err != nil {
		it.fail(err)
		return false
	}
	return !it.done
}

// Entry returns the entry produced by the last successful Next.
func (it *NameIter) Entry() Entry { return it.cur }

// Err returns the error that stopped the iterator, nil at a clean end.
func (it *NameIter) Err() error { return it.err }

func (it *NameIter) fail(err error) {
	it.err = err
	it.done = true
	it.cur = Entry{}
}

func (it *NameIter) step() error {
	t := it.tab
	if t.err != nil {
		return t.err
	}
	if err := t.live(); err != nil {
		return err
	}
	mem := t.mem.Bytes()

	for it.pending == format.NullRef {
		if t.ref == format.NullRef || it.bucket+1 >= int(t.hdr.NumBins) {
			it.done = true
			it.cur = Entry{}
			return nil
		}
		it.bucket++
		head, err := format.BinHead(mem, t.hdr, it.bucket)
		if err != nil {
			return decodeFault(err)
		}
		it.pending = head
		it.link = 0
	}

	if it.yielded >= int(t.hdr.NumEntries) {
		return decodeFault(fmt.Errorf("bucket %d link %d: %w (%d declared)",
			it.bucket, it.link, format.ErrChainTooLong, t.hdr.NumEntries))
	}
	if _, dup := it.seen[it.pending]; dup {
		return decodeFault(fmt.Errorf("bucket %d link %d: entry 0x%x: %w",
			it.bucket, it.link, uint64(it.pending), format.ErrCycle))
	}
	ref := it.pending
	e, err := it.decode(mem, ref)
	if err != nil {
		return decodeFault(fmt.Errorf("bucket %d link %d: %w", it.bucket, it.link, err))
	}
	if it.seen == nil {
		it.seen = make(map[format.Ref]struct{}, t.hdr.NumEntries)
	}
	it.seen[ref] = struct{}{}
	it.cur = e
	it.yielded++
	it.link++
	return nil
}

// decode reads the entry at ref, leaves it.pending on its successor and
// returns the decoded pair.
func (it *NameIter) decode(mem []byte, ref format.Ref) (Entry, error) {
	t := it.tab
	ent, err := format.DecodeEntry(mem, ref)
	if err != nil {
		return Entry{}, err
	}
	rec, err := format.DecodeNameRecord(mem, ent.RecordRef)
	if err != nil {
		return Entry{}, err
	}
	name, err := rec.Name(mem)
	if err != nil {
		return Entry{}, err
	}
	if err := t.enc.Validate(name); err != nil {
		return Entry{}, fmt.Errorf("name record 0x%x: %w", uint64(rec.Ref), err)
	}
	raw, err := rec.Groups(mem)
	if err != nil {
		return Entry{}, err
	}
	for i := 0; i < int(rec.BackNum); i++ {
		if g := format.GroupAt(raw, i); g < 1 || g > t.groups {
			return Entry{}, fmt.Errorf("name %q group %d of %d: %w", name, g, t.groups, format.ErrGroupIndex)
		}
	}

	e := Entry{
		borrow: t.borrow,
		raw:    name,
		enc:    t.enc,
		groups: Groups{borrow: t.borrow, raw: raw},
		Hash:   ent.Hash,
		Bucket: it.bucket,
		Link:   it.link,
	}
	it.pending = ent.Next
	return e, nil
}
