package engine

import "bytes"

// Bin sizes follow the st hash table: the smallest entry whose power-of-two
// step exceeds the requested size. A table starts sized for five names and
// rehashes once the average chain exceeds maxDensity.
var binSizes = [...]int{
	8 + 3, 16 + 3, 32 + 5, 64 + 3, 128 + 3, 256 + 27, 512 + 9, 1024 + 9,
	2048 + 5, 4096 + 3, 8192 + 27, 16384 + 43, 32768 + 3, 65536 + 45,
}

const (
	initialNames = 5
	maxDensity   = 5
	minBinStep   = 8
)

func binSize(size int) int {
	step := minBinStep
	for _, n := range binSizes {
		if step > size {
			return n
		}
		step <<= 1
	}
	return binSizes[len(binSizes)-1]
}

// strEndHash hashes a name span the way the engine's string-span table type
// does. The bin is hash % bins.
func strEndHash(key []byte) uint32 {
	var v uint32
	for _, c := range key {
		v = v*997 + uint32(c)
	}
	return v + (v >> 5)
}

// nameEntry is the build-time form of a name record.
type nameEntry struct {
	name   []byte // in the pattern's encoding
	groups []int32
	alloc  int // capacity of the group array once it exists
}

func (e *nameEntry) addGroup(g int) {
	e.groups = append(e.groups, int32(g))
	switch n := len(e.groups); {
	case n == 2:
		e.alloc = 8
	case n > e.alloc && e.alloc > 0:
		e.alloc *= 2
	}
}

type chainEntry struct {
	hash uint32
	rec  *nameEntry
	next *chainEntry
}

// nameTable is the build-time chained hash table. New entries go to the
// head of their bin.
type nameTable struct {
	bins    []*chainEntry
	entries int
}

func newNameTable() *nameTable {
	return &nameTable{bins: make([]*chainEntry, binSize(initialNames))}
}

func (t *nameTable) lookup(key []byte) *nameEntry {
	h := strEndHash(key)
	for e := t.bins[h%uint32(len(t.bins))]; e != nil; e = e.next {
		if e.hash == h && bytes.Equal(e.rec.name, key) {
			return e.rec
		}
	}
	return nil
}

// add registers group under key, creating the record on first use.
func (t *nameTable) add(key []byte, group int) {
	if rec := t.lookup(key); rec != nil {
		rec.addGroup(group)
		return
	}
	rec := &nameEntry{name: key}
	rec.addGroup(group)

	h := strEndHash(key)
	if t.entries/len(t.bins) > maxDensity {
		t.rehash()
	}
	pos := h % uint32(len(t.bins))
	t.bins[pos] = &chainEntry{hash: h, rec: rec, next: t.bins[pos]}
	t.entries++
}

// rehash moves every entry, bin by bin and head to tail, to the head of its
// bin in a larger array. Chain order changes as a result.
func (t *nameTable) rehash() {
	bins := make([]*chainEntry, binSize(len(t.bins)+1))
	for _, e := range t.bins {
		for e != nil {
			next := e.next
			pos := e.hash % uint32(len(bins))
			e.next = bins[pos]
			bins[pos] = e
			e = next
		}
	}
	t.bins = bins
}

// walk calls fn for every entry in bin order, head to tail.
func (t *nameTable) walk(fn func(bin int, e *chainEntry)) {
	for i, e := range t.bins {
		for ; e != nil; e = e.next {
			fn(i, e)
		}
	}
}
