package engine

import (
	"fmt"

	"github.com/joshuapare/onigkit/internal/arena"
	"github.com/joshuapare/onigkit/internal/buf"
	"github.com/joshuapare/onigkit/internal/format"
)

// layoutSize returns the bytes needed to lay t out, excluding the arena's
// reserved prefix.
func layoutSize(t *nameTable) int {
	size := format.HashTypeSize + format.TableSize + len(t.bins)*format.RefSize
	t.walk(func(_ int, e *chainEntry) {
		size += format.EntrySize + format.KeySize + format.NameRecordSize
		size += buf.Align8(len(e.rec.name))
		if e.rec.alloc > 0 {
			size += buf.Align8(e.rec.alloc * format.GroupIndexSize)
		}
	})
	return size
}

// layout writes t into a and returns the table descriptor's reference.
func layout(a *arena.Arena, t *nameTable) (format.Ref, error) {
	typeRef, typeBuf, err := a.Alloc(format.HashTypeSize)
	if err != nil {
		return format.NullRef, fmt.Errorf("hash type: %w", err)
	}
	copy(typeBuf, format.StrEndSignature)

	tableRef, tableBuf, err := a.Alloc(format.TableSize)
	if err != nil {
		return format.NullRef, fmt.Errorf("table: %w", err)
	}
	binsRef, binsBuf, err := a.Alloc(len(t.bins) * format.RefSize)
	if err != nil {
		return format.NullRef, fmt.Errorf("bins: %w", err)
	}
	format.EncodeTable(tableBuf, format.Table{
		TypeRef:    typeRef,
		NumBins:    int32(len(t.bins)),
		NumEntries: int32(t.entries),
		BinsRef:    binsRef,
	})

	for i, head := range t.bins {
		// Lay chains out tail first so each entry can point at its successor.
		var chain []*chainEntry
		for e := head; e != nil; e = e.next {
			chain = append(chain, e)
		}
		next := format.NullRef
		for j := len(chain) - 1; j >= 0; j-- {
			ref, err := layoutEntry(a, chain[j], next)
			if err != nil {
				return format.NullRef, fmt.Errorf("bin %d: %w", i, err)
			}
			next = ref
		}
		format.PutRef(binsBuf, i*format.RefSize, next)
	}
	return tableRef, nil
}

func layoutEntry(a *arena.Arena, e *chainEntry, next format.Ref) (format.Ref, error) {
	nameRef, nameBuf, err := a.Alloc(len(e.rec.name))
	if err != nil {
		return format.NullRef, err
	}
	copy(nameBuf, e.rec.name)

	keyRef, keyBuf, err := a.Alloc(format.KeySize)
	if err != nil {
		return format.NullRef, err
	}
	format.EncodeKey(keyBuf, nameRef, nameRef+format.Ref(len(e.rec.name)))

	rec := format.NameRecord{
		NameRef: nameRef,
		NameLen: int32(len(e.rec.name)),
		BackNum: int32(len(e.rec.groups)),
	}
	if len(e.rec.groups) == 1 {
		rec.BackRef1 = e.rec.groups[0]
	} else {
		refsRef, refsBuf, err := a.Alloc(e.rec.alloc * format.GroupIndexSize)
		if err != nil {
			return format.NullRef, err
		}
		for k, g := range e.rec.groups {
			format.PutI32(refsBuf, k*format.GroupIndexSize, g)
		}
		rec.BackAlloc = int32(e.rec.alloc)
		rec.BackRef1 = e.rec.groups[0]
		rec.BackRefsRef = refsRef
	}
	recRef, recBuf, err := a.Alloc(format.NameRecordSize)
	if err != nil {
		return format.NullRef, err
	}
	format.EncodeNameRecord(recBuf, rec)

	entryRef, entryBuf, err := a.Alloc(format.EntrySize)
	if err != nil {
		return format.NullRef, err
	}
	format.EncodeEntry(entryBuf, format.Entry{
		Hash:      e.hash,
		KeyRef:    keyRef,
		RecordRef: recRef,
		Next:      next,
	})
	return entryRef, nil
}
