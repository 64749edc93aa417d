package format

import (
	"fmt"

	"github.com/joshuapare/onigkit/internal/buf"
)

// NameRecord is a decoded name record. Ref is the record's own location,
// needed because a single group index is stored inline.
type NameRecord struct {
	Ref         Ref
	NameRef     Ref
	NameLen     int32
	BackNum     int32
	BackAlloc   int32
	BackRef1    int32
	BackRefsRef Ref
}

// DecodeNameRecord decodes the name record at ref and checks its counts.
// It does not touch the name bytes or the group array; see Name and Groups.
func DecodeNameRecord(mem []byte, ref Ref) (NameRecord, error) {
	b, err := Resolve(mem, ref, NameRecordSize)
	if err != nil {
		return NameRecord{}, fmt.Errorf("name record: %w", err)
	}
	r := NameRecord{
		Ref:         ref,
		NameRef:     Ref(buf.U64LE(b[NameRefOffset:])),
		NameLen:     buf.I32LE(b[NameLenOffset:]),
		BackNum:     buf.I32LE(b[NameBackNumOffset:]),
		BackAlloc:   buf.I32LE(b[NameBackAllocOffset:]),
		BackRef1:    buf.I32LE(b[NameBackRef1Offset:]),
		BackRefsRef: Ref(buf.U64LE(b[NameBackRefsOffset:])),
	}
	if r.NameLen <= 0 || r.NameLen > MaxNameLen {
		return NameRecord{}, fmt.Errorf("name record 0x%x length %d: %w", uint64(ref), r.NameLen, ErrSanityLimit)
	}
	if r.BackNum < 1 || r.BackNum > MaxGroupIndex {
		return NameRecord{}, fmt.Errorf("name record 0x%x group count %d: %w", uint64(ref), r.BackNum, ErrGroupCount)
	}
	if r.BackNum > 1 && r.BackAlloc < r.BackNum {
		return NameRecord{}, fmt.Errorf("name record 0x%x group count %d exceeds capacity %d: %w",
			uint64(ref), r.BackNum, r.BackAlloc, ErrGroupCount)
	}
	return r, nil
}

// Name returns the NameLen bytes of the name, aliasing mem.
func (r NameRecord) Name(mem []byte) ([]byte, error) {
	b, err := resolveBytes(mem, r.NameRef, int(r.NameLen))
	if err != nil {
		return nil, fmt.Errorf("name record 0x%x name: %w", uint64(r.Ref), err)
	}
	return b, nil
}

// Groups returns the raw little-endian group indices, BackNum of them,
// aliasing mem. A single group is read from the inline field and the group
// array reference is never looked at in that case.
func (r NameRecord) Groups(mem []byte) ([]byte, error) {
	if r.BackNum == 1 {
		b, err := Resolve(mem, r.Ref, NameRecordSize)
		if err != nil {
			return nil, fmt.Errorf("name record 0x%x inline group: %w", uint64(r.Ref), err)
		}
		return b[NameBackRef1Offset : NameBackRef1Offset+GroupIndexSize : NameBackRef1Offset+GroupIndexSize], nil
	}
	if r.BackRefsRef == NullRef {
		return nil, fmt.Errorf("name record 0x%x groups: %w", uint64(r.Ref), ErrNullRef)
	}
	if _, err := Resolve(mem, r.BackRefsRef, 0); err != nil {
		return nil, fmt.Errorf("name record 0x%x groups: %w", uint64(r.Ref), err)
	}
	end, err := buf.CheckArrayBounds(len(mem), int(r.BackRefsRef), int(r.BackNum), GroupIndexSize)
	if err != nil {
		return nil, fmt.Errorf("name record 0x%x groups: %w (%v)", uint64(r.Ref), ErrTruncated, err)
	}
	return mem[int(r.BackRefsRef):end:end], nil
}

// EncodeNameRecord writes r into b, which must hold at least NameRecordSize bytes.
// r.Ref is not stored.
func EncodeNameRecord(b []byte, r NameRecord) {
	PutRef(b, NameRefOffset, r.NameRef)
	PutI32(b, NameLenOffset, r.NameLen)
	PutI32(b, NameBackNumOffset, r.BackNum)
	PutI32(b, NameBackAllocOffset, r.BackAlloc)
	PutI32(b, NameBackRef1Offset, r.BackRef1)
	PutRef(b, NameBackRefsOffset, r.BackRefsRef)
}

// GroupAt decodes index i of a raw group array returned by Groups.
func GroupAt(raw []byte, i int) int {
	return int(buf.I32LE(raw[i*GroupIndexSize:]))
}
