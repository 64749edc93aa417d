package format

import (
	"fmt"

	"github.com/joshuapare/onigkit/internal/buf"
)

// Entry is one decoded chain link.
type Entry struct {
	Hash      uint32
	KeyRef    Ref
	RecordRef Ref
	Next      Ref
}

// DecodeEntry decodes the chain entry at ref.
func DecodeEntry(mem []byte, ref Ref) (Entry, error) {
	b, err := Resolve(mem, ref, EntrySize)
	if err != nil {
		return Entry{}, fmt.Errorf("entry: %w", err)
	}
	e := Entry{
		Hash:      buf.U32LE(b[EntryHashOffset:]),
		KeyRef:    Ref(buf.U64LE(b[EntryKeyOffset:])),
		RecordRef: Ref(buf.U64LE(b[EntryRecordOffset:])),
		Next:      Ref(buf.U64LE(b[EntryNextOffset:])),
	}
	if e.RecordRef == NullRef {
		return Entry{}, fmt.Errorf("entry 0x%x record: %w", uint64(ref), ErrNullRef)
	}
	return e, nil
}

// EncodeEntry writes e into b, which must hold at least EntrySize bytes.
func EncodeEntry(b []byte, e Entry) {
	PutU32(b, EntryHashOffset, e.Hash)
	PutU32(b, EntryHashOffset+4, 0)
	PutRef(b, EntryKeyOffset, e.KeyRef)
	PutRef(b, EntryRecordOffset, e.RecordRef)
	PutRef(b, EntryNextOffset, e.Next)
}

// EncodeKey writes a string-span key covering [start, end) into b.
func EncodeKey(b []byte, start, end Ref) {
	PutRef(b, KeyStartOffset, start)
	PutRef(b, KeyEndOffset, end)
}
