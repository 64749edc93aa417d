package format

import (
	"bytes"
	"fmt"

	"github.com/joshuapare/onigkit/internal/buf"
)

// Table is the decoded table descriptor.
type Table struct {
	TypeRef    Ref
	NumBins    int32
	NumEntries int32
	BinsRef    Ref
}

// DecodeTable decodes the descriptor at ref and checks that its bin array
// lies inside mem. The bin heads themselves are read on demand by BinHead.
func DecodeTable(mem []byte, ref Ref) (Table, error) {
	b, err := Resolve(mem, ref, TableSize)
	if err != nil {
		return Table{}, fmt.Errorf("table: %w", err)
	}
	t := Table{
		TypeRef:    Ref(buf.U64LE(b[TableTypeOffset:])),
		NumBins:    buf.I32LE(b[TableNumBinsOffset:]),
		NumEntries: buf.I32LE(b[TableNumEntriesOffset:]),
		BinsRef:    Ref(buf.U64LE(b[TableBinsOffset:])),
	}

	sig, err := Resolve(mem, t.TypeRef, HashTypeSize)
	if err != nil {
		return Table{}, fmt.Errorf("table hash type: %w", err)
	}
	if !bytes.Equal(sig, StrEndSignature) {
		return Table{}, fmt.Errorf("table hash type: %w", ErrSignatureMismatch)
	}

	if t.NumBins < 0 || t.NumBins > MaxBins {
		return Table{}, fmt.Errorf("table bins %d exceeds limit %d: %w", t.NumBins, MaxBins, ErrSanityLimit)
	}
	if t.NumEntries < 0 || int(t.NumEntries) > MaxEntries(len(mem)) {
		return Table{}, fmt.Errorf("table entries %d, region holds at most %d: %w",
			t.NumEntries, MaxEntries(len(mem)), ErrSanityLimit)
	}
	if t.NumBins == 0 {
		return t, nil
	}
	if t.BinsRef == NullRef {
		return Table{}, fmt.Errorf("table bins: %w", ErrNullRef)
	}
	if _, err := Resolve(mem, t.BinsRef, 0); err != nil {
		return Table{}, fmt.Errorf("table bins: %w", err)
	}
	if _, err := buf.CheckArrayBounds(len(mem), int(t.BinsRef), int(t.NumBins), RefSize); err != nil {
		return Table{}, fmt.Errorf("table bins: %w (%v)", ErrTruncated, err)
	}
	return t, nil
}

// MaxEntries is the most entries a region of regionLen bytes can hold.
func MaxEntries(regionLen int) int {
	if regionLen <= ReservedPrefix {
		return 0
	}
	return (regionLen - ReservedPrefix) / EntrySize
}

// BinHead returns the chain head stored in bin i. DecodeTable has already
// checked the whole bin array, so only i needs validating here.
func BinHead(mem []byte, t Table, i int) (Ref, error) {
	if i < 0 || i >= int(t.NumBins) {
		return NullRef, fmt.Errorf("bin %d of %d: %w", i, t.NumBins, ErrTruncated)
	}
	head, err := CheckedReadRef(mem, int(t.BinsRef)+i*RefSize)
	if err != nil {
		return NullRef, fmt.Errorf("bin %d: %w", i, err)
	}
	return head, nil
}

// EncodeTable writes t into b, which must hold at least TableSize bytes.
func EncodeTable(b []byte, t Table) {
	PutRef(b, TableTypeOffset, t.TypeRef)
	PutI32(b, TableNumBinsOffset, t.NumBins)
	PutI32(b, TableNumEntriesOffset, t.NumEntries)
	PutRef(b, TableBinsOffset, t.BinsRef)
}
