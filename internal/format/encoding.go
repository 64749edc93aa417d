package format

import (
	"encoding/binary"
	"fmt"

	"github.com/joshuapare/onigkit/internal/buf"
)

// PutU32 writes a uint32 value to the buffer at the specified offset in little-endian format.
func PutU32(b []byte, off int, v uint32) {
	binary.LittleEndian.PutUint32(b[off:off+4], v)
}

// PutI32 writes an int32 value to the buffer at the specified offset in little-endian format.
func PutI32(b []byte, off int, v int32) {
	binary.LittleEndian.PutUint32(b[off:off+4], uint32(v))
}

// PutRef writes a reference to the buffer at the specified offset.
func PutRef(b []byte, off int, r Ref) {
	binary.LittleEndian.PutUint64(b[off:off+RefSize], uint64(r))
}

// CheckedReadRef reads a reference at off, failing with ErrTruncated when the
// field does not fit.
func CheckedReadRef(b []byte, off int) (Ref, error) {
	field, ok := buf.Slice(b, off, RefSize)
	if !ok {
		return 0, fmt.Errorf("ref at %d: %w", off, ErrTruncated)
	}
	return Ref(buf.U64LE(field)), nil
}

// Resolve returns the size bytes a non-null reference points at. It rejects
// references into the reserved prefix, misaligned references and spans that
// leave the region.
func Resolve(mem []byte, r Ref, size int) ([]byte, error) {
	if r == NullRef {
		return nil, ErrNullRef
	}
	if r < ReservedPrefix || r > Ref(len(mem)) {
		return nil, fmt.Errorf("ref 0x%x outside region of %d bytes: %w", uint64(r), len(mem), ErrTruncated)
	}
	if r&7 != 0 {
		return nil, fmt.Errorf("ref 0x%x: %w", uint64(r), ErrMisaligned)
	}
	b, ok := buf.Slice(mem, int(r), size)
	if !ok {
		return nil, fmt.Errorf("ref 0x%x+%d: %w", uint64(r), size, ErrTruncated)
	}
	return b, nil
}

// resolveBytes is Resolve without the alignment rule, for byte strings.
func resolveBytes(mem []byte, r Ref, size int) ([]byte, error) {
	if r == NullRef {
		return nil, ErrNullRef
	}
	if r < ReservedPrefix || r > Ref(len(mem)) {
		return nil, fmt.Errorf("ref 0x%x outside region of %d bytes: %w", uint64(r), len(mem), ErrTruncated)
	}
	b, ok := buf.Slice(mem, int(r), size)
	if !ok {
		return nil, fmt.Errorf("ref 0x%x+%d: %w", uint64(r), size, ErrTruncated)
	}
	return b, nil
}
