package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeNameRecordGroupArray(t *testing.T) {
	mem := region(t)
	r, err := DecodeNameRecord(mem, 0x58)
	require.NoError(t, err)

	name, err := r.Name(mem)
	require.NoError(t, err)
	require.Equal(t, "foo", string(name))

	raw, err := r.Groups(mem)
	require.NoError(t, err)
	require.Len(t, raw, 2*GroupIndexSize)
	require.Equal(t, 2, GroupAt(raw, 0))
	require.Equal(t, 3, GroupAt(raw, 1))
}

func TestNameRecordSingleGroupIgnoresArray(t *testing.T) {
	mem := region(t)
	// One group: the array reference holds garbage and must not be followed.
	EncodeNameRecord(mem[0x58:], NameRecord{NameRef: 0x78, NameLen: 3, BackNum: 1, BackRef1: 7, BackRefsRef: 0xdeadbeef})
	r, err := DecodeNameRecord(mem, 0x58)
	require.NoError(t, err)

	raw, err := r.Groups(mem)
	require.NoError(t, err)
	require.Len(t, raw, GroupIndexSize)
	require.Equal(t, 7, GroupAt(raw, 0))
}

func TestDecodeNameRecordRejectsCorruption(t *testing.T) {
	tests := []struct {
		name    string
		rec     NameRecord
		wantErr error
	}{
		{name: "zero groups", rec: NameRecord{NameRef: 0x78, NameLen: 3, BackNum: 0}, wantErr: ErrGroupCount},
		{name: "negative groups", rec: NameRecord{NameRef: 0x78, NameLen: 3, BackNum: -2}, wantErr: ErrGroupCount},
		{name: "count above capacity", rec: NameRecord{NameRef: 0x78, NameLen: 3, BackNum: 4, BackAlloc: 2, BackRefsRef: 0x80}, wantErr: ErrGroupCount},
		{name: "empty name", rec: NameRecord{NameRef: 0x78, NameLen: 0, BackNum: 1}, wantErr: ErrSanityLimit},
		{name: "huge name", rec: NameRecord{NameRef: 0x78, NameLen: MaxNameLen + 1, BackNum: 1}, wantErr: ErrSanityLimit},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mem := region(t)
			EncodeNameRecord(mem[0x58:], tc.rec)
			_, err := DecodeNameRecord(mem, 0x58)
			require.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestNameRecordSpansStayInRegion(t *testing.T) {
	mem := region(t)

	EncodeNameRecord(mem[0x58:], NameRecord{NameRef: 0x78, NameLen: 0x40, BackNum: 1})
	r, err := DecodeNameRecord(mem, 0x58)
	require.NoError(t, err)
	_, err = r.Name(mem)
	require.ErrorIs(t, err, ErrTruncated)

	EncodeNameRecord(mem[0x58:], NameRecord{NameRef: 0x78, NameLen: 3, BackNum: 8, BackAlloc: 8, BackRefsRef: 0x80})
	r, err = DecodeNameRecord(mem, 0x58)
	require.NoError(t, err)
	_, err = r.Groups(mem)
	require.ErrorIs(t, err, ErrTruncated)

	EncodeNameRecord(mem[0x58:], NameRecord{NameRef: 0x78, NameLen: 3, BackNum: 2, BackAlloc: 2})
	r, err = DecodeNameRecord(mem, 0x58)
	require.NoError(t, err)
	_, err = r.Groups(mem)
	require.ErrorIs(t, err, ErrNullRef)
}

func TestNameBytesNeedNoAlignment(t *testing.T) {
	mem := region(t)
	copy(mem[0x79:], "oo")
	EncodeNameRecord(mem[0x58:], NameRecord{NameRef: 0x79, NameLen: 2, BackNum: 1, BackRef1: 1})
	r, err := DecodeNameRecord(mem, 0x58)
	require.NoError(t, err)
	name, err := r.Name(mem)
	require.NoError(t, err)
	require.Equal(t, "oo", string(name))
}
