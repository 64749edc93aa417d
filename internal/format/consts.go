// Package format houses low-level decoders for the name table an engine
// builds while compiling a pattern. The table is a chained hash table living
// in memory the engine owns; this package reads it through bounds-checked
// accessors and never writes to it, apart from the encoders the engine uses
// to lay it out in the first place.
//
// References inside the table are byte offsets from the start of the owning
// memory region. Offset zero is reserved and stands for a null reference.
package format

// Ref is a reference to a structure inside a foreign memory region.
type Ref uint64

// NullRef terminates chains and marks absent tables and arrays.
const NullRef Ref = 0

const (
	// RefSize is the width of a reference field.
	RefSize = 8

	// GroupIndexSize is the width of one capture-group index.
	GroupIndexSize = 4

	// ReservedPrefix is the number of bytes at the start of a region that no
	// structure may occupy, so that offset zero can act as null.
	ReservedPrefix = 8
)

// Table descriptor layout (little-endian):
//
//	Offset  Size  Field
//	0x00    8     Hash type descriptor reference
//	0x08    4     Number of bins (signed)
//	0x0C    4     Number of entries (signed)
//	0x10    8     Reference to the array of bin head references
const (
	TableTypeOffset       = 0x00
	TableNumBinsOffset    = 0x08
	TableNumEntriesOffset = 0x0C
	TableBinsOffset       = 0x10
	TableSize             = 0x18
)

// Hash type descriptor layout:
//
//	Offset  Size  Field
//	0x00    8     Signature "strend\x00\x00"
const (
	HashTypeSize = 8
)

// StrEndSignature identifies the string-span hash type used for name tables.
var StrEndSignature = []byte{'s', 't', 'r', 'e', 'n', 'd', 0, 0}

// Chain entry layout:
//
//	Offset  Size  Field
//	0x00    4     Full hash value (bin = hash % bins)
//	0x04    4     Padding
//	0x08    8     Key reference (string span)
//	0x10    8     Record reference (name record)
//	0x18    8     Next entry reference, null at the end of the chain
const (
	EntryHashOffset   = 0x00
	EntryKeyOffset    = 0x08
	EntryRecordOffset = 0x10
	EntryNextOffset   = 0x18
	EntrySize         = 0x20
)

// Key layout:
//
//	Offset  Size  Field
//	0x00    8     Reference to the first name byte
//	0x08    8     Reference one past the last name byte
const (
	KeyStartOffset = 0x00
	KeyEndOffset   = 0x08
	KeySize        = 0x10
)

// Name record layout:
//
//	Offset  Size  Field
//	0x00    8     Reference to the name bytes
//	0x08    4     Name length in bytes
//	0x0C    4     Number of groups carrying this name
//	0x10    4     Allocated capacity of the group array
//	0x14    4     Group index when exactly one group carries the name
//	0x18    8     Reference to the group array when more than one does
const (
	NameRefOffset       = 0x00
	NameLenOffset       = 0x08
	NameBackNumOffset   = 0x0C
	NameBackAllocOffset = 0x10
	NameBackRef1Offset  = 0x14
	NameBackRefsOffset  = 0x18
	NameRecordSize      = 0x20
)

// Sanity limits. Anything above them is treated as corruption.
const (
	// MaxBins bounds the bin array length.
	MaxBins = 1 << 24

	// MaxNameLen bounds a single name in bytes.
	MaxNameLen = 1 << 12

	// MaxGroupIndex is the largest capture group number an engine may assign.
	MaxGroupIndex = 32767

	// InitialBackRefAlloc is the capacity of a group array when a second
	// group joins a name. It doubles as needed.
	InitialBackRefAlloc = 8
)
