package format

import "errors"

var (
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")
	// ErrTruncated indicates a structure or array runs past the end of the region.
	ErrTruncated = errors.New("format: truncated region")
	// ErrNullRef indicates a required reference was null.
	ErrNullRef = errors.New("format: null reference")
	// ErrMisaligned indicates a reference that is not 8-byte aligned.
	ErrMisaligned = errors.New("format: misaligned reference")
	// ErrSanityLimit indicates a count or length exceeded a sanity limit.
	ErrSanityLimit = errors.New("format: sanity limit exceeded")
	// ErrGroupCount indicates a name record with no groups or an impossible array.
	ErrGroupCount = errors.New("format: invalid group count")
	// ErrGroupIndex indicates a group index outside the pattern's groups.
	ErrGroupIndex = errors.New("format: group index out of range")
	// ErrInvalidName indicates name bytes that are not valid text in the table's encoding.
	ErrInvalidName = errors.New("format: invalid name text")
	// ErrChainTooLong indicates more chained entries than the table declares.
	ErrChainTooLong = errors.New("format: chain exceeds entry count")
	// ErrCycle indicates a chain that leads back to an entry already visited.
	ErrCycle = errors.New("format: entry revisited")
	// ErrUnsupported indicates an encoding or feature this package does not handle.
	ErrUnsupported = errors.New("format: unsupported feature")
)
