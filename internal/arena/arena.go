// Package arena provides the memory region an engine lays its compiled
// structures out in. A region is filled once with a bump pointer, sealed
// read-only, and released as a whole. Every release bumps a generation
// counter so views taken before the release can detect that they are stale.
package arena

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/joshuapare/onigkit/internal/buf"
	"github.com/joshuapare/onigkit/internal/format"
)

// Kind selects where a region's bytes live.
type Kind uint8

const (
	// KindMapped places the region in an anonymous private mapping outside the
	// Go heap. Sealing makes the pages read-only. Platforms without mmap fall
	// back to KindHeap.
	KindMapped Kind = iota
	// KindHeap places the region in an ordinary Go byte slice.
	KindHeap
)

func (k Kind) String() string {
	switch k {
	case KindMapped:
		return "mapped"
	case KindHeap:
		return "heap"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

var (
	// ErrFull is returned when an allocation does not fit the region.
	ErrFull = errors.New("arena: region full")
	// ErrSealed is returned when allocating from a sealed region.
	ErrSealed = errors.New("arena: region sealed")
	// ErrReleased is returned when using a released region.
	ErrReleased = errors.New("arena: region released")
)

// Arena is a fixed-size region with bump allocation. Allocation is not safe
// for concurrent use; reads of a sealed region are.
type Arena struct {
	mem     []byte
	kind    Kind
	next    int
	sealed  bool
	gen     atomic.Uint64
	release atomic.Bool
}

// New reserves a region of at least size bytes. The first
// format.ReservedPrefix bytes are never handed out.
func New(size int, kind Kind) (*Arena, error) {
	if size < 0 {
		return nil, fmt.Errorf("arena: negative size %d", size)
	}
	total, ok := buf.AddOverflowSafe(buf.Align8(size), format.ReservedPrefix)
	if !ok {
		return nil, fmt.Errorf("arena: size %d overflows", size)
	}

	a := &Arena{kind: kind, next: format.ReservedPrefix}
	if kind == KindMapped && mappingSupported {
		mem, err := mapRegion(total)
		if err != nil {
			return nil, fmt.Errorf("arena: map %d bytes: %w", total, err)
		}
		a.mem = mem[:total]
	} else {
		a.kind = KindHeap
		a.mem = make([]byte, total)
	}
	a.gen.Store(1)
	return a, nil
}

// Alloc hands out n zeroed bytes aligned to 8 and returns their reference.
func (a *Arena) Alloc(n int) (format.Ref, []byte, error) {
	if a.release.Load() {
		return format.NullRef, nil, ErrReleased
	}
	if a.sealed {
		return format.NullRef, nil, ErrSealed
	}
	if n < 0 {
		return format.NullRef, nil, fmt.Errorf("arena: negative allocation %d", n)
	}
	b, ok := buf.Slice(a.mem, a.next, n)
	if !ok {
		return format.NullRef, nil, fmt.Errorf("arena: alloc %d at %d of %d: %w", n, a.next, len(a.mem), ErrFull)
	}
	ref := format.Ref(a.next)
	a.next = buf.Align8(a.next + n)
	return ref, b, nil
}

// Seal ends allocation. Mapped regions become read-only; any later write
// through a slice obtained from Alloc faults.
func (a *Arena) Seal() error {
	if a.release.Load() {
		return ErrReleased
	}
	if a.sealed {
		return nil
	}
	a.sealed = true
	if a.kind == KindMapped {
		if err := protectRegion(a.mem); err != nil {
			return fmt.Errorf("arena: seal: %w", err)
		}
	}
	return nil
}

// Release frees the region and advances the generation. Releasing twice is
// a no-op. Slices obtained from the region must not be used afterwards.
func (a *Arena) Release() error {
	if !a.release.CompareAndSwap(false, true) {
		return nil
	}
	a.gen.Add(1)
	if a.kind == KindMapped {
		return unmapRegion(a.mem)
	}
	return nil
}

// Bytes returns the whole region, including unallocated tail bytes.
func (a *Arena) Bytes() []byte { return a.mem }

// Used returns the number of bytes handed out so far, including the
// reserved prefix and alignment padding.
func (a *Arena) Used() int { return a.next }

// Kind reports where the region lives after any fallback.
func (a *Arena) Kind() Kind { return a.kind }

// Sealed reports whether Seal has been called.
func (a *Arena) Sealed() bool { return a.sealed }

// Generation identifies the region's current lifetime. It changes when the
// region is released.
func (a *Arena) Generation() uint64 { return a.gen.Load() }

// Live reports whether gen is still the region's current generation.
func (a *Arena) Live(gen uint64) bool {
	return !a.release.Load() && a.gen.Load() == gen
}
