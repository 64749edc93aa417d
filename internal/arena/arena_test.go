package arena

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/onigkit/internal/format"
)

func TestAllocAlignsAndSkipsReservedPrefix(t *testing.T) {
	a, err := New(64, KindHeap)
	require.NoError(t, err)

	ref, b, err := a.Alloc(3)
	require.NoError(t, err)
	require.Equal(t, format.Ref(format.ReservedPrefix), ref)
	require.Len(t, b, 3)

	ref, _, err = a.Alloc(8)
	require.NoError(t, err)
	require.Equal(t, format.Ref(16), ref)
	require.Equal(t, 24, a.Used())
}

func TestAllocFull(t *testing.T) {
	a, err := New(16, KindHeap)
	require.NoError(t, err)
	_, _, err = a.Alloc(16)
	require.NoError(t, err)
	_, _, err = a.Alloc(1)
	require.ErrorIs(t, err, ErrFull)
}

func TestSealStopsAllocation(t *testing.T) {
	a, err := New(32, KindHeap)
	require.NoError(t, err)
	require.NoError(t, a.Seal())
	require.True(t, a.Sealed())
	_, _, err = a.Alloc(8)
	require.ErrorIs(t, err, ErrSealed)
	require.NoError(t, a.Seal())
}

func TestReleaseAdvancesGeneration(t *testing.T) {
	a, err := New(32, KindHeap)
	require.NoError(t, err)
	gen := a.Generation()
	require.True(t, a.Live(gen))

	require.NoError(t, a.Release())
	require.False(t, a.Live(gen))
	require.NotEqual(t, gen, a.Generation())

	after := a.Generation()
	require.NoError(t, a.Release())
	require.Equal(t, after, a.Generation(), "second release must be a no-op")

	_, _, err = a.Alloc(8)
	require.ErrorIs(t, err, ErrReleased)
	require.ErrorIs(t, a.Seal(), ErrReleased)
}

func TestNewRejectsNegativeSize(t *testing.T) {
	_, err := New(-1, KindHeap)
	require.Error(t, err)
}
