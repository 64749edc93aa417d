//go:build linux || darwin

package arena

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMappedRegion(t *testing.T) {
	a, err := New(100, KindMapped)
	require.NoError(t, err)
	require.Equal(t, KindMapped, a.Kind())

	ref, b, err := a.Alloc(4)
	require.NoError(t, err)
	copy(b, "onig")
	require.Equal(t, "onig", string(a.Bytes()[ref:ref+4]))

	require.NoError(t, a.Seal())
	// Reads stay valid after sealing.
	require.Equal(t, "onig", string(a.Bytes()[ref:ref+4]))
	require.NoError(t, a.Release())
}

func TestMappedZeroSize(t *testing.T) {
	a, err := New(0, KindMapped)
	require.NoError(t, err)
	require.Len(t, a.Bytes(), 8)
	require.NoError(t, a.Seal())
	require.NoError(t, a.Release())
}
