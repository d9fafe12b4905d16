package go3flag

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrbitSetValidate(t *testing.T) {
	orbs := OrbitSet{{3}, {0, 2}, {1, 4, 5}}
	orbs.Sort()
	require.Equal(t, OrbitSet{{0, 2}, {1, 4, 5}, {3}}, orbs)
	require.NoError(t, orbs.Validate(6))
	require.Equal(t, 6, orbs.NumFlags())

	inv, anti := orbs.InvariantSplit()
	require.Equal(t, 3, inv)
	require.Equal(t, 3, anti)

	for _, bad := range []struct {
		orbs     OrbitSet
		numFlags int
	}{
		{orbs, 7},
		{OrbitSet{{0, 1}, {1}}, 2},
		{OrbitSet{{1, 0}}, 2},
		{OrbitSet{{0}, {}}, 1},
		{OrbitSet{{0, 2}}, 2},
	} {
		err := bad.orbs.Validate(bad.numFlags)
		require.True(t, errors.Is(err, ErrBadOrbits), "%v over %d flags: %v", bad.orbs, bad.numFlags, err)
	}
}

func TestOrbitComparator(t *testing.T) {
	require.Equal(t, 0, OrbitComparator(Orbit{1, 2}, Orbit{1, 2}))
	require.Less(t, OrbitComparator(Orbit{1, 2}, Orbit{1, 3}), 0)
	require.Less(t, OrbitComparator(Orbit{1}, Orbit{1, 3}), 0)
	require.Greater(t, OrbitComparator(Orbit{2}, Orbit{1, 3}), 0)
}
