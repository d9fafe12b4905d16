package lib3flag

import (
	"errors"
	"testing"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/stretchr/testify/require"
)

func indexOf(t *testing.T, flags []*Flag, X *Flag) int {
	for i, fg := range flags {
		if fg.IsIsomorphic(X) {
			return i
		}
	}
	t.Fatalf("%v not found", X)
	return -1
}

func TestOrbitsTrivialType(t *testing.T) {
	tg := MustParseFlag("1:")
	flags, err := GenerateFlags(4, tg, NewConstraints(map[int]int{4: 2}, nil, nil), GenOpts{})
	require.NoError(t, err)
	require.Len(t, flags, 3)

	orbs, err := FlagOrbits(tg, flags)
	require.NoError(t, err)
	require.Equal(t, go3flag.OrbitSet{{0}, {1}, {2}}, orbs)

	inv, anti := orbs.InvariantSplit()
	require.Equal(t, 3, inv)
	require.Equal(t, 0, anti)
}

func TestOrbitsRootSwap(t *testing.T) {
	tg := MustParseFlag("2:")
	flags, err := GenerateFlags(4, tg, Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Len(t, flags, 12)

	orbs, err := FlagOrbits(tg, flags)
	require.NoError(t, err)
	require.NoError(t, orbs.Validate(len(flags)))
	require.Len(t, orbs, 9)

	inv, anti := orbs.InvariantSplit()
	require.Equal(t, 9, inv)
	require.Equal(t, 3, anti)

	// Swapping the roots exchanges these two
	iA := indexOf(t, flags, MustParseFlag("4:2:(1,3,4)"))
	iB := indexOf(t, flags, MustParseFlag("4:2:(2,3,4)"))
	lo, hi := iA, iB
	if lo > hi {
		lo, hi = hi, lo
	}
	require.Contains(t, orbs, go3flag.Orbit{lo, hi})

	// ..while a root swap fixes this one
	iC := indexOf(t, flags, MustParseFlag("4:2:(1,2,3)(1,3,4)(2,3,4)"))
	require.Contains(t, orbs, go3flag.Orbit{iC})
}

func TestOrbitsTotal(t *testing.T) {
	for _, expr := range []string{"", "2:", "3:", "3:(1,2,3)"} {
		var tg *Flag
		if expr != "" {
			tg = MustParseFlag(expr)
		} else {
			tg = MustParseFlag("0:")
		}
		flags, err := GenerateFlags(5, tg, MustParseConstraints("span 4 < 4"), GenOpts{})
		require.NoError(t, err)

		orbs, err := FlagOrbits(tg, flags)
		require.NoError(t, err)
		require.NoError(t, orbs.Validate(len(flags)), "type %v", tg)
		for i := 1; i < len(orbs); i++ {
			require.Less(t, orbs[i-1][0], orbs[i][0])
		}

		// Members of an orbit are relabellings of one another
		for _, orb := range orbs {
			for _, idx := range orb[1:] {
				require.Equal(t, flags[orb[0]].orbitKey(), flags[idx].orbitKey())
			}
		}
	}
}

func TestOrbitsErrors(t *testing.T) {
	_, err := FlagOrbits(MustParseFlag("2:1:"), nil)
	require.True(t, errors.Is(err, go3flag.ErrTypeNotPlain))

	_, err = FlagOrbits(MustParseFlag("2:"), []*Flag{MustParseFlag("4:2:"), MustParseFlag("4:1:")})
	require.True(t, errors.Is(err, go3flag.ErrTypeMismatch))

	orbs, err := FlagOrbits(MustParseFlag("2:"), nil)
	require.NoError(t, err)
	require.Empty(t, orbs)
}

func TestOrbitsNilType(t *testing.T) {
	graphs, err := GenerateGraphs(4, Constraints{}, GenOpts{})
	require.NoError(t, err)

	orbs, err := FlagOrbits(nil, graphs)
	require.NoError(t, err)
	require.Equal(t, go3flag.OrbitSet{{0}, {1}, {2}, {3}, {4}}, orbs)

	// Isomorphic graphs share an orbit
	X := MustParseFlag("4:(1,2,3)")
	Xr := MustParseFlag("4:(2,3,4)")
	orbs, err = FlagOrbits(nil, []*Flag{X, MustParseFlag("4:"), Xr})
	require.NoError(t, err)
	require.Equal(t, go3flag.OrbitSet{{0, 2}, {1}}, orbs)

	_, err = FlagOrbits(nil, []*Flag{MustParseFlag("4:1:")})
	require.True(t, errors.Is(err, go3flag.ErrTypeMismatch))
}
