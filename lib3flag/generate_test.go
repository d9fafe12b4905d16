package lib3flag

import (
	"errors"
	"testing"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/stretchr/testify/require"
)

func flagStrings(flags []*Flag) []string {
	strs := make([]string, len(flags))
	for i, X := range flags {
		strs[i] = X.String()
	}
	return strs
}

func TestGenerateScenarios(t *testing.T) {
	graphs, err := GenerateGraphs(4, NewConstraints(map[int]int{4: 3}, nil, nil), GenOpts{})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"4:", "4:(1,2,3)", "4:(1,2,3)(1,2,4)"}, flagStrings(graphs))

	tg := MustParseFlag("1:")
	flags, err := GenerateFlags(4, tg, NewConstraints(map[int]int{4: 2}, nil, nil), GenOpts{})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"4:1:", "4:1:(2,3,4)", "4:1:(1,2,3)"}, flagStrings(flags))

	graphs, err = GenerateGraphs(3, Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"3:", "3:(1,2,3)"}, flagStrings(graphs))

	_, err = GenerateFlags(4, MustParseFlag("2:1:"), Constraints{}, GenOpts{})
	require.True(t, errors.Is(err, go3flag.ErrTypeNotPlain))
}

func TestGenerateEdgeCases(t *testing.T) {
	flags, err := GenerateFlags(2, MustParseFlag("2:"), Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Equal(t, []string{"2:2:"}, flagStrings(flags))

	flags, err = GenerateFlags(3, MustParseFlag("3:(1,2,3)"), MustParseConstraints("span 4 < 2"), GenOpts{})
	require.NoError(t, err)
	require.Equal(t, []string{"3:3:(1,2,3)"}, flagStrings(flags))

	flags, err = GenerateFlags(1, MustParseFlag("2:"), Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Empty(t, flags)

	graphs, err := GenerateGraphs(0, Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Equal(t, []string{"0:"}, flagStrings(graphs))

	graphs, err = GenerateGraphs(2, Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Equal(t, []string{"2:"}, flagStrings(graphs))

	_, err = GenerateGraphs(go3flag.MaxVtxID+1, Constraints{}, GenOpts{})
	require.True(t, errors.Is(err, go3flag.ErrBadVtxCount))

	_, err = GenerateGraphs(3, Constraints{}, GenOpts{DedupSet: "nope"})
	require.True(t, errors.Is(err, go3flag.ErrBadDedupSet))
}

func TestGenerateCounts(t *testing.T) {
	// Non-isomorphic 3-graphs on n vertices
	counts := []int{1, 1, 1, 2, 5, 34, 2136}
	maxN := len(counts) - 1
	if testing.Short() {
		maxN--
	}
	for n := 0; n <= maxN; n++ {
		graphs, err := GenerateGraphs(n, Constraints{}, GenOpts{})
		require.NoError(t, err)
		require.Len(t, graphs, counts[n], "n=%d", n)
	}

	flags, err := GenerateFlags(4, MustParseFlag("1:"), Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Len(t, flags, 8)

	flags, err = GenerateFlags(4, MustParseFlag("2:"), Constraints{}, GenOpts{})
	require.NoError(t, err)
	require.Len(t, flags, 12)
}

func TestGenerateOnLevel(t *testing.T) {
	var levels [][2]int
	opts := GenOpts{
		OnLevel: func(Nv int, flags []*Flag) {
			levels = append(levels, [2]int{Nv, len(flags)})
		},
	}
	_, err := GenerateGraphs(4, Constraints{}, opts)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{0, 1}, {1, 1}, {2, 1}, {3, 2}, {4, 5}}, levels)

	levels = nil
	_, err = GenerateFlags(4, MustParseFlag("2:"), Constraints{}, opts)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{2, 1}, {3, 2}, {4, 12}}, levels)
}

// bruteForce returns the canonic encodings of every admissible flag of type tg on Nv vertices.
func bruteForce(Nv int, tg *Flag, C Constraints) map[string]struct{} {
	s := 0
	if tg != nil {
		s = tg.VertexCount()
	}

	var triples [][3]int
	for a := 1; a <= Nv; a++ {
		for b := a + 1; b <= Nv; b++ {
			for c := b + 1; c <= Nv; c++ {
				if c > s {
					triples = append(triples, [3]int{a, b, c})
				}
			}
		}
	}

	found := make(map[string]struct{})
	for bits := 0; bits < 1<<len(triples); bits++ {
		X, _ := NewFlag(Nv, s)
		if tg != nil {
			for _, e := range tg.Edges() {
				X.AddEdge(e.Vtx())
			}
		}
		for i, tri := range triples {
			if bits&(1<<i) != 0 {
				X.AddEdge(tri[0], tri[1], tri[2])
			}
		}
		if C.IsAdmissible(X, 0) {
			found[string(X.CanonicEncoding())] = struct{}{}
		}
	}
	return found
}

func TestGenerateComplete(t *testing.T) {
	Cs := []Constraints{
		{},
		MustParseConstraints("span 4 < 3"),
		MustParseConstraints("span 4 < 2"),
		MustParseConstraints("forbid " + exprK4),
		MustParseConstraints("induced 4:(1,2,3)"),
		MustParseConstraints("span 5 < 6; induced 4:(1,2,3)(1,2,4)"),
	}
	types := []*Flag{nil, MustParseFlag("1:"), MustParseFlag("2:"), MustParseFlag("3:"), MustParseFlag("3:(1,2,3)")}

	for _, C := range Cs {
		for _, tg := range types {
			for Nv := 3; Nv <= 5; Nv++ {
				if tg != nil && (tg.VertexCount() > Nv || !C.IsAdmissible(tg, 0)) {
					continue
				}
				flags, err := GenerateFlags(Nv, tg, C, GenOpts{})
				require.NoError(t, err)

				expected := bruteForce(Nv, tg, C)
				got := make(map[string]struct{}, len(flags))
				for _, X := range flags {
					require.True(t, X.IsCanonic())
					require.True(t, C.IsAdmissible(X, 0), "%v", X)
					key := string(X.CanonicEncoding())
					_, dupe := got[key]
					require.False(t, dupe, "%v generated twice", X)
					got[key] = struct{}{}
				}
				require.Equal(t, expected, got, "Nv=%d type=%v constraints=%q", Nv, tg, C.String())
			}
		}
	}
}

func TestGenerateHereditary(t *testing.T) {
	C := MustParseConstraints("span 4 < 3")
	level4, err := GenerateGraphs(4, C, GenOpts{})
	require.NoError(t, err)
	level5, err := GenerateGraphs(5, C, GenOpts{})
	require.NoError(t, err)

	known := NewDropDupes(DropDupeOpts{})
	for _, X := range level4 {
		require.True(t, known.TryAdd(X))
	}
	for _, X := range level5 {
		for skip := 1; skip <= 5; skip++ {
			var rest []int
			for vi := 1; vi <= 5; vi++ {
				if vi != skip {
					rest = append(rest, vi)
				}
			}
			Xi, err := X.Induced(rest)
			require.NoError(t, err)
			require.False(t, known.TryAdd(Xi), "%v minus %d is missing from the previous level", X, skip)
		}
	}
}

func TestGenerateParallel(t *testing.T) {
	type job struct {
		Nv int
		tg *Flag
		C  Constraints
	}
	jobs := []job{
		{5, nil, Constraints{}},
		{6, nil, MustParseConstraints("span 4 < 3")},
		{5, MustParseFlag("2:"), Constraints{}},
		{5, MustParseFlag("3:(1,2,3)"), MustParseConstraints("induced 4:(1,2,3)")},
	}
	for _, j := range jobs {
		seq, err := GenerateFlags(j.Nv, j.tg, j.C, GenOpts{})
		require.NoError(t, err)
		par, err := GenerateFlags(j.Nv, j.tg, j.C, GenOpts{Workers: 4})
		require.NoError(t, err)
		require.Equal(t, flagStrings(seq), flagStrings(par))

		lsm, err := GenerateFlags(j.Nv, j.tg, j.C, GenOpts{Workers: 3, DedupSet: go3flag.DedupLSM})
		require.NoError(t, err)
		require.Equal(t, flagStrings(seq), flagStrings(lsm))
	}
}
