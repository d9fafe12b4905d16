package lib3flag

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/stretchr/testify/require"
)

const (
	exprK4minus = "4:(1,2,3)(1,2,4)(1,3,4)"
	exprK4      = "4:(1,2,3)(1,2,4)(1,3,4)(2,3,4)"
)

func TestParseConstraints(t *testing.T) {
	expr := "span 4 < 3; forbid " + exprK4minus + "; induced 4:(1,2,3)"
	C, err := ParseConstraints(expr)
	require.NoError(t, err)
	require.Equal(t, []EdgeBound{{K: 4, Bound: 3}}, C.EdgeBounds())
	require.Len(t, C.Forbidden(), 1)
	require.Len(t, C.ForbiddenInduced(), 1)
	require.Equal(t, expr, C.String())

	C2, err := ParseConstraints(C.String())
	require.NoError(t, err)
	require.Equal(t, C.String(), C2.String())

	// Later bounds for the same k replace earlier ones; bounds stay sorted by k
	C, err = ParseConstraints("span 5 < 4 span 4 < 3 span 5 < 2")
	require.NoError(t, err)
	require.Equal(t, []EdgeBound{{K: 4, Bound: 3}, {K: 5, Bound: 2}}, C.EdgeBounds())

	C, err = ParseConstraints("  ")
	require.NoError(t, err)
	require.True(t, C.IsEmpty())

	_, err = ParseConstraints("span 2 < 1")
	require.True(t, errors.Is(err, go3flag.ErrBadConstraint))
	_, err = ParseConstraints("span 4 < 0")
	require.True(t, errors.Is(err, go3flag.ErrBadConstraint))
	_, err = ParseConstraints("frob 4:")
	require.True(t, errors.Is(err, go3flag.ErrBadConstraint))
	_, err = ParseConstraints("forbid 4:1:(1,2,3)")
	require.True(t, errors.Is(err, go3flag.ErrTypeNotPlain))
	_, err = ParseConstraints("forbid 3:(1,2,4)")
	require.True(t, errors.Is(err, go3flag.ErrInvalidEdge))
}

func TestConstraintsImmutable(t *testing.T) {
	C := NewConstraints(map[int]int{4: 3}, nil, nil)
	C2 := C.WithForbidden(MustParseFlag(exprK4minus)).WithEdgeBound(5, 2)
	require.Len(t, C.EdgeBounds(), 1)
	require.Len(t, C.Forbidden(), 0)
	require.Len(t, C2.EdgeBounds(), 2)
	require.Len(t, C2.Forbidden(), 1)

	// Forbidden graphs are copied in
	H := MustParseFlag("3:")
	C3 := C.WithForbiddenInduced(H)
	require.NoError(t, H.AddEdge(1, 2, 3))
	require.Equal(t, "3:", C3.ForbiddenInduced()[0].String())
}

func TestIsAdmissible(t *testing.T) {
	span43 := MustParseConstraints("span 4 < 3")
	require.True(t, span43.IsAdmissible(MustParseFlag("4:(1,2,3)(1,2,4)"), 0))
	require.False(t, span43.IsAdmissible(MustParseFlag(exprK4minus), 0))
	require.False(t, span43.IsAdmissible(MustParseFlag("5:(1,2,5)(1,3,5)(2,3,5)"), 0))
	require.False(t, span43.IsAdmissible(MustParseFlag("5:(1,2,5)(1,3,5)(2,3,5)"), 5))
	require.True(t, span43.IsAdmissible(MustParseFlag("3:(1,2,3)"), 0))

	// A bound no k-set can reach is never violated
	require.True(t, MustParseConstraints("span 4 < 5").IsAdmissible(MustParseFlag(exprK4), 0))

	noK4minus := MustParseConstraints("forbid " + exprK4minus)
	require.False(t, noK4minus.IsAdmissible(MustParseFlag(exprK4), 0))
	require.False(t, noK4minus.IsAdmissible(MustParseFlag("5:(1,2,5)(1,3,5)(2,3,5)"), 0))
	require.True(t, noK4minus.IsAdmissible(MustParseFlag("5:(1,2,3)(1,4,5)(2,4,5)(3,4,5)"), 0))

	inducedOne := MustParseConstraints("induced 4:(1,2,3)")
	require.True(t, inducedOne.IsAdmissible(MustParseFlag(exprK4), 0))
	require.False(t, inducedOne.IsAdmissible(MustParseFlag("4:(1,2,3)"), 0))
	require.False(t, inducedOne.IsAdmissible(MustParseFlag("5:(1,2,3)(1,4,5)"), 0))
	require.True(t, inducedOne.IsAdmissible(MustParseFlag("4:"), 0))

	// Roots are ordinary vertices as far as constraints go
	require.False(t, span43.IsAdmissible(MustParseFlag("4:2:(1,2,3)(1,2,4)(1,3,4)"), 4))
}

// With the focus vertex given, only sets containing it are examined, so a violation elsewhere is missed.
func TestIsAdmissibleFocus(t *testing.T) {
	span43 := MustParseConstraints("span 4 < 3")
	X := MustParseFlag("5:(1,2,3)(1,2,4)(1,3,4)")
	require.False(t, span43.IsAdmissible(X, 0))
	require.True(t, span43.IsAdmissible(X, 5))
	require.False(t, span43.IsAdmissible(X, 4))
	require.False(t, span43.IsAdmissible(X, 99))
}

func TestIsAdmissibleFocusAgrees(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	Cs := []Constraints{
		MustParseConstraints("span 4 < 3"),
		MustParseConstraints("span 5 < 5; span 4 < 4"),
		MustParseConstraints("forbid " + exprK4minus),
		MustParseConstraints("induced 4:(1,2,3)"),
		MustParseConstraints("span 4 < 4; induced 5:(1,2,3)(3,4,5)"),
	}

	checked := 0
	for trial := 0; trial < 2000; trial++ {
		Nv := 4 + rng.Intn(4)
		X := randomFlag(rng, Nv, 0, 0.1+0.5*rng.Float64())
		rest := make([]int, Nv-1)
		for i := range rest {
			rest[i] = i + 1
		}
		parent, err := X.Induced(rest)
		require.NoError(t, err)

		for _, C := range Cs {
			if !C.IsAdmissible(parent, 0) {
				continue
			}
			checked++
			require.Equal(t, C.IsAdmissible(X, 0), C.IsAdmissible(X, Nv), "%v with %v", X, C)
		}
	}
	require.Greater(t, checked, 1000)
}
