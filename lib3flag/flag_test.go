package lib3flag

import (
	"errors"
	"testing"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/stretchr/testify/require"
)

func TestEdgeForm(t *testing.T) {
	e, err := FormEdge(3, 1, 2)
	require.NoError(t, err)
	Va, Vb, Vc := e.Vtx()
	require.Equal(t, [3]int{1, 2, 3}, [3]int{Va, Vb, Vc})
	require.Equal(t, "(1,2,3)", e.String())
	require.True(t, e.Contains(2))
	require.False(t, e.Contains(4))
	require.Equal(t, 3, e.MaxVtx())

	for _, bad := range [][3]int{{1, 1, 2}, {0, 1, 2}, {1, 2, go3flag.MaxVtxID + 1}} {
		_, err = FormEdge(bad[0], bad[1], bad[2])
		require.True(t, errors.Is(err, go3flag.ErrInvalidEdge), "%v", bad)
	}

	e1, _ := FormEdge(1, 2, 9)
	e2, _ := FormEdge(1, 3, 4)
	require.Less(t, e1, e2)
}

func TestFlagBasics(t *testing.T) {
	X, err := NewFlagWithEdges(4, 1, [3]int{2, 3, 4}, [3]int{1, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "4:1:(1,2,3)(2,3,4)", X.String())
	require.Equal(t, []int{1, 2, 2, 1}, X.Degrees())
	require.Equal(t, 2, X.MaxFreeDegree())
	require.True(t, X.HasEdge(4, 3, 2))
	require.False(t, X.HasEdge(1, 2, 4))

	// Re-adding an edge is a no-op
	require.NoError(t, X.AddEdge(3, 2, 1))
	require.Equal(t, 2, X.NumEdges())

	err = X.AddEdge(1, 2, 5)
	require.True(t, errors.Is(err, go3flag.ErrInvalidEdge))
	err = X.AddEdge(1, 2, 2)
	require.True(t, errors.Is(err, go3flag.ErrInvalidEdge))

	_, err = NewFlag(go3flag.MaxVtxID+1, 0)
	require.True(t, errors.Is(err, go3flag.ErrBadVtxCount))
	_, err = NewFlag(3, 4)
	require.True(t, errors.Is(err, go3flag.ErrBadVtxCount))

	Xc := X.Copy()
	require.True(t, Xc.IsEqual(X))
	require.NoError(t, Xc.AddEdge(1, 2, 4))
	require.False(t, Xc.IsEqual(X))
}

func TestFlagParse(t *testing.T) {
	for _, expr := range []string{"0:", "3:", "3:(1,2,3)", "4:(1,2,3)(1,2,4)", "4:1:(2,3,4)", "5:2:(1,2,3)(3,4,5)"} {
		X, err := NewFlagFromString(expr)
		require.NoError(t, err, expr)
		require.Equal(t, expr, X.String())
	}

	_, err := NewFlagFromString("4:(1,2)")
	require.True(t, errors.Is(err, go3flag.ErrBadEncoding))
	_, err = NewFlagFromString("3:(1,2,4)")
	require.True(t, errors.Is(err, go3flag.ErrInvalidEdge))
	_, err = NewFlagFromString("3:4:")
	require.True(t, errors.Is(err, go3flag.ErrBadVtxCount))
}

func TestRelabel(t *testing.T) {
	X := MustParseFlag("4:1:(1,2,3)(2,3,4)")

	Xr, err := X.Relabel([]int{4, 3, 2, 1})
	require.NoError(t, err)
	require.Equal(t, "4:1:(1,2,3)(2,3,4)", Xr.String())

	Xr, err = X.Relabel([]int{2, 1, 3, 4})
	require.NoError(t, err)
	require.Equal(t, "4:1:(1,2,3)(1,3,4)", Xr.String())

	_, err = X.Relabel([]int{1, 1, 3, 4})
	require.True(t, errors.Is(err, go3flag.ErrBadPermutation))
	_, err = X.Relabel([]int{1, 2, 3})
	require.True(t, errors.Is(err, go3flag.ErrBadPermutation))

	_, err = X.RelabelFree([]int{2, 1, 3, 4})
	require.True(t, errors.Is(err, go3flag.ErrBadPermutation))
	Xr, err = X.RelabelFree([]int{1, 4, 3, 2})
	require.NoError(t, err)
	require.Equal(t, "4:1:(1,3,4)(2,3,4)", Xr.String())
}

func TestTypeOps(t *testing.T) {
	X := MustParseFlag("5:3:(1,2,3)(1,4,5)(2,3,5)")
	require.Equal(t, "3:(1,2,3)", X.TypeGraph().String())

	Xi, err := X.Induced([]int{5, 2, 3})
	require.NoError(t, err)
	require.Equal(t, "3:(1,2,3)", Xi.String())
	_, err = X.Induced([]int{1, 1})
	require.True(t, errors.Is(err, go3flag.ErrBadVtxCount))

	_, err = X.AsType()
	require.True(t, errors.Is(err, go3flag.ErrTypeNotPlain))

	tg, err := MustParseFlag("3:(1,2,3)").AsType()
	require.NoError(t, err)
	require.Equal(t, "3:3:(1,2,3)", tg.String())
}

func TestEncoding(t *testing.T) {
	for _, expr := range []string{"0:", "4:1:(2,3,4)", "6:(1,2,3)(1,5,6)(4,5,6)", "31:2:(1,2,31)(29,30,31)"} {
		X := MustParseFlag(expr)
		enc := X.ExportEncoding(nil, 0)

		Xdec, err := NewFlagFromEncoding(enc)
		require.NoError(t, err, expr)
		require.True(t, Xdec.IsEqual(X), expr)

		canonic := X.ExportEncoding(nil, go3flag.ExportCanonic)
		Xdec, err = NewFlagFromEncoding(canonic)
		require.NoError(t, err, expr)
		require.True(t, Xdec.IsEqual(X.Canonize()), expr)
	}

	_, err := NewFlagFromEncoding([]byte{4, 0})
	require.True(t, errors.Is(err, go3flag.ErrBadEncoding))
	_, err = NewFlagFromEncoding([]byte{2, 3, 0})
	require.True(t, errors.Is(err, go3flag.ErrBadEncoding))

	// Duplicate edge
	X := MustParseFlag("3:(1,2,3)")
	enc := X.ExportEncoding(nil, 0)
	enc[2] = 2
	enc = append(enc, enc[3:]...)
	_, err = NewFlagFromEncoding(enc)
	require.True(t, errors.Is(err, go3flag.ErrBadEncoding))
}
