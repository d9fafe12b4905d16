package lib3flag

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/pkg/errors"
)

// Flag is a 3-graph on vertices 1..Nv whose first Nt vertices are the ordered roots of a type.
//
// A Flag with Nt == 0 is a plain 3-graph.  Edges are kept sorted and free of duplicates.
// A Flag returned by the generator is never changed again, so it can be shared freely.
type Flag struct {
	vtxCount int
	typeSize int
	canonic  bool // set when edges are known to be in canonic form
	edges    EdgeList
}

// NewFlag returns an edgeless flag on Nv vertices whose first Nt vertices are roots.
func NewFlag(Nv, Nt int) (*Flag, error) {
	if Nv < 0 || Nv > go3flag.MaxVtxID {
		return nil, errors.Wrapf(go3flag.ErrBadVtxCount, "Nv=%d", Nv)
	}
	if Nt < 0 || Nt > Nv {
		return nil, errors.Wrapf(go3flag.ErrBadVtxCount, "type size %d for Nv=%d", Nt, Nv)
	}
	return &Flag{
		vtxCount: Nv,
		typeSize: Nt,
	}, nil
}

// NewGraph returns an edgeless 3-graph on Nv vertices.
func NewGraph(Nv int) (*Flag, error) {
	return NewFlag(Nv, 0)
}

// NewFlagWithEdges returns a flag on Nv vertices and Nt roots with the given edges, each given as a vertex triple.
func NewFlagWithEdges(Nv, Nt int, edges ...[3]int) (*Flag, error) {
	X, err := NewFlag(Nv, Nt)
	if err != nil {
		return nil, err
	}
	for _, tri := range edges {
		if err = X.AddEdge(tri[0], tri[1], tri[2]); err != nil {
			return nil, err
		}
	}
	return X, nil
}

// MustParseFlag is NewFlagFromString that panics on error; intended for tests and literals.
func MustParseFlag(flagExpr string) *Flag {
	X, err := NewFlagFromString(flagExpr)
	if err != nil {
		panic(err)
	}
	return X
}

// Init makes X an independent copy of Xsrc, or an empty 0-vertex graph if Xsrc is nil.
func (X *Flag) Init(Xsrc *Flag) {
	if X == Xsrc {
		return
	}
	if Xsrc == nil {
		X.vtxCount = 0
		X.typeSize = 0
		X.canonic = false
		X.edges = X.edges[:0]
		return
	}
	X.vtxCount = Xsrc.vtxCount
	X.typeSize = Xsrc.typeSize
	X.canonic = Xsrc.canonic
	X.edges = append(X.edges[:0], Xsrc.edges...)
}

// Copy returns a deep copy of X.
func (X *Flag) Copy() *Flag {
	Xc := &Flag{
		edges: make(EdgeList, 0, len(X.edges)+4),
	}
	Xc.Init(X)
	return Xc
}

// VertexCount returns the total number of vertices (roots included).
func (X *Flag) VertexCount() int {
	return X.vtxCount
}

// TypeSize returns the number of root vertices.
func (X *Flag) TypeSize() int {
	return X.typeSize
}

// NumEdges returns the number of edges.
func (X *Flag) NumEdges() int {
	return len(X.edges)
}

// Edges returns the sorted edges of X.  The caller must not modify the returned list.
func (X *Flag) Edges() EdgeList {
	return X.edges
}

// IsPlain returns true if X has no root vertices (i.e. X is a plain 3-graph).
func (X *Flag) IsPlain() bool {
	return X.typeSize == 0
}

// AddEdge adds the edge {Va, Vb, Vc}.  Adding an edge already present has no effect.
func (X *Flag) AddEdge(Va, Vb, Vc int) error {
	if Va > X.vtxCount || Vb > X.vtxCount || Vc > X.vtxCount {
		return errors.Wrapf(go3flag.ErrInvalidEdge, "(%d,%d,%d) exceeds Nv=%d", Va, Vb, Vc, X.vtxCount)
	}
	e, err := FormEdge(Va, Vb, Vc)
	if err != nil {
		return err
	}
	X.insertEdge(e)
	return nil
}

// insertEdge adds a valid edge, keeping X.edges sorted.
func (X *Flag) insertEdge(e Edge) {
	i := sort.Search(len(X.edges), func(i int) bool { return X.edges[i] >= e })
	if i < len(X.edges) && X.edges[i] == e {
		return
	}
	X.edges = append(X.edges, 0)
	copy(X.edges[i+1:], X.edges[i:])
	X.edges[i] = e
	X.canonic = false
}

// HasEdge reports whether {Va, Vb, Vc} is an edge of X.
func (X *Flag) HasEdge(Va, Vb, Vc int) bool {
	e, err := FormEdge(Va, Vb, Vc)
	if err != nil {
		return false
	}
	i := sort.Search(len(X.edges), func(i int) bool { return X.edges[i] >= e })
	return i < len(X.edges) && X.edges[i] == e
}

// Degrees returns the number of edges containing each vertex, where Degrees()[v-1] is the degree of vertex v.
func (X *Flag) Degrees() []int {
	deg := make([]int, X.vtxCount)
	for _, e := range X.edges {
		Va, Vb, Vc := e.Vtx()
		deg[Va-1]++
		deg[Vb-1]++
		deg[Vc-1]++
	}
	return deg
}

// MaxFreeDegree returns the largest degree among the non-root vertices, or 0 if there are none.
func (X *Flag) MaxFreeDegree() int {
	maxd := 0
	for _, d := range X.Degrees()[X.typeSize:] {
		if d > maxd {
			maxd = d
		}
	}
	return maxd
}

// checkPerm validates that perm is a permutation of 1..Nv.
func (X *Flag) checkPerm(perm []int) error {
	Nv := X.vtxCount
	if len(perm) != Nv {
		return errors.Wrapf(go3flag.ErrBadPermutation, "got %d labels for Nv=%d", len(perm), Nv)
	}
	var seen uint32
	for _, vi := range perm {
		if vi < 1 || vi > Nv || seen&(1<<vi) != 0 {
			return errors.Wrapf(go3flag.ErrBadPermutation, "%v", perm)
		}
		seen |= 1 << vi
	}
	return nil
}

// Relabel returns a new flag where each vertex v of X is renamed perm[v-1].  All vertices may move (roots included),
// so the result generally realizes a relabelled type.
func (X *Flag) Relabel(perm []int) (*Flag, error) {
	if err := X.checkPerm(perm); err != nil {
		return nil, err
	}
	Xr := X.Copy()
	Xr.edges.Remap(perm)
	Xr.canonic = false
	return Xr, nil
}

// RelabelFree is Relabel restricted to permutations that fix every root vertex.
func (X *Flag) RelabelFree(perm []int) (*Flag, error) {
	if err := X.checkPerm(perm); err != nil {
		return nil, err
	}
	for vi := 1; vi <= X.typeSize; vi++ {
		if perm[vi-1] != vi {
			return nil, errors.Wrapf(go3flag.ErrBadPermutation, "root %d moved to %d", vi, perm[vi-1])
		}
	}
	Xr := X.Copy()
	Xr.edges.Remap(perm)
	Xr.canonic = false
	return Xr, nil
}

// AsType returns a copy of X (which must be plain) with all of its vertices made roots.
func (X *Flag) AsType() (*Flag, error) {
	if !X.IsPlain() {
		return nil, errors.Wrapf(go3flag.ErrTypeNotPlain, "type %v", X)
	}
	Xt := X.Copy()
	Xt.typeSize = X.vtxCount
	Xt.canonic = false
	return Xt, nil
}

// TypeGraph returns the plain 3-graph induced on the root vertices of X.
func (X *Flag) TypeGraph() *Flag {
	roots := make([]int, X.typeSize)
	for i := range roots {
		roots[i] = i + 1
	}
	Xt, _ := X.Induced(roots)
	return Xt
}

// Induced returns the plain 3-graph induced by the given distinct vertices, where vertices[i] becomes vertex i+1.
func (X *Flag) Induced(vertices []int) (*Flag, error) {
	var remap [go3flag.MaxVtxID + 1]int
	for i, vi := range vertices {
		if vi < 1 || vi > X.vtxCount || remap[vi] != 0 {
			return nil, errors.Wrapf(go3flag.ErrBadVtxCount, "bad induced vertex set %v", vertices)
		}
		remap[vi] = i + 1
	}

	Xi := &Flag{
		vtxCount: len(vertices),
	}
	for _, e := range X.edges {
		Va, Vb, Vc := e.Vtx()
		if remap[Va] != 0 && remap[Vb] != 0 && remap[Vc] != 0 {
			Xi.edges = append(Xi.edges, formEdge(remap[Va], remap[Vb], remap[Vc]))
		}
	}
	sort.Sort(Xi.edges)
	return Xi, nil
}

// withNewVertex returns a copy of X with one more (free) vertex, plus an edge {a, b, Nv+1} for each given pair.
func (X *Flag) withNewVertex(pairs [][2]int, pick []int) *Flag {
	Nv := X.vtxCount + 1
	Xn := &Flag{
		vtxCount: Nv,
		typeSize: X.typeSize,
		edges:    make(EdgeList, len(X.edges), len(X.edges)+len(pick)),
	}
	copy(Xn.edges, X.edges)
	for _, pi := range pick {
		Xn.edges = append(Xn.edges, formEdge(pairs[pi][0], pairs[pi][1], Nv))
	}
	sort.Sort(Xn.edges)
	return Xn
}

// IsEqual returns true if X and other have identical vertex counts, type sizes and edge sets (no relabelling).
func (X *Flag) IsEqual(other *Flag) bool {
	return X.vtxCount == other.vtxCount && X.typeSize == other.typeSize && X.edges.Compare(other.edges) == 0
}

// String returns the flag expression for X, e.g. "4:(1,2,3)(1,2,4)" or "4:1:(2,3,4)" for a flag with one root.
func (X *Flag) String() string {
	b := strings.Builder{}
	b.Grow(8 + 8*len(X.edges))
	X.writeExpr(&b)
	return b.String()
}

func (X *Flag) writeExpr(out io.Writer) {
	if X.typeSize > 0 {
		fmt.Fprintf(out, "%d:%d:", X.vtxCount, X.typeSize)
	} else {
		fmt.Fprintf(out, "%d:", X.vtxCount)
	}
	for _, e := range X.edges {
		io.WriteString(out, e.String())
	}
}

// WriteAsString writes a single row describing X according to opts.
func (X *Flag) WriteAsString(out io.Writer, opts go3flag.PrintOpts) {
	if opts.Flag {
		X.writeExpr(out)
	}
	if opts.Edges {
		fmt.Fprintf(out, ",%d", len(X.edges))
	}
	if opts.Degrees {
		fmt.Fprintf(out, ",%v", X.Degrees())
	}
	if opts.Hash {
		fmt.Fprintf(out, ",%016x", X.Hash())
	}
}

func (X *Flag) Println(prefix string) {
	b := strings.Builder{}
	b.Grow(192)
	b.WriteString(prefix)
	X.WriteAsString(&b, go3flag.DefaultPrintOpts)
	fmt.Println(b.String())
}
