package lib3flag

import (
	"fmt"
	"sort"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/pkg/errors"
)

// Edge is an unordered vertex triple packed as (Va << 10) | (Vb << 5) | Vc, where Va < Vb < Vc.
//
// Since Va occupies the most significant bits, comparing two Edges numerically is the same as comparing
// their sorted triples lexicographically.
type Edge uint16

const (
	edgeShiftA = 2 * go3flag.VtxIDBits
	edgeShiftB = go3flag.VtxIDBits
)

// FormEdge forms a canonic Edge from three distinct one-based vertex IDs given in any order.
func FormEdge(Va, Vb, Vc int) (Edge, error) {
	if Va < 1 || Vb < 1 || Vc < 1 || Va > go3flag.MaxVtxID || Vb > go3flag.MaxVtxID || Vc > go3flag.MaxVtxID {
		return 0, errors.Wrapf(go3flag.ErrInvalidEdge, "vertex out of range in (%d,%d,%d)", Va, Vb, Vc)
	}
	if Va == Vb || Vb == Vc || Va == Vc {
		return 0, errors.Wrapf(go3flag.ErrInvalidEdge, "repeated vertex in (%d,%d,%d)", Va, Vb, Vc)
	}
	return formEdge(Va, Vb, Vc), nil
}

// formEdge sorts the given (valid and distinct) vertex IDs and packs them.
func formEdge(Va, Vb, Vc int) Edge {
	if Va > Vb {
		Va, Vb = Vb, Va
	}
	if Vb > Vc {
		Vb, Vc = Vc, Vb
	}
	if Va > Vb {
		Va, Vb = Vb, Va
	}
	return Edge(Va<<edgeShiftA | Vb<<edgeShiftB | Vc)
}

// Vtx returns the three vertex IDs of this edge in ascending order.
func (e Edge) Vtx() (Va, Vb, Vc int) {
	Va = int(e>>edgeShiftA) & go3flag.VtxIDMask
	Vb = int(e>>edgeShiftB) & go3flag.VtxIDMask
	Vc = int(e) & go3flag.VtxIDMask
	return
}

// MaxVtx returns the largest vertex ID of this edge.
func (e Edge) MaxVtx() int {
	return int(e) & go3flag.VtxIDMask
}

// Mask returns a bitmask with bit v set for each vertex v of this edge.
func (e Edge) Mask() uint32 {
	Va, Vb, Vc := e.Vtx()
	return 1<<Va | 1<<Vb | 1<<Vc
}

// Contains returns true if v is one of this edge's vertices.
func (e Edge) Contains(v int) bool {
	return e.Mask()&(1<<v) != 0
}

// Remap returns this edge with each vertex v replaced by perm[v-1].
func (e Edge) Remap(perm []int) Edge {
	Va, Vb, Vc := e.Vtx()
	return formEdge(perm[Va-1], perm[Vb-1], perm[Vc-1])
}

func (e Edge) String() string {
	Va, Vb, Vc := e.Vtx()
	return fmt.Sprintf("(%d,%d,%d)", Va, Vb, Vc)
}

// EdgeList is a sequence of Edges, typically sorted ascending and free of duplicates.
type EdgeList []Edge

func (L EdgeList) Len() int           { return len(L) }
func (L EdgeList) Less(i, j int) bool { return L[i] < L[j] }
func (L EdgeList) Swap(i, j int)      { L[i], L[j] = L[j], L[i] }

// Compare compares two sorted edge lists lexicographically.
func (L EdgeList) Compare(other EdgeList) int {
	lenB := len(other)
	for i, ei := range L {
		if lenB == i {
			return 1
		}
		if ei != other[i] {
			if ei < other[i] {
				return -1
			}
			return 1
		}
	}
	if len(L) < lenB {
		return -1
	}
	return 0
}

// Remap replaces each edge with its remapped form and sorts the result in place.
func (L EdgeList) Remap(perm []int) {
	for i, e := range L {
		L[i] = e.Remap(perm)
	}
	sort.Sort(L)
}

// tripleSet is a dense membership table over ordered vertex triples of a graph with Nv vertices.
type tripleSet struct {
	Nv   int
	bits []uint64
}

func newTripleSet(Nv int, edges EdgeList) tripleSet {
	ts := tripleSet{
		Nv:   Nv,
		bits: make([]uint64, (Nv*Nv*Nv+63)>>6),
	}
	for _, e := range edges {
		ts.add(e)
	}
	return ts
}

func (ts *tripleSet) index(Va, Vb, Vc int) int {
	return ((Va-1)*ts.Nv+(Vb-1))*ts.Nv + (Vc - 1)
}

func (ts *tripleSet) add(e Edge) {
	Va, Vb, Vc := e.Vtx()
	i := ts.index(Va, Vb, Vc)
	ts.bits[i>>6] |= 1 << (i & 63)
}

// has reports whether the given three distinct vertices span an edge.
func (ts *tripleSet) has(Va, Vb, Vc int) bool {
	if Va > Vb {
		Va, Vb = Vb, Va
	}
	if Vb > Vc {
		Vb, Vc = Vc, Vb
	}
	if Va > Vb {
		Va, Vb = Vb, Va
	}
	i := ts.index(Va, Vb, Vc)
	return ts.bits[i>>6]&(1<<(i&63)) != 0
}
