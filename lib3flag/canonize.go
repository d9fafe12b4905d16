package lib3flag

import (
	"encoding/binary"
	"sort"

	"lukechampine.com/blake3"
)

// Canonize returns the canonic representative of X's isomorphism class: the relabelling of X's free vertices
// (roots stay in place) whose sorted edge list is lexicographically least.
func (X *Flag) Canonize() *Flag {
	if X.canonic {
		return X.Copy()
	}
	perm := X.canonicPerm()
	Xc := X.Copy()
	Xc.edges.Remap(perm)
	Xc.canonic = true
	return Xc
}

// IsCanonic returns true if X is known to already be in canonic form.
func (X *Flag) IsCanonic() bool {
	return X.canonic
}

// IsIsomorphic returns true if there is a relabelling of free vertices mapping X onto other.
func (X *Flag) IsIsomorphic(other *Flag) bool {
	if X.vtxCount != other.vtxCount || X.typeSize != other.typeSize || len(X.edges) != len(other.edges) {
		return false
	}
	return X.Canonize().IsEqual(other.Canonize())
}

// AppendEdgeEncoding appends X's vertex count, type size and edges (as is) in a fixed width byte format.
//
// For two flags with the same vertex count, type size and edge count, comparing these encodings bytewise is the
// same as comparing their sorted edge lists lexicographically.
func (X *Flag) AppendEdgeEncoding(out []byte) []byte {
	out = append(out, byte(X.vtxCount), byte(X.typeSize))
	for _, e := range X.edges {
		out = binary.BigEndian.AppendUint16(out, uint16(e))
	}
	return out
}

// CanonicEncoding returns the edge encoding of X's canonic form.
func (X *Flag) CanonicEncoding() []byte {
	Xc := X
	if !X.canonic {
		Xc = X.Canonize()
	}
	return Xc.AppendEdgeEncoding(make([]byte, 0, 2+2*len(X.edges)))
}

// Hash returns a stable 64 bit content hash of X's canonic form.
func (X *Flag) Hash() uint64 {
	return HashEncoding(X.CanonicEncoding())
}

// HashEncoding returns a stable 64 bit hash of the given encoding.
func HashEncoding(enc []byte) uint64 {
	sum := blake3.Sum256(enc)
	return binary.BigEndian.Uint64(sum[:8])
}

// canonicPerm returns perm, where perm[v-1] is the canonic label of vertex v.
//
// Free vertices are given labels Nt+1, Nt+2, .. one at a time, and a branch is abandoned once the part of its sorted
// edge list already fixed by the labels given so far is no less than the best list found.  Higher degree vertices are
// tried first since they tend to lead to small lists early.
func (X *Flag) canonicPerm() []int {
	Nv := X.vtxCount
	Nt := X.typeSize

	perm := make([]int, Nv)
	if Nv-Nt <= 1 || len(X.edges) == 0 {
		for vi := 1; vi <= Nv; vi++ {
			perm[vi-1] = vi
		}
		return perm
	}
	for vi := 1; vi <= Nt; vi++ {
		perm[vi-1] = vi
	}

	deg := X.Degrees()
	order := make([]int, 0, Nv-Nt)
	for vi := Nt + 1; vi <= Nv; vi++ {
		order = append(order, vi)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return deg[order[i]-1] > deg[order[j]-1]
	})

	cz := canonizer{
		X:     X,
		order: order,
		perm:  perm,
		known: make(EdgeList, 0, len(X.edges)),
	}
	cz.search(Nt)
	return cz.bestPerm
}

// canonizer is a branch and bound search for the least sorted edge list over all labellings of the free vertices.
type canonizer struct {
	X        *Flag
	order    []int    // free vertices in the order they are tried
	perm     []int    // perm[v-1] is the label given to v, or 0 if v has none yet
	known    EdgeList // edges whose vertices are all labelled, sorted
	best     EdgeList
	bestPerm []int
}

// search tries each unlabelled vertex as the holder of label L+1, given that labels 1..L are in use.
func (cz *canonizer) search(L int) {
	if L == cz.X.vtxCount {
		cz.collect(L)
		cz.best = append(cz.best[:0], cz.known...)
		cz.bestPerm = append(cz.bestPerm[:0], cz.perm...)
		return
	}
	for _, vi := range cz.order {
		if cz.perm[vi-1] != 0 {
			continue
		}
		cz.perm[vi-1] = L + 1
		if !cz.cannotImprove(L + 1) {
			cz.search(L + 1)
		}
		cz.perm[vi-1] = 0
	}
}

// collect fills cz.known given that labels 1..L are in use and returns the least edge that any edge with an
// unlabelled vertex can end up as (open is false if there are no such edges).
func (cz *canonizer) collect(L int) (bound Edge, open bool) {
	cz.known = cz.known[:0]
	for _, e := range cz.X.edges {
		Va, Vb, Vc := e.Vtx()

		var lbl [3]int
		n := 0
		for _, li := range [3]int{cz.perm[Va-1], cz.perm[Vb-1], cz.perm[Vc-1]} {
			if li != 0 {
				lbl[n] = li
				n++
			}
		}

		// Unlabelled vertices will receive labels above L
		var lo Edge
		switch n {
		case 3:
			cz.known = append(cz.known, formEdge(lbl[0], lbl[1], lbl[2]))
			continue
		case 2:
			lo = formEdge(lbl[0], lbl[1], L+1)
		case 1:
			lo = formEdge(lbl[0], L+1, L+2)
		default:
			lo = formEdge(L+1, L+2, L+3)
		}
		if !open || lo < bound {
			bound, open = lo, true
		}
	}
	sort.Sort(cz.known)
	return
}

// cannotImprove returns true if every completion of the labelling 1..L yields an edge list no less than cz.best.
//
// Known edges below bound are exactly the leading edges of any completion, and the edge after them is at least bound.
func (cz *canonizer) cannotImprove(L int) bool {
	bound, open := cz.collect(L)
	if cz.bestPerm == nil {
		return false
	}

	k := 0
	for _, e := range cz.known {
		if open && e > bound {
			break
		}
		if e != cz.best[k] {
			return e > cz.best[k]
		}
		k++
	}
	if !open {
		return true
	}
	return bound > cz.best[k]
}
