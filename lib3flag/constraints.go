package lib3flag

import (
	"fmt"
	"sort"
	"strings"
)

// EdgeBound specifies that every K-subset of vertices spans fewer than Bound edges.
type EdgeBound struct {
	K     int
	Bound int
}

// Constraints is an immutable set of admissibility constraints on 3-graphs and flags.
//
// The zero value admits everything.  The With* methods return a modified copy and never change the receiver,
// so a Constraints value can be shared across goroutines and generator levels.
type Constraints struct {
	edgeBounds       []EdgeBound // sorted by K
	forbidden        []*Flag
	forbiddenInduced []*Flag
}

// NewConstraints forms a Constraints from an edge bound map (k => v: k-sets span fewer than v edges) and
// lists of graphs forbidden as subgraphs and as induced subgraphs.
func NewConstraints(edgeBounds map[int]int, forbidden, forbiddenInduced []*Flag) Constraints {
	var C Constraints
	for k, v := range edgeBounds {
		C = C.WithEdgeBound(k, v)
	}
	for _, H := range forbidden {
		C = C.WithForbidden(H)
	}
	for _, H := range forbiddenInduced {
		C = C.WithForbiddenInduced(H)
	}
	return C
}

// WithEdgeBound returns a copy of C where every k-set must span fewer than v edges, replacing any previous bound for k.
func (C Constraints) WithEdgeBound(k, v int) Constraints {
	bounds := make([]EdgeBound, 0, len(C.edgeBounds)+1)
	for _, eb := range C.edgeBounds {
		if eb.K != k {
			bounds = append(bounds, eb)
		}
	}
	bounds = append(bounds, EdgeBound{K: k, Bound: v})
	sort.Slice(bounds, func(i, j int) bool { return bounds[i].K < bounds[j].K })
	C.edgeBounds = bounds
	return C
}

// WithForbidden returns a copy of C that also forbids H (taken as a plain 3-graph) as a subgraph.
func (C Constraints) WithForbidden(H *Flag) Constraints {
	C.forbidden = append(append([]*Flag(nil), C.forbidden...), H.Copy())
	return C
}

// WithForbiddenInduced returns a copy of C that also forbids H (taken as a plain 3-graph) as an induced subgraph.
func (C Constraints) WithForbiddenInduced(H *Flag) Constraints {
	C.forbiddenInduced = append(append([]*Flag(nil), C.forbiddenInduced...), H.Copy())
	return C
}

// EdgeBounds returns the edge bounds of C, sorted by K.
func (C Constraints) EdgeBounds() []EdgeBound {
	return append([]EdgeBound(nil), C.edgeBounds...)
}

// Forbidden returns the graphs forbidden as subgraphs.  The caller must not modify them.
func (C Constraints) Forbidden() []*Flag {
	return append([]*Flag(nil), C.forbidden...)
}

// ForbiddenInduced returns the graphs forbidden as induced subgraphs.  The caller must not modify them.
func (C Constraints) ForbiddenInduced() []*Flag {
	return append([]*Flag(nil), C.forbiddenInduced...)
}

// IsEmpty returns true if C admits every 3-graph.
func (C Constraints) IsEmpty() bool {
	return len(C.edgeBounds) == 0 && len(C.forbidden) == 0 && len(C.forbiddenInduced) == 0
}

// String returns C as a constraint expression accepted by ParseConstraints.
func (C Constraints) String() string {
	var clauses []string
	for _, eb := range C.edgeBounds {
		clauses = append(clauses, fmt.Sprintf("span %d < %d", eb.K, eb.Bound))
	}
	for _, H := range C.forbidden {
		clauses = append(clauses, "forbid "+plainExpr(H))
	}
	for _, H := range C.forbiddenInduced {
		clauses = append(clauses, "induced "+plainExpr(H))
	}
	return strings.Join(clauses, "; ")
}

func plainExpr(H *Flag) string {
	if H.IsPlain() {
		return H.String()
	}
	Hp := H.Copy()
	Hp.typeSize = 0
	return Hp.String()
}

// IsAdmissible returns true if X violates none of the constraints in C.
//
// If focusVtx is a vertex of X (1..Nv), only vertex subsets and embeddings that include focusVtx are examined.
// This gives the same result as a full check provided X with focusVtx removed is already known to be admissible,
// which is what the generator guarantees when focusVtx is the most recently added vertex.  Pass 0 for a full check.
//
// Constraints are checked in order (edge bounds by ascending K, forbidden, forbidden induced) and the first
// violation ends the check.
func (C Constraints) IsAdmissible(X *Flag, focusVtx int) bool {
	if focusVtx < 0 || focusVtx > X.vtxCount {
		focusVtx = 0
	}

	for _, eb := range C.edgeBounds {
		if X.exceedsEdgeBound(eb, focusVtx) {
			return false
		}
	}

	if len(C.forbidden) == 0 && len(C.forbiddenInduced) == 0 {
		return true
	}

	G := newTripleSet(X.vtxCount, X.edges)
	for _, H := range C.forbidden {
		if containsSubgraph(&G, H, false, focusVtx) {
			return false
		}
	}
	for _, H := range C.forbiddenInduced {
		if containsSubgraph(&G, H, true, focusVtx) {
			return false
		}
	}
	return true
}

// exceedsEdgeBound returns true if some eb.K-set of X's vertices (containing focusVtx, if non-zero) spans eb.Bound or more edges.
func (X *Flag) exceedsEdgeBound(eb EdgeBound, focusVtx int) bool {
	Nv := X.vtxCount
	if eb.K > Nv || eb.Bound > binomial(eb.K, 3) || len(X.edges) < eb.Bound {
		return false
	}

	edgeMasks := make([]uint32, len(X.edges))
	for i, e := range X.edges {
		edgeMasks[i] = e.Mask()
	}

	pool := make([]int, 0, Nv)
	pick := eb.K
	var baseMask uint32
	for vi := 1; vi <= Nv; vi++ {
		if vi == focusVtx {
			continue
		}
		pool = append(pool, vi)
	}
	if focusVtx != 0 {
		baseMask = 1 << focusVtx
		pick--
	}

	exceeded := false
	forEachCombination(len(pool), pick, func(idx []int) bool {
		mask := baseMask
		for _, i := range idx {
			mask |= 1 << pool[i]
		}
		count := 0
		for _, em := range edgeMasks {
			if em&^mask == 0 {
				count++
			}
		}
		exceeded = count >= eb.Bound
		return !exceeded
	})
	return exceeded
}

// containsSubgraph returns true if there is an injection of H's vertices into G's vertices (with focusVtx in its image,
// if non-zero) mapping every edge of H to an edge of G and, if induced is set, every non-edge of H to a non-edge of G.
func containsSubgraph(G *tripleSet, H *Flag, induced bool, focusVtx int) bool {
	Nh := H.vtxCount
	if Nh > G.Nv {
		return false
	}
	if Nh == 0 {
		return focusVtx == 0
	}

	em := embedder{
		G:        G,
		H:        newTripleSet(Nh, H.edges),
		Nh:       Nh,
		induced:  induced,
		focusVtx: focusVtx,
		img:      make([]int, Nh+1),
		edgesTo:  make([][]Edge, Nh+1),
	}
	for _, e := range H.edges {
		em.edgesTo[e.MaxVtx()] = append(em.edgesTo[e.MaxVtx()], e)
	}
	return em.extend(1)
}

// embedder assigns H's vertices 1..Nh to G's vertices in order, backtracking on the first mismatched (non-)edge.
type embedder struct {
	G        *tripleSet
	H        tripleSet
	Nh       int
	induced  bool
	focusVtx int
	img      []int    // img[i] is the G vertex assigned to H vertex i
	edgesTo  [][]Edge // edgesTo[i] lists H's edges whose largest vertex is i
	used     uint32
}

func (em *embedder) extend(hi int) bool {
	if hi > em.Nh {
		return true
	}

	// The last H vertex must land on the focus vertex if nothing has so far
	lo, hiV := 1, em.G.Nv
	if em.focusVtx != 0 && hi == em.Nh && em.used&(1<<em.focusVtx) == 0 {
		lo, hiV = em.focusVtx, em.focusVtx
	}

	for gv := lo; gv <= hiV; gv++ {
		if em.used&(1<<gv) != 0 || !em.fits(hi, gv) {
			continue
		}
		em.img[hi] = gv
		em.used |= 1 << gv
		if em.extend(hi + 1) {
			return true
		}
		em.used &^= 1 << gv
	}
	return false
}

// fits checks the (non-)edges between H vertex hi (placed at gv) and the already placed H vertices 1..hi-1.
func (em *embedder) fits(hi, gv int) bool {
	for _, e := range em.edgesTo[hi] {
		Va, Vb, _ := e.Vtx()
		if !em.G.has(em.img[Va], em.img[Vb], gv) {
			return false
		}
	}
	if em.induced {
		for a := 1; a < hi; a++ {
			for b := a + 1; b < hi; b++ {
				if !em.H.has(a, b, hi) && em.G.has(em.img[a], em.img[b], gv) {
					return false
				}
			}
		}
	}
	return true
}
