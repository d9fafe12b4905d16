package lib3flag

import (
	"sync"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/pkg/errors"
	"github.com/plan-systems/klog"
)

// GenOpts specifies how GenerateFlags runs.  The zero value is a sequential run using an in-memory map dedup set.
type GenOpts struct {
	Workers  int              // if > 1, candidate extensions are checked and canonized on this many goroutines
	DedupSet go3flag.DedupSet // CanonicSet kind used for isomorph rejection at each level
	OnLevel  func(Nv int, flags []*Flag)

	// newSet overrides NewCanonicSet(DedupSet) (used to inject failing sets in tests)
	newSet func() (CanonicSet, error)
}

// candidateBatchSz is the number of candidate extensions handed to the worker pool at a time.
const candidateBatchSz = 4096

// GenerateGraphs returns a canonic representative of every isomorphism class of 3-graphs on Nv vertices admitted by C.
func GenerateGraphs(Nv int, C Constraints, opts GenOpts) ([]*Flag, error) {
	return GenerateFlags(Nv, nil, C, opts)
}

// GenerateFlags returns a canonic representative of every isomorphism class of flags on Nv vertices of type tg
// admitted by C, where tg is a plain 3-graph whose vertices become the flags' roots (nil denotes no type).
//
// Levels are built bottom-up from the order of tg: each flag of order m-1 is extended by a vertex m of degree at
// least the flag's largest free vertex degree, in every possible way.  Every flag has a free vertex of maximum
// degree, and removing it leaves an admissible flag of the previous level, so this bound loses nothing.
// Extensions are checked against C only for vertex sets containing m, canonized, and dropped if already seen.
//
// The returned order is deterministic and does not depend on opts.Workers.
func GenerateFlags(Nv int, tg *Flag, C Constraints, opts GenOpts) ([]*Flag, error) {
	if Nv < 0 || Nv > go3flag.MaxVtxID {
		return nil, errors.Wrapf(go3flag.ErrBadVtxCount, "Nv=%d", Nv)
	}

	s := 0
	if tg != nil {
		if !tg.IsPlain() {
			return nil, errors.Wrapf(go3flag.ErrTypeNotPlain, "type %v", tg)
		}
		s = tg.vtxCount
	}

	if Nv < s {
		return []*Flag{}, nil
	}

	var base *Flag
	if tg == nil {
		base = &Flag{}
	} else {
		base, _ = tg.AsType()
	}
	base.canonic = true

	level := []*Flag{base}
	if opts.OnLevel != nil {
		opts.OnLevel(s, level)
	}

	for m := s + 1; m <= Nv; m++ {
		gen := levelGen{
			Nv:      m,
			C:       C,
			workers: opts.Workers,
			pairs:   make([][2]int, 0, binomial(m-1, 2)),
		}
		for a := 1; a < m; a++ {
			for b := a + 1; b < m; b++ {
				gen.pairs = append(gen.pairs, [2]int{a, b})
			}
		}

		var err error
		if opts.newSet != nil {
			gen.set, err = opts.newSet()
		} else {
			gen.set, err = NewCanonicSet(opts.DedupSet)
		}
		if err != nil {
			return nil, err
		}
		level = gen.extendAll(level)
		if err = gen.set.Close(); err != nil {
			return nil, err
		}

		klog.V(1).Infof("generated %d flags of order %d (type order %d)", len(level), m, s)
		if opts.OnLevel != nil {
			opts.OnLevel(m, level)
		}
	}

	return level, nil
}

// levelGen produces the flags of order Nv from those of order Nv-1.
type levelGen struct {
	Nv      int
	C       Constraints
	workers int
	pairs   [][2]int // vertex pairs {a, b} that can form an edge {a, b, Nv}
	set     CanonicSet
	next    []*Flag
}

func (gen *levelGen) extendAll(parents []*Flag) []*Flag {
	gen.next = make([]*Flag, 0, 2*len(parents))
	for _, sg := range parents {
		if gen.workers > 1 {
			gen.extendParallel(sg)
		} else {
			gen.extend(sg)
		}
	}
	return gen.next
}

func (gen *levelGen) emit(Xc *Flag) {
	if Xc != nil && gen.set.TryAdd(Xc) {
		gen.next = append(gen.next, Xc)
	}
}

// forEachPick calls fn with each set of new-vertex pairs that sg may be extended by, in ascending size.
func (gen *levelGen) forEachPick(sg *Flag, fn func(pick []int)) {
	maxd := sg.MaxFreeDegree()
	for ne := maxd; ne <= len(gen.pairs); ne++ {
		forEachCombination(len(gen.pairs), ne, func(pick []int) bool {
			fn(pick)
			return true
		})
	}
}

// tryPick returns the canonized extension of sg by the given pairs, or nil if it is not admissible.
func (gen *levelGen) tryPick(sg *Flag, pick []int) *Flag {
	Xn := sg.withNewVertex(gen.pairs, pick)
	if !gen.C.IsAdmissible(Xn, gen.Nv) {
		return nil
	}
	return Xn.Canonize()
}

func (gen *levelGen) extend(sg *Flag) {
	gen.forEachPick(sg, func(pick []int) {
		gen.emit(gen.tryPick(sg, pick))
	})
}

// extendParallel is extend where picks are evaluated in batches on a worker pool and emitted in pick order.
func (gen *levelGen) extendParallel(sg *Flag) {
	batch := make([][]int, 0, candidateBatchSz)
	results := make([]*Flag, candidateBatchSz)

	flush := func() {
		jobs := make(chan int, gen.workers)
		wg := sync.WaitGroup{}
		for w := 0; w < gen.workers; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					results[i] = gen.tryPick(sg, batch[i])
				}
			}()
		}
		for i := range batch {
			jobs <- i
		}
		close(jobs)
		wg.Wait()

		for i := range batch {
			gen.emit(results[i])
			results[i] = nil
		}
		batch = batch[:0]
	}

	gen.forEachPick(sg, func(pick []int) {
		batch = append(batch, append([]int(nil), pick...))
		if len(batch) == candidateBatchSz {
			flush()
		}
	})
	if len(batch) > 0 {
		flush()
	}
}
