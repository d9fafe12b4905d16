package lib3flag

import (
	"bytes"

	"github.com/2x3systems/go3flag/go3flag"
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
	"github.com/pkg/errors"
)

// FlagOrbits partitions flags (each of type tg) into orbits under relabelling of tg's vertices.  A nil tg denotes
// the empty type, under which only isomorphic flags share an orbit.
//
// Each flag is keyed by the least canonic encoding over all permutations of its roots (free vertices fixed),
// and flags with equal keys share an orbit.  Orbits are ascending and ordered by their first index.
func FlagOrbits(tg *Flag, flags []*Flag) (go3flag.OrbitSet, error) {
	s := 0
	if tg != nil {
		if !tg.IsPlain() {
			return nil, errors.Wrapf(go3flag.ErrTypeNotPlain, "type %v", tg)
		}
		s = tg.vtxCount
	}
	for i, fg := range flags {
		if fg.typeSize != s {
			return nil, errors.Wrapf(go3flag.ErrTypeMismatch, "flag %d (%v) has %d roots, type has %d", i, fg, fg.typeSize, s)
		}
	}

	byKey := redblacktree.NewWith(utils.StringComparator)
	for i, fg := range flags {
		key := string(fg.orbitKey())
		if val, found := byKey.Get(key); found {
			byKey.Put(key, append(val.(go3flag.Orbit), i))
		} else {
			byKey.Put(key, go3flag.Orbit{i})
		}
	}

	orbs := make(go3flag.OrbitSet, 0, byKey.Size())
	for it := byKey.Iterator(); it.Next(); {
		orbs = append(orbs, it.Value().(go3flag.Orbit))
	}
	orbs.Sort()
	return orbs, nil
}

// orbitKey returns the least canonic encoding of X over all permutations of its roots.
func (X *Flag) orbitKey() []byte {
	Nv := X.vtxCount
	permPlus := make([]int, Nv)
	for vi := X.typeSize + 1; vi <= Nv; vi++ {
		permPlus[vi-1] = vi
	}

	var minKey []byte
	buf := make([]byte, 0, 2+2*len(X.edges))
	forEachPermutation(X.typeSize, func(perm []int) bool {
		copy(permPlus, perm)
		Xr, _ := X.Relabel(permPlus)
		buf = Xr.Canonize().AppendEdgeEncoding(buf[:0])
		if minKey == nil || bytes.Compare(buf, minKey) < 0 {
			minKey = append(minKey[:0], buf...)
		}
		return true
	})
	return minKey
}
