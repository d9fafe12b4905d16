package go3flag

import (
	"sort"

	"github.com/pkg/errors"
)

// Orbit is an ascending sequence of flag indices that are equivalent under relabelling of a type's root vertices.
type Orbit []int

// OrbitSet partitions the indices 0..N-1 of a flag list into orbits, sorted by each orbit's leading index.
type OrbitSet []Orbit

// NumFlags returns the total number of flag indices contained in this OrbitSet.
func (orbs OrbitSet) NumFlags() int {
	N := 0
	for _, orb := range orbs {
		N += len(orb)
	}
	return N
}

// InvariantSplit returns the dimensions of the invariant and anti-invariant blocks of a flag basis built from these orbits.
//
// Each orbit contributes one invariant row (the orbit sum) and len(orbit)-1 anti-invariant rows.
func (orbs OrbitSet) InvariantSplit() (inv, antiInv int) {
	inv = len(orbs)
	antiInv = orbs.NumFlags() - inv
	return
}

// Validate checks that these orbits are pairwise disjoint, ascending, and collectively cover 0..numFlags-1.
func (orbs OrbitSet) Validate(numFlags int) error {
	seen := make([]bool, numFlags)
	for oi, orb := range orbs {
		if len(orb) == 0 {
			return errors.Wrapf(ErrBadOrbits, "orbit %d is empty", oi)
		}
		for i, idx := range orb {
			if idx < 0 || idx >= numFlags {
				return errors.Wrapf(ErrBadOrbits, "orbit %d: index %d out of range", oi, idx)
			}
			if seen[idx] {
				return errors.Wrapf(ErrBadOrbits, "orbit %d: index %d appears twice", oi, idx)
			}
			if i > 0 && orb[i-1] >= idx {
				return errors.Wrapf(ErrBadOrbits, "orbit %d is not ascending", oi)
			}
			seen[idx] = true
		}
	}
	if N := orbs.NumFlags(); N != numFlags {
		return errors.Wrapf(ErrBadOrbits, "orbits cover %d of %d flags", N, numFlags)
	}
	return nil
}

// Sort orders orbits ascending by leading index.
func (orbs OrbitSet) Sort() {
	sort.Slice(orbs, func(i, j int) bool {
		return OrbitComparator(orbs[i], orbs[j]) < 0
	})
}

// OrbitComparator compares two orbits lexicographically.
func OrbitComparator(A, B Orbit) int {
	lenB := len(B)

	for i, ai := range A {
		if lenB == i {
			return 1
		}
		if d := ai - B[i]; d != 0 {
			return d
		}
	}

	if len(A) < lenB {
		return -1
	}

	return 0
}
