package lib3flag

// forEachCombination calls fn with each k-subset of 0..N-1 (ascending indices) in lexicographic order.
// Enumeration stops early if fn returns false.  The pick slice is reused between calls.
func forEachCombination(N, k int, fn func(pick []int) bool) {
	if k < 0 || k > N {
		return
	}
	pick := make([]int, k)
	for i := range pick {
		pick[i] = i
	}
	for {
		if !fn(pick) {
			return
		}

		// Advance the rightmost index that still has room
		i := k - 1
		for i >= 0 && pick[i] == N-k+i {
			i--
		}
		if i < 0 {
			return
		}
		pick[i]++
		for j := i + 1; j < k; j++ {
			pick[j] = pick[j-1] + 1
		}
	}
}

// forEachPermutation calls fn with each permutation of 1..N in lexicographic order.
// Enumeration stops early if fn returns false.  The perm slice is reused between calls.
func forEachPermutation(N int, fn func(perm []int) bool) {
	perm := make([]int, N)
	for i := range perm {
		perm[i] = i + 1
	}
	for {
		if !fn(perm) {
			return
		}

		// Standard next-permutation step
		i := N - 2
		for i >= 0 && perm[i] > perm[i+1] {
			i--
		}
		if i < 0 {
			return
		}
		j := N - 1
		for perm[j] < perm[i] {
			j--
		}
		perm[i], perm[j] = perm[j], perm[i]
		for l, r := i+1, N-1; l < r; l, r = l+1, r-1 {
			perm[l], perm[r] = perm[r], perm[l]
		}
	}
}

// binomial returns N choose k.
func binomial(N, k int) int {
	if k < 0 || k > N {
		return 0
	}
	if k > N-k {
		k = N - k
	}
	c := 1
	for i := 1; i <= k; i++ {
		c = c * (N - k + i) / i
	}
	return c
}
