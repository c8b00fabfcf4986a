package miner

import (
	"fmt"
	"sort"
)

// Universe returns the sorted set of distinct items appearing in at least
// one transaction. Enumeration draws only from this universe, and sorting it
// makes enumeration order reproducible across runs.
func Universe(transactions []Transaction) []string {
	seen := make(map[string]struct{})
	for _, tx := range transactions {
		for item := range tx {
			seen[item] = struct{}{}
		}
	}
	universe := make([]string, 0, len(seen))
	for item := range seen {
		universe = append(universe, item)
	}
	sort.Strings(universe)
	return universe
}

// EnumerateItemsets produces every distinct itemset of each size in
// [minSize, maxSize] drawn from the universe of items observed across the
// transactions. Canonical ordering means {a, b} is emitted once, never also
// as {b, a}, and the empty set is never emitted.
//
// Growth is combinatorial: C(|universe|, size) itemsets per size. That is
// the documented scalability ceiling of this engine.
func EnumerateItemsets(transactions []Transaction, minSize, maxSize int) ([]Itemset, error) {
	if minSize < 1 || maxSize < minSize {
		return nil, fmt.Errorf("%w: [%d, %d]", ErrInvalidSizeRange, minSize, maxSize)
	}

	universe := Universe(transactions)

	var sets []Itemset
	for size := minSize; size <= maxSize; size++ {
		combinations(universe, size, func(combo []string) {
			set := make(Itemset, size)
			copy(set, combo)
			sets = append(sets, set)
		})
	}
	return sets, nil
}

// combinations calls fn with every k-combination of items, in lexicographic
// index order. The slice passed to fn is reused between calls; fn must copy
// it if it retains it. No calls are made when k is 0 or exceeds len(items).
func combinations(items []string, k int, fn func([]string)) {
	n := len(items)
	if k <= 0 || k > n {
		return
	}

	idx := make([]int, k)
	for i := range idx {
		idx[i] = i
	}
	combo := make([]string, k)

	for {
		for i, j := range idx {
			combo[i] = items[j]
		}
		fn(combo)

		// Advance to the next combination: bump the rightmost index that
		// has room, then reset everything after it.
		i := k - 1
		for i >= 0 && idx[i] == n-k+i {
			i--
		}
		if i < 0 {
			return
		}
		idx[i]++
		for j := i + 1; j < k; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
}
