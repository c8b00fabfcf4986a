package miner

// Support computes the fraction of transactions that contain the itemset as
// a subset. Returns ErrNoTransactions on an empty transaction list rather
// than dividing by zero; callers must guarantee at least one transaction.
//
// O(len(transactions) * len(set)) per call, no side effects.
func Support(transactions []Transaction, set Itemset) (float64, error) {
	if len(transactions) == 0 {
		return 0, ErrNoTransactions
	}

	count := 0
	for _, tx := range transactions {
		if set.SubsetOf(tx) {
			count++
		}
	}
	return float64(count) / float64(len(transactions)), nil
}
