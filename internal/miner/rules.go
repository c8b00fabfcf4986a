package miner

import (
	"fmt"
	"sort"
)

// GenerateRules mines association rules from the transactions.
//
// The run proceeds in three phases:
//
//  1. Enumerate every itemset of size 1..opts.MaxSize and build a support
//     cache keyed by canonical itemset. Starting at size 1 regardless of
//     opts.MinSize guarantees every antecedent and consequent looked up in
//     phase 2 is already cached: any partition of an itemset of size <=
//     MaxSize has size >= 1 and <= MaxSize.
//  2. For every cached itemset of size >= 2 (and >= opts.MinSize) whose
//     support meets opts.MinSupport, split it into every non-trivial
//     (antecedent, consequent) partition, look both supports up in the
//     cache, and compute confidence and lift. Rules with confidence >=
//     opts.MinConfidence are retained.
//  3. Sort retained rules descending by (lift, confidence, support). The
//     sort is stable, so full ties keep enumeration-then-partition order and
//     identical inputs reproduce identical output.
//
// The cache lives only for the duration of the call; the engine keeps no
// state between runs. A zero-support antecedent or consequent returns
// ErrDegenerateSupport; that can only happen when MinSupport is 0.
func GenerateRules(transactions []Transaction, opts Options) ([]Rule, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if len(transactions) == 0 {
		return nil, ErrNoTransactions
	}

	sets, err := EnumerateItemsets(transactions, 1, opts.MaxSize)
	if err != nil {
		return nil, err
	}

	// The cache alone would lose enumeration order (map iteration order is
	// randomized), so phase 2 walks the itemset slice instead.
	cache := make(map[string]float64, len(sets))
	for _, set := range sets {
		sup, err := Support(transactions, set)
		if err != nil {
			return nil, err
		}
		cache[set.Key()] = sup
	}

	minSize := opts.MinSize
	if minSize < 2 {
		minSize = 2
	}

	var rules []Rule
	var derivErr error
	for _, set := range sets {
		if len(set) < minSize {
			continue
		}
		unionSupport := cache[set.Key()]
		if unionSupport < opts.MinSupport {
			continue
		}

		for anteSize := 1; anteSize < len(set); anteSize++ {
			combinations(set, anteSize, func(combo []string) {
				if derivErr != nil {
					return
				}

				// combo is drawn in order from the sorted itemset, so both
				// halves are already canonical.
				antecedent := make(Itemset, anteSize)
				copy(antecedent, combo)
				consequent := set.Difference(antecedent)

				anteSupport := cache[antecedent.Key()]
				consSupport := cache[consequent.Key()]
				if anteSupport == 0 || consSupport == 0 {
					derivErr = fmt.Errorf("%w: %s -> %s (min-support %v)",
						ErrDegenerateSupport, antecedent, consequent, opts.MinSupport)
					return
				}

				confidence := unionSupport / anteSupport
				if confidence < opts.MinConfidence {
					return
				}

				rules = append(rules, Rule{
					Antecedent: antecedent,
					Consequent: consequent,
					Support:    unionSupport,
					Confidence: confidence,
					Lift:       confidence / consSupport,
				})
			})
		}
		if derivErr != nil {
			return nil, derivErr
		}
	}

	sortRules(rules)
	return rules, nil
}

// sortRules orders rules descending by lift, then confidence, then support.
// Stable so that fully tied rules keep their derivation order.
func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Lift != rules[j].Lift {
			return rules[i].Lift > rules[j].Lift
		}
		if rules[i].Confidence != rules[j].Confidence {
			return rules[i].Confidence > rules[j].Confidence
		}
		return rules[i].Support > rules[j].Support
	})
}
