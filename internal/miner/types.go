// Package miner implements the association rule mining engine: building
// transactions from raw records, enumerating candidate itemsets, computing
// support, and deriving ranked antecedent -> consequent rules.
//
// The engine enumerates every itemset combination up to a bounded size, so it
// is intended for small item universes (demo and exploratory datasets), not
// production-scale frequent-itemset mining.
package miner

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNoTransactions is returned when support or rule generation is
	// requested over an empty transaction list.
	ErrNoTransactions = errors.New("miner: transaction list is empty")

	// ErrInvalidSizeRange is returned when the itemset size range is
	// malformed (min < 1 or max < min).
	ErrInvalidSizeRange = errors.New("miner: invalid itemset size range")

	// ErrInvalidThreshold is returned when min-support or min-confidence
	// falls outside [0, 1].
	ErrInvalidThreshold = errors.New("miner: threshold must be in [0, 1]")

	// ErrDegenerateSupport is returned when rule derivation encounters a
	// zero-support antecedent or consequent. With MinSupport > 0 this is
	// unreachable (an itemset's support never exceeds any subset's support),
	// so hitting it means the thresholds were misconfigured.
	ErrDegenerateSupport = errors.New("miner: zero-support itemset during rule derivation")
)

// Transaction is one record's set of items. Built once per input record and
// never mutated afterwards.
type Transaction map[string]struct{}

// NewTransaction builds a transaction from a list of items. Duplicates
// collapse; empty items are dropped.
func NewTransaction(items []string) Transaction {
	tx := make(Transaction, len(items))
	for _, item := range items {
		if item == "" {
			continue
		}
		tx[item] = struct{}{}
	}
	return tx
}

// Contains reports whether the transaction includes the given item.
func (t Transaction) Contains(item string) bool {
	_, ok := t[item]
	return ok
}

// Items returns the transaction's items in sorted order.
func (t Transaction) Items() []string {
	items := make([]string, 0, len(t))
	for item := range t {
		items = append(items, item)
	}
	sort.Strings(items)
	return items
}

// keySep separates items in a cache key. It cannot appear in a token: text
// preprocessing splits on whitespace and the structured form trims spaces.
const keySep = "\x1f"

// Itemset is a set of items kept in canonical sorted order with no
// duplicates. Two itemsets over the same items compare and hash equal via
// Key(), so itemsets can key the support cache.
type Itemset []string

// NewItemset builds a canonical itemset from the given items: copied,
// deduplicated, and sorted.
func NewItemset(items ...string) Itemset {
	set := make(Itemset, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		set = append(set, item)
	}
	sort.Strings(set)
	return set
}

// Key returns the canonical cache key for the itemset.
func (s Itemset) Key() string {
	return strings.Join(s, keySep)
}

// Contains reports whether the itemset includes the given item.
func (s Itemset) Contains(item string) bool {
	i := sort.SearchStrings(s, item)
	return i < len(s) && s[i] == item
}

// SubsetOf reports whether every item in the set appears in the transaction.
// The empty itemset is vacuously a subset of anything, but the enumerator
// never produces one.
func (s Itemset) SubsetOf(t Transaction) bool {
	for _, item := range s {
		if !t.Contains(item) {
			return false
		}
	}
	return true
}

// Difference returns the items of s not present in other, preserving
// canonical order.
func (s Itemset) Difference(other Itemset) Itemset {
	diff := make(Itemset, 0, len(s))
	for _, item := range s {
		if !other.Contains(item) {
			diff = append(diff, item)
		}
	}
	return diff
}

// String renders the itemset as "{a, b, c}".
func (s Itemset) String() string {
	return "{" + strings.Join(s, ", ") + "}"
}

// Rule is one mined association rule. Antecedent and consequent are disjoint,
// non-empty, and their union is the itemset whose support is recorded here.
// Rules are produced fresh per mining run and never mutated.
type Rule struct {
	Antecedent Itemset
	Consequent Itemset
	Support    float64 // support of antecedent union consequent
	Confidence float64 // union support / antecedent support
	Lift       float64 // confidence / consequent support
}

// String renders the rule as "{lhs} -> {rhs}".
func (r Rule) String() string {
	return r.Antecedent.String() + " -> " + r.Consequent.String()
}

// Options configures a mining run. Passed explicitly to GenerateRules; the
// engine reads no process-wide state.
type Options struct {
	// MinSupport gates itemsets before rule splitting. Must be in [0, 1].
	MinSupport float64

	// MinConfidence gates rules after metric computation. Must be in [0, 1].
	MinConfidence float64

	// MinSize and MaxSize bound the cardinality of itemsets considered for
	// rules. Rules always require at least two items, so an effective
	// minimum of max(MinSize, 2) applies during splitting. The support
	// cache is always built from size 1 so every antecedent and consequent
	// lookup hits.
	MinSize int
	MaxSize int
}

// DefaultOptions returns the default mining parameters: itemsets of size
// 1..3, min-support 0.2, min-confidence 0.5.
func DefaultOptions() Options {
	return Options{
		MinSupport:    0.2,
		MinConfidence: 0.5,
		MinSize:       1,
		MaxSize:       3,
	}
}

func (o Options) validate() error {
	if o.MinSupport < 0 || o.MinSupport > 1 {
		return fmt.Errorf("%w: min-support %v", ErrInvalidThreshold, o.MinSupport)
	}
	if o.MinConfidence < 0 || o.MinConfidence > 1 {
		return fmt.Errorf("%w: min-confidence %v", ErrInvalidThreshold, o.MinConfidence)
	}
	if o.MinSize < 1 || o.MaxSize < o.MinSize {
		return fmt.Errorf("%w: [%d, %d]", ErrInvalidSizeRange, o.MinSize, o.MaxSize)
	}
	return nil
}
