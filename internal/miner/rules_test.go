package miner

import (
	"errors"
	"reflect"
	"testing"
)

// sampleTexts mirrors the demo dataset shipped with the CLI: eight sentences,
// one transaction each.
var sampleTexts = []string{
	"Python data mining finds useful patterns",
	"Python machine learning and data mining",
	"Data mining and association rules in python",
	"Machine learning with python and pandas",
	"Association rules help data mining tasks",
	"Python pandas and data analysis for mining",
	"Learning association rules with data mining",
	"Python data science and machine learning",
}

// findRule returns the first rule matching the given antecedent and
// consequent, or nil.
func findRule(rules []Rule, antecedent, consequent Itemset) *Rule {
	for i := range rules {
		if rules[i].Antecedent.Key() == antecedent.Key() &&
			rules[i].Consequent.Key() == consequent.Key() {
			return &rules[i]
		}
	}
	return nil
}

func TestGenerateRules_BasketMetrics(t *testing.T) {
	opts := DefaultOptions()
	opts.MinSupport = 0.2
	opts.MinConfidence = 0.5

	rules, err := GenerateRules(basketTransactions(), opts)
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}

	rule := findRule(rules, NewItemset("milk"), NewItemset("bread"))
	if rule == nil {
		t.Fatal("rule {milk} -> {bread} not found")
	}

	// support({milk, bread}) = 2/5, support({milk}) = 3/5, support({bread}) = 4/5
	if !almostEqual(rule.Support, 2.0/5.0) {
		t.Errorf("support = %v, want 0.4", rule.Support)
	}
	if !almostEqual(rule.Confidence, (2.0/5.0)/(3.0/5.0)) {
		t.Errorf("confidence = %v, want 2/3", rule.Confidence)
	}
	if !almostEqual(rule.Lift, (2.0/5.0)/(3.0/5.0)/(4.0/5.0)) {
		t.Errorf("lift = %v, want 5/6", rule.Lift)
	}
}

func TestGenerateRules_RuleInvariants(t *testing.T) {
	rules, err := GenerateRules(basketTransactions(), DefaultOptions())
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}
	if len(rules) == 0 {
		t.Fatal("expected at least one rule from the basket dataset")
	}

	for _, rule := range rules {
		if len(rule.Antecedent) == 0 || len(rule.Consequent) == 0 {
			t.Errorf("rule %s has an empty side", rule)
		}
		for _, item := range rule.Antecedent {
			if rule.Consequent.Contains(item) {
				t.Errorf("rule %s: antecedent and consequent share item %q", rule, item)
			}
		}
		if rule.Support < 0 || rule.Support > 1 {
			t.Errorf("rule %s: support %v outside [0, 1]", rule, rule.Support)
		}
		if rule.Confidence < 0 || rule.Confidence > 1+floatTolerance {
			t.Errorf("rule %s: confidence %v outside [0, 1]", rule, rule.Confidence)
		}
		if rule.Lift < 0 {
			t.Errorf("rule %s: negative lift %v", rule, rule.Lift)
		}
	}
}

func TestGenerateRules_Deterministic(t *testing.T) {
	transactions := Preprocess(sampleTexts)
	opts := Options{MinSupport: 0.25, MinConfidence: 0.6, MinSize: 1, MaxSize: 3}

	first, err := GenerateRules(transactions, opts)
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}
	second, err := GenerateRules(transactions, opts)
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("two runs over identical input produced different ordered rule lists")
	}
}

func TestGenerateRules_RankingDescending(t *testing.T) {
	rules, err := GenerateRules(Preprocess(sampleTexts),
		Options{MinSupport: 0.25, MinConfidence: 0.6, MinSize: 1, MaxSize: 3})
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}

	for i := 1; i < len(rules); i++ {
		prev, cur := rules[i-1], rules[i]
		if prev.Lift < cur.Lift {
			t.Fatalf("rules not sorted by lift at %d: %v before %v", i, prev.Lift, cur.Lift)
		}
		if prev.Lift == cur.Lift && prev.Confidence < cur.Confidence {
			t.Fatalf("lift tie not broken by confidence at %d", i)
		}
		if prev.Lift == cur.Lift && prev.Confidence == cur.Confidence &&
			prev.Support < cur.Support {
			t.Fatalf("confidence tie not broken by support at %d", i)
		}
	}
}

func TestGenerateRules_TextScenarioThresholds(t *testing.T) {
	transactions := Preprocess(sampleTexts)
	rules, err := GenerateRules(transactions,
		Options{MinSupport: 0.25, MinConfidence: 0.6, MinSize: 1, MaxSize: 3})
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}

	// {python} -> {data}: support 5/8, confidence (5/8)/(6/8) = 5/6.
	rule := findRule(rules, NewItemset("python"), NewItemset("data"))
	if rule == nil {
		t.Fatal("rule {python} -> {data} not found")
	}
	if rule.Support < 0.25 {
		t.Errorf("support %v below min-support gate", rule.Support)
	}
	if rule.Confidence < 0.6 {
		t.Errorf("confidence %v below min-confidence gate", rule.Confidence)
	}

	// {mining} -> {and}: support({and, mining}) = 3/8 passes, but confidence
	// (3/8)/(6/8) = 0.5 fails the 0.6 gate.
	if r := findRule(rules, NewItemset("mining"), NewItemset("and")); r != nil {
		t.Errorf("rule {mining} -> {and} retained with confidence %v", r.Confidence)
	}

	// {python, science} has support 1/8, below min-support; no rule may use it.
	for _, r := range rules {
		union := NewItemset(append(append([]string{}, r.Antecedent...), r.Consequent...)...)
		if union.Key() == NewItemset("python", "science").Key() {
			t.Errorf("rule %s drawn from itemset below min-support", r)
		}
	}
}

func TestGenerateRules_MinConfidenceBoundaries(t *testing.T) {
	transactions := basketTransactions()

	// min-confidence 0 retains every partition of every qualifying itemset.
	all, err := GenerateRules(transactions,
		Options{MinSupport: 0.2, MinConfidence: 0, MinSize: 1, MaxSize: 3})
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}

	sets, err := EnumerateItemsets(transactions, 2, 3)
	if err != nil {
		t.Fatalf("EnumerateItemsets() failed: %v", err)
	}
	wantCount := 0
	for _, set := range sets {
		sup, err := Support(transactions, set)
		if err != nil {
			t.Fatalf("Support() failed: %v", err)
		}
		if sup >= 0.2 {
			// 2^k - 2 non-trivial partitions of a k-itemset.
			wantCount += (1 << len(set)) - 2
		}
	}
	if len(all) != wantCount {
		t.Errorf("min-confidence 0 retained %d rules, want %d", len(all), wantCount)
	}

	// min-confidence 1 keeps only rules where the antecedent never occurs
	// without the consequent.
	perfect, err := GenerateRules(transactions,
		Options{MinSupport: 0.2, MinConfidence: 1, MinSize: 1, MaxSize: 3})
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}
	for _, r := range perfect {
		if !almostEqual(r.Confidence, 1) {
			t.Errorf("rule %s retained at min-confidence 1 with confidence %v", r, r.Confidence)
		}
	}
	// Every transaction with beer also has bread.
	if findRule(perfect, NewItemset("beer"), NewItemset("bread")) == nil {
		t.Error("rule {beer} -> {bread} (confidence 1) not found")
	}
}

func TestGenerateRules_DegenerateSupportErrors(t *testing.T) {
	// a and b never co-occur, so {a, b, c} passes a zero min-support gate
	// while its consequent {a, b} has zero support.
	transactions := FromItems([][]string{
		{"a", "c"},
		{"b", "c"},
	})

	_, err := GenerateRules(transactions,
		Options{MinSupport: 0, MinConfidence: 0, MinSize: 1, MaxSize: 3})
	if !errors.Is(err, ErrDegenerateSupport) {
		t.Errorf("GenerateRules() error = %v, want ErrDegenerateSupport", err)
	}
}

func TestGenerateRules_InputValidation(t *testing.T) {
	tests := []struct {
		name string
		txs  []Transaction
		opts Options
		want error
	}{
		{"empty transactions", nil, DefaultOptions(), ErrNoTransactions},
		{"negative support", basketTransactions(),
			Options{MinSupport: -0.1, MinConfidence: 0.5, MinSize: 1, MaxSize: 3}, ErrInvalidThreshold},
		{"confidence above one", basketTransactions(),
			Options{MinSupport: 0.2, MinConfidence: 1.5, MinSize: 1, MaxSize: 3}, ErrInvalidThreshold},
		{"bad size range", basketTransactions(),
			Options{MinSupport: 0.2, MinConfidence: 0.5, MinSize: 3, MaxSize: 2}, ErrInvalidSizeRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GenerateRules(tt.txs, tt.opts)
			if !errors.Is(err, tt.want) {
				t.Errorf("GenerateRules() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestGenerateRules_MinSizeSkipsSmallItemsets(t *testing.T) {
	rules, err := GenerateRules(basketTransactions(),
		Options{MinSupport: 0.2, MinConfidence: 0, MinSize: 3, MaxSize: 3})
	if err != nil {
		t.Fatalf("GenerateRules() failed: %v", err)
	}

	for _, r := range rules {
		if len(r.Antecedent)+len(r.Consequent) != 3 {
			t.Errorf("rule %s drawn from itemset of size %d, want 3",
				r, len(r.Antecedent)+len(r.Consequent))
		}
	}
}
