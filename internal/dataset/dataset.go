// Package dataset loads transaction datasets for mining.
//
// Two record formats are supported:
//   - text: each line is a free-text record, tokenized by the miner
//   - items: each line is a comma-separated list of discrete items
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/blackwell-systems/rulemine/internal/miner"
)

// Record formats accepted by LoadFile and stored with each dataset.
const (
	FormatText  = "text"
	FormatItems = "items"
)

// ValidFormat reports whether the given format name is recognized.
func ValidFormat(format string) bool {
	return format == FormatText || format == FormatItems
}

// LoadFile reads one record per line from the file at path. Blank lines are
// skipped; a blank line carries no items, so keeping it would only add an
// empty transaction that never matches a rule.
func LoadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer f.Close()

	var records []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		records = append(records, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read dataset file %s: %w", path, err)
	}

	return records, nil
}

// ParseItems splits structured records into item lists: comma-separated,
// surrounding whitespace trimmed, empty items dropped. Items are otherwise
// taken as-is.
func ParseItems(records []string) [][]string {
	parsed := make([][]string, 0, len(records))
	for _, record := range records {
		var items []string
		for _, item := range strings.Split(record, ",") {
			item = strings.TrimSpace(item)
			if item == "" {
				continue
			}
			items = append(items, item)
		}
		parsed = append(parsed, items)
	}
	return parsed
}

// Transactions converts raw records to miner transactions according to the
// record format.
func Transactions(records []string, format string) ([]miner.Transaction, error) {
	switch format {
	case FormatText:
		return miner.Preprocess(records), nil
	case FormatItems:
		return miner.FromItems(ParseItems(records)), nil
	default:
		return nil, fmt.Errorf("unknown dataset format %q (expected %s or %s)",
			format, FormatText, FormatItems)
	}
}

// Sample returns the built-in demo dataset: eight sentences about data
// mining, one transaction each.
func Sample() []string {
	return []string{
		"Python data mining finds useful patterns",
		"Python machine learning and data mining",
		"Data mining and association rules in python",
		"Machine learning with python and pandas",
		"Association rules help data mining tasks",
		"Python pandas and data analysis for mining",
		"Learning association rules with data mining",
		"Python data science and machine learning",
	}
}
