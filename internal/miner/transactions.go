package miner

import "strings"

// tokenCutset is the punctuation stripped from both ends of each token
// during text preprocessing.
const tokenCutset = ".,!?;:"

// Preprocess converts raw text records into transactions: each record is
// split on whitespace, tokens are trimmed of surrounding punctuation and
// lowercased, empty tokens are dropped, and the remainder collapses into a
// set. A record that yields no tokens produces an empty transaction, not an
// error; it simply never matches a non-empty itemset.
func Preprocess(records []string) []Transaction {
	transactions := make([]Transaction, 0, len(records))
	for _, record := range records {
		tx := make(Transaction)
		for _, token := range strings.Fields(record) {
			token = strings.ToLower(strings.Trim(token, tokenCutset))
			if token == "" {
				continue
			}
			tx[token] = struct{}{}
		}
		transactions = append(transactions, tx)
	}
	return transactions
}

// FromItems converts pre-structured records into transactions. Each record's
// items are taken as-is (already discrete tokens) and coerced to a set;
// duplicates within a record collapse.
func FromItems(records [][]string) []Transaction {
	transactions := make([]Transaction, 0, len(records))
	for _, record := range records {
		transactions = append(transactions, NewTransaction(record))
	}
	return transactions
}
