package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for rulemine
	RootCmd = &cobra.Command{
		Use:   "rulemine",
		Short: "Association rule mining over transaction datasets",
		Long: `rulemine mines association rules from transaction datasets: it converts
records into item sets, enumerates candidate itemsets up to a bounded size,
and derives antecedent -> consequent rules ranked by lift, confidence, and
support.

The engine enumerates every itemset combination, so it is built for small,
exploratory datasets - not for production-scale frequent-itemset mining.

Dataset formats:
  text   one free-text record per line; tokens are lowercased and stripped
         of surrounding punctuation
  items  one comma-separated item list per line; items are taken as-is

Quick Start:
  1. rulemine demo
  2. rulemine mine baskets.txt --min-support 0.25 --min-confidence 0.6
  3. rulemine dataset load baskets.txt --name baskets
  4. rulemine mine --dataset baskets --save

Examples:
  # Mine a text file and show the top 10 rules
  rulemine mine sentences.txt --top 10

  # Mine a structured file (comma-separated items per line)
  rulemine mine baskets.csv --items

  # Re-mine automatically whenever the file changes
  rulemine watch sentences.txt

  # List stored datasets and past runs
  rulemine dataset list
  rulemine runs`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("rulemine: association rule mining over transaction datasets")
			fmt.Println()
			fmt.Println("Run 'rulemine demo' to see the engine on the built-in dataset.")
			fmt.Println("Run 'rulemine --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database path (default: ~/.rulemine/rulemine.db)")

	// Enable cobra's built-in suggestion feature for unknown subcommands
	RootCmd.SuggestionsMinimumDistance = 2
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}

// getDBPath returns the database path, using the flag value or default
func getDBPath() (string, error) {
	if dbPath != "" {
		return dbPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	// Create .rulemine directory if it doesn't exist
	rulemineDir := filepath.Join(home, ".rulemine")
	if err := os.MkdirAll(rulemineDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create rulemine directory: %w", err)
	}

	return filepath.Join(rulemineDir, "rulemine.db"), nil
}
