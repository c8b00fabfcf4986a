package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/miner"
	"github.com/blackwell-systems/rulemine/internal/output"
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Mine the built-in demo dataset",
	Long: `Run the engine over the built-in dataset of eight sentences about data
mining, using min-support 0.25 and min-confidence 0.60, and show the top 20
rules. A quick way to see what the output looks like before loading your
own data.`,
	Args: cobra.NoArgs,
	RunE: runDemo,
}

func init() {
	RootCmd.AddCommand(demoCmd)
}

func runDemo(cmd *cobra.Command, args []string) error {
	transactions := miner.Preprocess(dataset.Sample())

	fmt.Println("Transactions:")
	fmt.Print(output.RenderTransactionTable(transactions))

	opts := miner.Options{MinSupport: 0.25, MinConfidence: 0.6, MinSize: 1, MaxSize: 3}
	rules, err := miner.GenerateRules(transactions, opts)
	if err != nil {
		return err
	}

	fmt.Println("\nTop association rules (support >= 0.25, confidence >= 0.60):")
	fmt.Print(output.RenderRuleTable(rules, 20))
	return nil
}
