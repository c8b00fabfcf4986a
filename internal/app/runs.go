package app

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/output"
)

var rulesTop int

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List stored mining runs",
	Long: `List mining runs persisted with 'rulemine mine --save', newest first.
Each run records its dataset, thresholds, size range, and rule count.`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

var rulesCmd = &cobra.Command{
	Use:   "rules <run-id>",
	Short: "Show the ranked rules of a stored mining run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRules,
}

func init() {
	rulesCmd.Flags().IntVar(&rulesTop, "top", 0, "how many ranked rules to display (0 = all)")

	RootCmd.AddCommand(runsCmd)
	RootCmd.AddCommand(rulesCmd)
}

func runRuns(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	runs, err := st.ListRuns()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRunTable(runs))
	return nil
}

func runRules(cmd *cobra.Command, args []string) error {
	runID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid run id %q: must be a number", args[0])
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	run, err := st.GetRun(runID)
	if err != nil {
		return err
	}
	rules, err := st.GetRules(runID)
	if err != nil {
		return err
	}

	fmt.Printf("Run %d on dataset %q (min-support %.2f, min-confidence %.2f, sizes %d..%d):\n\n",
		run.ID, run.DatasetName, run.MinSupport, run.MinConfidence, run.MinSize, run.MaxSize)
	fmt.Print(output.RenderRuleTable(rules, rulesTop))
	return nil
}
