package app

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/miner"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/watcher"
)

var (
	watchFlags miningFlags
	watchItems bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Re-mine a dataset file whenever it changes",
	Long: `Mine the file once, then keep watching it and re-mine on every change
until interrupted with Ctrl-C. Useful while curating a dataset by hand:
edit the file, save, and the updated rules appear immediately.`,
	Example: `  rulemine watch sentences.txt --min-support 0.25 --min-confidence 0.6
  rulemine watch baskets.csv --items --top 5`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	watchFlags.register(watchCmd)
	watchCmd.Flags().BoolVar(&watchItems, "items", false, "treat the file as comma-separated item lists instead of free text")

	RootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	opts, top, err := watchFlags.resolve(cmd)
	if err != nil {
		return err
	}

	path := args[0]
	format := dataset.FormatText
	if watchItems {
		format = dataset.FormatItems
	}

	remine := func() {
		if err := mineFile(path, format, opts, top); err != nil {
			fmt.Fprintf(os.Stderr, "watch: %v\n", err)
		}
	}

	// Mine once up front; a missing or empty file at startup is fatal
	// rather than silently waited out.
	if err := mineFile(path, format, opts, top); err != nil {
		return err
	}

	w, err := watcher.New(path, remine)
	if err != nil {
		return err
	}
	if err := w.Start(); err != nil {
		return err
	}

	fmt.Printf("\nWatching %s for changes. Press Ctrl-C to stop.\n", path)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	return w.Stop()
}

// mineFile loads, mines, and renders one pass over the file.
func mineFile(path, format string, opts miner.Options, top int) error {
	records, err := dataset.LoadFile(path)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%s contains no records", path)
	}

	transactions, err := dataset.Transactions(records, format)
	if err != nil {
		return err
	}
	rules, err := miner.GenerateRules(transactions, opts)
	if err != nil {
		return err
	}

	fmt.Printf("[%s] %d transactions, %d rules\n",
		time.Now().Format("15:04:05"), len(transactions), len(rules))
	fmt.Print(output.RenderRuleTable(rules, top))
	return nil
}
