package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/miner"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	mineFlags   miningFlags
	mineItems   bool
	mineDataset string
	mineSave    bool
	mineSaveAs  string
)

var mineCmd = &cobra.Command{
	Use:   "mine [file]",
	Short: "Mine association rules from a dataset",
	Long: `Mine association rules from a dataset file or a stored dataset.

The engine enumerates every itemset of size --min-size to --max-size drawn
from the items observed in the dataset, keeps those with support at least
--min-support, splits each into every antecedent -> consequent partition, and
retains rules with confidence at least --min-confidence. Rules are ranked
descending by lift, then confidence, then support.

Support is the fraction of transactions containing an itemset. Confidence is
the support of the whole rule divided by the support of its antecedent. Lift
above 1 indicates the antecedent and consequent occur together more often
than their individual frequencies predict.

Defaults can be overridden per user in ~/.config/rulemine/defaults with
key=value lines (min_support, min_confidence, min_size, max_size, top).`,
	Example: `  # Mine a text file (one record per line)
  rulemine mine sentences.txt

  # Tighter thresholds, top 10 rules
  rulemine mine sentences.txt --min-support 0.25 --min-confidence 0.6 --top 10

  # Structured input: comma-separated items per line
  rulemine mine baskets.csv --items

  # Mine a stored dataset and persist the run
  rulemine mine --dataset baskets --save`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMine,
}

func init() {
	mineFlags.register(mineCmd)
	mineCmd.Flags().BoolVar(&mineItems, "items", false, "treat the file as comma-separated item lists instead of free text")
	mineCmd.Flags().StringVar(&mineDataset, "dataset", "", "mine a stored dataset by name instead of a file")
	mineCmd.Flags().BoolVar(&mineSave, "save", false, "persist the run (and the dataset, when mining a file)")
	mineCmd.Flags().StringVar(&mineSaveAs, "save-as", "", "dataset name to store the file under (default: file base name)")

	RootCmd.AddCommand(mineCmd)
}

func runMine(cmd *cobra.Command, args []string) error {
	if mineDataset != "" && len(args) > 0 {
		return fmt.Errorf("provide either a file or --dataset, not both")
	}
	if mineDataset == "" && len(args) == 0 {
		return fmt.Errorf("provide a dataset file or --dataset NAME")
	}
	if mineDataset != "" && mineItems {
		return fmt.Errorf("--items only applies to file input; a stored dataset keeps its format")
	}

	opts, top, err := mineFlags.resolve(cmd)
	if err != nil {
		return err
	}

	// The store is only needed for stored datasets and --save.
	var st *store.Store
	if mineDataset != "" || mineSave {
		path, err := getDBPath()
		if err != nil {
			return err
		}
		st, err = store.New(path)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer st.Close()
		if err := st.CreateSchema(); err != nil {
			return err
		}
	}

	var records []string
	var format string
	var datasetID int64
	var datasetName string

	if mineDataset != "" {
		ds, err := st.GetDataset(mineDataset)
		if err != nil {
			return err
		}
		records, err = st.GetRecords(ds.ID)
		if err != nil {
			return err
		}
		format = ds.Format
		datasetID = ds.ID
		datasetName = ds.Name
	} else {
		records, err = dataset.LoadFile(args[0])
		if err != nil {
			return err
		}
		format = dataset.FormatText
		if mineItems {
			format = dataset.FormatItems
		}
	}

	if len(records) == 0 {
		return fmt.Errorf("dataset contains no records; nothing to mine")
	}

	transactions, err := dataset.Transactions(records, format)
	if err != nil {
		return err
	}

	rules, err := miner.GenerateRules(transactions, opts)
	if err != nil {
		return err
	}

	fmt.Printf("Mined %d rules from %d transactions (min-support %.2f, min-confidence %.2f, sizes %d..%d)\n\n",
		len(rules), len(transactions), opts.MinSupport, opts.MinConfidence, opts.MinSize, opts.MaxSize)
	fmt.Print(output.RenderRuleTable(rules, top))

	if mineSave {
		if datasetID == 0 {
			datasetName = mineSaveAs
			if datasetName == "" {
				base := filepath.Base(args[0])
				datasetName = strings.TrimSuffix(base, filepath.Ext(base))
			}
			ds, err := st.SaveDataset(datasetName, format, records)
			if err != nil {
				return err
			}
			datasetID = ds.ID
		}

		runID, err := st.SaveRun(datasetID, opts, rules)
		if err != nil {
			return err
		}
		fmt.Printf("\nSaved run %d for dataset %q. View it later with 'rulemine rules %d'.\n",
			runID, datasetName, runID)
	}

	return nil
}
