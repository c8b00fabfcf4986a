package app

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/dataset"
	"github.com/blackwell-systems/rulemine/internal/output"
	"github.com/blackwell-systems/rulemine/internal/store"
)

var (
	datasetLoadName  string
	datasetLoadItems bool
)

var datasetCmd = &cobra.Command{
	Use:   "dataset",
	Short: "Manage stored transaction datasets",
	Long: `Load, list, inspect, and delete the transaction datasets stored in the
rulemine database. Stored datasets can be mined repeatedly with
'rulemine mine --dataset NAME' without re-reading the source file.`,
}

var datasetLoadCmd = &cobra.Command{
	Use:   "load <file>",
	Short: "Load a dataset file into the database",
	Example: `  # Load a text dataset (one record per line)
  rulemine dataset load sentences.txt --name sentences

  # Load a structured dataset (comma-separated items per line)
  rulemine dataset load baskets.csv --items`,
	Args: cobra.ExactArgs(1),
	RunE: runDatasetLoad,
}

var datasetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored datasets",
	Args:  cobra.NoArgs,
	RunE:  runDatasetList,
}

var datasetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a stored dataset's transactions",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetShow,
}

var datasetDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored dataset and its runs",
	Args:  cobra.ExactArgs(1),
	RunE:  runDatasetDelete,
}

func init() {
	datasetLoadCmd.Flags().StringVar(&datasetLoadName, "name", "", "dataset name (default: file base name)")
	datasetLoadCmd.Flags().BoolVar(&datasetLoadItems, "items", false, "treat the file as comma-separated item lists instead of free text")

	datasetCmd.AddCommand(datasetLoadCmd)
	datasetCmd.AddCommand(datasetListCmd)
	datasetCmd.AddCommand(datasetShowCmd)
	datasetCmd.AddCommand(datasetDeleteCmd)

	RootCmd.AddCommand(datasetCmd)
}

// openStore opens the configured database without creating the schema, so
// that read-only commands surface store.ErrNotInitialized on fresh setups.
func openStore() (*store.Store, error) {
	path, err := getDBPath()
	if err != nil {
		return nil, err
	}
	st, err := store.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return st, nil
}

func runDatasetLoad(cmd *cobra.Command, args []string) error {
	records, err := dataset.LoadFile(args[0])
	if err != nil {
		return err
	}
	if len(records) == 0 {
		return fmt.Errorf("%s contains no records", args[0])
	}

	format := dataset.FormatText
	if datasetLoadItems {
		format = dataset.FormatItems
	}

	name := datasetLoadName
	if name == "" {
		base := filepath.Base(args[0])
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	// Parse every record up front so malformed input is reported at load
	// time, and gather universe stats for the summary line.
	bar := output.NewProgress(len(records), "Parsing records...")
	universe := make(map[string]struct{})
	for _, record := range records {
		txs, err := dataset.Transactions([]string{record}, format)
		if err != nil {
			return err
		}
		for item := range txs[0] {
			universe[item] = struct{}{}
		}
		bar.Increment()
	}
	bar.Finish()

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.CreateSchema(); err != nil {
		return err
	}

	ds, err := st.SaveDataset(name, format, records)
	if err != nil {
		return err
	}

	fmt.Printf("Loaded dataset %q: %d records, %d distinct items.\n",
		ds.Name, ds.RecordCount, len(universe))
	fmt.Printf("Mine it with 'rulemine mine --dataset %s'.\n", ds.Name)
	return nil
}

func runDatasetList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	datasets, err := st.ListDatasets()
	if err != nil {
		return err
	}

	fmt.Print(output.RenderDatasetTable(datasets))
	return nil
}

func runDatasetShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	ds, err := st.GetDataset(args[0])
	if err != nil {
		return err
	}
	records, err := st.GetRecords(ds.ID)
	if err != nil {
		return err
	}

	transactions, err := dataset.Transactions(records, ds.Format)
	if err != nil {
		return err
	}

	fmt.Printf("Dataset %q (%s, %d records):\n", ds.Name, ds.Format, ds.RecordCount)
	fmt.Print(output.RenderTransactionTable(transactions))
	return nil
}

func runDatasetDelete(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.DeleteDataset(args[0]); err != nil {
		return err
	}

	fmt.Printf("Deleted dataset %q and its runs.\n", args[0])
	return nil
}
