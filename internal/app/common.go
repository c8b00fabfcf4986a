package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/rulemine/internal/config"
	"github.com/blackwell-systems/rulemine/internal/miner"
)

// miningFlags holds the threshold and size flags shared by the mine and
// watch commands.
type miningFlags struct {
	minSupport    float64
	minConfidence float64
	minSize       int
	maxSize       int
	top           int
}

// register adds the shared mining flags to a command. Displayed defaults are
// the engine's built-ins; the config-file defaults are merged in at run time
// so that an explicit flag always wins.
func (f *miningFlags) register(cmd *cobra.Command) {
	defaults := miner.DefaultOptions()
	cmd.Flags().Float64Var(&f.minSupport, "min-support", defaults.MinSupport,
		"minimum itemset support in [0, 1], applied before rule splitting")
	cmd.Flags().Float64Var(&f.minConfidence, "min-confidence", defaults.MinConfidence,
		"minimum rule confidence in [0, 1], applied after metric computation")
	cmd.Flags().IntVar(&f.minSize, "min-size", defaults.MinSize,
		"minimum itemset cardinality considered for rules")
	cmd.Flags().IntVar(&f.maxSize, "max-size", defaults.MaxSize,
		"maximum itemset cardinality considered for rules")
	cmd.Flags().IntVar(&f.top, "top", 20, "how many ranked rules to display (0 = all)")
}

// resolve merges the command's flags over the config-file defaults and
// validates the result. Precedence: explicit flag > defaults file >
// built-in.
func (f *miningFlags) resolve(cmd *cobra.Command) (miner.Options, int, error) {
	opts := miner.DefaultOptions()
	top := 20

	if dir, err := config.Dir(); err == nil {
		if cfg, err := config.LoadDefaults(dir); err == nil {
			opts = cfg.Options
			top = cfg.Top
		}
	}

	flags := cmd.Flags()
	if flags.Changed("min-support") {
		opts.MinSupport = f.minSupport
	}
	if flags.Changed("min-confidence") {
		opts.MinConfidence = f.minConfidence
	}
	if flags.Changed("min-size") {
		opts.MinSize = f.minSize
	}
	if flags.Changed("max-size") {
		opts.MaxSize = f.maxSize
	}
	if flags.Changed("top") {
		top = f.top
	}

	if err := validateParams(opts, top); err != nil {
		return miner.Options{}, 0, err
	}
	return opts, top, nil
}

// validateParams rejects out-of-range mining parameters with CLI-friendly
// messages before they reach the engine.
func validateParams(opts miner.Options, top int) error {
	if opts.MinSupport < 0 || opts.MinSupport > 1 {
		return fmt.Errorf("invalid --min-support %v: must be in [0, 1]", opts.MinSupport)
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return fmt.Errorf("invalid --min-confidence %v: must be in [0, 1]", opts.MinConfidence)
	}
	if opts.MinSize < 1 {
		return fmt.Errorf("invalid --min-size %d: must be at least 1", opts.MinSize)
	}
	if opts.MaxSize < opts.MinSize {
		return fmt.Errorf("invalid --max-size %d: must be >= --min-size (%d)", opts.MaxSize, opts.MinSize)
	}
	if top < 0 {
		return fmt.Errorf("invalid --top %d: must be 0 (all) or positive", top)
	}
	return nil
}
