// Package output provides terminal output utilities for rulemine.
//
// This package includes:
//   - Table rendering for mined rules, transactions, datasets, and runs
//   - A progress bar for support-cache construction over large universes
//   - Human-readable formatting for metrics and timestamps
//
// All table rendering uses ASCII characters and ANSI color codes for
// terminal output. Color is gated on stdout being a TTY and NO_COLOR being
// unset.
package output

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/blackwell-systems/rulemine/internal/miner"
	"github.com/blackwell-systems/rulemine/internal/store"
)

// ANSI color codes for lift display
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorRed    = "\033[31m"
)

// IsColorEnabled returns true if ANSI color codes should be emitted.
// It checks that os.Stdout is a TTY and that the NO_COLOR env var is not set.
func IsColorEnabled() bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// colorize wraps text in the given ANSI color code if color is enabled,
// otherwise returns the plain text.
func colorize(color, text string) string {
	if IsColorEnabled() {
		return color + text + colorReset
	}
	return text
}

// liftColor picks a color for a lift value: green above 1 (positive
// association), red below 1 (negative association), yellow at 1.
func liftColor(lift float64) string {
	switch {
	case lift > 1:
		return colorGreen
	case lift < 1:
		return colorRed
	default:
		return colorYellow
	}
}

// RenderRuleTable renders the top rules of a mining run. Rules are expected
// to be pre-ranked by the miner; no re-sorting happens here. A top value of
// 0 or less renders every rule.
func RenderRuleTable(rules []miner.Rule, top int) string {
	if len(rules) == 0 {
		return "No rules met the support and confidence thresholds.\n"
	}

	if top > 0 && top < len(rules) {
		rules = rules[:top]
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-36s %-9s %-11s %s\n",
		"Rule", "Support", "Confidence", "Lift"))
	sb.WriteString(strings.Repeat("─", 64))
	sb.WriteString("\n")

	for _, rule := range rules {
		liftStr := fmt.Sprintf("%.2f", rule.Lift)
		sb.WriteString(fmt.Sprintf("%-36s %-9s %-11s %s\n",
			truncate(rule.String(), 36),
			fmt.Sprintf("%.2f", rule.Support),
			fmt.Sprintf("%.2f", rule.Confidence),
			colorize(liftColor(rule.Lift), liftStr)))
	}

	return sb.String()
}

// RenderTransactionTable renders numbered transactions, one per line:
// "T1: [bread milk]".
func RenderTransactionTable(transactions []miner.Transaction) string {
	if len(transactions) == 0 {
		return "No transactions.\n"
	}

	var sb strings.Builder
	for i, tx := range transactions {
		sb.WriteString(fmt.Sprintf("T%d: %v\n", i+1, tx.Items()))
	}
	return sb.String()
}

// RenderDatasetTable renders a table of stored datasets.
func RenderDatasetTable(datasets []*store.Dataset) string {
	if len(datasets) == 0 {
		return "No datasets found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-20s %-8s %-9s %s\n",
		"Dataset", "Format", "Records", "Loaded"))
	sb.WriteString(strings.Repeat("─", 56))
	sb.WriteString("\n")

	for _, ds := range datasets {
		sb.WriteString(fmt.Sprintf("%-20s %-8s %-9d %s\n",
			truncate(ds.Name, 20),
			ds.Format,
			ds.RecordCount,
			formatRelativeTime(ds.CreatedAt)))
	}

	return sb.String()
}

// RenderRunTable renders a table of stored mining runs, newest first as
// returned by the store.
func RenderRunTable(runs []*store.Run) string {
	if len(runs) == 0 {
		return "No mining runs found.\n"
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("%-5s %-20s %-9s %-11s %-7s %-7s %s\n",
		"ID", "Dataset", "Support", "Confidence", "Sizes", "Rules", "Mined"))
	sb.WriteString(strings.Repeat("─", 76))
	sb.WriteString("\n")

	for _, run := range runs {
		sb.WriteString(fmt.Sprintf("%-5d %-20s %-9s %-11s %-7s %-7d %s\n",
			run.ID,
			truncate(run.DatasetName, 20),
			fmt.Sprintf("%.2f", run.MinSupport),
			fmt.Sprintf("%.2f", run.MinConfidence),
			fmt.Sprintf("%d..%d", run.MinSize, run.MaxSize),
			run.RuleCount,
			formatRelativeTime(run.CreatedAt)))
	}

	return sb.String()
}

// truncate shortens a string to maxLen, appending "..." when cut.
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatRelativeTime converts a timestamp to relative time (e.g., "2 days ago").
func formatRelativeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}

	diff := time.Since(t)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	case diff < 24*time.Hour:
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	case diff < 7*24*time.Hour:
		days := int(diff.Hours() / 24)
		if days == 1 {
			return "1 day ago"
		}
		return fmt.Sprintf("%d days ago", days)
	case diff < 30*24*time.Hour:
		weeks := int(diff.Hours() / 24 / 7)
		if weeks == 1 {
			return "1 week ago"
		}
		return fmt.Sprintf("%d weeks ago", weeks)
	case diff < 365*24*time.Hour:
		months := int(diff.Hours() / 24 / 30)
		if months == 1 {
			return "1 month ago"
		}
		return fmt.Sprintf("%d months ago", months)
	default:
		years := int(diff.Hours() / 24 / 365)
		if years == 1 {
			return "1 year ago"
		}
		return fmt.Sprintf("%d years ago", years)
	}
}
