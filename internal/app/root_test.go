package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestGetDBPath_FlagOverride(t *testing.T) {
	orig := dbPath
	defer func() { dbPath = orig }()

	dbPath = "/tmp/custom-rulemine.db"
	got, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() failed: %v", err)
	}
	if got != "/tmp/custom-rulemine.db" {
		t.Errorf("getDBPath() = %q, want flag value", got)
	}
}

func TestGetDBPath_DefaultUnderHome(t *testing.T) {
	orig := dbPath
	defer func() { dbPath = orig }()
	dbPath = ""

	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := getDBPath()
	if err != nil {
		t.Fatalf("getDBPath() failed: %v", err)
	}
	want := filepath.Join(home, ".rulemine", "rulemine.db")
	if got != want {
		t.Errorf("getDBPath() = %q, want %q", got, want)
	}
}

func TestRootCmd_HasCoreSubcommands(t *testing.T) {
	want := []string{"mine", "dataset", "runs", "rules", "watch", "demo"}

	for _, name := range want {
		found := false
		for _, sub := range RootCmd.Commands() {
			if sub.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("root command is missing subcommand %q", name)
		}
	}
}

func TestMineCmd_SourceValidation(t *testing.T) {
	origDataset, origItems := mineDataset, mineItems
	defer func() { mineDataset, mineItems = origDataset, origItems }()

	// Neither a file nor --dataset.
	mineDataset = ""
	if err := runMine(mineCmd, nil); err == nil ||
		!strings.Contains(err.Error(), "dataset file or --dataset") {
		t.Errorf("runMine() with no source = %v, want source error", err)
	}

	// Both a file and --dataset.
	mineDataset = "baskets"
	if err := runMine(mineCmd, []string{"file.txt"}); err == nil ||
		!strings.Contains(err.Error(), "not both") {
		t.Errorf("runMine() with both sources = %v, want conflict error", err)
	}

	// --items combined with --dataset.
	mineItems = true
	if err := runMine(mineCmd, nil); err == nil ||
		!strings.Contains(err.Error(), "--items") {
		t.Errorf("runMine() with --items and --dataset = %v, want conflict error", err)
	}
}

func TestDemoCmd_Runs(t *testing.T) {
	if err := runDemo(demoCmd, nil); err != nil {
		t.Errorf("runDemo() failed: %v", err)
	}
}
