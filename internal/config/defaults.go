// Package config provides configuration file parsing for rulemine.
package config

import (
	"bufio"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/blackwell-systems/rulemine/internal/miner"
)

// Dir returns the rulemine config directory, respecting XDG_CONFIG_HOME.
// Defaults to ~/.config/rulemine if XDG_CONFIG_HOME is not set.
func Dir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "rulemine"), nil
}

// Defaults holds the user's default mining parameters. CLI flags always win
// over these values; they only fill in flags the user did not set.
type Defaults struct {
	Options miner.Options
	Top     int // how many rules to display, 0 = all
}

// LoadDefaults reads the defaults file at {dir}/defaults and returns the
// parsed config, starting from the engine's built-in defaults. If the file
// does not exist, the built-ins are returned without an error. Invalid or
// malformed lines are silently skipped.
//
// Recognized keys: min_support, min_confidence, min_size, max_size, top.
func LoadDefaults(dir string) (*Defaults, error) {
	cfg := &Defaults{
		Options: miner.DefaultOptions(),
		Top:     20,
	}

	path := filepath.Join(dir, "defaults")
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Skip blank lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// Expect exactly one "=" separating key from value.
		idx := strings.IndexByte(line, '=')
		if idx <= 0 {
			continue // no "=" or "=" is first character — invalid, skip
		}

		key := strings.TrimSpace(line[:idx])
		value := strings.TrimSpace(line[idx+1:])
		if key == "" || value == "" {
			continue // either side is blank — invalid, skip
		}

		switch key {
		case "min_support":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.Options.MinSupport = v
			}
		case "min_confidence":
			if v, err := strconv.ParseFloat(value, 64); err == nil {
				cfg.Options.MinConfidence = v
			}
		case "min_size":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.Options.MinSize = v
			}
		case "max_size":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.Options.MaxSize = v
			}
		case "top":
			if v, err := strconv.Atoi(value); err == nil {
				cfg.Top = v
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
