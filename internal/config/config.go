// Package config holds the command-line configuration shared by every purse
// subcommand. There is no environment-variable configuration.
package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DefaultLedgerPath = "finance_data.csv"
	minWidth          = 40
	maxWidth          = 400
)

// Config is the global configuration set by command-line flags.
type Config struct {
	// Ledger
	LedgerPath string

	// Logging
	LogPath string
	Verbose bool

	// Rendering; 0 means use the terminal width
	Width int
}

// Default returns the configuration used when no flags are given.
func Default() *Config {
	return &Config{
		LedgerPath: DefaultLedgerPath,
	}
}

// RegisterFlags binds the global flags to fs.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.LedgerPath, "file", c.LedgerPath, "path to the ledger CSV file")
	fs.StringVar(&c.LogPath, "log", c.LogPath, "write logs to this file (interactive mode discards logs otherwise)")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "use verbose output")
	fs.IntVar(&c.Width, "width", c.Width, "chart width in columns (0 = auto)")
}

// Validate checks the configuration and returns every problem at once.
func (c *Config) Validate() error {
	var errors []string

	if strings.TrimSpace(c.LedgerPath) == "" {
		errors = append(errors, "ledger file path cannot be empty")
	} else if info, err := os.Stat(c.LedgerPath); err == nil && info.IsDir() {
		errors = append(errors, fmt.Sprintf("ledger file path '%s' is a directory", c.LedgerPath))
	}

	if c.Width != 0 && (c.Width < minWidth || c.Width > maxWidth) {
		errors = append(errors, fmt.Sprintf("invalid width %d: must be 0 or between %d and %d", c.Width, minWidth, maxWidth))
	}

	if c.LogPath != "" {
		if dir := filepath.Dir(c.LogPath); dir != "." && dir != "" {
			if info, err := os.Stat(dir); err == nil && !info.IsDir() {
				errors = append(errors, fmt.Sprintf("log directory '%s' is not a directory", dir))
			}
		}
		if info, err := os.Stat(c.LogPath); err == nil && info.IsDir() {
			errors = append(errors, fmt.Sprintf("log path '%s' is a directory", c.LogPath))
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}
	return nil
}

// ChartWidth resolves the width to render at, given the detected terminal width.
func (c *Config) ChartWidth(terminal int) int {
	if c.Width > 0 {
		return c.Width
	}
	if terminal >= minWidth {
		return terminal
	}
	return 80
}
