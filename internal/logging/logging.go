// Package logging configures the structured logger shared by the store,
// the shell and the command line.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Common field names for structured logging
const (
	FieldPath        = "path"
	FieldDropped     = "dropped"
	FieldCount       = "count"
	FieldCategory    = "category"
	FieldAmount      = "amount"
	FieldDescription = "description"
	FieldDate        = "date"
	FieldRange       = "range"
	FieldView        = "view"
	FieldCommand     = "command"
	FieldError       = "err"
)

// New returns a logger writing to w. Verbose enables debug output.
func New(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          "purse",
		ReportTimestamp: true,
	})
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OpenFile opens (or creates) a log file for append and returns a logger
// writing to it, along with the file so the caller can close it.
// The interactive shell owns the terminal, so it logs here instead of stderr.
func OpenFile(path string, verbose bool) (*log.Logger, io.Closer, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(f, verbose)
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}
