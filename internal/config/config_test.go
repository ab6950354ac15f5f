package config

import (
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name:    "defaults",
			config:  *Default(),
			wantErr: false,
		},
		{
			name:    "explicit width and log file",
			config:  Config{LedgerPath: filepath.Join(dir, "ledger.csv"), LogPath: filepath.Join(dir, "logs", "purse.log"), Width: 120},
			wantErr: false,
		},
		{
			name:        "empty ledger path",
			config:      Config{LedgerPath: "  "},
			wantErr:     true,
			errorString: "ledger file path cannot be empty",
		},
		{
			name:        "ledger path is a directory",
			config:      Config{LedgerPath: dir},
			wantErr:     true,
			errorString: "is a directory",
		},
		{
			name:        "width too small",
			config:      Config{LedgerPath: "ledger.csv", Width: 10},
			wantErr:     true,
			errorString: "invalid width 10: must be 0 or between 40 and 400",
		},
		{
			name:        "width too large",
			config:      Config{LedgerPath: "ledger.csv", Width: 1000},
			wantErr:     true,
			errorString: "invalid width 1000",
		},
		{
			name:        "log path is a directory",
			config:      Config{LedgerPath: "ledger.csv", LogPath: dir},
			wantErr:     true,
			errorString: "log path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error but got none")
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("expected error containing %q, got %q", tt.errorString, err.Error())
				}
				return
			}
			if err != nil {
				t.Fatalf("expected no error but got: %v", err)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := Config{LedgerPath: "", Width: 5}
	err := cfg.Validate()
	if err == nil {
		t.Fatalf("expected error")
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "configuration validation failed:") {
		t.Fatalf("unexpected prefix: %q", msg)
	}
	if strings.Count(msg, "\n- ") != 2 {
		t.Fatalf("expected two collected errors, got %q", msg)
	}
}

func TestConfig_ValidateLeavesFilesystemAlone(t *testing.T) {
	dir := t.TempDir()
	logDir := filepath.Join(dir, "logs")
	cfg := Config{LedgerPath: filepath.Join(dir, "ledger.csv"), LogPath: filepath.Join(logDir, "purse.log")}

	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if _, err := os.Stat(logDir); !os.IsNotExist(err) {
		t.Fatalf("expected log directory not to be created, stat err=%v", err)
	}

	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg.LogPath = filepath.Join(blocker, "purse.log")
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "is not a directory") {
		t.Fatalf("expected log directory error, got %v", err)
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("purse", flag.ContinueOnError)
	cfg.RegisterFlags(fs)
	if err := fs.Parse([]string{"-file", "other.csv", "-v", "-width", "100", "-log", "purse.log"}); err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.LedgerPath != "other.csv" || !cfg.Verbose || cfg.Width != 100 || cfg.LogPath != "purse.log" {
		t.Fatalf("flags not applied: %+v", cfg)
	}
}

func TestChartWidth(t *testing.T) {
	cfg := Default()
	if got := cfg.ChartWidth(132); got != 132 {
		t.Fatalf("expected terminal width, got %d", got)
	}
	if got := cfg.ChartWidth(0); got != 80 {
		t.Fatalf("expected fallback width, got %d", got)
	}
	cfg.Width = 60
	if got := cfg.ChartWidth(132); got != 60 {
		t.Fatalf("expected configured width, got %d", got)
	}
}
