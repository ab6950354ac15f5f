// Package session remembers the last date range used in the shell so the
// next session can prefill its prompts.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"git.sr.ht/~jakintosh/purse/internal/core"
)

const sessionFileName = ".purse-session.json"

type state struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Path returns the session file used for a ledger, kept next to it.
func Path(ledgerPath string) string {
	return filepath.Join(filepath.Dir(ledgerPath), sessionFileName)
}

// SaveRange writes the range to the session file.
func SaveRange(path string, r core.Range) error {
	data, err := json.MarshalIndent(state{
		Start: core.FormatDate(r.Start),
		End:   core.FormatDate(r.End),
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// LoadRange reads the last saved range. The boolean is false when no
// session exists.
func LoadRange(path string) (core.Range, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.Range{}, false, nil
		}
		return core.Range{}, false, fmt.Errorf("failed to read session file: %w", err)
	}

	var s state
	if err := json.Unmarshal(data, &s); err != nil {
		return core.Range{}, false, fmt.Errorf("failed to unmarshal session data: %w", err)
	}
	r, err := core.NewRange(s.Start, s.End)
	if err != nil {
		return core.Range{}, false, fmt.Errorf("invalid session range: %w", err)
	}
	return r, true, nil
}

// DeleteSession removes the session file.
func DeleteSession(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete session file: %w", err)
	}
	return nil
}
