// Package store persists ledger transactions in a flat CSV file. Rows are
// only ever appended; reads load the whole file, drop rows that cannot be
// parsed and return the rest sorted by date.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"git.sr.ht/~jakintosh/purse/internal/core"
	"git.sr.ht/~jakintosh/purse/internal/logging"
	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
)

// Columns is the header row of every ledger file.
var Columns = []string{"date", "amount", "category", "description"}

const (
	colDate = iota
	colAmount
	colCategory
	colDescription
)

// Store is a ledger file on disk.
type Store struct {
	path   string
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for append and load diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns a store backed by the file at path. The file is not touched
// until the first operation.
func New(path string, opts ...Option) *Store {
	s := &Store{
		path:   path,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With(logging.FieldPath, path)
	return s
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// EnsureInitialized creates the ledger file with only a header row when it
// is missing or empty. Calling it on an initialized file does nothing.
func (s *Store) EnsureInitialized() error {
	info, err := os.Stat(s.path)
	if err == nil && info.Size() > 0 {
		return nil
	}
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("stat ledger: %w", err)
	}

	if err := s.writeHeader(); err != nil {
		return err
	}
	s.logger.Info("Initialized ledger")
	return nil
}

// Reset truncates the ledger to a header row, discarding every transaction.
func (s *Store) Reset() error {
	if err := s.writeHeader(); err != nil {
		return err
	}
	s.logger.Warn("Reset ledger")
	return nil
}

func (s *Store) writeHeader() error {
	if dir := filepath.Dir(s.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	file, err := os.OpenFile(s.path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}
	return nil
}

// Append writes one transaction to the end of the ledger. The row is on
// disk when Append returns. Existing rows are never rewritten.
func (s *Store) Append(tx core.Transaction) error {
	if err := tx.Validate(); err != nil {
		return err
	}
	if err := s.EnsureInitialized(); err != nil {
		return err
	}

	file, err := os.OpenFile(s.path, os.O_APPEND|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	// a hand-edited file may lack the final newline
	terminated, err := endsWithNewline(file)
	if err != nil {
		return fmt.Errorf("read ledger: %w", err)
	}
	if !terminated {
		if _, err := file.WriteString("\n"); err != nil {
			return fmt.Errorf("write transaction: %w", err)
		}
	}

	w := csv.NewWriter(file)
	if err := w.Write(encodeRow(tx)); err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("write transaction: %w", err)
	}
	if err := file.Sync(); err != nil {
		return fmt.Errorf("sync ledger: %w", err)
	}

	s.logger.Debug("Appended transaction",
		logging.FieldDate, core.FormatDate(tx.Date),
		logging.FieldAmount, tx.Amount.String(),
		logging.FieldCategory, tx.Category,
		logging.FieldDescription, tx.Description)
	return nil
}

// Load reads every transaction in the ledger, optionally restricted to an
// inclusive date range. A nil range returns everything. Rows whose date or
// amount cannot be parsed are skipped and only counted. The result is
// sorted by date; rows on the same day keep their file order.
func (s *Store) Load(r *core.Range) (core.LoadResult, error) {
	if err := s.EnsureInitialized(); err != nil {
		return core.LoadResult{}, err
	}

	file, err := os.Open(s.path)
	if err != nil {
		return core.LoadResult{}, fmt.Errorf("open ledger: %w", err)
	}
	defer file.Close()

	var result core.LoadResult
	matched, err := s.readRows(file, r, true, &result)
	if err != nil {
		return core.LoadResult{}, err
	}

	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.Before(matched[j].Date)
	})
	result.Transactions = matched

	if result.Dropped > 0 {
		s.logger.Warn("Skipped unreadable ledger rows", logging.FieldDropped, result.Dropped)
	}
	fields := []any{logging.FieldCount, len(matched)}
	if r != nil {
		fields = append(fields, logging.FieldRange, r.String())
	}
	s.logger.Debug("Loaded transactions", fields...)
	return result, nil
}

// readRows decodes records from src, appending those inside r to the
// result. A row whose quoted description runs over following rows is
// dropped and the swallowed rows are read again on their own.
func (s *Store) readRows(src io.Reader, r *core.Range, header bool, result *core.LoadResult) ([]core.Transaction, error) {
	reader := csv.NewReader(src)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	matched := make([]core.Transaction, 0)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				result.Dropped++
				continue
			}
			return nil, fmt.Errorf("read ledger: %w", err)
		}

		if header {
			header = false
			if isHeader(record) {
				continue
			}
		}

		if rest, ok := swallowedRows(record); ok {
			result.Dropped++
			recovered, err := s.readRows(strings.NewReader(rest), r, false, result)
			if err != nil {
				return nil, err
			}
			matched = append(matched, recovered...)
			continue
		}

		tx, ok := decodeRow(record)
		if !ok {
			result.Dropped++
			continue
		}
		if r != nil && !r.Contains(tx.Date) {
			continue
		}
		matched = append(matched, tx)
	}
	return matched, nil
}

// swallowedRows detects an unterminated quote that pulled later rows into
// the last field, and returns the text of those rows.
func swallowedRows(record []string) (string, bool) {
	if len(record) == 0 {
		return "", false
	}
	lines := strings.Split(record[len(record)-1], "\n")
	for i := 1; i < len(lines); i++ {
		if isRowStart(lines[i]) {
			return strings.Join(lines[i:], "\n"), true
		}
	}
	return "", false
}

// isRowStart reports whether line begins with a ledger date column.
func isRowStart(line string) bool {
	first, _, found := strings.Cut(line, ",")
	if !found {
		return false
	}
	_, err := core.ParseDate(first)
	return err == nil
}

// endsWithNewline reports whether a non-empty file ends in a line break.
func endsWithNewline(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}

// encodeRow renders a transaction as a CSV record. Amounts keep at least
// two fraction digits.
func encodeRow(tx core.Transaction) []string {
	amount := tx.Amount.String()
	if tx.Amount.Exponent() >= -2 {
		amount = tx.Amount.StringFixed(2)
	}
	return []string{
		core.FormatDate(tx.Date),
		amount,
		string(tx.Category),
		tx.Description,
	}
}

// decodeRow parses a CSV record. It reports false when the row is unusable.
func decodeRow(record []string) (core.Transaction, bool) {
	if len(record) <= colCategory {
		return core.Transaction{}, false
	}
	date, err := core.ParseDate(record[colDate])
	if err != nil {
		return core.Transaction{}, false
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(record[colAmount]))
	if err != nil {
		return core.Transaction{}, false
	}
	tx := core.Transaction{
		Date:     date,
		Amount:   amount,
		Category: core.Category(strings.TrimSpace(record[colCategory])),
	}
	if len(record) > colDescription {
		tx.Description = strings.TrimSpace(record[colDescription])
	}
	return tx, true
}

// isHeader reports whether a record is the column header.
func isHeader(record []string) bool {
	if len(record) == 0 {
		return false
	}
	// a UTF-8 byte order mark may precede the first column name
	first := strings.TrimPrefix(record[0], "\ufeff")
	return strings.EqualFold(strings.TrimSpace(first), Columns[colDate])
}
