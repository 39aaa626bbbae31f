// Package importer turns bank CSV exports into finance transactions.
package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cleared-dev/inkboard/internal/id"
	"github.com/cleared-dev/inkboard/internal/model"
)

// ErrUnknownFormat is returned for a format with no registered parser.
var ErrUnknownFormat = errors.New("unknown import format")

// Parser converts a bank CSV file into BankTransactions.
type Parser interface {
	Parse(r io.Reader) ([]model.BankTransaction, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// Lookup is Get with an error for unknown formats.
func (r *Registry) Lookup(format string) (Parser, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return p, nil
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(Chase())
	r.Register(Nubank())
	return r
}

// Dir is the subdirectory for import CSVs.
const Dir = "import"

// ProcessedDir is the subdirectory for processed CSVs.
const ProcessedDir = "import/processed"

// Scan returns CSV files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, Dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, Dir, fileName)
	dstDir := filepath.Join(repoRoot, ProcessedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Convert maps bank lines to transactions. Debits become despesa and
// credits receita, both with the absolute amount. Bank lines are already
// settled, so the posting date is used for both due and settled dates,
// re-anchored to midnight in loc.
func Convert(bank []model.BankTransaction, category string, loc *time.Location) []model.Transaction {
	if loc == nil {
		loc = time.UTC
	}
	txns := make([]model.Transaction, 0, len(bank))
	for _, b := range bank {
		y, m, d := b.Date.Date()
		day := time.Date(y, m, d, 0, 0, 0, 0, loc)

		kind := model.TransactionRevenue
		if b.Amount.IsNegative() {
			kind = model.TransactionExpense
		}
		txns = append(txns, model.Transaction{
			ID:          id.New(),
			Type:        kind,
			Category:    category,
			Description: b.Description,
			Amount:      b.Amount.Abs(),
			DueDate:     day,
			SettledDate: day,
			Reference:   b.Reference,
		})
	}
	return txns
}

// Deduplicate drops incoming transactions already present in existing.
// Lines carrying a bank reference match an existing line with the same
// reference; the rest match on type, amount, due date and description.
// Each existing line absorbs at most one incoming line, so repeated
// identical lines in one export are all kept on a first import.
func Deduplicate(existing, incoming []model.Transaction) []model.Transaction {
	byRef := make(map[string]int)
	byFields := make(map[string]int)
	for _, t := range existing {
		if t.Reference != "" {
			byRef[t.Reference]++
		} else {
			byFields[dedupKey(t)]++
		}
	}

	var out []model.Transaction
	for _, t := range incoming {
		if t.Reference != "" && byRef[t.Reference] > 0 {
			byRef[t.Reference]--
			continue
		}
		if k := dedupKey(t); byFields[k] > 0 {
			byFields[k]--
			continue
		}
		out = append(out, t)
	}
	return out
}

func dedupKey(t model.Transaction) string {
	return strings.Join([]string{
		string(t.Type),
		t.Amount.StringFixed(2),
		t.DueDate.Format("2006-01-02"),
		strings.ToUpper(strings.TrimSpace(t.Description)),
	}, "|")
}
