package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/inkboard/internal/gitops"
	"github.com/cleared-dev/inkboard/internal/importer"
	"github.com/cleared-dev/inkboard/internal/importlog"
	"github.com/cleared-dev/inkboard/internal/log"
	"github.com/cleared-dev/inkboard/internal/model"
)

func newImportCommand(opts *globalOptions) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "import <format> [file...]",
		Short: "Import bank CSV exports as transactions",
		Long: "Parses bank CSV exports and appends them to data/transactions.csv.\n" +
			"With no files, every CSV in import/ is read and then moved to import/processed/.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.open(cmd)
			if err != nil {
				return err
			}
			return runImport(cmd, s, args[0], args[1:], category)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "category for imported transactions")

	return cmd
}

func runImport(cmd *cobra.Command, s *session, format string, files []string, category string) error {
	parser, err := importer.DefaultRegistry().Lookup(format)
	if err != nil {
		return err
	}
	logger := s.logger.WithComponent(log.ComponentImporter).With(log.FieldFormat, format)

	// Only files picked up from import/ are moved afterwards.
	scanned := len(files) == 0
	if scanned {
		found, err := importer.Scan(s.root)
		if err != nil {
			return err
		}
		for _, f := range found {
			files = append(files, f.Path)
		}
	}
	if len(files) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No files to import in %s\n", filepath.Join(s.root, importer.Dir))
		return nil
	}

	svc := s.dataset()
	ds, err := svc.Load()
	if err != nil {
		return fmt.Errorf("loading data: %w", err)
	}
	existing := ds.Transactions

	// Parse every file before writing anything, so a bad file leaves the
	// project untouched.
	var fresh []model.Transaction
	var entries []importlog.Entry
	for _, path := range files {
		incoming, err := parseFile(parser, path)
		if err != nil {
			return err
		}
		converted := importer.Convert(incoming, category, s.cfg.Location())
		kept := importer.Deduplicate(existing, converted)
		existing = append(existing, kept...)
		fresh = append(fresh, kept...)
		entries = append(entries, importlog.Entry{
			Timestamp: time.Now().UTC(),
			Format:    parser.Format(),
			File:      filepath.Base(path),
			Imported:  len(kept),
			Skipped:   len(converted) - len(kept),
		})
		logger.Debug("parsed file", log.FieldFile, path, log.FieldCount, len(kept))
	}

	if err := svc.AppendTransactions(fresh); err != nil {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d imported, %d duplicate(s) skipped\n", e.File, e.Imported, e.Skipped)
	}

	hash, err := finishImport(s, files, scanned, fmt.Sprintf("import: %d %s transaction(s)", len(fresh), parser.Format()))
	if hash != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "Committed %s\n", hash)
	}

	// The transactions are written, so the log is kept even if moving or
	// committing failed.
	for i := range entries {
		entries[i].CommitHash = hash
	}
	if logErr := importlog.Append(s.root, entries); logErr != nil {
		return errors.Join(err, fmt.Errorf("writing import log: %w", logErr))
	}
	return err
}

// finishImport moves scanned files to import/processed and commits.
func finishImport(s *session, files []string, scanned bool, message string) (string, error) {
	if scanned {
		for _, path := range files {
			if err := importer.MarkProcessed(s.root, filepath.Base(path)); err != nil {
				return "", err
			}
		}
	}
	return commitImport(s, message)
}

// commitImport commits the project when auto_commit is on and the project
// is a git repository. It returns "" when nothing was committed.
func commitImport(s *session, message string) (string, error) {
	if !s.cfg.Git.AutoCommit {
		return "", nil
	}
	repo := gitops.Open(s.root, gitops.Author{Name: s.cfg.Git.AuthorName, Email: s.cfg.Git.AuthorEmail})
	if !repo.IsRepo() {
		return "", nil
	}
	hash, err := repo.CommitAll(message)
	if err != nil {
		return "", fmt.Errorf("committing import: %w", err)
	}
	return hash, nil
}

func parseFile(parser importer.Parser, path string) ([]model.BankTransaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	txns, err := parser.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return txns, nil
}
