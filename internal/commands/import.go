package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/gitops"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/importlog"
	"github.com/cleared-dev/tally/internal/ledger"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
	"github.com/cleared-dev/tally/internal/summary"
)

func newImportCommand() *cobra.Command {
	var markProcessed bool
	var commit bool

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import every chat log and ledger CSV in <repo>/import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := repoDir(cmd)
			if err != nil {
				return err
			}
			return runImport(cmd.Context(), cmd.OutOrStdout(), root, importOptions{
				markProcessed: markProcessed || commit,
				commit:        commit,
			})
		},
	}

	cmd.Flags().BoolVar(&markProcessed, "mark-processed", false, "move imported files to import/processed/")
	cmd.Flags().BoolVar(&commit, "commit", false, "commit the import to git (implies --mark-processed)")

	return cmd
}

var errGitMissing = errors.New("git not found on PATH")

type importOptions struct {
	markProcessed bool
	commit        bool
}

func runImport(ctx context.Context, w io.Writer, root string, opts importOptions) error {
	cfg := configFrom(ctx)
	log := logger.FromContext(ctx)

	if opts.commit {
		if !gitops.Available() {
			return errGitMissing
		}
		if !gitops.IsRepo(root) {
			return fmt.Errorf("%s is not a git repository (run tally init --git)", root)
		}
	}

	files, err := importer.Scan(root)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(w, "No files to import.")
		return nil
	}

	extractOpts, err := cfg.ExtractOptions()
	if err != nil {
		return err
	}
	reg := importer.DefaultRegistry(extractOpts)
	names, err := loadCategories(ctx, root)
	if err != nil {
		return err
	}

	now := time.Now()
	var all []model.Transaction
	var entries []importlog.Entry
	for _, f := range files {
		txns, err := reg.ParseFile(f.Path, f.Format)
		if err != nil {
			return err
		}
		stats := summary.Compute(txns)
		log.Debug().Str("file", f.Name).Str("format", f.Format).Int("transactions", stats.Count).Msg("file parsed")

		all = append(all, txns...)
		entries = append(entries, importlog.Entry{
			Timestamp:    now,
			File:         f.Name,
			Format:       f.Format,
			Transactions: stats.Count,
			Total:        stats.Total,
		})
		fmt.Fprintf(w, "%-32s %4d transactions  %s%d\n", f.Name, stats.Count, cfg.Report.Currency, stats.Total)
	}

	for _, verr := range ledger.Validate(all) {
		log.Warn().Msg(verr.Error())
	}
	if err := ledger.Append(root, all); err != nil {
		return fmt.Errorf("appending to ledger: %w", err)
	}
	if err := importlog.Append(root, entries); err != nil {
		return fmt.Errorf("%s already holds the %d imported transactions but %s was not updated; do not re-run import: %w",
			ledger.FileName, len(all), importlog.Path, err)
	}

	if opts.markProcessed {
		for _, f := range files {
			moved, err := importer.MarkProcessed(root, f.Name)
			if err != nil {
				return err
			}
			log.Debug().Str("file", f.Name).Str("processed", moved).Msg("input moved")
		}
	}

	d := summary.Build(all, names)
	fmt.Fprintf(w, "Imported %d transactions (%s%d) from %d files\n", d.Stats.Count, cfg.Report.Currency, d.Stats.Total, len(files))
	if len(d.Categories) > 0 {
		top := d.Categories[0]
		fmt.Fprintf(w, "Top category: %s (%s%d)\n", top.Name, cfg.Report.Currency, top.Total)
	}

	if !opts.commit {
		return nil
	}
	hash, err := commitImport(ctx, root, cfg, len(all), len(files))
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "Committed %s\n", hash)
	return nil
}

func commitImport(ctx context.Context, root string, cfg *config.Config, txns, files int) (string, error) {
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	msg := fmt.Sprintf("import: %d transactions from %d files", txns, files)
	hash, err := gitops.Commit(ctx, root, msg, author,
		ledger.FileName,
		filepath.FromSlash(importlog.Path),
		"import",
	)
	if err != nil {
		return "", fmt.Errorf("committing import: %w", err)
	}
	return hash, nil
}
