package commands

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/categories"
	"github.com/cleared-dev/tally/internal/extract"
	"github.com/cleared-dev/tally/internal/importer"
	"github.com/cleared-dev/tally/internal/logger"
	"github.com/cleared-dev/tally/internal/model"
)

// stdinName is the argument that selects standard input.
const stdinName = "-"

// input is one file or stdin read fully into memory.
type input struct {
	Name string
	Data []byte
}

func readInput(cmd *cobra.Command, arg string) (input, error) {
	if arg == stdinName {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return input{}, fmt.Errorf("reading stdin: %w", err)
		}
		return input{Name: "stdin", Data: data}, nil
	}

	data, err := os.ReadFile(arg)
	if err != nil {
		return input{}, fmt.Errorf("reading input: %w", err)
	}
	return input{Name: filepath.Base(arg), Data: data}, nil
}

// format returns override when set, otherwise the format implied by the name.
// Stdin defaults to a chat log.
func (in input) format(override string) string {
	if override != "" {
		return override
	}
	if in.Name == "stdin" {
		return "chat"
	}
	return importer.DetectFormat(in.Name)
}

// parseInput parses in with the configured extractor options and logs how
// many chat lines were skipped.
func parseInput(ctx context.Context, in input, format string) ([]model.Transaction, error) {
	opts, err := configFrom(ctx).ExtractOptions()
	if err != nil {
		return nil, err
	}

	txns, err := importer.DefaultRegistry(opts).Parse(in.Name, bytes.NewReader(in.Data), format)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	event := log.Debug().Str("input", in.Name).Str("format", format).Int("transactions", len(txns))
	if strings.EqualFold(format, "chat") {
		event = event.Int("skipped", skippedLines(string(in.Data)))
	}
	event.Msg("parsed input")
	return txns, nil
}

// skippedLines counts non-blank lines the extractor dropped.
func skippedLines(text string) int {
	n := 0
	for _, line := range extract.Lines(text) {
		if line == "" {
			continue
		}
		if extract.Explain(line).Reason != extract.ReasonMatched {
			n++
		}
	}
	return n
}

func loadCategories(ctx context.Context, dir string) (*categories.Service, error) {
	svc, err := categories.LoadOrDefault(dir)
	if err != nil {
		return nil, fmt.Errorf("loading categories: %w", err)
	}
	log := logger.FromContext(ctx)
	log.Debug().Int("categories", len(svc.All())).Msg("categories loaded")
	return svc, nil
}
