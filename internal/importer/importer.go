package importer

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cleared-dev/tally/internal/extract"
	"github.com/cleared-dev/tally/internal/model"
)

// ErrUnknownFormat is returned when no parser is registered for a format.
var ErrUnknownFormat = errors.New("unknown format")

// Parser converts an input file into Transactions.
type Parser interface {
	Parse(r io.Reader) ([]model.Transaction, error)
	Format() string
}

// Registry maps format names to parsers. Lookups ignore case.
type Registry struct {
	parsers map[string]Parser
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

// DefaultRegistry returns a registry with the chat and ledger parsers. opts
// control year inference for chat logs.
func DefaultRegistry(opts extract.Options) *Registry {
	r := NewRegistry()
	r.Register(&ChatParser{Options: opts})
	r.Register(&LedgerParser{})
	return r
}

// DetectFormat picks a parser format from a file name: ledger CSVs by
// extension, chat logs for everything else.
func DetectFormat(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".csv") {
		return "csv"
	}
	return "chat"
}

// Parse reads r with the parser for format. name only labels errors.
func (r *Registry) Parse(name string, rd io.Reader, format string) ([]model.Transaction, error) {
	p := r.Get(format)
	if p == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	txns, err := p.Parse(rd)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", name, err)
	}
	return txns, nil
}

// ParseFile opens path and parses it with the parser for format.
func (r *Registry) ParseFile(path, format string) ([]model.Transaction, error) {
	if r.Get(format) == nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return r.Parse(filepath.Base(path), f, format)
}

// FileInfo describes an input file waiting in the import directory.
type FileInfo struct {
	Name   string
	Path   string
	Format string
	Size   int64
}

const (
	importDir    = "import"
	processedDir = "import/processed"
)

var inputExts = map[string]bool{".txt": true, ".csv": true}

// Scan returns chat logs and ledger CSVs in <repoRoot>/import/, sorted by name.
// Subdirectories, including processed/, are not searched.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !inputExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name:   e.Name(),
			Path:   filepath.Join(dir, e.Name()),
			Format: DetectFormat(e.Name()),
			Size:   info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/ and returns
// its new name. An existing file of the same name gets a numeric suffix
// rather than being overwritten.
func MarkProcessed(repoRoot, fileName string) (string, error) {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return "", fmt.Errorf("creating processed dir: %w", err)
	}

	ext := filepath.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	name := fileName
	for n := 1; ; n++ {
		if _, err := os.Stat(filepath.Join(dstDir, name)); os.IsNotExist(err) {
			break
		}
		name = stem + "-" + strconv.Itoa(n) + ext
	}

	if err := os.Rename(src, filepath.Join(dstDir, name)); err != nil {
		return "", fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return name, nil
}
