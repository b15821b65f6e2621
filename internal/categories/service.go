package categories

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/cleared-dev/tally/internal/model"
)

// FileName is the category table inside a project directory.
const FileName = "categories.csv"

// Service provides in-memory lookup over the category table.
type Service struct {
	cats   []model.Category
	byCode map[string]model.Category
}

// NewService creates a Service from a slice of categories. Later entries win
// on duplicate codes.
func NewService(cats []model.Category) *Service {
	byCode := make(map[string]model.Category, len(cats))
	for _, c := range cats {
		byCode[c.Code] = c
	}
	return &Service{cats: cats, byCode: byCode}
}

// Default returns a Service over DefaultTable.
func Default() *Service {
	return NewService(DefaultTable())
}

// Load reads categories.csv from a project root.
func Load(repoRoot string) (*Service, error) {
	path := filepath.Join(repoRoot, FileName)
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening categories: %w", err)
	}
	defer f.Close()

	cats, err := ReadCategories(f)
	if err != nil {
		return nil, fmt.Errorf("reading categories: %w", err)
	}
	return NewService(cats), nil
}

// LoadOrDefault is Load, falling back to the default table when the project
// has no categories.csv.
func LoadOrDefault(repoRoot string) (*Service, error) {
	svc, err := Load(repoRoot)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return svc, err
}

// All returns all categories.
func (s *Service) All() []model.Category {
	return s.cats
}

// Get returns a category by exact code.
func (s *Service) Get(code string) (model.Category, bool) {
	c, ok := s.byCode[code]
	return c, ok
}

// Resolve returns the display name for code, or code itself when unknown.
func (s *Service) Resolve(code string) string {
	if c, ok := s.byCode[code]; ok {
		return c.Name
	}
	return code
}

// Save writes the table to categories.csv under repoRoot.
func (s *Service) Save(repoRoot string) error {
	if err := os.MkdirAll(repoRoot, 0o755); err != nil {
		return fmt.Errorf("creating project dir: %w", err)
	}

	path := filepath.Join(repoRoot, FileName)
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating categories file: %w", err)
	}
	defer f.Close()

	if err := WriteCategories(f, s.cats); err != nil {
		return fmt.Errorf("writing categories: %w", err)
	}
	return nil
}
