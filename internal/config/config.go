package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/tally/internal/extract"
)

// FileName is the config file inside a project directory.
const FileName = "tally.yaml"

// Config represents the top-level tally.yaml configuration.
type Config struct {
	Project ProjectConfig `yaml:"project"`
	Extract ExtractConfig `yaml:"extract"`
	Report  ReportConfig  `yaml:"report"`
	Logging LoggingConfig `yaml:"logging"`
	Git     GitConfig     `yaml:"git"`
}

// ProjectConfig identifies whose expenses these are.
type ProjectConfig struct {
	Name string `yaml:"name"`
}

// ExtractConfig controls year inference for year-less chat dates.
type ExtractConfig struct {
	YearPolicy   string `yaml:"year_policy"` // "fixed" or "next-after-latest"
	FallbackYear int    `yaml:"fallback_year"`
}

// ReportConfig controls the rendered dashboard.
type ReportConfig struct {
	Currency    string `yaml:"currency"` // display symbol only
	RecentLimit int    `yaml:"recent_limit"`
}

// LoggingConfig controls CLI diagnostics.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console" or "json"
}

// GitConfig sets the commit author for `init --git` and `import --commit`.
type GitConfig struct {
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tally.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default("")
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault is Load, returning Default when path does not exist.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(""), nil
	}
	return cfg, err
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default(name string) *Config {
	return &Config{
		Project: ProjectConfig{
			Name: name,
		},
		Extract: ExtractConfig{
			YearPolicy:   string(extract.YearPolicyFixed),
			FallbackYear: extract.DefaultFallbackYear,
		},
		Report: ReportConfig{
			Currency:    "$",
			RecentLimit: 20,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Git: GitConfig{
			AuthorName:  "Tally",
			AuthorEmail: "tally@localhost",
		},
	}
}

// ExtractOptions converts the extract section into extractor options.
func (c *Config) ExtractOptions() (extract.Options, error) {
	policy, err := extract.ParseYearPolicy(c.Extract.YearPolicy)
	if err != nil {
		return extract.Options{}, err
	}
	if c.Extract.FallbackYear < 0 {
		return extract.Options{}, fmt.Errorf("fallback_year must be positive, got %d", c.Extract.FallbackYear)
	}
	return extract.Options{Policy: policy, FallbackYear: c.Extract.FallbackYear}, nil
}
