package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/tally/internal/buildinfo"
	"github.com/cleared-dev/tally/internal/config"
	"github.com/cleared-dev/tally/internal/logger"
)

type globalFlags struct {
	repo         string
	configPath   string
	logLevel     string
	logFormat    string
	yearPolicy   string
	fallbackYear int
}

type configKey struct{}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var flags globalFlags

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Expense summaries from chat-log notes",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return flags.setup(cmd)
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.repo, "repo", ".", "project directory")
	pf.StringVar(&flags.configPath, "config", "", "config file (default <repo>/tally.yaml)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format (console, json)")
	pf.StringVar(&flags.yearPolicy, "year-policy", "", "year for dates without one (fixed, next-after-latest)")
	pf.IntVar(&flags.fallbackYear, "fallback-year", 0, "year used by the fixed policy")

	rootCmd.AddCommand(
		newInitCommand(),
		newParseCommand(),
		newSummaryCommand(),
		newExplainCommand(),
		newImportCommand(),
		newHistoryCommand(),
	)

	return rootCmd
}

// setup layers configuration as tally.yaml, then .env and TALLY_* variables,
// then flags, and stores the result and a logger on the command context.
func (f *globalFlags) setup(cmd *cobra.Command) error {
	path := f.configPath
	if path == "" {
		path = filepath.Join(f.repo, config.FileName)
	}

	if err := config.LoadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(path)
	if err != nil {
		return err
	}
	if err := config.ApplyEnv(cfg); err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = f.logFormat
	}
	if flags.Changed("year-policy") {
		cfg.Extract.YearPolicy = f.yearPolicy
	}
	if flags.Changed("fallback-year") {
		cfg.Extract.FallbackYear = f.fallbackYear
	}

	log, err := logger.Configure(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	log.Debug().Str("config", path).Str("year_policy", cfg.Extract.YearPolicy).Msg("configuration loaded")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logger.WithContext(ctx, log)
	ctx = context.WithValue(ctx, configKey{}, cfg)
	cmd.SetContext(ctx)
	return nil
}

func configFrom(ctx context.Context) *config.Config {
	if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
		return cfg
	}
	return config.Default("")
}

func repoDir(cmd *cobra.Command) (string, error) {
	dir, err := cmd.Flags().GetString("repo")
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}
	return abs, nil
}
