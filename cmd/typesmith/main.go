// Package main provides the CLI entrypoint for typesmith.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typesmith/internal/config"
	"github.com/verte-zerg/typesmith/internal/logging"
	"github.com/verte-zerg/typesmith/internal/model"
	"github.com/verte-zerg/typesmith/internal/quotes"
	"github.com/verte-zerg/typesmith/internal/report"
	"github.com/verte-zerg/typesmith/internal/session"
	"github.com/verte-zerg/typesmith/internal/store"
	"github.com/verte-zerg/typesmith/internal/tui"
)

var (
	playQuotes  string
	playLibrary string
	playSource  string
	playDebug   bool
	playLogFile string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typesmith",
		Short:         "Timed typing practice with literary quotes",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPlayCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&playQuotes, "quotes", config.DefaultQuotesPath(), "JSON quote collection")
	flags.StringVar(&playLibrary, "library", config.DefaultLibraryPath(), "SQLite quote library")
	flags.StringVar(&playSource, "source", model.SourceFile, "quote source: file or library")
	rootCmd.Flags().BoolVar(&playDebug, "debug", false, "write debug logs")
	rootCmd.Flags().StringVar(&playLogFile, "log-file", "", "debug log path (default: generated in the state dir)")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newQuotesCmd())

	return rootCmd
}

func resolveConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "quotes", &playQuotes, fileCfg.Game.Quotes)
	applyStringConfig(cmd, "library", &playLibrary, fileCfg.Game.Library)
	applyStringConfig(cmd, "source", &playSource, fileCfg.Game.Source)
	applyBoolConfig(cmd, "debug", &playDebug, fileCfg.Log.Debug)
	applyStringConfig(cmd, "log-file", &playLogFile, fileCfg.Log.File)

	cfg := model.Config{
		QuotesPath:  playQuotes,
		LibraryPath: playLibrary,
		Source:      strings.ToLower(strings.TrimSpace(playSource)),
		Debug:       playDebug,
		LogFile:     playLogFile,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func runPlayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Debug, cfg.LogFile, config.DefaultLogDir())
	if err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}
	defer func() {
		if cerr := logger.Close(); cerr != nil {
			logErrf("failed to close log: %v\n", cerr)
		}
	}()
	if logger.Path != "" {
		logErrf("Debug mode enabled. Logs: %s\n", logger.Path)
	}

	source, err := quotes.NewSource(cfg, logger.Logger)
	if err != nil {
		return err
	}
	engine := session.New(quotes.NewRandom(), logger.Logger)
	m := tui.NewModel(engine, source, logger.Logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}

	if final, ok := m.FinalMetrics(); ok {
		if err := report.RenderSummary(cmd.OutOrStdout(), final); err != nil {
			return fmt.Errorf("failed to write results: %w", err)
		}
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newQuotesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotes",
		Short: "Manage quote collections",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List quotes from the configured source",
		Args:  cobra.NoArgs,
		RunE:  runQuotesListCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "import <file.json>",
		Short: "Import a JSON quote collection into the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuotesImportCmd,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show quote, library and config paths",
		Args:  cobra.NoArgs,
		RunE:  runQuotesPathCmd,
	})
	return cmd
}

func runQuotesListCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	source, err := quotes.NewSource(cfg, nil)
	if err != nil {
		return err
	}
	qs, err := source.Load(context.Background())
	if err != nil && !errors.Is(err, quotes.ErrNoQuotes) {
		return err
	}
	return report.RenderQuotes(cmd.OutOrStdout(), qs, terminalWidth())
}

func runQuotesImportCmd(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	qs, err := quotes.LoadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}

	st, err := store.Open(cfg.LibraryPath)
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	inserted, err := st.ImportQuotes(context.Background(), qs)
	if err != nil {
		return fmt.Errorf("failed to import quotes: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d quotes into %s\n", inserted, len(qs), cfg.LibraryPath)
	return err
}

func runQuotesPathCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	lines := []string{
		"quotes:  " + cfg.QuotesPath,
		"library: " + cfg.LibraryPath,
		"config:  " + config.DefaultConfigPath(),
		"logs:    " + config.DefaultLogDir(),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	width, _, err := term.GetSize(fd)
	if err != nil {
		return 0
	}
	return width
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if flag := cmd.Flags().Lookup(name); flag == nil || flag.Changed {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typesmith configuration
# Uncomment a value to enable it. CLI flags override config values.

[game]
# quotes = %q    # JSON quote collection ({"quotes": [...]})
# library = %q   # SQLite quote library
# source = %q             # Quote source: "file" or "library"

[log]
# debug = false             # Write debug logs
# file = ""                 # Debug log path (default: generated)
`,
		config.DefaultQuotesPath(),
		config.DefaultLibraryPath(),
		model.SourceFile,
	)
}

func validateConfig(cfg model.Config) error {
	switch cfg.Source {
	case model.SourceFile:
		if cfg.QuotesPath == "" {
			return fmt.Errorf("--quotes must not be empty")
		}
	case model.SourceLibrary:
		if cfg.LibraryPath == "" {
			return fmt.Errorf("--library must not be empty")
		}
	default:
		return fmt.Errorf("--source must be %q or %q", model.SourceFile, model.SourceLibrary)
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
