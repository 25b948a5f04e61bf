// Package main provides the CLI entrypoint for vocadrill.
package main

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/vocadrill/internal/config"
	"github.com/verte-zerg/vocadrill/internal/console"
	"github.com/verte-zerg/vocadrill/internal/deck"
	"github.com/verte-zerg/vocadrill/internal/generator"
	"github.com/verte-zerg/vocadrill/internal/model"
	"github.com/verte-zerg/vocadrill/internal/persist"
	"github.com/verte-zerg/vocadrill/internal/quiz"
	"github.com/verte-zerg/vocadrill/internal/stats"
	"github.com/verte-zerg/vocadrill/internal/store"
	"github.com/verte-zerg/vocadrill/internal/tui"
)

const (
	defaultTestSize    = 100
	defaultWeakTop     = 20
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultCurveWindow = 5
	defaultStatsTop    = 10
)

var (
	deckDir   string
	logLevel  string
	logFormat string

	quizMode       string
	quizTestSize   int
	quizSeed       int64
	quizTUI        bool
	quizFocusWeak  bool
	quizWeakTop    int
	quizWeakFactor float64
	quizWeakWindow int

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsTop         int
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "vocadrill [deck...]",
		Short:         "Vocabulary drill trainer",
		Long:          "Drill word/meaning pairs from CSV decks. Each deck argument names <dir>/<deck>.csv.",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runQuizCmd,
	}

	rootCmd.PersistentFlags().StringVar(&deckDir, "dir", config.DefaultDeckDir(), "deck directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")

	rootCmd.Flags().StringVar(&quizMode, "mode", "", "practice, test or wrong (default: ask)")
	rootCmd.Flags().IntVar(&quizTestSize, "test-size", defaultTestSize, "number of items in test mode")
	rootCmd.Flags().Int64Var(&quizSeed, "seed", 0, "shuffle seed (0: random)")
	rootCmd.Flags().BoolVar(&quizTUI, "tui", false, "run drills full screen")
	rootCmd.Flags().BoolVar(&quizFocusWeak, "focus-weak", false, "ask historically missed items earlier")
	rootCmd.Flags().IntVar(&quizWeakTop, "weak-top", defaultWeakTop, "number of weak items to favor")
	rootCmd.Flags().Float64Var(&quizWeakFactor, "weak-factor", defaultWeakFactor, "weight added per past failure")
	rootCmd.Flags().IntVar(&quizWeakWindow, "weak-window", defaultWeakWindow, "number of recent runs to compute weak items")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newDecksCmd())
	rootCmd.AddCommand(newWrongCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

// loadCommon merges the config file into the shared flags and builds the logger.
func loadCommon(cmd *cobra.Command) (config.FileConfig, *logrus.Logger, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "dir", &deckDir, fileCfg.Quiz.Dir)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)

	logger, err := config.NewLogger(os.Stderr, logLevel, logFormat)
	if err != nil {
		return config.FileConfig{}, nil, fmt.Errorf("invalid log settings: %w", err)
	}
	return fileCfg, logger, nil
}

func runQuizCmd(cmd *cobra.Command, args []string) error {
	fileCfg, logger, err := loadCommon(cmd)
	if err != nil {
		return err
	}
	applyStringConfig(cmd, "mode", &quizMode, fileCfg.Quiz.Mode)
	applyIntConfig(cmd, "test-size", &quizTestSize, fileCfg.Quiz.TestSize)
	applyInt64Config(cmd, "seed", &quizSeed, fileCfg.Quiz.Seed)
	applyBoolConfig(cmd, "tui", &quizTUI, fileCfg.Quiz.TUI)
	applyBoolConfig(cmd, "focus-weak", &quizFocusWeak, fileCfg.Quiz.FocusWeak)
	applyIntConfig(cmd, "weak-top", &quizWeakTop, fileCfg.Quiz.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &quizWeakFactor, fileCfg.Quiz.WeakFactor)
	applyIntConfig(cmd, "weak-window", &quizWeakWindow, fileCfg.Quiz.WeakWindow)

	cfg := model.Config{
		DeckDir:    deckDir,
		Decks:      args,
		Mode:       quizMode,
		TestSize:   quizTestSize,
		Seed:       quizSeed,
		TUI:        quizTUI,
		FocusWeak:  quizFocusWeak,
		WeakTop:    quizWeakTop,
		WeakFactor: quizWeakFactor,
		WeakWindow: quizWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	cons := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	if cfg.Mode == "" {
		mode, err := cons.SelectMode()
		if err != nil {
			return fmt.Errorf("failed to select mode: %w", err)
		}
		cfg.Mode = mode
	}
	if cfg.Mode != model.ModeWrong && len(cfg.Decks) == 0 {
		return fmt.Errorf("no deck given\nRun: vocadrill decks --dir %s", cfg.DeckDir)
	}

	st := openStore(logger)
	if st != nil {
		defer closeStore(st, logger)
	}

	runner := quiz.NewRunner(cfg, generator.New(cfg.Seed), st, logger)
	var driver quiz.Driver = cons
	if cfg.TUI && term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		driver = tui.NewDriver(cons, logger, tea.WithAltScreen())
	} else if cfg.TUI {
		logger.Info("not a terminal; using line mode")
	}

	ctx := cmd.Context()
	switch cfg.Mode {
	case model.ModeWrong:
		return reviewWrongDeck(runner, cons, driver, cfg.DeckDir)
	default:
		pairs, err := deck.LoadCollection(cfg.DeckDir, cfg.Decks)
		if err != nil {
			if len(pairs) == 0 {
				return fmt.Errorf("failed to load deck: %w", err)
			}
			logger.WithError(err).Warn("deck partially loaded")
		}
		logger.WithFields(logrus.Fields{"items": len(pairs), "mode": cfg.Mode}).Debug("starting run")
		base := deck.BaseName(cfg.DeckDir, cfg.Decks)
		if cfg.Mode == model.ModeTest {
			runner.Test(ctx, driver, pairs, base)
		} else {
			runner.Practice(ctx, driver, pairs, base)
		}
		return nil
	}
}

func reviewWrongDeck(runner *quiz.Runner, cons *console.Console, driver quiz.Driver, dir string) error {
	info, ok := cons.ChooseWrongDeck(dir)
	if !ok {
		return nil
	}
	if err := runner.Review(driver, info); err != nil {
		cons.Notice("Failed to load wrong deck or deck is empty.")
		if errors.Is(err, deck.ErrEmpty) {
			return nil
		}
		return err
	}
	return nil
}

func openStore(logger logrus.FieldLogger) *store.Store {
	path := config.DefaultDBPath()
	st, err := store.Open(path)
	if err != nil {
		logger.WithError(err).WithField("path", path).Warn("history disabled: failed to open db")
		return nil
	}
	return st
}

func closeStore(st *store.Store, logger logrus.FieldLogger) {
	if cerr := st.Close(); cerr != nil {
		logger.WithError(cerr).Warn("failed to close db")
	}
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

func newDecksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decks",
		Short: "List deck collections and wrong decks",
		Args:  cobra.NoArgs,
		RunE:  runDecksCmd,
	}
}

func runDecksCmd(cmd *cobra.Command, _ []string) error {
	if _, _, err := loadCommon(cmd); err != nil {
		return err
	}
	names, err := deck.ListCollections(deckDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("deck directory does not exist: %s", deckDir)
		}
		return fmt.Errorf("failed to read deck directory: %w", err)
	}
	out := cmd.OutOrStdout()
	if len(names) == 0 {
		logErrf("No decks found in %s\n", deckDir)
	}
	for _, name := range names {
		if _, err := fmt.Fprintln(out, name); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	wrong, err := persist.ListWrongDecks(deckDir)
	if err != nil {
		return err
	}
	if len(wrong) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(out, "\nWrong decks:"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	for _, d := range wrong {
		if _, err := fmt.Fprintf(out, "%s [%s]\n", d.Display, d.Modified.Format("2006-01-02 15:04")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newWrongCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wrong",
		Short: "Review or delete wrong decks",
		Args:  cobra.NoArgs,
		RunE:  runWrongCmd,
	}
}

func runWrongCmd(cmd *cobra.Command, _ []string) error {
	_, logger, err := loadCommon(cmd)
	if err != nil {
		return err
	}
	cons := console.New(cmd.InOrStdin(), cmd.OutOrStdout(), logger)
	runner := quiz.NewRunner(model.Config{DeckDir: deckDir, Mode: model.ModeWrong}, generator.New(0), nil, logger)
	return reviewWrongDeck(runner, cons, cons, deckDir)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [deck...]",
		Short: "Show run history",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().IntVar(&statsTop, "top", defaultStatsTop, "number of most-missed items to show")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, args []string) error {
	_, logger, err := loadCommon(cmd)
	if err != nil {
		return err
	}
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	cfg := model.StatsConfig{
		Base:        deck.BaseName(deckDir, args),
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Top:         statsTop,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer closeStore(st, logger)

	report, err := stats.BuildReport(cmd.Context(), st, cfg)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	out := cmd.OutOrStdout()
	if err := stats.RenderSummary(out, report.Runs); err != nil {
		return err
	}
	if err := stats.RenderCurve(out, report.Runs, cfg.CurveWindow, 0); err != nil {
		return err
	}
	if len(report.Runs) == 0 {
		return nil
	}
	return stats.RenderMissTable(out, report.MissesWindow, cfg.Top)
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyInt64Config(cmd *cobra.Command, name string, target, value *int64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# vocadrill configuration
# Uncomment a value to enable it. CLI flags override config values.

[quiz]
# dir = %q
# mode = "practice"       # practice, test or wrong; unset asks on start
# test-size = %d          # Items per test run
# seed = 0                # Shuffle seed, 0 is random
# tui = false             # Run drills full screen
# focus-weak = false      # Ask historically missed items earlier
# weak-top = %d           # Number of weak items to favor
# weak-factor = %.1f      # Weight added per past failure
# weak-window = %d        # Number of recent runs to compute weak items

[log]
# level = %q              # debug, info, warn or error
# format = %q             # text or json
`,
		config.DefaultDeckDir(),
		defaultTestSize,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		config.DefaultLogLevel,
		config.DefaultLogFormat,
	)
}

func validateConfig(cfg model.Config) error {
	switch cfg.Mode {
	case "", model.ModePractice, model.ModeTest, model.ModeWrong:
	default:
		return fmt.Errorf("--mode must be one of practice, test, wrong")
	}
	if cfg.DeckDir == "" {
		return fmt.Errorf("--dir must not be empty")
	}
	if cfg.TestSize <= 0 {
		return fmt.Errorf("--test-size must be > 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
