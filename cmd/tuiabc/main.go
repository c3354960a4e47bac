// Package main provides the CLI entrypoint for tuiabc.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiabc/internal/config"
	"github.com/verte-zerg/tuiabc/internal/model"
	"github.com/verte-zerg/tuiabc/internal/sound"
	"github.com/verte-zerg/tuiabc/internal/stats"
	"github.com/verte-zerg/tuiabc/internal/statsui"
	"github.com/verte-zerg/tuiabc/internal/store"
	"github.com/verte-zerg/tuiabc/internal/tui"
)

const (
	defaultSound   = "errors"
	defaultRecord  = true
	defaultVisible = 9
	defaultWindow  = 5
	defaultWeakTop = 5
)

var (
	practiceSound   string
	practiceRecord  bool
	practiceVisible int

	statsSince  string
	statsLast   int
	statsWindow int
	statsPlain  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiabc",
		Short:         "Type the alphabet as fast as you can",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSound, "sound", defaultSound, "feedback sound: off, errors or all")
	rootCmd.Flags().BoolVar(&practiceRecord, "record", defaultRecord, "save finished runs to history")
	rootCmd.Flags().IntVar(&practiceVisible, "visible", defaultVisible, "letter tiles shown at once")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newExportCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(afero.NewOsFs(), config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "sound", &practiceSound, fileCfg.Practice.Sound)
	applyBoolConfig(cmd, "record", &practiceRecord, fileCfg.Practice.Record)
	applyIntConfig(cmd, "visible", &practiceVisible, fileCfg.Practice.Visible)

	mode, err := sound.ParseMode(practiceSound)
	if err != nil {
		return err
	}
	cfg := model.Config{
		Sound:   string(mode),
		Record:  practiceRecord,
		Visible: practiceVisible,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	var st *store.Store
	if cfg.Record {
		st, err = store.Open(config.DefaultDBPath())
		if err != nil {
			return fmt.Errorf("failed to open db: %w", err)
		}
		defer func() {
			if cerr := st.Close(); cerr != nil {
				logErrf("failed to close db: %v\n", cerr)
			}
		}()
	}

	player := sound.NewPlayer(mode, os.Stderr)
	program := tea.NewProgram(tui.NewModel(cfg, st, player), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
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
	if _, err := config.EnsureConfig(afero.NewOsFs(), path, defaultConfigTemplate()); err != nil {
		return err
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

func addHistoryFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N runs")
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show run history",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	addHistoryFlags(cmd)
	cmd.Flags().IntVar(&statsWindow, "window", defaultWindow, "moving average window")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print plain text instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	if statsWindow < 1 {
		return fmt.Errorf("--window must be >= 1")
	}
	out := cmd.OutOrStdout()
	if statsPlain || !isTerminal(out) {
		return renderPlainStats(out)
	}

	cfg, err := historyConfig()
	if err != nil {
		return err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	program := tea.NewProgram(statsui.NewModel(st, cfg, statsWindow, defaultWeakTop), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats UI: %w", err)
	}
	return nil
}

func renderPlainStats(out io.Writer) error {
	report, err := loadReport()
	if err != nil {
		return err
	}
	if err := stats.RenderSummary(out, report.Results); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Results) == 0 {
		return nil
	}
	if err := stats.RenderTrend(out, report.Results, statsWindow, 0); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderLetterTable(out, report.LetterAggs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if len(report.Weak) > 0 {
		if _, err := fmt.Fprintf(out, "Weakest letters: %s\n", strings.Join(report.Weak, " ")); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newExportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write run history as YAML",
		Args:  cobra.NoArgs,
		RunE:  runExportCmd,
	}
	addHistoryFlags(cmd)
	return cmd
}

func runExportCmd(cmd *cobra.Command, _ []string) error {
	report, err := loadReport()
	if err != nil {
		return err
	}
	return stats.ExportYAML(cmd.OutOrStdout(), report)
}

func loadReport() (stats.Report, error) {
	cfg, err := historyConfig()
	if err != nil {
		return stats.Report{}, err
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()
	report, err := stats.BuildReport(context.Background(), st, cfg, defaultWeakTop)
	if err != nil {
		return stats.Report{}, fmt.Errorf("failed to load history: %w", err)
	}
	return report, nil
}

func historyConfig() (model.StatsConfig, error) {
	cfg := model.StatsConfig{Last: statsLast}
	if statsLast < 0 {
		return cfg, fmt.Errorf("--last must be >= 0")
	}
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return cfg, fmt.Errorf("invalid --since value: %w", err)
		}
		cfg.Since = &parsed
	}
	return cfg, nil
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
	return fmt.Sprintf(`# tuiabc configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# sound = %q         # Feedback sound: off, errors or all
# record = %t           # Save finished runs to history
# visible = %d             # Letter tiles shown at once
`,
		defaultSound,
		defaultRecord,
		defaultVisible,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Visible < 3 {
		return fmt.Errorf("--visible must be >= 3")
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
