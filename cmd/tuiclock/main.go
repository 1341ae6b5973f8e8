// Package main provides the CLI entrypoint for tuiclock.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/tuiclock/internal/config"
	"github.com/verte-zerg/tuiclock/internal/model"
	"github.com/verte-zerg/tuiclock/internal/notify"
	"github.com/verte-zerg/tuiclock/internal/store"
	"github.com/verte-zerg/tuiclock/internal/timeengine"
	"github.com/verte-zerg/tuiclock/internal/tui"
)

const (
	defaultTab              = "stopwatch"
	defaultInterval         = timeengine.DefaultInterval
	defaultBell             = true
	defaultHeadlessInterval = 50 * time.Millisecond

	logEnv = "TUICLOCK_LOG"
)

var (
	clockTab      string
	clockInterval time.Duration
	clockBell     bool

	headlessInterval time.Duration
	headlessBell     bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "tuiclock",
		Short:         "Terminal stopwatch, countdown timer and alarm list",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runClockCmd,
	}

	rootCmd.Flags().StringVar(&clockTab, "tab", defaultTab, "initial tab: stopwatch, timer or alarms")
	rootCmd.Flags().DurationVar(&clockInterval, "interval", defaultInterval, "display refresh interval")
	rootCmd.Flags().BoolVar(&clockBell, "bell", defaultBell, "ring the terminal bell when a countdown finishes")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTimerCmd())
	rootCmd.AddCommand(newStopwatchCmd())

	return rootCmd
}

func runClockCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "tab", &clockTab, fileCfg.Clock.Tab)
	if err := applyDurationConfig(cmd, "interval", &clockInterval, fileCfg.Clock.Interval); err != nil {
		return err
	}
	applyBoolConfig(cmd, "bell", &clockBell, fileCfg.Clock.Bell)

	presets, err := config.ParsePresets(fileCfg.Timer.Presets)
	if err != nil {
		return err
	}
	alarms, err := config.ToAlarms(fileCfg.Alarms)
	if err != nil {
		return err
	}

	cfg := model.Config{
		Tab:      clockTab,
		Interval: clockInterval,
		Bell:     clockBell,
		Presets:  presets,
		Alarms:   alarms,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	st, err := store.Open(store.MemoryDSN)
	if err != nil {
		return fmt.Errorf("failed to open alarm store: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close alarm store: %v\n", cerr)
		}
	}()
	if err := seedAlarms(cmd.Context(), st, cfg.Alarms); err != nil {
		return err
	}

	closeLog, err := setupLogging()
	if err != nil {
		return err
	}
	defer closeLog()

	var notifier notify.Notifier = notify.Nop{}
	if cfg.Bell {
		notifier = notify.Bell{W: os.Stderr}
	}

	m := tui.NewModel(tui.Options{
		Config:   cfg,
		Store:    st,
		Notifier: notifier,
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func seedAlarms(ctx context.Context, st *store.Store, alarms []model.Alarm) error {
	for _, a := range alarms {
		if _, err := st.InsertAlarm(ctx, a); err != nil {
			return fmt.Errorf("failed to seed alarms: %w", err)
		}
	}
	return nil
}

// setupLogging sends the standard logger to $TUICLOCK_LOG. Without it the
// logger is silenced, since stderr is hidden behind the alt screen.
func setupLogging() (func(), error) {
	path := strings.TrimSpace(os.Getenv(logEnv))
	if path == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(path, "tuiclock")
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
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

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
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

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if value == nil {
		return nil
	}
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*value))
	if err != nil {
		return fmt.Errorf("invalid %s in config: %w", name, err)
	}
	*target = d
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# tuiclock configuration
# Uncomment a value to enable it. CLI flags override config values.

[clock]
# tab = %q          # Initial tab: stopwatch, timer or alarms
# interval = %q          # Display refresh interval
# bell = %t               # Ring the terminal bell when a countdown finishes

[timer]
# presets = ["5m", "10m", "15m"]   # Quick-set durations on keys 1-9

# [[alarms]]
# time = "8:43"
# description = "wake up"
# enabled = true
`,
		defaultTab,
		defaultInterval.String(),
		defaultBell,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Interval <= 0 {
		return fmt.Errorf("--interval must be > 0")
	}
	valid := false
	for _, name := range tui.TabNames {
		if strings.EqualFold(strings.TrimSpace(cfg.Tab), name) {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("--tab must be one of %s", strings.Join(tui.TabNames, ", "))
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
