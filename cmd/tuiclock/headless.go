package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/tuiclock/internal/notify"
	"github.com/verte-zerg/tuiclock/internal/stats"
	"github.com/verte-zerg/tuiclock/internal/timeengine"
)

// maxCountdown matches the largest value the timer wheels can show.
const maxCountdown = 23*time.Hour + 59*time.Minute + 59*time.Second

func newTimerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timer <duration>",
		Short: "Run a countdown without the TUI",
		Long:  "Run a countdown without the TUI. The duration is a Go duration (90s, 5m) or [[HH:]MM:]SS.",
		Args:  cobra.ExactArgs(1),
		RunE:  runTimerCmd,
	}
	cmd.Flags().DurationVar(&headlessInterval, "interval", defaultHeadlessInterval, "refresh interval")
	cmd.Flags().BoolVar(&headlessBell, "bell", defaultBell, "ring the terminal bell when done")
	return cmd
}

func newStopwatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stopwatch",
		Short: "Run a stopwatch without the TUI; Enter records a lap",
		Args:  cobra.NoArgs,
		RunE:  runStopwatchCmd,
	}
	cmd.Flags().DurationVar(&headlessInterval, "interval", defaultHeadlessInterval, "refresh interval")
	return cmd
}

func runTimerCmd(cmd *cobra.Command, args []string) error {
	target, err := parseCountdown(args[0])
	if err != nil {
		return err
	}
	if headlessInterval <= 0 {
		return fmt.Errorf("--interval must be > 0")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	line := newStatusLine(out)
	done := false
	e := timeengine.New(timeengine.CountDown, timeengine.WithOnComplete(func() { done = true }))
	e.Start(target)
	err = e.Run(ctx, headlessInterval, func(time.Duration) {
		line.update(e.Format())
	})
	line.finish()
	if errors.Is(err, context.Canceled) {
		logErrln("countdown cancelled at", e.Format())
		return nil
	}
	if err != nil {
		return err
	}
	if lerr := line.err(); lerr != nil {
		return fmt.Errorf("failed to write output: %w", lerr)
	}
	if !done {
		return nil
	}
	var notifier notify.Notifier = notify.Nop{}
	if headlessBell {
		notifier = notify.Bell{W: out}
	}
	if err := notifier.Notify("Timer", timeengine.FormatClock(target)+" countdown finished"); err != nil {
		logErrf("%v\n", err)
	}
	if _, err := fmt.Fprintln(out, "Time's up!"); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func runStopwatchCmd(cmd *cobra.Command, _ []string) error {
	if headlessInterval <= 0 {
		return fmt.Errorf("--interval must be > 0")
	}
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	laps := make(chan struct{}, 16)
	go readLaps(ctx, cmd.InOrStdin(), laps)
	logErrln("Press Enter to record a lap, Ctrl-C to stop.")

	out := cmd.OutOrStdout()
	line := newStatusLine(out)
	e := timeengine.New(timeengine.CountUp)
	e.Start(0)
	err := e.Run(ctx, headlessInterval, func(time.Duration) {
		select {
		case <-laps:
			if d, ok := e.Lap(); ok {
				line.above(fmt.Sprintf("Lap %d  %s", len(e.Laps()), timeengine.FormatStopwatch(d)))
			}
		default:
		}
		line.update(e.Format())
	})
	e.Stop()
	line.finish()
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	if _, err := fmt.Fprintf(out, "Total %s\n", e.Format()); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderLapTable(out, e.Laps()); err != nil {
		return fmt.Errorf("failed to write lap table: %w", err)
	}
	return nil
}

// readLaps signals one lap per input line until r is exhausted or ctx is
// done.
func readLaps(ctx context.Context, r io.Reader, laps chan<- struct{}) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case laps <- struct{}{}:
		case <-ctx.Done():
			return
		}
	}
}

// parseCountdown accepts a Go duration or [[HH:]MM:]SS and clamps the
// result to maxCountdown.
func parseCountdown(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	var d time.Duration
	if strings.Contains(s, ":") {
		parts := strings.Split(s, ":")
		if len(parts) > 3 {
			return 0, fmt.Errorf("invalid duration %q (expected [[HH:]MM:]SS)", s)
		}
		total := 0
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n < 0 {
				return 0, fmt.Errorf("invalid duration %q (expected [[HH:]MM:]SS)", s)
			}
			total = total*60 + n
		}
		d = time.Duration(total) * time.Second
	} else {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", s, err)
		}
		d = parsed
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive")
	}
	if d > maxCountdown {
		d = maxCountdown
	}
	return d, nil
}

// statusLine rewrites one line in place on a terminal. Elsewhere it prints
// a line per whole second so logs stay readable.
type statusLine struct {
	w     io.Writer
	tty   bool
	width int
	last  string
	werr  error
}

func newStatusLine(w io.Writer) *statusLine {
	s := &statusLine{w: w}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		s.tty = true
		if width, _, err := term.GetSize(int(f.Fd())); err == nil {
			s.width = width
		}
	}
	return s
}

func (s *statusLine) update(text string) {
	if s.tty {
		s.write("\r" + s.pad(text))
		return
	}
	whole := text
	if i := strings.LastIndex(text, "."); i >= 0 {
		whole = text[:i]
	}
	if whole == s.last {
		return
	}
	s.last = whole
	s.write(whole + "\n")
}

// above prints text on its own line, keeping the status line below it.
func (s *statusLine) above(text string) {
	if s.tty {
		s.write("\r" + s.pad(text) + "\n")
		return
	}
	s.write(text + "\n")
}

func (s *statusLine) finish() {
	if s.tty {
		s.write("\n")
	}
}

func (s *statusLine) err() error {
	return s.werr
}

func (s *statusLine) pad(text string) string {
	if s.width <= 1 || len(text) >= s.width-1 {
		return text
	}
	return text + strings.Repeat(" ", s.width-1-len(text))
}

func (s *statusLine) write(text string) {
	if s.werr != nil {
		return
	}
	_, s.werr = io.WriteString(s.w, text)
}
