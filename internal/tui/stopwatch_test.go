package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func TestStopwatchLapThenReset(t *testing.T) {
	clock := testClock()
	sw := newStopwatchView(clock, 10*time.Millisecond)
	sw.setSize(80, 20)
	keys := defaultKeyMap()
	enter := tea.KeyMsg{Type: tea.KeyEnter}

	if cmd := sw.handleKey(keySpace(), keys); cmd == nil {
		t.Fatalf("expected start to schedule a tick")
	}
	clock.Advance(1500 * time.Millisecond)
	sw.handleKey(enter, keys)
	clock.Advance(time.Second)
	sw.handleKey(keyRunes("l"), keys)

	want := []time.Duration{1500 * time.Millisecond, 2500 * time.Millisecond}
	if diff := cmp.Diff(want, sw.engine.Laps()); diff != "" {
		t.Fatalf("laps mismatch (-want +got):\n%s", diff)
	}
	view := sw.View(80, 20)
	for _, s := range []string{"00:02.50", "Lap 2", "Lap 1", "Running"} {
		if !strings.Contains(view, s) {
			t.Fatalf("view missing %q:\n%s", s, view)
		}
	}
	if strings.Index(view, "Lap 2") > strings.Index(view, "Lap 1") {
		t.Fatalf("newest lap must be listed first:\n%s", view)
	}

	sw.handleKey(keySpace(), keys)
	sw.handleKey(enter, keys)
	if sw.engine.Laps() != nil {
		t.Fatalf("enter while stopped must reset laps")
	}
	if got := sw.engine.Format(); got != "00:00.00" {
		t.Fatalf("unexpected display after reset %q", got)
	}
}

func TestStopwatchLapIgnoredWhileStopped(t *testing.T) {
	sw := newStopwatchView(testClock(), 10*time.Millisecond)
	sw.handleKey(keyRunes("l"), defaultKeyMap())
	if sw.engine.Laps() != nil {
		t.Fatalf("stopped stopwatch must not record laps")
	}
}

func TestStopwatchResumeKeepsElapsed(t *testing.T) {
	clock := testClock()
	sw := newStopwatchView(clock, 10*time.Millisecond)
	keys := defaultKeyMap()
	sw.handleKey(keySpace(), keys)
	clock.Advance(2 * time.Second)
	sw.handleKey(keySpace(), keys)
	clock.Advance(time.Minute)
	sw.handleKey(keySpace(), keys)
	clock.Advance(time.Second)
	if got := sw.engine.Format(); got != "00:03.00" {
		t.Fatalf("unexpected display %q", got)
	}
}
