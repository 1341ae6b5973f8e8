package stats

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSplits(t *testing.T) {
	laps := []time.Duration{1500 * time.Millisecond, 2700 * time.Millisecond, 5 * time.Second}
	want := []time.Duration{1500 * time.Millisecond, 1200 * time.Millisecond, 2300 * time.Millisecond}
	if diff := cmp.Diff(want, Splits(laps)); diff != "" {
		t.Fatalf("splits mismatch (-want +got):\n%s", diff)
	}
	if Splits(nil) != nil {
		t.Fatalf("expected nil splits for no laps")
	}
}

func TestSummarize(t *testing.T) {
	laps := []time.Duration{2 * time.Second, 3 * time.Second, 6 * time.Second}
	got := Summarize(laps)
	want := Summary{
		Count:   3,
		Total:   6 * time.Second,
		Best:    time.Second,
		Worst:   3 * time.Second,
		Average: 2 * time.Second,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("summary mismatch (-want +got):\n%s", diff)
	}
	if (Summarize(nil) != Summary{}) {
		t.Fatalf("expected zero summary")
	}
}

func TestSparkline(t *testing.T) {
	if got := Sparkline([]time.Duration{time.Second, time.Second}); got != "++" {
		t.Fatalf("flat series should use the middle glyph, got %q", got)
	}
	got := Sparkline([]time.Duration{0, 5 * time.Second, 10 * time.Second})
	if len(got) != 3 || got[0] != ' ' || got[2] != '@' {
		t.Fatalf("unexpected sparkline %q", got)
	}
}

func TestRenderLapTableNewestFirst(t *testing.T) {
	var buf bytes.Buffer
	laps := []time.Duration{1500 * time.Millisecond, 2700 * time.Millisecond}
	if err := RenderLapTable(&buf, laps); err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d: %q", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "Lap 2") || !strings.HasPrefix(lines[2], "Lap 1") {
		t.Fatalf("expected newest lap first: %q", lines)
	}
	if !strings.Contains(lines[1], "00:01.20") {
		t.Fatalf("expected split for lap 2: %q", lines[1])
	}
	if !strings.HasPrefix(lines[3], "Best 00:01.20") {
		t.Fatalf("unexpected summary line: %q", lines[3])
	}
}

func TestRenderLapTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderLapTable(&buf, nil); err != nil {
		t.Fatalf("render: %v", err)
	}
	if buf.String() != "No laps recorded.\n" {
		t.Fatalf("unexpected output %q", buf.String())
	}
}
