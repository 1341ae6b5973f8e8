package timeengine

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func newFake() *FakeClock {
	return NewFakeClock(time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC))
}

func TestFormatClockWholeSeconds(t *testing.T) {
	for h := 0; h < 24; h += 5 {
		for m := 0; m < 60; m += 7 {
			for s := 0; s < 60; s += 11 {
				got := FormatClock(Compose(h, m, s))
				want := pad2(h) + ":" + pad2(m) + ":" + pad2(s) + ".00"
				if got != want {
					t.Fatalf("FormatClock(%d,%d,%d) = %q, want %q", h, m, s, got, want)
				}
			}
		}
	}
}

func pad2(v int) string {
	return string([]byte{byte('0' + v/10), byte('0' + v%10)})
}

func TestFormatCentiseconds(t *testing.T) {
	d := 2*time.Hour + 3*time.Minute + 4*time.Second + 567*time.Millisecond
	if got := FormatClock(d); got != "02:03:04.56" {
		t.Fatalf("unexpected clock format: %q", got)
	}
	if got := FormatStopwatch(d); got != "123:04.56" {
		t.Fatalf("unexpected stopwatch format: %q", got)
	}
	if got := FormatClock(-time.Second); got != "00:00:00.00" {
		t.Fatalf("expected negative to clamp, got %q", got)
	}
}

func TestStartIsIdempotent(t *testing.T) {
	clock := newFake()
	e := New(CountUp, WithClock(clock))
	if !e.Start(0) {
		t.Fatalf("expected first start to succeed")
	}
	token := e.Token()
	clock.Advance(300 * time.Millisecond)
	if e.Start(0) {
		t.Fatalf("expected second start to be ignored")
	}
	if e.Token() != token {
		t.Fatalf("second start must not issue a new token")
	}
	if got := e.Poll(); got != 300*time.Millisecond {
		t.Fatalf("expected 300ms, got %v", got)
	}
}

func TestCountdownZeroTargetIsNoop(t *testing.T) {
	e := New(CountDown, WithClock(newFake()))
	if e.Start(0) {
		t.Fatalf("expected zero countdown to be ignored")
	}
	if e.State() != Idle {
		t.Fatalf("expected idle, got %v", e.State())
	}
}

func TestCountdownCompletesOnce(t *testing.T) {
	clock := newFake()
	fired := 0
	e := New(CountDown, WithClock(clock), WithOnComplete(func() { fired++ }))
	if !e.Start(Compose(0, 0, 5)) {
		t.Fatalf("expected countdown to start")
	}
	clock.Advance(2500 * time.Millisecond)
	if got := e.Format(); got != "00:00:02.50" {
		t.Fatalf("unexpected remaining: %q", got)
	}
	clock.Advance(2500 * time.Millisecond)
	if got := e.Poll(); got != 0 {
		t.Fatalf("expected zero, got %v", got)
	}
	clock.Advance(time.Second)
	e.Poll()
	if e.Running() {
		t.Fatalf("expected countdown to stop itself")
	}
	if got := e.Format(); got != "00:00:00.00" {
		t.Fatalf("unexpected display: %q", got)
	}
	if fired != 1 {
		t.Fatalf("expected one completion, got %d", fired)
	}
}

func TestCountdownResumesFromRemainder(t *testing.T) {
	clock := newFake()
	e := New(CountDown, WithClock(clock))
	e.Start(10 * time.Second)
	clock.Advance(4 * time.Second)
	e.Stop()
	clock.Advance(time.Minute)
	if got := e.Elapsed(); got != 6*time.Second {
		t.Fatalf("expected frozen 6s, got %v", got)
	}
	e.Start(10 * time.Second)
	clock.Advance(time.Second)
	if got := e.Poll(); got != 5*time.Second {
		t.Fatalf("expected 5s after resume, got %v", got)
	}
}

func TestStopwatchLapsAndReset(t *testing.T) {
	clock := newFake()
	e := New(CountUp, WithClock(clock))
	if _, ok := e.Lap(); ok {
		t.Fatalf("lap must be ignored while idle")
	}
	e.Start(0)
	clock.Advance(1500 * time.Millisecond)
	if _, ok := e.Lap(); !ok {
		t.Fatalf("expected lap while running")
	}
	if diff := cmp.Diff([]time.Duration{1500 * time.Millisecond}, e.Laps()); diff != "" {
		t.Fatalf("laps mismatch (-want +got):\n%s", diff)
	}
	e.Stop()
	e.Reset()
	if len(e.Laps()) != 0 {
		t.Fatalf("expected laps cleared")
	}
	if got := e.Format(); got != "00:00.00" {
		t.Fatalf("unexpected display after reset: %q", got)
	}
}

func TestStopwatchResumeKeepsElapsed(t *testing.T) {
	clock := newFake()
	e := New(CountUp, WithClock(clock))
	e.Start(0)
	clock.Advance(time.Second)
	e.Stop()
	clock.Advance(time.Hour)
	e.Start(0)
	clock.Advance(250 * time.Millisecond)
	if got := e.Poll(); got != 1250*time.Millisecond {
		t.Fatalf("expected 1.25s, got %v", got)
	}
}

func TestStopAndResetInvalidateToken(t *testing.T) {
	e := New(CountUp, WithClock(newFake()))
	e.Start(0)
	running := e.Token()
	e.Stop()
	if e.Token() == running {
		t.Fatalf("stop must invalidate the run token")
	}
	e.Start(0)
	running = e.Token()
	e.Reset()
	if e.Token() == running {
		t.Fatalf("reset must invalidate the run token")
	}
}

func TestRunReturnsOnCompletion(t *testing.T) {
	fired := 0
	e := New(CountDown, WithOnComplete(func() { fired++ }))
	e.Start(30 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var last time.Duration = -1
	if err := e.Run(ctx, time.Millisecond, func(d time.Duration) { last = d }); err != nil {
		t.Fatalf("run: %v", err)
	}
	if fired != 1 {
		t.Fatalf("expected one completion, got %d", fired)
	}
	if last != 0 {
		t.Fatalf("expected final tick at zero, got %v", last)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	e := New(CountUp)
	e.Start(0)
	ctx, cancel := context.WithCancel(context.Background())
	ticks := 0
	err := e.Run(ctx, time.Millisecond, func(time.Duration) {
		ticks++
		if ticks == 3 {
			cancel()
		}
	})
	if err != context.Canceled {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
