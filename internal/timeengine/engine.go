package timeengine

import "time"

// Mode selects the counting direction.
type Mode int

const (
	// CountUp measures elapsed time from zero (stopwatch).
	CountUp Mode = iota
	// CountDown measures remaining time towards zero (timer).
	CountDown
)

func (m Mode) String() string {
	if m == CountDown {
		return "countdown"
	}
	return "stopwatch"
}

// State is the engine lifecycle state.
type State int

const (
	Idle State = iota
	Running
	Stopped
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithOnComplete registers the callback fired once when a countdown
// reaches zero.
func WithOnComplete(fn func()) Option {
	return func(e *Engine) {
		e.onComplete = fn
	}
}

// Engine computes a displayed duration from an anchor timestamp. While
// running, the value is always derived from the clock and never stored.
// An Engine is not safe for concurrent use; all calls belong to one
// goroutine (the UI loop or Run).
type Engine struct {
	mode  Mode
	clock Clock
	state State

	// accumulated is the frozen displayed value while not running. While
	// running it holds the base the anchor offsets from: elapsed so far
	// for CountUp, remaining at start for CountDown.
	accumulated time.Duration
	anchor      time.Time
	target      time.Duration
	laps        []time.Duration

	token      uint64
	completed  bool
	onComplete func()
}

// New returns an idle engine.
func New(mode Mode, opts ...Option) *Engine {
	e := &Engine{
		mode:  mode,
		clock: SystemClock{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Mode returns the counting direction.
func (e *Engine) Mode() Mode { return e.mode }

// State returns the lifecycle state.
func (e *Engine) State() State { return e.state }

// Running reports whether the engine is counting.
func (e *Engine) Running() bool { return e.state == Running }

// Target returns the countdown duration of the current or last run.
func (e *Engine) Target() time.Duration { return e.target }

// Token identifies the current run. Stop and Reset invalidate it, so any
// poll scheduled with an older token must be dropped by its owner.
func (e *Engine) Token() uint64 { return e.token }

// Start begins counting. It returns false when nothing started: the
// engine was already running, or a countdown had no time left to count.
func (e *Engine) Start(target time.Duration) bool {
	if e.state == Running {
		return false
	}
	if e.mode == CountDown {
		base := target
		if e.state == Stopped && e.accumulated > 0 {
			base = e.accumulated
		} else {
			e.target = target
		}
		if base <= 0 {
			return false
		}
		e.accumulated = base
	}
	e.anchor = e.clock.Now()
	e.state = Running
	e.completed = false
	e.token++
	return true
}

// Stop freezes the displayed value.
func (e *Engine) Stop() {
	if e.state != Running {
		return
	}
	e.accumulated = e.compute(e.clock.Now())
	e.anchor = time.Time{}
	e.state = Stopped
	e.token++
}

// Reset returns the engine to zero and clears laps.
func (e *Engine) Reset() {
	e.token++
	e.state = Idle
	e.accumulated = 0
	e.anchor = time.Time{}
	e.laps = nil
	e.completed = false
}

// Lap records the current value. Only a running stopwatch takes laps.
func (e *Engine) Lap() (time.Duration, bool) {
	if e.state != Running || e.mode != CountUp {
		return 0, false
	}
	d := e.compute(e.clock.Now())
	e.laps = append(e.laps, d)
	return d, true
}

// Laps returns the recorded laps in chronological order.
func (e *Engine) Laps() []time.Duration {
	if len(e.laps) == 0 {
		return nil
	}
	out := make([]time.Duration, len(e.laps))
	copy(out, e.laps)
	return out
}

// Poll recomputes the displayed duration. A countdown that reaches zero
// stops itself and fires the completion callback.
func (e *Engine) Poll() time.Duration {
	if e.state != Running {
		return e.accumulated
	}
	d := e.compute(e.clock.Now())
	if e.mode == CountDown && d <= 0 {
		e.finish()
		return 0
	}
	return d
}

// Elapsed returns the displayed duration without side effects.
func (e *Engine) Elapsed() time.Duration {
	if e.state != Running {
		return e.accumulated
	}
	return e.compute(e.clock.Now())
}

// Format renders the displayed duration in the layout of the mode.
func (e *Engine) Format() string {
	if e.mode == CountDown {
		return FormatClock(e.Elapsed())
	}
	return FormatStopwatch(e.Elapsed())
}

func (e *Engine) compute(now time.Time) time.Duration {
	since := now.Sub(e.anchor)
	if since < 0 {
		since = 0
	}
	if e.mode == CountUp {
		return e.accumulated + since
	}
	remaining := e.accumulated - since
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (e *Engine) finish() {
	e.accumulated = 0
	e.anchor = time.Time{}
	e.state = Stopped
	e.token++
	if e.completed {
		return
	}
	e.completed = true
	if e.onComplete != nil {
		e.onComplete()
	}
}
