package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiclock/internal/spinner"
	"github.com/verte-zerg/tuiclock/internal/timeengine"
)

const (
	wheelHours = iota
	wheelMinutes
	wheelSeconds
)

const flickSlots = 5

var defaultPresets = []time.Duration{5 * time.Minute, 10 * time.Minute, 15 * time.Minute}

var (
	clockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true).Padding(0, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	doneStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)
)

// timerView is the countdown tab: three wheels select the duration and
// the engine drives the display once started.
type timerView struct {
	engine   *timeengine.Engine
	wheels   []*spinner.Spinner
	focus    int
	presets  []time.Duration
	interval time.Duration

	done   bool
	notice bool
}

func newTimerView(clock timeengine.Clock, interval time.Duration, presets []time.Duration) *timerView {
	t := &timerView{
		presets:  presets,
		interval: interval,
		focus:    wheelMinutes,
	}
	if len(t.presets) == 0 {
		t.presets = defaultPresets
	}
	t.engine = timeengine.New(timeengine.CountDown,
		timeengine.WithClock(clock),
		timeengine.WithOnComplete(t.complete),
	)
	hours := spinner.New("HRS", spinner.Bounds{Min: 0, Max: 23},
		spinner.WithOnChange(t.changed),
	)
	minutes := spinner.New("MIN", spinner.Bounds{Min: 0, Max: 59},
		spinner.WithOnChange(t.changed),
		spinner.WithOnReachedMax(func() { t.carry(wheelHours, 1) }),
		spinner.WithOnReachedMin(func() { t.carry(wheelHours, -1) }),
	)
	seconds := spinner.New("SEC", spinner.Bounds{Min: 0, Max: 59},
		spinner.WithOnChange(t.changed),
		spinner.WithOnReachedMax(func() { t.carry(wheelMinutes, 1) }),
		spinner.WithOnReachedMin(func() { t.carry(wheelMinutes, -1) }),
	)
	t.wheels = []*spinner.Spinner{hours, minutes, seconds}
	return t
}

// selected is the duration composed from the wheels.
func (t *timerView) selected() time.Duration {
	return timeengine.Compose(t.wheels[wheelHours].Value(), t.wheels[wheelMinutes].Value(), t.wheels[wheelSeconds].Value())
}

func (t *timerView) locked() bool {
	return t.engine.Running()
}

// carry moves the neighbouring wheel by one. SetValue clamps, so the carry
// saturates at the neighbour's bounds instead of wrapping it.
func (t *timerView) carry(idx, delta int) {
	w := t.wheels[idx]
	w.SetValue(w.Value() + delta)
}

// changed drops a paused run once the selection is edited.
func (t *timerView) changed(int) {
	if t.engine.State() == timeengine.Stopped {
		t.engine.Reset()
	}
	t.done = false
}

func (t *timerView) complete() {
	t.done = true
	t.notice = true
}

// takeNotice reports a completion not yet delivered to the notifier.
func (t *timerView) takeNotice() bool {
	if !t.notice {
		return false
	}
	t.notice = false
	return true
}

func (t *timerView) toggle() tea.Cmd {
	if t.engine.Running() {
		t.engine.Stop()
		return nil
	}
	t.done = false
	if !t.engine.Start(t.selected()) {
		return nil
	}
	return tickCmd(t.interval, tabTimer, t.engine.Token())
}

func (t *timerView) reset() {
	t.engine.Reset()
	t.done = false
	t.notice = false
	for _, w := range t.wheels {
		w.SetValue(0)
	}
}

func (t *timerView) step(n int) {
	if t.locked() {
		return
	}
	t.wheels[t.focus].Step(n)
}

func (t *timerView) moveFocus(delta int) {
	t.focus = (t.focus + delta + len(t.wheels)) % len(t.wheels)
}

// applyPreset loads a preset into the wheels. Presets beyond the hour
// wheel are clamped to 23:59:59.
func (t *timerView) applyPreset(idx int) bool {
	if t.locked() || idx < 0 || idx >= len(t.presets) {
		return false
	}
	h, m, s, _ := timeengine.Split(t.presets[idx])
	if h > 23 {
		h, m, s = 23, 59, 59
	}
	t.wheels[wheelHours].SetValue(h)
	t.wheels[wheelMinutes].SetValue(m)
	t.wheels[wheelSeconds].SetValue(s)
	t.changed(0)
	return true
}

func (t *timerView) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.StartStop):
		return t.toggle()
	case key.Matches(msg, keys.Reset):
		t.reset()
	case key.Matches(msg, keys.Left):
		t.moveFocus(-1)
	case key.Matches(msg, keys.Right):
		t.moveFocus(1)
	case key.Matches(msg, keys.Up):
		t.step(1)
	case key.Matches(msg, keys.Down):
		t.step(-1)
	case key.Matches(msg, keys.FlickUp):
		t.step(flickSlots)
	case key.Matches(msg, keys.FlickDown):
		t.step(-flickSlots)
	case key.Matches(msg, keys.Preset):
		t.applyPreset(int(msg.String()[0] - '1'))
	}
	return nil
}

func (t *timerView) handleMouse(msg tea.MouseMsg) {
	if n := wheelDelta(msg); n != 0 {
		t.step(n)
	}
}

// display is the spinner composite until a run starts, then the engine.
func (t *timerView) display() string {
	if t.engine.State() == timeengine.Idle {
		return timeengine.FormatClock(t.selected())
	}
	return t.engine.Format()
}

func (t *timerView) status() string {
	switch {
	case t.done:
		return doneStyle.Render("Time's up!")
	case t.engine.Running():
		return statusStyle.Render("Running")
	case t.engine.State() == timeengine.Stopped:
		return statusStyle.Render("Paused")
	case t.selected() == 0:
		return statusStyle.Render("Pick a duration")
	default:
		return statusStyle.Render("Ready")
	}
}

func (t *timerView) renderPresets() string {
	parts := make([]string, 0, len(t.presets))
	for i, p := range t.presets {
		if i >= 9 {
			break
		}
		parts = append(parts, fmt.Sprintf("%d: %s", i+1, presetLabel(p)))
	}
	return statusStyle.Render(strings.Join(parts, "  "))
}

func (t *timerView) View(width, height int) string {
	wheels := make([]string, 0, len(t.wheels))
	for i, w := range t.wheels {
		wheels = append(wheels, renderWheel(w, i == t.focus, t.locked()))
	}
	content := lipgloss.JoinVertical(lipgloss.Center,
		clockStyle.Render(t.display()),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, wheels...),
		"",
		t.status(),
		t.renderPresets(),
	)
	if width <= 0 || height <= 0 {
		return content
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content)
}

// presetLabel renders 5m0s as 5m and 1h30m0s as 1h30m.
func presetLabel(d time.Duration) string {
	s := d.String()
	if strings.HasSuffix(s, "m0s") {
		s = strings.TrimSuffix(s, "0s")
	}
	if strings.HasSuffix(s, "h0m") {
		s = strings.TrimSuffix(s, "0m")
	}
	return s
}
