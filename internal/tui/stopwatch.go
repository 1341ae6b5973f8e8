package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiclock/internal/stats"
	"github.com/verte-zerg/tuiclock/internal/timeengine"
)

var (
	bigClockStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(1, 4).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	sparkStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
)

// stopwatchView counts up and records laps.
type stopwatchView struct {
	engine   *timeengine.Engine
	interval time.Duration
	laps     viewport.Model
}

func newStopwatchView(clock timeengine.Clock, interval time.Duration) *stopwatchView {
	sw := &stopwatchView{
		engine:   timeengine.New(timeengine.CountUp, timeengine.WithClock(clock)),
		interval: interval,
		laps:     viewport.New(0, 0),
	}
	sw.refreshLaps()
	return sw
}

func (sw *stopwatchView) toggle() tea.Cmd {
	if sw.engine.Running() {
		sw.engine.Stop()
		return nil
	}
	if !sw.engine.Start(0) {
		return nil
	}
	return tickCmd(sw.interval, tabStopwatch, sw.engine.Token())
}

func (sw *stopwatchView) lap() {
	if _, ok := sw.engine.Lap(); ok {
		sw.refreshLaps()
		sw.laps.GotoTop()
	}
}

func (sw *stopwatchView) reset() {
	sw.engine.Reset()
	sw.refreshLaps()
}

func (sw *stopwatchView) handleKey(msg tea.KeyMsg, keys keyMap) tea.Cmd {
	switch {
	case key.Matches(msg, keys.StartStop):
		return sw.toggle()
	case key.Matches(msg, keys.LapReset):
		if sw.engine.Running() {
			sw.lap()
		} else {
			sw.reset()
		}
	case key.Matches(msg, keys.Lap):
		sw.lap()
	case key.Matches(msg, keys.Reset):
		sw.reset()
	default:
		var cmd tea.Cmd
		sw.laps, cmd = sw.laps.Update(msg)
		return cmd
	}
	return nil
}

func (sw *stopwatchView) refreshLaps() {
	laps := sw.engine.Laps()
	var buf strings.Builder
	if err := stats.RenderLapTable(&buf, laps); err != nil {
		sw.laps.SetContent("Failed to render laps.")
		return
	}
	content := strings.TrimRight(buf.String(), "\n")
	if len(laps) > 1 {
		content = sparkStyle.Render(stats.Sparkline(stats.Splits(laps))) + "\n\n" + content
	}
	sw.laps.SetContent(content)
}

func (sw *stopwatchView) status() string {
	switch sw.engine.State() {
	case timeengine.Running:
		return "Running"
	case timeengine.Stopped:
		return "Stopped"
	default:
		return "Ready"
	}
}

func (sw *stopwatchView) headerView() string {
	return lipgloss.JoinVertical(lipgloss.Center,
		bigClockStyle.Render(sw.engine.Format()),
		statusStyle.Render(sw.status()),
		"",
	)
}

func (sw *stopwatchView) setSize(width, height int) {
	sw.laps.Width = width
	sw.laps.Height = maxInt(1, height-lipgloss.Height(sw.headerView()))
}

func (sw *stopwatchView) View(width, height int) string {
	header := sw.headerView()
	if width <= 0 || height <= 0 {
		return header + "\n" + sw.laps.View()
	}
	header = lipgloss.PlaceHorizontal(width, lipgloss.Center, header)
	lapsView := lipgloss.PlaceHorizontal(width, lipgloss.Center, sw.laps.View())
	return header + "\n" + lapsView
}
