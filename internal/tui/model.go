// Package tui provides the Bubble Tea clock interface.
package tui

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiclock/internal/model"
	"github.com/verte-zerg/tuiclock/internal/notify"
	"github.com/verte-zerg/tuiclock/internal/store"
	"github.com/verte-zerg/tuiclock/internal/timeengine"
)

const (
	tabStopwatch = iota
	tabTimer
	tabAlarms
)

// TabNames lists the tabs in display order, as accepted by --tab.
var TabNames = []string{"stopwatch", "timer", "alarms"}

var (
	activeNavStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F0F0F0")).
			Bold(true).
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A"))
	inactiveNavStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#B0B0B0")).
				Padding(0, 1).
				Border(lipgloss.RoundedBorder(), true).
				BorderForeground(lipgloss.Color("#4A4A4A"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
)

// Options wires the model to its collaborators.
type Options struct {
	Config   model.Config
	Store    *store.Store
	Notifier notify.Notifier
	Clock    timeengine.Clock
}

// tickMsg asks the owner of tab to refresh. It is only honoured while the
// engine still carries token.
type tickMsg struct {
	tab   int
	token uint64
}

type notifiedMsg struct {
	err error
}

func tickCmd(interval time.Duration, tab int, token uint64) tea.Cmd {
	if interval <= 0 {
		interval = timeengine.DefaultInterval
	}
	return tea.Tick(interval, func(time.Time) tea.Msg {
		return tickMsg{tab: tab, token: token}
	})
}

func notifyCmd(n notify.Notifier, title, body string) tea.Cmd {
	return func() tea.Msg {
		return notifiedMsg{err: n.Notify(title, body)}
	}
}

// Model implements the Bubble Tea clock UI.
type Model struct {
	cfg      model.Config
	notifier notify.Notifier
	keys     keyMap
	help     help.Model

	activeTab int
	width     int
	height    int
	errMsg    string

	stopwatch *stopwatchView
	timer     *timerView
	alarms    *alarmsView
}

// NewModel constructs the clock UI model.
func NewModel(opts Options) *Model {
	clock := opts.Clock
	if clock == nil {
		clock = timeengine.SystemClock{}
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = notify.Nop{}
	}
	interval := opts.Config.Interval
	if interval <= 0 {
		interval = timeengine.DefaultInterval
	}
	m := &Model{
		cfg:       opts.Config,
		notifier:  notifier,
		keys:      defaultKeyMap(),
		help:      help.New(),
		activeTab: tabIndex(opts.Config.Tab),
		stopwatch: newStopwatchView(clock, interval),
		timer:     newTimerView(clock, interval, opts.Config.Presets),
		alarms:    newAlarmsView(opts.Store, clock),
	}
	m.setErr(m.alarms.reload())
	return m
}

func tabIndex(name string) int {
	for i, tab := range TabNames {
		if strings.EqualFold(tab, strings.TrimSpace(name)) {
			return i
		}
	}
	return tabStopwatch
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil
	case tickMsg:
		return m, m.handleTick(msg)
	case notifiedMsg:
		if msg.err != nil {
			m.errMsg = msg.err.Error()
		}
		return m, nil
	case tea.MouseMsg:
		switch m.activeTab {
		case tabTimer:
			m.timer.handleMouse(msg)
		case tabAlarms:
			m.alarms.handleMouse(msg)
		}
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, m.alarms.update(msg)
}

// handleTick refreshes the engine named by the tick and schedules the next
// one. Ticks from a stopped, reset or finished run are dropped, which ends
// the loop.
func (m *Model) handleTick(msg tickMsg) tea.Cmd {
	e := m.engineFor(msg.tab)
	if e == nil || !e.Running() || e.Token() != msg.token {
		return nil
	}
	e.Poll()
	if msg.tab == tabTimer && m.timer.takeNotice() {
		target := timeengine.FormatClock(m.timer.engine.Target())
		return notifyCmd(m.notifier, "Timer", fmt.Sprintf("%s countdown finished", target))
	}
	if !e.Running() {
		return nil
	}
	return tickCmd(m.cfg.Interval, msg.tab, e.Token())
}

func (m *Model) engineFor(tab int) *timeengine.Engine {
	switch tab {
	case tabStopwatch:
		return m.stopwatch.engine
	case tabTimer:
		return m.timer.engine
	default:
		return nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}
	if m.activeTab == tabAlarms && m.alarms.editing {
		cmd, err := m.alarms.handleKey(msg, m.keys)
		m.setErr(err)
		return m, cmd
	}
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.updateLayout()
		return m, nil
	case key.Matches(msg, m.keys.NextTab):
		m.moveTab(1)
		return m, tea.ClearScreen
	case key.Matches(msg, m.keys.PrevTab):
		m.moveTab(-1)
		return m, tea.ClearScreen
	}
	switch m.activeTab {
	case tabStopwatch:
		return m, m.stopwatch.handleKey(msg, m.keys)
	case tabTimer:
		return m, m.timer.handleKey(msg, m.keys)
	default:
		cmd, err := m.alarms.handleKey(msg, m.keys)
		m.setErr(err)
		return m, cmd
	}
}

func (m *Model) setErr(err error) {
	if err == nil {
		m.errMsg = ""
		return
	}
	m.errMsg = err.Error()
	log.Printf("tui: %v", err)
}

func (m *Model) moveTab(delta int) {
	count := len(TabNames)
	m.activeTab = (m.activeTab + delta + count) % count
	m.updateLayout()
}

func (m *Model) layoutHeights() (headerHeight, bodyHeight, footerHeight int) {
	headerHeight = maxInt(1, lipgloss.Height(activeNavStyle.Render("X")))
	footerHeight = lipgloss.Height(m.renderFooter())
	bodyHeight = m.height - headerHeight - footerHeight
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	return headerHeight, bodyHeight, footerHeight
}

func (m *Model) updateLayout() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	_, bodyHeight, _ := m.layoutHeights()
	m.stopwatch.setSize(m.width, bodyHeight)
	m.alarms.setSize(m.width, bodyHeight)
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.activeTab == tabAlarms && m.alarms.editing {
		return fitLines(m.alarms.renderPicker(m.width, m.height), m.width, m.height)
	}
	headerHeight, bodyHeight, footerHeight := m.layoutHeights()
	header := fitLines(m.renderTabs(), m.width, headerHeight)
	body := fitLines(m.renderBody(bodyHeight), m.width, bodyHeight)
	footer := fitLines(m.renderFooter(), m.width, footerHeight)
	return strings.Join([]string{header, body, footer}, "\n")
}

func (m *Model) renderTabs() string {
	parts := make([]string, 0, len(TabNames))
	for i, tab := range TabNames {
		title := strings.ToUpper(tab[:1]) + tab[1:]
		if i == m.activeTab {
			parts = append(parts, activeNavStyle.Render(title))
		} else {
			parts = append(parts, inactiveNavStyle.Render(title))
		}
	}
	return padLines(lipgloss.JoinHorizontal(lipgloss.Top, parts...), m.width)
}

func (m *Model) renderBody(height int) string {
	switch m.activeTab {
	case tabStopwatch:
		return m.stopwatch.View(m.width, height)
	case tabTimer:
		return m.timer.View(m.width, height)
	default:
		return m.alarms.View(m.width, height)
	}
}

func (m *Model) renderFooter() string {
	footer := m.help.View(m.helpKeys())
	if m.errMsg != "" {
		return footer + "\n" + errorStyle.Render(truncateLine(m.errMsg, m.width))
	}
	return footer
}

func (m *Model) helpKeys() bindings {
	k := m.keys
	switch m.activeTab {
	case tabStopwatch:
		return bindings{k.StartStop, k.LapReset, k.Lap, k.Reset, k.NextTab, k.Help, k.Quit}
	case tabTimer:
		return bindings{k.StartStop, k.Reset, k.Up, k.Down, k.Left, k.Right, k.FlickUp, k.FlickDown, k.Preset, k.NextTab, k.Help, k.Quit}
	default:
		return bindings{k.Add, k.Toggle, k.Delete, k.Up, k.Down, k.NextTab, k.Help, k.Quit}
	}
}
