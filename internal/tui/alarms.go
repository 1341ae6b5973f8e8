package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiclock/internal/model"
	"github.com/verte-zerg/tuiclock/internal/spinner"
	"github.com/verte-zerg/tuiclock/internal/store"
	"github.com/verte-zerg/tuiclock/internal/timeengine"
)

const (
	fieldHour = iota
	fieldMinute
	fieldDescription
	fieldCount
)

const defaultAlarmDescription = "new alarm"

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Bold(true)
	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 2)
	tableMutedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#B8B8B8"))
)

// alarmsView lists alarms and hosts the add-alarm picker.
type alarmsView struct {
	store *store.Store
	clock timeengine.Clock

	alarms []model.Alarm
	table  table.Model

	editing bool
	field   int
	hour    *spinner.Spinner
	minute  *spinner.Spinner
	desc    textinput.Model

	width  int
	height int
}

func newAlarmsView(st *store.Store, clock timeengine.Clock) *alarmsView {
	if clock == nil {
		clock = timeengine.SystemClock{}
	}
	a := &alarmsView{
		store:  st,
		clock:  clock,
		hour:   spinner.New("HRS", spinner.Bounds{Min: 0, Max: 23}),
		minute: spinner.New("MIN", spinner.Bounds{Min: 0, Max: 59}),
		desc:   newDescriptionInput(),
	}
	a.table = table.New(
		table.WithColumns(alarmColumns(0)),
		table.WithHeight(1),
		table.WithFocused(true),
	)
	a.table.SetStyles(alarmTableStyles())
	return a
}

func newDescriptionInput() textinput.Model {
	input := textinput.New()
	input.Prompt = "Description: "
	input.Placeholder = defaultAlarmDescription
	input.CharLimit = 64
	input.Cursor.SetMode(cursor.CursorBlink)
	return input
}

func alarmColumns(width int) []table.Column {
	desc := maxInt(12, width-5-3-4)
	return []table.Column{
		{Title: "Time", Width: 5},
		{Title: "Description", Width: desc},
		{Title: "On", Width: 3},
	}
}

func alarmTableStyles() table.Styles {
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		Border(lipgloss.NormalBorder(), false, false, true, false).
		BorderForeground(lipgloss.Color("#4A4A4A")).
		Foreground(lipgloss.Color("#C0C0C0")).
		Bold(true).
		Padding(0, 1).
		PaddingLeft(0)
	styles.Cell = styles.Cell.
		Padding(0, 1).
		PaddingLeft(0)
	styles.Selected = styles.Cell.
		Foreground(lipgloss.Color("#F0F0F0")).
		Bold(true)
	return styles
}

// reload reads the list from the store and keeps the cursor in range.
func (a *alarmsView) reload() error {
	if a.store == nil {
		return nil
	}
	alarms, err := a.store.ListAlarms(context.Background())
	if err != nil {
		return fmt.Errorf("failed to load alarms: %w", err)
	}
	a.alarms = alarms
	rows := make([]table.Row, 0, len(alarms))
	for _, alarm := range alarms {
		rows = append(rows, table.Row{alarm.Label(), alarm.Description, checkbox(alarm.Enabled)})
	}
	a.table.SetRows(rows)
	if c := a.table.Cursor(); c >= len(rows) {
		a.table.SetCursor(maxInt(0, len(rows)-1))
	}
	return nil
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (a *alarmsView) selectedAlarm() (model.Alarm, bool) {
	idx := a.table.Cursor()
	if idx < 0 || idx >= len(a.alarms) {
		return model.Alarm{}, false
	}
	return a.alarms[idx], true
}

func (a *alarmsView) openPicker() {
	now := a.clock.Now()
	a.editing = true
	a.field = fieldHour
	a.hour.SetValue(now.Hour())
	a.minute.SetValue(now.Minute())
	a.desc.SetValue("")
	a.desc.Blur()
}

func (a *alarmsView) closePicker() {
	a.editing = false
	a.desc.Blur()
}

func (a *alarmsView) confirm() error {
	desc := strings.TrimSpace(a.desc.Value())
	if desc == "" {
		desc = defaultAlarmDescription
	}
	a.closePicker()
	if a.store == nil {
		return nil
	}
	if _, err := a.store.InsertAlarm(context.Background(), model.Alarm{
		Hour:        a.hour.Value(),
		Minute:      a.minute.Value(),
		Description: desc,
		Enabled:     true,
	}); err != nil {
		return fmt.Errorf("failed to add alarm: %w", err)
	}
	if err := a.reload(); err != nil {
		return err
	}
	a.table.GotoBottom()
	return nil
}

func (a *alarmsView) toggleSelected() error {
	alarm, ok := a.selectedAlarm()
	if !ok || a.store == nil {
		return nil
	}
	if _, err := a.store.ToggleAlarm(context.Background(), alarm.ID); err != nil {
		return fmt.Errorf("failed to toggle alarm: %w", err)
	}
	return a.reload()
}

func (a *alarmsView) deleteSelected() error {
	alarm, ok := a.selectedAlarm()
	if !ok || a.store == nil {
		return nil
	}
	if err := a.store.DeleteAlarm(context.Background(), alarm.ID); err != nil {
		return fmt.Errorf("failed to delete alarm: %w", err)
	}
	return a.reload()
}

func (a *alarmsView) setField(idx int) tea.Cmd {
	a.field = (idx + fieldCount) % fieldCount
	if a.field == fieldDescription {
		return a.desc.Focus()
	}
	a.desc.Blur()
	return nil
}

func (a *alarmsView) pickerWheel() *spinner.Spinner {
	switch a.field {
	case fieldHour:
		return a.hour
	case fieldMinute:
		return a.minute
	default:
		return nil
	}
}

func (a *alarmsView) handleKey(msg tea.KeyMsg, keys keyMap) (tea.Cmd, error) {
	if a.editing {
		return a.updatePicker(msg, keys)
	}
	switch {
	case key.Matches(msg, keys.Add):
		a.openPicker()
		return nil, nil
	case key.Matches(msg, keys.Toggle):
		return nil, a.toggleSelected()
	case key.Matches(msg, keys.Delete):
		return nil, a.deleteSelected()
	default:
		var cmd tea.Cmd
		a.table, cmd = a.table.Update(msg)
		return cmd, nil
	}
}

func (a *alarmsView) updatePicker(msg tea.KeyMsg, keys keyMap) (tea.Cmd, error) {
	switch {
	case key.Matches(msg, keys.Escape):
		a.closePicker()
		return nil, nil
	case key.Matches(msg, keys.Confirm):
		return nil, a.confirm()
	case msg.String() == "shift+tab":
		return a.setField(a.field - 1), nil
	case key.Matches(msg, keys.Field):
		return a.setField(a.field + 1), nil
	}
	if w := a.pickerWheel(); w != nil {
		switch {
		case key.Matches(msg, keys.Up):
			w.Step(1)
		case key.Matches(msg, keys.Down):
			w.Step(-1)
		case key.Matches(msg, keys.FlickUp):
			w.Step(flickSlots)
		case key.Matches(msg, keys.FlickDown):
			w.Step(-flickSlots)
		case key.Matches(msg, keys.Left):
			return a.setField(a.field - 1), nil
		case key.Matches(msg, keys.Right):
			return a.setField(a.field + 1), nil
		}
		return nil, nil
	}
	var cmd tea.Cmd
	a.desc, cmd = a.desc.Update(msg)
	return cmd, nil
}

// update forwards non-key messages such as cursor blinks to the input.
func (a *alarmsView) update(msg tea.Msg) tea.Cmd {
	if !a.editing {
		return nil
	}
	var cmd tea.Cmd
	a.desc, cmd = a.desc.Update(msg)
	return cmd
}

func (a *alarmsView) handleMouse(msg tea.MouseMsg) {
	if !a.editing {
		return
	}
	if w := a.pickerWheel(); w != nil {
		if n := wheelDelta(msg); n != 0 {
			w.Step(n)
		}
	}
}

func (a *alarmsView) setSize(width, height int) {
	a.width = width
	a.height = height
	a.table.SetColumns(alarmColumns(width))
	a.table.SetWidth(width)
	a.table.SetHeight(maxInt(1, height-1))
	a.desc.Width = maxInt(10, modalInnerWidth(width)-lipgloss.Width(a.desc.Prompt))
}

func (a *alarmsView) View(width, height int) string {
	if len(a.alarms) == 0 {
		return fitLines("No alarms. Press a to add one.", width, height)
	}
	return fitLines(tableMutedStyle.Render(a.table.View()), width, height)
}

func (a *alarmsView) renderPicker(width, height int) string {
	wheels := lipgloss.JoinHorizontal(lipgloss.Top,
		renderWheel(a.hour, a.field == fieldHour, false),
		renderWheel(a.minute, a.field == fieldMinute, false),
	)
	body := []string{
		titleStyle.Render("New Alarm"),
		"",
		wheels,
		"",
		a.desc.View(),
		"",
		statusStyle.Render("tab: next field  ↑/↓: change  enter: add  esc: cancel"),
	}
	box := modalStyle.Width(modalWidth(width)).Render(strings.Join(body, "\n"))
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}
