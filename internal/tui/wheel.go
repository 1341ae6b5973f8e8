package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/tuiclock/internal/spinner"
)

const (
	wheelRadius = 2
	wheelWidth  = 4

	grayLow  = 0x40
	grayHigh = 0xF0
)

var (
	wheelStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Border(lipgloss.RoundedBorder(), true).
			BorderForeground(lipgloss.Color("#4A4A4A"))
	wheelFocusStyle = wheelStyle.BorderForeground(lipgloss.Color("#C89A3A"))
	wheelLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
)

// renderWheel draws the visible slots of a spinner. Slots away from the
// centre fade and lose weight the same way the wheel dims them.
func renderWheel(s *spinner.Spinner, focused, locked bool) string {
	lines := []string{wheelLabelStyle.Render(centerText(s.Label(), wheelWidth))}
	for _, item := range s.Window(wheelRadius) {
		text := centerText(fmt.Sprintf("%02d", item.Value), wheelWidth)
		lines = append(lines, slotStyle(item, locked).Render(text))
	}
	style := wheelStyle
	if focused && !locked {
		style = wheelFocusStyle
	}
	return style.Render(strings.Join(lines, "\n"))
}

func slotStyle(item spinner.Item, locked bool) lipgloss.Style {
	opacity := item.Opacity
	if locked {
		opacity *= 0.8
	}
	style := lipgloss.NewStyle().Foreground(grayFor(opacity))
	if item.Scale > 0.9 {
		style = style.Bold(true)
	}
	return style
}

// grayFor maps an opacity in [0,1] onto a gray between grayLow and grayHigh.
func grayFor(opacity float64) lipgloss.Color {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	v := grayLow + int(opacity*float64(grayHigh-grayLow))
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", v, v, v))
}

// wheelDelta converts a mouse wheel event into a slot step.
func wheelDelta(msg tea.MouseMsg) int {
	if msg.Action != tea.MouseActionPress {
		return 0
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		return 1
	case tea.MouseButtonWheelDown:
		return -1
	default:
		return 0
	}
}
