package stats

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// lapHeaders names the lap table columns. The label column is left-aligned
// and the time columns are right-aligned so their digits line up.
var lapHeaders = [...]string{"Lap", "Split", "Total"}

type lapWidths [len(lapHeaders)]int

// lapTable lays rows out under lapHeaders. Missing cells render empty and
// cells beyond the last column are dropped.
func lapTable(rows [][]string) []string {
	widths := measureLaps(rows)
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, lapLine(lapHeaders[:], widths))
	for _, row := range rows {
		lines = append(lines, lapLine(row, widths))
	}
	return lines
}

func measureLaps(rows [][]string) lapWidths {
	var widths lapWidths
	for i, h := range lapHeaders {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], runewidth.StringWidth(row[i]))
			}
		}
	}
	return widths
}

func lapLine(cells []string, widths lapWidths) string {
	out := make([]string, len(widths))
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cells[i]
		}
		if i == 0 {
			out[i] = runewidth.FillRight(cell, w)
		} else {
			out[i] = runewidth.FillLeft(cell, w)
		}
	}
	return strings.Join(out, " ")
}
