// Package stats contains lap calculations and reporting.
package stats

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/verte-zerg/tuiclock/internal/timeengine"
)

const sparkChars = " .:-=+*#%@"

// Summary aggregates a lap sequence.
type Summary struct {
	Count   int
	Total   time.Duration
	Best    time.Duration
	Worst   time.Duration
	Average time.Duration
}

// Splits returns the time of each lap relative to the previous one. Laps
// are cumulative stopwatch readings in chronological order.
func Splits(laps []time.Duration) []time.Duration {
	if len(laps) == 0 {
		return nil
	}
	out := make([]time.Duration, len(laps))
	var prev time.Duration
	for i, lap := range laps {
		split := lap - prev
		if split < 0 {
			split = 0
		}
		out[i] = split
		prev = lap
	}
	return out
}

// Summarize computes best, worst and average split.
func Summarize(laps []time.Duration) Summary {
	splits := Splits(laps)
	if len(splits) == 0 {
		return Summary{}
	}
	s := Summary{
		Count: len(splits),
		Total: laps[len(laps)-1],
		Best:  splits[0],
		Worst: splits[0],
	}
	for _, split := range splits[1:] {
		if split < s.Best {
			s.Best = split
		}
		if split > s.Worst {
			s.Worst = split
		}
	}
	s.Average = s.Total / time.Duration(s.Count)
	return s
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []time.Duration) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if maxVal == minVal {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	span := float64(maxVal - minVal)
	var b strings.Builder
	for _, v := range values {
		pos := float64(v-minVal) / span
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}

// LapRows formats laps newest first as Lap, Split and Total cells.
func LapRows(laps []time.Duration) [][]string {
	splits := Splits(laps)
	rows := make([][]string, 0, len(laps))
	for i := len(laps) - 1; i >= 0; i-- {
		rows = append(rows, []string{
			fmt.Sprintf("Lap %d", i+1),
			timeengine.FormatStopwatch(splits[i]),
			timeengine.FormatStopwatch(laps[i]),
		})
	}
	return rows
}

// RenderLapTable prints laps newest first followed by a summary line.
func RenderLapTable(w io.Writer, laps []time.Duration) error {
	if len(laps) == 0 {
		_, err := fmt.Fprintln(w, "No laps recorded.")
		return err
	}
	for _, line := range lapTable(LapRows(laps)) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	s := Summarize(laps)
	if _, err := fmt.Fprintf(w, "Best %s  Worst %s  Avg %s\n",
		timeengine.FormatStopwatch(s.Best),
		timeengine.FormatStopwatch(s.Worst),
		timeengine.FormatStopwatch(s.Average),
	); err != nil {
		return err
	}
	return nil
}
