package timeengine

import (
	"fmt"
	"time"
)

// Compose converts hour, minute and second fields into a duration.
func Compose(hours, minutes, seconds int) time.Duration {
	d := time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute + time.Duration(seconds)*time.Second
	if d < 0 {
		return 0
	}
	return d
}

// Split breaks a duration into whole hours, minutes, seconds and
// centiseconds. Negative input is treated as zero.
func Split(d time.Duration) (hours, minutes, seconds, centis int) {
	if d < 0 {
		d = 0
	}
	ms := d.Milliseconds()
	totalSeconds := ms / 1000
	hours = int(totalSeconds / 3600)
	minutes = int((totalSeconds % 3600) / 60)
	seconds = int(totalSeconds % 60)
	centis = int((ms % 1000) / 10)
	return hours, minutes, seconds, centis
}

// FormatClock renders HH:MM:SS.CC.
func FormatClock(d time.Duration) string {
	h, m, s, cs := Split(d)
	return fmt.Sprintf("%02d:%02d:%02d.%02d", h, m, s, cs)
}

// FormatStopwatch renders MM:SS.CC where minutes keep counting past 59.
func FormatStopwatch(d time.Duration) string {
	h, m, s, cs := Split(d)
	return fmt.Sprintf("%02d:%02d.%02d", h*60+m, s, cs)
}
