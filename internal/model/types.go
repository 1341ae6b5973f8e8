// Package model defines shared data structures.
package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Config defines runtime settings for the clock views.
type Config struct {
	Tab      string
	Interval time.Duration
	Bell     bool
	Presets  []time.Duration
	Alarms   []Alarm
}

// Alarm is one entry of the alarm list.
type Alarm struct {
	ID          string
	Hour        int
	Minute      int
	Description string
	Enabled     bool
	CreatedAt   time.Time
}

// Label renders the alarm time as H:MM.
func (a Alarm) Label() string {
	return fmt.Sprintf("%d:%02d", a.Hour, a.Minute)
}

// ParseAlarmTime parses an H:MM or HH:MM wall-clock time.
func ParseAlarmTime(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid alarm time %q (expected H:MM)", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid alarm hour in %q", s)
	}
	if len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid alarm minute in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid alarm minute in %q", s)
	}
	return hour, minute, nil
}
