// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/tuiclock/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Clock  ClockConfig   `toml:"clock"`
	Timer  TimerConfig   `toml:"timer"`
	Alarms []AlarmConfig `toml:"alarms"`
}

// ClockConfig maps display settings shared by all tabs.
type ClockConfig struct {
	Tab      *string `toml:"tab"`
	Interval *string `toml:"interval"`
	Bell     *bool   `toml:"bell"`
}

// TimerConfig maps countdown settings.
type TimerConfig struct {
	Presets []string `toml:"presets"`
}

// AlarmConfig is an alarm list entry loaded at startup.
type AlarmConfig struct {
	Time        string `toml:"time"`
	Description string `toml:"description"`
	Enabled     bool   `toml:"enabled"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ParsePresets converts preset strings such as "5m" or "1h30m" to durations.
func ParsePresets(values []string) ([]time.Duration, error) {
	out := make([]time.Duration, 0, len(values))
	for _, v := range values {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid timer preset %q: %w", v, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("timer preset %q must be positive", v)
		}
		out = append(out, d)
	}
	return out, nil
}

// ToAlarms converts configured alarm entries.
func ToAlarms(entries []AlarmConfig) ([]model.Alarm, error) {
	out := make([]model.Alarm, 0, len(entries))
	for _, e := range entries {
		hour, minute, err := model.ParseAlarmTime(e.Time)
		if err != nil {
			return nil, err
		}
		out = append(out, model.Alarm{
			Hour:        hour,
			Minute:      minute,
			Description: e.Description,
			Enabled:     e.Enabled,
		})
	}
	return out, nil
}
