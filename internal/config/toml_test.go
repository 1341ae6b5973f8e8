package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("missing config must not fail: %v", err)
	}
	if cfg.Clock.Interval != nil || len(cfg.Alarms) != 0 {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigDecodes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[clock]
tab = "timer"
interval = "50ms"
bell = false

[timer]
presets = ["1m", "90s"]

[[alarms]]
time = "8:43"
description = "wake up"
enabled = true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Clock.Tab == nil || *cfg.Clock.Tab != "timer" {
		t.Fatalf("unexpected tab: %v", cfg.Clock.Tab)
	}
	if cfg.Clock.Bell == nil || *cfg.Clock.Bell {
		t.Fatalf("expected bell=false")
	}
	presets, err := ParsePresets(cfg.Timer.Presets)
	if err != nil {
		t.Fatalf("parse presets: %v", err)
	}
	if diff := cmp.Diff([]time.Duration{time.Minute, 90 * time.Second}, presets); diff != "" {
		t.Fatalf("presets mismatch (-want +got):\n%s", diff)
	}
	alarms, err := ToAlarms(cfg.Alarms)
	if err != nil {
		t.Fatalf("alarms: %v", err)
	}
	if len(alarms) != 1 || alarms[0].Label() != "8:43" || !alarms[0].Enabled {
		t.Fatalf("unexpected alarms: %+v", alarms)
	}
}

func TestLoadConfigRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[clock\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestParsePresetsRejectsNonPositive(t *testing.T) {
	if _, err := ParsePresets([]string{"0s"}); err == nil {
		t.Fatalf("expected error for zero preset")
	}
	if _, err := ParsePresets([]string{"soon"}); err == nil {
		t.Fatalf("expected error for malformed preset")
	}
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "tuiclock", "config.toml") {
		t.Fatalf("unexpected path %q", got)
	}
}
