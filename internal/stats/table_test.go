package stats

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLapTableRightAlignsTimes(t *testing.T) {
	rows := [][]string{
		{"Lap 10", "00:01.20", "01:02.70"},
		{"Lap 9", "1:00:01.50", "1:01:01.50"},
	}
	want := []string{
		"Lap         Split      Total",
		"Lap 10   00:01.20   01:02.70",
		"Lap 9  1:00:01.50 1:01:01.50",
	}
	if diff := cmp.Diff(want, lapTable(rows)); diff != "" {
		t.Fatalf("lap table mismatch (-want +got):\n%s", diff)
	}
}

func TestLapTablePadsShortRowsAndDropsExtraCells(t *testing.T) {
	lines := lapTable([][]string{{"Lap 1"}, {"Lap 2", "00:01.00", "00:02.00", "extra"}})
	want := []string{
		"Lap      Split    Total",
		"Lap 1                  ",
		"Lap 2 00:01.00 00:02.00",
	}
	if diff := cmp.Diff(want, lines); diff != "" {
		t.Fatalf("lap table mismatch (-want +got):\n%s", diff)
	}
}

func TestLapTableCountsWideRunes(t *testing.T) {
	lines := lapTable([][]string{{"ラップ", "1", "2"}})
	if lines[0] != "Lap    Split Total" {
		t.Fatalf("expected header padded to wide cell, got %q", lines[0])
	}
	if lines[1] != "ラップ     1     2" {
		t.Fatalf("unexpected row %q", lines[1])
	}
}
