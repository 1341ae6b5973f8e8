package model

import "testing"

func TestParseAlarmTime(t *testing.T) {
	tests := []struct {
		in      string
		hour    int
		minute  int
		wantErr bool
	}{
		{in: "8:43", hour: 8, minute: 43},
		{in: " 23:05 ", hour: 23, minute: 5},
		{in: "24:00", wantErr: true},
		{in: "7:5", wantErr: true},
		{in: "7", wantErr: true},
		{in: "ab:cd", wantErr: true},
	}
	for _, tt := range tests {
		h, m, err := ParseAlarmTime(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("expected error for %q", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("parse %q: %v", tt.in, err)
		}
		if h != tt.hour || m != tt.minute {
			t.Fatalf("parse %q = %d:%d", tt.in, h, m)
		}
	}
}

func TestAlarmLabel(t *testing.T) {
	a := Alarm{Hour: 8, Minute: 3}
	if got := a.Label(); got != "8:03" {
		t.Fatalf("unexpected label %q", got)
	}
}
