package services

import (
	"testing"
	"time"
)

func TestDateHelpers(t *testing.T) {
	at := time.Date(2026, 3, 6, 23, 59, 0, 0, time.Local)
	if got := DateString(at); got != "2026-03-06" {
		t.Errorf("DateString = %q", got)
	}
	if got := MonthKey(at); got != "March 2026" {
		t.Errorf("MonthKey = %q", got)
	}
}

func TestParseClock(t *testing.T) {
	tests := []struct {
		in   string
		mins int
		ok   bool
	}{
		{"09:00", 540, true},
		{"00:00", 0, true},
		{"23:59", 1439, true},
		{"9:00", 540, true},
		{"24:00", 0, false},
		{"09:60", 0, false},
		{"morning", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		mins, ok := parseClock(tt.in)
		if ok != tt.ok || (ok && mins != tt.mins) {
			t.Errorf("parseClock(%q) = (%d, %v), want (%d, %v)", tt.in, mins, ok, tt.mins, tt.ok)
		}
	}
}
