package domain

import (
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"100", 100, true},
		{" -2.5 ", -2.5, true},
		{"", 0, false},
		{"n/a", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseNumber(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestParseScale(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3", 3, true},
		{"1", 1, true},
		{"5", 5, true},
		{"0", 0, false},
		{"6", 0, false},
		{"3.5", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseScale(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseScale(%q) = (%v, %v), want (%v, %v)", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestDirectionMove(t *testing.T) {
	// A favorable long move and its mirrored short move must agree.
	if got := Long.Move(100, 110); got != 10 {
		t.Errorf("Long.Move(100, 110) = %v, want 10", got)
	}
	if got := Short.Move(100, 90); got != 10 {
		t.Errorf("Short.Move(100, 90) = %v, want 10", got)
	}
	if got := Long.Move(100, 90); got != -10 {
		t.Errorf("Long.Move(100, 90) = %v, want -10", got)
	}
	if got := Short.Move(100, 110); got != -10 {
		t.Errorf("Short.Move(100, 110) = %v, want -10", got)
	}
}

func TestParseDateTime(t *testing.T) {
	at, ok := ParseDateTime("2024-03-05", "14:30")
	if !ok {
		t.Fatal("expected parseable date")
	}
	want := time.Date(2024, 3, 5, 14, 30, 0, 0, time.Local)
	if !at.Equal(want) {
		t.Errorf("ParseDateTime = %v, want %v", at, want)
	}

	// Date alone is enough; a malformed clock is ignored.
	at, ok = ParseDateTime("2024-03-05", "bogus")
	if !ok || at.Hour() != 0 {
		t.Errorf("ParseDateTime with bad clock = (%v, %v), want midnight", at, ok)
	}

	if _, ok := ParseDateTime("", "14:30"); ok {
		t.Error("expected failure without a date")
	}
}

func TestTradeIsClosed(t *testing.T) {
	closed := &Trade{PnL: "12.5"}
	if !closed.IsClosed() {
		t.Error("trade with parseable pnl should be closed")
	}
	open := &Trade{PnL: ""}
	if open.IsClosed() {
		t.Error("trade without pnl should be open")
	}
	garbage := &Trade{PnL: "pending"}
	if garbage.IsClosed() {
		t.Error("trade with unparseable pnl should be open")
	}
}

func TestHoldDays(t *testing.T) {
	// Explicit duration wins over the date distance.
	tr := &Trade{DurationDays: "4", EntryDate: "2024-01-01", ExitDate: "2024-01-02"}
	if d, ok := tr.HoldDays(); !ok || d != 4 {
		t.Errorf("HoldDays = (%v, %v), want (4, true)", d, ok)
	}
	tr = &Trade{EntryDate: "2024-01-01", ExitDate: "2024-01-03"}
	if d, ok := tr.HoldDays(); !ok || d != 2 {
		t.Errorf("HoldDays = (%v, %v), want (2, true)", d, ok)
	}
}
