package model

import (
	"testing"
)

func TestParseVND(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  int64
	}{
		{"plain integer", "100000", 100000},
		{"decimal text", "100000.00", 100000},
		{"zero", "0", 0},
		{"empty string", "", 0},
		{"large value", "123456789", 123456789},
		{"rounds half up", "99.5", 100},
		{"invalid string", "abc", 0},
		{"negative (refunds)", "-50000", -50000},
		{"leading zeros", "007", 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseVND(tt.input)
			if got != tt.want {
				t.Errorf("ParseVND(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatVND(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"six digits", 250000, "250.000 ₫"},
		{"exact thousand", 1000, "1.000 ₫"},
		{"under a thousand", 500, "500 ₫"},
		{"zero", 0, "0 ₫"},
		{"millions", 12345678, "12.345.678 ₫"},
		{"negative", -250000, "-250.000 ₫"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatVND(tt.amount)
			if got != tt.want {
				t.Errorf("FormatVND(%d) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestLineTotal(t *testing.T) {
	if got := LineTotal(100000, 2); got != 200000 {
		t.Errorf("LineTotal(100000, 2) = %d, want 200000", got)
	}
	if got := LineTotal(50000, 0); got != 0 {
		t.Errorf("LineTotal(50000, 0) = %d, want 0", got)
	}
}
