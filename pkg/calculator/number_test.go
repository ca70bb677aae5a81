package calculator

import (
	"math"
	"testing"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"0", 0},
		{"42", 42},
		{"3.5", 3.5},
		{".5", 0.5},
		{"5.", 5},
		{"-2", -2},
		{"1.2.3", 1.2},
		{"1e+21", 1e21},
		{"2e-7", 2e-7},
		{"7e", 7},
		{"Infinity", math.Inf(1)},
		{"-Infinity", math.Inf(-1)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseNumber(tt.in); got != tt.want {
				t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseNumberNaN(t *testing.T) {
	for _, in := range []string{"", ".", "-", "NaN", "abc"} {
		if got := ParseNumber(in); !math.IsNaN(got) {
			t.Errorf("ParseNumber(%q) = %v, want NaN", in, got)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{math.Copysign(0, -1), "0"},
		{8, "8"},
		{-2, "-2"},
		{3.5, "3.5"},
		{0.30000000000000004, "0.30000000000000004"},
		{1.0 / 3.0, "0.3333333333333333"},
		{123456789012, "123456789012"},
		{1e21, "1e+21"},
		{1.5e22, "1.5e+22"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{math.Inf(1), "Infinity"},
		{math.Inf(-1), "-Infinity"},
		{math.NaN(), "NaN"},
	}

	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumberRuntimeSum(t *testing.T) {
	a, b := 0.1, 0.2
	if got := FormatNumber(a + b); got != "0.30000000000000004" {
		t.Errorf("FormatNumber(0.1+0.2) = %q, want %q", got, "0.30000000000000004")
	}
}
