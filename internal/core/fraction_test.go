package core

import "testing"

func TestConvertFraction(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected float64
	}{
		{name: "eighth", input: "1/8", expected: 0.125},
		{name: "quarter", input: "1/4", expected: 0.25},
		{name: "half with spaces", input: " 1 / 2 ", expected: 0.5},
		{name: "whole number", input: "5", expected: 5},
		{name: "decimal", input: "0.25", expected: 0.25},
		{name: "empty", input: "", expected: 0},
		{name: "garbage", input: "lots", expected: 0},
		{name: "zero denominator", input: "1/0", expected: 0},
		{name: "negative", input: "-3", expected: 0},
		{name: "negative fraction", input: "-1/2", expected: 0},
		{name: "nan", input: "NaN", expected: 0},
		{name: "infinity", input: "Inf", expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ConvertFraction(tt.input); got != tt.expected {
				t.Errorf("ConvertFraction(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}

func TestCRToString(t *testing.T) {
	tests := []struct {
		cr       float64
		expected string
	}{
		{0.125, "1/8"},
		{0.25, "1/4"},
		{0.5, "1/2"},
		{0, "0"},
		{3, "3"},
		{2.75, "2.75"},
	}

	for _, tt := range tests {
		if got := CRToString(tt.cr); got != tt.expected {
			t.Errorf("CRToString(%v) = %q, want %q", tt.cr, got, tt.expected)
		}
	}
}
