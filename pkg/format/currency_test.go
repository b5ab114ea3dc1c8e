package format

import "testing"

func TestCurrency(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		expected string
	}{
		{"Zero", 0, "$0.00"},
		{"Cents", 0.5, "$0.50"},
		{"Thousands", 1234.56, "$1,234.56"},
		{"Millions", 1234567.891, "$1,234,567.89"},
		{"Negative", -1234.5, "-$1,234.50"},
		{"Carry", 999.999, "$1,000.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Currency(tt.amount); got != tt.expected {
				t.Errorf("Currency(%v) = %q, expected %q", tt.amount, got, tt.expected)
			}
		})
	}
}

func TestNumber(t *testing.T) {
	if got := Number(1234567, 0); got != "1,234,567" {
		t.Errorf("Number(1234567, 0) = %q", got)
	}
	if got := Number(12.345, 1); got != "12.3" {
		t.Errorf("Number(12.345, 1) = %q", got)
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(12.34); got != "12.3%" {
		t.Errorf("Percent(12.34) = %q", got)
	}
}

func TestDuration(t *testing.T) {
	tests := []struct {
		months   float64
		expected string
	}{
		{0, "Less than a month"},
		{1, "1 month"},
		{7, "7 months"},
		{12, "1 year"},
		{24, "2 years"},
		{13, "1 year, 1 month"},
		{38, "3 years, 2 months"},
	}

	for _, tt := range tests {
		if got := Duration(tt.months); got != tt.expected {
			t.Errorf("Duration(%v) = %q, expected %q", tt.months, got, tt.expected)
		}
	}
}
