package mathutil

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Round down below midpoint", 1.234, 1.23},
		{"No rounding needed", 1.23, 1.23},
		{"Large number", 12345.678, 12345.68},
		{"Negative number round down", -1.234, -1.23},
		{"Zero", 0.0, 0.0},
		{"Very small positive", 0.001, 0.00},
		{"Very small negative", -0.001, 0.00},
		{"Exactly one cent", 0.01, 0.01},
		{"Nearly two cents", 0.019, 0.02},
		{"Large negative", -12345.678, -12345.68},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Round(tt.input)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("Round(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestRoundPercent(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"Already one decimal", 12.5, 12.5},
		{"Round up", 33.3333, 33.3},
		{"Round up tenth", 66.6666, 66.7},
		{"Zero", 0, 0},
		{"Negative", -7.77, -7.8},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := RoundPercent(tt.input)
			if math.Abs(result-tt.expected) > 0.0001 {
				t.Errorf("RoundPercent(%v) = %v, expected %v", tt.input, result, tt.expected)
			}
		})
	}
}

func TestWholeRounding(t *testing.T) {
	if got := RoundWhole(2.5); got != 3 {
		t.Errorf("RoundWhole(2.5) = %v, expected 3", got)
	}
	if got := RoundWhole(2.49); got != 2 {
		t.Errorf("RoundWhole(2.49) = %v, expected 2", got)
	}
	if got := CeilWhole(2.01); got != 3 {
		t.Errorf("CeilWhole(2.01) = %v, expected 3", got)
	}
	if got := CeilWhole(-2.5); got != -2 {
		t.Errorf("CeilWhole(-2.5) = %v, expected -2", got)
	}
}

func TestSafeDivide(t *testing.T) {
	tests := []struct {
		name        string
		numerator   float64
		denominator float64
		expected    float64
	}{
		{"Simple division", 10, 4, 2.5},
		{"Zero denominator", 10, 0, 0},
		{"Negative denominator", 10, -2, 0},
		{"Zero numerator", 0, 5, 0},
		{"Negative numerator", -9, 3, -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SafeDivide(tt.numerator, tt.denominator)
			if result != tt.expected {
				t.Errorf("SafeDivide(%v, %v) = %v, expected %v", tt.numerator, tt.denominator, result, tt.expected)
			}
		})
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(2, 0, 1.5); got != 1.5 {
		t.Errorf("Clamp above range = %v, expected 1.5", got)
	}
	if got := Clamp(-1, 0, 1.5); got != 0 {
		t.Errorf("Clamp below range = %v, expected 0", got)
	}
	if got := Clamp(1, 0, 1.5); got != 1 {
		t.Errorf("Clamp inside range = %v, expected 1", got)
	}
}

func TestCalculatePercentage(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		total    float64
		expected float64
	}{
		{"50% of 100", 50.0, 100.0, 50.0},
		{"25% of 200", 50.0, 200.0, 25.0},
		{"More than 100%", 150.0, 100.0, 150.0},
		{"Zero total", 50.0, 0.0, 0.0},
		{"Both zero", 0.0, 0.0, 0.0},
		{"Negative value", -50.0, 100.0, -50.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CalculatePercentage(tt.value, tt.total)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("CalculatePercentage(%v, %v) = %v, expected %v",
					tt.value, tt.total, result, tt.expected)
			}
		})
	}
}

func TestApplyPercentage(t *testing.T) {
	tests := []struct {
		name       string
		value      float64
		percentage float64
		expected   float64
	}{
		{"50% of 100", 100.0, 50.0, 50.0},
		{"150% of value", 100.0, 150.0, 150.0},
		{"0% of value", 100.0, 0.0, 0.0},
		{"Negative percentage", 100.0, -50.0, -50.0},
		{"Small percentage", 100.0, 1.0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := ApplyPercentage(tt.value, tt.percentage)
			if math.Abs(result-tt.expected) > 0.001 {
				t.Errorf("ApplyPercentage(%v, %v) = %v, expected %v",
					tt.value, tt.percentage, result, tt.expected)
			}
		})
	}
}

func TestFraction(t *testing.T) {
	if got := Fraction(15.3); math.Abs(got-0.153) > 1e-12 {
		t.Errorf("Fraction(15.3) = %v, expected 0.153", got)
	}
}
