package calculator

import (
	"testing"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
	}{
		{"quick", ModeQuick},
		{"advanced", ModeAdvanced},
		{" Advanced ", ModeAdvanced},
		{"QUICK", ModeQuick},
		{"", DefaultMode},
		{"expert", DefaultMode},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ParseMode(tt.input); got != tt.expected {
				t.Errorf("ParseMode(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestModeValid(t *testing.T) {
	if !ModeQuick.Valid() || !ModeAdvanced.Valid() {
		t.Fatal("expected built-in modes to be valid")
	}
	if Mode("expert").Valid() {
		t.Fatal("expected unknown mode to be invalid")
	}
}

func TestOverride(t *testing.T) {
	value := 10.0
	Override(&value, nil)
	if value != 10 {
		t.Errorf("nil override changed value to %v", value)
	}

	Override(&value, Ptr(2.5))
	if value != 2.5 {
		t.Errorf("override = %v, expected 2.5", value)
	}

	flag := true
	Override(&flag, Ptr(false))
	if flag {
		t.Error("expected bool override to apply")
	}
}

func TestRangeMap(t *testing.T) {
	r := Range{Low: 1, Mid: 2, High: 3}.Map(func(v float64) float64 { return v * 10 })
	if r != (Range{Low: 10, Mid: 20, High: 30}) {
		t.Errorf("Range.Map = %+v", r)
	}
}
