package validation

import (
	"strings"
	"testing"

	"github.com/BenTyson/calcverse/pkg/calculator"
)

func TestValidateOutputFormat(t *testing.T) {
	tests := []struct {
		name      string
		format    string
		allowed   []string
		expectErr bool
	}{
		{
			name:   "Valid pretty format",
			format: "pretty",
		},
		{
			name:   "Valid csv format",
			format: "csv",
		},
		{
			name:      "JSON not allowed for scenarios",
			format:    "json",
			expectErr: true,
		},
		{
			name:    "JSON allowed for evaluations",
			format:  "json",
			allowed: EvaluationFormats,
		},
		{
			name:      "Empty format",
			format:    "",
			expectErr: true,
		},
		{
			name:      "Case sensitive - uppercase",
			format:    "PRETTY",
			expectErr: true,
		},
		{
			name:      "Leading/trailing spaces",
			format:    " pretty ",
			expectErr: true,
		},
		{
			name:      "XML format not supported",
			format:    "xml",
			allowed:   EvaluationFormats,
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputFormat(tt.format, tt.allowed...)

			if tt.expectErr {
				if err == nil {
					t.Errorf("ValidateOutputFormat(%s) expected error but got none", tt.format)
				}
			} else {
				if err != nil {
					t.Errorf("ValidateOutputFormat(%s) unexpected error = %v", tt.format, err)
				}
			}
		})
	}
}

func TestValidateOutputFormatErrorMessage(t *testing.T) {
	err := ValidateOutputFormat("xml", EvaluationFormats...)
	if err == nil {
		t.Fatal("expected error for xml")
	}
	for _, want := range []string{"pretty or csv or json", `"xml"`} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q should contain %q", err.Error(), want)
		}
	}
}

func TestValidateMode(t *testing.T) {
	tests := []struct {
		mode      string
		want      calculator.Mode
		expectErr bool
	}{
		{mode: "", want: calculator.DefaultMode},
		{mode: "quick", want: calculator.ModeQuick},
		{mode: "advanced", want: calculator.ModeAdvanced},
		{mode: "Advanced", expectErr: true},
		{mode: "turbo", expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			got, err := ValidateMode(tt.mode)
			if tt.expectErr {
				if err == nil {
					t.Errorf("ValidateMode(%q) expected error but got none", tt.mode)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateMode(%q) unexpected error = %v", tt.mode, err)
			}
			if got != tt.want {
				t.Errorf("ValidateMode(%q) = %q, want %q", tt.mode, got, tt.want)
			}
		})
	}
}
