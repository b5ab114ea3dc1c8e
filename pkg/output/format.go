// Package output provides utilities for formatting and displaying scenario results.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/BenTyson/calcverse/internal/scenario"
	"github.com/BenTyson/calcverse/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// csvHeader is the column layout of CsvFormat.
var csvHeader = []string{"scenario", "calculator", "mode", "section", "label", "value", "unit", "percentage"}

// PrettyFormat writes a human-readable rather than machine-readable table.
func PrettyFormat(w io.Writer, results []scenario.Result) {
	p := message.NewPrinter(language.English)
	for i, result := range results {
		ev := result.Evaluation
		_, _ = fmt.Fprintf(w, "--- Results for scenario %s (%s, %s) ---\n", result.Name, ev.Slug, ev.Mode)

		width := len("Metric")
		for _, m := range ev.Highlights {
			width = max(width, len(m.Label))
		}
		for _, line := range ev.Lines {
			width = max(width, len(line.Label))
		}

		_, _ = fmt.Fprintf(w, "%-*s | Value\n", width, "Metric")
		_, _ = fmt.Fprintf(w, "%-*s | _____\n", width, strings.Repeat("_", len("Metric")))
		for _, m := range ev.Highlights {
			_, _ = fmt.Fprintf(w, "%-*s | %s\n", width, m.Label, format.Metric(m))
		}

		if len(ev.Lines) > 0 {
			_, _ = fmt.Fprintf(w, "\n%-*s | Amount\n", width, "Breakdown")
			_, _ = fmt.Fprintf(w, "%-*s | ______\n", width, strings.Repeat("_", len("Breakdown")))
			for _, line := range ev.Lines {
				amount := format.Line(line)
				if line.Percentage != 0 {
					amount = p.Sprintf("%s (%.1f%%)", amount, line.Percentage)
				}
				_, _ = fmt.Fprintf(w, "%-*s | %s\n", width, line.Label, amount)
			}
		}

		if i < len(results)-1 {
			_, _ = fmt.Fprintf(w, "\n")
		}
	}
}

// CsvFormat writes one row per highlight metric and breakdown line.
func CsvFormat(w io.Writer, results []scenario.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, result := range results {
		ev := result.Evaluation
		for _, m := range ev.Highlights {
			row := []string{result.Name, ev.Slug, ev.Mode.String(), "highlight", m.Label, number(m.Value), string(m.Unit), ""}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
		for _, line := range ev.Lines {
			section := "breakdown"
			if line.IsDeduction {
				section = "deduction"
			}
			pct := ""
			if line.Percentage != 0 {
				pct = number(line.Percentage)
			}
			row := []string{result.Name, ev.Slug, ev.Mode.String(), section, line.Label, number(line.Amount), "currency", pct}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// CsvString returns the CsvFormat output as a string.
func CsvString(results []scenario.Result) string {
	var sb strings.Builder
	if err := CsvFormat(&sb, results); err != nil {
		return ""
	}
	return sb.String()
}

func number(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
