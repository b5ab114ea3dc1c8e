// Package report renders a calculator evaluation as a one page PDF: a header
// bar with the calculator name, the headline metrics, the breakdown table and
// the inputs the evaluation ran with.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/pkg/format"
)

// Options carries the page details that do not come from the evaluation.
type Options struct {
	ShareURL  string
	Generated time.Time
	// noCompress leaves page streams readable.
	noCompress bool
}

// GeneratePDF writes the evaluation report to w.
func GeneratePDF(ev registry.Evaluation, opts Options, w io.Writer) error {
	inputs, err := InputRows(ev.Inputs)
	if err != nil {
		return err
	}

	pdf := fpdf.New("P", "mm", "Letter", "")
	pdf.SetMargins(18, 18, 18)
	pdf.SetAutoPageBreak(true, 18)
	pdf.SetCompression(!opts.noCompress)
	pdf.SetTitle(ev.Name, false)
	pdf.AliasNbPages("{nb}")
	pdf.AddPage()

	drawReport(pdf, ev, inputs, opts)

	return pdf.Output(w)
}

func drawReport(pdf *fpdf.Fpdf, ev registry.Evaluation, inputs []InputRow, opts Options) {
	pageW, pageH := pdf.GetPageSize()
	marginL, marginT, marginR, marginB := pdf.GetMargins()
	contentW := pageW - marginL - marginR

	// ── Header bar ───────────────────────────────────────────────────────────
	pdf.SetFillColor(30, 30, 30)
	pdf.Rect(marginL, marginT, contentW, 10, "F")
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginL+2, marginT+1.5)
	pdf.CellFormat(contentW*0.7, 7, ev.Name, "", 0, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(0, 7, "Mode: "+ev.Mode.String(), "", 1, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	y := marginT + 14

	// ── Highlights ───────────────────────────────────────────────────────────
	y = sectionTitle(pdf, marginL, y, contentW, "RESULTS")
	labelW := contentW * 0.6
	pdf.SetFont("Helvetica", "", 9)
	for i, m := range ev.Highlights {
		pdf.SetXY(marginL, y)
		stripe(pdf, i)
		pdf.CellFormat(labelW, 6.5, m.Label, "LR", 0, "L", true, 0, "")
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW-labelW, 6.5, format.Metric(m), "R", 1, "R", true, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		y += 6.5
	}
	closeBox(pdf, marginL, y, contentW)
	y += 5

	// ── Breakdown table ──────────────────────────────────────────────────────
	if len(ev.Lines) > 0 {
		descW := contentW * 0.55
		amtW := (contentW - descW) * 0.6
		pctW := contentW - descW - amtW

		pdf.SetFillColor(30, 30, 30)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 8.5)
		pdf.SetXY(marginL, y)
		pdf.CellFormat(descW, 7, "Breakdown", "1", 0, "L", true, 0, "")
		pdf.CellFormat(amtW, 7, "Amount", "1", 0, "C", true, 0, "")
		pdf.CellFormat(pctW, 7, "Share", "1", 1, "C", true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		y += 7

		for i, line := range ev.Lines {
			pdf.SetXY(marginL, y)
			stripe(pdf, i)
			pdf.SetFont("Helvetica", "", 8.5)
			if line.IsDeduction {
				pdf.SetTextColor(160, 30, 30)
			}
			share := ""
			if line.Percentage != 0 {
				share = format.Percent(line.Percentage)
			}
			pdf.CellFormat(descW, 6.5, line.Label, "1", 0, "L", true, 0, "")
			pdf.CellFormat(amtW, 6.5, format.Line(line), "1", 0, "R", true, 0, "")
			pdf.CellFormat(pctW, 6.5, share, "1", 1, "R", true, 0, "")
			pdf.SetTextColor(0, 0, 0)
			y += 6.5
		}
		y += 5
	}

	// ── Inputs ───────────────────────────────────────────────────────────────
	if len(inputs) > 0 {
		y = sectionTitle(pdf, marginL, y, contentW, "INPUTS")
		pdf.SetFont("Helvetica", "", 8.5)
		half := contentW / 2
		for i, row := range inputs {
			pdf.SetXY(marginL, y)
			stripe(pdf, i)
			pdf.CellFormat(half, 5.5, row.Name, "L", 0, "L", true, 0, "")
			pdf.CellFormat(half, 5.5, row.Value, "R", 1, "R", true, 0, "")
			y += 5.5
		}
		closeBox(pdf, marginL, y, contentW)
	}

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.SetXY(marginL, pageH-marginB-10)
	pdf.SetFont("Helvetica", "I", 7.5)
	pdf.SetTextColor(130, 130, 130)
	if opts.ShareURL != "" {
		pdf.CellFormat(contentW, 4, opts.ShareURL, "", 1, "L", false, 0, opts.ShareURL)
		pdf.SetX(marginL)
	}
	generated := ""
	if !opts.Generated.IsZero() {
		generated = "Generated " + opts.Generated.Format("Jan 2, 2006")
	}
	pdf.CellFormat(contentW/2, 5, "calcverse | "+ev.Slug, "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW/2, 5, generated, "", 0, "R", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
}

func sectionTitle(pdf *fpdf.Fpdf, x, y, w float64, title string) float64 {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 5.5, title, "LRT", 1, "L", true, 0, "")
	return y + 5.5
}

func closeBox(pdf *fpdf.Fpdf, x, y, w float64) {
	pdf.SetXY(x, y)
	pdf.CellFormat(w, 0, "", "LRB", 1, "L", false, 0, "")
}

// stripe sets the alternating row background.
func stripe(pdf *fpdf.Fpdf, i int) {
	if i%2 == 0 {
		pdf.SetFillColor(250, 250, 250)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
}

// InputRow is one input field shown on the report.
type InputRow struct {
	Name  string
	Value string
}

// InputRows flattens an input record into name/value rows sorted by name.
func InputRows(inputs any) ([]InputRow, error) {
	if inputs == nil {
		return nil, nil
	}
	buf, err := json.Marshal(inputs)
	if err != nil {
		return nil, fmt.Errorf("encoding report inputs: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(buf, &fields); err != nil {
		return nil, fmt.Errorf("report inputs must be an object: %w", err)
	}

	rows := make([]InputRow, 0, len(fields))
	for name, value := range fields {
		rows = append(rows, InputRow{Name: name, Value: displayValue(value)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

func displayValue(v any) string {
	switch val := v.(type) {
	case float64:
		return format.Number(val, decimals(val))
	case bool:
		if val {
			return "yes"
		}
		return "no"
	case string:
		return val
	default:
		buf, _ := json.Marshal(val)
		return string(buf)
	}
}

// decimals keeps whole numbers free of a trailing ".00".
func decimals(v float64) int {
	if v == float64(int64(v)) {
		return 0
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	for i := range s {
		if s[i] == '.' {
			return min(len(s)-i-1, 2)
		}
	}
	return 2
}
