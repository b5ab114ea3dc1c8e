package output

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/BenTyson/calcverse/internal/registry"
	"github.com/BenTyson/calcverse/internal/scenario"
	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResults() []scenario.Result {
	return []scenario.Result{
		{
			Name: "Test Scenario",
			Evaluation: registry.Evaluation{
				Slug: "airbnb-profit",
				Name: "Airbnb Profit Calculator",
				Mode: calculator.ModeAdvanced,
				Highlights: []calculator.Metric{
					{Key: "monthlyNet", Label: "Monthly Net Profit", Value: 1311.67, Unit: calculator.UnitCurrency},
					{Key: "profitMargin", Label: "Profit Margin", Value: 37.5, Unit: calculator.UnitPercent},
				},
				Lines: []calculator.LineItem{
					{Label: "Nightly Revenue", Amount: 3000, Percentage: 85.7},
					{Label: "Airbnb Fee", Amount: 105, IsDeduction: true},
				},
			},
		},
		{
			Name: "Second, with comma",
			Evaluation: registry.Evaluation{
				Slug: "doordash-earnings",
				Mode: calculator.ModeQuick,
				Highlights: []calculator.Metric{
					{Key: "hourly", Label: "Hourly Rate", Value: 12.6, Unit: calculator.UnitCurrency},
				},
			},
		},
	}
}

func TestPrettyFormat(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleResults())
	output := buf.String()

	expected := []string{
		"--- Results for scenario Test Scenario (airbnb-profit, advanced) ---",
		"Monthly Net Profit | $1,311.67",
		"Profit Margin      | 37.5%",
		"Breakdown          | Amount",
		"Nightly Revenue    | $3,000.00 (85.7%)",
		"Airbnb Fee         | ($105.00)",
		"--- Results for scenario Second, with comma (doordash-earnings, quick) ---",
		"Hourly Rate | $12.60",
	}
	for _, want := range expected {
		if !strings.Contains(output, want) {
			t.Errorf("PrettyFormat missing %q in:\n%s", want, output)
		}
	}

	// no breakdown table when a scenario has no lines
	second := output[strings.Index(output, "Second, with comma"):]
	if strings.Contains(second, "Breakdown") {
		t.Errorf("PrettyFormat printed an empty breakdown table")
	}
}

func TestPrettyFormatSingleScenario(t *testing.T) {
	var buf bytes.Buffer
	PrettyFormat(&buf, sampleResults()[:1])
	assert.False(t, strings.HasSuffix(buf.String(), "\n\n"))
}

func TestCsvFormat(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, CsvFormat(&buf, sampleResults()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 6)

	assert.Equal(t, csvHeader, rows[0])
	assert.Equal(t, []string{"Test Scenario", "airbnb-profit", "advanced", "highlight", "Monthly Net Profit", "1311.67", "currency", ""}, rows[1])
	assert.Equal(t, []string{"Test Scenario", "airbnb-profit", "advanced", "breakdown", "Nightly Revenue", "3000.00", "currency", "85.70"}, rows[3])
	assert.Equal(t, "deduction", rows[4][3])
	assert.Equal(t, "Second, with comma", rows[5][0])
}

func TestCsvString(t *testing.T) {
	out := CsvString(sampleResults())
	assert.True(t, strings.HasPrefix(out, "scenario,calculator,mode,section,label,value,unit,percentage\n"))
	assert.Contains(t, out, `"Second, with comma",doordash-earnings,quick,highlight,Hourly Rate,12.60,currency,`)

	assert.Equal(t, "scenario,calculator,mode,section,label,value,unit,percentage\n", CsvString(nil))
}

func TestPrettyFormatRegistryResults(t *testing.T) {
	reg := registry.New(nil)
	var results []scenario.Result
	for _, slug := range []string{"freelancer-rate", "youtube-adsense"} {
		ev, err := reg.Evaluate(slug, nil, calculator.ModeAdvanced)
		require.NoError(t, err)
		results = append(results, scenario.Result{Name: slug + " run", Evaluation: ev})
	}

	var buf bytes.Buffer
	PrettyFormat(&buf, results)
	out := buf.String()

	for _, name := range []string{"freelancer-rate run", "youtube-adsense run"} {
		res := testutil.FindScenario(results, name)
		require.NotNil(t, res)
		assert.Contains(t, out, "--- Results for scenario "+name+" ("+res.Evaluation.Slug+", advanced) ---")
		for _, m := range res.Evaluation.Highlights {
			assert.Contains(t, out, m.Label)
		}
	}
}
