// Package sidehustle projects how long a side income takes to reach a
// savings goal when the hourly rate grows every month.
package sidehustle

import (
	"time"

	"github.com/BenTyson/calcverse/pkg/calculator"
	"github.com/BenTyson/calcverse/pkg/constants"
	"github.com/BenTyson/calcverse/pkg/mathutil"
)

const (
	// MaxMonths caps the projection at ten years.
	MaxMonths = 120
	// TimelineMonths is how many projection entries are returned.
	TimelineMonths = 24
)

var milestoneTargets = []float64{25, 50, 75, 100}

// Inputs describes the goal and the hours put toward it.
type Inputs struct {
	GoalAmount        float64 `json:"goalAmount" yaml:"goalAmount"`
	CurrentSavings    float64 `json:"currentSavings" yaml:"currentSavings"`
	WeeklyHours       float64 `json:"weeklyHours" yaml:"weeklyHours"`
	HourlyRate        float64 `json:"hourlyRate" yaml:"hourlyRate"`
	MonthlyGrowthRate float64 `json:"monthlyGrowthRate" yaml:"monthlyGrowthRate"`
	ExpenseRate       float64 `json:"expenseRate" yaml:"expenseRate"`
}

// Milestone marks the first month the cumulative total crossed a
// percentage of the goal.
type Milestone struct {
	Percentage float64   `json:"percentage"`
	Month      int       `json:"month"`
	Date       time.Time `json:"date"`
	Amount     float64   `json:"amount"`
}

// MonthlyProjection is one month of the savings timeline.
type MonthlyProjection struct {
	Month      int     `json:"month"`
	Earnings   float64 `json:"earnings"`
	Cumulative float64 `json:"cumulative"`
	Rate       float64 `json:"rate"`
}

// Results holds the projected timeline to the goal.
type Results struct {
	MonthsToGoal           int                 `json:"monthsToGoal"`
	TargetDate             time.Time           `json:"targetDate"`
	GoalReached            bool                `json:"goalReached"`
	TotalEarned            float64             `json:"totalEarned"`
	TotalHoursWorked       float64             `json:"totalHoursWorked"`
	Timeline               []MonthlyProjection `json:"timeline"`
	Milestones             []Milestone         `json:"milestones"`
	AverageMonthlyEarnings float64             `json:"averageMonthlyEarnings"`
	FinalHourlyRate        float64             `json:"finalHourlyRate"`
}

// DefaultInputs returns a $10,000 goal at ten hours a week.
func DefaultInputs() Inputs {
	return Inputs{
		GoalAmount:        10000,
		WeeklyHours:       10,
		HourlyRate:        25,
		MonthlyGrowthRate: 5,
		ExpenseRate:       10,
	}
}

// Calculate runs the month-by-month projection. Milestone and target dates
// are offset from start. Savings already at or above the goal yield a single
// 100% milestone at month zero.
func Calculate(in Inputs, start time.Time) Results {
	if in.GoalAmount-in.CurrentSavings <= 0 {
		return Results{
			TargetDate:  start,
			GoalReached: true,
			Timeline:    []MonthlyProjection{},
			Milestones: []Milestone{
				{Percentage: 100, Month: 0, Date: start, Amount: in.GoalAmount},
			},
			FinalHourlyRate: in.HourlyRate,
		}
	}

	var (
		cumulative = in.CurrentSavings
		rate       = in.HourlyRate
		month      int
		totalHours float64
		timeline   []MonthlyProjection
		milestones = []Milestone{}
	)

	monthlyHours := in.WeeklyHours * constants.WeeksPerMonth
	keep := 1 - mathutil.Fraction(in.ExpenseRate)

	for cumulative < in.GoalAmount && month < MaxMonths {
		month++
		saved := monthlyHours * rate * keep
		cumulative += saved
		totalHours += monthlyHours

		timeline = append(timeline, MonthlyProjection{
			Month:      month,
			Earnings:   mathutil.Round(saved),
			Cumulative: mathutil.Round(min(cumulative, in.GoalAmount)),
			Rate:       mathutil.Round(rate),
		})

		progress := cumulative / in.GoalAmount * 100
		for _, target := range milestoneTargets {
			if progress >= target && !reached(milestones, target) {
				milestones = append(milestones, Milestone{
					Percentage: target,
					Month:      month,
					Date:       start.AddDate(0, month, 0),
					Amount:     mathutil.Round(in.GoalAmount * target / 100),
				})
			}
		}

		rate *= 1 + mathutil.Fraction(in.MonthlyGrowthRate)
	}

	earned := cumulative - in.CurrentSavings
	if len(timeline) > TimelineMonths {
		timeline = timeline[:TimelineMonths]
	}

	return Results{
		MonthsToGoal:           month,
		TargetDate:             start.AddDate(0, month, 0),
		GoalReached:            cumulative >= in.GoalAmount,
		TotalEarned:            mathutil.RoundWhole(earned),
		TotalHoursWorked:       mathutil.RoundWhole(totalHours),
		Timeline:               timeline,
		Milestones:             milestones,
		AverageMonthlyEarnings: mathutil.RoundWhole(mathutil.SafeDivide(earned, float64(month))),
		FinalHourlyRate:        mathutil.Round(rate),
	}
}

func reached(milestones []Milestone, target float64) bool {
	for _, m := range milestones {
		if m.Percentage == target {
			return true
		}
	}
	return false
}

// Highlights implements calculator.Reportable.
func (r Results) Highlights() []calculator.Metric {
	return []calculator.Metric{
		{Key: "monthsToGoal", Label: "Months to Goal", Value: float64(r.MonthsToGoal), Unit: calculator.UnitMonths},
		{Key: "totalEarned", Label: "Total Earned", Value: r.TotalEarned, Unit: calculator.UnitCurrency},
		{Key: "totalHoursWorked", Label: "Hours Worked", Value: r.TotalHoursWorked, Unit: calculator.UnitHours},
		{Key: "averageMonthlyEarnings", Label: "Average Monthly Savings", Value: r.AverageMonthlyEarnings, Unit: calculator.UnitCurrency},
		{Key: "finalHourlyRate", Label: "Final Hourly Rate", Value: r.FinalHourlyRate, Unit: calculator.UnitCurrency},
	}
}

// Lines lists the milestones as breakdown rows.
func (r Results) Lines() []calculator.LineItem {
	lines := make([]calculator.LineItem, 0, len(r.Milestones))
	for _, m := range r.Milestones {
		lines = append(lines, calculator.LineItem{
			Label:      m.Date.Format("Jan 2006"),
			Amount:     m.Amount,
			Percentage: m.Percentage,
		})
	}
	return lines
}
