package sidehustle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var start = time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)

func TestCalculateDefaults(t *testing.T) {
	r := Calculate(DefaultInputs(), start)

	assert.Equal(t, 9, r.MonthsToGoal)
	assert.True(t, r.GoalReached)
	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), r.TargetDate)
	assert.Equal(t, 10743.0, r.TotalEarned)
	assert.Equal(t, 390.0, r.TotalHoursWorked)
	assert.Equal(t, 1194.0, r.AverageMonthlyEarnings)
	assert.InDelta(t, 38.78, r.FinalHourlyRate, 0.001)
	assert.Len(t, r.Timeline, 9)
}

func TestMilestones(t *testing.T) {
	r := Calculate(DefaultInputs(), start)
	require.Len(t, r.Milestones, 4)

	expected := []struct {
		pct   float64
		month int
	}{
		{25, 3}, {50, 5}, {75, 7}, {100, 9},
	}
	for i, want := range expected {
		m := r.Milestones[i]
		assert.Equal(t, want.pct, m.Percentage)
		assert.Equal(t, want.month, m.Month)
		assert.Equal(t, start.AddDate(0, want.month, 0), m.Date)
		assert.InDelta(t, 10000*want.pct/100, m.Amount, 0.001)
	}
}

func TestTimelineCapsCumulativeAtGoal(t *testing.T) {
	r := Calculate(DefaultInputs(), start)
	last := r.Timeline[len(r.Timeline)-1]
	assert.Equal(t, 10000.0, last.Cumulative)
	assert.Equal(t, 25.0, r.Timeline[0].Rate)
	assert.InDelta(t, 974.25, r.Timeline[0].Earnings, 0.001)
}

func TestSavingsAlreadyMeetGoal(t *testing.T) {
	in := DefaultInputs()
	in.CurrentSavings = 12000
	r := Calculate(in, start)

	assert.Zero(t, r.MonthsToGoal)
	assert.True(t, r.GoalReached)
	assert.Empty(t, r.Timeline)
	require.Len(t, r.Milestones, 1)
	assert.Equal(t, Milestone{Percentage: 100, Month: 0, Date: start, Amount: 10000}, r.Milestones[0])
	assert.Equal(t, in.HourlyRate, r.FinalHourlyRate)
}

func TestProjectionIsCapped(t *testing.T) {
	in := Inputs{GoalAmount: 100000, WeeklyHours: 1, HourlyRate: 1}
	r := Calculate(in, start)

	assert.Equal(t, MaxMonths, r.MonthsToGoal)
	assert.False(t, r.GoalReached)
	assert.Len(t, r.Timeline, TimelineMonths)
	assert.Empty(t, r.Milestones)
	assert.Equal(t, 520.0, r.TotalEarned)
}

func TestLinesListMilestones(t *testing.T) {
	r := Calculate(DefaultInputs(), start)
	lines := r.Lines()
	require.Len(t, lines, 4)
	assert.Equal(t, "Jun 2024", lines[0].Label)
	assert.Equal(t, 25.0, lines[0].Percentage)
}
