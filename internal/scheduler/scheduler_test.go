package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(value string) time.Time {
	d, err := time.Parse(DateLayout, value)
	if err != nil {
		panic(err)
	}
	return d
}

func TestExpandDatesSkipsWeekends(t *testing.T) {
	// Monday through Sunday
	dates := ExpandDates(day("2026-08-31"), day("2026-09-06"), false)

	assert.Equal(t, []string{
		"2026-08-31", "2026-09-01", "2026-09-02", "2026-09-03", "2026-09-04",
	}, dates)
}

func TestExpandDatesWithWeekends(t *testing.T) {
	dates := ExpandDates(day("2026-08-31"), day("2026-09-06"), true)

	assert.Len(t, dates, 7)
	assert.Equal(t, "2026-08-31", dates[0])
	assert.Equal(t, "2026-09-06", dates[6])
}

func TestExpandDatesWeekendOnlyRange(t *testing.T) {
	dates := ExpandDates(day("2026-09-05"), day("2026-09-06"), false)
	assert.Empty(t, dates)
}

func TestExpandDatesSingleDay(t *testing.T) {
	dates := ExpandDates(day("2026-09-01"), day("2026-09-01"), false)
	assert.Equal(t, []string{"2026-09-01"}, dates)
}

func TestExpandDatesInvertedRange(t *testing.T) {
	dates := ExpandDates(day("2026-09-02"), day("2026-09-01"), false)
	assert.Empty(t, dates)
}

func TestStrategyFor(t *testing.T) {
	strat, err := StrategyFor("", 100)
	require.NoError(t, err)
	assert.Equal(t, "greedy", strat.Name())

	strat, err = StrategyFor("greedy", 100)
	require.NoError(t, err)
	assert.Equal(t, "greedy", strat.Name())

	strat, err = StrategyFor("backtrack", 100)
	require.NoError(t, err)
	assert.Equal(t, "backtrack", strat.Name())
	assert.Equal(t, 100, strat.(*Backtracking).MaxConflicts)

	_, err = StrategyFor("simulated-annealing", 100)
	assert.Error(t, err)
}
