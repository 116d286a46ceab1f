package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBacktrackingFillsAllSlots(t *testing.T) {
	strat := &Backtracking{MaxConflicts: 1000}
	tracker := NewTracker(2)
	shifts := []Shift{{ID: 1, Name: "Morning"}, {ID: 2, Name: "Evening"}}
	dates := []string{"2026-09-01", "2026-09-02"}

	proposals := strat.Allocate(employeePool(4), shifts, dates, tracker)

	require.Len(t, proposals, 8, "four employees cover two shifts of two on both days")
	assert.Equal(t, 0, tracker.Shortfall(shifts, dates))

	perDay := map[string]map[int64]bool{}
	for _, p := range proposals {
		if perDay[p.ScheduledDate] == nil {
			perDay[p.ScheduledDate] = map[int64]bool{}
		}
		assert.False(t, perDay[p.ScheduledDate][p.EmployeeID], "employee doubled up on one day")
		perDay[p.ScheduledDate][p.EmployeeID] = true
	}
}

func TestBacktrackingKeepsBestPartialFill(t *testing.T) {
	strat := &Backtracking{MaxConflicts: 1000}
	tracker := NewTracker(2)
	shifts := []Shift{{ID: 1, Name: "Morning"}, {ID: 2, Name: "Evening"}}
	dates := []string{"2026-09-01"}

	// four slots, three people: the best any schedule can do is three
	proposals := strat.Allocate(employeePool(3), shifts, dates, tracker)

	require.Len(t, proposals, 3)
	assert.Equal(t, 1, tracker.Shortfall(shifts, dates))
}

func TestBacktrackingWithNoEligibleEmployees(t *testing.T) {
	strat := &Backtracking{MaxConflicts: 1000}
	tracker := NewTracker(3)
	pool := employeePool(2)
	pool[0].Available = false
	pool[1].Available = false

	proposals := strat.Allocate(pool, []Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, tracker)

	assert.Empty(t, proposals)
	assert.Equal(t, 3, tracker.Shortfall([]Shift{{ID: 1}}, []string{"2026-09-01"}))
}

func TestBacktrackingHonorsConflictBound(t *testing.T) {
	strat := &Backtracking{MaxConflicts: 1}
	tracker := NewTracker(3)

	// one person, three slots per day: every branch dead-ends quickly, and
	// the search must still return the best fill it reached
	proposals := strat.Allocate(employeePool(1), []Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01", "2026-09-02"}, tracker)

	assert.NotEmpty(t, proposals)
	for _, p := range proposals {
		assert.Equal(t, int64(1), p.EmployeeID)
	}
}

func TestBacktrackingReplaysBestOntoTracker(t *testing.T) {
	strat := &Backtracking{MaxConflicts: 1000}
	tracker := NewTracker(1)
	shifts := []Shift{{ID: 1, Name: "Morning"}}
	dates := []string{"2026-09-01"}

	proposals := strat.Allocate(employeePool(2), shifts, dates, tracker)

	require.Len(t, proposals, 1)
	assert.Equal(t, 0, tracker.Needed("2026-09-01", 1))
	assert.Equal(t, 1, tracker.Load(proposals[0].EmployeeID))
}

func TestBacktrackingIsDeterministic(t *testing.T) {
	strat := &Backtracking{MaxConflicts: 1000}
	shifts := []Shift{{ID: 1, Name: "Morning"}, {ID: 2, Name: "Evening"}}
	dates := []string{"2026-09-01", "2026-09-02"}

	first := strat.Allocate(employeePool(5), shifts, dates, NewTracker(2))
	second := strat.Allocate(employeePool(5), shifts, dates, NewTracker(2))

	assert.Equal(t, first, second)
}
