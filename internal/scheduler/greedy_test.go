package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func employeePool(n int) []Employee {
	pool := make([]Employee, 0, n)
	for i := 1; i <= n; i++ {
		pool = append(pool, Employee{ID: int64(i), UserID: int64(100 + i), Available: true})
	}
	return pool
}

func TestGreedyFillsToCapacity(t *testing.T) {
	strat := &Greedy{}
	tracker := NewTracker(3)

	proposals := strat.Allocate(employeePool(5), []Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, tracker)

	require.Len(t, proposals, 3)

	seen := map[int64]bool{}
	for _, p := range proposals {
		assert.Equal(t, int64(1), p.ShiftID)
		assert.Equal(t, "2026-09-01", p.ScheduledDate)
		assert.False(t, seen[p.EmployeeID], "employee proposed twice for the same day")
		seen[p.EmployeeID] = true
	}

	assert.Equal(t, 0, tracker.Shortfall([]Shift{{ID: 1}}, []string{"2026-09-01"}))
}

func TestGreedySpreadsLoadAcrossDates(t *testing.T) {
	strat := &Greedy{}
	tracker := NewTracker(1)
	dates := []string{"2026-09-01", "2026-09-02", "2026-09-03"}

	proposals := strat.Allocate(employeePool(3), []Shift{{ID: 1, Name: "Morning"}}, dates, tracker)

	require.Len(t, proposals, 3)
	// one slot per day and three employees: fairness rotates through all of them
	assert.Equal(t, int64(1), proposals[0].EmployeeID)
	assert.Equal(t, int64(2), proposals[1].EmployeeID)
	assert.Equal(t, int64(3), proposals[2].EmployeeID)
}

func TestGreedyStopsWhenNoEligibleEmployees(t *testing.T) {
	strat := &Greedy{}
	tracker := NewTracker(2)
	shifts := []Shift{{ID: 1, Name: "Morning"}, {ID: 2, Name: "Evening"}}
	dates := []string{"2026-09-01"}

	// three people, four slots, and nobody works twice on one day
	proposals := strat.Allocate(employeePool(3), shifts, dates, tracker)

	require.Len(t, proposals, 3)
	assert.Equal(t, 1, tracker.Shortfall(shifts, dates))
}

func TestGreedySkipsUnavailableEmployees(t *testing.T) {
	strat := &Greedy{}
	tracker := NewTracker(3)
	pool := employeePool(4)
	pool[0].Available = false

	proposals := strat.Allocate(pool, []Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, tracker)

	require.Len(t, proposals, 3)
	for _, p := range proposals {
		assert.NotEqual(t, pool[0].ID, p.EmployeeID)
	}
}

func TestGreedyRespectsSeededAssignments(t *testing.T) {
	strat := &Greedy{}
	tracker := NewTracker(2)
	tracker.Seed(1, 1, "2026-09-01")

	proposals := strat.Allocate(employeePool(3), []Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, tracker)

	require.Len(t, proposals, 1, "one of two places is already taken")
	assert.NotEqual(t, int64(1), proposals[0].EmployeeID)
}

func TestGreedyIsDeterministic(t *testing.T) {
	strat := &Greedy{}
	shifts := []Shift{{ID: 1, Name: "Morning"}, {ID: 2, Name: "Evening"}}
	dates := []string{"2026-09-01", "2026-09-02"}

	first := strat.Allocate(employeePool(6), shifts, dates, NewTracker(2))
	second := strat.Allocate(employeePool(6), shifts, dates, NewTracker(2))

	assert.Equal(t, first, second)
}
