// Package scheduler contains the shift assignment engine: the in-memory
// capacity tracker, the interchangeable allocation strategies and the
// committer that turns proposals into durable rows. The package never talks
// to storage directly; it sees reference data as plain values and reaches
// the assignment table only through the small Store interface, so every part
// of a run can be exercised in tests without a database.
package scheduler

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for schedule dates throughout the engine.
const DateLayout = "2006-01-02"

// Employee is the slice of reference data the engine needs about a person:
// identity and whether they may be scheduled at all.
type Employee struct {
	ID        int64
	UserID    int64
	Available bool
}

type Shift struct {
	ID   int64
	Name string
}

// Proposal is one (employee, shift, date) binding produced by a Strategy.
// It is speculative until the Committer has re-validated and inserted it.
type Proposal struct {
	EmployeeID    int64
	ShiftID       int64
	ScheduledDate string
}

// Strategy produces proposals for the given snapshot. Implementations must
// be pure functions of their inputs and the tracker state: no storage
// access, deterministic given the same employee ordering, and safe to run
// speculatively and discard.
type Strategy interface {
	Name() string
	Allocate(employees []Employee, shifts []Shift, dates []string, tracker *Tracker) []Proposal
}

// StrategyFor resolves the algorithm name from a request. The empty string
// selects the greedy default.
func StrategyFor(name string, maxConflicts int) (Strategy, error) {
	switch name {
	case "", "greedy":
		return &Greedy{}, nil
	case "backtrack":
		return &Backtracking{MaxConflicts: maxConflicts}, nil
	default:
		return nil, fmt.Errorf("unknown scheduling algorithm %q", name)
	}
}

// ExpandDates turns an inclusive date range into the list of schedulable
// dates, in chronological order. Weekends are skipped unless the deployment
// schedules seven days a week.
func ExpandDates(start, end time.Time, includeWeekends bool) []string {
	dates := []string{}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !includeWeekends {
			if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
				continue
			}
		}
		dates = append(dates, d.Format(DateLayout))
	}
	return dates
}
