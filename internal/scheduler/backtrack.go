package scheduler

import (
	"slices"
	"sort"
)

// Backtracking is the exhaustive strategy for smaller instances. It runs a
// depth-first search over the open (date, shift) slots, trying eligible
// employees in fairness order and undoing the tracker state on dead ends,
// and keeps the deepest fill it has seen. Every slot that turns out to have
// no candidate counts as one explored conflict; the search stops once
// MaxConflicts dead ends have been hit, so a run always terminates even on
// infeasible instances.
type Backtracking struct {
	MaxConflicts int
}

func (*Backtracking) Name() string { return "backtrack" }

func (b *Backtracking) Allocate(employees []Employee, shifts []Shift, dates []string, tracker *Tracker) []Proposal {
	type slot struct {
		date    string
		shiftID int64
	}

	slots := []slot{}
	for _, date := range dates {
		for _, shift := range shifts {
			for i := 0; i < tracker.Needed(date, shift.ID); i++ {
				slots = append(slots, slot{date: date, shiftID: shift.ID})
			}
		}
	}

	var (
		current   []Proposal
		best      []Proposal
		conflicts int
	)

	var search func(idx int)
	search = func(idx int) {
		if len(current) > len(best) {
			best = slices.Clone(current)
		}
		if idx == len(slots) || conflicts >= b.MaxConflicts {
			return
		}
		// branch and bound: even filling every remaining slot cannot beat
		// the best fill found so far
		if len(current)+(len(slots)-idx) <= len(best) {
			return
		}

		s := slots[idx]
		candidates := []Employee{}
		for _, emp := range employees {
			if tracker.IsEligible(emp, s.date) {
				candidates = append(candidates, emp)
			}
		}
		sort.SliceStable(candidates, func(i, j int) bool {
			return tracker.Load(candidates[i].ID) < tracker.Load(candidates[j].ID)
		})

		if len(candidates) == 0 {
			conflicts++
		}

		for _, emp := range candidates {
			tracker.Record(emp.ID, s.shiftID, s.date)
			current = append(current, Proposal{EmployeeID: emp.ID, ShiftID: s.shiftID, ScheduledDate: s.date})

			search(idx + 1)

			current = current[:len(current)-1]
			tracker.unrecord(emp.ID, s.shiftID, s.date)

			if len(best) == len(slots) || conflicts >= b.MaxConflicts {
				return
			}
		}

		// leave the slot unfilled and keep going
		search(idx + 1)
	}
	search(0)

	// the search unwinds the tracker completely; replay the winning fill so
	// shortfall and later reads see the final state
	for _, p := range best {
		tracker.Record(p.EmployeeID, p.ShiftID, p.ScheduledDate)
	}

	return best
}
