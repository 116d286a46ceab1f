package scheduler

import "log/slog"

// Greedy is the default allocation strategy: dates in chronological order,
// shifts in their given order, and for every open slot the eligible employee
// with the fewest assignments so far in the run, ties broken by input order.
// A slot that cannot be filled is logged and skipped; understaffing is a
// warning, not a failure.
type Greedy struct{}

func (*Greedy) Name() string { return "greedy" }

func (*Greedy) Allocate(employees []Employee, shifts []Shift, dates []string, tracker *Tracker) []Proposal {
	proposals := []Proposal{}

	for _, date := range dates {
		for _, shift := range shifts {
			for tracker.Needed(date, shift.ID) > 0 {
				best := -1
				for i, emp := range employees {
					if !tracker.IsEligible(emp, date) {
						continue
					}
					if best == -1 || tracker.Load(emp.ID) < tracker.Load(employees[best].ID) {
						best = i
					}
				}
				if best == -1 {
					slog.Warn("shift cannot be fully staffed",
						"date", date, "shift", shift.Name, "missing", tracker.Needed(date, shift.ID))
					break
				}

				tracker.Record(employees[best].ID, shift.ID, date)
				proposals = append(proposals, Proposal{
					EmployeeID:    employees[best].ID,
					ShiftID:       shift.ID,
					ScheduledDate: date,
				})
			}
		}
	}

	return proposals
}
