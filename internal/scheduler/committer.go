package scheduler

import (
	"context"
	"errors"
	"log/slog"
)

// ErrNoAssignments reports a run that could not insert a single row. It is
// recoverable: the summary alongside it still describes what happened.
var ErrNoAssignments = errors.New("no assignments could be made")

// Store is the slice of assignment storage the committer needs. The
// existence check must hit the live table, not the tracker: the snapshot may
// be stale by the time proposals are committed, and the store is the final
// arbiter.
type Store interface {
	AssignmentExists(ctx context.Context, employeeID int64, date string) (bool, error)
	InsertAssignment(ctx context.Context, p Proposal) error
}

// Notifier delivers assignment events. Implementations are fire-and-forget;
// a delivery failure must never fail the commit.
type Notifier interface {
	AssignmentCreated(employeeID int64, shiftName, date string)
}

type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary describes one allocation run. Conflicts counts proposals that
// lost to rows already present at commit time; Shortfall counts slots the
// strategy could not fill at all.
type Summary struct {
	Requested          int       `json:"requested"`
	Inserted           int       `json:"inserted"`
	Conflicts          int       `json:"conflicts"`
	Shortfall          int       `json:"shortfall"`
	DatesProcessed     int       `json:"datesProcessed"`
	Algorithm          string    `json:"algorithm"`
	DateRange          DateRange `json:"dateRange"`
	FirstScheduledDate string    `json:"firstScheduledDate"`
}

// Committer turns proposals into durable rows, one at a time, re-validating
// each against the live store first.
type Committer struct {
	store    Store
	notifier Notifier
}

func NewCommitter(store Store, notifier Notifier) *Committer {
	return &Committer{store: store, notifier: notifier}
}

// Schedule runs the strategy over the snapshot held by the tracker and
// commits the resulting proposals in the order they were emitted. A proposal
// that fails its re-check, loses a storage race or hits an unexpected
// storage error is counted as a conflict and skipped; the rest of the batch
// continues. The summary is always populated; ErrNoAssignments accompanies
// it when nothing was inserted.
func (c *Committer) Schedule(ctx context.Context, strat Strategy, employees []Employee, shifts []Shift, dates []string, tracker *Tracker) (*Summary, error) {
	proposals := strat.Allocate(employees, shifts, dates, tracker)

	summary := &Summary{
		Requested:      len(proposals),
		Shortfall:      tracker.Shortfall(shifts, dates),
		DatesProcessed: len(dates),
		Algorithm:      strat.Name(),
	}
	if len(dates) > 0 {
		summary.DateRange = DateRange{Start: dates[0], End: dates[len(dates)-1]}
		summary.FirstScheduledDate = dates[0]
	}

	shiftNames := make(map[int64]string, len(shifts))
	for _, shift := range shifts {
		shiftNames[shift.ID] = shift.Name
	}

	first := ""
	for _, p := range proposals {
		exists, err := c.store.AssignmentExists(ctx, p.EmployeeID, p.ScheduledDate)
		if err != nil {
			slog.Error("assignment re-check failed",
				"employee", p.EmployeeID, "date", p.ScheduledDate, "error", err)
			summary.Conflicts++
			continue
		}
		if exists {
			summary.Conflicts++
			continue
		}

		if err := c.store.InsertAssignment(ctx, p); err != nil {
			slog.Error("assignment insert failed",
				"employee", p.EmployeeID, "shift", p.ShiftID, "date", p.ScheduledDate, "error", err)
			summary.Conflicts++
			continue
		}

		summary.Inserted++
		if first == "" || p.ScheduledDate < first {
			first = p.ScheduledDate
		}

		if c.notifier != nil {
			c.notifier.AssignmentCreated(p.EmployeeID, shiftNames[p.ShiftID], p.ScheduledDate)
		}
	}

	if first != "" {
		summary.FirstScheduledDate = first
	}

	if summary.Inserted == 0 {
		return summary, ErrNoAssignments
	}
	return summary, nil
}
