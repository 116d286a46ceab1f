package scheduler

// Tracker is the per-run bookkeeping of who is already working on which day
// and how full each (date, shift) slot is. A fresh instance is built for
// every allocation run and seeded from the snapshot of existing ACTIVE
// assignments; it holds no reference to storage and is never shared between
// runs.
type Tracker struct {
	capacity int
	occupied map[string]map[int64]struct{} // date -> employee IDs working that day
	fill     map[string]map[int64]int      // date -> shift ID -> assigned count
	loads    map[int64]int                 // employee ID -> assignments made in this run
}

// NewTracker creates a tracker with the fixed per-shift daily headcount
// target.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		capacity: capacity,
		occupied: make(map[string]map[int64]struct{}),
		fill:     make(map[string]map[int64]int),
		loads:    make(map[int64]int),
	}
}

// Seed marks an existing assignment from the snapshot: the employee is
// occupied on that date and the slot's fill count goes up, but the run's
// fairness loads are not touched.
func (t *Tracker) Seed(employeeID, shiftID int64, date string) {
	t.occupy(employeeID, shiftID, date)
}

// IsEligible reports whether the employee may be proposed for the date:
// available and not already working that day.
func (t *Tracker) IsEligible(emp Employee, date string) bool {
	if !emp.Available {
		return false
	}
	_, taken := t.occupied[date][emp.ID]
	return !taken
}

// Needed returns how many more employees the (date, shift) slot wants,
// floored at zero.
func (t *Tracker) Needed(date string, shiftID int64) int {
	if n := t.capacity - t.fill[date][shiftID]; n > 0 {
		return n
	}
	return 0
}

// Record marks a proposed assignment. It returns false without changing any
// state if the employee is already occupied on that date, which guards
// against double-recording.
func (t *Tracker) Record(employeeID, shiftID int64, date string) bool {
	if _, taken := t.occupied[date][employeeID]; taken {
		return false
	}
	t.occupy(employeeID, shiftID, date)
	t.loads[employeeID]++
	return true
}

// Load returns the number of assignments recorded for the employee in this
// run.
func (t *Tracker) Load(employeeID int64) int {
	return t.loads[employeeID]
}

// Shortfall sums the headcount still missing across all (date, shift)
// slots after allocation.
func (t *Tracker) Shortfall(shifts []Shift, dates []string) int {
	total := 0
	for _, date := range dates {
		for _, shift := range shifts {
			total += t.Needed(date, shift.ID)
		}
	}
	return total
}

func (t *Tracker) occupy(employeeID, shiftID int64, date string) {
	if t.occupied[date] == nil {
		t.occupied[date] = make(map[int64]struct{})
	}
	t.occupied[date][employeeID] = struct{}{}

	if t.fill[date] == nil {
		t.fill[date] = make(map[int64]int)
	}
	t.fill[date][shiftID]++
}

// unrecord undoes a Record during backtracking search.
func (t *Tracker) unrecord(employeeID, shiftID int64, date string) {
	delete(t.occupied[date], employeeID)
	t.fill[date][shiftID]--
	t.loads[employeeID]--
}
