package scheduler

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	existing    map[string]bool // "employeeID|date"
	inserted    []Proposal
	checkErr    error
	insertFails map[string]bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		existing:    map[string]bool{},
		insertFails: map[string]bool{},
	}
}

func storeKey(employeeID int64, date string) string {
	return fmt.Sprintf("%d|%s", employeeID, date)
}

func (s *fakeStore) AssignmentExists(_ context.Context, employeeID int64, date string) (bool, error) {
	if s.checkErr != nil {
		return false, s.checkErr
	}
	return s.existing[storeKey(employeeID, date)], nil
}

func (s *fakeStore) InsertAssignment(_ context.Context, p Proposal) error {
	if s.insertFails[storeKey(p.EmployeeID, p.ScheduledDate)] {
		return errors.New("insert failed")
	}
	s.inserted = append(s.inserted, p)
	s.existing[storeKey(p.EmployeeID, p.ScheduledDate)] = true
	return nil
}

type fakeNotifier struct {
	events []string
}

func (n *fakeNotifier) AssignmentCreated(employeeID int64, shiftName, date string) {
	n.events = append(n.events, fmt.Sprintf("%d:%s:%s", employeeID, shiftName, date))
}

func TestCommitterSchedulesAndNotifies(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	committer := NewCommitter(store, notifier)

	shifts := []Shift{{ID: 1, Name: "Morning"}}
	dates := []string{"2026-09-01"}

	summary, err := committer.Schedule(context.Background(), &Greedy{}, employeePool(5), shifts, dates, NewTracker(3))

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Requested)
	assert.Equal(t, 3, summary.Inserted)
	assert.Equal(t, 0, summary.Conflicts)
	assert.Equal(t, 0, summary.Shortfall)
	assert.Equal(t, 1, summary.DatesProcessed)
	assert.Equal(t, "greedy", summary.Algorithm)
	assert.Equal(t, DateRange{Start: "2026-09-01", End: "2026-09-01"}, summary.DateRange)
	assert.Equal(t, "2026-09-01", summary.FirstScheduledDate)

	assert.Len(t, store.inserted, 3)
	require.Len(t, notifier.events, 3)
	assert.Contains(t, notifier.events[0], "Morning")
}

func TestCommitterRerunIsAllConflicts(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, &fakeNotifier{})

	shifts := []Shift{{ID: 1, Name: "Morning"}}
	dates := []string{"2026-09-01"}
	pool := employeePool(3)

	// a previous run already placed everyone, but the tracker was not
	// seeded, so the strategy proposes the same rows again
	for _, emp := range pool {
		store.existing[storeKey(emp.ID, "2026-09-01")] = true
	}

	summary, err := committer.Schedule(context.Background(), &Greedy{}, pool, shifts, dates, NewTracker(3))

	require.ErrorIs(t, err, ErrNoAssignments)
	require.NotNil(t, summary)
	assert.Equal(t, 3, summary.Requested)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 3, summary.Conflicts)
	assert.Empty(t, store.inserted)
}

func TestCommitterSeededRerunProposesNothing(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, &fakeNotifier{})

	shifts := []Shift{{ID: 1, Name: "Morning"}}
	dates := []string{"2026-09-01"}
	pool := employeePool(3)

	// a rerun that seeds its tracker from the current snapshot sees the
	// window fully staffed and proposes nothing, instead of re-proposing
	// the same triples or overfilling the slot
	tracker := NewTracker(3)
	for _, emp := range pool {
		store.existing[storeKey(emp.ID, "2026-09-01")] = true
		tracker.Seed(emp.ID, 1, "2026-09-01")
	}

	summary, err := committer.Schedule(context.Background(), &Greedy{}, pool, shifts, dates, tracker)

	require.ErrorIs(t, err, ErrNoAssignments)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Requested)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 0, summary.Conflicts)
	assert.Equal(t, 0, summary.Shortfall)
	assert.Empty(t, store.inserted)
}

func TestCommitterWithEmptyEmployeePool(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, &fakeNotifier{})

	summary, err := committer.Schedule(context.Background(), &Greedy{}, nil,
		[]Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, NewTracker(3))

	require.ErrorIs(t, err, ErrNoAssignments)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Inserted)
	assert.Equal(t, 3, summary.Shortfall)
	assert.Equal(t, 1, summary.DatesProcessed)
}

func TestCommitterWithNoEligibleEmployees(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, &fakeNotifier{})

	pool := employeePool(2)
	pool[0].Available = false
	pool[1].Available = false

	summary, err := committer.Schedule(context.Background(), &Greedy{}, pool,
		[]Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, NewTracker(3))

	require.ErrorIs(t, err, ErrNoAssignments)
	require.NotNil(t, summary)
	assert.Equal(t, 0, summary.Requested)
	assert.Equal(t, 3, summary.Shortfall)
	assert.Equal(t, "2026-09-01", summary.FirstScheduledDate)
}

func TestCommitterCountsInsertFailuresAsConflicts(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, &fakeNotifier{})

	store.insertFails[storeKey(1, "2026-09-01")] = true

	summary, err := committer.Schedule(context.Background(), &Greedy{}, employeePool(3),
		[]Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, NewTracker(3))

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Requested)
	assert.Equal(t, 2, summary.Inserted)
	assert.Equal(t, 1, summary.Conflicts)
}

func TestCommitterCountsCheckErrorsAsConflicts(t *testing.T) {
	store := newFakeStore()
	store.checkErr = errors.New("connection lost")
	committer := NewCommitter(store, &fakeNotifier{})

	summary, err := committer.Schedule(context.Background(), &Greedy{}, employeePool(3),
		[]Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, NewTracker(3))

	require.ErrorIs(t, err, ErrNoAssignments)
	assert.Equal(t, 3, summary.Conflicts)
	assert.Empty(t, store.inserted)
}

func TestCommitterFirstScheduledDateIsEarliestInsert(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, &fakeNotifier{})

	dates := []string{"2026-09-01", "2026-09-02"}

	// the first day is fully taken, so the earliest actual insert lands on
	// the second
	for _, emp := range employeePool(3) {
		store.existing[storeKey(emp.ID, "2026-09-01")] = true
	}

	summary, err := committer.Schedule(context.Background(), &Greedy{}, employeePool(3),
		[]Shift{{ID: 1, Name: "Morning"}}, dates, NewTracker(3))

	require.NoError(t, err)
	assert.Equal(t, "2026-09-02", summary.FirstScheduledDate)
	assert.Equal(t, 3, summary.Conflicts)
	assert.Equal(t, 3, summary.Inserted)
}

func TestCommitterWithNilNotifier(t *testing.T) {
	store := newFakeStore()
	committer := NewCommitter(store, nil)

	summary, err := committer.Schedule(context.Background(), &Greedy{}, employeePool(3),
		[]Shift{{ID: 1, Name: "Morning"}}, []string{"2026-09-01"}, NewTracker(3))

	require.NoError(t, err)
	assert.Equal(t, 3, summary.Inserted)
}
