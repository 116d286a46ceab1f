package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrackerNeededAndRecord(t *testing.T) {
	tracker := NewTracker(2)

	assert.Equal(t, 2, tracker.Needed("2026-09-01", 1))

	assert.True(t, tracker.Record(10, 1, "2026-09-01"))
	assert.Equal(t, 1, tracker.Needed("2026-09-01", 1))

	assert.True(t, tracker.Record(11, 1, "2026-09-01"))
	assert.Equal(t, 0, tracker.Needed("2026-09-01", 1))

	// another date is independent
	assert.Equal(t, 2, tracker.Needed("2026-09-02", 1))
}

func TestTrackerRejectsDoubleRecord(t *testing.T) {
	tracker := NewTracker(3)

	assert.True(t, tracker.Record(10, 1, "2026-09-01"))
	assert.False(t, tracker.Record(10, 2, "2026-09-01"), "same employee, same date, other shift")
	assert.Equal(t, 1, tracker.Load(10), "failed record must not bump the load")

	assert.True(t, tracker.Record(10, 1, "2026-09-02"))
	assert.Equal(t, 2, tracker.Load(10))
}

func TestTrackerEligibility(t *testing.T) {
	tracker := NewTracker(3)

	available := Employee{ID: 10, Available: true}
	unavailable := Employee{ID: 11, Available: false}

	assert.True(t, tracker.IsEligible(available, "2026-09-01"))
	assert.False(t, tracker.IsEligible(unavailable, "2026-09-01"))

	tracker.Record(10, 1, "2026-09-01")
	assert.False(t, tracker.IsEligible(available, "2026-09-01"))
	assert.True(t, tracker.IsEligible(available, "2026-09-02"))
}

func TestTrackerSeedCountsAgainstCapacityNotLoad(t *testing.T) {
	tracker := NewTracker(2)

	tracker.Seed(10, 1, "2026-09-01")

	assert.Equal(t, 1, tracker.Needed("2026-09-01", 1))
	assert.False(t, tracker.IsEligible(Employee{ID: 10, Available: true}, "2026-09-01"))
	assert.Equal(t, 0, tracker.Load(10), "seeded rows are not part of this run's fairness")
}

func TestTrackerShortfall(t *testing.T) {
	tracker := NewTracker(2)
	shifts := []Shift{{ID: 1}, {ID: 2}}
	dates := []string{"2026-09-01", "2026-09-02"}

	assert.Equal(t, 8, tracker.Shortfall(shifts, dates))

	tracker.Record(10, 1, "2026-09-01")
	tracker.Record(11, 1, "2026-09-01")
	tracker.Record(12, 2, "2026-09-01")

	assert.Equal(t, 5, tracker.Shortfall(shifts, dates))
}
