package handler

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
)

type fakeReplacementStore struct {
	detail    *domain.LeaveRequestDetail
	employees map[int64]*domain.Employee
	busy      map[int64]bool // employee ID -> has another shift that day

	approveCalls   int
	approvedWith   int64
	approverID     int64
	approveErr     error
	nextAssignment int64
}

func (s *fakeReplacementStore) GetLeaveRequestDetail(id int64) (*domain.LeaveRequestDetail, error) {
	if s.detail == nil || s.detail.ID != id {
		return nil, sql.ErrNoRows
	}
	return s.detail, nil
}

func (s *fakeReplacementStore) GetEmployeeByID(id int64) (*domain.Employee, error) {
	emp, ok := s.employees[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return emp, nil
}

func (s *fakeReplacementStore) HasActiveAssignmentOnDate(employeeID int64, _ string, _ int64) (bool, error) {
	return s.busy[employeeID], nil
}

func (s *fakeReplacementStore) ApproveLeaveReplacement(req *domain.LeaveRequestDetail, replacementEmployeeID, approverID int64, _ *string) (int64, error) {
	s.approveCalls++
	if s.approveErr != nil {
		return 0, s.approveErr
	}
	s.approvedWith = replacementEmployeeID
	s.approverID = approverID
	// the swap also transitions the request, so a repeat approval sees a
	// non-pending status
	req.Status = domain.LeaveApproved
	return s.nextAssignment, nil
}

func pendingLeave() *fakeReplacementStore {
	detail := &domain.LeaveRequestDetail{
		ShiftID:       7,
		ScheduledDate: "2026-09-01",
		ShiftName:     "Morning",
		EmployeeName:  "Dana Smith",
	}
	detail.ID = 1
	detail.EmployeeID = 10
	detail.AssignmentID = 100
	detail.Status = domain.LeavePending

	return &fakeReplacementStore{
		detail: detail,
		employees: map[int64]*domain.Employee{
			10: {ID: 10, UserID: 110, IsAvailable: true, FullName: "Dana Smith"},
			20: {ID: 20, UserID: 120, IsAvailable: true, FullName: "Robin Lee"},
			30: {ID: 30, UserID: 130, IsAvailable: false, FullName: "Sam Clark"},
		},
		busy:           map[int64]bool{},
		nextAssignment: 555,
	}
}

func TestApproveReplacementSwapsPendingRequest(t *testing.T) {
	store := pendingLeave()

	assignmentID, detail, replacement, err := approveReplacement(store, 1, 20, 99, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(555), assignmentID)
	assert.Equal(t, int64(20), replacement.ID)
	assert.Equal(t, "Dana Smith", detail.EmployeeName)
	assert.Equal(t, 1, store.approveCalls)
	assert.Equal(t, int64(20), store.approvedWith)
	assert.Equal(t, int64(99), store.approverID)
}

func TestApproveReplacementUnknownRequest(t *testing.T) {
	store := pendingLeave()

	_, _, _, err := approveReplacement(store, 42, 20, 99, nil)

	assert.ErrorIs(t, err, errLeaveNotFound)
	assert.Zero(t, store.approveCalls)
}

func TestApproveReplacementRejectsProcessedRequest(t *testing.T) {
	store := pendingLeave()
	store.detail.Status = domain.LeaveApproved

	_, _, _, err := approveReplacement(store, 1, 20, 99, nil)

	assert.ErrorIs(t, err, errLeaveProcessed)
	assert.Zero(t, store.approveCalls, "a processed request must never reach the swap")
}

func TestApproveReplacementSecondApprovalFails(t *testing.T) {
	store := pendingLeave()

	_, _, _, err := approveReplacement(store, 1, 20, 99, nil)
	require.NoError(t, err)

	_, _, _, err = approveReplacement(store, 1, 20, 99, nil)

	assert.ErrorIs(t, err, errLeaveProcessed)
	assert.Equal(t, 1, store.approveCalls, "only the first approval may create a replacement row")
}

func TestApproveReplacementRejectsOriginalHolder(t *testing.T) {
	store := pendingLeave()

	_, _, _, err := approveReplacement(store, 1, 10, 99, nil)

	assert.ErrorIs(t, err, errReplacementIsOriginal)
	assert.Zero(t, store.approveCalls)
}

func TestApproveReplacementRejectsUnknownEmployee(t *testing.T) {
	store := pendingLeave()

	_, _, _, err := approveReplacement(store, 1, 77, 99, nil)

	assert.ErrorIs(t, err, errReplacementNotFound)
	assert.Zero(t, store.approveCalls)
}

func TestApproveReplacementRejectsUnavailableEmployee(t *testing.T) {
	store := pendingLeave()

	_, _, _, err := approveReplacement(store, 1, 30, 99, nil)

	assert.ErrorIs(t, err, errReplacementUnavailable)
	assert.Zero(t, store.approveCalls)
}

func TestApproveReplacementRejectsBusyEmployee(t *testing.T) {
	store := pendingLeave()
	store.busy[20] = true

	_, _, _, err := approveReplacement(store, 1, 20, 99, nil)

	assert.ErrorIs(t, err, errReplacementBusy)
	assert.Zero(t, store.approveCalls)
}

func TestApproveReplacementReportsConcurrentApproval(t *testing.T) {
	store := pendingLeave()
	store.approveErr = sql.ErrNoRows

	_, _, _, err := approveReplacement(store, 1, 20, 99, nil)

	assert.ErrorIs(t, err, errLeaveRace)
	assert.Equal(t, 1, store.approveCalls)
}

func TestIsApprovalRefusal(t *testing.T) {
	assert.True(t, isApprovalRefusal(errLeaveProcessed))
	assert.True(t, isApprovalRefusal(errReplacementBusy))
	assert.False(t, isApprovalRefusal(sql.ErrConnDone))
}
