package handler

import (
	"database/sql"
	"errors"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
)

// replacementStore is the slice of storage the leave-approval flow needs,
// split out so the precondition chain can be exercised with a fake.
type replacementStore interface {
	GetLeaveRequestDetail(id int64) (*domain.LeaveRequestDetail, error)
	GetEmployeeByID(id int64) (*domain.Employee, error)
	HasActiveAssignmentOnDate(employeeID int64, date string, excludeShiftID int64) (bool, error)
	ApproveLeaveReplacement(req *domain.LeaveRequestDetail, replacementEmployeeID, approverID int64, adminNotes *string) (int64, error)
}

// Approval refusals, in the order the preconditions are checked. Each one
// is a user-facing reason; anything else out of approveReplacement is a
// storage failure.
var (
	errLeaveNotFound          = errors.New("leave request not found")
	errLeaveProcessed         = errors.New("leave request already processed")
	errReplacementIsOriginal  = errors.New("replacement must be a different employee")
	errReplacementNotFound    = errors.New("replacement employee not found")
	errReplacementUnavailable = errors.New("replacement employee is unavailable")
	errReplacementBusy        = errors.New("replacement already works another shift that day")
	errLeaveRace              = errors.New("leave request was processed concurrently, please refresh")
)

var approvalRefusals = []error{
	errLeaveNotFound,
	errLeaveProcessed,
	errReplacementIsOriginal,
	errReplacementNotFound,
	errReplacementUnavailable,
	errReplacementBusy,
	errLeaveRace,
}

func isApprovalRefusal(err error) bool {
	for _, refusal := range approvalRefusals {
		if errors.Is(err, refusal) {
			return true
		}
	}
	return false
}

// approveReplacement checks every approval precondition in order and, only
// when all hold, runs the transactional swap. No write happens before the
// last step. On success it returns the replacement assignment id plus the
// request detail and replacement employee for the follow-up notification.
func approveReplacement(store replacementStore, id, replacementEmployeeID, approverID int64, adminNotes *string) (int64, *domain.LeaveRequestDetail, *domain.Employee, error) {
	detail, err := store.GetLeaveRequestDetail(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, nil, errLeaveNotFound
		}
		return 0, nil, nil, err
	}

	if detail.Status != domain.LeavePending {
		return 0, nil, nil, errLeaveProcessed
	}

	if replacementEmployeeID == detail.EmployeeID {
		return 0, nil, nil, errReplacementIsOriginal
	}

	replacement, err := store.GetEmployeeByID(replacementEmployeeID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, nil, errReplacementNotFound
		}
		return 0, nil, nil, err
	}
	if !replacement.IsAvailable {
		return 0, nil, nil, errReplacementUnavailable
	}

	busy, err := store.HasActiveAssignmentOnDate(replacement.ID, detail.ScheduledDate, detail.ShiftID)
	if err != nil {
		return 0, nil, nil, err
	}
	if busy {
		return 0, nil, nil, errReplacementBusy
	}

	assignmentID, err := store.ApproveLeaveReplacement(detail, replacement.ID, approverID, adminNotes)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil, nil, errLeaveRace
		}
		return 0, nil, nil, err
	}

	return assignmentID, detail, replacement, nil
}
