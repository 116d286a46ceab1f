package domain

import "time"

type LeaveRequestStatus string

const (
	LeavePending  LeaveRequestStatus = "PENDING"
	LeaveApproved LeaveRequestStatus = "APPROVED"
	LeaveRejected LeaveRequestStatus = "REJECTED"
)

// LeaveRequest is raised by an employee against one of their own ACTIVE
// assignments. At most one request per assignment may be PENDING or
// APPROVED at a time; approval triggers the replacement flow.
type LeaveRequest struct {
	ID           int64              `json:"id"`
	EmployeeID   int64              `json:"employeeID"`
	AssignmentID int64              `json:"assignmentID"`
	Reason       string             `json:"reason"`
	Status       LeaveRequestStatus `json:"status"`
	AdminNotes   *string            `json:"adminNotes"`
	ApprovedBy   *int64             `json:"approvedBy"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}

// LeaveRequestDetail carries the assignment context the replacement flow
// needs alongside the request itself.
type LeaveRequestDetail struct {
	LeaveRequest
	ShiftID        int64  `json:"shiftID"`
	ScheduledDate  string `json:"scheduledDate"`
	ShiftName      string `json:"shiftName"`
	EmployeeName   string `json:"employeeName"`
	EmployeeUserID int64  `json:"employeeUserID"`
}
