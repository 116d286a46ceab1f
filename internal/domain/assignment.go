package domain

import "time"

type AssignmentStatus string

const (
	AssignmentActive   AssignmentStatus = "ACTIVE"
	AssignmentReplaced AssignmentStatus = "REPLACED"
)

// Assignment binds one employee to one shift on one calendar date. The
// (employee, shift, date) triple is unique regardless of status; REPLACED
// rows are kept for audit and record who displaced whom.
type Assignment struct {
	ID                   int64            `json:"id"`
	EmployeeID           int64            `json:"employeeID"`
	ShiftID              int64            `json:"shiftID"`
	ScheduledDate        string           `json:"scheduledDate"` // YYYY-MM-DD
	IsConfirmed          bool             `json:"isConfirmed"`
	Status               AssignmentStatus `json:"status"`
	ReplacementForID     *int64           `json:"replacementForID"`
	ReplacedByEmployeeID *int64           `json:"replacedByEmployeeID"`
	Notes                string           `json:"notes"`
	CreatedAt            time.Time        `json:"createdAt"`
	UpdatedAt            time.Time        `json:"updatedAt"`

	// joined for list views
	EmployeeName string `json:"employeeName,omitempty"`
	ShiftName    string `json:"shiftName,omitempty"`
}
