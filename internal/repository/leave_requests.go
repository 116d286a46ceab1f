package repository

import (
	"context"
	"time"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
)

func (r *Repository) CreateLeaveRequest(lr *domain.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (employee_id, assignment_id, reason)
		VALUES ($1, $2, $3)
		RETURNING id, status, created_at, updated_at
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{lr.EmployeeID, lr.AssignmentID, lr.Reason}
	dst := []any{&lr.ID, &lr.Status, &lr.CreatedAt, &lr.UpdatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

// HasOpenLeaveRequest reports whether a PENDING or APPROVED request already
// exists for the assignment.
func (r *Repository) HasOpenLeaveRequest(assignmentID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM leave_requests
			WHERE assignment_id = $1 AND status IN ('PENDING', 'APPROVED')
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, assignmentID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// GetLeaveRequestDetail loads a request together with the assignment context
// the replacement flow needs.
func (r *Repository) GetLeaveRequestDetail(id int64) (*domain.LeaveRequestDetail, error) {
	query := `
		SELECT lr.employee_id, lr.assignment_id, lr.reason, lr.status, lr.admin_notes, lr.approved_by,
			lr.created_at, lr.updated_at,
			sa.shift_id, to_char(sa.scheduled_date, 'YYYY-MM-DD'), s.name, u.full_name, u.id
		FROM leave_requests lr
		JOIN schedule_assignments sa ON lr.assignment_id = sa.id
		JOIN shifts s ON sa.shift_id = s.id
		JOIN employees e ON lr.employee_id = e.id
		JOIN users u ON e.user_id = u.id
		WHERE lr.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	detail := &domain.LeaveRequestDetail{}
	detail.ID = id

	dst := []any{
		&detail.EmployeeID,
		&detail.AssignmentID,
		&detail.Reason,
		&detail.Status,
		&detail.AdminNotes,
		&detail.ApprovedBy,
		&detail.CreatedAt,
		&detail.UpdatedAt,
		&detail.ShiftID,
		&detail.ScheduledDate,
		&detail.ShiftName,
		&detail.EmployeeName,
		&detail.EmployeeUserID,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return detail, nil
}

func (r *Repository) GetLeaveRequestsByEmployee(employeeID int64) ([]*domain.LeaveRequestDetail, error) {
	query := `
		SELECT lr.id, lr.employee_id, lr.assignment_id, lr.reason, lr.status, lr.admin_notes, lr.approved_by,
			lr.created_at, lr.updated_at,
			sa.shift_id, to_char(sa.scheduled_date, 'YYYY-MM-DD'), s.name, u.full_name, u.id
		FROM leave_requests lr
		JOIN schedule_assignments sa ON lr.assignment_id = sa.id
		JOIN shifts s ON sa.shift_id = s.id
		JOIN employees e ON lr.employee_id = e.id
		JOIN users u ON e.user_id = u.id
		WHERE lr.employee_id = $1
		ORDER BY lr.created_at DESC
	`

	return r.queryLeaveRequestDetails(query, employeeID)
}

func (r *Repository) GetPendingLeaveRequests() ([]*domain.LeaveRequestDetail, error) {
	query := `
		SELECT lr.id, lr.employee_id, lr.assignment_id, lr.reason, lr.status, lr.admin_notes, lr.approved_by,
			lr.created_at, lr.updated_at,
			sa.shift_id, to_char(sa.scheduled_date, 'YYYY-MM-DD'), s.name, u.full_name, u.id
		FROM leave_requests lr
		JOIN schedule_assignments sa ON lr.assignment_id = sa.id
		JOIN shifts s ON sa.shift_id = s.id
		JOIN employees e ON lr.employee_id = e.id
		JOIN users u ON e.user_id = u.id
		WHERE lr.status = 'PENDING'
		ORDER BY lr.created_at
	`

	return r.queryLeaveRequestDetails(query)
}

func (r *Repository) queryLeaveRequestDetails(query string, args ...any) ([]*domain.LeaveRequestDetail, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	details := make([]*domain.LeaveRequestDetail, 0)
	for rows.Next() {
		detail := &domain.LeaveRequestDetail{}
		dst := []any{
			&detail.ID,
			&detail.EmployeeID,
			&detail.AssignmentID,
			&detail.Reason,
			&detail.Status,
			&detail.AdminNotes,
			&detail.ApprovedBy,
			&detail.CreatedAt,
			&detail.UpdatedAt,
			&detail.ShiftID,
			&detail.ScheduledDate,
			&detail.ShiftName,
			&detail.EmployeeName,
			&detail.EmployeeUserID,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}

// RejectLeaveRequest transitions a PENDING request to REJECTED. It returns
// false when no row changed, meaning the request was missing or already
// processed.
func (r *Repository) RejectLeaveRequest(id int64, approverID int64, adminNotes *string) (bool, error) {
	query := `
		UPDATE leave_requests
		SET status = 'REJECTED', admin_notes = $1, approved_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, adminNotes, approverID, id)
	if err != nil {
		return false, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}
