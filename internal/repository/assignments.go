package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
	"github.com/andalan-dev/shift-planner/backend/internal/scheduler"
)

// GetAssignmentSnapshot returns the ACTIVE assignments inside the range,
// reduced to the triples an allocation run needs to seed its tracker.
func (r *Repository) GetAssignmentSnapshot(startDate, endDate string) ([]*domain.Assignment, error) {
	query := `
		SELECT employee_id, shift_id, to_char(scheduled_date, 'YYYY-MM-DD')
		FROM schedule_assignments
		WHERE scheduled_date >= $1::date AND scheduled_date <= $2::date AND status = 'ACTIVE'
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		if err := rows.Scan(&assignment.EmployeeID, &assignment.ShiftID, &assignment.ScheduledDate); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// AssignmentExists is the committer's per-proposal re-check: any row for the
// (employee, date) pair, regardless of shift or status, blocks a new insert.
func (r *Repository) AssignmentExists(ctx context.Context, employeeID int64, date string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedule_assignments
			WHERE employee_id = $1 AND scheduled_date = $2::date
		)
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

// InsertAssignment writes one proposal as a new ACTIVE row.
func (r *Repository) InsertAssignment(ctx context.Context, p scheduler.Proposal) error {
	query := `
		INSERT INTO schedule_assignments (employee_id, shift_id, scheduled_date, status)
		VALUES ($1, $2, $3::date, 'ACTIVE')
	`

	ctx, cancel := context.WithTimeout(ctx, time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if _, err := r.dbpool.ExecContext(ctx, query, p.EmployeeID, p.ShiftID, p.ScheduledDate); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAssignmentByID(id int64) (*domain.Assignment, error) {
	query := `
		SELECT sa.employee_id, sa.shift_id, to_char(sa.scheduled_date, 'YYYY-MM-DD'), sa.is_confirmed,
			sa.status, sa.replacement_for_id, sa.replaced_by_employee_id, sa.notes, sa.created_at, sa.updated_at,
			u.full_name, s.name
		FROM schedule_assignments sa
		JOIN employees e ON sa.employee_id = e.id
		JOIN users u ON e.user_id = u.id
		JOIN shifts s ON sa.shift_id = s.id
		WHERE sa.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	assignment := &domain.Assignment{
		ID: id,
	}

	dst := []any{
		&assignment.EmployeeID,
		&assignment.ShiftID,
		&assignment.ScheduledDate,
		&assignment.IsConfirmed,
		&assignment.Status,
		&assignment.ReplacementForID,
		&assignment.ReplacedByEmployeeID,
		&assignment.Notes,
		&assignment.CreatedAt,
		&assignment.UpdatedAt,
		&assignment.EmployeeName,
		&assignment.ShiftName,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (r *Repository) GetAssignmentsInRange(startDate, endDate string) ([]*domain.Assignment, error) {
	query := `
		SELECT sa.id, sa.employee_id, sa.shift_id, to_char(sa.scheduled_date, 'YYYY-MM-DD'), sa.is_confirmed,
			sa.status, sa.replacement_for_id, sa.replaced_by_employee_id, sa.notes, sa.created_at, sa.updated_at,
			u.full_name, s.name
		FROM schedule_assignments sa
		JOIN employees e ON sa.employee_id = e.id
		JOIN users u ON e.user_id = u.id
		JOIN shifts s ON sa.shift_id = s.id
		WHERE sa.scheduled_date >= $1::date AND sa.scheduled_date <= $2::date
		ORDER BY sa.scheduled_date, s.start_time, u.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, startDate, endDate)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assignments := make([]*domain.Assignment, 0)
	for rows.Next() {
		assignment := &domain.Assignment{}
		dst := []any{
			&assignment.ID,
			&assignment.EmployeeID,
			&assignment.ShiftID,
			&assignment.ScheduledDate,
			&assignment.IsConfirmed,
			&assignment.Status,
			&assignment.ReplacementForID,
			&assignment.ReplacedByEmployeeID,
			&assignment.Notes,
			&assignment.CreatedAt,
			&assignment.UpdatedAt,
			&assignment.EmployeeName,
			&assignment.ShiftName,
		}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		assignments = append(assignments, assignment)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return assignments, nil
}

// HasActiveAssignmentOnDate reports whether the employee already holds an
// ACTIVE assignment on the date for a different shift. The same-shift row is
// ignored because the replacement flow upserts it.
func (r *Repository) HasActiveAssignmentOnDate(employeeID int64, date string, excludeShiftID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM schedule_assignments
			WHERE employee_id = $1 AND scheduled_date = $2::date AND status = 'ACTIVE' AND shift_id <> $3
		)
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	var exists bool
	if err := r.dbpool.QueryRowContext(ctx, query, employeeID, date, excludeShiftID).Scan(&exists); err != nil {
		return false, err
	}

	return exists, nil
}

func (r *Repository) DeleteAssignment(id int64) error {
	query := `
		DELETE FROM schedule_assignments WHERE id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// DeleteAssignmentsInRange clears every assignment dated inside the range,
// regardless of status, and returns how many rows went away. Callers
// validate the range first; there is no soft delete.
func (r *Repository) DeleteAssignmentsInRange(startDate, endDate string) (int64, error) {
	query := `
		DELETE FROM schedule_assignments
		WHERE scheduled_date >= $1::date AND scheduled_date <= $2::date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	result, err := r.dbpool.ExecContext(ctx, query, startDate, endDate)
	if err != nil {
		return 0, err
	}

	return result.RowsAffected()
}

// ApproveLeaveReplacement performs the replacement swap as one transaction:
// the leave request is approved, the original assignment becomes REPLACED
// and points at its replacement employee, and the replacement employee gets
// an ACTIVE row for the same shift and date (upserted, since a placeholder
// row for the triple may legitimately exist). Any failure rolls the whole
// swap back.
func (r *Repository) ApproveLeaveReplacement(req *domain.LeaveRequestDetail, replacementEmployeeID, approverID int64, adminNotes *string) (int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE leave_requests
		SET status = 'APPROVED', admin_notes = $1, approved_by = $2, updated_at = NOW()
		WHERE id = $3 AND status = 'PENDING'
	`
	result, err := tx.ExecContext(ctx, query, adminNotes, approverID, req.ID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	if affected == 0 {
		// a concurrent approval got there first
		return 0, sql.ErrNoRows
	}

	query = `
		UPDATE schedule_assignments
		SET status = 'REPLACED', replaced_by_employee_id = $1, updated_at = NOW()
		WHERE id = $2
	`
	if _, err := tx.ExecContext(ctx, query, replacementEmployeeID, req.AssignmentID); err != nil {
		return 0, err
	}

	query = `
		INSERT INTO schedule_assignments (employee_id, shift_id, scheduled_date, is_confirmed, replacement_for_id, status)
		VALUES ($1, $2, $3::date, false, $4, 'ACTIVE')
		ON CONFLICT (employee_id, shift_id, scheduled_date)
		DO UPDATE SET replacement_for_id = EXCLUDED.replacement_for_id, status = 'ACTIVE', updated_at = NOW()
		RETURNING id
	`

	var newAssignmentID int64
	args := []any{replacementEmployeeID, req.ShiftID, req.ScheduledDate, req.AssignmentID}
	if err := tx.QueryRowContext(ctx, query, args...).Scan(&newAssignmentID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return newAssignmentID, nil
}
