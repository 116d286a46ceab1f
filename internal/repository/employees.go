package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/andalan-dev/shift-planner/backend/internal/domain"
)

func (r *Repository) CreateEmployee(employee *domain.Employee) error {
	query := `
		INSERT INTO employees (user_id, department, position, is_available)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.UserID, employee.Department, employee.Position, employee.IsAvailable}
	dst := []any{&employee.ID, &employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetEmployeeByID(id int64) (*domain.Employee, error) {
	query := `
		SELECT e.user_id, e.department, e.position, e.is_available, e.created_at, e.version, u.full_name, u.email
		FROM employees e
		JOIN users u ON e.user_id = u.id
		WHERE e.id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		ID: id,
	}

	dst := []any{&employee.UserID, &employee.Department, &employee.Position, &employee.IsAvailable, &employee.CreatedAt, &employee.Version, &employee.FullName, &employee.Email}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetEmployeeByUserID(userID int64) (*domain.Employee, error) {
	query := `
		SELECT e.id, e.department, e.position, e.is_available, e.created_at, e.version, u.full_name, u.email
		FROM employees e
		JOIN users u ON e.user_id = u.id
		WHERE e.user_id = $1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	employee := &domain.Employee{
		UserID: userID,
	}

	dst := []any{&employee.ID, &employee.Department, &employee.Position, &employee.IsAvailable, &employee.CreatedAt, &employee.Version, &employee.FullName, &employee.Email}
	if err := r.dbpool.QueryRowContext(ctx, query, userID).Scan(dst...); err != nil {
		return nil, err
	}

	return employee, nil
}

func (r *Repository) GetAllEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT e.id, e.user_id, e.department, e.position, e.is_available, e.created_at, e.version, u.full_name, u.email
		FROM employees e
		JOIN users u ON e.user_id = u.id
		ORDER BY u.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.UserID, &employee.Department, &employee.Position, &employee.IsAvailable, &employee.CreatedAt, &employee.Version, &employee.FullName, &employee.Email}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetAvailableEmployees returns the schedulable reference data for an
// allocation run: available employees behind active user accounts.
func (r *Repository) GetAvailableEmployees() ([]*domain.Employee, error) {
	query := `
		SELECT e.id, e.user_id, e.department, e.position, e.is_available, e.created_at, e.version, u.full_name, u.email
		FROM employees e
		JOIN users u ON e.user_id = u.id
		WHERE e.is_available = true AND u.is_active = true
		ORDER BY e.id
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.UserID, &employee.Department, &employee.Position, &employee.IsAvailable, &employee.CreatedAt, &employee.Version, &employee.FullName, &employee.Email}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

// GetReplacementCandidates returns available employees who have no ACTIVE
// assignment on the date and are not the excluded (original) employee.
func (r *Repository) GetReplacementCandidates(date string, excludeEmployeeID int64) ([]*domain.Employee, error) {
	query := `
		SELECT e.id, e.user_id, e.department, e.position, e.is_available, e.created_at, e.version, u.full_name, u.email
		FROM employees e
		JOIN users u ON e.user_id = u.id
		WHERE e.is_available = true
			AND u.is_active = true
			AND e.id <> $2
			AND e.id NOT IN (
				SELECT employee_id FROM schedule_assignments
				WHERE scheduled_date = $1::date AND status = 'ACTIVE'
			)
		ORDER BY u.full_name
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, date, excludeEmployeeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	employees := make([]*domain.Employee, 0)
	for rows.Next() {
		employee := &domain.Employee{}
		dst := []any{&employee.ID, &employee.UserID, &employee.Department, &employee.Position, &employee.IsAvailable, &employee.CreatedAt, &employee.Version, &employee.FullName, &employee.Email}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		employees = append(employees, employee)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return employees, nil
}

func (r *Repository) UpdateEmployee(employee *domain.Employee) error {
	query := `
		UPDATE employees
		SET
			department = $1,
			position = $2,
			is_available = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING created_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{employee.Department, employee.Position, employee.IsAvailable, employee.ID, employee.Version}
	dst := []any{&employee.CreatedAt, &employee.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(dst...); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteEmployee(id int64) error {
	query := `
		DELETE FROM employees WHERE id = $1
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
