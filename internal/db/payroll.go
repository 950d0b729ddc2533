package db

import (
	"context"
	"fmt"

	"github.com/tedhq/ted/pkg/models"
)

// CreateEmployee adds a payroll-ledger employee. Emails are unique.
func (db *DB) CreateEmployee(ctx context.Context, e *models.Employee) error {
	query := `INSERT INTO employees (name, email, department) VALUES (?, ?, ?)`
	res, err := db.ExecContext(ctx, query, e.Name, e.Email, e.Department)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	if e.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read employee id: %w", err)
	}
	return nil
}

// CreatePayrollRecord stores a salary computation. NetSalary is
// recomputed here so the stored row is always consistent.
func (db *DB) CreatePayrollRecord(ctx context.Context, p *models.PayrollRecord) error {
	p.ComputeNet()
	query := `
		INSERT INTO payroll (employee_id, period, salary, bonus, deductions, tax, net_salary)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	res, err := db.ExecContext(ctx, query,
		p.EmployeeID, p.Period, p.Salary, p.Bonus, p.Deductions, p.Tax, p.NetSalary,
	)
	if err != nil {
		return fmt.Errorf("failed to create payroll record: %w", err)
	}
	if p.ID, err = res.LastInsertId(); err != nil {
		return fmt.Errorf("failed to read payroll id: %w", err)
	}
	return nil
}

// ListPayrollRecords returns all payroll rows for an employee in
// insertion order.
func (db *DB) ListPayrollRecords(ctx context.Context, employeeID int64) ([]models.PayrollRecord, error) {
	query := `
		SELECT id, employee_id, period, salary,
		       COALESCE(bonus, 0), COALESCE(deductions, 0), COALESCE(tax, 0), net_salary
		FROM payroll
		WHERE employee_id = ?
		ORDER BY id ASC
	`
	rows, err := db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []models.PayrollRecord
	for rows.Next() {
		var p models.PayrollRecord
		err := rows.Scan(&p.ID, &p.EmployeeID, &p.Period, &p.Salary, &p.Bonus, &p.Deductions, &p.Tax, &p.NetSalary)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return records, nil
}
