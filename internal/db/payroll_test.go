package db

import (
	"context"
	"testing"

	"github.com/tedhq/ted/pkg/models"
)

func TestCreateEmployee(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	e := &models.Employee{Name: "Alice", Email: "alice@example.com", Department: "Engineering"}
	if err := db.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee failed: %v", err)
	}
	if e.ID == 0 {
		t.Errorf("Expected employee ID to be set")
	}

	dup := &models.Employee{Name: "Other", Email: "alice@example.com"}
	if err := db.CreateEmployee(ctx, dup); err == nil {
		t.Errorf("Expected error for duplicate email")
	}
}

func TestPayrollNetComputation(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	e := &models.Employee{Name: "Alice", Email: "alice@example.com"}
	if err := db.CreateEmployee(ctx, e); err != nil {
		t.Fatalf("CreateEmployee failed: %v", err)
	}

	p := &models.PayrollRecord{
		EmployeeID: e.ID,
		Period:     "2024-06",
		Salary:     5000,
		Bonus:      500,
		Deductions: 200,
		Tax:        800,
	}
	if err := db.CreatePayrollRecord(ctx, p); err != nil {
		t.Fatalf("CreatePayrollRecord failed: %v", err)
	}
	if p.NetSalary != 4500 {
		t.Errorf("Expected net salary 4500, got %v", p.NetSalary)
	}

	records, err := db.ListPayrollRecords(ctx, e.ID)
	if err != nil {
		t.Fatalf("ListPayrollRecords failed: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
	if records[0].NetSalary != 4500 {
		t.Errorf("Expected stored net salary 4500, got %v", records[0].NetSalary)
	}
}

func TestListPayrollRecordsEmpty(t *testing.T) {
	db := openTestDB(t)

	records, err := db.ListPayrollRecords(context.Background(), 42)
	if err != nil {
		t.Fatalf("ListPayrollRecords failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("Expected no records, got %d", len(records))
	}
}
