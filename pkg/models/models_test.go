package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-03")
	if err != nil {
		t.Fatalf("ParseDate failed: %v", err)
	}
	if d.Key() != "2024-06-03" {
		t.Errorf("Expected key 2024-06-03, got %s", d.Key())
	}
	if d.Weekday() != time.Monday {
		t.Errorf("Expected Monday, got %s", d.Weekday())
	}

	if _, err := ParseDate("03/06/2024"); err == nil {
		t.Errorf("Expected error for wrong format")
	}
}

func TestDateJSON(t *testing.T) {
	d := NewDate(2024, time.June, 3)
	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `"2024-06-03"` {
		t.Errorf("Expected quoted date, got %s", data)
	}

	var back Date
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.Key() != d.Key() {
		t.Errorf("Round trip changed the date: %s", back.Key())
	}
}

func TestDateNext(t *testing.T) {
	d := NewDate(2024, time.June, 30)
	if d.Next().Key() != "2024-07-01" {
		t.Errorf("Expected month rollover, got %s", d.Next().Key())
	}
}

func TestScopeDescribe(t *testing.T) {
	day := ScopeForDay(NewDate(2024, time.June, 3))
	if day.Describe() != "on 2024-06-03" {
		t.Errorf("Unexpected describe %q", day.Describe())
	}
	if !day.Single() {
		t.Errorf("Expected single scope")
	}

	r := ScopeForRange(NewDate(2024, time.June, 1), NewDate(2024, time.June, 30))
	if r.Describe() != "from 2024-06-01 to 2024-06-30" {
		t.Errorf("Unexpected describe %q", r.Describe())
	}
	if r.Descriptor() != "from_2024-06-01_to_2024-06-30" {
		t.Errorf("Unexpected descriptor %q", r.Descriptor())
	}
}

func TestTaskHours(t *testing.T) {
	task := TaskRecord{EffortHours: 2, EffortMinutes: 45}
	if task.Hours() != 2.75 {
		t.Errorf("Expected 2.75, got %v", task.Hours())
	}
	if task.DurationLabel() != "2h 45m" {
		t.Errorf("Expected '2h 45m', got %q", task.DurationLabel())
	}

	// Minutes are not clamped.
	long := TaskRecord{EffortMinutes: 90}
	if long.Hours() != 1.5 {
		t.Errorf("Expected 1.5 for 90 minutes, got %v", long.Hours())
	}
}

func TestTaskCategory(t *testing.T) {
	task := TaskRecord{BroadArea: "Engineering"}
	if task.Category() != "Engineering" {
		t.Errorf("Expected Engineering, got %q", task.Category())
	}
	empty := TaskRecord{}
	if empty.Category() != UndefinedCategory {
		t.Errorf("Expected %s for empty broad area, got %q", UndefinedCategory, empty.Category())
	}
}

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"employee", "manager", "reviewer"} {
		if _, err := ParseRole(valid); err != nil {
			t.Errorf("Expected %q to parse: %v", valid, err)
		}
	}
	if _, err := ParseRole("admin"); err == nil {
		t.Errorf("Expected error for unknown role")
	}
}

func TestSeesAnnotations(t *testing.T) {
	if RoleEmployee.SeesAnnotations() {
		t.Errorf("Employees must not see annotations")
	}
	if !RoleManager.SeesAnnotations() || !RoleReviewer.SeesAnnotations() {
		t.Errorf("Managers and reviewers must see annotations")
	}
	if Role("admin").SeesAnnotations() {
		t.Errorf("Unknown roles must fail closed")
	}
}

func TestComputeNet(t *testing.T) {
	p := PayrollRecord{Salary: 5000, Bonus: 500, Deductions: 200, Tax: 800}
	p.ComputeNet()
	if p.NetSalary != 4500 {
		t.Errorf("Expected net 4500, got %v", p.NetSalary)
	}
}
