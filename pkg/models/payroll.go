package models

// Employee is a payroll-ledger entry, distinct from the TED user
// directory.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

type PayrollRecord struct {
	ID         int64   `json:"id"`
	EmployeeID int64   `json:"employee_id"`
	Period     string  `json:"period"`
	Salary     float64 `json:"salary"`
	Bonus      float64 `json:"bonus"`
	Deductions float64 `json:"deductions"`
	Tax        float64 `json:"tax"`
	NetSalary  float64 `json:"net_salary"`
}

// ComputeNet fills NetSalary from the other amounts.
func (p *PayrollRecord) ComputeNet() {
	p.NetSalary = p.Salary + p.Bonus - p.Deductions - p.Tax
}
