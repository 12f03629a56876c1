package payroll

import "time"

type SalaryComponents struct {
	Basic               float64 `json:"basic"`
	HouseRentAllowance  float64 `json:"house_rent_allowance"`
	TransportAllowance  float64 `json:"transport_allowance"`
	FixedAllowance      float64 `json:"fixed_allowance"`
	HomeCollectionVisit float64 `json:"home_collection_visit"`
	ProfessionalTax     float64 `json:"professional_tax"`
}

type Employee struct {
	ID               string           `json:"id"`
	EmployeeNo       string           `json:"employee_no"`
	Name             string           `json:"name"`
	Designation      string           `json:"designation"`
	DateOfJoining    string           `json:"date_of_joining"`
	WorkLocation     string           `json:"work_location"`
	Department       string           `json:"department"`
	BankAccountNo    string           `json:"bank_account_no"`
	SalaryComponents SalaryComponents `json:"salary_components"`
	IsActive         bool             `json:"is_active"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

type Promotion struct {
	ID                  string           `json:"id"`
	EmployeeID          string           `json:"employee_id"`
	EmployeeNo          string           `json:"employee_no"`
	EmployeeName        string           `json:"employee_name"`
	OldDesignation      string           `json:"old_designation"`
	NewDesignation      string           `json:"new_designation"`
	OldSalary           float64          `json:"old_salary"`
	NewSalary           float64          `json:"new_salary"`
	NewSalaryComponents SalaryComponents `json:"new_salary_components"`
	PromotionDate       string           `json:"promotion_date"`
	CreatedAt           time.Time        `json:"created_at"`
}

type Payslip struct {
	ID              string             `json:"id"`
	EmployeeID      string             `json:"employee_id"`
	EmployeeName    string             `json:"employee_name"`
	EmployeeNo      string             `json:"employee_no"`
	Designation     string             `json:"designation"`
	Month           int                `json:"month"`
	Year            int                `json:"year"`
	PaidDays        int                `json:"paid_days"`
	LOPDays         int                `json:"lop_days"`
	Earnings        map[string]float64 `json:"earnings"`
	Deductions      map[string]float64 `json:"deductions"`
	GrossEarnings   float64            `json:"gross_earnings"`
	TotalDeductions float64            `json:"total_deductions"`
	NetPayable      float64            `json:"net_payable"`
	GeneratedDate   time.Time          `json:"generated_date"`
}

type DashboardStats struct {
	TotalActiveEmployees   int     `json:"total_active_employees"`
	TotalMonthlyPayroll    float64 `json:"total_monthly_payroll"`
	TotalPayslipsGenerated int     `json:"total_payslips_generated"`
}
