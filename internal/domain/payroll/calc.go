package payroll

const (
	LabelBasic               = "Basic"
	LabelHouseRentAllowance  = "House Rent Allowance"
	LabelTransportAllowance  = "Transport Allowance"
	LabelFixedAllowance      = "Fixed Allowance"
	LabelHomeCollectionVisit = "Home Collection - Visit"
	LabelProfessionalTax     = "Professional Tax"
)

// EarningLabels fixes the rendering order of earning lines; maps do not
// preserve insertion order.
var EarningLabels = []string{
	LabelBasic,
	LabelHouseRentAllowance,
	LabelTransportAllowance,
	LabelFixedAllowance,
	LabelHomeCollectionVisit,
}

var DeductionLabels = []string{LabelProfessionalTax}

var monthNames = []string{"", "January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"}

func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// GrossSalary is the employee's monthly gross: every component except
// professional tax, which is a deduction.
func GrossSalary(c SalaryComponents) float64 {
	return c.Basic + c.HouseRentAllowance + c.TransportAllowance + c.FixedAllowance + c.HomeCollectionVisit
}

func NetSalary(c SalaryComponents) float64 {
	return GrossSalary(c) - c.ProfessionalTax
}

// ComputePayslip builds the earning and deduction lines for one month.
// Zero-valued components are omitted from the maps.
func ComputePayslip(c SalaryComponents) (earnings, deductions map[string]float64, gross, totalDeductions, net float64) {
	earnings = map[string]float64{}
	if c.Basic > 0 {
		earnings[LabelBasic] = c.Basic
	}
	if c.HouseRentAllowance > 0 {
		earnings[LabelHouseRentAllowance] = c.HouseRentAllowance
	}
	if c.TransportAllowance > 0 {
		earnings[LabelTransportAllowance] = c.TransportAllowance
	}
	if c.FixedAllowance > 0 {
		earnings[LabelFixedAllowance] = c.FixedAllowance
	}
	if c.HomeCollectionVisit > 0 {
		earnings[LabelHomeCollectionVisit] = c.HomeCollectionVisit
	}
	for _, amount := range earnings {
		gross += amount
	}

	deductions = map[string]float64{}
	if c.ProfessionalTax > 0 {
		deductions[LabelProfessionalTax] = c.ProfessionalTax
	}
	for _, amount := range deductions {
		totalDeductions += amount
	}

	net = gross - totalDeductions
	return earnings, deductions, gross, totalDeductions, net
}
