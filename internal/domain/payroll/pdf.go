package payroll

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PayslipFileName is the canonical download name for a payslip document.
func PayslipFileName(p Payslip) string {
	return fmt.Sprintf("payslip_%s_%s_%d.pdf", p.EmployeeNo, MonthName(p.Month), p.Year)
}

// RenderPayslipPDF produces the printable payslip document. Earnings and
// deductions are rendered in the fixed label order, skipping absent entries.
func RenderPayslipPDF(p Payslip) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Payslip %s %d", MonthName(p.Month), p.Year), false)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("Payslip for the month of %s %d", MonthName(p.Month), p.Year), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	details := [][2]string{
		{"Employee Name", p.EmployeeName},
		{"Employee No", p.EmployeeNo},
		{"Designation", p.Designation},
		{"Paid Days", fmt.Sprintf("%d", p.PaidDays)},
		{"LOP Days", fmt.Sprintf("%d", p.LOPDays)},
	}
	for _, d := range details {
		pdf.CellFormat(50, 7, d[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, ": "+d[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(95, 8, "Earnings", "1", 0, "C", false, 0, "")
	pdf.CellFormat(95, 8, "Deductions", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	earnRows := orderedAmounts(EarningLabels, p.Earnings)
	dedRows := orderedAmounts(DeductionLabels, p.Deductions)
	rows := len(earnRows)
	if len(dedRows) > rows {
		rows = len(dedRows)
	}
	for i := 0; i < rows; i++ {
		writeAmountCell(pdf, earnRows, i)
		writeAmountCell(pdf, dedRows, i)
		pdf.Ln(-1)
	}

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(60, 8, "Gross Earnings", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", p.GrossEarnings), "1", 0, "R", false, 0, "")
	pdf.CellFormat(60, 8, "Total Deductions", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", p.TotalDeductions), "1", 1, "R", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(0, 10, fmt.Sprintf("Net Payable: %.2f", p.NetPayable), "1", 1, "C", false, 0, "")
	pdf.Ln(8)

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, "-- This is a system generated payslip, hence the signature is not required. --", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type amountRow struct {
	label  string
	amount float64
}

func orderedAmounts(labels []string, amounts map[string]float64) []amountRow {
	out := make([]amountRow, 0, len(amounts))
	for _, label := range labels {
		if v, ok := amounts[label]; ok {
			out = append(out, amountRow{label: label, amount: v})
		}
	}
	return out
}

func writeAmountCell(pdf *gofpdf.Fpdf, rows []amountRow, i int) {
	if i < len(rows) {
		pdf.CellFormat(60, 8, rows[i].label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, fmt.Sprintf("%.2f", rows[i].amount), "1", 0, "R", false, 0, "")
		return
	}
	pdf.CellFormat(60, 8, "", "1", 0, "L", false, 0, "")
	pdf.CellFormat(35, 8, "", "1", 0, "R", false, 0, "")
}
