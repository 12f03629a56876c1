package ui

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"payhub/internal/client"
	"payhub/internal/domain/payroll"
)

// EmployeeDraft holds the employee dialog fields as typed, amounts included.
// Amount coercion happens at submit time.
type EmployeeDraft struct {
	EmployeeNo          string
	Name                string
	Designation         string
	DateOfJoining       string
	WorkLocation        string
	Department          string
	BankAccountNo       string
	Basic               string
	HouseRentAllowance  string
	TransportAllowance  string
	FixedAllowance      string
	HomeCollectionVisit string
	ProfessionalTax     string
}

func (d EmployeeDraft) components() payroll.SalaryComponents {
	return payroll.SalaryComponents{
		Basic:               ParseAmount(d.Basic),
		HouseRentAllowance:  ParseAmount(d.HouseRentAllowance),
		TransportAllowance:  ParseAmount(d.TransportAllowance),
		FixedAllowance:      ParseAmount(d.FixedAllowance),
		HomeCollectionVisit: ParseAmount(d.HomeCollectionVisit),
		ProfessionalTax:     ParseAmount(d.ProfessionalTax),
	}
}

func (d EmployeeDraft) input() client.EmployeeInput {
	return client.EmployeeInput{
		EmployeeNo:       d.EmployeeNo,
		Name:             d.Name,
		Designation:      d.Designation,
		DateOfJoining:    d.DateOfJoining,
		WorkLocation:     d.WorkLocation,
		Department:       d.Department,
		BankAccountNo:    d.BankAccountNo,
		SalaryComponents: d.components(),
	}
}

// DraftFromEmployee prefills the edit dialog from an existing record.
func DraftFromEmployee(e payroll.Employee) EmployeeDraft {
	return EmployeeDraft{
		EmployeeNo:          e.EmployeeNo,
		Name:                e.Name,
		Designation:         e.Designation,
		DateOfJoining:       e.DateOfJoining,
		WorkLocation:        e.WorkLocation,
		Department:          e.Department,
		BankAccountNo:       e.BankAccountNo,
		Basic:               formatAmount(e.SalaryComponents.Basic),
		HouseRentAllowance:  formatAmount(e.SalaryComponents.HouseRentAllowance),
		TransportAllowance:  formatAmount(e.SalaryComponents.TransportAllowance),
		FixedAllowance:      formatAmount(e.SalaryComponents.FixedAllowance),
		HomeCollectionVisit: formatAmount(e.SalaryComponents.HomeCollectionVisit),
		ProfessionalTax:     formatAmount(e.SalaryComponents.ProfessionalTax),
	}
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%g", v)
}

type EmployeesView struct {
	Client *client.Client
	List   ListState[payroll.Employee]
	Form   FormState
}

func (v *EmployeesView) Refresh(ctx context.Context) error {
	return v.List.Reload(ctx, v.Client.ListEmployees)
}

// Find returns the loaded row with the given id, for edit prefill.
func (v *EmployeesView) Find(id string) (payroll.Employee, bool) {
	for _, e := range v.List.Items() {
		if e.ID == id {
			return e, true
		}
	}
	return payroll.Employee{}, false
}

// SubmitCreate sends one create request. On success the dialog closes and the
// list refreshes once; on failure the dialog stays open with the error.
func (v *EmployeesView) SubmitCreate(ctx context.Context, draft EmployeeDraft) error {
	if _, err := v.Client.CreateEmployee(ctx, draft.input()); err != nil {
		v.Form.SetError(err.Error())
		return err
	}
	v.Form.Close()
	return v.Refresh(ctx)
}

func (v *EmployeesView) SubmitEdit(ctx context.Context, id string, draft EmployeeDraft) error {
	if _, err := v.Client.UpdateEmployee(ctx, id, draft.input()); err != nil {
		v.Form.SetError(err.Error())
		return err
	}
	v.Form.Close()
	return v.Refresh(ctx)
}

func (v *EmployeesView) Terminate(ctx context.Context, id string) (string, error) {
	msg, err := v.Client.TerminateEmployee(ctx, id)
	if err != nil {
		return "", err
	}
	if err := v.Refresh(ctx); err != nil {
		return msg.Message, err
	}
	return msg.Message, nil
}

func (v *EmployeesView) Render(w io.Writer) {
	switch v.List.Status() {
	case ListIdle, ListLoading:
		fmt.Fprintln(w, "Loading employees...")
		return
	case ListFailed:
		fmt.Fprintf(w, "Failed to load employees: %s\n", v.List.Err())
		return
	}

	items := v.List.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No employees found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NO\tNAME\tDESIGNATION\tDEPARTMENT\tGROSS\tNET")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
			e.EmployeeNo, e.Name, e.Designation, e.Department,
			payroll.GrossSalary(e.SalaryComponents), payroll.NetSalary(e.SalaryComponents))
	}
	tw.Flush()
}
