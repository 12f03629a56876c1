package ui

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"payhub/internal/client"
	"payhub/internal/domain/payroll"
)

type PromotionDraft struct {
	EmployeeID          string
	NewDesignation      string
	PromotionDate       string
	Basic               string
	HouseRentAllowance  string
	TransportAllowance  string
	FixedAllowance      string
	HomeCollectionVisit string
	ProfessionalTax     string
}

func (d PromotionDraft) input() client.PromotionInput {
	return client.PromotionInput{
		EmployeeID:     d.EmployeeID,
		NewDesignation: d.NewDesignation,
		PromotionDate:  d.PromotionDate,
		NewSalaryComponents: payroll.SalaryComponents{
			Basic:               ParseAmount(d.Basic),
			HouseRentAllowance:  ParseAmount(d.HouseRentAllowance),
			TransportAllowance:  ParseAmount(d.TransportAllowance),
			FixedAllowance:      ParseAmount(d.FixedAllowance),
			HomeCollectionVisit: ParseAmount(d.HomeCollectionVisit),
			ProfessionalTax:     ParseAmount(d.ProfessionalTax),
		},
	}
}

// DraftFromCurrent prefills the promotion dialog with the employee's present
// designation and salary, so the admin edits from the current values.
func DraftFromCurrent(e payroll.Employee) PromotionDraft {
	return PromotionDraft{
		EmployeeID:          e.ID,
		NewDesignation:      e.Designation,
		Basic:               formatAmount(e.SalaryComponents.Basic),
		HouseRentAllowance:  formatAmount(e.SalaryComponents.HouseRentAllowance),
		TransportAllowance:  formatAmount(e.SalaryComponents.TransportAllowance),
		FixedAllowance:      formatAmount(e.SalaryComponents.FixedAllowance),
		HomeCollectionVisit: formatAmount(e.SalaryComponents.HomeCollectionVisit),
		ProfessionalTax:     formatAmount(e.SalaryComponents.ProfessionalTax),
	}
}

type PromotionsView struct {
	Client *client.Client
	List   ListState[payroll.Promotion]
	Form   FormState
}

func (v *PromotionsView) Refresh(ctx context.Context) error {
	return v.List.Reload(ctx, v.Client.ListPromotions)
}

func (v *PromotionsView) Submit(ctx context.Context, draft PromotionDraft) error {
	if _, err := v.Client.CreatePromotion(ctx, draft.input()); err != nil {
		v.Form.SetError(err.Error())
		return err
	}
	v.Form.Close()
	return v.Refresh(ctx)
}

func (v *PromotionsView) History(ctx context.Context, employeeID string) ([]payroll.Promotion, error) {
	return v.Client.ListEmployeePromotions(ctx, employeeID)
}

func (v *PromotionsView) Render(w io.Writer) {
	switch v.List.Status() {
	case ListIdle, ListLoading:
		fmt.Fprintln(w, "Loading promotions...")
		return
	case ListFailed:
		fmt.Fprintf(w, "Failed to load promotions: %s\n", v.List.Err())
		return
	}

	items := v.List.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No promotions found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tEMPLOYEE\tFROM\tTO\tOLD SALARY\tNEW SALARY")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%.2f\n",
			p.PromotionDate, p.EmployeeName, p.OldDesignation, p.NewDesignation,
			p.OldSalary, p.NewSalary)
	}
	tw.Flush()
}
