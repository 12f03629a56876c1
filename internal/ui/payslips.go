package ui

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"payhub/internal/client"
	"payhub/internal/domain/payroll"
)

type PayslipDraft struct {
	EmployeeID string
	Month      string
	Year       string
	PaidDays   string
	LOPDays    string
}

func (d PayslipDraft) input() client.PayslipInput {
	return client.PayslipInput{
		EmployeeID: d.EmployeeID,
		Month:      ParseCount(d.Month),
		Year:       ParseCount(d.Year),
		PaidDays:   ParseCount(d.PaidDays),
		LOPDays:    ParseCount(d.LOPDays),
	}
}

type PayslipsView struct {
	Client *client.Client
	List   ListState[payroll.Payslip]
	Form   FormState
}

func (v *PayslipsView) Refresh(ctx context.Context) error {
	return v.List.Reload(ctx, v.Client.ListPayslips)
}

func (v *PayslipsView) Generate(ctx context.Context, draft PayslipDraft) error {
	if _, err := v.Client.GeneratePayslip(ctx, draft.input()); err != nil {
		v.Form.SetError(err.Error())
		return err
	}
	v.Form.Close()
	return v.Refresh(ctx)
}

// EditDays adjusts the paid and LOP day counts of an existing payslip with a
// single update request; the server recomputes the amounts in place.
func (v *PayslipsView) EditDays(ctx context.Context, id, paidDays, lopDays string) error {
	days := client.PayslipDays{PaidDays: ParseCount(paidDays), LOPDays: ParseCount(lopDays)}
	if _, err := v.Client.UpdatePayslip(ctx, id, days); err != nil {
		v.Form.SetError(err.Error())
		return err
	}
	v.Form.Close()
	return v.Refresh(ctx)
}

func (v *PayslipsView) Delete(ctx context.Context, id string) (string, error) {
	msg, err := v.Client.DeletePayslip(ctx, id)
	if err != nil {
		return "", err
	}
	if err := v.Refresh(ctx); err != nil {
		return msg.Message, err
	}
	return msg.Message, nil
}

// Download saves the payslip document and leaves the list untouched.
func (v *PayslipsView) Download(ctx context.Context, id, dir string) (string, error) {
	return v.Client.DownloadPayslip(ctx, id, dir)
}

func (v *PayslipsView) Render(w io.Writer) {
	switch v.List.Status() {
	case ListIdle, ListLoading:
		fmt.Fprintln(w, "Loading payslips...")
		return
	case ListFailed:
		fmt.Fprintf(w, "Failed to load payslips: %s\n", v.List.Err())
		return
	}

	items := v.List.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No payslips found")
		return
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tEMPLOYEE\tPERIOD\tPAID\tLOP\tNET")
	for _, p := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s %d\t%d\t%d\t%.2f\n",
			p.ID, p.EmployeeName, payroll.MonthName(p.Month), p.Year,
			p.PaidDays, p.LOPDays, p.NetPayable)
	}
	tw.Flush()
}
