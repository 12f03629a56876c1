package ui

import (
	"context"
	"fmt"
	"io"

	"payhub/internal/client"
	"payhub/internal/domain/payroll"
)

type DashboardView struct {
	Client *client.Client
	List   ListState[payroll.DashboardStats]
}

func (v *DashboardView) Refresh(ctx context.Context) error {
	return v.List.Reload(ctx, func(ctx context.Context) ([]payroll.DashboardStats, error) {
		stats, err := v.Client.DashboardStats(ctx)
		if err != nil {
			return nil, err
		}
		return []payroll.DashboardStats{stats}, nil
	})
}

func (v *DashboardView) Render(w io.Writer) {
	switch v.List.Status() {
	case ListIdle, ListLoading:
		fmt.Fprintln(w, "Loading dashboard...")
		return
	case ListFailed:
		fmt.Fprintf(w, "Failed to load dashboard: %s\n", v.List.Err())
		return
	}

	items := v.List.Items()
	if len(items) == 0 {
		fmt.Fprintln(w, "No stats available")
		return
	}
	stats := items[0]
	fmt.Fprintf(w, "Active employees:   %d\n", stats.TotalActiveEmployees)
	fmt.Fprintf(w, "Monthly payroll:    %.2f\n", stats.TotalMonthlyPayroll)
	fmt.Fprintf(w, "Payslips generated: %d\n", stats.TotalPayslipsGenerated)
}
