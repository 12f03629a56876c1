package ui

import (
	"bytes"
	"strings"
	"testing"

	"payhub/internal/domain/payroll"
)

func renderEmployees(items []payroll.Employee, load bool) string {
	v := &EmployeesView{}
	if load {
		gen := v.List.Begin()
		v.List.Complete(gen, items)
	}
	var buf bytes.Buffer
	v.Render(&buf)
	return buf.String()
}

func TestEmployeesRenderRowsInFetchOrder(t *testing.T) {
	items := []payroll.Employee{
		{EmployeeNo: "EMP001", Name: "Asha Nair", Designation: "Analyst"},
		{EmployeeNo: "EMP002", Name: "Ravi Menon", Designation: "Clerk"},
		{EmployeeNo: "EMP003", Name: "Divya Pillai", Designation: "Manager"},
	}
	out := renderEmployees(items, true)

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != len(items)+1 {
		t.Fatalf("rendered %d lines, want header plus %d rows:\n%s", len(lines), len(items), out)
	}
	for i, e := range items {
		if !strings.Contains(lines[i+1], e.Name) {
			t.Fatalf("row %d = %q, want employee %q", i, lines[i+1], e.Name)
		}
	}
}

func TestEmployeesRenderEmptyState(t *testing.T) {
	out := renderEmployees([]payroll.Employee{}, true)
	if !strings.Contains(out, "No employees found") {
		t.Fatalf("empty state output = %q", out)
	}
}

func TestEmployeesRenderLoadingPlaceholder(t *testing.T) {
	v := &EmployeesView{}
	v.List.Begin()
	var buf bytes.Buffer
	v.Render(&buf)
	if !strings.Contains(buf.String(), "Loading employees") {
		t.Fatalf("loading output = %q", buf.String())
	}
}

func TestEmployeesRenderFailedState(t *testing.T) {
	v := &EmployeesView{}
	gen := v.List.Begin()
	v.List.Fail(gen, "connection refused")
	var buf bytes.Buffer
	v.Render(&buf)
	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("failed output = %q", buf.String())
	}
}

func TestPromotionsRenderStates(t *testing.T) {
	v := &PromotionsView{}

	var buf bytes.Buffer
	v.Render(&buf)
	if !strings.Contains(buf.String(), "Loading promotions") {
		t.Fatalf("idle output = %q", buf.String())
	}

	gen := v.List.Begin()
	v.List.Complete(gen, []payroll.Promotion{})
	buf.Reset()
	v.Render(&buf)
	if !strings.Contains(buf.String(), "No promotions found") {
		t.Fatalf("empty output = %q", buf.String())
	}

	items := []payroll.Promotion{
		{EmployeeName: "Asha Nair", OldDesignation: "Analyst", NewDesignation: "Senior Analyst", PromotionDate: "2025-04-01"},
		{EmployeeName: "Ravi Menon", OldDesignation: "Clerk", NewDesignation: "Officer", PromotionDate: "2025-03-01"},
	}
	gen = v.List.Begin()
	v.List.Complete(gen, items)
	buf.Reset()
	v.Render(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(items)+1 {
		t.Fatalf("rendered %d lines, want header plus %d rows:\n%s", len(lines), len(items), buf.String())
	}
	if !strings.Contains(lines[1], "Asha Nair") || !strings.Contains(lines[2], "Ravi Menon") {
		t.Fatalf("rows out of fetch order:\n%s", buf.String())
	}
}

func TestPayslipsRenderStates(t *testing.T) {
	v := &PayslipsView{}

	var buf bytes.Buffer
	v.Render(&buf)
	if !strings.Contains(buf.String(), "Loading payslips") {
		t.Fatalf("idle output = %q", buf.String())
	}

	gen := v.List.Begin()
	v.List.Complete(gen, []payroll.Payslip{})
	buf.Reset()
	v.Render(&buf)
	if !strings.Contains(buf.String(), "No payslips found") {
		t.Fatalf("empty output = %q", buf.String())
	}

	items := []payroll.Payslip{
		{ID: "p2", EmployeeName: "Asha Nair", Month: 4, Year: 2025, NetPayable: 43800},
		{ID: "p1", EmployeeName: "Asha Nair", Month: 3, Year: 2025, NetPayable: 36800},
	}
	gen = v.List.Begin()
	v.List.Complete(gen, items)
	buf.Reset()
	v.Render(&buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != len(items)+1 {
		t.Fatalf("rendered %d lines, want header plus %d rows:\n%s", len(lines), len(items), buf.String())
	}
	if !strings.Contains(lines[1], "April 2025") || !strings.Contains(lines[2], "March 2025") {
		t.Fatalf("rows out of fetch order:\n%s", buf.String())
	}
}

func TestDashboardRenderStates(t *testing.T) {
	v := &DashboardView{}

	var buf bytes.Buffer
	v.Render(&buf)
	if !strings.Contains(buf.String(), "Loading dashboard") {
		t.Fatalf("idle output = %q", buf.String())
	}

	gen := v.List.Begin()
	v.List.Complete(gen, []payroll.DashboardStats{{
		TotalActiveEmployees:   4,
		TotalMonthlyPayroll:    152000,
		TotalPayslipsGenerated: 9,
	}})
	buf.Reset()
	v.Render(&buf)
	out := buf.String()
	for _, want := range []string{"4", "152000.00", "9"} {
		if !strings.Contains(out, want) {
			t.Fatalf("stats output missing %q:\n%s", want, out)
		}
	}
}
