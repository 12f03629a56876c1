package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"payhub/internal/client"
	"payhub/internal/ui"
)

// console is an interactive admin shell over the payroll API. Navigation goes
// through the router guard, so protected screens land on the login prompt
// until a session exists.
type console struct {
	store      *client.SessionStore
	router     *ui.Router
	login      *ui.LoginController
	settings   *ui.SettingsController
	employees  *ui.EmployeesView
	promotions *ui.PromotionsView
	payslips   *ui.PayslipsView
	dashboard  *ui.DashboardView
	in         *bufio.Scanner
	out        *os.File
}

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("load .env: %v", err)
	}

	baseURL := os.Getenv("PAYHUB_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	sessionPath := os.Getenv("PAYHUB_SESSION_FILE")
	if sessionPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			log.Fatalf("resolve home dir: %v", err)
		}
		sessionPath = filepath.Join(home, ".payhub", "session.json")
	}

	store, err := client.NewSessionStore(sessionPath)
	if err != nil {
		log.Fatalf("open session store: %v", err)
	}
	api := client.New(baseURL, store)

	c := &console{
		store:      store,
		router:     ui.NewRouter(store),
		login:      &ui.LoginController{Client: api, Session: store},
		settings:   &ui.SettingsController{Client: api},
		employees:  &ui.EmployeesView{Client: api},
		promotions: &ui.PromotionsView{Client: api},
		payslips:   &ui.PayslipsView{Client: api},
		dashboard:  &ui.DashboardView{Client: api},
		in:         bufio.NewScanner(os.Stdin),
		out:        os.Stdout,
	}

	c.run(context.Background())
}

func (c *console) run(ctx context.Context) {
	fmt.Fprintln(c.out, "payhub admin console. Type 'help' for commands.")
	for {
		fmt.Fprint(c.out, "> ")
		if !c.in.Scan() {
			return
		}
		line := strings.TrimSpace(c.in.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		cmd, args := fields[0], fields[1:]

		switch cmd {
		case "quit", "exit":
			return
		case "help":
			c.printHelp()
		case "login":
			c.show(ctx, ui.RouteLogin, args)
		case "logout":
			if err := c.login.SignOut(); err != nil {
				fmt.Fprintf(c.out, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(c.out, "Signed out")
		case "dashboard":
			c.show(ctx, ui.RouteHome, args)
		case "employees":
			c.show(ctx, ui.RouteEmployees, args)
		case "promotions":
			c.show(ctx, ui.RoutePromotions, args)
		case "payslips":
			c.show(ctx, ui.RoutePayslips, args)
		case "settings":
			c.show(ctx, ui.RouteSettings, args)
		default:
			fmt.Fprintf(c.out, "Unknown command %q. Type 'help' for commands.\n", cmd)
		}
	}
}

// show routes a screen request through the guard and dispatches to whichever
// screen the guard settled on.
func (c *console) show(ctx context.Context, requested ui.Route, args []string) {
	switch c.router.Resolve(requested) {
	case ui.RouteLogin:
		c.showLogin(ctx)
	case ui.RouteHome:
		c.showDashboard(ctx)
	case ui.RouteEmployees:
		c.showEmployees(ctx, args)
	case ui.RoutePromotions:
		c.showPromotions(ctx, args)
	case ui.RoutePayslips:
		c.showPayslips(ctx, args)
	case ui.RouteSettings:
		c.showSettings(ctx)
	}
}

func (c *console) printHelp() {
	fmt.Fprintln(c.out, `Commands:
  login                      sign in
  logout                     sign out
  dashboard                  payroll summary
  employees [add|edit|term]  employee directory
  promotions [add|history]   promotion records
  payslips [generate|edit|delete|download]
  settings                   change admin credentials
  quit`)
}

func (c *console) prompt(label string) string {
	fmt.Fprintf(c.out, "%s: ", label)
	if !c.in.Scan() {
		return ""
	}
	return strings.TrimSpace(c.in.Text())
}

func (c *console) showLogin(ctx context.Context) {
	if c.store.Authenticated() {
		c.showDashboard(ctx)
		return
	}
	username := c.prompt("Username")
	password := c.prompt("Password")
	if err := c.login.SignIn(ctx, username, password); err != nil {
		fmt.Fprintf(c.out, "Login failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Signed in as %s\n", username)
}

func (c *console) showDashboard(ctx context.Context) {
	c.dashboard.Refresh(ctx)
	c.dashboard.Render(c.out)
}

func (c *console) showEmployees(ctx context.Context, args []string) {
	if len(args) == 0 {
		c.employees.Refresh(ctx)
		c.employees.Render(c.out)
		return
	}

	switch args[0] {
	case "add":
		c.employees.Form.OpenNew()
		draft := c.employeeDraft(ui.EmployeeDraft{})
		if err := c.employees.SubmitCreate(ctx, draft); err != nil {
			fmt.Fprintf(c.out, "Error: %s\n", c.employees.Form.Err())
			return
		}
		fmt.Fprintln(c.out, "Employee created")
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: employees edit <id>")
			return
		}
		c.employees.Refresh(ctx)
		existing, ok := c.employees.Find(args[1])
		if !ok {
			fmt.Fprintln(c.out, "Employee not found")
			return
		}
		c.employees.Form.OpenEdit(existing.ID)
		draft := c.employeeDraft(ui.DraftFromEmployee(existing))
		if err := c.employees.SubmitEdit(ctx, existing.ID, draft); err != nil {
			fmt.Fprintf(c.out, "Error: %s\n", c.employees.Form.Err())
			return
		}
		fmt.Fprintln(c.out, "Employee updated")
	case "term":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: employees term <id>")
			return
		}
		msg, err := c.employees.Terminate(ctx, args[1])
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(c.out, msg)
	default:
		fmt.Fprintln(c.out, "Usage: employees [add|edit <id>|term <id>]")
	}
}

// employeeDraft walks the dialog fields, showing prefilled values as defaults.
func (c *console) employeeDraft(prefill ui.EmployeeDraft) ui.EmployeeDraft {
	d := prefill
	d.EmployeeNo = c.promptDefault("Employee no", prefill.EmployeeNo)
	d.Name = c.promptDefault("Name", prefill.Name)
	d.Designation = c.promptDefault("Designation", prefill.Designation)
	d.DateOfJoining = c.promptDefault("Date of joining (YYYY-MM-DD)", prefill.DateOfJoining)
	d.WorkLocation = c.promptDefault("Work location", prefill.WorkLocation)
	d.Department = c.promptDefault("Department", prefill.Department)
	d.BankAccountNo = c.promptDefault("Bank account no", prefill.BankAccountNo)
	d.Basic = c.promptDefault("Basic", prefill.Basic)
	d.HouseRentAllowance = c.promptDefault("House rent allowance", prefill.HouseRentAllowance)
	d.TransportAllowance = c.promptDefault("Transport allowance", prefill.TransportAllowance)
	d.FixedAllowance = c.promptDefault("Fixed allowance", prefill.FixedAllowance)
	d.HomeCollectionVisit = c.promptDefault("Home collection visit", prefill.HomeCollectionVisit)
	d.ProfessionalTax = c.promptDefault("Professional tax", prefill.ProfessionalTax)
	return d
}

func (c *console) promptDefault(label, fallback string) string {
	if fallback != "" {
		label = fmt.Sprintf("%s [%s]", label, fallback)
	}
	v := c.prompt(label)
	if v == "" {
		return fallback
	}
	return v
}

func (c *console) showPromotions(ctx context.Context, args []string) {
	if len(args) == 0 {
		c.promotions.Refresh(ctx)
		c.promotions.Render(c.out)
		return
	}

	switch args[0] {
	case "add":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: promotions add <employee-id>")
			return
		}
		c.employees.Refresh(ctx)
		emp, ok := c.employees.Find(args[1])
		if !ok {
			fmt.Fprintln(c.out, "Employee not found")
			return
		}
		c.promotions.Form.OpenNew()
		prefill := ui.DraftFromCurrent(emp)
		d := prefill
		d.NewDesignation = c.promptDefault("New designation", prefill.NewDesignation)
		d.PromotionDate = c.promptDefault("Promotion date (YYYY-MM-DD)", prefill.PromotionDate)
		d.Basic = c.promptDefault("Basic", prefill.Basic)
		d.HouseRentAllowance = c.promptDefault("House rent allowance", prefill.HouseRentAllowance)
		d.TransportAllowance = c.promptDefault("Transport allowance", prefill.TransportAllowance)
		d.FixedAllowance = c.promptDefault("Fixed allowance", prefill.FixedAllowance)
		d.HomeCollectionVisit = c.promptDefault("Home collection visit", prefill.HomeCollectionVisit)
		d.ProfessionalTax = c.promptDefault("Professional tax", prefill.ProfessionalTax)
		if err := c.promotions.Submit(ctx, d); err != nil {
			fmt.Fprintf(c.out, "Error: %s\n", c.promotions.Form.Err())
			return
		}
		fmt.Fprintln(c.out, "Promotion recorded")
	case "history":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: promotions history <employee-id>")
			return
		}
		history, err := c.promotions.History(ctx, args[1])
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		if len(history) == 0 {
			fmt.Fprintln(c.out, "No promotions found")
			return
		}
		for _, p := range history {
			fmt.Fprintf(c.out, "%s  %s -> %s  %.2f -> %.2f\n",
				p.PromotionDate, p.OldDesignation, p.NewDesignation, p.OldSalary, p.NewSalary)
		}
	default:
		fmt.Fprintln(c.out, "Usage: promotions [add <employee-id>|history <employee-id>]")
	}
}

func (c *console) showPayslips(ctx context.Context, args []string) {
	if len(args) == 0 {
		c.payslips.Refresh(ctx)
		c.payslips.Render(c.out)
		return
	}

	switch args[0] {
	case "generate":
		c.payslips.Form.OpenNew()
		d := ui.PayslipDraft{
			EmployeeID: c.prompt("Employee id"),
			Month:      c.prompt("Month (1-12)"),
			Year:       c.prompt("Year"),
			PaidDays:   c.prompt("Paid days"),
			LOPDays:    c.prompt("LOP days"),
		}
		if err := c.payslips.Generate(ctx, d); err != nil {
			fmt.Fprintf(c.out, "Error: %s\n", c.payslips.Form.Err())
			return
		}
		fmt.Fprintln(c.out, "Payslip generated")
	case "edit":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: payslips edit <id>")
			return
		}
		c.payslips.Form.OpenEdit(args[1])
		paid := c.prompt("Paid days")
		lop := c.prompt("LOP days")
		if err := c.payslips.EditDays(ctx, args[1], paid, lop); err != nil {
			fmt.Fprintf(c.out, "Error: %s\n", c.payslips.Form.Err())
			return
		}
		fmt.Fprintln(c.out, "Payslip updated")
	case "delete":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: payslips delete <id>")
			return
		}
		msg, err := c.payslips.Delete(ctx, args[1])
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintln(c.out, msg)
	case "download":
		if len(args) < 2 {
			fmt.Fprintln(c.out, "Usage: payslips download <id> [dir]")
			return
		}
		dir := "."
		if len(args) > 2 {
			dir = args[2]
		}
		path, err := c.payslips.Download(ctx, args[1], dir)
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			return
		}
		fmt.Fprintf(c.out, "Saved %s\n", path)
	default:
		fmt.Fprintln(c.out, "Usage: payslips [generate|edit <id>|delete <id>|download <id> [dir]]")
	}
}

func (c *console) showSettings(ctx context.Context) {
	form := ui.SettingsForm{
		CurrentPassword: c.prompt("Current password"),
		NewUsername:     c.prompt("New username (blank to keep)"),
		NewPassword:     c.prompt("New password (blank to keep)"),
	}
	if form.NewPassword != "" {
		form.ConfirmPassword = c.prompt("Confirm new password")
	}
	msg, err := c.settings.Submit(ctx, form)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, msg)
}
