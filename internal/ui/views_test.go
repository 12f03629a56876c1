package ui

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"payhub/internal/client"
	"payhub/internal/domain/payroll"
)

type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

// countingServer records how many times each method+path was hit and serves
// canned JSON responses.
type countingServer struct {
	mu        sync.Mutex
	counts    map[string]int
	responses map[string]func(w http.ResponseWriter, r *http.Request)
	srv       *httptest.Server
}

func newCountingServer(t *testing.T) *countingServer {
	t.Helper()
	cs := &countingServer{
		counts:    map[string]int{},
		responses: map[string]func(http.ResponseWriter, *http.Request){},
	}
	cs.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		cs.mu.Lock()
		cs.counts[key]++
		handler := cs.responses[key]
		cs.mu.Unlock()
		if handler == nil {
			t.Errorf("unexpected request %s", key)
			w.WriteHeader(http.StatusNotFound)
			return
		}
		handler(w, r)
	}))
	t.Cleanup(cs.srv.Close)
	return cs
}

func (cs *countingServer) on(key string, status int, body any) {
	cs.responses[key] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(body)
	}
}

func (cs *countingServer) count(key string) int {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.counts[key]
}

func (cs *countingServer) client() *client.Client {
	return client.New(cs.srv.URL, tokenFunc(func() string { return "tok" }))
}

func TestEmployeeCreateSuccessClosesDialogAndRefreshesOnce(t *testing.T) {
	cs := newCountingServer(t)
	cs.on("POST /api/employees", http.StatusOK, payroll.Employee{ID: "e1"})
	cs.on("GET /api/employees", http.StatusOK, []payroll.Employee{{ID: "e1", Name: "Asha"}})

	v := &EmployeesView{Client: cs.client()}
	v.Form.OpenNew()

	err := v.SubmitCreate(context.Background(), EmployeeDraft{
		EmployeeNo: "EMP001", Name: "Asha", Designation: "Analyst",
		DateOfJoining: "2024-01-15", Basic: "25000",
	})
	if err != nil {
		t.Fatalf("SubmitCreate: %v", err)
	}

	if v.Form.Open() {
		t.Fatal("dialog should close on success")
	}
	if got := cs.count("POST /api/employees"); got != 1 {
		t.Fatalf("create calls = %d, want 1", got)
	}
	if got := cs.count("GET /api/employees"); got != 1 {
		t.Fatalf("refetch calls = %d, want 1", got)
	}
	if v.List.Status() != ListLoaded || len(v.List.Items()) != 1 {
		t.Fatalf("list status = %v items = %d", v.List.Status(), len(v.List.Items()))
	}
}

func TestEmployeeCreateFailureKeepsDialogOpen(t *testing.T) {
	cs := newCountingServer(t)
	cs.on("POST /api/employees", http.StatusBadRequest,
		map[string]string{"detail": "Employee number already exists"})

	v := &EmployeesView{Client: cs.client()}
	v.Form.OpenNew()

	err := v.SubmitCreate(context.Background(), EmployeeDraft{EmployeeNo: "EMP001"})
	if err == nil {
		t.Fatal("expected error")
	}

	if !v.Form.Open() {
		t.Fatal("dialog should stay open on failure")
	}
	if v.Form.Err() != "Employee number already exists" {
		t.Fatalf("form error = %q", v.Form.Err())
	}
	if got := cs.count("GET /api/employees"); got != 0 {
		t.Fatalf("refetch calls = %d, want 0 after failure", got)
	}
}

func TestEmployeeDraftCoercesAmounts(t *testing.T) {
	d := EmployeeDraft{Basic: "25000", HouseRentAllowance: "abc", TransportAllowance: ""}
	c := d.components()
	if c.Basic != 25000 {
		t.Fatalf("Basic = %v", c.Basic)
	}
	if c.HouseRentAllowance != 0 || c.TransportAllowance != 0 {
		t.Fatalf("invalid amounts should coerce to zero: %+v", c)
	}
}

func TestDraftFromEmployeePrefillsEditDialog(t *testing.T) {
	e := payroll.Employee{
		ID: "e1", EmployeeNo: "EMP001", Name: "Asha", Designation: "Analyst",
		DateOfJoining: "2024-01-15",
		SalaryComponents: payroll.SalaryComponents{Basic: 25000, ProfessionalTax: 200},
	}
	d := DraftFromEmployee(e)
	if d.Name != "Asha" || d.EmployeeNo != "EMP001" {
		t.Fatalf("draft = %+v", d)
	}
	if ParseAmount(d.Basic) != 25000 || ParseAmount(d.ProfessionalTax) != 200 {
		t.Fatalf("amounts not prefilled: basic=%q tax=%q", d.Basic, d.ProfessionalTax)
	}
}

func TestPromotionDraftPrefilledFromCurrent(t *testing.T) {
	e := payroll.Employee{
		ID: "e1", Designation: "Analyst",
		SalaryComponents: payroll.SalaryComponents{Basic: 30000, HouseRentAllowance: 12000},
	}
	d := DraftFromCurrent(e)
	if d.EmployeeID != "e1" || d.NewDesignation != "Analyst" {
		t.Fatalf("draft = %+v", d)
	}
	if ParseAmount(d.Basic) != 30000 || ParseAmount(d.HouseRentAllowance) != 12000 {
		t.Fatalf("salary not prefilled: %+v", d)
	}
}

func TestPayslipEditUsesSingleUpdateCall(t *testing.T) {
	cs := newCountingServer(t)
	cs.on("PUT /api/payslips/p1", http.StatusOK, payroll.Payslip{ID: "p1", PaidDays: 28, LOPDays: 2})
	cs.on("GET /api/payslips", http.StatusOK, []payroll.Payslip{{ID: "p1"}})

	v := &PayslipsView{Client: cs.client()}
	v.Form.OpenEdit("p1")

	if err := v.EditDays(context.Background(), "p1", "28", "2"); err != nil {
		t.Fatalf("EditDays: %v", err)
	}

	if got := cs.count("PUT /api/payslips/p1"); got != 1 {
		t.Fatalf("update calls = %d, want exactly 1", got)
	}
	if got := cs.count("DELETE /api/payslips/p1"); got != 0 {
		t.Fatalf("delete calls = %d, want 0", got)
	}
	if got := cs.count("POST /api/payslips/generate"); got != 0 {
		t.Fatalf("generate calls = %d, want 0", got)
	}
	if v.Form.Open() {
		t.Fatal("dialog should close on success")
	}
}

func TestPayslipDownloadLeavesListUntouched(t *testing.T) {
	cs := newCountingServer(t)
	cs.on("GET /api/payslips", http.StatusOK, []payroll.Payslip{{ID: "p1"}})
	cs.responses["GET /api/payslips/download/p1"] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="payslip_EMP001_March_2025.pdf"`)
		w.Write([]byte("%PDF-1.4"))
	}

	v := &PayslipsView{Client: cs.client()}
	if err := v.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	path, err := v.Download(context.Background(), "p1", t.TempDir())
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	if path == "" {
		t.Fatal("expected saved path")
	}

	if v.List.Status() != ListLoaded || len(v.List.Items()) != 1 {
		t.Fatalf("download must not mutate list state: %v", v.List.Status())
	}
	if got := cs.count("GET /api/payslips"); got != 1 {
		t.Fatalf("list calls = %d, want 1 (no refetch on download)", got)
	}
}

func TestSettingsPasswordMismatchSkipsNetwork(t *testing.T) {
	cs := newCountingServer(t)

	c := &SettingsController{Client: cs.client()}
	_, err := c.Submit(context.Background(), SettingsForm{
		CurrentPassword: "admin123",
		NewPassword:     "one",
		ConfirmPassword: "two",
	})
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if err.Error() != "New passwords do not match" {
		t.Fatalf("error = %q", err)
	}
	if got := cs.count("PUT /api/admin/credentials"); got != 0 {
		t.Fatalf("credential calls = %d, want 0", got)
	}
}

func TestSettingsBlankFieldsDropped(t *testing.T) {
	cs := newCountingServer(t)
	var payload map[string]json.RawMessage
	cs.responses["PUT /api/admin/credentials"] = func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&payload)
		json.NewEncoder(w).Encode(client.Message{Message: "Credentials updated successfully"})
	}

	c := &SettingsController{Client: cs.client()}
	msg, err := c.Submit(context.Background(), SettingsForm{
		CurrentPassword: "admin123",
		NewUsername:     "root",
	})
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if msg != "Credentials updated successfully" {
		t.Fatalf("message = %q", msg)
	}
	if _, ok := payload["new_password"]; ok {
		t.Fatal("blank new_password should be omitted")
	}
	if _, ok := payload["new_username"]; !ok {
		t.Fatal("new_username should be present")
	}
}

func TestLoginSavesSessionAndLogoutClears(t *testing.T) {
	cs := newCountingServer(t)
	cs.on("POST /api/auth/login", http.StatusOK, client.LoginResult{Token: "tok123", Username: "admin"})

	store := newTempStore(t)
	lc := &LoginController{Client: client.New(cs.srv.URL, store), Session: store}

	if err := lc.SignIn(context.Background(), "admin", "admin123"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if !store.Authenticated() {
		t.Fatal("session should exist after sign in")
	}
	if store.Current().Username != "admin" {
		t.Fatalf("username = %q", store.Current().Username)
	}

	if err := lc.SignOut(); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if store.Authenticated() {
		t.Fatal("session should be gone after sign out")
	}
}

func TestLoginRejectsBlankInputsWithoutNetwork(t *testing.T) {
	cs := newCountingServer(t)
	store := newTempStore(t)
	lc := &LoginController{Client: client.New(cs.srv.URL, store), Session: store}

	if err := lc.SignIn(context.Background(), "", "pw"); err == nil {
		t.Fatal("expected error for blank username")
	}
	if got := cs.count("POST /api/auth/login"); got != 0 {
		t.Fatalf("login calls = %d, want 0", got)
	}
}

func newTempStore(t *testing.T) *client.SessionStore {
	t.Helper()
	st, err := client.NewSessionStore(t.TempDir() + "/session.json")
	if err != nil {
		t.Fatalf("NewSessionStore: %v", err)
	}
	return st
}
