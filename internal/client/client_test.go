package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestClientAttachesBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok123"))
	if _, err := c.ListEmployees(context.Background()); err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestClientOmitsHeaderWhenSignedOut(t *testing.T) {
	var gotAuth string
	var hasAuth bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, hasAuth = r.Header["Authorization"]
		json.NewEncoder(w).Encode([]any{})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken(""))
	if _, err := c.ListEmployees(context.Background()); err != nil {
		t.Fatalf("ListEmployees: %v", err)
	}
	if hasAuth {
		t.Fatalf("unexpected Authorization header %q", gotAuth)
	}
}

func TestClientExtractsDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Employee number already exists"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	_, err := c.CreateEmployee(context.Background(), EmployeeInput{})
	if err == nil {
		t.Fatal("expected error")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.Detail != "Employee number already exists" {
		t.Fatalf("Detail = %q", apiErr.Detail)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("StatusCode = %d", apiErr.StatusCode)
	}
}

func TestClientFallbackDetail(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"html body", http.StatusBadGateway, "<html>bad gateway</html>"},
		{"empty body", http.StatusInternalServerError, ""},
		{"json without detail", http.StatusNotFound, `{"error": "nope"}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			c := New(srv.URL, staticToken("tok"))
			_, err := c.ListPayslips(context.Background())
			var apiErr *APIError
			if !errors.As(err, &apiErr) {
				t.Fatalf("error type %T, want *APIError", err)
			}
			want := fmt.Sprintf("Request failed with status %d", tc.status)
			if apiErr.Detail != want {
				t.Fatalf("Detail = %q, want %q", apiErr.Detail, want)
			}
			if apiErr.StatusCode != tc.status {
				t.Fatalf("StatusCode = %d, want %d", apiErr.StatusCode, tc.status)
			}
		})
	}
}

func TestCredentialsUpdateOmitsBlankFields(t *testing.T) {
	var got map[string]json.RawMessage
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode payload: %v", err)
		}
		json.NewEncoder(w).Encode(Message{Message: "ok"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	_, err := c.UpdateCredentials(context.Background(), CredentialsUpdate{
		CurrentPassword: "admin123",
		NewPassword:     "newpass",
	})
	if err != nil {
		t.Fatalf("UpdateCredentials: %v", err)
	}

	if _, ok := got["current_password"]; !ok {
		t.Fatal("current_password missing from payload")
	}
	if _, ok := got["new_password"]; !ok {
		t.Fatal("new_password missing from payload")
	}
	if _, ok := got["new_username"]; ok {
		t.Fatal("blank new_username should be omitted from payload")
	}
}

func TestDownloadPayslipUsesServerFileName(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="payslip_EMP001_January_2025.pdf"`)
		w.Write([]byte("%PDF-1.4 test"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	c := New(srv.URL, staticToken("tok"))
	path, err := c.DownloadPayslip(context.Background(), "abc", dir)
	if err != nil {
		t.Fatalf("DownloadPayslip: %v", err)
	}
	if gotPath != "/api/payslips/download/abc" {
		t.Fatalf("request path = %q", gotPath)
	}
	if filepath.Base(path) != "payslip_EMP001_January_2025.pdf" {
		t.Fatalf("saved name = %q", filepath.Base(path))
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read saved file: %v", err)
	}
	if string(data) != "%PDF-1.4 test" {
		t.Fatalf("saved content = %q", data)
	}
}

func TestDownloadPayslipErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Payslip not found"})
	}))
	defer srv.Close()

	c := New(srv.URL, staticToken("tok"))
	_, err := c.DownloadPayslip(context.Background(), "missing", t.TempDir())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type %T, want *APIError", err)
	}
	if apiErr.Detail != "Payslip not found" {
		t.Fatalf("Detail = %q", apiErr.Detail)
	}
}
