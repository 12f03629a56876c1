package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"payhub/internal/domain/payroll"
)

// TokenSource supplies the bearer token attached to every request. An empty
// token sends the request unauthenticated.
type TokenSource interface {
	Token() string
}

// APIError carries the server's detail message for a non-2xx response.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	return e.Detail
}

type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// WithHTTPClient swaps the underlying transport, mainly for tests.
func (c *Client) WithHTTPClient(h *http.Client) *Client {
	c.http = h
	return c
}

type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type CredentialsUpdate struct {
	CurrentPassword string `json:"current_password"`
	NewUsername     string `json:"new_username,omitempty"`
	NewPassword     string `json:"new_password,omitempty"`
}

type EmployeeInput struct {
	EmployeeNo       string                   `json:"employee_no"`
	Name             string                   `json:"name"`
	Designation      string                   `json:"designation"`
	DateOfJoining    string                   `json:"date_of_joining"`
	WorkLocation     string                   `json:"work_location"`
	Department       string                   `json:"department"`
	BankAccountNo    string                   `json:"bank_account_no"`
	SalaryComponents payroll.SalaryComponents `json:"salary_components"`
}

type PromotionInput struct {
	EmployeeID          string                   `json:"employee_id"`
	NewDesignation      string                   `json:"new_designation"`
	NewSalaryComponents payroll.SalaryComponents `json:"new_salary_components"`
	PromotionDate       string                   `json:"promotion_date"`
}

type PayslipInput struct {
	EmployeeID string `json:"employee_id"`
	Month      int    `json:"month"`
	Year       int    `json:"year"`
	PaidDays   int    `json:"paid_days"`
	LOPDays    int    `json:"lop_days"`
}

type PayslipDays struct {
	PaidDays int `json:"paid_days"`
	LOPDays  int `json:"lop_days"`
}

type Message struct {
	Message string `json:"message"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Detail != "" {
		apiErr.Detail = body.Detail
	} else {
		apiErr.Detail = fmt.Sprintf("Request failed with status %d", resp.StatusCode)
	}
	return apiErr
}

func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var out LoginResult
	err := c.do(ctx, http.MethodPost, "/api/auth/login",
		map[string]string{"username": username, "password": password}, &out)
	return out, err
}

func (c *Client) UpdateCredentials(ctx context.Context, update CredentialsUpdate) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodPut, "/api/admin/credentials", update, &out)
	return out, err
}

func (c *Client) ListEmployees(ctx context.Context) ([]payroll.Employee, error) {
	var out []payroll.Employee
	err := c.do(ctx, http.MethodGet, "/api/employees", nil, &out)
	return out, err
}

func (c *Client) GetEmployee(ctx context.Context, id string) (payroll.Employee, error) {
	var out payroll.Employee
	err := c.do(ctx, http.MethodGet, "/api/employees/"+id, nil, &out)
	return out, err
}

func (c *Client) CreateEmployee(ctx context.Context, input EmployeeInput) (payroll.Employee, error) {
	var out payroll.Employee
	err := c.do(ctx, http.MethodPost, "/api/employees", input, &out)
	return out, err
}

func (c *Client) UpdateEmployee(ctx context.Context, id string, input EmployeeInput) (payroll.Employee, error) {
	var out payroll.Employee
	err := c.do(ctx, http.MethodPut, "/api/employees/"+id, input, &out)
	return out, err
}

func (c *Client) TerminateEmployee(ctx context.Context, id string) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodDelete, "/api/employees/"+id, nil, &out)
	return out, err
}

func (c *Client) ListPromotions(ctx context.Context) ([]payroll.Promotion, error) {
	var out []payroll.Promotion
	err := c.do(ctx, http.MethodGet, "/api/promotions", nil, &out)
	return out, err
}

func (c *Client) ListEmployeePromotions(ctx context.Context, employeeID string) ([]payroll.Promotion, error) {
	var out []payroll.Promotion
	err := c.do(ctx, http.MethodGet, "/api/promotions/"+employeeID, nil, &out)
	return out, err
}

func (c *Client) CreatePromotion(ctx context.Context, input PromotionInput) (payroll.Promotion, error) {
	var out payroll.Promotion
	err := c.do(ctx, http.MethodPost, "/api/promotions", input, &out)
	return out, err
}

func (c *Client) ListPayslips(ctx context.Context) ([]payroll.Payslip, error) {
	var out []payroll.Payslip
	err := c.do(ctx, http.MethodGet, "/api/payslips", nil, &out)
	return out, err
}

func (c *Client) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	var out payroll.Payslip
	err := c.do(ctx, http.MethodGet, "/api/payslips/"+id, nil, &out)
	return out, err
}

func (c *Client) GeneratePayslip(ctx context.Context, input PayslipInput) (payroll.Payslip, error) {
	var out payroll.Payslip
	err := c.do(ctx, http.MethodPost, "/api/payslips/generate", input, &out)
	return out, err
}

func (c *Client) UpdatePayslip(ctx context.Context, id string, days PayslipDays) (payroll.Payslip, error) {
	var out payroll.Payslip
	err := c.do(ctx, http.MethodPut, "/api/payslips/"+id, days, &out)
	return out, err
}

func (c *Client) DeletePayslip(ctx context.Context, id string) (Message, error) {
	var out Message
	err := c.do(ctx, http.MethodDelete, "/api/payslips/"+id, nil, &out)
	return out, err
}

func (c *Client) DashboardStats(ctx context.Context) (payroll.DashboardStats, error) {
	var out payroll.DashboardStats
	err := c.do(ctx, http.MethodGet, "/api/dashboard/stats", nil, &out)
	return out, err
}

// DownloadPayslip saves the payslip document into dir using the server's
// suggested file name and returns the written path.
func (c *Client) DownloadPayslip(ctx context.Context, id, dir string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/payslips/download/"+id, nil)
	if err != nil {
		return "", err
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeError(resp)
	}

	name := attachmentName(resp.Header.Get("Content-Disposition"))
	if name == "" {
		name = "payslip_" + id + ".pdf"
	}
	path := filepath.Join(dir, name)

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read payslip: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("save payslip: %w", err)
	}
	return path, nil
}

func attachmentName(disposition string) string {
	if disposition == "" {
		return ""
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return ""
	}
	return filepath.Base(params["filename"])
}
