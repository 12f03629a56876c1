package payslips

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payhub/internal/domain/payroll"
	"payhub/internal/transport/http/api"
	"payhub/internal/transport/http/handlers/employees"
	"payhub/internal/transport/http/shared"
)

type Handler struct {
	DB *pgxpool.Pool
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/payslips", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/generate", h.HandleGenerate)
		r.Get("/download/{id}", h.HandleDownload)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

type generateRequest struct {
	EmployeeID string `json:"employee_id" validate:"required"`
	Month      int    `json:"month" validate:"required,min=1,max=12"`
	Year       int    `json:"year" validate:"required,min=2000"`
	PaidDays   int    `json:"paid_days" validate:"min=0"`
	LOPDays    int    `json:"lop_days" validate:"min=0"`
}

type updateRequest struct {
	PaidDays int `json:"paid_days" validate:"min=0"`
	LOPDays  int `json:"lop_days" validate:"min=0"`
}

const payslipColumns = `id, employee_id, employee_name, employee_no, designation, month, year,
    paid_days, lop_days, earnings, deductions, gross_earnings, total_deductions,
    net_payable, generated_date`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var (
		p             payroll.Payslip
		earningsJSON  []byte
		deductionJSON []byte
	)
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeName, &p.EmployeeNo, &p.Designation,
		&p.Month, &p.Year, &p.PaidDays, &p.LOPDays, &earningsJSON, &deductionJSON,
		&p.GrossEarnings, &p.TotalDeductions, &p.NetPayable, &p.GeneratedDate)
	if err != nil {
		return p, err
	}
	if err := json.Unmarshal(earningsJSON, &p.Earnings); err != nil {
		return p, err
	}
	if err := json.Unmarshal(deductionJSON, &p.Deductions); err != nil {
		return p, err
	}
	return p, nil
}

func (h *Handler) fetch(r *http.Request, id string) (payroll.Payslip, error) {
	row := h.DB.QueryRow(r.Context(), "SELECT "+payslipColumns+" FROM payslips WHERE id = $1", id)
	return scanPayslip(row)
}

func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	var payload generateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if detail := shared.ValidationDetail(payload); detail != "" {
		api.Fail(w, http.StatusBadRequest, detail)
		return
	}

	emp, err := employees.FetchActive(r, h.DB, payload.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("fetch employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to generate payslip")
		return
	}

	var count int
	if err := h.DB.QueryRow(r.Context(),
		"SELECT COUNT(1) FROM payslips WHERE employee_id = $1 AND month = $2 AND year = $3",
		emp.ID, payload.Month, payload.Year).Scan(&count); err != nil {
		log.Printf("check payslip period: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to generate payslip")
		return
	}
	if count > 0 {
		api.Fail(w, http.StatusBadRequest, "Payslip already exists for this month")
		return
	}

	earnings, deductions, gross, totalDeductions, net := payroll.ComputePayslip(emp.SalaryComponents)
	p := payroll.Payslip{
		ID:              uuid.NewString(),
		EmployeeID:      emp.ID,
		EmployeeName:    emp.Name,
		EmployeeNo:      emp.EmployeeNo,
		Designation:     emp.Designation,
		Month:           payload.Month,
		Year:            payload.Year,
		PaidDays:        payload.PaidDays,
		LOPDays:         payload.LOPDays,
		Earnings:        earnings,
		Deductions:      deductions,
		GrossEarnings:   gross,
		TotalDeductions: totalDeductions,
		NetPayable:      net,
		GeneratedDate:   time.Now().UTC(),
	}

	earningsJSON, _ := json.Marshal(p.Earnings)
	deductionJSON, _ := json.Marshal(p.Deductions)
	_, err = h.DB.Exec(r.Context(), `
    INSERT INTO payslips (id, employee_id, employee_name, employee_no, designation, month, year,
      paid_days, lop_days, earnings, deductions, gross_earnings, total_deductions,
      net_payable, generated_date)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
  `, p.ID, p.EmployeeID, p.EmployeeName, p.EmployeeNo, p.Designation, p.Month, p.Year,
		p.PaidDays, p.LOPDays, earningsJSON, deductionJSON, p.GrossEarnings, p.TotalDeductions,
		p.NetPayable, p.GeneratedDate)
	if err != nil {
		log.Printf("insert payslip: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to generate payslip")
		return
	}

	api.Success(w, p)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(),
		"SELECT "+payslipColumns+" FROM payslips ORDER BY generated_date DESC")
	if err != nil {
		log.Printf("list payslips: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to list payslips")
		return
	}
	defer rows.Close()

	list := []payroll.Payslip{}
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			log.Printf("scan payslip: %v", err)
			api.Fail(w, http.StatusInternalServerError, "Failed to list payslips")
			return
		}
		list = append(list, p)
	}

	api.Success(w, list)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	p, err := h.fetch(r, chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "Payslip not found")
		return
	}
	api.Success(w, p)
}

// HandleUpdate recomputes a payslip in place from the employee's current
// salary components, with the supplied paid and LOP day counts. Repeating the
// same update is harmless.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if detail := shared.ValidationDetail(payload); detail != "" {
		api.Fail(w, http.StatusBadRequest, detail)
		return
	}

	p, err := h.fetch(r, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "Payslip not found")
			return
		}
		log.Printf("fetch payslip: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to update payslip")
		return
	}

	emp, err := employees.FetchActive(r, h.DB, p.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("fetch employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to update payslip")
		return
	}

	earnings, deductions, gross, totalDeductions, net := payroll.ComputePayslip(emp.SalaryComponents)
	p.EmployeeName = emp.Name
	p.Designation = emp.Designation
	p.PaidDays = payload.PaidDays
	p.LOPDays = payload.LOPDays
	p.Earnings = earnings
	p.Deductions = deductions
	p.GrossEarnings = gross
	p.TotalDeductions = totalDeductions
	p.NetPayable = net

	earningsJSON, _ := json.Marshal(p.Earnings)
	deductionJSON, _ := json.Marshal(p.Deductions)
	_, err = h.DB.Exec(r.Context(), `
    UPDATE payslips SET employee_name = $1, designation = $2, paid_days = $3, lop_days = $4,
      earnings = $5, deductions = $6, gross_earnings = $7, total_deductions = $8, net_payable = $9
    WHERE id = $10
  `, p.EmployeeName, p.Designation, p.PaidDays, p.LOPDays, earningsJSON, deductionJSON,
		p.GrossEarnings, p.TotalDeductions, p.NetPayable, p.ID)
	if err != nil {
		log.Printf("update payslip: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to update payslip")
		return
	}

	api.Success(w, p)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tag, err := h.DB.Exec(r.Context(), "DELETE FROM payslips WHERE id = $1", id)
	if err != nil {
		log.Printf("delete payslip: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to delete payslip")
		return
	}
	if tag.RowsAffected() == 0 {
		api.Fail(w, http.StatusNotFound, "Payslip not found")
		return
	}

	api.Success(w, map[string]string{"message": "Payslip deleted successfully"})
}

func (h *Handler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	p, err := h.fetch(r, chi.URLParam(r, "id"))
	if err != nil {
		api.Fail(w, http.StatusNotFound, "Payslip not found")
		return
	}

	doc, err := payroll.RenderPayslipPDF(p)
	if err != nil {
		log.Printf("render payslip pdf: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to render payslip")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", payroll.PayslipFileName(p)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc); err != nil {
		log.Printf("write payslip pdf: %v", err)
	}
}
