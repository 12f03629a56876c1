package employees

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payhub/internal/domain/payroll"
	"payhub/internal/transport/http/api"
	"payhub/internal/transport/http/shared"
)

type Handler struct {
	DB *pgxpool.Pool
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/employees", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{id}", h.HandleGet)
		r.Put("/{id}", h.HandleUpdate)
		r.Delete("/{id}", h.HandleDelete)
	})
}

type createRequest struct {
	EmployeeNo       string                   `json:"employee_no" validate:"required"`
	Name             string                   `json:"name" validate:"required"`
	Designation      string                   `json:"designation" validate:"required"`
	DateOfJoining    string                   `json:"date_of_joining" validate:"required"`
	WorkLocation     string                   `json:"work_location"`
	Department       string                   `json:"department"`
	BankAccountNo    string                   `json:"bank_account_no"`
	SalaryComponents payroll.SalaryComponents `json:"salary_components"`
}

type updateRequest struct {
	Name             *string                   `json:"name"`
	Designation      *string                   `json:"designation"`
	DateOfJoining    *string                   `json:"date_of_joining"`
	WorkLocation     *string                   `json:"work_location"`
	Department       *string                   `json:"department"`
	BankAccountNo    *string                   `json:"bank_account_no"`
	SalaryComponents *payroll.SalaryComponents `json:"salary_components"`
}

const employeeColumns = `id, employee_no, name, designation, date_of_joining, work_location,
    department, bank_account_no, basic, house_rent_allowance, transport_allowance,
    fixed_allowance, home_collection_visit, professional_tax, is_active, created_at, updated_at`

func scanEmployee(row pgx.Row) (payroll.Employee, error) {
	var e payroll.Employee
	err := row.Scan(&e.ID, &e.EmployeeNo, &e.Name, &e.Designation, &e.DateOfJoining,
		&e.WorkLocation, &e.Department, &e.BankAccountNo,
		&e.SalaryComponents.Basic, &e.SalaryComponents.HouseRentAllowance,
		&e.SalaryComponents.TransportAllowance, &e.SalaryComponents.FixedAllowance,
		&e.SalaryComponents.HomeCollectionVisit, &e.SalaryComponents.ProfessionalTax,
		&e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	return e, err
}

// FetchActive returns the active employee with the given id, or pgx.ErrNoRows.
func FetchActive(r *http.Request, db *pgxpool.Pool, id string) (payroll.Employee, error) {
	row := db.QueryRow(r.Context(), "SELECT "+employeeColumns+" FROM employees WHERE id = $1 AND is_active", id)
	return scanEmployee(row)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(), "SELECT "+employeeColumns+" FROM employees WHERE is_active ORDER BY created_at")
	if err != nil {
		log.Printf("list employees: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to list employees")
		return
	}
	defer rows.Close()

	list := []payroll.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			log.Printf("scan employee: %v", err)
			api.Fail(w, http.StatusInternalServerError, "Failed to list employees")
			return
		}
		list = append(list, e)
	}

	api.Success(w, list)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	e, err := FetchActive(r, h.DB, id)
	if err != nil {
		api.Fail(w, http.StatusNotFound, "Employee not found")
		return
	}
	api.Success(w, e)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var payload createRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	if detail := shared.ValidationDetail(payload); detail != "" {
		api.Fail(w, http.StatusBadRequest, detail)
		return
	}
	if _, err := shared.ParseDate(payload.DateOfJoining); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid date of joining")
		return
	}

	var count int
	if err := h.DB.QueryRow(r.Context(),
		"SELECT COUNT(1) FROM employees WHERE employee_no = $1 AND is_active", payload.EmployeeNo).Scan(&count); err != nil {
		log.Printf("check employee no: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}
	if count > 0 {
		api.Fail(w, http.StatusBadRequest, "Employee number already exists")
		return
	}

	now := time.Now().UTC()
	e := payroll.Employee{
		ID:               uuid.NewString(),
		EmployeeNo:       payload.EmployeeNo,
		Name:             payload.Name,
		Designation:      payload.Designation,
		DateOfJoining:    payload.DateOfJoining,
		WorkLocation:     payload.WorkLocation,
		Department:       payload.Department,
		BankAccountNo:    payload.BankAccountNo,
		SalaryComponents: payload.SalaryComponents,
		IsActive:         true,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	_, err := h.DB.Exec(r.Context(), `
    INSERT INTO employees (id, employee_no, name, designation, date_of_joining, work_location,
      department, bank_account_no, basic, house_rent_allowance, transport_allowance,
      fixed_allowance, home_collection_visit, professional_tax, is_active, created_at, updated_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
  `, e.ID, e.EmployeeNo, e.Name, e.Designation, e.DateOfJoining, e.WorkLocation,
		e.Department, e.BankAccountNo, e.SalaryComponents.Basic, e.SalaryComponents.HouseRentAllowance,
		e.SalaryComponents.TransportAllowance, e.SalaryComponents.FixedAllowance,
		e.SalaryComponents.HomeCollectionVisit, e.SalaryComponents.ProfessionalTax,
		e.IsActive, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		log.Printf("insert employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create employee")
		return
	}

	api.Success(w, e)
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	e, err := FetchActive(r, h.DB, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("fetch employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	var payload updateRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if payload.Name != nil {
		e.Name = *payload.Name
	}
	if payload.Designation != nil {
		e.Designation = *payload.Designation
	}
	if payload.DateOfJoining != nil {
		if _, err := shared.ParseDate(*payload.DateOfJoining); err != nil {
			api.Fail(w, http.StatusBadRequest, "Invalid date of joining")
			return
		}
		e.DateOfJoining = *payload.DateOfJoining
	}
	if payload.WorkLocation != nil {
		e.WorkLocation = *payload.WorkLocation
	}
	if payload.Department != nil {
		e.Department = *payload.Department
	}
	if payload.BankAccountNo != nil {
		e.BankAccountNo = *payload.BankAccountNo
	}
	if payload.SalaryComponents != nil {
		e.SalaryComponents = *payload.SalaryComponents
	}
	e.UpdatedAt = time.Now().UTC()

	_, err = h.DB.Exec(r.Context(), `
    UPDATE employees SET name = $1, designation = $2, date_of_joining = $3, work_location = $4,
      department = $5, bank_account_no = $6, basic = $7, house_rent_allowance = $8,
      transport_allowance = $9, fixed_allowance = $10, home_collection_visit = $11,
      professional_tax = $12, updated_at = $13
    WHERE id = $14
  `, e.Name, e.Designation, e.DateOfJoining, e.WorkLocation, e.Department, e.BankAccountNo,
		e.SalaryComponents.Basic, e.SalaryComponents.HouseRentAllowance, e.SalaryComponents.TransportAllowance,
		e.SalaryComponents.FixedAllowance, e.SalaryComponents.HomeCollectionVisit,
		e.SalaryComponents.ProfessionalTax, e.UpdatedAt, e.ID)
	if err != nil {
		log.Printf("update employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to update employee")
		return
	}

	api.Success(w, e)
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	tag, err := h.DB.Exec(r.Context(),
		"UPDATE employees SET is_active = FALSE, updated_at = $1 WHERE id = $2 AND is_active",
		time.Now().UTC(), id)
	if err != nil {
		log.Printf("terminate employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to terminate employee")
		return
	}
	if tag.RowsAffected() == 0 {
		api.Fail(w, http.StatusNotFound, "Employee not found")
		return
	}

	api.Success(w, map[string]string{"message": "Employee terminated successfully"})
}
