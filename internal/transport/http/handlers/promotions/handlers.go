package promotions

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
	r.Route("/promotions", func(r chi.Router) {
		r.Get("/", h.HandleList)
		r.Post("/", h.HandleCreate)
		r.Get("/{employeeID}", h.HandleListByEmployee)
	})
}

type createRequest struct {
	EmployeeID          string                   `json:"employee_id" validate:"required"`
	NewDesignation      string                   `json:"new_designation" validate:"required"`
	NewSalaryComponents payroll.SalaryComponents `json:"new_salary_components"`
	PromotionDate       string                   `json:"promotion_date" validate:"required"`
}

const promotionColumns = `id, employee_id, employee_no, employee_name, old_designation, new_designation,
    old_salary, new_salary, new_basic, new_house_rent_allowance, new_transport_allowance,
    new_fixed_allowance, new_home_collection_visit, new_professional_tax, promotion_date, created_at`

func scanPromotion(row pgx.Row) (payroll.Promotion, error) {
	var p payroll.Promotion
	err := row.Scan(&p.ID, &p.EmployeeID, &p.EmployeeNo, &p.EmployeeName,
		&p.OldDesignation, &p.NewDesignation, &p.OldSalary, &p.NewSalary,
		&p.NewSalaryComponents.Basic, &p.NewSalaryComponents.HouseRentAllowance,
		&p.NewSalaryComponents.TransportAllowance, &p.NewSalaryComponents.FixedAllowance,
		&p.NewSalaryComponents.HomeCollectionVisit, &p.NewSalaryComponents.ProfessionalTax,
		&p.PromotionDate, &p.CreatedAt)
	return p, err
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
	if _, err := shared.ParseDate(payload.PromotionDate); err != nil {
		api.Fail(w, http.StatusBadRequest, "Invalid promotion date")
		return
	}

	emp, err := employees.FetchActive(r, h.DB, payload.EmployeeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			api.Fail(w, http.StatusNotFound, "Employee not found")
			return
		}
		log.Printf("fetch employee: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create promotion")
		return
	}

	p := payroll.Promotion{
		ID:                  uuid.NewString(),
		EmployeeID:          emp.ID,
		EmployeeNo:          emp.EmployeeNo,
		EmployeeName:        emp.Name,
		OldDesignation:      emp.Designation,
		NewDesignation:      payload.NewDesignation,
		OldSalary:           payroll.GrossSalary(emp.SalaryComponents),
		NewSalary:           payroll.GrossSalary(payload.NewSalaryComponents),
		NewSalaryComponents: payload.NewSalaryComponents,
		PromotionDate:       payload.PromotionDate,
		CreatedAt:           time.Now().UTC(),
	}

	tx, err := h.DB.Begin(r.Context())
	if err != nil {
		log.Printf("begin promotion tx: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create promotion")
		return
	}
	defer tx.Rollback(r.Context())

	_, err = tx.Exec(r.Context(), `
    INSERT INTO promotions (id, employee_id, employee_no, employee_name, old_designation,
      new_designation, old_salary, new_salary, new_basic, new_house_rent_allowance,
      new_transport_allowance, new_fixed_allowance, new_home_collection_visit,
      new_professional_tax, promotion_date, created_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
  `, p.ID, p.EmployeeID, p.EmployeeNo, p.EmployeeName, p.OldDesignation, p.NewDesignation,
		p.OldSalary, p.NewSalary, p.NewSalaryComponents.Basic, p.NewSalaryComponents.HouseRentAllowance,
		p.NewSalaryComponents.TransportAllowance, p.NewSalaryComponents.FixedAllowance,
		p.NewSalaryComponents.HomeCollectionVisit, p.NewSalaryComponents.ProfessionalTax,
		p.PromotionDate, p.CreatedAt)
	if err != nil {
		log.Printf("insert promotion: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create promotion")
		return
	}

	_, err = tx.Exec(r.Context(), `
    UPDATE employees SET designation = $1, basic = $2, house_rent_allowance = $3,
      transport_allowance = $4, fixed_allowance = $5, home_collection_visit = $6,
      professional_tax = $7, updated_at = $8
    WHERE id = $9
  `, p.NewDesignation, p.NewSalaryComponents.Basic, p.NewSalaryComponents.HouseRentAllowance,
		p.NewSalaryComponents.TransportAllowance, p.NewSalaryComponents.FixedAllowance,
		p.NewSalaryComponents.HomeCollectionVisit, p.NewSalaryComponents.ProfessionalTax,
		time.Now().UTC(), p.EmployeeID)
	if err != nil {
		log.Printf("apply promotion: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create promotion")
		return
	}

	if err := tx.Commit(r.Context()); err != nil {
		log.Printf("commit promotion: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to create promotion")
		return
	}

	api.Success(w, p)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	rows, err := h.DB.Query(r.Context(),
		"SELECT "+promotionColumns+" FROM promotions ORDER BY promotion_date DESC, created_at DESC")
	if err != nil {
		log.Printf("list promotions: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to list promotions")
		return
	}
	defer rows.Close()

	list := []payroll.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			log.Printf("scan promotion: %v", err)
			api.Fail(w, http.StatusInternalServerError, "Failed to list promotions")
			return
		}
		list = append(list, p)
	}

	api.Success(w, list)
}

func (h *Handler) HandleListByEmployee(w http.ResponseWriter, r *http.Request) {
	employeeID := chi.URLParam(r, "employeeID")

	rows, err := h.DB.Query(r.Context(),
		"SELECT "+promotionColumns+" FROM promotions WHERE employee_id = $1 ORDER BY promotion_date DESC, created_at DESC",
		employeeID)
	if err != nil {
		log.Printf("list employee promotions: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to list promotions")
		return
	}
	defer rows.Close()

	list := []payroll.Promotion{}
	for rows.Next() {
		p, err := scanPromotion(rows)
		if err != nil {
			log.Printf("scan promotion: %v", err)
			api.Fail(w, http.StatusInternalServerError, "Failed to list promotions")
			return
		}
		list = append(list, p)
	}

	api.Success(w, list)
}
