package dashboard

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"payhub/internal/domain/payroll"
	"payhub/internal/transport/http/api"
)

type Handler struct {
	DB *pgxpool.Pool
}

func NewHandler(db *pgxpool.Pool) *Handler {
	return &Handler{DB: db}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/dashboard/stats", h.HandleStats)
}

func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	var stats payroll.DashboardStats

	err := h.DB.QueryRow(r.Context(), `
    SELECT COUNT(1),
      COALESCE(SUM(basic + house_rent_allowance + transport_allowance + fixed_allowance
        + home_collection_visit - professional_tax), 0)
    FROM employees WHERE is_active
  `).Scan(&stats.TotalActiveEmployees, &stats.TotalMonthlyPayroll)
	if err != nil {
		log.Printf("dashboard employee stats: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	if err := h.DB.QueryRow(r.Context(), "SELECT COUNT(1) FROM payslips").Scan(&stats.TotalPayslipsGenerated); err != nil {
		log.Printf("dashboard payslip stats: %v", err)
		api.Fail(w, http.StatusInternalServerError, "Failed to load dashboard stats")
		return
	}

	api.Success(w, stats)
}
