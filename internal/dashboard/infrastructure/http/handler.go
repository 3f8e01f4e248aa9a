package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/stockops/stockflow/internal/dashboard/application"
	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{log: log, service: service}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(identity.RequireRole(identity.RoleAdmin)).Get("/admin", h.admin)
	r.With(identity.RequireRole(identity.RoleWarehouseManager)).Get("/warehouse", h.warehouse)
	r.With(identity.RequireRole(identity.RoleStaff)).Get("/staff", h.staff)
	r.With(identity.RequireRole(identity.RoleCustomer)).Get("/customer", h.customer)
	return r
}

func (h *Handler) admin(w http.ResponseWriter, r *http.Request) {
	var dr application.DateRange
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		dr.From = t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}
		dr.To = t.Add(24*time.Hour - time.Nanosecond)
	}

	d, err := h.service.Admin(r.Context(), dr)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"dashboard": d})
}

func (h *Handler) warehouse(w http.ResponseWriter, r *http.Request) {
	d, err := h.service.Warehouse(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"dashboard": d})
}

func (h *Handler) staff(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	d, err := h.service.Staff(r.Context(), user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"dashboard": d})
}

func (h *Handler) customer(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	d, err := h.service.Customer(r.Context(), user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"dashboard": d})
}
