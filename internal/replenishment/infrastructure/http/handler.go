package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/replenishment/application"
	"github.com/stockops/stockflow/internal/replenishment/domain"
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
	// Replenishment is an internal workflow; customers never touch it.
	r.Use(identity.RequireRole(identity.RoleAdmin, identity.RoleWarehouseManager, identity.RoleStaff))

	r.Get("/", h.list)
	r.Post("/", h.submit)
	r.Get("/{id}", h.get)

	r.With(identity.RequireRole(identity.RoleAdmin)).
		Put("/{id}/admin-approval", h.adminApprove)
	r.With(identity.RequireRole(identity.RoleWarehouseManager)).
		Put("/{id}/warehouse-approval", h.warehouseApprove)
	return r
}

type requestResp struct {
	ID                uuid.UUID             `json:"id"`
	ProductID         uuid.UUID             `json:"product_id"`
	ProductName       string                `json:"product_name"`
	Quantity          int                   `json:"quantity"`
	RequestedBy       uuid.UUID             `json:"requested_by"`
	AdminApproval     domain.ApprovalStatus `json:"admin_approval"`
	WarehouseApproval domain.ApprovalStatus `json:"warehouse_approval"`
	Notes             string                `json:"notes,omitempty"`
	CreatedAt         time.Time             `json:"created_at"`
	UpdatedAt         time.Time             `json:"updated_at"`
}

func toRequestResp(r domain.RequestOrder) requestResp {
	return requestResp{
		ID:                r.ID,
		ProductID:         r.ProductID,
		ProductName:       r.ProductName,
		Quantity:          r.Quantity,
		RequestedBy:       r.RequestedBy,
		AdminApproval:     r.AdminApproval,
		WarehouseApproval: r.WarehouseApproval,
		Notes:             r.Notes,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	var f domain.ListFilter
	if v := r.URL.Query().Get("admin_status"); v != "" {
		s := domain.ApprovalStatus(v)
		f.AdminApproval = &s
	}
	if v := r.URL.Query().Get("warehouse_status"); v != "" {
		s := domain.ApprovalStatus(v)
		f.WarehouseApproval = &s
	}

	requests, err := h.service.List(r.Context(), f)
	if err != nil {
		web.Error(w, err)
		return
	}
	out := make([]requestResp, 0, len(requests))
	for _, req := range requests {
		out = append(out, toRequestResp(req))
	}
	web.JSON(w, http.StatusOK, map[string]any{"request_orders": out})
}

type submitReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Notes     string    `json:"notes"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	var req submitReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	ro, err := h.service.Submit(r.Context(), req.ProductID, req.Quantity, user.ID, req.Notes)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, map[string]any{"request_order": toRequestResp(ro)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	ro, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"request_order": toRequestResp(ro)})
}

type decisionReq struct {
	Status domain.ApprovalStatus `json:"status"`
}

func (h *Handler) adminApprove(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	var req decisionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	ro, err := h.service.AdminApprove(r.Context(), id, req.Status, user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"request_order": toRequestResp(ro)})
}

func (h *Handler) warehouseApprove(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid request id", http.StatusBadRequest)
		return
	}
	var req decisionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	ro, err := h.service.WarehouseApprove(r.Context(), id, req.Status, user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"request_order": toRequestResp(ro)})
}
