package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockops/stockflow/internal/catalog/application"
	"github.com/stockops/stockflow/internal/catalog/domain"
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

	// Product browsing is public; management is admin-only.
	r.Get("/", h.list)
	r.With(identity.RequireRole(identity.RoleAdmin, identity.RoleWarehouseManager)).
		Get("/low-stock", h.lowStock)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(identity.RequireRole(identity.RoleAdmin))
		r.Post("/", h.create)
		r.Put("/{id}", h.update)
		r.Delete("/{id}", h.delete)
	})
	return r
}

type productReq struct {
	Name              *string          `json:"name"`
	Description       *string          `json:"description"`
	Price             *decimal.Decimal `json:"price"`
	Quantity          *int             `json:"quantity"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	Image             *string          `json:"image"`
	Active            *bool            `json:"active"`
}

type productResp struct {
	ID                uuid.UUID       `json:"id"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	Price             decimal.Decimal `json:"price"`
	Quantity          int             `json:"quantity"`
	LowStockThreshold int             `json:"low_stock_threshold"`
	Image             string          `json:"image"`
	Active            bool            `json:"active"`
	LowStock          bool            `json:"low_stock"`
}

func toProductResp(p domain.Product) productResp {
	return productResp{
		ID:                p.ID,
		Name:              p.Name,
		Description:       p.Description,
		Price:             p.Price,
		Quantity:          p.Quantity,
		LowStockThreshold: p.LowStockThreshold,
		Image:             p.Image,
		Active:            p.Active,
		LowStock:          p.LowStock(),
	}
}

func toProductResps(ps []domain.Product) []productResp {
	out := make([]productResp, 0, len(ps))
	for _, p := range ps {
		out = append(out, toProductResp(p))
	}
	return out
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.List(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"products": toProductResps(products)})
}

func (h *Handler) lowStock(w http.ResponseWriter, r *http.Request) {
	products, err := h.service.ListLowStock(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"low_stock_products": toProductResps(products)})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	p, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"product": toProductResp(p)})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	in := application.NewProduct{Active: true}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Description != nil {
		in.Description = *req.Description
	}
	if req.Price != nil {
		in.Price = *req.Price
	}
	if req.Quantity != nil {
		in.Quantity = *req.Quantity
	}
	if req.LowStockThreshold != nil {
		in.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Image != nil {
		in.Image = *req.Image
	}
	if req.Active != nil {
		in.Active = *req.Active
	}

	p, err := h.service.Create(r.Context(), in)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, map[string]any{"product": toProductResp(p)})
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	var req productReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	p, err := h.service.Update(r.Context(), id, application.ProductUpdate{
		Name:              req.Name,
		Description:       req.Description,
		Price:             req.Price,
		Quantity:          req.Quantity,
		LowStockThreshold: req.LowStockThreshold,
		Image:             req.Image,
		Active:            req.Active,
	})
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"product": toProductResp(p)})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "product deleted"})
}
