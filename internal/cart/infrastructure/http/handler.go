package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockops/stockflow/internal/cart/application"
	"github.com/stockops/stockflow/internal/cart/domain"
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
	r.Use(identity.RequireAuth)

	r.Get("/", h.get)
	r.Post("/add", h.addItem)
	r.Put("/items/{id}", h.updateItem)
	r.Delete("/items/{id}", h.removeItem)
	r.Delete("/clear", h.clear)
	return r
}

type cartItemResp struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

type cartResp struct {
	ID          uuid.UUID       `json:"id"`
	Items       []cartItemResp  `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

func toCartResp(c domain.Cart) cartResp {
	items := make([]cartItemResp, 0, len(c.Items))
	for _, it := range c.Items {
		items = append(items, cartItemResp{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			UnitPrice:   it.UnitPrice,
			Quantity:    it.Quantity,
		})
	}
	return cartResp{ID: c.ID, Items: items, TotalAmount: c.Total()}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	cart, err := h.service.Get(r.Context(), user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"cart": toCartResp(cart)})
}

type addItemReq struct {
	ProductID uuid.UUID `json:"product_id"`
	Quantity  int       `json:"quantity"`
}

func (h *Handler) addItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	var req addItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	cart, err := h.service.AddItem(r.Context(), user.ID, req.ProductID, req.Quantity)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"cart": toCartResp(cart)})
}

type updateItemReq struct {
	Quantity int `json:"quantity"`
}

func (h *Handler) updateItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	var req updateItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}
	cart, err := h.service.UpdateItem(r.Context(), user.ID, itemID, req.Quantity)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"cart": toCartResp(cart)})
}

func (h *Handler) removeItem(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	itemID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid item id", http.StatusBadRequest)
		return
	}
	if err := h.service.RemoveItem(r.Context(), user.ID, itemID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "item removed"})
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	if err := h.service.Clear(r.Context(), user.ID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "cart cleared"})
}
