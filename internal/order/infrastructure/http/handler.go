package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/order/application"
	"github.com/stockops/stockflow/internal/order/domain"
	"github.com/stockops/stockflow/internal/web"
)

type Handler struct {
	log     *slog.Logger
	service *application.Service
	tracer  trace.Tracer
}

func NewHandler(log *slog.Logger, service *application.Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
		tracer:  otel.Tracer("order-http"),
	}
}

func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(identity.RequireAuth)

	r.Get("/", h.list)
	r.Post("/", h.checkout)
	r.Get("/payment-methods", h.paymentMethods)
	r.Get("/{id}", h.get)

	r.Group(func(r chi.Router) {
		r.Use(identity.RequireRole(identity.RoleStaff))
		r.Put("/{id}/status", h.updateStatus)
		r.Put("/{id}/payment", h.updatePaymentStatus)
	})
	return r
}

type orderItemResp struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

type orderResp struct {
	ID            uuid.UUID            `json:"id"`
	OrderNumber   string               `json:"order_number"`
	UserID        uuid.UUID            `json:"user_id"`
	StaffID       *uuid.UUID           `json:"staff_id,omitempty"`
	TotalAmount   decimal.Decimal      `json:"total_amount"`
	OrderStatus   domain.Status        `json:"order_status"`
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
	Notes         string               `json:"notes,omitempty"`
	Items         []orderItemResp      `json:"items,omitempty"`
	CreatedAt     time.Time            `json:"created_at"`
}

func toOrderResp(o domain.Order) orderResp {
	items := make([]orderItemResp, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemResp{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return orderResp{
		ID:            o.ID,
		OrderNumber:   o.OrderNumber,
		UserID:        o.UserID,
		StaffID:       o.StaffID,
		TotalAmount:   o.TotalAmount,
		OrderStatus:   o.Status,
		PaymentStatus: o.PaymentStatus,
		Notes:         o.Notes,
		Items:         items,
		CreatedAt:     o.CreatedAt,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())

	f := domain.ListFilter{OrderNumber: r.URL.Query().Get("order_number")}
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid start_date", http.StatusBadRequest)
			return
		}
		f.From = t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.Parse("2006-01-02", v)
		if err != nil {
			http.Error(w, "invalid end_date", http.StatusBadRequest)
			return
		}
		f.To = t.Add(24*time.Hour - time.Nanosecond)
	}
	// Customers only ever see their own orders.
	if user.Role == identity.RoleCustomer {
		f.UserID = user.ID
	}

	orders, err := h.service.List(r.Context(), f)
	if err != nil {
		web.Error(w, err)
		return
	}
	out := make([]orderResp, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrderResp(o))
	}
	web.JSON(w, http.StatusOK, map[string]any{"orders": out})
}

type checkoutReq struct {
	Notes string `json:"notes"`
}

func (h *Handler) checkout(w http.ResponseWriter, r *http.Request) {
	ctx, span := h.tracer.Start(r.Context(), "Checkout")
	defer span.End()

	user, _ := identity.FromContext(ctx)

	var req checkoutReq
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid body", http.StatusBadRequest)
			return
		}
	}

	o, err := h.service.Checkout(ctx, user.ID, req.Notes)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusCreated, map[string]any{"order": toOrderResp(o)})
}

type paymentMethodResp struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func (h *Handler) paymentMethods(w http.ResponseWriter, r *http.Request) {
	methods, err := h.service.PaymentMethods(r.Context())
	if err != nil {
		web.Error(w, err)
		return
	}
	out := make([]paymentMethodResp, 0, len(methods))
	for _, m := range methods {
		out = append(out, paymentMethodResp{ID: m.ID, Name: m.Name})
	}
	web.JSON(w, http.StatusOK, map[string]any{"payment_methods": out})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, err := h.service.Get(r.Context(), id)
	if err != nil {
		web.Error(w, err)
		return
	}
	if user.Role == identity.RoleCustomer && o.UserID != user.ID {
		http.Error(w, "forbidden", http.StatusForbidden)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"order": toOrderResp(o)})
}

type updateStatusReq struct {
	OrderStatus domain.Status `json:"order_status"`
}

func (h *Handler) updateStatus(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req updateStatusReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	o, err := h.service.UpdateStatus(r.Context(), id, req.OrderStatus, user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"order": toOrderResp(o)})
}

type updatePaymentReq struct {
	PaymentStatus domain.PaymentStatus `json:"payment_status"`
}

func (h *Handler) updatePaymentStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid order id", http.StatusBadRequest)
		return
	}
	var req updatePaymentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid body", http.StatusBadRequest)
		return
	}

	o, err := h.service.UpdatePaymentStatus(r.Context(), id, req.PaymentStatus)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"order": toOrderResp(o)})
}
