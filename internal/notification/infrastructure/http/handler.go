package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/stockops/stockflow/internal/identity"
	"github.com/stockops/stockflow/internal/notification/application"
	"github.com/stockops/stockflow/internal/notification/domain"
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

	r.Get("/", h.list)
	r.Get("/unread", h.unread)
	r.Put("/{id}/read", h.markRead)
	r.Put("/read-all", h.markAllRead)
	r.Delete("/{id}", h.delete)
	return r
}

type notificationResp struct {
	ID        uuid.UUID       `json:"id"`
	Type      string          `json:"type"`
	Payload   json.RawMessage `json:"payload"`
	ReadAt    *time.Time      `json:"read_at,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

func toNotificationResps(ns []domain.Notification) []notificationResp {
	out := make([]notificationResp, 0, len(ns))
	for _, n := range ns {
		out = append(out, notificationResp{
			ID:        n.ID,
			Type:      n.Type,
			Payload:   n.Payload,
			ReadAt:    n.ReadAt,
			CreatedAt: n.CreatedAt,
		})
	}
	return out
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	ns, err := h.service.List(r.Context(), user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"notifications": toNotificationResps(ns)})
}

func (h *Handler) unread(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	ns, err := h.service.Unread(r.Context(), user.ID)
	if err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]any{"notifications": toNotificationResps(ns)})
}

func (h *Handler) markRead(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	if err := h.service.MarkRead(r.Context(), id, user.ID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "notification read"})
}

func (h *Handler) markAllRead(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	if err := h.service.MarkAllRead(r.Context(), user.ID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "all notifications read"})
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromContext(r.Context())
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid notification id", http.StatusBadRequest)
		return
	}
	if err := h.service.Delete(r.Context(), id, user.ID); err != nil {
		web.Error(w, err)
		return
	}
	web.JSON(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}
