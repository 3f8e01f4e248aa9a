// Package web carries the small JSON plumbing shared by every HTTP handler:
// response encoding and the mapping from domain errors to status codes.
package web

import (
	"encoding/json"
	"errors"
	"net/http"

	cartdomain "github.com/stockops/stockflow/internal/cart/domain"
	catalogdomain "github.com/stockops/stockflow/internal/catalog/domain"
	notifdomain "github.com/stockops/stockflow/internal/notification/domain"
	orderdomain "github.com/stockops/stockflow/internal/order/domain"
	repldomain "github.com/stockops/stockflow/internal/replenishment/domain"
	stockdomain "github.com/stockops/stockflow/internal/stock/domain"
)

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error translates a domain error into its HTTP shape.
func Error(w http.ResponseWriter, err error) {
	JSON(w, statusFor(err), map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, catalogdomain.ErrNotFound),
		errors.Is(err, cartdomain.ErrNotFound),
		errors.Is(err, orderdomain.ErrNotFound),
		errors.Is(err, repldomain.ErrNotFound),
		errors.Is(err, notifdomain.ErrNotFound):
		return http.StatusNotFound

	case errors.Is(err, cartdomain.ErrInvalidQuantity),
		errors.Is(err, repldomain.ErrInvalidQuantity),
		errors.Is(err, repldomain.ErrInvalidDecision),
		errors.Is(err, catalogdomain.ErrInvalidProduct),
		errors.Is(err, orderdomain.ErrInvalidStatus),
		errors.Is(err, orderdomain.ErrInvalidPaymentStatus):
		return http.StatusUnprocessableEntity

	case errors.Is(err, orderdomain.ErrEmptyCart),
		errors.Is(err, stockdomain.ErrInsufficientStock):
		return http.StatusBadRequest

	case errors.Is(err, repldomain.ErrAlreadyDecided),
		errors.Is(err, repldomain.ErrNotYetAdminApproved):
		return http.StatusConflict

	case errors.Is(err, orderdomain.ErrOrderNumberCollision):
		return http.StatusServiceUnavailable

	default:
		return http.StatusInternalServerError
	}
}
