package coupon

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/souq-labs/backend-souq/internal/common"
)

// Handler exposes administrative coupon endpoints. The reference table is
// read-only; preview is a dry run and records nothing.
type Handler struct {
	Store *Store
}

// Preview evaluates a coupon code against a hypothetical subtotal.
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "coupon store not configured", nil)
		return
	}
	var payload struct {
		Code     string `json:"code"`
		Subtotal int64  `json:"subtotal"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	payload.Code = strings.TrimSpace(payload.Code)
	if payload.Code == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "code is required", nil)
		return
	}
	if payload.Subtotal < 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "subtotal must not be negative", nil)
		return
	}
	discount, err := h.Store.Apply(payload.Code, payload.Subtotal)
	if err != nil {
		WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"code":     payload.Code,
			"subtotal": payload.Subtotal,
			"discount": discount,
		},
	})
}

// WriteError maps coupon engine errors onto the canonical error response.
func WriteError(w http.ResponseWriter, err error) {
	var minErr *MinPurchaseError
	switch {
	case errors.As(err, &minErr):
		common.JSONError(w, http.StatusUnprocessableEntity, "MIN_PURCHASE_NOT_MET", minErr.Error(), map[string]any{
			"code":     minErr.Code,
			"required": minErr.Required,
		})
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "COUPON_NOT_FOUND", "coupon not found", nil)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
