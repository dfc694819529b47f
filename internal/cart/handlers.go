package cart

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/souq-labs/backend-souq/internal/common"
	"github.com/souq-labs/backend-souq/internal/coupon"
	"github.com/souq-labs/backend-souq/internal/obs"
)

// Handler wires cart services to HTTP.
type Handler struct {
	Svc      *Service
	Currency string
}

// Create creates or returns a guest cart identifier.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	var payload struct {
		AnonID string `json:"anonId"`
	}
	_ = json.NewDecoder(r.Body).Decode(&payload)
	anonID := strings.TrimSpace(payload.AnonID)
	if anonID == "" {
		anonID = uuid.NewString()
	}
	snap, err := h.Svc.EnsureCart(anonID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{
		"data": map[string]any{
			"cartId": snap.ID,
			"anonId": snap.AnonID,
			"coupon": nullableString(snap.CouponCode),
		},
	})
}

// Get returns cart contents with a subtotal/discount preview. Shipping and
// payment fees require a destination and are quoted separately.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	snap, err := h.Svc.Snapshot(cartID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	h.writeCart(w, http.StatusOK, snap)
}

// AddItem adds or increments a cart line item.
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	var payload struct {
		ProductID string `json:"productId"`
		Qty       int    `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if strings.TrimSpace(payload.ProductID) == "" {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "productId is required", nil)
		return
	}
	if payload.Qty <= 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "qty must be positive", nil)
		return
	}
	snap, err := h.Svc.AddItem(cartID, payload.ProductID, payload.Qty)
	if err != nil {
		obs.ObserveCartMutation("add_item", "error")
		h.writeError(w, err)
		return
	}
	obs.ObserveCartMutation("add_item", "ok")
	h.writeCart(w, http.StatusOK, snap)
}

// UpdateItem updates the quantity for a cart line item.
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	var payload struct {
		Qty int `json:"qty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	if payload.Qty <= 0 {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "qty must be positive", nil)
		return
	}
	snap, err := h.Svc.UpdateQty(cartID, lineID, payload.Qty)
	if err != nil {
		obs.ObserveCartMutation("update_item", "error")
		h.writeError(w, err)
		return
	}
	obs.ObserveCartMutation("update_item", "ok")
	h.writeCart(w, http.StatusOK, snap)
}

// RemoveItem deletes a cart line item.
func (h *Handler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	lineID, err := uuid.Parse(chi.URLParam(r, "itemId"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid item id", nil)
		return
	}
	snap, err := h.Svc.RemoveItem(cartID, lineID)
	if err != nil {
		obs.ObserveCartMutation("remove_item", "error")
		h.writeError(w, err)
		return
	}
	obs.ObserveCartMutation("remove_item", "ok")
	h.writeCart(w, http.StatusOK, snap)
}

// ApplyCoupon applies a coupon code to the cart.
func (h *Handler) ApplyCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	var payload struct {
		Code string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	discount, snap, err := h.Svc.ApplyCoupon(cartID, payload.Code)
	if err != nil {
		obs.ObserveCouponApply("rejected")
		h.writeError(w, err)
		return
	}
	obs.ObserveCouponApply("ok")
	common.JSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{
			"coupon":   snap.CouponCode,
			"discount": discount,
		},
	})
}

// RemoveCoupon removes the applied coupon from the cart.
func (h *Handler) RemoveCoupon(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "cart service not configured", nil)
		return
	}
	cartID, ok := h.cartID(w, r)
	if !ok {
		return
	}
	if _, err := h.Svc.RemoveCoupon(cartID); err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": map[string]any{"coupon": nil}})
}

func (h *Handler) cartID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) writeCart(w http.ResponseWriter, status int, snap Snapshot) {
	subtotal := snap.Subtotal()
	discount := h.Svc.Discount(snap)
	common.JSON(w, status, map[string]any{
		"data": map[string]any{
			"id":     snap.ID,
			"anonId": snap.AnonID,
			"coupon": nullableString(snap.CouponCode),
			"items":  snap.Lines,
			"pricing": map[string]any{
				"subtotal": subtotal,
				"discount": discount,
			},
			"currency": h.Currency,
		},
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
	case errors.Is(err, ErrInvalidInput):
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
	case errors.Is(err, ErrNotFound):
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, ErrInsufficientStock):
		common.JSONError(w, http.StatusUnprocessableEntity, "OUT_OF_STOCK", err.Error(), nil)
	case errors.Is(err, coupon.ErrNotFound), errors.Is(err, coupon.ErrMinPurchaseNotMet):
		coupon.WriteError(w, err)
	default:
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}

func nullableString(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
