package checkout

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/souq-labs/backend-souq/internal/cart"
	"github.com/souq-labs/backend-souq/internal/common"
	"github.com/souq-labs/backend-souq/internal/coupon"
	"github.com/souq-labs/backend-souq/internal/obs"
	"github.com/souq-labs/backend-souq/internal/pricing"
)

// Handler wires the quoting service to HTTP.
type Handler struct {
	Svc *Service
}

// QuoteCart handles POST /carts/{id}/quote.
func (h *Handler) QuoteCart(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	cartID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid cart id", nil)
		return
	}
	var payload struct {
		Destination   string `json:"destination"`
		PaymentMethod string `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	totals, err := h.Svc.QuoteCart(cartID, payload.Destination, payload.PaymentMethod)
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.ObserveQuote("cart", "ok")
	common.JSON(w, http.StatusOK, map[string]any{"data": totals})
}

type quoteItemPayload struct {
	Price          pricing.Money `json:"price"`
	Qty            int           `json:"qty"`
	WeightKg       float64       `json:"weightKg"`
	ShippingMethod string        `json:"shippingMethod"`
}

// QuoteItems handles POST /quotes for callers holding their own cart state.
func (h *Handler) QuoteItems(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	var payload struct {
		Items         []quoteItemPayload `json:"items"`
		Coupon        string             `json:"coupon"`
		Destination   string             `json:"destination"`
		PaymentMethod string             `json:"paymentMethod"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return
	}
	items := make([]pricing.Item, 0, len(payload.Items))
	for i, it := range payload.Items {
		if it.Qty <= 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "item qty must be positive", map[string]any{"index": i})
			return
		}
		if it.Price < 0 {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "item price must not be negative", map[string]any{"index": i})
			return
		}
		method, ok := pricing.ParseMethod(it.ShippingMethod)
		if !ok {
			common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "unknown shipping method", map[string]any{"index": i, "shippingMethod": it.ShippingMethod})
			return
		}
		items = append(items, pricing.Item{
			Qty:       it.Qty,
			UnitPrice: it.Price,
			WeightKg:  it.WeightKg,
			Method:    method,
		})
	}
	totals, err := h.Svc.QuoteItems(items, payload.Coupon, payload.Destination, payload.PaymentMethod)
	if err != nil {
		h.writeError(w, err)
		return
	}
	obs.ObserveQuote("items", "ok")
	obs.ObserveQuoteSize(len(items))
	if strings.TrimSpace(payload.Coupon) != "" {
		obs.ObserveCouponApply("ok")
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": totals})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, cart.ErrNotFound):
		obs.ObserveQuote("cart", "not_found")
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error(), nil)
	case errors.Is(err, coupon.ErrNotFound), errors.Is(err, coupon.ErrMinPurchaseNotMet):
		obs.ObserveCouponApply("rejected")
		coupon.WriteError(w, err)
	case errors.Is(err, pricing.ErrInvalidInput):
		obs.ObserveQuote("items", "invalid_input")
		common.JSONError(w, http.StatusBadRequest, "INVALID_INPUT", err.Error(), nil)
	default:
		obs.ObserveQuote("items", "error")
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", err.Error(), nil)
	}
}
