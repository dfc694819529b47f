package checkout

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/souq-labs/backend-souq/internal/pricing"
)

func postQuote(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.QuoteItems(rr, req)
	return rr
}

func TestQuoteItemsHandler(t *testing.T) {
	svc, _ := testService()
	handler := &Handler{Svc: svc}

	rr := postQuote(t, handler, `{
		"items": [{"price": 10000, "qty": 2, "weightKg": 1, "shippingMethod": "Standard"}],
		"destination": "eg",
		"paymentMethod": "cod"
	}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			Subtotal    pricing.Money `json:"subtotal"`
			ShippingFee pricing.Money `json:"shippingFee"`
			PaymentFee  pricing.Money `json:"paymentFee"`
			Total       pricing.Money `json:"total"`
			Shipping    map[string]struct {
				Fee   pricing.Money `json:"fee"`
				Count int           `json:"count"`
			} `json:"shippingBreakdown"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, pricing.Money(20000), body.Data.Subtotal)
	require.Equal(t, pricing.Money(3500), body.Data.ShippingFee)
	require.Equal(t, pricing.Money(24500), body.Data.Total)
	require.Equal(t, 1, body.Data.Shipping["standard"].Count)
}

func TestQuoteItemsHandlerRejectsBadPayloads(t *testing.T) {
	svc, _ := testService()
	handler := &Handler{Svc: svc}

	cases := map[string]string{
		"malformed json": `{`,
		"unknown method": `{"items":[{"price":100,"qty":1,"weightKg":1,"shippingMethod":"drone"}]}`,
		"zero qty":       `{"items":[{"price":100,"qty":0,"weightKg":1,"shippingMethod":"standard"}]}`,
		"negative price": `{"items":[{"price":-5,"qty":1,"weightKg":1,"shippingMethod":"standard"}]}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			rr := postQuote(t, handler, payload)
			require.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}

func TestQuoteItemsHandlerCouponErrors(t *testing.T) {
	svc, _ := testService()
	handler := &Handler{Svc: svc}

	rr := postQuote(t, handler, `{
		"items": [{"price": 10000, "qty": 1, "weightKg": 1, "shippingMethod": "standard"}],
		"coupon": "BOGUS"
	}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "COUPON_NOT_FOUND")

	rr = postQuote(t, handler, `{
		"items": [{"price": 1000, "qty": 1, "weightKg": 1, "shippingMethod": "standard"}],
		"coupon": "SAVE10"
	}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "MIN_PURCHASE_NOT_MET")
}

func quoteCartRequest(t *testing.T, handler *Handler, cartID, body string) *httptest.ResponseRecorder {
	t.Helper()
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", cartID)
	req := httptest.NewRequest(http.MethodPost, "/carts/"+cartID+"/quote", strings.NewReader(body))
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rr := httptest.NewRecorder()
	handler.QuoteCart(rr, req)
	return rr
}

func TestQuoteCartHandler(t *testing.T) {
	svc, carts := testService()
	handler := &Handler{Svc: svc}

	snap, err := carts.EnsureCart("anon-1")
	require.NoError(t, err)
	_, err = carts.AddItem(snap.ID, "p-1", 1)
	require.NoError(t, err)

	rr := quoteCartRequest(t, handler, snap.ID.String(), `{"destination":"EG","paymentMethod":"cod"}`)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"total":14000`) // 10000 + 3000 + 1000
}

func TestQuoteCartHandlerErrors(t *testing.T) {
	svc, _ := testService()
	handler := &Handler{Svc: svc}

	rr := quoteCartRequest(t, handler, "not-a-uuid", `{}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = quoteCartRequest(t, handler, uuid.NewString(), `{}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
