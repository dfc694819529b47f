package coupon

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func previewRequest(t *testing.T, handler *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/admin/coupons/preview", strings.NewReader(body))
	rr := httptest.NewRecorder()
	handler.Preview(rr, req)
	return rr
}

func TestPreviewSuccess(t *testing.T) {
	handler := &Handler{Store: testStore()}
	rr := previewRequest(t, handler, `{"code":"save10","subtotal":20000}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data struct {
			Code     string `json:"code"`
			Subtotal int64  `json:"subtotal"`
			Discount int64  `json:"discount"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, int64(2000), body.Data.Discount)
}

func TestPreviewUnknownCode(t *testing.T) {
	handler := &Handler{Store: testStore()}
	rr := previewRequest(t, handler, `{"code":"BOGUS","subtotal":20000}`)
	require.Equal(t, http.StatusNotFound, rr.Code)
	require.Contains(t, rr.Body.String(), "COUPON_NOT_FOUND")
}

func TestPreviewMinPurchase(t *testing.T) {
	handler := &Handler{Store: testStore()}
	rr := previewRequest(t, handler, `{"code":"SAVE10","subtotal":4000}`)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	require.Contains(t, rr.Body.String(), "MIN_PURCHASE_NOT_MET")

	var body struct {
		Error struct {
			Details struct {
				Required int64 `json:"required"`
			} `json:"details"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Equal(t, int64(5000), body.Error.Details.Required)
}

func TestPreviewBadPayload(t *testing.T) {
	handler := &Handler{Store: testStore()}
	for name, body := range map[string]string{
		"malformed json":    `{`,
		"missing code":      `{"subtotal":100}`,
		"negative subtotal": `{"code":"SAVE10","subtotal":-1}`,
	} {
		t.Run(name, func(t *testing.T) {
			rr := previewRequest(t, handler, body)
			require.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
