package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
)

func TestProductsPagination(t *testing.T) {
	handler := &Handler{Store: NewStore(testProducts()), DefaultPerPage: 2}

	req := httptest.NewRequest(http.MethodGet, "/products?page=2", nil)
	rr := httptest.NewRecorder()
	handler.Products(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	var body struct {
		Data       []Product `json:"data"`
		Pagination struct {
			Page       int `json:"page"`
			PerPage    int `json:"per_page"`
			TotalItems int `json:"total_items"`
		} `json:"pagination"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	require.Len(t, body.Data, 1)
	require.Equal(t, 2, body.Pagination.Page)
	require.Equal(t, 3, body.Pagination.TotalItems)
}

func TestProductDetail(t *testing.T) {
	handler := &Handler{Store: NewStore(testProducts())}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "mug")
	req := httptest.NewRequest(http.MethodGet, "/products/mug", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ProductDetail(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	require.Contains(t, rr.Body.String(), `"id":"p-2"`)
}

func TestProductDetailNotFound(t *testing.T) {
	handler := &Handler{Store: NewStore(testProducts())}

	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("slug", "missing")
	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	handler.ProductDetail(rr, req)
	require.Equal(t, http.StatusNotFound, rr.Code)
}
