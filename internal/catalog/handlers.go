package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/souq-labs/backend-souq/internal/common"
)

// Handler wires the catalog store to HTTP.
type Handler struct {
	Store          *Store
	DefaultPerPage int
}

// Products returns a paginated product listing.
func (h *Handler) Products(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	perPageDefault := h.DefaultPerPage
	if perPageDefault <= 0 {
		perPageDefault = 20
	}
	page, perPage := common.ParsePagination(r, perPageDefault)
	products, total := h.Store.List(page, perPage)
	common.JSON(w, http.StatusOK, map[string]any{
		"data": products,
		"pagination": common.Pagination{
			Page:       page,
			PerPage:    perPage,
			TotalItems: total,
		},
	})
}

// ProductDetail returns a single product by slug.
func (h *Handler) ProductDetail(w http.ResponseWriter, r *http.Request) {
	if h.Store == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "catalog not configured", nil)
		return
	}
	slug := chi.URLParam(r, "slug")
	product, ok := h.Store.BySlug(slug)
	if !ok {
		common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "product not found", nil)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": product})
}
