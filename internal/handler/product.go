package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/sakif/ecommerce-api/internal/service"
)

// ProductHandler exposes the read-only catalog. Both routes are public —
// anonymous browsing is part of the contract.
type ProductHandler struct {
	catalog *service.CatalogService
	logger  *slog.Logger
}

// NewProductHandler creates a ProductHandler.
func NewProductHandler(catalog *service.CatalogService, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{catalog: catalog, logger: logger}
}

// HandleList returns every product, name-ascending.
//
// HTTP: GET /api/products
func (h *ProductHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// HandleGetByID returns a single product.
//
// HTTP: GET /api/products/{id}
//
// The id is the integer row id. A non-integer id is a 400; an unknown id
// is a 404.
func (h *ProductHandler) HandleGetByID(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error:   "validation_error",
			Message: "Product id must be an integer",
		})
		return
	}

	product, err := h.catalog.GetProduct(r.Context(), id)
	if err != nil {
		writeError(h.logger, w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}
