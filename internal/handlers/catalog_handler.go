package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/undhyu/storefront-api/internal/catalog"
)

// CatalogClient is the subset of the catalog client the handler needs.
type CatalogClient interface {
	Products(ctx context.Context, q catalog.ProductsQuery) (*catalog.ProductPage, error)
	Collections(ctx context.Context, first int) ([]catalog.Collection, error)
}

// CatalogHandler proxies catalog queries to the hosted storefront backend.
type CatalogHandler struct {
	client CatalogClient
	logger *slog.Logger
}

// NewCatalogHandler creates a new catalog handler
func NewCatalogHandler(client CatalogClient, logger *slog.Logger) *CatalogHandler {
	return &CatalogHandler{
		client: client,
		logger: logger,
	}
}

// ListProducts handles GET /api/products
// Supported query params: first, after, collection, search, sort_key,
// reverse, min_price, max_price.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	q := catalog.ProductsQuery{
		After:            params.Get("after"),
		CollectionHandle: params.Get("collection"),
		SearchQuery:      params.Get("search"),
		SortKey:          params.Get("sort_key"),
		Reverse:          params.Get("reverse") == "true",
	}

	if q.SortKey != "" && !catalog.ValidSortKey(q.SortKey) {
		WriteError(w, http.StatusBadRequest, "Invalid sort_key parameter", h.logger)
		return
	}

	if v := params.Get("first"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid first parameter", h.logger)
			return
		}
		q.First = n
	}

	for _, bound := range []struct {
		param string
		dst   **float64
	}{
		{"min_price", &q.MinPrice},
		{"max_price", &q.MaxPrice},
	} {
		if v := params.Get(bound.param); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				WriteError(w, http.StatusBadRequest, "Invalid "+bound.param+" parameter", h.logger)
				return
			}
			*bound.dst = &f
		}
	}

	page, err := h.client.Products(r.Context(), q)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, page, h.logger)
}

// ListCollections handles GET /api/collections
func (h *CatalogHandler) ListCollections(w http.ResponseWriter, r *http.Request) {
	first := 6
	if v := r.URL.Query().Get("first"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			WriteError(w, http.StatusBadRequest, "Invalid first parameter", h.logger)
			return
		}
		first = n
	}

	collections, err := h.client.Collections(r.Context(), first)
	if err != nil {
		h.writeCatalogError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"collections": collections}, h.logger)
}

func (h *CatalogHandler) writeCatalogError(w http.ResponseWriter, err error) {
	var upstream *catalog.UpstreamError
	if errors.As(err, &upstream) {
		h.logger.Error("catalog backend rejected request", "status", upstream.Status, "detail", upstream.Detail)
		WriteError(w, http.StatusBadGateway, upstream.Detail, h.logger)
		return
	}

	h.logger.Error("catalog request failed", "error", err)
	WriteError(w, http.StatusBadGateway, err.Error(), h.logger)
}
