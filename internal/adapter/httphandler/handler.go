package httphandler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/VatsalRaj481/Arise/internal/core/port"
	"github.com/shopspring/decimal"
)

// POST   /api/products      JSON ProductRequest (201 Created, 400, 500)
// GET    /api/products      (200 OK) stock enriched
// GET    /api/products/{id} (200 OK, 404) stock enriched
// PUT    /api/products/{id} JSON ProductRequest (200 OK, 400, 404, 500)
// DELETE /api/products/{id} (204 No content, 404, 500)

type ProductsHandler struct {
	manager port.ProductManager
	viewer  port.ProductViewer
}

func RegisterProducts(
	mux *http.ServeMux, manager port.ProductManager, viewer port.ProductViewer,
) {
	h := ProductsHandler{manager, viewer}
	mux.HandleFunc("POST /api/products", h.CreateProduct)
	mux.HandleFunc("GET /api/products", h.ListProducts)
	mux.HandleFunc("GET /api/products/{id}", h.GetProduct)
	mux.HandleFunc("PUT /api/products/{id}", h.UpdateProduct)
	mux.HandleFunc("DELETE /api/products/{id}", h.DeleteProduct)
}

func RegisterHealth(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
}

func (h ProductsHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.CreateProduct"
	log := slog.With("op", op, "request_id", RequestIDFromContext(r.Context()))

	req, ok := h.decodeRequest(w, r, log, true)
	if !ok {
		return
	}

	p, err := h.manager.CreateProduct(r.Context(), req.toDomain())
	if err != nil {
		h.writeErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusCreated, fromProduct(p))
	log.Info("product created", "product_id", p.ID)
}

func (h ProductsHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.ListProducts"
	log := slog.With("op", op, "request_id", RequestIDFromContext(r.Context()))

	vs, err := h.viewer.ListProductViews(r.Context())
	if err != nil {
		h.writeErr(w, log, err)
		return
	}

	res := make([]ProductView, len(vs))
	for i := range vs {
		res[i] = fromView(vs[i])
	}
	writeJSON(w, http.StatusOK, res)
}

func (h ProductsHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProduct"
	log := slog.With("op", op, "request_id", RequestIDFromContext(r.Context()))

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	v, err := h.viewer.GetProductView(r.Context(), id)
	if err != nil {
		h.writeErr(w, log, err)
		return
	}
	writeJSON(w, http.StatusOK, fromView(v))
}

func (h ProductsHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.UpdateProduct"
	log := slog.With("op", op, "request_id", RequestIDFromContext(r.Context()))

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	req, ok := h.decodeRequest(w, r, log, false)
	if !ok {
		return
	}

	p, err := h.manager.UpdateProduct(r.Context(), id, req.toDomain())
	if err != nil {
		h.writeErr(w, log, err)
		return
	}

	writeJSON(w, http.StatusOK, fromProduct(p))
	log.Info("product updated", "product_id", p.ID)
}

func (h ProductsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.DeleteProduct"
	log := slog.With("op", op, "request_id", RequestIDFromContext(r.Context()))

	id, ok := h.pathID(w, r)
	if !ok {
		return
	}

	if err := h.manager.DeleteProduct(r.Context(), id); err != nil {
		h.writeErr(w, log, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
	log.Info("product deleted", "product_id", id)
}

func (h ProductsHandler) decodeRequest(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, create bool,
) (ProductRequest, bool) {
	var req ProductRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON data")
		log.Warn("failed to parse JSON", "err", err)
		return ProductRequest{}, false
	}

	if err := validate(req, create); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		log.Warn("invalid product request", "err", err)
		return ProductRequest{}, false
	}
	return req, true
}

func (ProductsHandler) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return 0, false
	}
	return id, true
}

func (ProductsHandler) writeErr(w http.ResponseWriter, log *slog.Logger, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		writeError(w, http.StatusNotFound, "product not found")
		log.Warn("product not found", "err", err)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
	log.Error("request failed", "err", err)
}

// maxPrice is the first value the NUMERIC(12,2) price column cannot hold.
var maxPrice = decimal.New(1, 10)

func validate(req ProductRequest, create bool) error {
	switch {
	case req.Name == "":
		return errors.New("name is required")
	case create && req.ImageURL == "":
		return errors.New("image_url is required")
	case req.Price.IsNegative():
		return errors.New("price must be >= 0")
	case req.Price.Round(2).GreaterThanOrEqual(maxPrice):
		return errors.New("price must be < 10000000000")
	case req.InitialStockQuantity != nil && *req.InitialStockQuantity < 0:
		return errors.New("initial_stock_quantity must be >= 0")
	case req.ReorderLevel != nil && *req.ReorderLevel < 0:
		return errors.New("reorder_level must be >= 0")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to write response body", "err", fmt.Errorf("writeJSON: %w", err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
