package httphandler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/VatsalRaj481/Arise/internal/adapter/httphandler"
	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockService struct {
	mock.Mock
}

func (s *MockService) CreateProduct(
	ctx context.Context, req domain.ProductRequest,
) (domain.Product, error) {
	args := s.Called(ctx, req)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (s *MockService) UpdateProduct(
	ctx context.Context, id int64, req domain.ProductRequest,
) (domain.Product, error) {
	args := s.Called(ctx, id, req)
	return args.Get(0).(domain.Product), args.Error(1)
}

func (s *MockService) DeleteProduct(ctx context.Context, id int64) error {
	args := s.Called(ctx, id)
	return args.Error(0)
}

func (s *MockService) GetProductView(
	ctx context.Context, id int64,
) (domain.ProductView, error) {
	args := s.Called(ctx, id)
	return args.Get(0).(domain.ProductView), args.Error(1)
}

func (s *MockService) ListProductViews(ctx context.Context) ([]domain.ProductView, error) {
	args := s.Called(ctx)
	return args.Get(0).([]domain.ProductView), args.Error(1)
}

func newServer(t *testing.T) (*MockService, http.Handler) {
	t.Helper()
	svc := new(MockService)
	t.Cleanup(func() { svc.AssertExpectations(t) })

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, svc, svc)
	httphandler.RegisterHealth(mux)
	return svc, httphandler.WithRequestID(httphandler.AllowJSON(mux))
}

func do(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func laptop() domain.Product {
	return domain.Product{
		ID:       7,
		Name:     "Laptop",
		Price:    decimal.RequireFromString("1200.50"),
		ImageURL: "http://img/laptop.png",
	}
}

func TestCreateProduct(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc, h := newServer(t)
		qty, reorder := 15, 5
		svc.On("CreateProduct", mock.Anything, domain.ProductRequest{
			Name:            "Laptop",
			Price:           decimal.RequireFromString("1200.50"),
			ImageURL:        "http://img/laptop.png",
			InitialQuantity: &qty,
			ReorderLevel:    &reorder,
		}).Return(laptop(), nil).Once()

		w := do(h, http.MethodPost, "/api/products",
			`{"name":"Laptop","price":1200.50,"image_url":"http://img/laptop.png",`+
				`"initial_stock_quantity":15,"reorder_level":5}`)

		require.Equal(t, http.StatusCreated, w.Code)
		var res httphandler.Product
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, int64(7), res.ID)
		assert.True(t, res.Price.Equal(decimal.RequireFromString("1200.5")))
		assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	})

	t.Run("Validation", func(t *testing.T) {
		bodies := map[string]string{
			"missing name":       `{"price":1,"image_url":"u"}`,
			"missing image":      `{"name":"a","price":1}`,
			"negative price":     `{"name":"a","price":-1,"image_url":"u"}`,
			"price too large":    `{"name":"a","price":10000000000,"image_url":"u"}`,
			"price rounds over":  `{"name":"a","price":9999999999.995,"image_url":"u"}`,
			"negative quantity":  `{"name":"a","image_url":"u","initial_stock_quantity":-1}`,
			"negative reorder":   `{"name":"a","image_url":"u","reorder_level":-3}`,
			"malformed":          `{"name":`,
			"unknown field name": `{"name":"a","image_url":"u","color":"red"}`,
		}
		for name, body := range bodies {
			t.Run(name, func(t *testing.T) {
				_, h := newServer(t)
				w := do(h, http.MethodPost, "/api/products", body)
				assert.Equal(t, http.StatusBadRequest, w.Code)
			})
		}
	})

	t.Run("LargestPrice", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(req domain.ProductRequest) bool {
			return req.Price.Equal(decimal.RequireFromString("9999999999.99"))
		})).Return(laptop(), nil).Once()

		w := do(h, http.MethodPost, "/api/products",
			`{"name":"a","price":"9999999999.99","image_url":"u"}`)
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("UnsupportedMediaType", func(t *testing.T) {
		_, h := newServer(t)
		r := httptest.NewRequest(http.MethodPost, "/api/products",
			strings.NewReader(`{"name":"a"}`))
		r.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("InternalError", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("CreateProduct", mock.Anything, mock.Anything).
			Return(domain.Product{}, domain.ErrInternal).Once()

		w := do(h, http.MethodPost, "/api/products", `{"name":"a","image_url":"u"}`)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Updated", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("UpdateProduct", mock.Anything, int64(7), mock.MatchedBy(
			func(req domain.ProductRequest) bool {
				return req.Name == "Laptop" && req.InitialQuantity == nil
			})).Return(laptop(), nil).Once()

		w := do(h, http.MethodPut, "/api/products/7", `{"name":"Laptop","price":"1200.50"}`)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("UpdateProduct", mock.Anything, int64(99), mock.Anything).
			Return(domain.Product{}, domain.ErrNotFound).Once()

		w := do(h, http.MethodPut, "/api/products/99", `{"name":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InvalidID", func(t *testing.T) {
		_, h := newServer(t)
		w := do(h, http.MethodPut, "/api/products/abc", `{"name":"x"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Deleted", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("DeleteProduct", mock.Anything, int64(7)).Return(nil).Once()

		w := do(h, http.MethodDelete, "/api/products/7", "")
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("DeleteProduct", mock.Anything, int64(7)).
			Return(domain.ErrNotFound).Once()

		w := do(h, http.MethodDelete, "/api/products/7", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("InternalError", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("DeleteProduct", mock.Anything, int64(7)).
			Return(errors.Join(domain.ErrInternal, errors.New("db down"))).Once()

		w := do(h, http.MethodDelete, "/api/products/7", "")
		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Enriched", func(t *testing.T) {
		svc, h := newServer(t)
		snap := domain.NewStockSnapshot(7, 3, 5)
		svc.On("GetProductView", mock.Anything, int64(7)).Return(
			domain.NewProductView(laptop(), domain.StockFoundResult(snap)), nil,
		).Once()

		w := do(h, http.MethodGet, "/api/products/7", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res httphandler.ProductView
		require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
		assert.Equal(t, "Low Stock", res.StockStatus)
		require.NotNil(t, res.StockDetails)
		assert.Equal(t, 3, res.StockDetails.Quantity)
		assert.True(t, res.StockDetails.LowStock)
	})

	t.Run("NoDetails", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("GetProductView", mock.Anything, int64(7)).Return(
			domain.NewProductView(laptop(), domain.StockUnavailableResult(errors.New("timeout"))), nil,
		).Once()

		w := do(h, http.MethodGet, "/api/products/7", "")
		require.Equal(t, http.StatusOK, w.Code)

		var raw map[string]any
		require.NoError(t, json.NewDecoder(w.Body).Decode(&raw))
		assert.Equal(t, "Stock Service Error", raw["stock_status"])
		assert.Nil(t, raw["stock_details"])
	})

	t.Run("NotFound", func(t *testing.T) {
		svc, h := newServer(t)
		svc.On("GetProductView", mock.Anything, int64(7)).
			Return(domain.ProductView{}, domain.ErrNotFound).Once()

		w := do(h, http.MethodGet, "/api/products/7", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestListProducts(t *testing.T) {
	svc, h := newServer(t)
	a := laptop()
	b := domain.Product{ID: 8, Name: "Mouse", Price: decimal.NewFromInt(20)}
	svc.On("ListProductViews", mock.Anything).Return([]domain.ProductView{
		domain.NewProductView(a, domain.StockFoundResult(domain.NewStockSnapshot(7, 50, 5))),
		domain.NewProductView(b, domain.StockAbsentResult()),
	}, nil).Once()

	w := do(h, http.MethodGet, "/api/products", "")
	require.Equal(t, http.StatusOK, w.Code)

	var res []httphandler.ProductView
	require.NoError(t, json.NewDecoder(w.Body).Decode(&res))
	require.Len(t, res, 2)
	assert.Equal(t, int64(7), res[0].ID)
	assert.Equal(t, "In Stock", res[0].StockStatus)
	assert.Equal(t, int64(8), res[1].ID)
	assert.Equal(t, "No Stock Record", res[1].StockStatus)
	assert.Nil(t, res[1].StockDetails)
}

func TestRequestID(t *testing.T) {
	_, h := newServer(t)
	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	r.Header.Set("X-Request-Id", "abc-123")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "abc-123", w.Header().Get("X-Request-Id"))
}
