package domain_test

import (
	"errors"
	"testing"

	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyStock(t *testing.T) {
	errDown := errors.New("connection refused")

	tests := []struct {
		name string
		res  domain.StockResult
		want domain.StockStatus
	}{
		{"Unknown", domain.StockResult{}, domain.StockInfoUnavailable},
		{"Unavailable", domain.StockUnavailableResult(errDown), domain.StockServiceError},
		{"Missing", domain.StockMissingResult(domain.ErrStockNotFound), domain.NoStockRecord},
		{"Absent", domain.StockAbsentResult(), domain.NoStockRecord},
		{
			"OutOfStock",
			domain.StockFoundResult(domain.StockSnapshot{Quantity: 0, ReorderLevel: 10, LowStock: true}),
			domain.OutOfStock,
		},
		{
			"NegativeQuantity",
			domain.StockFoundResult(domain.StockSnapshot{Quantity: -3}),
			domain.OutOfStock,
		},
		{
			"LowStock",
			domain.StockFoundResult(domain.StockSnapshot{Quantity: 5, ReorderLevel: 10, LowStock: true}),
			domain.LowStock,
		},
		{
			"LowStockFlagOnly",
			domain.StockFoundResult(domain.StockSnapshot{Quantity: 50, ReorderLevel: 10, LowStock: true}),
			domain.LowStock,
		},
		{
			"InStock",
			domain.StockFoundResult(domain.StockSnapshot{Quantity: 100, ReorderLevel: 20}),
			domain.InStock,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domain.ClassifyStock(tt.res))
			assert.Equal(t, tt.want, domain.ClassifyStock(tt.res), "same input, same status")
		})
	}
}

func TestNewProductView(t *testing.T) {
	p := domain.Product{ID: 1, Name: "Laptop"}

	t.Run("DetailsWithSnapshot", func(t *testing.T) {
		s := domain.StockSnapshot{ProductID: 1, Quantity: 5, ReorderLevel: 10, LowStock: true}

		v := domain.NewProductView(p, domain.StockFoundResult(s))
		assert.Equal(t, p, v.Product)
		assert.Equal(t, domain.LowStock, v.StockStatus)
		require.NotNil(t, v.StockDetails)
		assert.Equal(t, s, *v.StockDetails)
	})

	t.Run("NoDetailsWithoutSnapshot", func(t *testing.T) {
		results := []domain.StockResult{
			{},
			domain.StockAbsentResult(),
			domain.StockMissingResult(domain.ErrStockNotFound),
			domain.StockUnavailableResult(domain.ErrStockUnavailable),
		}
		for _, res := range results {
			v := domain.NewProductView(p, res)
			assert.False(t, v.StockStatus.HasDetails())
			assert.Nil(t, v.StockDetails, res.Outcome.String())
		}
	})
}

func TestProductRequest(t *testing.T) {
	q, r := 90, 15

	t.Run("Stock", func(t *testing.T) {
		req := domain.ProductRequest{InitialQuantity: &q, ReorderLevel: &r}
		require.True(t, req.HasStock())
		assert.Equal(t, domain.StockSnapshot{
			ProductID: 4, Quantity: 90, ReorderLevel: 15, LowStock: false,
		}, req.Stock(4))
	})

	t.Run("QuantityOnly", func(t *testing.T) {
		req := domain.ProductRequest{InitialQuantity: &q}
		require.True(t, req.HasStock())
		assert.Equal(t, 0, req.Stock(4).ReorderLevel)
	})

	t.Run("NoStock", func(t *testing.T) {
		assert.False(t, domain.ProductRequest{}.HasStock())
	})

	t.Run("Product", func(t *testing.T) {
		req := domain.ProductRequest{Name: "Mouse", ImageURL: "mouse.jpg"}
		p := req.Product(2)
		assert.Equal(t, int64(2), p.ID)
		assert.Equal(t, "Mouse", p.Name)
		assert.Equal(t, "mouse.jpg", p.ImageURL)
	})
}
