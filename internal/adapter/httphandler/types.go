package httphandler

import (
	"github.com/VatsalRaj481/Arise/internal/core/domain"
	"github.com/shopspring/decimal"
)

type (
	ProductRequest struct {
		Name                 string          `json:"name"`
		Description          string          `json:"description"`
		Price                decimal.Decimal `json:"price"`
		ImageURL             string          `json:"image_url"`
		InitialStockQuantity *int            `json:"initial_stock_quantity,omitempty"`
		ReorderLevel         *int            `json:"reorder_level,omitempty"`
	}

	Product struct {
		ID          int64           `json:"id"`
		Name        string          `json:"name"`
		Description string          `json:"description"`
		Price       decimal.Decimal `json:"price"`
		ImageURL    string          `json:"image_url"`
	}

	Stock struct {
		ProductID    int64 `json:"product_id"`
		Quantity     int   `json:"quantity"`
		ReorderLevel int   `json:"reorder_level"`
		LowStock     bool  `json:"low_stock"`
	}

	ProductView struct {
		Product
		StockDetails *Stock `json:"stock_details"`
		StockStatus  string `json:"stock_status"`
	}

	errorResponse struct {
		Error string `json:"error"`
	}
)

func (r ProductRequest) toDomain() domain.ProductRequest {
	return domain.ProductRequest{
		Name:            r.Name,
		Description:     r.Description,
		Price:           r.Price,
		ImageURL:        r.ImageURL,
		InitialQuantity: r.InitialStockQuantity,
		ReorderLevel:    r.ReorderLevel,
	}
}

func fromProduct(p domain.Product) Product {
	return Product{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		ImageURL:    p.ImageURL,
	}
}

func fromView(v domain.ProductView) ProductView {
	pv := ProductView{
		Product:     fromProduct(v.Product),
		StockStatus: string(v.StockStatus),
	}
	if v.StockDetails != nil {
		pv.StockDetails = &Stock{
			ProductID:    v.StockDetails.ProductID,
			Quantity:     v.StockDetails.Quantity,
			ReorderLevel: v.StockDetails.ReorderLevel,
			LowStock:     v.StockDetails.LowStock,
		}
	}
	return pv
}
