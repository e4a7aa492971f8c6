package domain

import "github.com/shopspring/decimal"

type Product struct {
	ID          int64
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
}

// A ProductRequest carries the caller supplied fields for create and update.
//
// InitialQuantity and ReorderLevel are optional; nil means the caller did not
// ask for any stock change.
type ProductRequest struct {
	Name            string
	Description     string
	Price           decimal.Decimal
	ImageURL        string
	InitialQuantity *int
	ReorderLevel    *int
}

func (r ProductRequest) Product(id int64) Product {
	return Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		ImageURL:    r.ImageURL,
	}
}

// HasStock reports whether the request carries any stock field.
func (r ProductRequest) HasStock() bool {
	return r.InitialQuantity != nil || r.ReorderLevel != nil
}

// Stock builds the snapshot requested for productID. Missing fields are zero.
func (r ProductRequest) Stock(productID int64) StockSnapshot {
	var quantity, reorderLevel int
	if r.InitialQuantity != nil {
		quantity = *r.InitialQuantity
	}
	if r.ReorderLevel != nil {
		reorderLevel = *r.ReorderLevel
	}
	return NewStockSnapshot(productID, quantity, reorderLevel)
}
